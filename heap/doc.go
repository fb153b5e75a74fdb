// Package heap provides the growable memory regions that back an allocator.
//
// # Overview
//
// A Region is a contiguous span of bytes that only ever grows. Growth goes
// through Sbrk, which behaves like sbrk(2): it extends the top of the region by
// exactly n bytes and returns the previous top, or fails without changing
// anything.
//
// # Implementations
//
// MemRegion: a Go byte slice with an optional byte limit
//
//   - Zero-initialized growth
//   - Capacity reserved by doubling, so Bytes() may move after Sbrk
//   - The limit emulates RLIMIT_DATA (see DataLimit)
//
// FileRegion: a file mapped read-write with MAP_SHARED (Linux and macOS)
//
//   - Capacity grows in chunks; the file is truncated to Top on Close
//   - Implements dirty.DirtyTracker; Sync msyncs only touched pages
//   - Falls back to a read/write buffer on other platforms
//
// # Offsets
//
// Regions are addressed by byte offsets from zero. Offsets stay valid across
// growth even when the underlying slice or mapping moves; slices returned by
// Bytes() do not.
//
// # Thread Safety
//
// Regions are not thread-safe. Callers must synchronize access externally.
package heap
