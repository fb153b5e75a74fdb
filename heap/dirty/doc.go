// Package dirty tracks modified byte ranges of a file-backed heap so that
// only the touched pages are written back.
//
// # Usage
//
//	t := dirty.NewTracker(0)
//	t.Add(0x5000, 32) // a block header was rewritten
//	err := t.Flush(ctx, mapping)
//
// # Page-Level Granularity
//
// Ranges are recorded exactly as added and page-aligned only when flushed.
// A 1-byte change marks the whole page dirty, and overlapping or adjacent
// pages are merged into a single msync call:
//
//	Dirty pages: [0, 1, 2, 5, 6] → Ranges: [0x0-0x3000, 0x5000-0x7000]
//
// # Thread Safety
//
// Tracker instances are not thread-safe. They share the single-threaded
// contract of the allocator that feeds them.
package dirty
