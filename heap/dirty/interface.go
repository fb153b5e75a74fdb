package dirty

// DirtyTracker is the minimal interface for reporting modified byte ranges.
// Allocators call Add for every header they rewrite and every payload byte
// they copy, so that a file-backed region knows what to write back.
type DirtyTracker interface {
	// Add marks a byte range as dirty.
	// off is the offset from the start of the heap, length is the number of bytes.
	Add(off, length int)
}
