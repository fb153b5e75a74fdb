// Package mm is a process-wide malloc/realloc/free over a single default heap.
//
// Every function reports failure as alloc.Null, the way the C allocation
// functions report it as a null pointer. Use heap/alloc directly for the
// underlying errors.
//
// The package is not safe for concurrent use.
package mm

import (
	"github.com/ajiku17/PersonalOSAssignments/heap"
	"github.com/ajiku17/PersonalOSAssignments/heap/alloc"
)

// Null is returned on failure.
const Null = alloc.Null

var def *alloc.Allocator

// Default returns the process-wide allocator, creating it on first use over
// an in-memory region bounded by the process data limit.
func Default() *alloc.Allocator {
	if def == nil {
		a, err := alloc.New(heap.NewMemRegion(heap.DataLimit()), nil)
		if err != nil {
			// An empty region has no directory to reject.
			panic(err)
		}
		def = a
	}
	return def
}

// Reset replaces the default allocator with one over r. A nil r discards the
// current allocator so the next call creates a fresh one.
func Reset(r heap.Region) error {
	if r == nil {
		def = nil
		return nil
	}
	a, err := alloc.New(r, nil)
	if err != nil {
		return err
	}
	def = a
	return nil
}

// Malloc allocates size bytes. It returns Null if size is not positive or
// the heap cannot grow.
func Malloc(size int) alloc.Ptr {
	p, err := Default().Malloc(size)
	if err != nil {
		return Null
	}
	return p
}

// Realloc resizes the allocation at p, preserving the leading bytes.
// A Null p behaves as Malloc. A non-positive size frees p and returns Null.
// On failure Null is returned and the old block is already released.
func Realloc(p alloc.Ptr, size int) alloc.Ptr {
	q, err := Default().Realloc(p, size)
	if err != nil {
		return Null
	}
	return q
}

// Free releases p. Freeing Null, or a pointer the heap does not recognize,
// does nothing.
func Free(p alloc.Ptr) {
	_ = Default().Free(p)
}

// Bytes returns the payload at p, or nil when p is not a live allocation.
// The slice is invalidated by the next call that grows the heap.
func Bytes(p alloc.Ptr) []byte {
	b, err := Default().Bytes(p)
	if err != nil {
		return nil
	}
	return b
}
