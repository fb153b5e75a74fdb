package alloc

import (
	"iter"

	"github.com/ajiku17/PersonalOSAssignments/heap"
	"github.com/ajiku17/PersonalOSAssignments/heap/verify"
	"github.com/ajiku17/PersonalOSAssignments/internal/format"
)

// Bytes returns the payload of the live block at p. The slice aliases the
// region and is invalidated by the next call that grows it.
func (a *Allocator) Bytes(p Ptr) ([]byte, error) {
	off, err := a.blockOf(p)
	if err != nil {
		return nil, err
	}
	if a.isFree(off) {
		return nil, ErrDoubleFree
	}
	start := int(p)
	end := start + a.sizeOf(off)
	return a.r.Bytes()[start:end:end], nil
}

// Size returns the payload size of the live block at p. It may exceed the
// requested size when a block was handed over without splitting.
func (a *Allocator) Size(p Ptr) (int, error) {
	off, err := a.blockOf(p)
	if err != nil {
		return 0, err
	}
	return a.sizeOf(off), nil
}

// Touch reports the whole payload at p as modified to the dirty tracker.
// Writes made through Bytes are otherwise invisible to file-backed regions.
func (a *Allocator) Touch(p Ptr) error {
	off, err := a.blockOf(p)
	if err != nil {
		return err
	}
	a.mark(int(p), a.sizeOf(off))
	return nil
}

// Head returns the offset of the first block, or -1 when empty.
func (a *Allocator) Head() int { return a.head }

// Tail returns the offset of the last block, or -1 when empty.
func (a *Allocator) Tail() int { return a.tail }

// Top returns the current top of the region.
func (a *Allocator) Top() int { return a.r.Top() }

// Region returns the region the allocator manages.
func (a *Allocator) Region() heap.Region { return a.r }

// Blocks walks the directory in address order.
func (a *Allocator) Blocks() iter.Seq[BlockInfo] {
	return func(yield func(BlockInfo) bool) {
		for off := a.head; off >= 0; off = a.nextOf(off) {
			blk, err := format.ReadBlock(a.r.Bytes(), off)
			if err != nil {
				return
			}
			if !yield(infoOf(blk)) {
				return
			}
		}
	}
}

// Check validates the directory invariants against the region bytes.
func (a *Allocator) Check() error {
	return verify.Directory(a.r.Bytes(), a.head, a.tail)
}
