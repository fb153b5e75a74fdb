package alloc

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/ajiku17/PersonalOSAssignments/heap"
	"github.com/ajiku17/PersonalOSAssignments/heap/dirty"
	"github.com/ajiku17/PersonalOSAssignments/internal/buf"
	"github.com/ajiku17/PersonalOSAssignments/internal/format"
)

// Runtime debug flag for allocation logging - controlled by MM_LOG_ALLOC env var.
var logAlloc = os.Getenv("MM_LOG_ALLOC") != ""

// maxScratch bounds the resize staging buffer kept between calls (1MB).
const maxScratch = 1 << 20

// Options configures an Allocator. A nil *Options selects the defaults.
type Options struct {
	// Logger receives debug events for growth, splits and coalescing.
	// Defaults to a discarding logger, or stderr when MM_LOG_ALLOC is set.
	Logger *slog.Logger

	// Tracker is told about every byte range the allocator rewrites.
	// Defaults to the region itself when it implements dirty.DirtyTracker.
	Tracker dirty.DirtyTracker
}

// Allocator is a first-fit allocator over a single growable region.
type Allocator struct {
	r  heap.Region
	dt dirty.DirtyTracker

	// head is the first block ever created, tail the block ending at the top
	// of the region. Both are -1 while the directory is empty.
	head int
	tail int

	// scratch stages payload bytes across the free/malloc pair in Realloc.
	scratch []byte

	log   *slog.Logger
	debug bool

	stats Stats
}

// New creates an allocator over r.
//
// An empty region starts with an empty directory. A non-empty region (for
// example a reopened heap.FileRegion) must hold a directory written by a
// previous allocator; it is validated and adopted, or ErrCorrupt is returned.
//
// The allocator must be the only caller of r.Sbrk.
func New(r heap.Region, opts *Options) (*Allocator, error) {
	if opts == nil {
		opts = &Options{}
	}

	a := &Allocator{
		r:    r,
		dt:   opts.Tracker,
		head: -1,
		tail: -1,
		log:  opts.Logger,
	}
	if a.dt == nil {
		if t, ok := r.(dirty.DirtyTracker); ok {
			a.dt = t
		}
	}
	if a.log == nil {
		a.log = defaultLogger()
	}
	a.debug = a.log.Enabled(context.Background(), slog.LevelDebug)

	if r.Top() > 0 {
		if err := a.recoverDirectory(); err != nil {
			return nil, err
		}
	}
	return a, nil
}

func defaultLogger() *slog.Logger {
	if logAlloc {
		return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// Malloc allocates size bytes and returns the payload pointer.
//
// The first free block that fits is used, split when it has room for
// another header beyond size. Otherwise the region grows by exactly
// HeaderSize+size bytes.
func (a *Allocator) Malloc(size int) (Ptr, error) {
	a.stats.AllocCalls++
	if size <= 0 {
		return Null, ErrInvalidSize
	}

	if off := a.findFree(size); off >= 0 {
		a.split(off, size)
		a.setFree(off, false)
		a.markHeader(off)
		a.stats.AllocFastPath++
		return payloadOf(off), nil
	}

	off, err := a.grow(size)
	if err != nil {
		return Null, err
	}
	a.stats.AllocSlowPath++
	return payloadOf(off), nil
}

// Free releases the block owning p and coalesces it with free neighbours.
// Freeing Null is a no-op.
//
// Pointers not obtained from this allocator, or already freed, are caught
// only on a best-effort basis (ErrBadPtr, ErrDoubleFree).
func (a *Allocator) Free(p Ptr) error {
	if p == Null {
		return nil
	}
	off, err := a.blockOf(p)
	if err != nil {
		return err
	}
	if a.isFree(off) {
		return ErrDoubleFree
	}
	a.stats.FreeCalls++

	a.setFree(off, true)
	a.markHeader(off)

	if next := a.nextOf(off); next >= 0 && a.isFree(next) {
		a.stats.CoalesceForward++
		a.absorb(off, next)
	}
	if prev := a.prevOf(off); prev >= 0 && a.isFree(prev) {
		a.stats.CoalesceBackward++
		a.absorb(prev, off)
	}
	return nil
}

// Realloc resizes the allocation at p to size bytes.
//
//   - p == Null behaves as Malloc(size)
//   - The first min(size, old size) bytes are preserved
//   - The old block is always freed first; size <= 0 then returns Null, nil
//   - If the new allocation fails, Null and the error are returned and the
//     old contents are lost
func (a *Allocator) Realloc(p Ptr, size int) (Ptr, error) {
	if p == Null {
		return a.Malloc(size)
	}
	off, err := a.blockOf(p)
	if err != nil {
		return Null, err
	}
	if a.isFree(off) {
		return Null, ErrDoubleFree
	}
	a.stats.ReallocCalls++

	n := min(max(size, 0), a.sizeOf(off))
	src := int(p)
	a.scratch = append(a.scratch[:0], a.r.Bytes()[src:src+n]...)

	if err := a.Free(p); err != nil {
		return Null, err
	}
	if size <= 0 {
		a.trimScratch()
		return Null, nil
	}

	np, err := a.Malloc(size)
	if err != nil {
		a.trimScratch()
		return Null, err
	}
	dst := int(np)
	copy(a.r.Bytes()[dst:dst+n], a.scratch)
	a.mark(dst, n)
	a.trimScratch()
	return np, nil
}

func (a *Allocator) trimScratch() {
	if cap(a.scratch) > maxScratch {
		a.scratch = nil
	}
}

// grow appends a used block of exactly size bytes at the top of the region.
// Nothing changes when the region refuses to grow.
func (a *Allocator) grow(size int) (int, error) {
	need, ok := buf.AddOverflowSafe(format.HeaderSize, size)
	if !ok {
		return -1, fmt.Errorf("%w: request of %d bytes overflows", ErrOutOfMemory, size)
	}

	off, err := a.r.Sbrk(need)
	if err != nil {
		a.log.Warn("heap growth failed", "size", size, "need", need, "top", a.r.Top(), "error", err)
		return -1, fmt.Errorf("%w: %w", ErrOutOfMemory, err)
	}
	a.stats.GrowCalls++
	a.stats.GrowBytes += int64(need)

	format.WriteBlock(a.r.Bytes(), format.Block{
		Offset: off,
		Size:   size,
		Free:   false,
		Next:   -1,
		Prev:   a.tail,
	})
	a.markHeader(off)

	if a.tail >= 0 {
		a.setNext(a.tail, off)
		a.markHeader(a.tail)
	} else {
		a.head = off
	}
	a.tail = off

	if a.debug {
		a.log.Debug("heap grown", "block", off, "size", size, "need", need, "top", a.r.Top())
	}
	return off, nil
}

// recoverDirectory adopts the directory already stored in the region.
func (a *Allocator) recoverDirectory() error {
	data := a.r.Bytes()
	top := len(data)
	off, prev := 0, -1
	for {
		blk, err := format.ReadBlock(data, off)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrCorrupt, err)
		}
		if blk.Prev != prev {
			return fmt.Errorf("%w: block at %d links back to %d, expected %d", ErrCorrupt, off, blk.Prev, prev)
		}
		end, ok := buf.AddOverflowSafe(off, format.HeaderSize+blk.Size)
		if !ok || end > top {
			return fmt.Errorf("%w: block at %d (size %d) overruns top %d", ErrCorrupt, off, blk.Size, top)
		}
		if blk.Next < 0 {
			if end != top {
				return fmt.Errorf("%w: last block ends at %d, top is %d", ErrCorrupt, end, top)
			}
			break
		}
		if blk.Next != end {
			return fmt.Errorf("%w: block at %d links to %d, expected %d", ErrCorrupt, off, blk.Next, end)
		}
		prev, off = off, blk.Next
	}
	a.head, a.tail = 0, off

	if a.debug {
		a.log.Debug("directory recovered", "tail", a.tail, "top", top)
	}
	return nil
}
