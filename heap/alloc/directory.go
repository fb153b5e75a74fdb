package alloc

import (
	"math"

	"github.com/ajiku17/PersonalOSAssignments/internal/buf"
	"github.com/ajiku17/PersonalOSAssignments/internal/format"
)

// Header field accessors. Offsets are block offsets; every access goes
// through the region's current slice because growth may move it.

func (a *Allocator) sizeOf(off int) int {
	return int(format.ReadU64(a.r.Bytes(), off+format.SizeOffset))
}

func (a *Allocator) isFree(off int) bool {
	return format.ReadU32(a.r.Bytes(), off+format.FreeOffset) == format.FlagFree
}

func (a *Allocator) nextOf(off int) int {
	return format.DecodeLink(format.ReadU64(a.r.Bytes(), off+format.NextOffset))
}

func (a *Allocator) prevOf(off int) int {
	return format.DecodeLink(format.ReadU64(a.r.Bytes(), off+format.PrevOffset))
}

func (a *Allocator) setSize(off, size int) {
	format.PutU64(a.r.Bytes(), off+format.SizeOffset, uint64(size))
}

func (a *Allocator) setFree(off int, free bool) {
	flag := uint32(format.FlagUsed)
	if free {
		flag = format.FlagFree
	}
	format.PutU32(a.r.Bytes(), off+format.FreeOffset, flag)
}

func (a *Allocator) setNext(off, next int) {
	format.PutU64(a.r.Bytes(), off+format.NextOffset, format.EncodeLink(next))
}

func (a *Allocator) setPrev(off, prev int) {
	format.PutU64(a.r.Bytes(), off+format.PrevOffset, format.EncodeLink(prev))
}

func (a *Allocator) mark(off, length int) {
	if a.dt != nil {
		a.dt.Add(off, length)
	}
}

func (a *Allocator) markHeader(off int) { a.mark(off, format.HeaderSize) }

// findFree returns the first free block, in address order, whose payload can
// hold size bytes, or -1.
func (a *Allocator) findFree(size int) int {
	for off := a.head; off >= 0; off = a.nextOf(off) {
		if a.isFree(off) && a.sizeOf(off) >= size {
			return off
		}
	}
	return -1
}

// split shrinks the block at off to size bytes when the excess can hold a
// header plus at least one payload byte. The excess becomes a free block
// linked right after it.
func (a *Allocator) split(off, size int) {
	blockSize := a.sizeOf(off)
	if blockSize <= size+format.HeaderSize {
		return
	}

	rest := off + format.HeaderSize + size
	next := a.nextOf(off)
	format.WriteBlock(a.r.Bytes(), format.Block{
		Offset: rest,
		Size:   blockSize - size - format.HeaderSize,
		Free:   true,
		Next:   next,
		Prev:   off,
	})
	a.markHeader(rest)

	if next >= 0 {
		a.setPrev(next, rest)
		a.markHeader(next)
	}
	a.setNext(off, rest)
	a.setSize(off, size)
	if off == a.tail {
		a.tail = rest
	}
	a.stats.SplitCount++

	if a.debug {
		a.log.Debug("block split", "block", off, "size", size, "remainder", rest, "remainderSize", blockSize-size-format.HeaderSize)
	}
}

// absorb merges src, the block directly after dst, into dst and zeroes the
// bytes src occupied.
func (a *Allocator) absorb(dst, src int) {
	srcSize := a.sizeOf(src)
	srcNext := a.nextOf(src)

	a.setNext(dst, srcNext)
	if srcNext >= 0 {
		a.setPrev(srcNext, dst)
		a.markHeader(srcNext)
	}
	if src == a.tail {
		a.tail = dst
	}
	a.setSize(dst, a.sizeOf(dst)+srcSize+format.HeaderSize)
	a.markHeader(dst)

	footprint := format.HeaderSize + srcSize
	clear(a.r.Bytes()[src : src+footprint])
	a.mark(src, footprint)

	if a.debug {
		a.log.Debug("blocks coalesced", "into", dst, "absorbed", src, "size", a.sizeOf(dst))
	}
}

// blockOf validates p and returns the offset of its header.
//
// The checks are cheap and local: the header and payload must lie inside the
// region, and the block's neighbours (or head/tail) must link back to it.
// That catches pointers into the middle of payloads and headers wiped by
// coalescing, but not every misuse.
func (a *Allocator) blockOf(p Ptr) (int, error) {
	if p < HeaderSize || uint64(p) > math.MaxInt {
		return -1, ErrBadPtr
	}
	data := a.r.Bytes()
	off := p.block()
	if !buf.Has(data, off, format.HeaderSize) {
		return -1, ErrBadPtr
	}
	if !buf.Has(data, int(p), a.sizeOf(off)) {
		return -1, ErrBadPtr
	}

	prev, next := a.prevOf(off), a.nextOf(off)
	switch {
	case prev < 0 && off != a.head:
		return -1, ErrBadPtr
	case prev >= 0 && (!buf.Has(data, prev, format.HeaderSize) || a.nextOf(prev) != off):
		return -1, ErrBadPtr
	case next < 0 && off != a.tail:
		return -1, ErrBadPtr
	case next >= 0 && (!buf.Has(data, next, format.HeaderSize) || a.prevOf(next) != off):
		return -1, ErrBadPtr
	}
	return off, nil
}
