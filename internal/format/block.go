package format

import (
	"fmt"
	"math"

	"github.com/ajiku17/PersonalOSAssignments/internal/buf"
)

// Block is a decoded block header.
//
// Next and Prev are heap offsets of the neighbouring blocks, -1 when absent.
type Block struct {
	Offset int
	Size   int
	Free   bool
	Next   int
	Prev   int
}

// End returns the offset one past the block's payload.
func (b Block) End() int { return b.Offset + HeaderSize + b.Size }

// PayloadOffset returns the offset of the payload belonging to the block at off.
func PayloadOffset(off int) int { return off + HeaderSize }

// BlockOffset returns the offset of the header owning the payload at payload.
func BlockOffset(payload int) int { return payload - HeaderSize }

// ReadBlock decodes the header at off. Only the header bytes are required to
// be present; the payload extent is validated by callers that need it.
func ReadBlock(b []byte, off int) (Block, error) {
	hdr, ok := buf.Slice(b, off, HeaderSize)
	if !ok {
		return Block{}, fmt.Errorf("block at %d: %w", off, ErrTruncated)
	}
	size := ReadU64(hdr, SizeOffset)
	if size > math.MaxInt-HeaderSize {
		return Block{}, fmt.Errorf("block at %d: size %d overflows", off, size)
	}
	next := ReadU64(hdr, NextOffset)
	prev := ReadU64(hdr, PrevOffset)
	if (next != NilOffset && next > math.MaxInt) || (prev != NilOffset && prev > math.MaxInt) {
		return Block{}, fmt.Errorf("block at %d: %w", off, ErrBadLink)
	}
	return Block{
		Offset: off,
		Size:   int(size),
		Free:   ReadU32(hdr, FreeOffset) == FlagFree,
		Next:   DecodeLink(next),
		Prev:   DecodeLink(prev),
	}, nil
}

// WriteBlock encodes blk into the header at blk.Offset.
func WriteBlock(b []byte, blk Block) {
	off := blk.Offset
	PutU64(b, off+SizeOffset, uint64(blk.Size))
	flag := uint32(FlagUsed)
	if blk.Free {
		flag = FlagFree
	}
	PutU32(b, off+FreeOffset, flag)
	PutU32(b, off+FreeOffset+4, 0)
	PutU64(b, off+NextOffset, EncodeLink(blk.Next))
	PutU64(b, off+PrevOffset, EncodeLink(blk.Prev))
}
