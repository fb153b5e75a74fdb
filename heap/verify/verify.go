package verify

import (
	"fmt"

	"github.com/ajiku17/PersonalOSAssignments/internal/format"
)

// ValidationError describes the first broken invariant.
type ValidationError struct {
	Type    string
	Message string
	Offset  int
}

func (e *ValidationError) Error() string {
	if e.Offset >= 0 {
		return fmt.Sprintf("%s at offset 0x%X: %s", e.Type, e.Offset, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func fail(typ string, off int, msg string, args ...any) error {
	return &ValidationError{Type: typ, Message: fmt.Sprintf(msg, args...), Offset: off}
}

// Directory validates all directory invariants in one walk from head.
// Returns the first error encountered, or nil if all checks pass.
func Directory(data []byte, head, tail int) error {
	if head < 0 || tail < 0 {
		if head >= 0 || tail >= 0 {
			return fail("Link", -1, "head=%d tail=%d: both must be set or both unset", head, tail)
		}
		if len(data) != 0 {
			return fail("Accounting", -1, "empty directory over %d region bytes", len(data))
		}
		return nil
	}
	if head != 0 {
		return fail("Contiguity", head, "head must be the first byte of the region")
	}

	var (
		off      = head
		prev     = -1
		prevFree = false
		total    = 0
	)
	for {
		blk, err := format.ReadBlock(data, off)
		if err != nil {
			return fail("Header", off, "%v", err)
		}
		if blk.Prev != prev {
			return fail("Link", off, "prev link is %d, expected %d", blk.Prev, prev)
		}
		if blk.End() > len(data) || blk.End() < off {
			return fail("Header", off, "payload of %d bytes overruns top %d", blk.Size, len(data))
		}
		if blk.Free && prevFree {
			return fail("Coalesce", off, "free block follows free block at %d", prev)
		}
		total += format.HeaderSize + blk.Size

		if blk.Next < 0 {
			if off != tail {
				return fail("Link", off, "last block is not the tail (%d)", tail)
			}
			if total != len(data) {
				return fail("Accounting", -1, "blocks cover %d bytes, region has %d", total, len(data))
			}
			return nil
		}
		if off == tail {
			return fail("Link", off, "tail links forward to %d", blk.Next)
		}
		if blk.Next != blk.End() {
			return fail("Contiguity", off, "next link is %d, block ends at %d", blk.Next, blk.End())
		}
		prev, prevFree, off = off, blk.Free, blk.Next
	}
}

// NoAdjacentFree reports the first pair of neighbouring free blocks.
func NoAdjacentFree(data []byte, head int) error {
	prevFree := false
	for off := head; off >= 0; {
		blk, err := format.ReadBlock(data, off)
		if err != nil {
			return fail("Header", off, "%v", err)
		}
		if blk.Free && prevFree {
			return fail("Coalesce", off, "free block follows a free block")
		}
		if blk.Next >= 0 && blk.Next <= off {
			return fail("Link", off, "next link %d does not advance", blk.Next)
		}
		prevFree, off = blk.Free, blk.Next
	}
	return nil
}
