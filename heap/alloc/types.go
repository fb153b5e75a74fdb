package alloc

import "github.com/ajiku17/PersonalOSAssignments/internal/format"

// Ptr is the offset of a payload within the allocator's region.
type Ptr uint64

// Null is the pointer returned on failure. No payload can live at offset 0
// because every payload is preceded by its header.
const Null Ptr = 0

// HeaderSize is the number of bytes each block spends on its header.
const HeaderSize = format.HeaderSize

// BlockInfo describes one block of the directory.
type BlockInfo struct {
	Offset int  `json:"offset"`
	Ptr    Ptr  `json:"ptr"`
	Size   int  `json:"size"`
	Free   bool `json:"free"`
	Next   int  `json:"next"`
	Prev   int  `json:"prev"`
}

// Footprint returns the bytes the block occupies including its header.
func (b BlockInfo) Footprint() int { return HeaderSize + b.Size }

// payloadOf maps a block offset to the pointer handed to callers.
func payloadOf(off int) Ptr { return Ptr(format.PayloadOffset(off)) }

// block maps a pointer back to the offset of its header.
func (p Ptr) block() int { return format.BlockOffset(int(p)) }

func infoOf(b format.Block) BlockInfo {
	return BlockInfo{
		Offset: b.Offset,
		Ptr:    payloadOf(b.Offset),
		Size:   b.Size,
		Free:   b.Free,
		Next:   b.Next,
		Prev:   b.Prev,
	}
}
