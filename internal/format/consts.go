package format

// Block header layout (little-endian), stored at the block offset and
// immediately followed by the payload:
//
//	Offset  Size  Description
//	0x00    8     Payload size in bytes (header excluded).
//	0x08    4     Free flag: 1 => free, 0 => in use.
//	0x0C    4     Padding, always zero.
//	0x10    8     Offset of the next block in address order, or NilOffset.
//	0x18    8     Offset of the previous block in address order, or NilOffset.
const (
	// HeaderSize is the number of bytes occupied by a block header.
	HeaderSize = 32

	// SizeOffset is the offset of the payload size field.
	SizeOffset = 0x00

	// FreeOffset is the offset of the free flag.
	FreeOffset = 0x08

	// NextOffset is the offset of the forward link.
	NextOffset = 0x10

	// PrevOffset is the offset of the backward link.
	PrevOffset = 0x18
)

const (
	// NilOffset marks an absent link in a stored header.
	NilOffset = 0xFFFFFFFFFFFFFFFF

	// FlagFree is the stored value of the free flag for an unallocated block.
	FlagFree = 1

	// FlagUsed is the stored value of the free flag for an allocated block.
	FlagUsed = 0
)
