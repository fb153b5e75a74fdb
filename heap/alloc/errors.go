package alloc

import "errors"

var (
	// ErrInvalidSize indicates a non-positive allocation size.
	ErrInvalidSize = errors.New("alloc: size must be positive")

	// ErrOutOfMemory indicates no free block fits and the region could not grow.
	ErrOutOfMemory = errors.New("alloc: out of memory")

	// ErrBadPtr indicates a pointer that does not address a live block header.
	ErrBadPtr = errors.New("alloc: bad pointer")

	// ErrDoubleFree indicates a pointer whose block is already free.
	ErrDoubleFree = errors.New("alloc: block already free")

	// ErrCorrupt indicates that an existing region does not hold a valid directory.
	ErrCorrupt = errors.New("alloc: corrupt heap directory")
)
