package heap

import "errors"

var (
	// ErrNoMemory indicates the region cannot grow by the requested amount.
	ErrNoMemory = errors.New("heap: cannot grow region")

	// ErrShrink indicates a negative growth request; regions never shrink.
	ErrShrink = errors.New("heap: region cannot shrink")

	// ErrClosed indicates an operation on a closed region.
	ErrClosed = errors.New("heap: region closed")
)
