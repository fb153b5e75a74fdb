package format

import "errors"

var (
	// ErrTruncated indicates the buffer lacked the bytes required for a structure.
	ErrTruncated = errors.New("format: truncated buffer")
	// ErrBadLink indicates a stored link that is neither NilOffset nor addressable.
	ErrBadLink = errors.New("format: link out of range")
)
