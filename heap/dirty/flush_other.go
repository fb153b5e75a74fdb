//go:build !linux && !darwin

package dirty

import "context"

// flushRanges is a no-op where the heap is not memory mapped; the owning
// region writes its buffer back explicitly.
func flushRanges(ctx context.Context, _ []byte, _ []Range) error {
	return ctx.Err()
}

// Msync is a no-op where the heap is not memory mapped.
func Msync(_ []byte) error { return nil }
