package heap

import (
	"math"

	"github.com/ajiku17/PersonalOSAssignments/internal/buf"
)

// MaxRegion is the largest Top any region will grow to, whatever its limit.
// Requests past it fail with ErrNoMemory instead of reaching the runtime
// allocator, which panics on lengths it cannot represent.
const MaxRegion = min(1<<40, math.MaxInt)

// Region is the grow-heap collaborator consumed by an allocator.
type Region interface {
	// Sbrk extends the region by n zeroed bytes and returns the previous top.
	// Sbrk(0) returns the current top. Growth is all-or-nothing: on error the
	// region is unchanged.
	Sbrk(n int) (int, error)

	// Bytes returns the region contents [0, Top()). The slice is invalidated
	// by the next successful Sbrk.
	Bytes() []byte

	// Top returns the current size of the region in bytes.
	Top() int
}

// nextTop validates a growth request against limit (0 = unlimited).
func nextTop(top, n, limit int) (int, error) {
	if n < 0 {
		return 0, ErrShrink
	}
	newTop, ok := buf.AddOverflowSafe(top, n)
	if !ok || newTop > MaxRegion || (limit > 0 && newTop > limit) {
		return 0, ErrNoMemory
	}
	return newTop, nil
}

// growCap returns the capacity to reserve for newTop bytes, clamped to limit
// and MaxRegion but never below newTop.
func growCap(current, newTop, minimum, limit int) int {
	c := min(buf.Grow(current, newTop, minimum), MaxRegion)
	if limit > 0 {
		c = min(c, limit)
	}
	return max(c, newTop)
}
