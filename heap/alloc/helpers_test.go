package alloc

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ajiku17/PersonalOSAssignments/heap"
	"github.com/ajiku17/PersonalOSAssignments/internal/format"
)

// intSize is the width of the integers the workloads store.
const intSize = 4

// newTestAllocator returns an allocator over a fresh in-memory region.
// limit <= 0 means the region may grow without bound.
func newTestAllocator(t testing.TB, limit int) (*Allocator, *heap.MemRegion) {
	t.Helper()
	r := heap.NewMemRegion(limit)
	a, err := New(r, nil)
	require.NoError(t, err)
	return a, r
}

func mustMalloc(t testing.TB, a *Allocator, size int) Ptr {
	t.Helper()
	p, err := a.Malloc(size)
	require.NoError(t, err)
	require.NotEqual(t, Null, p)
	return p
}

func mustFree(t testing.TB, a *Allocator, p Ptr) {
	t.Helper()
	require.NoError(t, a.Free(p))
}

func putInt(t testing.TB, a *Allocator, p Ptr, idx int, v uint32) {
	t.Helper()
	b, err := a.Bytes(p)
	require.NoError(t, err)
	format.PutU32(b, idx*intSize, v)
}

func getInt(t testing.TB, a *Allocator, p Ptr, idx int) uint32 {
	t.Helper()
	b, err := a.Bytes(p)
	require.NoError(t, err)
	return format.ReadU32(b, idx*intSize)
}

func fill(t testing.TB, a *Allocator, p Ptr, v byte) {
	t.Helper()
	b, err := a.Bytes(p)
	require.NoError(t, err)
	for i := range b {
		b[i] = v
	}
}

// assertInvariants fails the test when the directory is inconsistent.
func assertInvariants(t testing.TB, a *Allocator) {
	t.Helper()
	require.NoError(t, a.Check())
}

// blocks collects the directory for comparison.
func blocks(a *Allocator) []BlockInfo {
	var out []BlockInfo
	for b := range a.Blocks() {
		out = append(out, b)
	}
	return out
}

// shape is a compact (size, free) view of the directory.
type shape struct {
	Size int
	Free bool
}

func shapes(a *Allocator) []shape {
	var out []shape
	for b := range a.Blocks() {
		out = append(out, shape{b.Size, b.Free})
	}
	return out
}
