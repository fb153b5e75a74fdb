package workload

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajiku17/PersonalOSAssignments/heap"
	"github.com/ajiku17/PersonalOSAssignments/heap/alloc"
)

func newHeap(t *testing.T, limit int) *alloc.Allocator {
	t.Helper()
	a, err := alloc.New(heap.NewMemRegion(limit), nil)
	require.NoError(t, err)
	return a
}

func TestNamesAndLookup(t *testing.T) {
	assert.Equal(t, []string{
		"malloc-simple",
		"malloc-small-simple",
		"malloc-big-simple",
		"malloc-small-reuse",
		"realloc-small-simple",
		"realloc-small-reuse",
	}, Names())

	for _, w := range All() {
		got, ok := Lookup(w.Name)
		require.True(t, ok)
		assert.Equal(t, w.Description, got.Description)
		assert.NotEmpty(t, w.Description)
	}
	_, ok := Lookup("nope")
	assert.False(t, ok)
}

func TestRun_All(t *testing.T) {
	a := newHeap(t, 0)

	results, err := Run(a)
	require.NoError(t, err)
	require.Len(t, results, len(Names()))
	for i, res := range results {
		assert.Equal(t, Names()[i], res.Name)
		assert.True(t, res.OK(), "%s: %v", res.Name, res.Err)
		assert.Empty(t, res.Error)
		assert.GreaterOrEqual(t, res.TopAfter, res.TopBefore)
	}
	assert.Positive(t, results[0].GrowCalls, "the first workload starts from an empty heap")

	// Everything a workload allocates is released again.
	require.NoError(t, a.Check())
	u := a.Usage()
	assert.Equal(t, 0, u.UsedBlocks)
	assert.Equal(t, 1, u.FreeBlocks)
}

func TestRun_ReuseWorkloadsOnFreshHeap(t *testing.T) {
	tests := []struct {
		name  string
		grows int
	}{
		// 1 for the big block, then one per int the freed block cannot hold.
		{"malloc-small-reuse", 1 + smallCount - 1112},
		// Only the initial ints grow the heap; the resizes reuse holes.
		{"realloc-small-reuse", smallCount},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newHeap(t, 0)
			results, err := Run(a, tt.name)
			require.NoError(t, err)
			require.Len(t, results, 1)
			assert.Equal(t, tt.grows, results[0].GrowCalls)
		})
	}
}

func TestRun_UnknownRunsNothing(t *testing.T) {
	a := newHeap(t, 0)
	results, err := Run(a, "malloc-simple", "bogus")
	require.ErrorIs(t, err, ErrUnknown)
	assert.Nil(t, results)
	assert.Equal(t, 0, a.Top())
}

func TestRun_OutOfMemory(t *testing.T) {
	a := newHeap(t, 4096)

	results, err := Run(a, "malloc-simple", "malloc-big-simple", "malloc-simple")
	require.ErrorIs(t, err, ErrNull)
	require.ErrorIs(t, err, alloc.ErrOutOfMemory)
	require.Len(t, results, 3, "later workloads still run")
	assert.True(t, results[0].OK())
	assert.False(t, results[1].OK())
	assert.Contains(t, results[1].Error, "allocation returned null")
	assert.True(t, results[2].OK())
}

// lossyHeap hands out copies of payloads so writes never land.
type lossyHeap struct{ *alloc.Allocator }

func (h lossyHeap) Bytes(p alloc.Ptr) ([]byte, error) {
	b, err := h.Allocator.Bytes(p)
	return append([]byte(nil), b...), err
}

func TestRun_DetectsMismatch(t *testing.T) {
	_, err := Run(lossyHeap{newHeap(t, 0)}, "malloc-simple")
	require.ErrorIs(t, err, ErrMismatch)
}

// leakyTop reports a top that moves on every resize.
type leakyTop struct {
	*alloc.Allocator
	bump int
}

func (h *leakyTop) Realloc(p alloc.Ptr, size int) (alloc.Ptr, error) {
	h.bump++
	return h.Allocator.Realloc(p, size)
}

func (h *leakyTop) Top() int { return h.Allocator.Top() + h.bump }

func TestRun_DetectsGrowth(t *testing.T) {
	results, err := Run(&leakyTop{Allocator: newHeap(t, 0)}, "realloc-small-reuse")
	require.ErrorIs(t, err, ErrGrew)
	assert.Contains(t, results[0].Error, "top moved")
}
