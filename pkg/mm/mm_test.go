package mm

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajiku17/PersonalOSAssignments/heap"
	"github.com/ajiku17/PersonalOSAssignments/heap/alloc"
)

// fresh installs a new default heap for the test.
func fresh(t *testing.T, limit int) {
	t.Helper()
	require.NoError(t, Reset(heap.NewMemRegion(limit)))
	t.Cleanup(func() { _ = Reset(nil) })
}

func TestMallocFree(t *testing.T) {
	fresh(t, 0)

	p := Malloc(4)
	require.NotEqual(t, Null, p)
	b := Bytes(p)
	require.Len(t, b, 4)
	b[0] = 0x62
	b[1] = 0x01

	q := Realloc(p, 8)
	require.NotEqual(t, Null, q)
	assert.Equal(t, []byte{0x62, 0x01, 0, 0}, Bytes(q)[:4])

	Free(q)
	assert.Nil(t, Bytes(q))
	Free(Null)
	Free(q) // second free is ignored
}

func TestFailuresReturnNull(t *testing.T) {
	fresh(t, 64)

	assert.Equal(t, Null, Malloc(0))
	assert.Equal(t, Null, Malloc(-1))
	assert.Equal(t, Null, Malloc(64), "64 bytes plus a header exceeds the limit")

	p := Malloc(8)
	require.NotEqual(t, Null, p)
	assert.Equal(t, Null, Realloc(p, 100))
	assert.Equal(t, Null, Realloc(Null, 0))
	assert.Nil(t, Bytes(alloc.Ptr(3)))
}

func TestReallocZeroFrees(t *testing.T) {
	fresh(t, 0)
	p := Malloc(16)
	assert.Equal(t, Null, Realloc(p, 0))

	q := Malloc(16)
	assert.Equal(t, p, q, "the released block is reused")
}

func TestDefaultIsLazy(t *testing.T) {
	require.NoError(t, Reset(nil))
	t.Cleanup(func() { _ = Reset(nil) })

	a := Default()
	require.NotNil(t, a)
	assert.Same(t, a, Default())
	assert.Equal(t, 0, a.Top())

	p := Malloc(10)
	require.NotEqual(t, Null, p)
	assert.Equal(t, alloc.HeaderSize+10, Default().Top())
}

func TestResetRejectsCorruptRegion(t *testing.T) {
	fresh(t, 0)
	before := Default()

	r := heap.NewMemRegion(0)
	_, err := r.Sbrk(5)
	require.NoError(t, err)

	require.ErrorIs(t, Reset(r), alloc.ErrCorrupt)
	assert.Same(t, before, Default(), "a failed reset keeps the current heap")
}

func TestOversizedRequestReturnsNull(t *testing.T) {
	require.NoError(t, Reset(nil))
	t.Cleanup(func() { _ = Reset(nil) })

	// The lazily built default heap grows up to the data limit, which is
	// unlimited on most hosts.
	assert.Equal(t, Null, Malloc(1<<50))
	assert.Equal(t, Null, Malloc(math.MaxInt))

	p := Malloc(16)
	require.NotEqual(t, Null, p)
	top := Default().Top()
	assert.Equal(t, Null, Realloc(p, 1<<50))
	assert.Equal(t, top, Default().Top())
}
