package alloc

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

// live tracks a payload and the byte pattern it should hold.
type live struct {
	p    Ptr
	size int
	seed byte
}

func (l live) write(t *testing.T, a *Allocator) {
	t.Helper()
	b, err := a.Bytes(l.p)
	require.NoError(t, err)
	for i := range l.size {
		b[i] = l.seed + byte(i)
	}
}

func (l live) verify(t *testing.T, a *Allocator, n int) {
	t.Helper()
	b, err := a.Bytes(l.p)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(b), l.size)
	for i := range min(n, l.size) {
		if b[i] != l.seed+byte(i) {
			t.Fatalf("payload %d byte %d = %#x, want %#x", l.p, i, b[i], l.seed+byte(i))
		}
	}
}

// TestRandomOperations drives a fixed-seed mix of malloc, free and realloc
// against a bounded region, checking the directory after every step and the
// payload contents periodically.
func TestRandomOperations(t *testing.T) {
	for _, seed := range []int64{1, 42, 20260101} {
		t.Run("", func(t *testing.T) {
			runRandom(t, seed, 3000, 96*1024)
		})
	}
}

func runRandom(t *testing.T, seed int64, ops, limit int) {
	rng := rand.New(rand.NewSource(seed))
	a, r := newTestAllocator(t, limit)
	var objs []live

	for op := range ops {
		switch k := rng.Intn(10); {
		case k < 5 || len(objs) == 0:
			size := 1 + rng.Intn(512)
			top := r.Top()
			before := blocks(a)
			p, err := a.Malloc(size)
			if errors.Is(err, ErrOutOfMemory) {
				require.Equal(t, top, r.Top())
				require.Equal(t, before, blocks(a))
				break
			}
			require.NoError(t, err)
			l := live{p: p, size: size, seed: byte(rng.Intn(256))}
			l.write(t, a)
			objs = append(objs, l)

		case k < 8:
			i := rng.Intn(len(objs))
			require.NoError(t, a.Free(objs[i].p))
			objs = append(objs[:i], objs[i+1:]...)

		default:
			i := rng.Intn(len(objs))
			old := objs[i]
			size := rng.Intn(600)
			p, err := a.Realloc(old.p, size)
			switch {
			case errors.Is(err, ErrOutOfMemory), size == 0:
				require.Equal(t, Null, p)
				objs = append(objs[:i], objs[i+1:]...)
			default:
				require.NoError(t, err)
				moved := live{p: p, size: size, seed: old.seed}
				moved.verify(t, a, old.size)
				moved.write(t, a)
				objs[i] = moved
			}
		}

		require.NoError(t, a.Check(), "op %d", op)
		if op%100 == 0 {
			for _, l := range objs {
				l.verify(t, a, l.size)
			}
		}
	}

	for _, l := range objs {
		l.verify(t, a, l.size)
		require.NoError(t, a.Free(l.p))
	}
	u := a.Usage()
	require.Equal(t, 0, u.UsedBlocks)
	require.LessOrEqual(t, u.FreeBlocks, 1, "everything must coalesce once all is freed")
	require.Equal(t, u.Top, u.UsedBytes+u.FreeBytes+u.Overhead)
}
