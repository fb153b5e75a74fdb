package workload

import (
	"fmt"

	"github.com/ajiku17/PersonalOSAssignments/heap/alloc"
)

const (
	smallCount = 10000
	bigCount   = 1000
	bigInts    = 400
)

func mallocSimple(h Heap) error {
	p, err := mustAlloc(h, intSize)
	if err != nil {
		return err
	}
	if err := setInt(h, p, 0, 0x162); err != nil {
		return err
	}
	if err := expectInt(h, p, 0, 0x162); err != nil {
		return err
	}
	return h.Free(p)
}

// fillSmall allocates n single ints holding their index.
func fillSmall(h Heap, n int) ([]alloc.Ptr, error) {
	ps := make([]alloc.Ptr, n)
	for i := range ps {
		p, err := mustAlloc(h, intSize)
		if err != nil {
			return nil, err
		}
		if err := setInt(h, p, 0, uint32(i)); err != nil {
			return nil, err
		}
		ps[i] = p
	}
	return ps, nil
}

// checkAndFree verifies every block holds its index and releases it.
func checkAndFree(h Heap, ps []alloc.Ptr, step int) error {
	for i := 0; i < len(ps); i += step {
		if err := expectInt(h, ps[i], 0, uint32(i)); err != nil {
			return err
		}
		if err := h.Free(ps[i]); err != nil {
			return err
		}
	}
	return nil
}

func mallocSmallSimple(h Heap) error {
	ps, err := fillSmall(h, smallCount)
	if err != nil {
		return err
	}
	return checkAndFree(h, ps, 1)
}

func mallocBigSimple(h Heap) error {
	sentinels := []struct {
		idx int
		val uint32
	}{{0, 0x41}, {199, 0x42}, {399, 0x43}}

	ps := make([]alloc.Ptr, bigCount)
	for i := range ps {
		p, err := mustAlloc(h, bigInts*intSize)
		if err != nil {
			return err
		}
		for _, s := range sentinels {
			if err := setInt(h, p, s.idx, s.val); err != nil {
				return err
			}
		}
		ps[i] = p
	}

	for _, p := range ps {
		for _, s := range sentinels {
			if err := expectInt(h, p, s.idx, s.val); err != nil {
				return err
			}
		}
		if err := h.Free(p); err != nil {
			return err
		}
	}
	return nil
}

func mallocSmallReuse(h Heap) error {
	big, err := mustAlloc(h, smallCount*intSize)
	if err != nil {
		return err
	}
	if err := h.Free(big); err != nil {
		return err
	}

	ps, err := fillSmall(h, smallCount)
	if err != nil {
		return err
	}
	return checkAndFree(h, ps, 1)
}

func reallocSmallSimple(h Heap) error {
	ps, err := fillSmall(h, smallCount)
	if err != nil {
		return err
	}
	for i := 0; i < len(ps); i += 2 {
		p, err := h.Realloc(ps[i], 2*intSize)
		if err != nil {
			return fmt.Errorf("%w: realloc #%d: %w", ErrNull, i, err)
		}
		ps[i] = p
	}
	return checkAndFree(h, ps, 1)
}

func reallocSmallReuse(h Heap) error {
	ps, err := fillSmall(h, smallCount)
	if err != nil {
		return err
	}
	top := h.Top()

	for i := 1; i < len(ps); i += 2 {
		if err := h.Free(ps[i]); err != nil {
			return err
		}
	}
	for i := 0; i < len(ps); i += 2 {
		p, err := h.Realloc(ps[i], 2*intSize)
		if err != nil {
			return fmt.Errorf("%w: realloc #%d: %w", ErrNull, i, err)
		}
		ps[i] = p
	}
	if now := h.Top(); now != top {
		return fmt.Errorf("%w: top moved from %d to %d", ErrGrew, top, now)
	}
	return checkAndFree(h, ps, 2)
}
