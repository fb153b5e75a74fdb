package heap

// minMemReserve is the smallest capacity a MemRegion reserves on first growth.
const minMemReserve = 4096

// MemRegion is an in-memory Region backed by a Go byte slice.
type MemRegion struct {
	data  []byte
	limit int
}

// NewMemRegion returns an empty region that refuses to grow past limit bytes.
// A limit <= 0 means unlimited.
func NewMemRegion(limit int) *MemRegion {
	return &MemRegion{limit: max(limit, 0)}
}

// Sbrk implements Region.
func (r *MemRegion) Sbrk(n int) (int, error) {
	prev := len(r.data)
	newTop, err := nextTop(prev, n, r.limit)
	if err != nil {
		return 0, err
	}
	if n == 0 {
		return prev, nil
	}

	if newTop > cap(r.data) {
		grown := make([]byte, newTop, growCap(cap(r.data), newTop, minMemReserve, r.limit))
		copy(grown, r.data)
		r.data = grown
		return prev, nil
	}

	r.data = r.data[:newTop]
	clear(r.data[prev:])
	return prev, nil
}

// Bytes implements Region.
func (r *MemRegion) Bytes() []byte { return r.data }

// Top implements Region.
func (r *MemRegion) Top() int { return len(r.data) }

// Limit returns the configured growth limit (0 = unlimited).
func (r *MemRegion) Limit() int { return r.limit }

var _ Region = (*MemRegion)(nil)
