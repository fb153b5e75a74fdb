package dirty

import (
	"context"
	"sort"
)

const (
	// defaultRangeCapacity is the pre-allocated capacity for dirty ranges.
	defaultRangeCapacity = 64

	// standardPageSize is the typical OS page size (4KB).
	standardPageSize = 4096
)

// Range represents a dirty byte range (absolute heap offsets).
type Range struct {
	Off int64 // Absolute offset in the heap
	Len int64 // Length in bytes
}

// Tracker accumulates dirty ranges and flushes them with msync.
//
// NOT thread-safe. Only one goroutine should use it at a time.
type Tracker struct {
	ranges   []Range
	pageSize int64
}

// NewTracker creates a tracker that aligns ranges to pageSize.
// A pageSize <= 0 selects the standard 4KB page.
func NewTracker(pageSize int) *Tracker {
	ps := int64(pageSize)
	if ps <= 0 {
		ps = standardPageSize
	}
	return &Tracker{
		ranges:   make([]Range, 0, defaultRangeCapacity),
		pageSize: ps,
	}
}

// Add records a dirty range. Empty and negative ranges are ignored.
func (t *Tracker) Add(off, length int) {
	if length <= 0 || off < 0 {
		return
	}
	t.ranges = append(t.ranges, Range{
		Off: int64(off),
		Len: int64(length),
	})
}

// Len returns the number of raw (uncoalesced) ranges recorded.
func (t *Tracker) Len() int { return len(t.ranges) }

// Reset clears all tracked ranges.
func (t *Tracker) Reset() {
	t.ranges = t.ranges[:0]
}

// Ranges returns a copy of the raw, uncoalesced ranges.
func (t *Tracker) Ranges() []Range {
	result := make([]Range, len(t.ranges))
	copy(result, t.ranges)
	return result
}

// Coalesced returns the page-aligned, sorted, merged ranges that Flush writes.
func (t *Tracker) Coalesced() []Range {
	return t.coalesce()
}

// Flush msyncs every dirty page of data and clears the tracked ranges.
//
// data must be the whole mapping (starting at heap offset 0). Ranges that
// extend past len(data) are clipped. If ctx is cancelled between ranges the
// remaining ranges stay tracked so a later Flush can finish the job.
func (t *Tracker) Flush(ctx context.Context, data []byte) error {
	if len(t.ranges) == 0 {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(data) == 0 {
		t.Reset()
		return nil
	}

	if err := flushRanges(ctx, data, t.coalesce()); err != nil {
		return err
	}

	t.Reset()
	return nil
}

// coalesce page-aligns all ranges, sorts them, and merges overlapping/adjacent ranges.
func (t *Tracker) coalesce() []Range {
	if len(t.ranges) == 0 {
		return nil
	}

	aligned := make([]Range, len(t.ranges))
	for i, r := range t.ranges {
		start := (r.Off / t.pageSize) * t.pageSize

		end := r.Off + r.Len
		if end%t.pageSize != 0 {
			end = ((end / t.pageSize) + 1) * t.pageSize
		}

		aligned[i] = Range{
			Off: start,
			Len: end - start,
		}
	}

	sort.Slice(aligned, func(i, j int) bool {
		return aligned[i].Off < aligned[j].Off
	})

	merged := make([]Range, 0, len(aligned))
	current := aligned[0]

	for i := 1; i < len(aligned); i++ {
		next := aligned[i]

		if next.Off <= current.Off+current.Len {
			end := max(current.Off+current.Len, next.Off+next.Len)
			current.Len = end - current.Off
		} else {
			merged = append(merged, current)
			current = next
		}
	}

	merged = append(merged, current)

	return merged
}

// clip bounds r to a mapping of length n, reporting false when nothing remains.
func clip(r Range, n int) (int, int, bool) {
	start := int(r.Off)
	end := int(r.Off + r.Len)
	if start >= n {
		return 0, 0, false
	}
	return start, min(end, n), true
}
