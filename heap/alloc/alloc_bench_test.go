package alloc

import (
	"testing"

	"github.com/ajiku17/PersonalOSAssignments/heap"
)

// BenchmarkMalloc_Grow measures the slow path: every allocation extends the region.
func BenchmarkMalloc_Grow(b *testing.B) {
	a, err := New(heap.NewMemRegion(0), nil)
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	b.ReportAllocs()

	for i := range b.N {
		if _, err := a.Malloc(16 + i%64); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkMallocFree_Reuse measures the fast path on a single recycled block.
func BenchmarkMallocFree_Reuse(b *testing.B) {
	a, err := New(heap.NewMemRegion(0), nil)
	if err != nil {
		b.Fatal(err)
	}
	p, err := a.Malloc(256)
	if err != nil {
		b.Fatal(err)
	}
	if err := a.Free(p); err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	b.ReportAllocs()

	for range b.N {
		p, err := a.Malloc(128)
		if err != nil {
			b.Fatal(err)
		}
		if err := a.Free(p); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkMalloc_FirstFitScan measures the cost of walking past used
// blocks before reaching a fit. First fit is linear in the directory length.
func BenchmarkMalloc_FirstFitScan(b *testing.B) {
	for _, bc := range []struct {
		name string
		n    int
	}{{"100", 100}, {"1K", 1000}, {"10K", 10000}} {
		n := bc.n
		b.Run(bc.name, func(b *testing.B) {
			a, err := New(heap.NewMemRegion(0), nil)
			if err != nil {
				b.Fatal(err)
			}
			for range n {
				if _, err := a.Malloc(8); err != nil {
					b.Fatal(err)
				}
			}
			hole, err := a.Malloc(64)
			if err != nil {
				b.Fatal(err)
			}
			if _, err := a.Malloc(8); err != nil {
				b.Fatal(err)
			}
			if err := a.Free(hole); err != nil {
				b.Fatal(err)
			}

			b.ResetTimer()
			for range b.N {
				p, err := a.Malloc(64)
				if err != nil {
					b.Fatal(err)
				}
				if err := a.Free(p); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

// BenchmarkRealloc_Double measures repeated doubling of one allocation.
func BenchmarkRealloc_Double(b *testing.B) {
	b.ReportAllocs()
	for range b.N {
		a, err := New(heap.NewMemRegion(0), nil)
		if err != nil {
			b.Fatal(err)
		}
		p, err := a.Malloc(8)
		if err != nil {
			b.Fatal(err)
		}
		for size := 16; size <= 1<<16; size *= 2 {
			if p, err = a.Realloc(p, size); err != nil {
				b.Fatal(err)
			}
		}
	}
}
