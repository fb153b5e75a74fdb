// Package workload holds the named allocation scenarios mmctl runs against
// an allocator. Each scenario checks its own data and frees what it
// allocates.
package workload

import (
	"errors"
	"fmt"
	"time"

	"github.com/ajiku17/PersonalOSAssignments/heap/alloc"
	"github.com/ajiku17/PersonalOSAssignments/internal/format"
)

var (
	// ErrUnknown is returned by Run for a name with no registered workload.
	ErrUnknown = errors.New("workload: unknown workload")

	// ErrNull means an allocation the workload depends on failed.
	ErrNull = errors.New("workload: allocation returned null")

	// ErrMismatch means a value read back differs from the one written.
	ErrMismatch = errors.New("workload: value mismatch")

	// ErrGrew means the heap grew where reuse was required.
	ErrGrew = errors.New("workload: heap grew")
)

// intSize is the width of the integers the workloads store.
const intSize = 4

// Heap is the allocator surface the workloads drive.
type Heap interface {
	Malloc(size int) (alloc.Ptr, error)
	Realloc(p alloc.Ptr, size int) (alloc.Ptr, error)
	Free(p alloc.Ptr) error
	Bytes(p alloc.Ptr) ([]byte, error)
	Top() int
	Stats() alloc.Stats
}

// Workload is a named scenario.
type Workload struct {
	Name        string
	Description string
	Run         func(h Heap) error
}

// Result describes one workload run.
type Result struct {
	Name      string        `json:"name"`
	Duration  time.Duration `json:"duration_ns"`
	GrowCalls int           `json:"grow_calls"`
	TopBefore int           `json:"top_before"`
	TopAfter  int           `json:"top_after"`
	Error     string        `json:"error,omitempty"`
	Err       error         `json:"-"`
}

// OK reports whether the workload passed.
func (r Result) OK() bool { return r.Err == nil }

var registry = []Workload{
	{"malloc-simple", "one int holding 0x162, then freed", mallocSimple},
	{"malloc-small-simple", "10000 single ints written, checked and freed", mallocSmallSimple},
	{"malloc-big-simple", "1000 blocks of 400 ints with sentinels at 0, 199 and 399", mallocBigSimple},
	{"malloc-small-reuse", "free a 10000-int block, then allocate 10000 single ints", mallocSmallReuse},
	{"realloc-small-simple", "10000 single ints, even ones resized to two ints", reallocSmallSimple},
	{"realloc-small-reuse", "free odd ints, resize even ints to two; the heap must not grow", reallocSmallReuse},
}

// All returns every workload in run order.
func All() []Workload {
	return append([]Workload(nil), registry...)
}

// Names returns the workload names in run order.
func Names() []string {
	names := make([]string, len(registry))
	for i, w := range registry {
		names[i] = w.Name
	}
	return names
}

// Lookup returns the workload called name.
func Lookup(name string) (Workload, bool) {
	for _, w := range registry {
		if w.Name == name {
			return w, true
		}
	}
	return Workload{}, false
}

// Run runs the named workloads (all of them when names is empty) in order on
// h. Every workload runs even if an earlier one failed; the returned error
// joins the failures. Unknown names fail before anything runs.
func Run(h Heap, names ...string) ([]Result, error) {
	ws := registry
	if len(names) > 0 {
		ws = make([]Workload, 0, len(names))
		for _, name := range names {
			w, ok := Lookup(name)
			if !ok {
				return nil, fmt.Errorf("%w: %q", ErrUnknown, name)
			}
			ws = append(ws, w)
		}
	}

	results := make([]Result, 0, len(ws))
	var errs []error
	for _, w := range ws {
		res := runOne(h, w)
		if res.Err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", w.Name, res.Err))
		}
		results = append(results, res)
	}
	return results, errors.Join(errs...)
}

func runOne(h Heap, w Workload) Result {
	res := Result{Name: w.Name, TopBefore: h.Top()}
	grows := h.Stats().GrowCalls

	start := time.Now()
	res.Err = w.Run(h)
	res.Duration = time.Since(start)

	res.TopAfter = h.Top()
	res.GrowCalls = h.Stats().GrowCalls - grows
	if res.Err != nil {
		res.Error = res.Err.Error()
	}
	return res
}

// setInt stores v as the idx-th int of the payload at p.
func setInt(h Heap, p alloc.Ptr, idx int, v uint32) error {
	b, err := h.Bytes(p)
	if err != nil {
		return err
	}
	if (idx+1)*intSize > len(b) {
		return fmt.Errorf("int %d past the %d-byte payload at %d", idx, len(b), p)
	}
	format.PutU32(b, idx*intSize, v)
	return nil
}

// expectInt checks the idx-th int of the payload at p.
func expectInt(h Heap, p alloc.Ptr, idx int, want uint32) error {
	b, err := h.Bytes(p)
	if err != nil {
		return err
	}
	if (idx+1)*intSize > len(b) {
		return fmt.Errorf("int %d past the %d-byte payload at %d", idx, len(b), p)
	}
	if got := format.ReadU32(b, idx*intSize); got != want {
		return fmt.Errorf("%w: payload %d int %d = %#x, want %#x", ErrMismatch, p, idx, got, want)
	}
	return nil
}

func mustAlloc(h Heap, size int) (alloc.Ptr, error) {
	p, err := h.Malloc(size)
	if err != nil {
		return alloc.Null, fmt.Errorf("%w: malloc(%d): %w", ErrNull, size, err)
	}
	return p, nil
}
