package heap

import (
	"fmt"

	"github.com/ajiku17/PersonalOSAssignments/heap/dirty"
)

// defaultFileChunk is the minimum capacity step of a FileRegion (64KB).
const defaultFileChunk = 64 << 10

// FileOptions configures a FileRegion. The zero value is usable.
type FileOptions struct {
	Limit int // Maximum Top in bytes; 0 = unlimited
	Chunk int // Minimum capacity step in bytes; 0 = 64KB
}

// FileRegion is a Region persisted in a file.
//
// The file is kept at the mapped capacity while open and truncated back to
// Top on Close, so reopening the file restores exactly the heap bytes.
type FileRegion struct {
	f     fileHandle
	path  string
	data  []byte // len(data) is the reserved capacity
	top   int
	limit int
	chunk int
	dt    *dirty.Tracker
}

func newFileRegion(f fileHandle, path string, top int, opts *FileOptions, pageSize int) *FileRegion {
	if opts == nil {
		opts = &FileOptions{}
	}
	chunk := opts.Chunk
	if chunk <= 0 {
		chunk = defaultFileChunk
	}
	return &FileRegion{
		f:     f,
		path:  path,
		top:   top,
		limit: max(opts.Limit, 0),
		chunk: chunk,
		dt:    dirty.NewTracker(pageSize),
	}
}

// Sbrk implements Region.
func (r *FileRegion) Sbrk(n int) (int, error) {
	if r.f == nil {
		return 0, ErrClosed
	}
	prev := r.top
	newTop, err := nextTop(prev, n, r.limit)
	if err != nil {
		return 0, err
	}
	if n == 0 {
		return prev, nil
	}

	if newTop > len(r.data) {
		if err := r.remap(growCap(len(r.data), newTop, r.chunk, r.limit)); err != nil {
			return 0, fmt.Errorf("%w: %w", ErrNoMemory, err)
		}
	}

	r.top = newTop
	clear(r.data[prev:newTop])
	r.dt.Add(prev, n)
	return prev, nil
}

// Bytes implements Region.
func (r *FileRegion) Bytes() []byte {
	if r.data == nil {
		return nil
	}
	return r.data[:r.top:r.top]
}

// Top implements Region.
func (r *FileRegion) Top() int { return r.top }

// Path returns the backing file path.
func (r *FileRegion) Path() string { return r.path }

// Capacity returns the number of bytes currently reserved in the file.
func (r *FileRegion) Capacity() int { return len(r.data) }

// Add implements dirty.DirtyTracker.
func (r *FileRegion) Add(off, length int) { r.dt.Add(off, length) }

// Pending returns the page-aligned ranges the next Sync would write.
func (r *FileRegion) Pending() []dirty.Range { return r.dt.Coalesced() }

var (
	_ Region             = (*FileRegion)(nil)
	_ dirty.DirtyTracker = (*FileRegion)(nil)
)
