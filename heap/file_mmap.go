//go:build linux || darwin

package heap

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"

	"golang.org/x/sys/unix"

	"github.com/ajiku17/PersonalOSAssignments/heap/dirty"
	"github.com/ajiku17/PersonalOSAssignments/internal/buf"
)

type fileHandle = *os.File

// OpenFile opens (creating if needed) the file at path and maps it RW so the
// heap is mutated in place. An existing file's size becomes the initial Top.
func OpenFile(path string, opts *FileOptions) (*FileRegion, error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o600)
	if err != nil {
		return nil, err
	}

	st, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	sz := st.Size()
	if sz > math.MaxInt {
		_ = f.Close()
		return nil, fmt.Errorf("heap: file too large to map (%d bytes)", sz)
	}

	r := newFileRegion(f, path, int(sz), opts, os.Getpagesize())
	if r.top > 0 {
		if err := r.remap(buf.Grow(0, r.top, r.chunk)); err != nil {
			_ = f.Close()
			return nil, err
		}
	}
	return r, nil
}

// mmap is swapped out by tests to simulate mapping failures.
var mmap = unix.Mmap

// remap resizes the file to capacity bytes and maps it again. The new mapping
// is established before the old one is released, so on failure the region
// keeps its previous mapping and capacity.
func (r *FileRegion) remap(capacity int) error {
	oldCap := len(r.data)

	if err := r.f.Truncate(int64(capacity)); err != nil {
		_ = r.f.Truncate(int64(oldCap))
		return fmt.Errorf("heap: failed to truncate file: %w", err)
	}

	data, err := mmap(int(r.f.Fd()), 0, capacity, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		_ = r.f.Truncate(int64(oldCap))
		return fmt.Errorf("heap: failed to remap after grow: %w", err)
	}

	if r.data != nil {
		// Both mappings share the file pages; a failed unmap only leaks
		// address space.
		_ = unix.Munmap(r.data)
	}
	r.data = data
	return nil
}

// Sync writes back the pages touched since the last sync.
func (r *FileRegion) Sync(ctx context.Context) error {
	if r.f == nil {
		return ErrClosed
	}
	return r.dt.Flush(ctx, r.data)
}

// SyncAll msyncs the whole mapping and fsyncs the file.
func (r *FileRegion) SyncAll(ctx context.Context) error {
	if r.f == nil {
		return ErrClosed
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := dirty.Msync(r.data); err != nil {
		return err
	}
	r.dt.Reset()
	return r.f.Sync()
}

// Close unmaps the region and truncates the file to Top.
func (r *FileRegion) Close() error {
	if r.f == nil {
		return nil
	}
	var errs []error
	if r.data != nil {
		if err := unix.Munmap(r.data); err != nil && !errors.Is(err, unix.EINVAL) {
			errs = append(errs, err)
		}
		r.data = nil
	}
	if err := r.f.Truncate(int64(r.top)); err != nil {
		errs = append(errs, err)
	}
	if err := r.f.Close(); err != nil {
		errs = append(errs, err)
	}
	r.f = nil
	return errors.Join(errs...)
}
