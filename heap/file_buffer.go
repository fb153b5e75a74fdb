//go:build !linux && !darwin

package heap

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
)

type fileHandle = *os.File

// OpenFile loads the file at path into memory on platforms without mmap
// support. Changes reach the file on Sync, SyncAll and Close.
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
		return nil, fmt.Errorf("heap: file too large to load (%d bytes)", sz)
	}

	r := newFileRegion(f, path, int(sz), opts, os.Getpagesize())
	if r.top > 0 {
		r.data = make([]byte, r.top)
		if _, err := io.ReadFull(f, r.data); err != nil {
			_ = f.Close()
			return nil, err
		}
	}
	return r, nil
}

// remap grows the in-memory buffer to capacity bytes.
func (r *FileRegion) remap(capacity int) error {
	grown := make([]byte, capacity)
	copy(grown, r.data)
	r.data = grown
	return nil
}

func (r *FileRegion) writeBack() error {
	if _, err := r.f.WriteAt(r.data[:r.top], 0); err != nil {
		return err
	}
	return r.f.Truncate(int64(r.top))
}

// Sync writes the heap bytes back to the file.
func (r *FileRegion) Sync(ctx context.Context) error {
	if r.f == nil {
		return ErrClosed
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := r.writeBack(); err != nil {
		return err
	}
	r.dt.Reset()
	return nil
}

// SyncAll writes the heap bytes back and fsyncs the file.
func (r *FileRegion) SyncAll(ctx context.Context) error {
	if err := r.Sync(ctx); err != nil {
		return err
	}
	return r.f.Sync()
}

// Close writes the heap back and closes the file.
func (r *FileRegion) Close() error {
	if r.f == nil {
		return nil
	}
	err := errors.Join(r.writeBack(), r.f.Close())
	r.f = nil
	r.data = nil
	return err
}
