package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/ajiku17/PersonalOSAssignments/heap"
	"github.com/ajiku17/PersonalOSAssignments/heap/alloc"
	"github.com/ajiku17/PersonalOSAssignments/internal/logger"
)

// openHeap builds the allocator selected by --file and --limit. The returned
// close function persists a file-backed heap and must always be called.
func openHeap() (*alloc.Allocator, func() error, error) {
	limit := heapLimit
	if limit <= 0 {
		limit = heap.DataLimit()
	}
	opts := &alloc.Options{Logger: logger.L}

	if heapFile == "" {
		printVerbose("Using in-memory heap (limit %s)\n", formatLimit(limit))
		a, err := alloc.New(heap.NewMemRegion(limit), opts)
		if err != nil {
			return nil, nil, err
		}
		return a, func() error { return nil }, nil
	}

	printVerbose("Opening heap file: %s\n", heapFile)
	r, err := heap.OpenFile(heapFile, &heap.FileOptions{Limit: limit})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open heap file: %w", err)
	}
	a, err := alloc.New(r, opts)
	if err != nil {
		_ = r.Close()
		return nil, nil, fmt.Errorf("failed to load heap file: %w", err)
	}
	closeFn := func() error {
		syncErr := r.Sync(context.Background())
		return errors.Join(syncErr, r.Close())
	}
	return a, closeFn, nil
}

func formatLimit(limit int) string {
	if limit <= 0 {
		return "unlimited"
	}
	return formatBytes(int64(limit))
}

func formatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
