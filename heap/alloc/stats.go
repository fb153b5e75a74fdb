package alloc

// Stats holds allocator counters since creation.
type Stats struct {
	AllocCalls       int   `json:"alloc_calls"`       // Total Malloc calls, including failed ones
	AllocFastPath    int   `json:"alloc_fast_path"`   // Allocations served from a free block
	AllocSlowPath    int   `json:"alloc_slow_path"`   // Allocations that grew the region
	FreeCalls        int   `json:"free_calls"`        // Successful non-Null Free calls
	ReallocCalls     int   `json:"realloc_calls"`     // Realloc calls on a live block
	GrowCalls        int   `json:"grow_calls"`        // Successful Sbrk calls
	GrowBytes        int64 `json:"grow_bytes"`        // Bytes added through Sbrk
	SplitCount       int   `json:"split_count"`       // Blocks split on allocation
	CoalesceForward  int   `json:"coalesce_forward"`  // Merges with the next block
	CoalesceBackward int   `json:"coalesce_backward"` // Merges into the previous block
}

// Usage summarizes the current directory.
type Usage struct {
	Blocks      int `json:"blocks"`
	UsedBlocks  int `json:"used_blocks"`
	FreeBlocks  int `json:"free_blocks"`
	UsedBytes   int `json:"used_bytes"` // Payload bytes in used blocks
	FreeBytes   int `json:"free_bytes"` // Payload bytes in free blocks
	Overhead    int `json:"overhead"`   // Header bytes across all blocks
	LargestFree int `json:"largest_free"`
	Top         int `json:"top"`
}

// Stats returns a copy of the allocator counters.
func (a *Allocator) Stats() Stats { return a.stats }

// Usage walks the directory and summarizes it.
func (a *Allocator) Usage() Usage {
	u := Usage{Top: a.r.Top()}
	for b := range a.Blocks() {
		u.Blocks++
		u.Overhead += HeaderSize
		if b.Free {
			u.FreeBlocks++
			u.FreeBytes += b.Size
			u.LargestFree = max(u.LargestFree, b.Size)
		} else {
			u.UsedBlocks++
			u.UsedBytes += b.Size
		}
	}
	return u
}
