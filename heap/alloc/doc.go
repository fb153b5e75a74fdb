// Package alloc implements a first-fit malloc/realloc/free allocator over a
// growable heap.Region.
//
// # Overview
//
// Every block in the region is a 32-byte header followed by its payload. The
// headers form a doubly linked directory in address order, from the first
// block ever created (head) to the block at the top of the region (tail).
// Callers hold Ptr values: payload offsets into the region, never Go pointers.
//
// # Allocation
//
//   - Malloc scans the directory from head and takes the first free block
//     that is large enough
//   - A block that exceeds the request by more than one header is split; the
//     remainder becomes a new free block right after it
//   - When nothing fits, the region grows by exactly header + size bytes
//
// # Release
//
// Free marks the block free and coalesces immediately, first with the next
// block and then with the previous one. At rest no two neighbouring blocks
// are both free. Absorbed headers and payloads are zeroed.
//
// # Resize
//
// Realloc copies the surviving bytes aside, frees the old block, and
// allocates a new one. If that allocation fails the old contents are gone:
// the caller must keep its own copy when it cannot afford the loss.
//
// # Usage Example
//
//	a, err := alloc.New(heap.NewMemRegion(0), nil)
//	if err != nil {
//	    return err
//	}
//
//	p, err := a.Malloc(400 * 4)
//	if err != nil {
//	    return err
//	}
//	b, _ := a.Bytes(p)
//	format.PutU32(b, 0, 0x41)
//
//	err = a.Free(p)
//
// Slices returned by Bytes are views into the region and are invalidated by
// any later Malloc or Realloc that grows it. Ptr values stay valid.
//
// # Thread Safety
//
// Allocator instances are not thread-safe. Callers must hold a lock for the
// duration of each call when sharing one across goroutines.
package alloc
