// Package verify provides validation functions for heap block directories.
//
// # Overview
//
// The checks work on raw region bytes, independent of any allocator state
// beyond the head and tail offsets, so they can audit a heap file as well as
// a live allocator. They are primarily used in tests after every operation.
//
// Validation categories:
//   - Header: every header lies inside the region and decodes
//   - Link: next/prev agree with each other and with head/tail
//   - Contiguity: each block starts where the previous one ends
//   - Coalesce: no two neighbouring blocks are both free
//   - Accounting: header plus payload bytes add up to the region size
//
// # Quick Start
//
//	if err := verify.Directory(region.Bytes(), a.Head(), a.Tail()); err != nil {
//	    fmt.Printf("heap invalid: %v\n", err)
//	}
package verify
