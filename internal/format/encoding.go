package format

import (
	"encoding/binary"
	"math"
)

// Header fields are stored little-endian regardless of host byte order, so a
// file-backed heap written on one machine decodes the same on another.

// PutU32 stores v at b[off:off+4].
func PutU32(b []byte, off int, v uint32) {
	binary.LittleEndian.PutUint32(b[off:off+4], v)
}

// PutU64 stores v at b[off:off+8].
func PutU64(b []byte, off int, v uint64) {
	binary.LittleEndian.PutUint64(b[off:off+8], v)
}

// ReadU32 loads the value stored at b[off:off+4].
func ReadU32(b []byte, off int) uint32 {
	return binary.LittleEndian.Uint32(b[off : off+4])
}

// ReadU64 loads the value stored at b[off:off+8].
func ReadU64(b []byte, off int) uint64 {
	return binary.LittleEndian.Uint64(b[off : off+8])
}

// EncodeLink converts an in-memory link (-1 for none) to its stored form.
func EncodeLink(off int) uint64 {
	if off < 0 {
		return NilOffset
	}
	return uint64(off)
}

// DecodeLink converts a stored link to an in-memory offset (-1 for none).
func DecodeLink(v uint64) int {
	if v == NilOffset || v > math.MaxInt {
		return -1
	}
	return int(v)
}
