// Package stream provides the little-endian binary reader/writer and the
// forward-offset bookkeeping ("Reserver") that the MSB format is built on.
package stream

import "encoding/binary"

// toLittleEndian32 converts i to its 4-byte little-endian representation.
//
// Mirrors the teacher's ToBigEndian32, with the byte order MSB actually
// uses on disk.
func toLittleEndian32(i uint32) []byte {
	dst := [4]byte{}
	binary.LittleEndian.PutUint32(dst[:], i)
	return dst[:]
}

// toLittleEndian64 converts i to its 8-byte little-endian representation.
func toLittleEndian64(i uint64) []byte {
	dst := [8]byte{}
	binary.LittleEndian.PutUint64(dst[:], i)
	return dst[:]
}
