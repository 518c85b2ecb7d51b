// SPDX-License-Identifier: EPL-2.0

package utils

import "encoding/binary"

// U16 reads a little-endian uint16 from the first two bytes of b.
func U16(b []byte) uint16 { return binary.LittleEndian.Uint16(b) }

// U32 reads a little-endian uint32 from the first four bytes of b.
func U32(b []byte) uint32 { return binary.LittleEndian.Uint32(b) }

// U64 reads a little-endian uint64 from the first eight bytes of b.
func U64(b []byte) uint64 { return binary.LittleEndian.Uint64(b) }

// S16 reads a little-endian int16 from the first two bytes of b.
func S16(b []byte) int16 { return int16(binary.LittleEndian.Uint16(b)) }

// S24 reads a packed little-endian signed 24-bit value and sign-extends it.
// The three bytes land in the top of a 32-bit word, then an arithmetic shift
// brings them back down.
func S24(b []byte) int32 {
	_ = b[2]
	return int32(uint32(b[0])<<8|uint32(b[1])<<16|uint32(b[2])<<24) >> 8
}

func PutU16(b []byte, v uint16) { binary.LittleEndian.PutUint16(b, v) }
func PutU32(b []byte, v uint32) { binary.LittleEndian.PutUint32(b, v) }
func PutU64(b []byte, v uint64) { binary.LittleEndian.PutUint64(b, v) }

func AppendU32(b []byte, v uint32) []byte { return binary.LittleEndian.AppendUint32(b, v) }
func AppendU64(b []byte, v uint64) []byte { return binary.LittleEndian.AppendUint64(b, v) }

// PutS24 stores the low 24 bits of v little-endian.
func PutS24(b []byte, v int32) {
	_ = b[2]
	b[0] = byte(v)
	b[1] = byte(v >> 8)
	b[2] = byte(v >> 16)
}

// PaddingRIFF returns the number of pad bytes following a RIFF chunk payload
// of the given size.
func PaddingRIFF(size uint64) uint64 { return size % 2 }

// PaddingW64 returns the number of pad bytes needed to bring a Wave64 chunk
// payload up to the next 8-byte boundary.
func PaddingW64(size uint64) uint64 { return (8 - size%8) % 8 }

// AlignUp rounds n up to a multiple of align. align must be a power of two.
func AlignUp(n, align uint64) uint64 {
	return (n + align - 1) &^ (align - 1)
}
