// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"encoding/binary"
	"math/rand/v2"
)

// Wave64 chunk GUIDs as stored on disk.
var (
	w64RIFF   = [16]byte{'r', 'i', 'f', 'f', 0x2E, 0x91, 0xCF, 0x11, 0xA5, 0xD6, 0x28, 0xDB, 0x04, 0xC1, 0x00, 0x00}
	w64Suffix = [12]byte{0xF3, 0xAC, 0xD3, 0x11, 0x8C, 0xD1, 0x00, 0xC0, 0x4F, 0x8E, 0xDB, 0x8A}
)

// W64ID returns the GUID Wave64 uses for a four-character chunk id.
func W64ID(id string) [16]byte {
	var g [16]byte
	copy(g[:4], id)
	copy(g[4:], w64Suffix[:])

	return g
}

// RIFFChunk encodes one RIFF chunk, padded to an even length.
func RIFFChunk(id string, data []byte) []byte {
	b := make([]byte, 0, 8+len(data)+1)
	b = append(b, id[:4]...)
	b = binary.LittleEndian.AppendUint32(b, uint32(len(data)))
	b = append(b, data...)
	if len(data)%2 == 1 {
		b = append(b, 0)
	}

	return b
}

// RIFF wraps chunks in a RIFF/WAVE header.
func RIFF(chunks ...[]byte) []byte {
	size := 4
	for _, c := range chunks {
		size += len(c)
	}

	b := make([]byte, 0, 8+size)
	b = append(b, "RIFF"...)
	b = binary.LittleEndian.AppendUint32(b, uint32(size))
	b = append(b, "WAVE"...)
	for _, c := range chunks {
		b = append(b, c...)
	}

	return b
}

// W64Chunk encodes one Wave64 chunk. The size field counts the 24-byte
// header, and the payload is padded to a multiple of eight.
func W64Chunk(id string, data []byte) []byte {
	g := W64ID(id)
	b := make([]byte, 0, 24+len(data)+7)
	b = append(b, g[:]...)
	b = binary.LittleEndian.AppendUint64(b, uint64(24+len(data)))
	b = append(b, data...)
	for len(b)%8 != 0 {
		b = append(b, 0)
	}

	return b
}

// W64 wraps chunks in a Wave64 header.
func W64(chunks ...[]byte) []byte {
	size := 40
	for _, c := range chunks {
		size += len(c)
	}

	wave := W64ID("wave")
	b := make([]byte, 0, size)
	b = append(b, w64RIFF[:]...)
	b = binary.LittleEndian.AppendUint64(b, uint64(size))
	b = append(b, wave[:]...)
	for _, c := range chunks {
		b = append(b, c...)
	}

	return b
}

// Fmt describes a fmt chunk payload. Zero BlockAlign and AvgBytes are derived
// from the other fields. A non-nil Extra is written after a cbSize field.
type Fmt struct {
	Tag        uint16
	Channels   int
	SampleRate int
	AvgBytes   int
	BlockAlign int
	Bits       int
	Extra      []byte
}

func (f Fmt) Bytes() []byte {
	align := f.BlockAlign
	if align == 0 {
		align = f.Channels * f.Bits / 8
	}
	avg := f.AvgBytes
	if avg == 0 {
		avg = f.SampleRate * align
	}

	b := make([]byte, 0, 18+len(f.Extra))
	b = binary.LittleEndian.AppendUint16(b, f.Tag)
	b = binary.LittleEndian.AppendUint16(b, uint16(f.Channels))
	b = binary.LittleEndian.AppendUint32(b, uint32(f.SampleRate))
	b = binary.LittleEndian.AppendUint32(b, uint32(avg))
	b = binary.LittleEndian.AppendUint16(b, uint16(align))
	b = binary.LittleEndian.AppendUint16(b, uint16(f.Bits))
	if f.Extra != nil {
		b = binary.LittleEndian.AppendUint16(b, uint16(len(f.Extra)))
		b = append(b, f.Extra...)
	}

	return b
}

// ExtensibleExtra builds the 22-byte WAVE_FORMAT_EXTENSIBLE extension whose
// sub-format GUID carries subTag.
func ExtensibleExtra(validBits uint16, channelMask uint32, subTag uint16) []byte {
	b := make([]byte, 0, 22)
	b = binary.LittleEndian.AppendUint16(b, validBits)
	b = binary.LittleEndian.AppendUint32(b, channelMask)
	b = binary.LittleEndian.AppendUint16(b, subTag)
	b = append(b, 0x00, 0x00, 0x00, 0x00, 0x10, 0x00, 0x80, 0x00, 0x00, 0xAA, 0x00, 0x38, 0x9B, 0x71)

	return b
}

// U32 and U64 encode a fact chunk sample count.
func U32(v uint32) []byte { return binary.LittleEndian.AppendUint32(nil, v) }
func U64(v uint64) []byte { return binary.LittleEndian.AppendUint64(nil, v) }

// Smpl builds a smpl payload declaring declared loops and carrying loops
// 24-byte loop records, each filled with ascending values.
func Smpl(declared uint32, loops int) []byte {
	b := make([]byte, 0, 36+24*loops)
	for i := range 7 {
		b = binary.LittleEndian.AppendUint32(b, uint32(i+1))
	}
	b = binary.LittleEndian.AppendUint32(b, declared)
	b = binary.LittleEndian.AppendUint32(b, 0)
	for l := range loops {
		for f := range 6 {
			b = binary.LittleEndian.AppendUint32(b, uint32(l*100+f))
		}
	}

	return b
}

// Bytes returns n deterministic pseudo-random bytes.
func Bytes(seed uint64, n int) []byte {
	r := rand.New(rand.NewPCG(seed, seed^0x9E3779B97F4A7C15))
	b := make([]byte, n)
	for i := range b {
		b[i] = byte(r.Uint32())
	}

	return b
}

// MSADPCMData returns blocks Microsoft ADPCM blocks of random content with
// valid predictor indices.
func MSADPCMData(seed uint64, channels, blockAlign, blocks int) []byte {
	b := Bytes(seed, blockAlign*blocks)
	for blk := range blocks {
		for c := range channels {
			b[blk*blockAlign+c] %= 7
		}
	}

	return b
}

// IMAADPCMData returns blocks IMA ADPCM blocks of random content with step
// indices inside the table.
func IMAADPCMData(seed uint64, channels, blockAlign, blocks int) []byte {
	b := Bytes(seed, blockAlign*blocks)
	for blk := range blocks {
		for c := range channels {
			b[blk*blockAlign+c*4+2] %= 89
		}
	}

	return b
}
