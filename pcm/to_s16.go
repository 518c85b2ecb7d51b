// SPDX-License-Identifier: EPL-2.0

package pcm

import (
	"math"

	"github.com/zaf/g711"

	"github.com/ik5/wavkit/utils"
)

// U8ToS16 converts unsigned 8-bit samples.
func U8ToS16(dst []int16, src []byte) int {
	n := min(len(dst), len(src))
	for i := range n {
		dst[i] = int16(int(src[i])<<8 - 32768)
	}

	return n
}

// S24ToS16 converts packed 24-bit samples by dropping the low byte.
func S24ToS16(dst []int16, src []byte) int {
	n := min(len(dst), len(src)/3)
	for i := range n {
		dst[i] = int16(utils.S24(src[i*3:]) >> 8)
	}

	return n
}

func S32ToS16(dst []int16, src []int32) int {
	n := min(len(dst), len(src))
	for i := range n {
		dst[i] = int16(src[i] >> 16)
	}

	return n
}

func F32ToS16(dst []int16, src []float32) int {
	n := min(len(dst), len(src))
	for i := range n {
		dst[i] = utils.Float32ToInt16(src[i])
	}

	return n
}

func F64ToS16(dst []int16, src []float64) int {
	n := min(len(dst), len(src))
	for i := range n {
		dst[i] = utils.Float64ToInt16(src[i])
	}

	return n
}

func AlawToS16(dst []int16, src []byte) int {
	n := min(len(dst), len(src))
	for i := range n {
		dst[i] = g711.DecodeAlawFrame(src[i])
	}

	return n
}

func MulawToS16(dst []int16, src []byte) int {
	n := min(len(dst), len(src))
	for i := range n {
		dst[i] = g711.DecodeUlawFrame(src[i])
	}

	return n
}

// PCMToS16 converts integer PCM of any width. One-byte samples are unsigned,
// all wider samples are signed.
func PCMToS16(dst []int16, src []byte, bytesPerSample int) int {
	if bytesPerSample <= 0 {
		return 0
	}

	n := min(len(dst), len(src)/bytesPerSample)

	switch bytesPerSample {
	case 1:
		return U8ToS16(dst, src)
	case 2:
		return utils.DecodeS16LE(dst, src)
	case 3:
		return S24ToS16(dst, src)
	case 4:
		for i := range n {
			dst[i] = int16(int32(utils.U32(src[i*4:])) >> 16)
		}
		return n
	}

	if bytesPerSample > 8 {
		clear(dst[:n])
		return n
	}

	for i := range n {
		dst[i] = int16(packHigh(src[i*bytesPerSample:], bytesPerSample) >> 48)
	}

	return n
}

// IEEEToS16 converts 32- or 64-bit IEEE float samples.
func IEEEToS16(dst []int16, src []byte, bytesPerSample int) int {
	if bytesPerSample <= 0 {
		return 0
	}

	n := min(len(dst), len(src)/bytesPerSample)

	switch bytesPerSample {
	case 4:
		for i := range n {
			dst[i] = utils.Float32ToInt16(math.Float32frombits(utils.U32(src[i*4:])))
		}
	case 8:
		for i := range n {
			dst[i] = utils.Float64ToInt16(math.Float64frombits(utils.U64(src[i*8:])))
		}
	default:
		clear(dst[:n])
	}

	return n
}

// packHigh places a little-endian sample of width bytes in the top of a
// 64-bit word so that its sign bit becomes bit 63.
func packHigh(b []byte, width int) int64 {
	var v uint64
	shift := uint(8-width) * 8
	for j := range width {
		v |= uint64(b[j]) << shift
		shift += 8
	}

	return int64(v)
}
