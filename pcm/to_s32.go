// SPDX-License-Identifier: EPL-2.0

package pcm

import (
	"math"

	"github.com/zaf/g711"

	"github.com/ik5/wavkit/utils"
)

func U8ToS32(dst []int32, src []byte) int {
	n := min(len(dst), len(src))
	for i := range n {
		dst[i] = (int32(src[i]) - 128) << 24
	}

	return n
}

func S16ToS32(dst []int32, src []int16) int {
	n := min(len(dst), len(src))
	for i := range n {
		dst[i] = int32(src[i]) << 16
	}

	return n
}

// S24ToS32 places packed 24-bit samples in the top three bytes.
func S24ToS32(dst []int32, src []byte) int {
	n := min(len(dst), len(src)/3)
	for i := range n {
		dst[i] = utils.S24(src[i*3:]) << 8
	}

	return n
}

func F32ToS32(dst []int32, src []float32) int {
	n := min(len(dst), len(src))
	for i := range n {
		dst[i] = utils.Float32ToInt32(src[i])
	}

	return n
}

func F64ToS32(dst []int32, src []float64) int {
	n := min(len(dst), len(src))
	for i := range n {
		dst[i] = utils.Float64ToInt32(src[i])
	}

	return n
}

func AlawToS32(dst []int32, src []byte) int {
	n := min(len(dst), len(src))
	for i := range n {
		dst[i] = int32(g711.DecodeAlawFrame(src[i])) << 16
	}

	return n
}

func MulawToS32(dst []int32, src []byte) int {
	n := min(len(dst), len(src))
	for i := range n {
		dst[i] = int32(g711.DecodeUlawFrame(src[i])) << 16
	}

	return n
}

func PCMToS32(dst []int32, src []byte, bytesPerSample int) int {
	if bytesPerSample <= 0 {
		return 0
	}

	n := min(len(dst), len(src)/bytesPerSample)

	switch bytesPerSample {
	case 1:
		return U8ToS32(dst, src)
	case 2:
		for i := range n {
			dst[i] = int32(utils.S16(src[i*2:])) << 16
		}
		return n
	case 3:
		return S24ToS32(dst, src)
	case 4:
		for i := range n {
			dst[i] = int32(utils.U32(src[i*4:]))
		}
		return n
	}

	if bytesPerSample > 8 {
		clear(dst[:n])
		return n
	}

	for i := range n {
		dst[i] = int32(packHigh(src[i*bytesPerSample:], bytesPerSample) >> 32)
	}

	return n
}

func IEEEToS32(dst []int32, src []byte, bytesPerSample int) int {
	if bytesPerSample <= 0 {
		return 0
	}

	n := min(len(dst), len(src)/bytesPerSample)

	switch bytesPerSample {
	case 4:
		for i := range n {
			dst[i] = utils.Float32ToInt32(math.Float32frombits(utils.U32(src[i*4:])))
		}
	case 8:
		for i := range n {
			dst[i] = utils.Float64ToInt32(math.Float64frombits(utils.U64(src[i*8:])))
		}
	default:
		clear(dst[:n])
	}

	return n
}
