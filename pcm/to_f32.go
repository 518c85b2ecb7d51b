// SPDX-License-Identifier: EPL-2.0

package pcm

import (
	"math"

	"github.com/zaf/g711"

	"github.com/ik5/wavkit/utils"
)

// U8ToF32 maps 0..255 linearly onto -1..1.
func U8ToF32(dst []float32, src []byte) int {
	n := min(len(dst), len(src))
	for i := range n {
		dst[i] = (float32(src[i])/255.0)*2 - 1
	}

	return n
}

func S16ToF32(dst []float32, src []int16) int {
	n := min(len(dst), len(src))
	for i := range n {
		dst[i] = float32(src[i]) / 32768.0
	}

	return n
}

func S24ToF32(dst []float32, src []byte) int {
	n := min(len(dst), len(src)/3)
	for i := range n {
		dst[i] = float32(float64(utils.S24(src[i*3:])<<8) / 2147483648.0)
	}

	return n
}

func S32ToF32(dst []float32, src []int32) int {
	n := min(len(dst), len(src))
	for i := range n {
		dst[i] = float32(float64(src[i]) / 2147483648.0)
	}

	return n
}

func F64ToF32(dst []float32, src []float64) int {
	n := min(len(dst), len(src))
	for i := range n {
		dst[i] = float32(src[i])
	}

	return n
}

func AlawToF32(dst []float32, src []byte) int {
	n := min(len(dst), len(src))
	for i := range n {
		dst[i] = float32(g711.DecodeAlawFrame(src[i])) / 32768.0
	}

	return n
}

func MulawToF32(dst []float32, src []byte) int {
	n := min(len(dst), len(src))
	for i := range n {
		dst[i] = float32(g711.DecodeUlawFrame(src[i])) / 32768.0
	}

	return n
}

func PCMToF32(dst []float32, src []byte, bytesPerSample int) int {
	if bytesPerSample <= 0 {
		return 0
	}

	n := min(len(dst), len(src)/bytesPerSample)

	switch bytesPerSample {
	case 1:
		return U8ToF32(dst, src)
	case 2:
		for i := range n {
			dst[i] = float32(utils.S16(src[i*2:])) / 32768.0
		}
		return n
	case 3:
		return S24ToF32(dst, src)
	case 4:
		for i := range n {
			dst[i] = float32(float64(int32(utils.U32(src[i*4:]))) / 2147483648.0)
		}
		return n
	}

	if bytesPerSample > 8 {
		clear(dst[:n])
		return n
	}

	for i := range n {
		dst[i] = float32(float64(packHigh(src[i*bytesPerSample:], bytesPerSample)) / 9223372036854775807.0)
	}

	return n
}

func IEEEToF32(dst []float32, src []byte, bytesPerSample int) int {
	if bytesPerSample <= 0 {
		return 0
	}

	n := min(len(dst), len(src)/bytesPerSample)

	switch bytesPerSample {
	case 4:
		for i := range n {
			dst[i] = math.Float32frombits(utils.U32(src[i*4:]))
		}
	case 8:
		for i := range n {
			dst[i] = float32(math.Float64frombits(utils.U64(src[i*8:])))
		}
	default:
		clear(dst[:n])
	}

	return n
}
