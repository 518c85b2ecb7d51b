// SPDX-License-Identifier: EPL-2.0

package pcm

import (
	"math"

	"github.com/zaf/g711"

	"github.com/ik5/wavkit/utils"
)

// S16ToPCM packs int16 samples as integer PCM of 1 to 4 bytes. It returns
// the number of samples written.
func S16ToPCM(dst []byte, src []int16, bytesPerSample int) (int, error) {
	if bytesPerSample < 1 || bytesPerSample > 4 {
		return 0, ErrUnsupportedWidth
	}

	n := min(len(src), len(dst)/bytesPerSample)

	switch bytesPerSample {
	case 1:
		for i := range n {
			dst[i] = byte((int32(src[i]) + 32768) >> 8)
		}
	case 2:
		utils.EncodeS16LE(dst, src[:n])
	case 3:
		for i := range n {
			utils.PutS24(dst[i*3:], int32(src[i])<<8)
		}
	case 4:
		for i := range n {
			utils.PutU32(dst[i*4:], uint32(int32(src[i])<<16))
		}
	}

	return n, nil
}

// S32ToPCM packs int32 samples as integer PCM of 1 to 4 bytes, keeping the
// most significant bytes.
func S32ToPCM(dst []byte, src []int32, bytesPerSample int) (int, error) {
	if bytesPerSample < 1 || bytesPerSample > 4 {
		return 0, ErrUnsupportedWidth
	}

	n := min(len(src), len(dst)/bytesPerSample)

	switch bytesPerSample {
	case 1:
		for i := range n {
			dst[i] = byte((src[i] >> 24) + 128)
		}
	case 2:
		for i := range n {
			utils.PutU16(dst[i*2:], uint16(src[i]>>16))
		}
	case 3:
		for i := range n {
			utils.PutS24(dst[i*3:], src[i]>>8)
		}
	case 4:
		for i := range n {
			utils.PutU32(dst[i*4:], uint32(src[i]))
		}
	}

	return n, nil
}

// F32ToPCM clamps float samples to -1..1 and packs them as integer PCM.
func F32ToPCM(dst []byte, src []float32, bytesPerSample int) (int, error) {
	if bytesPerSample < 1 || bytesPerSample > 4 {
		return 0, ErrUnsupportedWidth
	}

	n := min(len(src), len(dst)/bytesPerSample)

	switch bytesPerSample {
	case 1:
		for i := range n {
			dst[i] = byte((int32(utils.Float32ToInt16(src[i])) + 32768) >> 8)
		}
	case 2:
		for i := range n {
			utils.PutU16(dst[i*2:], uint16(utils.Float32ToInt16(src[i])))
		}
	case 3:
		for i := range n {
			utils.PutS24(dst[i*3:], utils.Float32ToInt32(src[i])>>8)
		}
	case 4:
		for i := range n {
			utils.PutU32(dst[i*4:], uint32(utils.Float32ToInt32(src[i])))
		}
	}

	return n, nil
}

// F32ToIEEE writes float samples as 32- or 64-bit IEEE floats.
func F32ToIEEE(dst []byte, src []float32, bytesPerSample int) (int, error) {
	n := 0

	switch bytesPerSample {
	case 4:
		n = min(len(src), len(dst)/4)
		for i := range n {
			utils.PutU32(dst[i*4:], math.Float32bits(src[i]))
		}
	case 8:
		n = min(len(src), len(dst)/8)
		for i := range n {
			utils.PutU64(dst[i*8:], math.Float64bits(float64(src[i])))
		}
	default:
		return 0, ErrUnsupportedWidth
	}

	return n, nil
}

func S16ToIEEE(dst []byte, src []int16, bytesPerSample int) (int, error) {
	n := 0

	switch bytesPerSample {
	case 4:
		n = min(len(src), len(dst)/4)
		for i := range n {
			utils.PutU32(dst[i*4:], math.Float32bits(float32(src[i])/32768.0))
		}
	case 8:
		n = min(len(src), len(dst)/8)
		for i := range n {
			utils.PutU64(dst[i*8:], math.Float64bits(float64(src[i])/32768.0))
		}
	default:
		return 0, ErrUnsupportedWidth
	}

	return n, nil
}

func S32ToIEEE(dst []byte, src []int32, bytesPerSample int) (int, error) {
	n := 0

	switch bytesPerSample {
	case 4:
		n = min(len(src), len(dst)/4)
		for i := range n {
			utils.PutU32(dst[i*4:], math.Float32bits(float32(float64(src[i])/2147483648.0)))
		}
	case 8:
		n = min(len(src), len(dst)/8)
		for i := range n {
			utils.PutU64(dst[i*8:], math.Float64bits(float64(src[i])/2147483648.0))
		}
	default:
		return 0, ErrUnsupportedWidth
	}

	return n, nil
}

// S16ToAlaw compands int16 samples to one A-law byte each.
func S16ToAlaw(dst []byte, src []int16) int {
	n := min(len(dst), len(src))
	for i := range n {
		dst[i] = g711.EncodeAlawFrame(src[i])
	}

	return n
}

// S16ToMulaw compands int16 samples to one µ-law byte each.
func S16ToMulaw(dst []byte, src []int16) int {
	n := min(len(dst), len(src))
	for i := range n {
		dst[i] = g711.EncodeUlawFrame(src[i])
	}

	return n
}
