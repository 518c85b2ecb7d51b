// SPDX-License-Identifier: EPL-2.0

package utils

import "math/bits"

// Swap16 reverses the byte order of every 2-byte word in buf.
func Swap16(buf []byte) {
	for i := 0; i+1 < len(buf); i += 2 {
		buf[i], buf[i+1] = buf[i+1], buf[i]
	}
}

// Swap24 reverses the byte order of every packed 3-byte word in buf.
func Swap24(buf []byte) {
	for i := 0; i+2 < len(buf); i += 3 {
		buf[i], buf[i+2] = buf[i+2], buf[i]
	}
}

// Swap32 reverses the byte order of every 4-byte word in buf.
func Swap32(buf []byte) {
	for i := 0; i+3 < len(buf); i += 4 {
		buf[i], buf[i+1], buf[i+2], buf[i+3] = buf[i+3], buf[i+2], buf[i+1], buf[i]
	}
}

// Swap64 reverses the byte order of every 8-byte word in buf.
func Swap64(buf []byte) {
	for i := 0; i+7 < len(buf); i += 8 {
		v := bits.ReverseBytes64(U64(buf[i:]))
		PutU64(buf[i:], v)
	}
}

// SwapSamples swaps buf in place as a run of bytesPerSample-wide words.
// Float samples swap exactly like integers of the same width. Widths the
// engine does not know are left untouched and reported as false.
func SwapSamples(buf []byte, bytesPerSample int) bool {
	switch bytesPerSample {
	case 1:
	case 2:
		Swap16(buf)
	case 3:
		Swap24(buf)
	case 4:
		Swap32(buf)
	case 8:
		Swap64(buf)
	default:
		return false
	}

	return true
}
