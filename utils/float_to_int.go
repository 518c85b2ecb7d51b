// SPDX-License-Identifier: EPL-2.0

package utils

import "math"

// Float32ToInt16 maps a normalized sample onto the full int16 range.
// The input is clamped to [-1, 1] and mapped with
// round((x+1)*32767.5) - 32768, so -1 lands on -32768 and 1 on 32767.
func Float32ToInt16(x float32) int16 {
	return Float64ToInt16(float64(x))
}

// Float64ToInt16 is the float64 form of Float32ToInt16.
func Float64ToInt16(x float64) int16 {
	if x != x { // NaN
		return 0
	}
	if x > 1 {
		x = 1
	} else if x < -1 {
		x = -1
	}

	return int16(int32(math.Round((x+1)*32767.5)) - 32768)
}

// Float32ToInt32 scales x by 2^31. Values that would overflow saturate.
func Float32ToInt32(x float32) int32 {
	return Float64ToInt32(float64(x))
}

// Float64ToInt32 is the float64 form of Float32ToInt32. The fractional part
// is truncated toward zero.
func Float64ToInt32(x float64) int32 {
	v := x * 2147483648.0
	switch {
	case v >= math.MaxInt32:
		return math.MaxInt32
	case v <= math.MinInt32:
		return math.MinInt32
	case v != v: // NaN
		return 0
	}

	return int32(v)
}
