// SPDX-License-Identifier: EPL-2.0

// Package pcm converts between packed WAV sample bytes and the three
// in-memory sample representations: int16, int32 and float32.
//
// Source bytes are always little-endian and tightly packed. Functions that
// take a bytesPerSample argument handle any integer width up to 8 bytes;
// wider samples, and IEEE float widths other than 4 and 8, produce silence
// instead of an error.
//
// All conversions are pure and stateless. The number of samples converted is
// the smaller of what dst can hold and what src contains.
//
// Compressed sources (A-law, µ-law) widen to int32 and float32 through their
// 16-bit value, so they carry no more precision than the int16 path.
package pcm
