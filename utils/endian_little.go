// SPDX-License-Identifier: EPL-2.0

//go:build 386 || amd64 || arm || arm64 || loong64 || mips64le || mipsle || ppc64le || riscv64 || wasm

package utils

import "unsafe"

// NativeLittleEndian reports whether the build target stores integers
// little-endian, which is also the byte order of every WAV sample.
const NativeLittleEndian = true

// DecodeS16LE copies little-endian 16-bit samples from src into dst and
// returns the number of samples copied. On little-endian targets the bytes
// already have the in-memory layout of an int16 slice.
func DecodeS16LE(dst []int16, src []byte) int {
	n := min(len(dst), len(src)/2)
	if n == 0 {
		return 0
	}
	copy(unsafe.Slice((*byte)(unsafe.Pointer(&dst[0])), n*2), src[:n*2])

	return n
}

// EncodeS16LE writes samples from src into dst as little-endian 16-bit words
// and returns the number of samples written.
func EncodeS16LE(dst []byte, src []int16) int {
	n := min(len(dst)/2, len(src))
	if n == 0 {
		return 0
	}
	copy(dst[:n*2], unsafe.Slice((*byte)(unsafe.Pointer(&src[0])), n*2))

	return n
}
