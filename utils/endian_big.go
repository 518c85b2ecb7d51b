// SPDX-License-Identifier: EPL-2.0

//go:build !(386 || amd64 || arm || arm64 || loong64 || mips64le || mipsle || ppc64le || riscv64 || wasm)

package utils

const NativeLittleEndian = false

// DecodeS16LE decodes little-endian 16-bit samples from src into dst one word
// at a time, swapping into host order. It returns the number of samples decoded.
func DecodeS16LE(dst []int16, src []byte) int {
	n := min(len(dst), len(src)/2)
	for i := range n {
		dst[i] = S16(src[i*2:])
	}

	return n
}

// EncodeS16LE stores samples from src into dst as little-endian words and
// returns the number of samples written.
func EncodeS16LE(dst []byte, src []int16) int {
	n := min(len(dst)/2, len(src))
	for i := range n {
		PutU16(dst[i*2:], uint16(src[i]))
	}

	return n
}
