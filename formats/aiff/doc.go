// SPDX-License-Identifier: EPL-2.0

// Package aiff decodes AIFF files into an audio.Source using
// github.com/go-audio/aiff.
//
// 8, 16, 24 and 32-bit integer PCM are supported; the source reports its
// depth through audio.BitDepther so a converter can keep it. Samples are
// scaled by 2^(depth-1), so full scale maps onto [-1, 1).
//
// go-audio needs to seek, so Decode buffers inputs that are not an
// io.ReadSeeker in memory.
package aiff
