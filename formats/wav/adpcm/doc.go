// SPDX-License-Identifier: EPL-2.0

// Package adpcm decodes the two block-based ADPCM encodings found in WAV
// files: Microsoft ADPCM (format tag 0x0002) and IMA/DVI ADPCM (0x0011).
//
// Both decoders pull whole blocks of BlockAlign bytes from an io.Reader and
// hand out interleaved int16 frames. The caller bounds the reader to the
// data chunk; a short final block is decoded as far as it goes.
//
// Only mono and stereo streams are supported.
package adpcm
