// SPDX-License-Identifier: EPL-2.0

// Package wavkit reads and writes WAV and Wave64 audio.
//
// The heavy lifting lives in the subpackages:
//   - formats/wav decodes and encodes RIFF/WAVE and Sony Wave64 files
//     (integer PCM, IEEE float, A-law, mu-law, MS-ADPCM and IMA-ADPCM)
//   - formats/mp3, formats/vorbis, formats/aiff and formats/flac decode other
//     formats into the same audio.Source interface
//   - audio holds the Source and Sink interfaces, a format Registry, the
//     Resampler and the MonoMixer
//   - pcm converts between sample encodings
//
// This package adds one-call helpers on top:
//
//	samples, info, err := wavkit.ReadFileS16("voice.wav")
//
// reads every frame of a file as interleaved int16, and
//
//	pcm16, err := wavkit.ResampleToMono16(src, 8000, 4096)
//
// drains any audio.Source into 8 kHz mono 16-bit samples.
package wavkit
