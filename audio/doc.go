// SPDX-License-Identifier: EPL-2.0

// Package audio defines the sample-stream interfaces shared by the format
// packages, plus a few stream stages.
//
// A Source yields interleaved float32 samples in [-1, 1]. A Sink accepts
// them. Copy pumps one into the other:
//
//	dec, _ := wav.OpenFile("in.wav")
//	enc, _ := wav.CreateFile("out.w64", wav.Format{
//	    Container:     wav.ContainerW64,
//	    Tag:           wav.TagIEEEFloat,
//	    Channels:      dec.Channels(),
//	    SampleRate:    dec.SampleRate(),
//	    BitsPerSample: 32,
//	})
//	_, err := audio.Copy(enc, dec, make([]float32, dec.BufSize()))
//
// Sources return io.EOF once nothing remains. Some return it together with
// the final samples, so callers should consume n before checking err.
//
// # Stages
//
// Resampler changes the sample rate with Catmull-Rom interpolation and a
// one-pole low-pass filter when downsampling. MonoMixer averages all
// channels of each frame.
//
// # Registry
//
// Registry maps format keys such as "wav" or "flac" to a Decoder that builds
// a Source from an io.Reader. It is safe for concurrent use.
package audio
