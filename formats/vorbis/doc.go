// SPDX-License-Identifier: EPL-2.0

// Package vorbis decodes Ogg Vorbis streams into an audio.Source using
// github.com/jfreymuth/oggvorbis.
//
// Samples come out interleaved in [-1, 1] at the stream's own rate and
// channel count. Reads always return whole frames.
//
//	src, err := vorbis.Decoder{}.Decode(f)
//	if err != nil {
//	    return err
//	}
//	resampled := audio.NewResampler(src, 16000)
package vorbis
