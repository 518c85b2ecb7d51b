// SPDX-License-Identifier: EPL-2.0

// Package mp3 decodes MPEG-1 Layer III audio into an audio.Source using
// github.com/hajimehoshi/go-mp3.
//
// The source always reports two channels of 16-bit audio, which is what
// go-mp3 produces for mono and stereo input alike. Samples are normalized
// to [-1, 1) and every read returns whole frames.
//
//	src, err := mp3.Decoder{}.Decode(f)
//	if err != nil {
//	    return err
//	}
//	mono := audio.NewMonoMixer(src)
//
// When the input is an io.ReadSeeker the source also reports its length
// through a Frames() int64 method.
package mp3
