// SPDX-License-Identifier: EPL-2.0

// Package flac decodes FLAC streams into an audio.Source using
// github.com/mewkiz/flac.
//
// Frames are decoded one at a time and interleaved on demand, so a read may
// span several FLAC frames. The source reports the stream's bit depth through
// audio.BitDepther and its STREAMINFO frame count through Frames.
package flac
