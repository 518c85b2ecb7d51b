// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"errors"
	"fmt"
	"io"

	"github.com/jfreymuth/oggvorbis"

	"github.com/ik5/wavkit/audio"
)

// oggReader is the part of oggvorbis.Reader the source uses. Read returns
// interleaved values, not frames.
type oggReader interface {
	SampleRate() int
	Channels() int
	Read([]float32) (int, error)
	Length() int64
}

type source struct {
	dec      oggReader
	rate     int
	channels int
}

var _ audio.Source = (*source)(nil)

func (s *source) SampleRate() int { return s.rate }
func (s *source) Channels() int   { return s.channels }
func (s *source) Close() error    { return nil }
func (s *source) BufSize() int    { return 4096 / s.channels * s.channels }

// Frames is the stream length in frames, or 0 when unknown.
func (s *source) Frames() int64 { return s.dec.Length() }

func (s *source) ReadSamples(dst []float32) (int, error) {
	want := len(dst) / s.channels * s.channels
	if want == 0 {
		if len(dst) == 0 {
			return 0, nil
		}
		return 0, audio.ErrInvalidDstSize
	}

	n, err := s.dec.Read(dst[:want])
	switch {
	case err == nil:
	case errors.Is(err, io.EOF):
		if n == 0 {
			return 0, io.EOF
		}
	default:
		return n, fmt.Errorf("vorbis: %w", err)
	}

	return n, nil
}

type Decoder struct{}

var _ audio.Decoder = Decoder{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	dec, err := oggvorbis.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotVorbisFile, err)
	}

	s, err := newSource(dec)
	if err != nil {
		return nil, err
	}

	return s, nil
}

func newSource(dec oggReader) (*source, error) {
	if dec.Channels() <= 0 || dec.SampleRate() <= 0 {
		return nil, fmt.Errorf("%w: %d channels at %d Hz", ErrNotVorbisFile, dec.Channels(), dec.SampleRate())
	}

	return &source{dec: dec, rate: dec.SampleRate(), channels: dec.Channels()}, nil
}
