// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/go-audio/aiff"
	goaudio "github.com/go-audio/audio"

	"github.com/ik5/wavkit/audio"
)

// aiffReader is the part of aiff.Decoder the source uses.
type aiffReader interface {
	Format() *goaudio.Format
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

// source normalizes go-audio integer samples to float32.
type source struct {
	dec      aiffReader
	rate     int
	channels int
	depth    int
	scale    float64
	buf      *goaudio.IntBuffer
}

var (
	_ audio.Source     = (*source)(nil)
	_ audio.BitDepther = (*source)(nil)
)

func newSource(dec aiffReader, depth int) (*source, error) {
	switch depth {
	case 8, 16, 24, 32:
	default:
		return nil, fmt.Errorf("%w: %d bits", ErrUnsupportedBitDepth, depth)
	}

	f := dec.Format()
	if f == nil || f.NumChannels <= 0 || f.SampleRate <= 0 {
		return nil, ErrUnsupportedAiffLayout
	}

	return &source{
		dec:      dec,
		rate:     f.SampleRate,
		channels: f.NumChannels,
		depth:    depth,
		scale:    float64(uint64(1) << (depth - 1)),
		buf:      &goaudio.IntBuffer{Format: f, SourceBitDepth: depth},
	}, nil
}

func (s *source) SampleRate() int { return s.rate }
func (s *source) Channels() int   { return s.channels }
func (s *source) BitDepth() int   { return s.depth }
func (s *source) Close() error    { return nil }

func (s *source) BufSize() int {
	if c := cap(s.buf.Data); c >= s.channels {
		return c / s.channels * s.channels
	}

	return 4096 / s.channels * s.channels
}

func (s *source) ReadSamples(dst []float32) (int, error) {
	want := len(dst) / s.channels * s.channels
	if want == 0 {
		if len(dst) == 0 {
			return 0, nil
		}
		return 0, audio.ErrInvalidDstSize
	}

	if cap(s.buf.Data) < want {
		s.buf.Data = make([]int, want)
	}
	s.buf.Data = s.buf.Data[:want]

	n, err := s.dec.PCMBuffer(s.buf)
	for i, v := range s.buf.Data[:n] {
		dst[i] = float32(float64(v) / s.scale)
	}

	switch {
	case err == nil, errors.Is(err, io.EOF):
		if n == 0 {
			return 0, io.EOF
		}
	default:
		return n, fmt.Errorf("aiff: %w", err)
	}

	return n, nil
}

type Decoder struct{}

var _ audio.Decoder = Decoder{}

// Decode reads r into memory first when it cannot seek.
func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	rs, ok := r.(io.ReadSeeker)
	if !ok {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("aiff: read input: %w", err)
		}
		rs = bytes.NewReader(data)
	}

	dec := aiff.NewDecoder(rs)
	if !dec.IsValidFile() {
		return nil, ErrNotAiffFile
	}
	dec.ReadInfo()

	s, err := newSource(dec, int(dec.BitDepth))
	if err != nil {
		return nil, err
	}

	return s, nil
}
