// SPDX-License-Identifier: EPL-2.0

package flac

import (
	"errors"
	"fmt"
	"io"

	"github.com/mewkiz/flac"
	"github.com/mewkiz/flac/frame"

	"github.com/ik5/wavkit/audio"
)

// frameParser is the part of flac.Stream the source uses.
type frameParser interface {
	ParseNext() (*frame.Frame, error)
	Close() error
}

type source struct {
	dec      frameParser
	rate     int
	channels int
	depth    int
	frames   uint64
	scale    float64
	buf      []float32
	// decoded samples of the current FLAC frame not yet returned
	pending []float32
	done    bool
}

var (
	_ audio.Source     = (*source)(nil)
	_ audio.BitDepther = (*source)(nil)
)

func newSource(dec frameParser, rate, channels, depth int, frames uint64) (*source, error) {
	if rate <= 0 || channels <= 0 {
		return nil, fmt.Errorf("%w: %d channels at %d Hz", ErrNotFLACFile, channels, rate)
	}
	if depth <= 0 || depth > 32 {
		return nil, fmt.Errorf("%w: %d bits", ErrUnsupportedBitDepth, depth)
	}

	return &source{
		dec:      dec,
		rate:     rate,
		channels: channels,
		depth:    depth,
		frames:   frames,
		scale:    float64(uint64(1) << (depth - 1)),
	}, nil
}

func (s *source) SampleRate() int { return s.rate }
func (s *source) Channels() int   { return s.channels }
func (s *source) BitDepth() int   { return s.depth }
func (s *source) BufSize() int    { return 4096 / s.channels * s.channels }

// Frames is the total frame count from STREAMINFO, 0 when unknown.
func (s *source) Frames() uint64 { return s.frames }

func (s *source) Close() error { return s.dec.Close() }

func (s *source) ReadSamples(dst []float32) (int, error) {
	want := len(dst) / s.channels * s.channels
	if want == 0 {
		if len(dst) == 0 {
			return 0, nil
		}
		return 0, audio.ErrInvalidDstSize
	}

	n := 0
	for n < want {
		if len(s.pending) == 0 {
			if s.done {
				break
			}
			if err := s.next(); err != nil {
				return n, err
			}
			continue
		}

		c := copy(dst[n:want], s.pending)
		s.pending = s.pending[c:]
		n += c
	}

	if n == 0 {
		return 0, io.EOF
	}

	return n, nil
}

// next decodes one FLAC frame into pending.
func (s *source) next() error {
	f, err := s.dec.ParseNext()
	if errors.Is(err, io.EOF) {
		s.done = true
		return nil
	}
	if err != nil {
		return fmt.Errorf("flac: %w", err)
	}

	if len(f.Subframes) != s.channels {
		return fmt.Errorf("%w: %d subframes for %d channels", ErrCorruptFrame, len(f.Subframes), s.channels)
	}
	block := f.Subframes[0].NSamples
	for _, sub := range f.Subframes {
		if sub.NSamples != block || len(sub.Samples) < block {
			return fmt.Errorf("%w: uneven subframes", ErrCorruptFrame)
		}
	}

	size := block * s.channels
	if cap(s.buf) < size {
		s.buf = make([]float32, size)
	}
	s.pending = s.buf[:size]

	for c, sub := range f.Subframes {
		for i, v := range sub.Samples[:block] {
			s.pending[i*s.channels+c] = float32(float64(v) / s.scale)
		}
	}

	return nil
}

type Decoder struct{}

var _ audio.Decoder = Decoder{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	stream, err := flac.New(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotFLACFile, err)
	}

	info := stream.Info
	s, err := newSource(stream, int(info.SampleRate), int(info.NChannels), int(info.BitsPerSample), info.NSamples)
	if err != nil {
		_ = stream.Close()
		return nil, err
	}

	return s, nil
}
