// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
	"io"
)

const (
	resampleChunkFrames = 1024
	maxEmptyReads       = 100
)

// Resampler converts src to another sample rate with Catmull-Rom
// interpolation, keeping the channel count. When downsampling, input frames
// pass through a one-pole low-pass filter first.
//
// The read position is tracked as an exact fraction, so a source of N frames
// yields ceil(N*dst/src) frames.
type Resampler struct {
	src     Source
	srcRate int64
	dstRate int64
	ch      int

	window []float32 // interleaved source frames starting at base
	base   int64
	pos    int64 // source position scaled by dstRate
	eof    bool

	rd       []float32
	filter   bool
	lp       []float32
	lpPrimed bool
}

func NewResampler(src Source, dstRate int) *Resampler {
	ch := max(src.Channels(), 1)

	return &Resampler{
		src:     src,
		srcRate: int64(src.SampleRate()),
		dstRate: int64(dstRate),
		ch:      ch,
		rd:      make([]float32, resampleChunkFrames*ch),
		filter:  src.SampleRate() > dstRate,
		lp:      make([]float32, ch),
	}
}

func (r *Resampler) SampleRate() int { return int(r.dstRate) }
func (r *Resampler) Channels() int   { return r.ch }
func (r *Resampler) BufSize() int    { return r.src.BufSize() }

func (r *Resampler) Close() error {
	if err := r.src.Close(); err != nil {
		return fmt.Errorf("resampler: %w", err)
	}

	return nil
}

func (r *Resampler) frames() int64 { return int64(len(r.window) / r.ch) }

// at returns channel c of absolute source frame i, clamped to the frames
// seen so far.
func (r *Resampler) at(i int64, c int) float32 {
	i = min(max(i, r.base), r.base+r.frames()-1)

	return r.window[int(i-r.base)*r.ch+c]
}

// fill drops frames before keep and appends one chunk from the source.
func (r *Resampler) fill(keep int64) error {
	if drop := keep - r.base; drop > 0 {
		drop = min(drop, r.frames())
		n := copy(r.window, r.window[int(drop)*r.ch:])
		r.window = r.window[:n]
		r.base += drop
	}

	for range maxEmptyReads {
		n, err := r.src.ReadSamples(r.rd)
		n -= n % r.ch
		if n > 0 {
			r.push(r.rd[:n])
		}

		if errors.Is(err, io.EOF) {
			r.eof = true
			return nil
		}
		if err != nil {
			return fmt.Errorf("resampler: %w", err)
		}
		if n > 0 {
			return nil
		}
	}

	return io.ErrNoProgress
}

func (r *Resampler) push(s []float32) {
	if r.filter {
		if !r.lpPrimed {
			copy(r.lp, s[:r.ch])
			r.lpPrimed = true
		}
		for i := range s {
			c := i % r.ch
			r.lp[c] = 0.5*s[i] + 0.5*r.lp[c]
			s[i] = r.lp[c]
		}
	}

	r.window = append(r.window, s...)
}

// ReadSamples produces interleaved samples at the target rate. len(dst) must
// be a multiple of Channels().
func (r *Resampler) ReadSamples(dst []float32) (int, error) {
	if len(dst)%r.ch != 0 {
		return 0, ErrInvalidDstSize
	}
	if r.srcRate <= 0 || r.dstRate <= 0 {
		return 0, ErrInvalidRate
	}

	want := len(dst) / r.ch
	written := 0
	for written < want {
		i := r.pos / r.dstRate
		for !r.eof && r.base+r.frames() <= i+2 {
			if err := r.fill(i - 1); err != nil {
				return written * r.ch, err
			}
		}
		if r.base+r.frames() <= i {
			break
		}

		t := float32(r.pos%r.dstRate) / float32(r.dstRate)
		out := dst[written*r.ch:]
		for c := range r.ch {
			out[c] = cubic(r.at(i-1, c), r.at(i, c), r.at(i+1, c), r.at(i+2, c), t)
		}

		written++
		r.pos += r.srcRate
	}

	if written == 0 && want > 0 {
		return 0, io.EOF
	}

	return written * r.ch, nil
}

// cubic is the Catmull-Rom spline through y1 and y2 at x in [0,1).
func cubic(y0, y1, y2, y3, x float32) float32 {
	a0 := -0.5*y0 + 1.5*y1 - 1.5*y2 + 0.5*y3
	a1 := y0 - 2.5*y1 + 2*y2 - 0.5*y3
	a2 := -0.5*y0 + 0.5*y2

	return ((a0*x+a1)*x+a2)*x + y1
}
