// SPDX-License-Identifier: EPL-2.0

package adpcm

import (
	"fmt"
	"io"

	"github.com/ik5/wavkit/utils"
)

var (
	msAdaptation = [16]int32{
		230, 230, 230, 230, 307, 409, 512, 614,
		768, 614, 512, 409, 307, 230, 230, 230,
	}
	msCoeff1 = [7]int32{256, 512, 0, 192, 240, 460, 392}
	msCoeff2 = [7]int32{0, -256, 0, 64, 0, -208, -232}
)

// MS decodes Microsoft ADPCM.
type MS struct {
	r        io.Reader
	channels int
	block    []byte
	pos, end int

	pred  [2]int
	delta [2]int32
	// prev[c][1] is the newest sample of channel c.
	prev [2][2]int32

	cache  [4]int16
	cached int // samples waiting at the tail of cache
}

var _ BlockDecoder = (*MS)(nil)

// NewMS returns a Microsoft ADPCM decoder reading blocks of blockAlign bytes
// from r.
func NewMS(r io.Reader, channels, blockAlign int) (*MS, error) {
	if err := checkLayout(channels, blockAlign, 7*channels); err != nil {
		return nil, err
	}

	return &MS{
		r:        r,
		channels: channels,
		block:    make([]byte, blockAlign),
	}, nil
}

func (d *MS) Reset() {
	d.pos, d.end = 0, 0
	d.cached = 0
	d.pred = [2]int{}
	d.delta = [2]int32{}
	d.prev = [2][2]int32{}
}

func (d *MS) Read(dst []int16) (int, error) {
	want := len(dst) / d.channels
	frames := 0

	for frames < want {
		if d.cached > 0 {
			for c := range d.channels {
				dst[frames*d.channels+c] = d.cache[len(d.cache)-d.cached]
				d.cached--
			}
			frames++
			continue
		}

		if d.pos < d.end {
			d.decodeByte(d.block[d.pos])
			d.pos++
			continue
		}

		if err := d.nextBlock(); err != nil {
			if err == io.EOF && frames > 0 {
				return frames, nil
			}
			return frames, err
		}
	}

	return frames, nil
}

func (d *MS) nextBlock() error {
	n, err := readBlock(d.r, d.block)
	if err != nil {
		return err
	}

	hdr := 7 * d.channels
	if n < hdr {
		d.pos, d.end = 0, 0
		return io.EOF
	}

	b := d.block
	if d.channels == 1 {
		d.pred[0] = int(b[0])
		d.delta[0] = int32(utils.S16(b[1:]))
		d.prev[0][1] = int32(utils.S16(b[3:]))
		d.prev[0][0] = int32(utils.S16(b[5:]))
		d.cache[2] = int16(d.prev[0][0])
		d.cache[3] = int16(d.prev[0][1])
	} else {
		d.pred[0] = int(b[0])
		d.pred[1] = int(b[1])
		d.delta[0] = int32(utils.S16(b[2:]))
		d.delta[1] = int32(utils.S16(b[4:]))
		d.prev[0][1] = int32(utils.S16(b[6:]))
		d.prev[1][1] = int32(utils.S16(b[8:]))
		d.prev[0][0] = int32(utils.S16(b[10:]))
		d.prev[1][0] = int32(utils.S16(b[12:]))
		d.cache[0] = int16(d.prev[0][0])
		d.cache[1] = int16(d.prev[1][0])
		d.cache[2] = int16(d.prev[0][1])
		d.cache[3] = int16(d.prev[1][1])
	}

	for c := range d.channels {
		if d.pred[c] >= len(msCoeff1) {
			d.pos, d.end = 0, 0
			return fmt.Errorf("%w: predictor %d", ErrInvalidBlock, d.pred[c])
		}
	}

	d.cached = 2 * d.channels
	d.pos, d.end = hdr, n

	return nil
}

// decodeByte expands one data byte, high nibble first. Mono bytes carry two
// frames, stereo bytes one frame.
func (d *MS) decodeByte(b byte) {
	hi, lo := b>>4, b&0x0F

	if d.channels == 1 {
		d.cache[2] = d.nibble(0, hi)
		d.cache[3] = d.nibble(0, lo)
		d.cached = 2
		return
	}

	d.cache[2] = d.nibble(0, hi)
	d.cache[3] = d.nibble(1, lo)
	d.cached = 2
}

func (d *MS) nibble(c int, n byte) int16 {
	signed := int32(n)
	if n&0x08 != 0 {
		signed -= 16
	}

	p := &d.prev[c]
	s := (p[1]*msCoeff1[d.pred[c]] + p[0]*msCoeff2[d.pred[c]]) >> 8
	s = clamp16(s + signed*d.delta[c])

	d.delta[c] = (msAdaptation[n] * d.delta[c]) >> 8
	if d.delta[c] < 16 {
		d.delta[c] = 16
	}

	p[0], p[1] = p[1], s

	return int16(s)
}
