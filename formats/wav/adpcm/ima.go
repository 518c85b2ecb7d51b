// SPDX-License-Identifier: EPL-2.0

package adpcm

import (
	"io"

	"github.com/ik5/wavkit/utils"
)

var imaIndexTable = [16]int32{
	-1, -1, -1, -1, 2, 4, 6, 8,
	-1, -1, -1, -1, 2, 4, 6, 8,
}

var imaStepTable = [89]int32{
	7, 8, 9, 10, 11, 12, 13, 14, 16, 17,
	19, 21, 23, 25, 28, 31, 34, 37, 41, 45,
	50, 55, 60, 66, 73, 80, 88, 97, 107, 118,
	130, 143, 157, 173, 190, 209, 230, 253, 279, 307,
	337, 371, 408, 449, 494, 544, 598, 658, 724, 796,
	876, 963, 1060, 1166, 1282, 1411, 1552, 1707, 1878, 2066,
	2272, 2499, 2749, 3024, 3327, 3660, 4026, 4428, 4871, 5358,
	5894, 6484, 7132, 7845, 8630, 9493, 10442, 11487, 12635, 13899,
	15289, 16818, 18500, 20350, 22385, 24623, 27086, 29794, 32767,
}

// IMA decodes IMA/DVI ADPCM. Each block starts with a 4-byte header per
// channel, followed by groups of 4 bytes per channel that hold 8 samples.
type IMA struct {
	r        io.Reader
	channels int
	block    []byte
	pos, end int

	predictor [2]int32
	stepIndex [2]int32

	cache  [16]int16
	cached int
}

var _ BlockDecoder = (*IMA)(nil)

func NewIMA(r io.Reader, channels, blockAlign int) (*IMA, error) {
	if err := checkLayout(channels, blockAlign, 4*channels); err != nil {
		return nil, err
	}

	return &IMA{
		r:        r,
		channels: channels,
		block:    make([]byte, blockAlign),
	}, nil
}

func (d *IMA) Reset() {
	d.pos, d.end = 0, 0
	d.cached = 0
	d.predictor = [2]int32{}
	d.stepIndex = [2]int32{}
}

func (d *IMA) Read(dst []int16) (int, error) {
	want := len(dst) / d.channels
	frames := 0
	group := 4 * d.channels

	for frames < want {
		if d.cached > 0 {
			for c := range d.channels {
				dst[frames*d.channels+c] = d.cache[len(d.cache)-d.cached]
				d.cached--
			}
			frames++
			continue
		}

		if d.end-d.pos >= group {
			d.decodeGroup(d.block[d.pos : d.pos+group])
			d.pos += group
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

func (d *IMA) nextBlock() error {
	n, err := readBlock(d.r, d.block)
	if err != nil {
		return err
	}

	hdr := 4 * d.channels
	if n < hdr {
		d.pos, d.end = 0, 0
		return io.EOF
	}

	for c := range d.channels {
		h := d.block[c*4:]
		d.predictor[c] = int32(utils.S16(h))
		d.stepIndex[c] = min(max(int32(h[2]), 0), int32(len(imaStepTable)-1))
		d.cache[len(d.cache)-d.channels+c] = int16(d.predictor[c])
	}

	d.cached = d.channels
	d.pos, d.end = hdr, n

	return nil
}

// decodeGroup expands 4 bytes per channel into 8 frames. Within a byte the
// low nibble comes first.
func (d *IMA) decodeGroup(g []byte) {
	base := len(d.cache) - 8*d.channels

	for c := range d.channels {
		for i, b := range g[c*4 : c*4+4] {
			d.cache[base+(i*2)*d.channels+c] = d.nibble(c, b&0x0F)
			d.cache[base+(i*2+1)*d.channels+c] = d.nibble(c, b>>4)
		}
	}

	d.cached = 8 * d.channels
}

func (d *IMA) nibble(c int, n byte) int16 {
	step := imaStepTable[d.stepIndex[c]]

	diff := step >> 3
	if n&1 != 0 {
		diff += step >> 2
	}
	if n&2 != 0 {
		diff += step >> 1
	}
	if n&4 != 0 {
		diff += step
	}
	if n&8 != 0 {
		diff = -diff
	}

	d.predictor[c] = clamp16(d.predictor[c] + diff)
	d.stepIndex[c] = min(max(d.stepIndex[c]+imaIndexTable[n], 0), int32(len(imaStepTable)-1))

	return int16(d.predictor[c])
}
