// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"errors"
	"fmt"
	"io"

	"github.com/ik5/wavkit/utils"
)

const (
	smplHeaderSize = 36
	smplLoopSize   = 24

	// DefaultMaxLoops is the number of loop records kept per file unless
	// WithMaxLoops says otherwise.
	DefaultMaxLoops = 16
)

// LoopType values used by sampler loops.
const (
	LoopForward  uint32 = 0
	LoopPingPong uint32 = 1
	LoopBackward uint32 = 2
)

// Sampler is the fixed part of a smpl chunk. LoopCount is the number of
// loops the file declares, which may exceed the number retained.
type Sampler struct {
	Manufacturer      uint32
	Product           uint32
	SamplePeriod      uint32
	MIDIUnityNote     uint32
	MIDIPitchFraction uint32
	SMPTEFormat       uint32
	SMPTEOffset       uint32
	LoopCount         uint32
	SamplerDataSize   uint32
}

// Loop is one smpl loop record. Start and End are frame indices.
type Loop struct {
	CuePointID uint32
	Type       uint32
	Start      uint32
	End        uint32
	Fraction   uint32
	PlayCount  uint32
}

// readSampler consumes the smpl payload up to the last retained loop and
// returns how many bytes it used. A chunk cut short by the end of the stream
// yields whatever was complete: no Sampler when the header is short, and only
// the whole loop records otherwise.
func readSampler(c *cursor, size uint64, maxLoops int) (*Sampler, []Loop, uint64, error) {
	var buf [smplHeaderSize]byte
	if err := c.read(buf[:]); err != nil {
		if shortRead(err) {
			return nil, nil, 0, nil
		}
		return nil, nil, 0, fmt.Errorf("wav: read smpl chunk: %w", err)
	}

	s := &Sampler{
		Manufacturer:      utils.U32(buf[0:]),
		Product:           utils.U32(buf[4:]),
		SamplePeriod:      utils.U32(buf[8:]),
		MIDIUnityNote:     utils.U32(buf[12:]),
		MIDIPitchFraction: utils.U32(buf[16:]),
		SMPTEFormat:       utils.U32(buf[20:]),
		SMPTEOffset:       utils.U32(buf[24:]),
		LoopCount:         utils.U32(buf[28:]),
		SamplerDataSize:   utils.U32(buf[32:]),
	}
	used := uint64(smplHeaderSize)

	n := min(uint64(s.LoopCount), uint64(max(maxLoops, 0)), (size-smplHeaderSize)/smplLoopSize)
	loops := make([]Loop, 0, n)

	for range n {
		if err := c.read(buf[:smplLoopSize]); err != nil {
			if shortRead(err) {
				break
			}
			return nil, nil, used, fmt.Errorf("wav: read smpl loop: %w", err)
		}
		used += smplLoopSize

		loops = append(loops, Loop{
			CuePointID: utils.U32(buf[0:]),
			Type:       utils.U32(buf[4:]),
			Start:      utils.U32(buf[8:]),
			End:        utils.U32(buf[12:]),
			Fraction:   utils.U32(buf[16:]),
			PlayCount:  utils.U32(buf[20:]),
		})
	}

	return s, loops, used, nil
}

func shortRead(err error) bool {
	return errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF)
}
