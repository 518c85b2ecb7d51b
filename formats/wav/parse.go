// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/go-audio/riff"

	"github.com/ik5/wavkit/formats/wav/adpcm"
	"github.com/ik5/wavkit/utils"
)

const (
	minRIFFSize = 36
	minW64Size  = 80
	fmtBaseSize = 16
	fmtExtSize  = 22
)

// parse reads everything up to the first sample and leaves the stream there.
func (d *Decoder) parse() error {
	c := &cursor{h: d.h}

	if err := d.parseOuter(c); err != nil {
		return err
	}
	if err := d.parseFmt(c); err != nil {
		return err
	}

	f := &d.fmt
	if f.SampleRate == 0 || f.Channels == 0 || f.BitsPerSample == 0 || f.BlockAlign == 0 {
		return fmt.Errorf("%w: zero channels, sample rate, bit depth or block align", ErrUnsupportedWavLayout)
	}
	d.tag = f.Translated()

	found := false
	for {
		hdr, err := c.readChunkHeader(d.container)
		if err != nil {
			if found {
				break
			}
			if errors.Is(err, io.EOF) {
				return fmt.Errorf("%w: no data chunk", ErrUnsupportedWavChunks)
			}
			return err
		}

		if !d.opts.sequential && d.opts.visitor != nil {
			cr := newChunkReader(d.h, c.pos, hdr.Size)
			if err := d.opts.visitor(hdr, cr); err != nil {
				return fmt.Errorf("wav: chunk %q: %w", hdr.FourCC(), err)
			}
			if cr.moved {
				if err := c.seekTo(c.pos); err != nil {
					return fmt.Errorf("wav: return from chunk %q: %w", hdr.FourCC(), err)
				}
			}
		}

		if !found {
			d.dataPos = c.pos
		}

		size := hdr.Size
		if isData(d.container, hdr) {
			found = true
			d.dataSize = size
		}

		if found && d.opts.sequential {
			break
		}

		switch {
		case hdr.is(d.container, idFact, GUIDW64Fact):
			n, err := d.readFact(c, size)
			if err != nil {
				return err
			}
			size -= n

		case d.container == ContainerRIFF && hdr.is(d.container, idSmpl, GUID{}) && size >= smplHeaderSize:
			s, loops, n, err := readSampler(c, size, d.opts.maxLoops)
			if err != nil {
				return err
			}
			if s != nil {
				d.sampler, d.loops = s, loops
			}
			size -= n
		}

		if err := c.skip(size + hdr.Padding); err != nil {
			break
		}

		if !found {
			d.dataPos = c.pos
		}
	}

	if !found {
		return fmt.Errorf("%w: no data chunk", ErrUnsupportedWavChunks)
	}

	if !d.opts.sequential {
		if err := c.seekTo(d.dataPos); err != nil {
			return fmt.Errorf("wav: seek to data: %w", err)
		}
	}

	d.remaining = d.dataSize
	d.totalFrames = d.frameCount()

	if d.tag.Compressed() && d.fmt.Channels > 2 {
		return fmt.Errorf("%w: %s with %d channels", ErrCompressedChannels, d.tag, d.fmt.Channels)
	}

	return nil
}

func (d *Decoder) parseOuter(c *cursor) error {
	var id [4]byte
	if err := c.read(id[:]); err != nil {
		return fmt.Errorf("%w: %w", ErrNotWavFile, err)
	}

	switch id {
	case riff.RiffID:
		d.container = ContainerRIFF

		var buf [8]byte
		if err := c.read(buf[:]); err != nil {
			return fmt.Errorf("%w: %w", ErrNotWavFile, err)
		}
		if size := utils.U32(buf[:]); size < minRIFFSize {
			return fmt.Errorf("%w: RIFF size %d", ErrNotWavFile, size)
		}
		if !bytes.Equal(buf[4:], riff.WavFormatID[:]) {
			return fmt.Errorf("%w: form type %q", ErrNotWavFile, buf[4:])
		}

	case idW64RIFF:
		d.container = ContainerW64

		var buf [12 + 8 + 16]byte
		if err := c.read(buf[:]); err != nil {
			return fmt.Errorf("%w: %w", ErrNotWavFile, err)
		}
		if !bytes.Equal(buf[:12], GUIDW64RIFF[4:]) {
			return fmt.Errorf("%w: bad W64 RIFF GUID", ErrNotWavFile)
		}
		if size := utils.U64(buf[12:]); size < minW64Size {
			return fmt.Errorf("%w: W64 size %d", ErrNotWavFile, size)
		}
		var wave GUID
		copy(wave[:], buf[20:])
		if wave != GUIDW64WAVE {
			return fmt.Errorf("%w: bad W64 WAVE GUID", ErrNotWavFile)
		}

	default:
		return fmt.Errorf("%w: magic %q", ErrNotWavFile, id[:])
	}

	return nil
}

// parseFmt skips to the fmt chunk and decodes it.
func (d *Decoder) parseFmt(c *cursor) error {
	var hdr ChunkHeader
	for {
		var err error
		hdr, err = c.readChunkHeader(d.container)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return fmt.Errorf("%w: no fmt chunk", ErrUnsupportedWavLayout)
			}
			return err
		}
		if isFmt(d.container, hdr) {
			break
		}
		if err := c.skip(hdr.Size + hdr.Padding); err != nil {
			return fmt.Errorf("%w: no fmt chunk: %w", ErrUnsupportedWavLayout, err)
		}
	}

	if hdr.Size < fmtBaseSize {
		return fmt.Errorf("%w: fmt chunk of %d bytes", ErrUnsupportedWavLayout, hdr.Size)
	}

	var buf [fmtBaseSize + 2 + fmtExtSize]byte
	if err := c.read(buf[:fmtBaseSize]); err != nil {
		return fmt.Errorf("%w: truncated fmt chunk", ErrUnsupportedWavLayout)
	}

	f := &d.fmt
	f.FormatTag = FormatTag(utils.U16(buf[0:]))
	f.Channels = utils.U16(buf[2:])
	f.SampleRate = utils.U32(buf[4:])
	f.AvgBytesPerSec = utils.U32(buf[8:])
	f.BlockAlign = utils.U16(buf[12:])
	f.BitsPerSample = utils.U16(buf[14:])

	rest := hdr.Size - fmtBaseSize
	if rest > 0 {
		if rest < 2 {
			return fmt.Errorf("%w: fmt extension size missing", ErrUnsupportedWavLayout)
		}
		if err := c.read(buf[fmtBaseSize : fmtBaseSize+2]); err != nil {
			return fmt.Errorf("%w: truncated fmt chunk", ErrUnsupportedWavLayout)
		}
		rest -= 2
		f.ExtendedSize = utils.U16(buf[fmtBaseSize:])

		ext := uint64(f.ExtendedSize)
		if ext > rest {
			return fmt.Errorf("%w: fmt extension of %d bytes in %d", ErrUnsupportedWavLayout, ext, rest)
		}

		if ext > 0 && f.FormatTag == TagExtensible {
			if ext != fmtExtSize {
				return fmt.Errorf("%w: extensible fmt extension of %d bytes", ErrUnsupportedWavLayout, ext)
			}
			e := buf[fmtBaseSize+2:]
			if err := c.read(e); err != nil {
				return fmt.Errorf("%w: truncated fmt extension", ErrUnsupportedWavLayout)
			}
			f.ValidBitsPerSample = utils.U16(e[0:])
			f.ChannelMask = utils.U32(e[2:])
			copy(f.SubFormat[:], e[6:])
			rest -= ext
		}
	}

	if err := c.skip(rest + hdr.Padding); err != nil {
		return fmt.Errorf("%w: %w", ErrUnsupportedWavLayout, err)
	}

	return nil
}

// readFact returns the number of payload bytes consumed. Only MS-ADPCM
// streams take their frame count from the fact chunk.
func (d *Decoder) readFact(c *cursor, size uint64) (uint64, error) {
	width := uint64(4)
	if d.container == ContainerW64 {
		width = 8
	}
	if size < width {
		return 0, nil
	}

	var buf [8]byte
	if err := c.read(buf[:width]); err != nil {
		return 0, fmt.Errorf("%w: truncated fact chunk", ErrInvalidFile)
	}

	n := utils.U64(buf[:])
	if d.tag == TagADPCM {
		d.factFrames = n
	} else {
		d.factFrames = 0
	}

	return width, nil
}

func (d *Decoder) frameCount() uint64 {
	if d.factFrames != 0 {
		return d.factFrames
	}

	size, align, ch := d.dataSize, uint64(d.fmt.BlockAlign), uint64(d.fmt.Channels)

	switch d.tag {
	case TagADPCM:
		return adpcm.MSFrameCount(size, align, ch)
	case TagDVIADPCM:
		return adpcm.IMAFrameCount(size, align, ch)
	}

	return size / d.fmt.BytesPerFrame()
}
