// SPDX-License-Identifier: EPL-2.0

package adpcm

import (
	"errors"
	"io"
)

// BlockDecoder turns ADPCM blocks into interleaved 16-bit frames.
type BlockDecoder interface {
	// Read decodes up to len(dst)/channels frames into dst and returns the
	// number of frames produced. It returns 0, io.EOF once the reader is
	// exhausted and no decoded frames remain.
	Read(dst []int16) (int, error)

	// Reset drops all cached state. The next Read starts a fresh block, so
	// the caller must have repositioned the reader at a block boundary.
	Reset()
}

// MSFrameCount returns the number of frames in a Microsoft ADPCM data chunk.
// Every block header costs 6 bytes per channel and yields two frames; every
// other byte yields two samples.
func MSFrameCount(dataSize, blockAlign, channels uint64) uint64 {
	if blockAlign == 0 || channels == 0 {
		return 0
	}

	blocks := (dataSize + blockAlign - 1) / blockAlign
	header := blocks * 6 * channels
	if header > dataSize {
		return 0
	}

	return (dataSize - header) * 2 / channels
}

// IMAFrameCount returns the number of frames in an IMA ADPCM data chunk.
// Every block header costs 4 bytes per channel and yields one frame.
func IMAFrameCount(dataSize, blockAlign, channels uint64) uint64 {
	if blockAlign == 0 || channels == 0 {
		return 0
	}

	blocks := (dataSize + blockAlign - 1) / blockAlign
	header := blocks * 4 * channels
	if header > dataSize {
		return 0
	}

	return (dataSize-header)*2/channels + blocks
}

// readBlock fills buf with the next block. A short final block is returned
// as is; n == 0 with a nil error never happens.
func readBlock(r io.Reader, buf []byte) (int, error) {
	n, err := io.ReadFull(r, buf)
	switch {
	case err == nil:
		return n, nil
	case errors.Is(err, io.ErrUnexpectedEOF):
		return n, nil
	case errors.Is(err, io.EOF):
		return 0, io.EOF
	}

	return n, err
}

func clamp16(v int32) int32 {
	if v < -32768 {
		return -32768
	}
	if v > 32767 {
		return 32767
	}

	return v
}

func checkLayout(channels, blockAlign, header int) error {
	if channels != 1 && channels != 2 {
		return ErrChannels
	}
	if blockAlign <= header {
		return ErrBlockAlign
	}

	return nil
}
