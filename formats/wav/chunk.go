// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/go-audio/riff"

	"github.com/ik5/wavkit/stream"
	"github.com/ik5/wavkit/utils"
)

const (
	riffChunkHeaderSize = 8
	w64ChunkHeaderSize  = 24

	// Offsets of the first data byte in the headers the Encoder writes.
	riffDataPos = 36
	w64DataPos  = 80
)

var (
	idFact    = [4]byte{'f', 'a', 'c', 't'}
	idSmpl    = [4]byte{'s', 'm', 'p', 'l'}
	idW64RIFF = [4]byte{'r', 'i', 'f', 'f'}
)

// ChunkHeader describes one chunk as found in the file. Size is the payload
// size: for Wave64 the 24 header bytes the file counts are already removed.
type ChunkHeader struct {
	ID      GUID
	Size    uint64
	Padding uint64
}

// FourCC returns the chunk's four-character code.
func (h ChunkHeader) FourCC() string { return h.ID.FourCC() }

// ChunkVisitor is called for every chunk that follows the fmt chunk, with r
// scoped to the chunk payload: offset 0 is the first payload byte and reads
// stop at Size. The decoder restores its own position afterwards, so the
// visitor may read and seek as much or as little as it likes. Returning an
// error aborts the open.
//
// Visitors are never called in sequential mode.
type ChunkVisitor func(hdr ChunkHeader, r io.ReadSeeker) error

// cursor tracks the absolute stream position while headers are parsed.
type cursor struct {
	h   stream.Handle
	pos uint64
}

func (c *cursor) read(buf []byte) error {
	n, err := io.ReadFull(c.h, buf)
	c.pos += uint64(n)

	return err
}

func (c *cursor) skip(n uint64) error {
	if err := stream.Skip(c.h, n); err != nil {
		return err
	}
	c.pos += n

	return nil
}

func (c *cursor) seekTo(pos uint64) error {
	if err := c.h.SeekTo(int64(pos), stream.Start); err != nil {
		return err
	}
	c.pos = pos

	return nil
}

// readChunkHeader returns io.EOF when no further chunk ID can be read.
func (c *cursor) readChunkHeader(container Container) (ChunkHeader, error) {
	var (
		hdr ChunkHeader
		buf [w64ChunkHeaderSize]byte
	)

	idLen, sizeLen := 4, 4
	if container == ContainerW64 {
		idLen, sizeLen = 16, 8
	}

	if err := c.read(buf[:idLen]); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return hdr, io.EOF
		}
		return hdr, fmt.Errorf("wav: read chunk id: %w", err)
	}
	copy(hdr.ID[:], buf[:idLen])

	if err := c.read(buf[idLen : idLen+sizeLen]); err != nil {
		return hdr, fmt.Errorf("%w: truncated %q chunk header", ErrInvalidFile, hdr.FourCC())
	}

	if container == ContainerRIFF {
		hdr.Size = uint64(utils.U32(buf[4:]))
		hdr.Padding = utils.PaddingRIFF(hdr.Size)
		return hdr, nil
	}

	size := utils.U64(buf[16:])
	if size < w64ChunkHeaderSize {
		return hdr, fmt.Errorf("%w: W64 chunk %s declares %d bytes", ErrInvalidFile, hdr.ID, size)
	}
	hdr.Size = size - w64ChunkHeaderSize
	hdr.Padding = utils.PaddingW64(hdr.Size)

	return hdr, nil
}

// is reports whether hdr carries the RIFF code id or the Wave64 GUID g,
// whichever applies to container.
func (h ChunkHeader) is(container Container, id [4]byte, g GUID) bool {
	if container == ContainerW64 {
		return h.ID == g
	}

	return h.ID == fourCC(id)
}

func isData(c Container, h ChunkHeader) bool { return h.is(c, riff.DataFormatID, GUIDW64Data) }
func isFmt(c Container, h ChunkHeader) bool  { return h.is(c, riff.FmtID, GUIDW64Fmt) }

// chunkReader is the view of one chunk payload handed to a ChunkVisitor.
// The handle sits at start+off whenever synced is set.
type chunkReader struct {
	h      stream.Handle
	start  int64
	size   int64
	off    int64
	synced bool
	moved  bool
}

func newChunkReader(h stream.Handle, start, size uint64) *chunkReader {
	start = min(start, math.MaxInt64)

	return &chunkReader{
		h:      h,
		start:  int64(start),
		size:   int64(min(size, math.MaxInt64-start)),
		synced: true,
	}
}

func (r *chunkReader) Read(p []byte) (int, error) {
	if r.off >= r.size {
		return 0, io.EOF
	}
	if !r.synced {
		if err := r.h.SeekTo(r.start+r.off, stream.Start); err != nil {
			return 0, err
		}
		r.synced = true
	}

	p = p[:min(int64(len(p)), r.size-r.off)]
	n, err := r.h.Read(p)
	r.off += int64(n)
	if n > 0 {
		r.moved = true
	}

	return n, err
}

// Seek accepts io.SeekStart, io.SeekCurrent and io.SeekEnd relative to the
// payload. Positions past the end are allowed and read as io.EOF.
func (r *chunkReader) Seek(offset int64, whence int) (int64, error) {
	var abs int64
	switch whence {
	case io.SeekStart:
		abs = offset
	case io.SeekCurrent:
		abs = r.off + offset
	case io.SeekEnd:
		abs = r.size + offset
	default:
		return r.off, fmt.Errorf("%w: whence %d", ErrInvalidArgs, whence)
	}
	if abs < 0 {
		return r.off, fmt.Errorf("%w: negative position %d", ErrInvalidArgs, abs)
	}

	if abs != r.off {
		r.off = abs
		r.synced = false
		r.moved = true
	}

	return abs, nil
}
