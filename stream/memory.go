// SPDX-License-Identifier: EPL-2.0

package stream

import (
	"errors"
	"io"
)

// Reader is a read-only Handle over a fixed byte slice. The slice is not
// copied.
type Reader struct {
	data   []byte
	offset int64
}

func NewReader(data []byte) *Reader {
	return &Reader{data: data}
}

func (r *Reader) Read(p []byte) (int, error) {
	if r.offset >= int64(len(r.data)) {
		return 0, io.EOF
	}

	n := copy(p, r.data[r.offset:])
	r.offset += int64(n)

	return n, nil
}

func (r *Reader) Write([]byte) (int, error) { return 0, ErrReadOnly }

// SeekTo clamps the cursor to the end of the data, the way fixed memory
// behaves when asked to skip past its end.
func (r *Reader) SeekTo(offset int64, origin Origin) error {
	if _, err := whence(offset, origin); err != nil {
		return err
	}

	pos := offset
	if origin == Current {
		pos += r.offset
	}
	if pos > int64(len(r.data)) {
		pos = int64(len(r.data))
	}
	r.offset = pos

	return nil
}

// Pos returns the current cursor.
func (r *Reader) Pos() int64 { return r.offset }

func (r *Reader) Len() int { return len(r.data) }

func (r *Reader) Close() error { return nil }

// Buffer is a growable write-only Handle. AsWriteSeeker exposes it to
// third-party encoders that want an io.WriteSeeker.
type Buffer struct {
	buf []byte
	pos int
}

// NewBuffer returns an empty Buffer.
func NewBuffer() *Buffer {
	return &Buffer{}
}

// Bytes returns the bytes written so far. The slice aliases the buffer until
// the next write.
func (b *Buffer) Bytes() []byte { return b.buf }

func (b *Buffer) Len() int { return len(b.buf) }

func (b *Buffer) Read([]byte) (int, error) { return 0, ErrWriteOnly }

// Write stores p at the cursor, growing the buffer as needed. Writing past
// the end after a seek zero-fills the gap.
func (b *Buffer) Write(p []byte) (int, error) {
	end := b.pos + len(p)
	if end > cap(b.buf) {
		grown := make([]byte, len(b.buf), end+len(p))
		copy(grown, b.buf)
		b.buf = grown
	}
	if end > len(b.buf) {
		b.buf = b.buf[:end]
	}

	copy(b.buf[b.pos:], p)
	b.pos = end

	return len(p), nil
}

func (b *Buffer) SeekTo(offset int64, origin Origin) error {
	w, err := whence(offset, origin)
	if err != nil {
		return err
	}

	_, err = b.seek(offset, w)
	return err
}

func (b *Buffer) seek(offset int64, whence int) (int64, error) {
	var pos int64
	switch whence {
	case io.SeekStart:
		pos = offset
	case io.SeekCurrent:
		pos = int64(b.pos) + offset
	case io.SeekEnd:
		pos = int64(len(b.buf)) + offset
	default:
		return 0, ErrInvalidOrigin
	}

	if pos < 0 {
		return 0, errors.New("stream: negative position")
	}
	b.pos = int(pos)

	return pos, nil
}

func (b *Buffer) Close() error { return nil }

// AsWriteSeeker exposes b as an io.WriteSeeker.
func (b *Buffer) AsWriteSeeker() io.WriteSeeker { return writeSeeker{b} }

type writeSeeker struct{ b *Buffer }

func (w writeSeeker) Write(p []byte) (int, error) { return w.b.Write(p) }

func (w writeSeeker) Seek(offset int64, whence int) (int64, error) {
	return w.b.seek(offset, whence)
}
