// SPDX-License-Identifier: EPL-2.0

package stream

import (
	"fmt"
	"io"
)

// Origin selects what a SeekTo offset is relative to.
type Origin int

const (
	Start Origin = iota
	Current
)

func (o Origin) String() string {
	switch o {
	case Start:
		return "start"
	case Current:
		return "current"
	default:
		return fmt.Sprintf("Origin(%d)", int(o))
	}
}

// Handle is the capability set the decoder and encoder need from a byte
// source or sink.
type Handle interface {
	io.Reader
	io.Writer
	// SeekTo moves the cursor to offset relative to origin. offset is never
	// negative.
	SeekTo(offset int64, origin Origin) error
	io.Closer
}

// ReadFull reads exactly len(buf) bytes from h. It returns io.EOF if nothing
// was read and io.ErrUnexpectedEOF on a partial read.
func ReadFull(h io.Reader, buf []byte) (int, error) {
	return io.ReadFull(h, buf)
}

// WriteFull writes all of buf to h, turning a short write into
// io.ErrShortWrite.
func WriteFull(h io.Writer, buf []byte) (int, error) {
	n, err := h.Write(buf)
	if err != nil {
		return n, err
	}
	if n != len(buf) {
		return n, io.ErrShortWrite
	}

	return n, nil
}

// Skip moves h forward by n bytes.
func Skip(h Handle, n uint64) error {
	for n > 0 {
		step := min(n, uint64(1<<62))
		if err := h.SeekTo(int64(step), Current); err != nil {
			return err
		}
		n -= step
	}

	return nil
}

func whence(offset int64, origin Origin) (int, error) {
	if offset < 0 {
		return 0, ErrNegativeOffset
	}

	switch origin {
	case Start:
		return io.SeekStart, nil
	case Current:
		return io.SeekCurrent, nil
	default:
		return 0, ErrInvalidOrigin
	}
}
