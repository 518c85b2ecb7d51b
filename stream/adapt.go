// SPDX-License-Identifier: EPL-2.0

package stream

import (
	"fmt"
	"io"
)

// FromReader adapts a plain io.Reader. Only forward movement is possible:
// forward seeks from Current discard bytes, and an absolute seek succeeds
// only when it does not move backwards.
func FromReader(r io.Reader) Handle {
	if h, ok := r.(Handle); ok {
		return h
	}

	return &forwardReader{r: r}
}

// FromReadSeeker adapts a seekable reader.
func FromReadSeeker(rs io.ReadSeeker) Handle {
	return &seekAdapter{r: rs, s: rs}
}

// FromWriter adapts a plain io.Writer. The result cannot seek.
func FromWriter(w io.Writer) Handle {
	if h, ok := w.(Handle); ok {
		return h
	}

	return &forwardWriter{w: w}
}

// FromWriteSeeker adapts a seekable writer.
func FromWriteSeeker(ws io.WriteSeeker) Handle {
	return &seekAdapter{w: ws, s: ws}
}

// Seekable reports whether h can move backwards.
func Seekable(h Handle) bool {
	switch h.(type) {
	case *forwardReader, *forwardWriter:
		return false
	}

	return true
}

type forwardReader struct {
	r   io.Reader
	pos int64
}

func (f *forwardReader) Read(p []byte) (int, error) {
	n, err := f.r.Read(p)
	f.pos += int64(n)

	return n, err
}

func (f *forwardReader) Write([]byte) (int, error) { return 0, ErrReadOnly }

func (f *forwardReader) SeekTo(offset int64, origin Origin) error {
	if _, err := whence(offset, origin); err != nil {
		return err
	}

	if origin == Start {
		if offset < f.pos {
			return ErrNotSeekable
		}
		offset -= f.pos
	}

	n, err := io.CopyN(io.Discard, f.r, offset)
	f.pos += n
	if err != nil {
		return fmt.Errorf("stream: skip %d bytes: %w", offset, err)
	}

	return nil
}

func (f *forwardReader) Close() error { return nil }

type forwardWriter struct {
	w io.Writer
}

func (f *forwardWriter) Read([]byte) (int, error)    { return 0, ErrWriteOnly }
func (f *forwardWriter) Write(p []byte) (int, error) { return f.w.Write(p) }
func (f *forwardWriter) SeekTo(int64, Origin) error  { return ErrNotSeekable }
func (f *forwardWriter) Close() error                { return nil }

type seekAdapter struct {
	r io.Reader
	w io.Writer
	s io.Seeker
}

func (a *seekAdapter) Read(p []byte) (int, error) {
	if a.r == nil {
		return 0, ErrWriteOnly
	}

	return a.r.Read(p)
}

func (a *seekAdapter) Write(p []byte) (int, error) {
	if a.w == nil {
		return 0, ErrReadOnly
	}

	return a.w.Write(p)
}

func (a *seekAdapter) SeekTo(offset int64, origin Origin) error {
	w, err := whence(offset, origin)
	if err != nil {
		return err
	}

	if _, err := a.s.Seek(offset, w); err != nil {
		return fmt.Errorf("stream: %w", err)
	}

	return nil
}

func (a *seekAdapter) Close() error { return nil }
