// SPDX-License-Identifier: EPL-2.0

package stream

import (
	"bufio"
	"fmt"
	"io"
	"os"
)

const defaultBufferSize = 32 * 1024

// File is a buffered file Handle. A File opened with Open only reads, one
// created with Create only writes.
type File struct {
	f      *os.File
	r      *bufio.Reader
	w      *bufio.Writer
	closed bool
}

// Open opens path for reading.
func Open(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("stream: %w", err)
	}

	return &File{f: f, r: bufio.NewReaderSize(f, defaultBufferSize)}, nil
}

// Create creates or truncates path for writing.
func Create(path string) (*File, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("stream: %w", err)
	}

	return &File{f: f, w: bufio.NewWriterSize(f, defaultBufferSize)}, nil
}

func (f *File) Read(p []byte) (int, error) {
	if f.closed {
		return 0, ErrClosed
	}
	if f.r == nil {
		return 0, ErrWriteOnly
	}

	return f.r.Read(p)
}

func (f *File) Write(p []byte) (int, error) {
	if f.closed {
		return 0, ErrClosed
	}
	if f.w == nil {
		return 0, ErrReadOnly
	}

	return f.w.Write(p)
}

// SeekTo repositions the file. Short forward skips on the read side are served
// from the buffer without touching the descriptor.
func (f *File) SeekTo(offset int64, origin Origin) error {
	if f.closed {
		return ErrClosed
	}

	w, err := whence(offset, origin)
	if err != nil {
		return err
	}

	if f.w != nil {
		if err := f.w.Flush(); err != nil {
			return fmt.Errorf("stream: flush before seek: %w", err)
		}
		if _, err := f.f.Seek(offset, w); err != nil {
			return fmt.Errorf("stream: %w", err)
		}

		return nil
	}

	if origin == Current {
		if offset <= int64(f.r.Buffered()) {
			_, err := f.r.Discard(int(offset))
			return err
		}
		// The descriptor is ahead of the logical cursor by the buffered bytes.
		offset -= int64(f.r.Buffered())
	}

	if _, err := f.f.Seek(offset, w); err != nil {
		return fmt.Errorf("stream: %w", err)
	}
	f.r.Reset(f.f)

	return nil
}

// Close flushes pending writes and closes the descriptor. Calling Close more
// than once returns ErrClosed.
func (f *File) Close() error {
	if f.closed {
		return ErrClosed
	}
	f.closed = true

	var flushErr error
	if f.w != nil {
		flushErr = f.w.Flush()
	}

	if err := f.f.Close(); err != nil {
		return fmt.Errorf("stream: %w", err)
	}
	if flushErr != nil {
		return fmt.Errorf("stream: %w", flushErr)
	}

	return nil
}

// Name returns the path the file was opened with.
func (f *File) Name() string { return f.f.Name() }

var _ io.ReadWriteCloser = (*File)(nil)
