// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"errors"
	"fmt"
	"io"
)

// Error kinds. Every error returned by this package matches one of these with
// errors.Is, apart from I/O errors passed through from the underlying stream.
var (
	ErrInvalidArgs         = errors.New("wav: invalid arguments")
	ErrInvalidFile         = errors.New("wav: invalid file")
	ErrUnsupportedEncoding = errors.New("wav: unsupported encoding")

	// ErrEndOfStream is io.EOF. Reads return it once no frames remain.
	ErrEndOfStream = io.EOF
)

var (
	ErrNotWavFile           = fmt.Errorf("not a WAV file: %w", ErrInvalidFile)
	ErrUnsupportedWavLayout = fmt.Errorf("unsupported WAV layout: %w", ErrInvalidFile)
	ErrUnsupportedWavChunks = fmt.Errorf("unsupported WAV chunks: %w", ErrInvalidFile)
	ErrSizeMismatch         = fmt.Errorf("data size does not match declared size: %w", ErrInvalidFile)
	ErrCompressedChannels   = fmt.Errorf("compressed encodings support at most 2 channels: %w", ErrUnsupportedEncoding)
	ErrClosed               = fmt.Errorf("wav: already closed: %w", ErrInvalidArgs)
	ErrNotSeekable          = fmt.Errorf("wav: stream cannot seek: %w", ErrInvalidArgs)
)
