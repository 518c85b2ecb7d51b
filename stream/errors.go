// SPDX-License-Identifier: EPL-2.0

package stream

import "errors"

var (
	ErrNegativeOffset = errors.New("stream: negative seek offset")
	ErrInvalidOrigin  = errors.New("stream: invalid seek origin")
	ErrNotSeekable    = errors.New("stream: handle cannot seek")
	ErrReadOnly       = errors.New("stream: handle is read-only")
	ErrWriteOnly      = errors.New("stream: handle is write-only")
	ErrClosed         = errors.New("stream: handle is closed")
)
