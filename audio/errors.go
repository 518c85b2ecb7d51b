// SPDX-License-Identifier: EPL-2.0

package audio

import "errors"

var (
	ErrInvalidDstSize = errors.New("dst size must be multiple of channels")
	ErrInvalidRate    = errors.New("sample rate must be positive")

	// ErrUnknownFormat is returned by callers that find no Decoder
	// registered for a format key.
	ErrUnknownFormat = errors.New("no decoder registered for format")
)
