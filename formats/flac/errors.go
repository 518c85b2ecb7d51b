// SPDX-License-Identifier: EPL-2.0

package flac

import "errors"

var (
	ErrNotFLACFile         = errors.New("flac: not a FLAC stream")
	ErrUnsupportedBitDepth = errors.New("flac: unsupported bit depth")
	ErrCorruptFrame        = errors.New("flac: corrupt frame")
)
