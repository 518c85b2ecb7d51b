// SPDX-License-Identifier: EPL-2.0

package aiff

import "errors"

var (
	ErrNotAiffFile           = errors.New("aiff: not an AIFF file")
	ErrUnsupportedBitDepth   = errors.New("aiff: unsupported bit depth")
	ErrUnsupportedAiffLayout = errors.New("aiff: unsupported layout")
)
