// SPDX-License-Identifier: EPL-2.0

package adpcm

import "errors"

var (
	// ErrInvalidBlock reports a block header that cannot be decoded.
	ErrInvalidBlock = errors.New("adpcm: invalid block header")

	// ErrChannels reports a channel count other than 1 or 2.
	ErrChannels = errors.New("adpcm: only mono and stereo are supported")

	// ErrBlockAlign reports a block size too small to hold its own header.
	ErrBlockAlign = errors.New("adpcm: block align too small")
)
