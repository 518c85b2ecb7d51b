// SPDX-License-Identifier: EPL-2.0

package vorbis

import "errors"

var ErrNotVorbisFile = errors.New("vorbis: cannot decode stream")
