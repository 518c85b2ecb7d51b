// SPDX-License-Identifier: EPL-2.0

package pcm

import "errors"

var ErrUnsupportedWidth = errors.New("pcm: unsupported sample width")
