// SPDX-License-Identifier: EPL-2.0

package mp3

import "errors"

// ErrNotMP3File wraps every error go-mp3 reports while reading the headers.
var ErrNotMP3File = errors.New("mp3: cannot decode stream")
