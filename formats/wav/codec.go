// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"io"

	"github.com/ik5/wavkit/audio"
)

// Codec adapts NewDecoder to audio.Decoder for use in an audio.Registry.
// Options are applied to every Decoder it creates.
type Codec struct {
	Options []Option
}

var _ audio.Decoder = Codec{}

func (c Codec) Decode(r io.Reader) (audio.Source, error) {
	d, err := NewDecoder(r, c.Options...)
	if err != nil {
		return nil, err
	}

	return d, nil
}
