// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"io"
)

// WriteWAV16 writes a mono 16-bit PCM RIFF file at sampleRate. w does not
// need to be seekable.
func WriteWAV16(w io.Writer, sampleRate int, samples []int16) error {
	enc, err := NewSequentialEncoder(w, PCM16(sampleRate, 1), uint64(len(samples)))
	if err != nil {
		return err
	}

	if _, err := enc.WriteFramesS16(samples); err != nil {
		_ = enc.Close()
		return err
	}

	return enc.Close()
}
