// SPDX-License-Identifier: EPL-2.0

package wavkit

import (
	"fmt"

	"github.com/ik5/wavkit/audio"
	"github.com/ik5/wavkit/utils"
)

// ResampleToMono16 runs src through a resampler to targetRate and a mono
// downmix, and collects the result as 16-bit samples. bufferSize is the
// number of samples moved per read.
func ResampleToMono16(src audio.Source, targetRate, bufferSize int) ([]int16, error) {
	if targetRate <= 0 {
		return nil, fmt.Errorf("wavkit: %w: %d", audio.ErrInvalidRate, targetRate)
	}
	if bufferSize <= 0 {
		return nil, fmt.Errorf("wavkit: %w: %d", audio.ErrInvalidDstSize, bufferSize)
	}

	mono := audio.NewMonoMixer(audio.NewResampler(src, targetRate))
	sink := &s16Sink{}
	if _, err := audio.Copy(sink, mono, make([]float32, bufferSize)); err != nil {
		return nil, fmt.Errorf("wavkit: resample: %w", err)
	}

	return sink.samples, nil
}

type s16Sink struct{ samples []int16 }

func (s *s16Sink) WriteSamples(src []float32) (int, error) {
	for _, x := range src {
		s.samples = append(s.samples, utils.Float32ToInt16(x))
	}

	return len(src), nil
}
