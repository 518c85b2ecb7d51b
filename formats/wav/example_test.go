// SPDX-License-Identifier: EPL-2.0

package wav_test

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/ik5/wavkit/formats/wav"
	"github.com/ik5/wavkit/stream"
)

func Example_roundTrip() {
	buf := stream.NewBuffer()

	enc, err := wav.Create(buf, wav.PCM16(8000, 1), wav.ModeImmediate, 0)
	if err != nil {
		fmt.Println(err)
		return
	}
	if _, err := enc.WriteFramesS16([]int16{-1000, -500, 0, 500, 1000}); err != nil {
		fmt.Println(err)
		return
	}
	if err := enc.Close(); err != nil {
		fmt.Println(err)
		return
	}

	dec, err := wav.OpenMemory(buf.Bytes())
	if err != nil {
		fmt.Println(err)
		return
	}
	defer dec.Close()

	samples := make([]int16, 8)
	n, _ := dec.ReadFramesS16(samples)

	fmt.Println(dec.Format())
	fmt.Println(samples[:n])
	// Output:
	// RIFF PCM 8000 Hz 1 ch 16-bit
	// [-1000 -500 0 500 1000]
}

func Example_sequential() {
	f := wav.Format{
		Container:     wav.ContainerW64,
		Tag:           wav.TagIEEEFloat,
		Channels:      2,
		SampleRate:    48000,
		BitsPerSample: 32,
	}

	var out bytes.Buffer
	enc, err := wav.NewSequentialEncoder(&out, f, 2)
	if err != nil {
		fmt.Println(err)
		return
	}
	_, _ = enc.WriteFramesF32([]float32{0.5, -0.5, 0.25, -0.25})
	if err := enc.Close(); err != nil {
		fmt.Println(err)
		return
	}

	fmt.Println(out.Len(), wav.TargetFileSize(f, 2))
	// Output: 120 120
}

func Example_sizeMismatch() {
	var out bytes.Buffer
	enc, _ := wav.NewSequentialEncoder(&out, wav.PCM16(8000, 1), 10)
	_, _ = enc.WriteFramesS16([]int16{1, 2, 3})

	err := enc.Close()
	fmt.Println(errors.Is(err, wav.ErrSizeMismatch))
	// Output: true
}

func Example_notWAV() {
	_, err := wav.OpenMemory([]byte("This is not a WAV file, just some text"))

	fmt.Println(errors.Is(err, wav.ErrInvalidFile))
	// Output: true
}

func ExampleDecoder_SeekToFrame() {
	var buf bytes.Buffer
	_ = wav.WriteWAV16(&buf, 8000, []int16{10, 20, 30, 40, 50})

	dec, _ := wav.OpenMemory(buf.Bytes())
	defer dec.Close()

	_ = dec.SeekToFrame(3)
	rest := make([]int16, 5)
	n, _ := dec.ReadFramesS16(rest)

	fmt.Println(dec.TotalFrames(), rest[:n])
	// Output: 5 [40 50]
}
