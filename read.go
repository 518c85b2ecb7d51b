// SPDX-License-Identifier: EPL-2.0

package wavkit

import (
	"errors"
	"fmt"
	"io"

	"github.com/ik5/wavkit/formats/wav"
)

// Info describes the stream a Read function decoded.
type Info struct {
	Format      wav.Format
	Channels    int
	SampleRate  int
	TotalFrames uint64
}

// readChunkFrames is how many frames each read pulls from the decoder.
const readChunkFrames = 4096

// ReadFileS16 decodes every frame of the WAV or W64 file at path as
// interleaved int16 samples.
func ReadFileS16(path string, opts ...wav.Option) ([]int16, Info, error) {
	d, err := wav.OpenFile(path, opts...)
	if err != nil {
		return nil, Info{}, err
	}

	return readAll(d, d.ReadFramesS16)
}

func ReadFileS32(path string, opts ...wav.Option) ([]int32, Info, error) {
	d, err := wav.OpenFile(path, opts...)
	if err != nil {
		return nil, Info{}, err
	}

	return readAll(d, d.ReadFramesS32)
}

func ReadFileF32(path string, opts ...wav.Option) ([]float32, Info, error) {
	d, err := wav.OpenFile(path, opts...)
	if err != nil {
		return nil, Info{}, err
	}

	return readAll(d, d.ReadFramesF32)
}

// ReadMemoryS16 is ReadFileS16 for a file already in memory.
func ReadMemoryS16(data []byte, opts ...wav.Option) ([]int16, Info, error) {
	d, err := wav.OpenMemory(data, opts...)
	if err != nil {
		return nil, Info{}, err
	}

	return readAll(d, d.ReadFramesS16)
}

func ReadMemoryS32(data []byte, opts ...wav.Option) ([]int32, Info, error) {
	d, err := wav.OpenMemory(data, opts...)
	if err != nil {
		return nil, Info{}, err
	}

	return readAll(d, d.ReadFramesS32)
}

func ReadMemoryF32(data []byte, opts ...wav.Option) ([]float32, Info, error) {
	d, err := wav.OpenMemory(data, opts...)
	if err != nil {
		return nil, Info{}, err
	}

	return readAll(d, d.ReadFramesF32)
}

// readAll drains d through read and closes it. The result grows as frames
// arrive rather than trusting the header's frame count for its allocation.
func readAll[T any](d *wav.Decoder, read func([]T) (int, error)) (out []T, info Info, err error) {
	defer func() {
		if cerr := d.Close(); cerr != nil {
			err = errors.Join(err, cerr)
		}
	}()

	info = Info{
		Format:      d.Format(),
		Channels:    d.Channels(),
		SampleRate:  d.SampleRate(),
		TotalFrames: d.TotalFrames(),
	}

	ch := info.Channels
	out = make([]T, 0, min(info.TotalFrames, readChunkFrames*16)*uint64(ch))
	chunk := make([]T, readChunkFrames*ch)

	for {
		n, rerr := read(chunk)
		out = append(out, chunk[:n*ch]...)

		if errors.Is(rerr, io.EOF) {
			return out, info, nil
		}
		if rerr != nil {
			return nil, info, fmt.Errorf("wavkit: read frames: %w", rerr)
		}
		if n == 0 {
			return out, info, nil
		}
	}
}
