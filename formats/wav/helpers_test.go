// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"testing"

	"github.com/ik5/wavkit/internal/audiotest"
	"github.com/ik5/wavkit/stream"
)

func fmtChunk(tag FormatTag, channels, rate, bits int) []byte {
	return audiotest.RIFFChunk("fmt ", audiotest.Fmt{
		Tag: uint16(tag), Channels: channels, SampleRate: rate, Bits: bits,
	}.Bytes())
}

// riffFile wraps a fmt chunk, any extra chunks, and a data chunk.
func riffFile(tag FormatTag, channels, rate, bits int, data []byte, extra ...[]byte) []byte {
	chunks := [][]byte{fmtChunk(tag, channels, rate, bits)}
	chunks = append(chunks, extra...)
	chunks = append(chunks, audiotest.RIFFChunk("data", data))

	return audiotest.RIFF(chunks...)
}

func adpcmFile(container Container, tag FormatTag, channels, blockAlign int, data []byte, extra ...[]byte) []byte {
	f := audiotest.Fmt{
		Tag:        uint16(tag),
		Channels:   channels,
		SampleRate: 22050,
		BlockAlign: blockAlign,
		Bits:       4,
		Extra:      []byte{0xF4, 0x01},
	}

	if container == ContainerW64 {
		chunks := [][]byte{audiotest.W64Chunk("fmt ", f.Bytes())}
		chunks = append(chunks, extra...)
		chunks = append(chunks, audiotest.W64Chunk("data", data))
		return audiotest.W64(chunks...)
	}

	chunks := [][]byte{audiotest.RIFFChunk("fmt ", f.Bytes())}
	chunks = append(chunks, extra...)
	chunks = append(chunks, audiotest.RIFFChunk("data", data))

	return audiotest.RIFF(chunks...)
}

func mustOpen(t testing.TB, data []byte, opts ...Option) *Decoder {
	t.Helper()

	d, err := OpenMemory(data, opts...)
	if err != nil {
		t.Fatalf("OpenMemory() error = %v", err)
	}
	t.Cleanup(func() { _ = d.Close() })

	return d
}

// encode writes frames with an immediate-mode Encoder into memory.
func encode(t testing.TB, f Format, write func(e *Encoder) error) []byte {
	t.Helper()

	buf := stream.NewBuffer()
	e, err := Create(buf, f, ModeImmediate, 0)
	if err != nil {
		t.Fatalf("Create(%s) error = %v", f, err)
	}
	if err := write(e); err != nil {
		t.Fatalf("write(%s) error = %v", f, err)
	}
	if err := e.Close(); err != nil {
		t.Fatalf("Close(%s) error = %v", f, err)
	}

	return buf.Bytes()
}

func readAllS16(t testing.TB, d *Decoder, chunk int) []int16 {
	t.Helper()

	var out []int16
	buf := make([]int16, chunk*d.Channels())
	for {
		n, err := d.ReadFramesS16(buf)
		out = append(out, buf[:n*d.Channels()]...)
		if err != nil {
			if err != ErrEndOfStream {
				t.Fatalf("ReadFramesS16() error = %v", err)
			}
			return out
		}
	}
}
