// SPDX-License-Identifier: EPL-2.0

package wavkit

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/ik5/wavkit/formats/wav"
	"github.com/ik5/wavkit/internal/audiotest"
)

func stereoRamp(frames int) []int16 {
	s := make([]int16, frames*2)
	for i := range s {
		s[i] = int16(i*37 - 20000)
	}

	return s
}

func writeFile(t *testing.T, f wav.Format, samples []int16) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "in.wav")
	e, err := wav.CreateFile(path, f)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := e.WriteFramesS16(samples); err != nil {
		t.Fatal(err)
	}
	if err := e.Close(); err != nil {
		t.Fatal(err)
	}

	return path
}

func TestReadFile(t *testing.T) {
	t.Parallel()

	samples := stereoRamp(10000)
	for _, c := range []wav.Container{wav.ContainerRIFF, wav.ContainerW64} {
		f := wav.Format{Container: c, Tag: wav.TagPCM, Channels: 2, SampleRate: 32000, BitsPerSample: 16}
		path := writeFile(t, f, samples)

		got, info, err := ReadFileS16(path)
		if err != nil {
			t.Fatalf("%s: ReadFileS16() error = %v", c, err)
		}
		want := Info{Format: f, Channels: 2, SampleRate: 32000, TotalFrames: 10000}
		if info != want {
			t.Errorf("%s: info = %+v, want %+v", c, info, want)
		}
		if !slices.Equal(got, samples) {
			t.Errorf("%s: s16 samples differ", c)
		}

		s32, _, err := ReadFileS32(path)
		if err != nil || len(s32) != len(samples) {
			t.Fatalf("%s: ReadFileS32() = %d samples, %v", c, len(s32), err)
		}
		for i, s := range samples {
			if s32[i] != int32(s)<<16 {
				t.Fatalf("%s: s32 sample %d = %d", c, i, s32[i])
			}
		}

		f32, _, err := ReadFileF32(path)
		if err != nil || len(f32) != len(samples) {
			t.Fatalf("%s: ReadFileF32() = %d samples, %v", c, len(f32), err)
		}
		for i, s := range samples {
			if f32[i] != float32(s)/32768 {
				t.Fatalf("%s: f32 sample %d = %v", c, i, f32[i])
			}
		}
	}
}

func TestReadMemory(t *testing.T) {
	t.Parallel()

	samples := stereoRamp(3)
	var buf bytes.Buffer
	e, err := wav.NewSequentialEncoder(&buf, wav.PCM16(8000, 2), 3)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := e.WriteFramesS16(samples); err != nil {
		t.Fatal(err)
	}
	if err := e.Close(); err != nil {
		t.Fatal(err)
	}

	s16, info, err := ReadMemoryS16(buf.Bytes())
	if err != nil || !slices.Equal(s16, samples) || info.TotalFrames != 3 {
		t.Errorf("ReadMemoryS16() = %v, %+v, %v", s16, info, err)
	}
	if s32, _, err := ReadMemoryS32(buf.Bytes()); err != nil || len(s32) != 6 {
		t.Errorf("ReadMemoryS32() = %v, %v", s32, err)
	}
	if f32, _, err := ReadMemoryF32(buf.Bytes(), wav.WithBufferSize(4)); err != nil || len(f32) != 6 {
		t.Errorf("ReadMemoryF32() = %v, %v", f32, err)
	}
}

// An empty data chunk reads as no samples, not an error.
func TestReadMemory_Empty(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := wav.WriteWAV16(&buf, 8000, nil); err != nil {
		t.Fatal(err)
	}

	got, info, err := ReadMemoryS16(buf.Bytes())
	if err != nil || len(got) != 0 || info.TotalFrames != 0 {
		t.Errorf("ReadMemoryS16() = %v, %+v, %v", got, info, err)
	}
}

func TestRead_Errors(t *testing.T) {
	t.Parallel()

	if _, _, err := ReadFileS16(filepath.Join(t.TempDir(), "missing.wav")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("ReadFileS16(missing) error = %v, want os.ErrNotExist", err)
	}

	garbage := audiotest.Bytes(1, 100)
	if _, _, err := ReadMemoryS16(garbage); !errors.Is(err, wav.ErrInvalidFile) {
		t.Errorf("ReadMemoryS16(garbage) error = %v", err)
	}
	if _, _, err := ReadMemoryS32(garbage); !errors.Is(err, wav.ErrInvalidFile) {
		t.Errorf("ReadMemoryS32(garbage) error = %v", err)
	}
	if _, _, err := ReadMemoryF32(nil); err == nil {
		t.Error("ReadMemoryF32(nil) succeeded")
	}
}

func BenchmarkReadMemoryS16(b *testing.B) {
	var buf bytes.Buffer
	_ = wav.WriteWAV16(&buf, 44100, make([]int16, 44100))
	data := buf.Bytes()

	b.ReportAllocs()
	b.SetBytes(int64(len(data)))

	for b.Loop() {
		_, _, _ = ReadMemoryS16(data)
	}
}
