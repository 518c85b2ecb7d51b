// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"math"
	"path/filepath"
	"slices"
	"testing"

	"github.com/ik5/wavkit/audio"
	"github.com/ik5/wavkit/internal/audiotest"
	"github.com/ik5/wavkit/pcm"
	"github.com/ik5/wavkit/stream"
)

var encodings = []struct {
	tag  FormatTag
	bits int
}{
	{TagPCM, 8},
	{TagPCM, 16},
	{TagPCM, 24},
	{TagPCM, 32},
	{TagIEEEFloat, 32},
	{TagIEEEFloat, 64},
	{TagALaw, 8},
	{TagMuLaw, 8},
}

// Raw frames written in immediate mode decode back to the same bytes for
// every encoding and both containers.
func TestEncoder_RoundTripBytes(t *testing.T) {
	t.Parallel()

	for _, c := range []Container{ContainerRIFF, ContainerW64} {
		for _, enc := range encodings {
			for _, ch := range []int{1, 2, 3} {
				for _, frames := range []int{0, 1, 257} {
					f := Format{Container: c, Tag: enc.tag, Channels: ch, SampleRate: 32000, BitsPerSample: enc.bits}
					payload := audiotest.Bytes(uint64(frames*ch+enc.bits), frames*ch*enc.bits/8)

					out := encode(t, f, func(e *Encoder) error {
						n, err := e.WriteFrames(payload)
						if n != frames {
							t.Errorf("%s: WriteFrames() = %d, want %d", f, n, frames)
						}
						return err
					})

					if got := uint64(len(out)); got != TargetFileSize(f, uint64(frames)) {
						t.Errorf("%s, %d frames: file is %d bytes, TargetFileSize = %d", f, frames, got, TargetFileSize(f, uint64(frames)))
					}

					d := mustOpen(t, out)
					if d.Format() != f || d.TotalFrames() != uint64(frames) {
						t.Errorf("%s: reopened as %s with %d frames", f, d.Format(), d.TotalFrames())
					}

					got := make([]byte, len(payload)+16)
					n, err := d.ReadRaw(got)
					if frames == 0 {
						if n != 0 || !errors.Is(err, io.EOF) {
							t.Errorf("%s: ReadRaw() on empty data = (%d, %v)", f, n, err)
						}
						continue
					}
					if err != nil || !bytes.Equal(got[:n], payload) {
						t.Errorf("%s, %d frames: data differs after round trip (%d bytes, %v)", f, frames, n, err)
					}
				}
			}
		}
	}
}

func TestEncoder_TypedRoundTrip(t *testing.T) {
	t.Parallel()

	s16 := rampS16(300, 2)
	s32 := make([]int32, len(s16))
	for i := range s32 {
		s32[i] = int32(i)*7919*256 - 1<<30
	}
	f32 := make([]float32, len(s16))
	for i := range f32 {
		f32[i] = float32(i%200-100) / 128
	}

	for _, c := range []Container{ContainerRIFF, ContainerW64} {
		t.Run(c.String(), func(t *testing.T) {
			t.Parallel()

			f := Format{Container: c, Tag: TagPCM, Channels: 2, SampleRate: 8000, BitsPerSample: 16}
			out := encode(t, f, func(e *Encoder) error { _, err := e.WriteFramesS16(s16); return err })
			if got := readAllS16(t, mustOpen(t, out), 64); !slices.Equal(got, s16) {
				t.Error("s16 through 16-bit PCM differs")
			}

			f.BitsPerSample = 32
			out = encode(t, f, func(e *Encoder) error { _, err := e.WriteFramesS32(s32); return err })
			got32 := make([]int32, len(s32))
			if n, err := mustOpen(t, out).ReadFramesS32(got32); n != 300 || err != nil || !slices.Equal(got32, s32) {
				t.Errorf("s32 through 32-bit PCM differs (%d, %v)", n, err)
			}

			f.BitsPerSample = 24
			out = encode(t, f, func(e *Encoder) error { _, err := e.WriteFramesS32(s32); return err })
			if n, err := mustOpen(t, out).ReadFramesS32(got32); n != 300 || err != nil {
				t.Fatalf("ReadFramesS32() = (%d, %v)", n, err)
			}
			for i := range s32 {
				if got32[i] != s32[i]&^0xFF {
					t.Fatalf("24-bit sample %d = %#x, want %#x", i, got32[i], s32[i]&^0xFF)
				}
			}

			f.Tag, f.BitsPerSample = TagIEEEFloat, 32
			out = encode(t, f, func(e *Encoder) error { _, err := e.WriteFramesF32(f32); return err })
			gotF := make([]float32, len(f32))
			if n, err := mustOpen(t, out).ReadFramesF32(gotF); n != 300 || err != nil || !slices.Equal(gotF, f32) {
				t.Errorf("f32 through IEEE float differs (%d, %v)", n, err)
			}

			for _, tag := range []FormatTag{TagALaw, TagMuLaw} {
				f.Tag, f.BitsPerSample = tag, 8
				out = encode(t, f, func(e *Encoder) error { _, err := e.WriteFramesS16(s16); return err })

				raw := make([]byte, len(s16))
				want := make([]int16, len(s16))
				if tag == TagALaw {
					pcm.S16ToAlaw(raw, s16)
					pcm.AlawToS16(want, raw)
				} else {
					pcm.S16ToMulaw(raw, s16)
					pcm.MulawToS16(want, raw)
				}
				if got := readAllS16(t, mustOpen(t, out), 100); !slices.Equal(got, want) {
					t.Errorf("s16 through %s differs", tag)
				}

				fromS32 := encode(t, f, func(e *Encoder) error {
					wide := make([]int32, len(s16))
					pcm.S16ToS32(wide, s16)
					_, err := e.WriteFramesS32(wide)
					return err
				})
				if !bytes.Equal(fromS32, out) {
					t.Errorf("%s from s32 differs from s16", tag)
				}
			}
		})
	}
}

// 16-bit PCM through float and back stays within one step.
func TestEncoder_FloatIdempotence(t *testing.T) {
	t.Parallel()

	all := make([]int16, 65536)
	for i := range all {
		all[i] = int16(i - 32768)
	}

	out := encode(t, PCM16(8000, 1), func(e *Encoder) error { _, err := e.WriteFramesS16(all); return err })
	f := make([]float32, len(all))
	if n, err := mustOpen(t, out).ReadFramesF32(f); n != len(all) || err != nil {
		t.Fatalf("ReadFramesF32() = (%d, %v)", n, err)
	}

	out = encode(t, PCM16(8000, 1), func(e *Encoder) error { _, err := e.WriteFramesF32(f); return err })
	back := readAllS16(t, mustOpen(t, out), 4096)

	for i := range all {
		if d := int(back[i]) - int(all[i]); d < -1 || d > 1 {
			t.Fatalf("sample %d came back as %d", all[i], back[i])
		}
	}
}

func TestEncoder_Sequential(t *testing.T) {
	t.Parallel()

	for _, f := range []Format{
		PCM16(8000, 1),
		{Container: ContainerRIFF, Tag: TagPCM, Channels: 1, SampleRate: 8000, BitsPerSample: 8},
		{Container: ContainerW64, Tag: TagPCM, Channels: 1, SampleRate: 8000, BitsPerSample: 8},
		{Container: ContainerW64, Tag: TagIEEEFloat, Channels: 2, SampleRate: 48000, BitsPerSample: 32},
	} {
		for _, frames := range []int{0, 5, 100} {
			bpf := f.Channels * f.BitsPerSample / 8
			payload := audiotest.Bytes(7, (frames+1)*bpf)
			immediate := encode(t, f, func(e *Encoder) error {
				_, err := e.WriteFrames(payload[:frames*bpf])
				return err
			})

			for _, delta := range []int{-1, 0, 1} {
				n := frames + delta
				if n < 0 {
					continue
				}

				var buf bytes.Buffer
				e, err := NewSequentialEncoder(&buf, f, uint64(frames))
				if err != nil {
					t.Fatalf("NewSequentialEncoder(%s) error = %v", f, err)
				}
				if _, err := e.WriteFrames(payload[:n*bpf]); err != nil {
					t.Fatalf("WriteFrames() error = %v", err)
				}

				err = e.Close()
				if delta == 0 {
					if err != nil {
						t.Errorf("%s, %d frames: Close() error = %v", f, frames, err)
					}
					if !bytes.Equal(buf.Bytes(), immediate) {
						t.Errorf("%s, %d frames: sequential output differs from immediate", f, frames)
					}
					continue
				}
				if !errors.Is(err, ErrSizeMismatch) || !errors.Is(err, ErrInvalidFile) {
					t.Errorf("%s, %d of %d frames: Close() error = %v, want ErrSizeMismatch", f, n, frames, err)
				}
			}
		}
	}
}

func TestEncoder_Header(t *testing.T) {
	t.Parallel()

	out := encode(t, PCM16(8000, 1), func(e *Encoder) error {
		_, err := e.WriteFramesS16([]int16{0x1234})
		return err
	})

	want := []byte("RIFF\x26\x00\x00\x00WAVEfmt \x10\x00\x00\x00" +
		"\x01\x00\x01\x00\x40\x1f\x00\x00\x80\x3e\x00\x00\x02\x00\x10\x00" +
		"data\x02\x00\x00\x00\x34\x12")
	if !bytes.Equal(out, want) {
		t.Errorf("header =\n% x\nwant\n% x", out, want)
	}

	f := Format{Container: ContainerW64, Tag: TagPCM, Channels: 1, SampleRate: 8000, BitsPerSample: 16}
	out = encode(t, f, func(e *Encoder) error {
		_, err := e.WriteFramesS16([]int16{1})
		return err
	})

	if len(out) != 112 {
		t.Fatalf("W64 file is %d bytes, want 112", len(out))
	}
	if !bytes.Equal(out[:16], GUIDW64RIFF[:]) || !bytes.Equal(out[24:40], GUIDW64WAVE[:]) ||
		!bytes.Equal(out[40:56], GUIDW64Fmt[:]) || !bytes.Equal(out[80:96], GUIDW64Data[:]) {
		t.Error("W64 GUIDs misplaced")
	}
	if got := binary.LittleEndian.Uint64(out[16:]); got != 112 {
		t.Errorf("W64 RIFF size = %d, want 112", got)
	}
	if got := binary.LittleEndian.Uint64(out[56:]); got != 40 {
		t.Errorf("W64 fmt size = %d, want 40", got)
	}
	if got := binary.LittleEndian.Uint64(out[96:]); got != 26 {
		t.Errorf("W64 data size = %d, want 26", got)
	}
}

func TestTargetFileSize(t *testing.T) {
	t.Parallel()

	w64 := func(bits int) Format {
		return Format{Container: ContainerW64, Tag: TagPCM, Channels: 1, SampleRate: 8000, BitsPerSample: bits}
	}
	u8 := Format{Container: ContainerRIFF, Tag: TagPCM, Channels: 1, SampleRate: 8000, BitsPerSample: 8}

	tests := []struct {
		f      Format
		frames uint64
		want   uint64
	}{
		{PCM16(8000, 1), 0, 44},
		{PCM16(8000, 1), 1, 46},
		{PCM16(8000, 2), 10, 84},
		{u8, 3, 48},
		{w64(16), 0, 104},
		{w64(16), 1, 112},
		{w64(16), 4, 112},
		{w64(8), 9, 120},
		{PCM16(8000, 1), 1 << 31, math.MaxUint32 + 8},
	}

	for _, tt := range tests {
		if got := TargetFileSize(tt.f, tt.frames); got != tt.want {
			t.Errorf("TargetFileSize(%s, %d) = %d, want %d", tt.f, tt.frames, got, tt.want)
		}
	}
}

func TestEncoder_Validation(t *testing.T) {
	t.Parallel()

	base := PCM16(8000, 1)
	with := func(fn func(*Format)) Format {
		f := base
		fn(&f)
		return f
	}

	tests := []struct {
		name string
		f    Format
		want error
	}{
		{"zero channels", with(func(f *Format) { f.Channels = 0 }), ErrInvalidArgs},
		{"zero rate", with(func(f *Format) { f.SampleRate = 0 }), ErrInvalidArgs},
		{"zero bits", with(func(f *Format) { f.BitsPerSample = 0 }), ErrInvalidArgs},
		{"unknown container", with(func(f *Format) { f.Container = Container(7) }), ErrInvalidArgs},
		{"extensible", with(func(f *Format) { f.Tag = TagExtensible }), ErrUnsupportedEncoding},
		{"ms adpcm", with(func(f *Format) { f.Tag = TagADPCM; f.BitsPerSample = 4 }), ErrUnsupportedEncoding},
		{"ima adpcm", with(func(f *Format) { f.Tag = TagDVIADPCM; f.BitsPerSample = 4 }), ErrUnsupportedEncoding},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if _, err := NewEncoder(stream.NewBuffer().AsWriteSeeker(), tt.f); !errors.Is(err, tt.want) {
				t.Errorf("NewEncoder() error = %v, want %v", err, tt.want)
			}
			if _, err := NewSequentialEncoder(io.Discard, tt.f, 10); !errors.Is(err, tt.want) {
				t.Errorf("NewSequentialEncoder() error = %v, want %v", err, tt.want)
			}
		})
	}

	if _, err := NewEncoder(nil, base); !errors.Is(err, ErrInvalidArgs) {
		t.Errorf("NewEncoder(nil) error = %v", err)
	}
	if _, err := NewSequentialEncoder(nil, base, 1); !errors.Is(err, ErrInvalidArgs) {
		t.Errorf("NewSequentialEncoder(nil) error = %v", err)
	}
	if _, err := Create(stream.FromWriter(io.Discard), base, ModeImmediate, 0); !errors.Is(err, ErrNotSeekable) {
		t.Errorf("immediate mode on a plain writer error = %v, want ErrNotSeekable", err)
	}
	if _, err := NewSequentialEncoder(io.Discard, base, 1<<31); !errors.Is(err, ErrInvalidArgs) {
		t.Errorf("oversized RIFF error = %v, want ErrInvalidArgs", err)
	}
	if _, err := NewSequentialEncoder(io.Discard, with(func(f *Format) { f.Container = ContainerW64 }), 1<<31); err != nil {
		t.Errorf("large W64 error = %v", err)
	}
}

func TestEncoder_TypedWriteUnsupported(t *testing.T) {
	t.Parallel()

	for _, f := range []Format{
		{Container: ContainerRIFF, Tag: TagPCM, Channels: 1, SampleRate: 8000, BitsPerSample: 12},
		{Container: ContainerRIFF, Tag: TagPCM, Channels: 1, SampleRate: 8000, BitsPerSample: 48},
		{Container: ContainerRIFF, Tag: TagIEEEFloat, Channels: 1, SampleRate: 8000, BitsPerSample: 16},
		{Container: ContainerRIFF, Tag: TagALaw, Channels: 1, SampleRate: 8000, BitsPerSample: 16},
	} {
		e, err := NewEncoder(stream.NewBuffer().AsWriteSeeker(), f)
		if err != nil {
			t.Fatalf("NewEncoder(%s) error = %v", f, err)
		}
		if _, err := e.WriteFramesS16([]int16{1, 2}); !errors.Is(err, ErrUnsupportedEncoding) {
			t.Errorf("%s: WriteFramesS16() error = %v, want ErrUnsupportedEncoding", f, err)
		}
		if _, err := e.WriteFramesF32([]float32{1, 2}); !errors.Is(err, ErrUnsupportedEncoding) {
			t.Errorf("%s: WriteFramesF32() error = %v, want ErrUnsupportedEncoding", f, err)
		}
		_ = e.Close()
	}
}

type closeTracker struct {
	*stream.Buffer
	closed int
}

func (c *closeTracker) Close() error {
	c.closed++
	return nil
}

func TestEncoder_Close(t *testing.T) {
	t.Parallel()

	h := &closeTracker{Buffer: stream.NewBuffer()}
	e, err := Create(h, PCM16(8000, 2), ModeImmediate, 0)
	if err != nil {
		t.Fatal(err)
	}

	if n, err := e.WriteFramesS16([]int16{1, 2, 3}); n != 1 || err != nil {
		t.Errorf("WriteFramesS16(3 samples) = (%d, %v), want (1, nil)", n, err)
	}
	if _, err := e.WriteFramesS16([]int16{1}); !errors.Is(err, audio.ErrInvalidDstSize) {
		t.Errorf("WriteFramesS16(1 sample) error = %v", err)
	}
	if e.DataSize() != 4 {
		t.Errorf("DataSize() = %d, want 4", e.DataSize())
	}

	if err := e.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if h.closed != 1 {
		t.Errorf("handle closed %d times, want 1", h.closed)
	}
	if err := e.Close(); !errors.Is(err, ErrClosed) {
		t.Errorf("second Close() error = %v, want ErrClosed", err)
	}
	if _, err := e.WriteRaw([]byte{1}); !errors.Is(err, ErrClosed) {
		t.Errorf("WriteRaw() after Close() error = %v, want ErrClosed", err)
	}
	if h.closed != 1 {
		t.Errorf("handle closed %d times, want 1", h.closed)
	}

	bad := &closeTracker{Buffer: stream.NewBuffer()}
	if _, err := Create(bad, Format{}, ModeImmediate, 0); err == nil || bad.closed != 1 {
		t.Errorf("failed Create() = %v, handle closed %d times", err, bad.closed)
	}
}

func TestEncoder_Files(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	samples := rampS16(1000, 2)
	f := Format{Container: ContainerW64, Tag: TagPCM, Channels: 2, SampleRate: 44100, BitsPerSample: 24}

	write := func(e *Encoder, err error) {
		t.Helper()
		if err != nil {
			t.Fatal(err)
		}
		if _, err := e.WriteFramesS16(samples); err != nil {
			t.Fatal(err)
		}
		if err := e.Close(); err != nil {
			t.Fatal(err)
		}
	}

	immediate := filepath.Join(dir, "immediate.w64")
	sequential := filepath.Join(dir, "sequential.w64")
	write(CreateFile(immediate, f))
	write(CreateFileSequential(sequential, f, 1000))

	for _, path := range []string{immediate, sequential} {
		d, err := OpenFile(path)
		if err != nil {
			t.Fatalf("OpenFile(%s) error = %v", path, err)
		}
		if d.Format() != f {
			t.Errorf("%s: Format() = %s", path, d.Format())
		}
		if got := readAllS16(t, d, 333); !slices.Equal(got, samples) {
			t.Errorf("%s: samples differ", path)
		}
		_ = d.Close()
	}

	if _, err := CreateFile(filepath.Join(dir, "bad.wav"), Format{}); !errors.Is(err, ErrInvalidArgs) {
		t.Errorf("CreateFile() with empty format error = %v", err)
	}
	if _, err := OpenFile(filepath.Join(dir, "missing.wav")); err == nil {
		t.Error("OpenFile() of a missing file succeeded")
	}
}

func TestEncoder_Sink(t *testing.T) {
	t.Parallel()

	src := audiotest.NewRampSource(16000, 2, 1001)
	f := Format{Container: ContainerRIFF, Tag: TagIEEEFloat, Channels: 2, SampleRate: 16000, BitsPerSample: 32}

	var e audio.Sink
	out := encode(t, f, func(enc *Encoder) error {
		e = enc
		n, err := audio.Copy(e, src, make([]float32, 300))
		if n != 2002 {
			t.Errorf("Copy() = %d, want 2002", n)
		}
		return err
	})

	src.Reset()
	want, _ := audiotest.Collect(src, 4096)
	got, err := audiotest.Collect(mustOpen(t, out), 128)
	if err != nil || !slices.Equal(got, want) {
		t.Errorf("float samples differ after Copy (%v)", err)
	}
}

func BenchmarkEncoder_WriteFramesS16(b *testing.B) {
	samples := rampS16(4096, 2)

	b.ReportAllocs()
	b.SetBytes(int64(len(samples) * 2))

	for b.Loop() {
		e, _ := NewSequentialEncoder(io.Discard, PCM16(44100, 2), 4096)
		_, _ = e.WriteFramesS16(samples)
		_ = e.Close()
	}
}
