// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/go-audio/riff"

	"github.com/ik5/wavkit/audio"
	"github.com/ik5/wavkit/pcm"
	"github.com/ik5/wavkit/stream"
	"github.com/ik5/wavkit/utils"
)

// Mode selects how an Encoder finalizes the file.
type Mode int

const (
	// ModeImmediate writes placeholder sizes and patches them on Close. The
	// stream must be seekable.
	ModeImmediate Mode = iota
	// ModeSequential writes the final sizes up front from a known frame
	// count and never seeks.
	ModeSequential
)

func (m Mode) String() string {
	switch m {
	case ModeImmediate:
		return "immediate"
	case ModeSequential:
		return "sequential"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Encoder writes a single-data-chunk WAV or Wave64 file. It owns its stream
// and is not safe for concurrent use.
type Encoder struct {
	h    stream.Handle
	f    Format
	mode Mode

	bps      int
	dataPos  uint64
	dataSize uint64
	target   uint64

	scratch []byte
	s16     []int16
	closed  bool
}

var _ audio.Sink = (*Encoder)(nil)

// NewEncoder writes f to w in immediate mode.
func NewEncoder(w io.WriteSeeker, f Format) (*Encoder, error) {
	if w == nil {
		return nil, fmt.Errorf("%w: nil writer", ErrInvalidArgs)
	}

	return Create(stream.FromWriteSeeker(w), f, ModeImmediate, 0)
}

// NewSequentialEncoder writes f to w, which need not be seekable. Exactly
// totalFrames frames must be written before Close.
func NewSequentialEncoder(w io.Writer, f Format, totalFrames uint64) (*Encoder, error) {
	if w == nil {
		return nil, fmt.Errorf("%w: nil writer", ErrInvalidArgs)
	}

	return Create(stream.FromWriter(w), f, ModeSequential, totalFrames)
}

// CreateFile creates path and writes f to it in immediate mode.
func CreateFile(path string, f Format) (*Encoder, error) {
	return createFile(path, f, ModeImmediate, 0)
}

func CreateFileSequential(path string, f Format, totalFrames uint64) (*Encoder, error) {
	return createFile(path, f, ModeSequential, totalFrames)
}

func createFile(path string, f Format, mode Mode, totalFrames uint64) (*Encoder, error) {
	if err := validateFormat(f); err != nil {
		return nil, err
	}

	fh, err := stream.Create(path)
	if err != nil {
		return nil, fmt.Errorf("wav: %w", err)
	}

	return Create(fh, f, mode, totalFrames)
}

// Create writes the container and fmt headers to h. totalFrames is only
// used in sequential mode. On failure h is closed.
func Create(h stream.Handle, f Format, mode Mode, totalFrames uint64) (*Encoder, error) {
	if h == nil {
		return nil, fmt.Errorf("%w: nil handle", ErrInvalidArgs)
	}

	e, err := create(h, f, mode, totalFrames)
	if err != nil {
		_ = h.Close()
		return nil, err
	}

	return e, nil
}

func create(h stream.Handle, f Format, mode Mode, totalFrames uint64) (*Encoder, error) {
	if err := validateFormat(f); err != nil {
		return nil, err
	}

	e := &Encoder{h: h, f: f, mode: mode, bps: f.bytesPerSample()}

	switch mode {
	case ModeImmediate:
		if !stream.Seekable(h) {
			return nil, ErrNotSeekable
		}
	case ModeSequential:
		e.target = totalFrames * uint64(f.Channels) * uint64(f.BitsPerSample) / 8
		if f.Container == ContainerRIFF && e.target > math.MaxUint32-riffDataPos {
			return nil, fmt.Errorf("%w: %d data bytes do not fit a RIFF file", ErrInvalidArgs, e.target)
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrInvalidArgs, mode)
	}

	if err := e.writeHeader(); err != nil {
		return nil, err
	}

	size := max(defaultBufferSize, e.bps*f.Channels)
	e.scratch = make([]byte, size)
	e.s16 = make([]int16, size/max(e.bps, 1))

	return e, nil
}

func validateFormat(f Format) error {
	if f.Container != ContainerRIFF && f.Container != ContainerW64 {
		return fmt.Errorf("%w: %s", ErrInvalidArgs, f.Container)
	}
	if f.Channels <= 0 || f.Channels > math.MaxUint16 {
		return fmt.Errorf("%w: %d channels", ErrInvalidArgs, f.Channels)
	}
	if f.SampleRate <= 0 || f.SampleRate > math.MaxUint32 {
		return fmt.Errorf("%w: sample rate %d", ErrInvalidArgs, f.SampleRate)
	}
	if f.BitsPerSample <= 0 || f.BitsPerSample > math.MaxUint16 {
		return fmt.Errorf("%w: %d bits per sample", ErrInvalidArgs, f.BitsPerSample)
	}
	if f.Channels*f.BitsPerSample/8 > math.MaxUint16 {
		return fmt.Errorf("%w: block align overflow", ErrInvalidArgs)
	}

	switch f.Tag {
	case TagExtensible, TagADPCM, TagDVIADPCM:
		return fmt.Errorf("%w: cannot write %s", ErrUnsupportedEncoding, f.Tag)
	}

	return nil
}

func (e *Encoder) writeHeader() error {
	f := e.f
	blockAlign := uint16(f.Channels * f.BitsPerSample / 8)
	avgBytes := uint32(uint64(f.BitsPerSample) * uint64(f.SampleRate) * uint64(f.Channels) / 8)

	var fmtBody [16]byte
	utils.PutU16(fmtBody[0:], uint16(f.Tag))
	utils.PutU16(fmtBody[2:], uint16(f.Channels))
	utils.PutU32(fmtBody[4:], uint32(f.SampleRate))
	utils.PutU32(fmtBody[8:], avgBytes)
	utils.PutU16(fmtBody[12:], blockAlign)
	utils.PutU16(fmtBody[14:], uint16(f.BitsPerSample))

	var hdr []byte
	if f.Container == ContainerRIFF {
		hdr = make([]byte, 0, riffDataPos+riffChunkHeaderSize)
		hdr = append(hdr, riff.RiffID[:]...)
		hdr = utils.AppendU32(hdr, riffSizeRIFF(e.target))
		hdr = append(hdr, riff.WavFormatID[:]...)
		hdr = append(hdr, riff.FmtID[:]...)
		hdr = utils.AppendU32(hdr, uint32(len(fmtBody)))
		hdr = append(hdr, fmtBody[:]...)
		e.dataPos = uint64(len(hdr))
		hdr = append(hdr, riff.DataFormatID[:]...)
		hdr = utils.AppendU32(hdr, dataSizeRIFF(e.target))
	} else {
		hdr = make([]byte, 0, w64DataPos+w64ChunkHeaderSize)
		hdr = append(hdr, GUIDW64RIFF[:]...)
		hdr = utils.AppendU64(hdr, riffSizeW64(e.target))
		hdr = append(hdr, GUIDW64WAVE[:]...)
		hdr = append(hdr, GUIDW64Fmt[:]...)
		hdr = utils.AppendU64(hdr, w64ChunkHeaderSize+uint64(len(fmtBody)))
		hdr = append(hdr, fmtBody[:]...)
		e.dataPos = uint64(len(hdr))
		hdr = append(hdr, GUIDW64Data[:]...)
		hdr = utils.AppendU64(hdr, w64ChunkHeaderSize+e.target)
	}

	if _, err := stream.WriteFull(e.h, hdr); err != nil {
		return fmt.Errorf("wav: write header: %w", err)
	}

	return nil
}

func riffSizeRIFF(data uint64) uint32 {
	pad := utils.PaddingRIFF(data)
	if data <= math.MaxUint32-riffDataPos-pad {
		return uint32(riffDataPos + data + pad)
	}

	return math.MaxUint32
}

func dataSizeRIFF(data uint64) uint32 {
	return uint32(min(data, math.MaxUint32))
}

func riffSizeW64(data uint64) uint64 {
	return w64DataPos + w64ChunkHeaderSize + data + utils.PaddingW64(data)
}

// TargetFileSize returns the size of the file an Encoder produces for f
// after writing frames frames.
func TargetFileSize(f Format, frames uint64) uint64 {
	data := frames * uint64(max(f.Channels, 0)) * uint64(max(f.BitsPerSample, 0)) / 8
	if f.Container == ContainerW64 {
		return riffSizeW64(data)
	}

	return riffChunkHeaderSize + uint64(riffSizeRIFF(data))
}

func (e *Encoder) Format() Format { return e.f }
func (e *Encoder) Mode() Mode     { return e.mode }

// DataSize is the number of data bytes written so far.
func (e *Encoder) DataSize() uint64 { return e.dataSize }

// WriteRaw appends p to the data chunk as is.
func (e *Encoder) WriteRaw(p []byte) (int, error) {
	if e.closed {
		return 0, ErrClosed
	}

	n, err := stream.WriteFull(e.h, p)
	e.dataSize += uint64(n)
	if err != nil {
		return n, fmt.Errorf("wav: write data: %w", err)
	}

	return n, nil
}

// WriteFrames appends whole frames of already encoded bytes and returns the
// number of frames written.
func (e *Encoder) WriteFrames(p []byte) (int, error) {
	bpf := e.f.Channels * e.f.BitsPerSample / 8
	if bpf == 0 {
		return 0, fmt.Errorf("%w: %d-bit frames", ErrUnsupportedEncoding, e.f.BitsPerSample)
	}

	n, err := e.WriteRaw(p[:len(p)/bpf*bpf])

	return n / bpf, err
}

// WriteFramesS16 encodes interleaved int16 samples into the stream's format.
func (e *Encoder) WriteFramesS16(src []int16) (int, error) {
	return writeFrames(e, src, func(dst []byte, s []int16) (int, error) {
		switch e.f.Tag {
		case TagPCM:
			return pcm.S16ToPCM(dst, s, e.bps)
		case TagIEEEFloat:
			return pcm.S16ToIEEE(dst, s, e.bps)
		case TagALaw:
			return pcm.S16ToAlaw(dst, s), nil
		default:
			return pcm.S16ToMulaw(dst, s), nil
		}
	})
}

func (e *Encoder) WriteFramesS32(src []int32) (int, error) {
	return writeFrames(e, src, func(dst []byte, s []int32) (int, error) {
		switch e.f.Tag {
		case TagPCM:
			return pcm.S32ToPCM(dst, s, e.bps)
		case TagIEEEFloat:
			return pcm.S32ToIEEE(dst, s, e.bps)
		}

		tmp := e.s16[:len(s)]
		pcm.S32ToS16(tmp, s)
		if e.f.Tag == TagALaw {
			return pcm.S16ToAlaw(dst, tmp), nil
		}
		return pcm.S16ToMulaw(dst, tmp), nil
	})
}

func (e *Encoder) WriteFramesF32(src []float32) (int, error) {
	return writeFrames(e, src, func(dst []byte, s []float32) (int, error) {
		switch e.f.Tag {
		case TagPCM:
			return pcm.F32ToPCM(dst, s, e.bps)
		case TagIEEEFloat:
			return pcm.F32ToIEEE(dst, s, e.bps)
		}

		tmp := e.s16[:len(s)]
		pcm.F32ToS16(tmp, s)
		if e.f.Tag == TagALaw {
			return pcm.S16ToAlaw(dst, tmp), nil
		}
		return pcm.S16ToMulaw(dst, tmp), nil
	})
}

// WriteSamples implements audio.Sink. It returns a sample count.
func (e *Encoder) WriteSamples(src []float32) (int, error) {
	n, err := e.WriteFramesF32(src)

	return n * e.f.Channels, err
}

// typedSupported reports whether the typed writers can produce e's format.
func (e *Encoder) typedSupported() error {
	ok := false
	switch e.f.Tag {
	case TagPCM:
		ok = e.f.BitsPerSample%8 == 0 && e.bps >= 1 && e.bps <= 4
	case TagIEEEFloat:
		ok = e.bps == 4 || e.bps == 8
	case TagALaw, TagMuLaw:
		ok = e.bps == 1
	}

	if !ok {
		return fmt.Errorf("%w: cannot encode samples as %d-bit %s", ErrUnsupportedEncoding, e.f.BitsPerSample, e.f.Tag)
	}

	return nil
}

func writeFrames[T sample](e *Encoder, src []T, enc func(dst []byte, s []T) (int, error)) (int, error) {
	if e.closed {
		return 0, ErrClosed
	}
	if err := e.typedSupported(); err != nil {
		return 0, err
	}

	ch := e.f.Channels
	total := len(src) / ch
	if total == 0 {
		return 0, checkDst(len(src))
	}

	perChunk := len(e.scratch) / (e.bps * ch)
	written := 0
	for written < total {
		n := min(total-written, perChunk)
		m, err := enc(e.scratch, src[written*ch:(written+n)*ch])
		if err != nil {
			return written, fmt.Errorf("%w: %w", ErrUnsupportedEncoding, err)
		}

		b, err := e.WriteRaw(e.scratch[:m*e.bps])
		written += b / (e.bps * ch)
		if err != nil {
			return written, err
		}
	}

	return written, nil
}

// Close pads the data chunk and finalizes the header. In sequential mode it
// fails with ErrSizeMismatch when the data written differs from the size
// declared up front. The stream is closed in every case.
func (e *Encoder) Close() error {
	if e.closed {
		return ErrClosed
	}
	e.closed = true

	err := e.finish()

	return errors.Join(err, e.h.Close())
}

func (e *Encoder) finish() error {
	var pad uint64
	if e.f.Container == ContainerRIFF {
		pad = utils.PaddingRIFF(e.dataSize)
	} else {
		pad = utils.PaddingW64(e.dataSize)
	}

	if pad > 0 {
		var zeros [8]byte
		if _, err := stream.WriteFull(e.h, zeros[:pad]); err != nil {
			return fmt.Errorf("wav: write padding: %w", err)
		}
	}

	if e.mode == ModeSequential {
		if e.dataSize != e.target {
			return fmt.Errorf("%w: wrote %d bytes, declared %d", ErrSizeMismatch, e.dataSize, e.target)
		}
		return nil
	}

	if e.f.Container == ContainerRIFF {
		if err := e.patch(4, utils.AppendU32(nil, riffSizeRIFF(e.dataSize))); err != nil {
			return err
		}
		return e.patch(e.dataPos+4, utils.AppendU32(nil, dataSizeRIFF(e.dataSize)))
	}

	if err := e.patch(16, utils.AppendU64(nil, riffSizeW64(e.dataSize))); err != nil {
		return err
	}

	return e.patch(e.dataPos+16, utils.AppendU64(nil, w64ChunkHeaderSize+e.dataSize))
}

func (e *Encoder) patch(pos uint64, b []byte) error {
	if err := e.h.SeekTo(int64(pos), stream.Start); err != nil {
		return fmt.Errorf("wav: patch header at %d: %w", pos, err)
	}
	if _, err := stream.WriteFull(e.h, b); err != nil {
		return fmt.Errorf("wav: patch header at %d: %w", pos, err)
	}

	return nil
}
