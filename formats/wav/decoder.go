// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"errors"
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"

	"github.com/ik5/wavkit/audio"
	"github.com/ik5/wavkit/formats/wav/adpcm"
	"github.com/ik5/wavkit/pcm"
	"github.com/ik5/wavkit/stream"
)

// Decoder reads frames from a WAV or Wave64 stream. It owns its stream and
// is not safe for concurrent use.
type Decoder struct {
	h    stream.Handle
	opts options

	container Container
	fmt       FmtChunk
	tag       FormatTag

	dataPos     uint64
	dataSize    uint64
	remaining   uint64
	totalFrames uint64
	factFrames  uint64
	current     uint64 // next frame for compressed streams

	sampler *Sampler
	loops   []Loop

	codec   adpcm.BlockDecoder
	scratch []byte
	s16     []int16
	s32     []int32
	closed  bool
}

var _ audio.Source = (*Decoder)(nil)

// NewDecoder opens r. Readers that also implement io.Seeker are opened in
// random-access mode; anything else is read sequentially.
func NewDecoder(r io.Reader, opts ...Option) (*Decoder, error) {
	if r == nil {
		return nil, fmt.Errorf("%w: nil reader", ErrInvalidArgs)
	}

	var h stream.Handle
	switch v := r.(type) {
	case stream.Handle:
		h = v
	case io.ReadSeeker:
		h = stream.FromReadSeeker(v)
	default:
		h = stream.FromReader(r)
	}

	return Open(h, opts...)
}

// OpenFile opens the file at path. The file is closed by Close.
func OpenFile(path string, opts ...Option) (*Decoder, error) {
	f, err := stream.Open(path)
	if err != nil {
		return nil, fmt.Errorf("wav: %w", err)
	}

	return Open(f, opts...)
}

// OpenMemory decodes an in-memory file. data must not change while the
// Decoder is in use.
func OpenMemory(data []byte, opts ...Option) (*Decoder, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty buffer", ErrInvalidArgs)
	}

	return Open(stream.NewReader(data), opts...)
}

// Open parses the headers in h and positions it at the first sample. On
// failure h is closed.
func Open(h stream.Handle, opts ...Option) (*Decoder, error) {
	if h == nil {
		return nil, fmt.Errorf("%w: nil handle", ErrInvalidArgs)
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if !stream.Seekable(h) {
		o.sequential = true
	}

	d := &Decoder{h: h, opts: o}
	if err := d.parse(); err != nil {
		_ = h.Close()
		return nil, err
	}
	if err := d.init(); err != nil {
		_ = h.Close()
		return nil, err
	}

	return d, nil
}

func (d *Decoder) init() error {
	ch := int(d.fmt.Channels)
	size := max(d.opts.bufferSize, int(min(d.fmt.BytesPerFrame(), 1<<20)))
	d.scratch = make([]byte, size)

	var err error
	switch d.tag {
	case TagADPCM:
		d.codec, err = adpcm.NewMS(dataReader{d}, ch, int(d.fmt.BlockAlign))
	case TagDVIADPCM:
		d.codec, err = adpcm.NewIMA(dataReader{d}, ch, int(d.fmt.BlockAlign))
	default:
		return nil
	}
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidFile, err)
	}

	d.s16 = make([]int16, max(size/2/ch, 1)*ch)

	return nil
}

// dataReader bounds reads to the unread part of the data chunk.
type dataReader struct{ d *Decoder }

func (r dataReader) Read(p []byte) (int, error) {
	if r.d.remaining == 0 {
		return 0, io.EOF
	}
	if uint64(len(p)) > r.d.remaining {
		p = p[:r.d.remaining]
	}

	n, err := r.d.h.Read(p)
	r.d.remaining -= uint64(n)

	return n, err
}

func (d *Decoder) Container() Container { return d.container }

// FmtChunk returns the fmt chunk as read from the file.
func (d *Decoder) FmtChunk() FmtChunk { return d.fmt }

// Tag returns the effective encoding, with extensible formats resolved to
// their sub-format.
func (d *Decoder) Tag() FormatTag { return d.tag }

func (d *Decoder) SampleRate() int    { return int(d.fmt.SampleRate) }
func (d *Decoder) Channels() int      { return int(d.fmt.Channels) }
func (d *Decoder) BitsPerSample() int { return int(d.fmt.BitsPerSample) }
func (d *Decoder) BitDepth() int      { return int(d.fmt.BitsPerSample) }
func (d *Decoder) TotalFrames() uint64 {
	return d.totalFrames
}

func (d *Decoder) BytesPerFrame() uint64 { return d.fmt.BytesPerFrame() }

// DataSize is the payload size of the data chunk.
func (d *Decoder) DataSize() uint64 { return d.dataSize }

// FactFrames is the frame count taken from the fact chunk, or zero.
func (d *Decoder) FactFrames() uint64 { return d.factFrames }

// Sampler returns the smpl chunk header, or nil if the file has none.
func (d *Decoder) Sampler() *Sampler { return d.sampler }

// Loops returns the retained smpl loops.
func (d *Decoder) Loops() []Loop { return d.loops }

// Format returns the stream description in the form the Encoder accepts.
func (d *Decoder) Format() Format {
	return Format{
		Container:     d.container,
		Tag:           d.tag,
		Channels:      int(d.fmt.Channels),
		SampleRate:    int(d.fmt.SampleRate),
		BitsPerSample: int(d.fmt.BitsPerSample),
	}
}

// AudioFormat returns the go-audio description of the stream.
func (d *Decoder) AudioFormat() *goaudio.Format { return d.Format().AudioFormat() }

// BufSize is the number of samples a ReadSamples buffer should hold.
func (d *Decoder) BufSize() int {
	return max(d.opts.bufferSize/4, int(d.fmt.Channels))
}

// Position returns the index of the next frame to be read.
func (d *Decoder) Position() uint64 {
	if d.tag.Compressed() {
		return d.current
	}

	return (d.dataSize - d.remaining) / d.fmt.BytesPerFrame()
}

// ReadRaw reads undecoded bytes from the data chunk. For compressed
// encodings this bypasses the block decoder, so it should not be mixed with
// frame reads.
func (d *Decoder) ReadRaw(p []byte) (int, error) {
	if d.closed {
		return 0, ErrClosed
	}
	if len(p) == 0 {
		return 0, nil
	}

	n, err := io.ReadFull(dataReader{d}, p)
	switch {
	case err == nil:
		return n, nil
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		if n > 0 {
			return n, nil
		}
		return 0, io.EOF
	}

	return n, fmt.Errorf("wav: read data: %w", err)
}

// ReadFrames reads whole undecoded frames into p and returns the number of
// frames read. It is only available for uncompressed encodings.
func (d *Decoder) ReadFrames(p []byte) (int, error) {
	if d.tag.Compressed() {
		return 0, fmt.Errorf("%w: raw frames of %s", ErrUnsupportedEncoding, d.tag)
	}

	bpf := int(d.fmt.BytesPerFrame())
	frames := len(p) / bpf
	if frames == 0 {
		return 0, checkDst(len(p))
	}

	n, err := d.ReadRaw(p[:frames*bpf])

	return n / bpf, err
}

// ReadFramesS16 decodes up to len(dst)/Channels() frames into dst as
// interleaved int16 samples and returns the number of frames read.
func (d *Decoder) ReadFramesS16(dst []int16) (int, error) {
	if d.tag.Compressed() {
		return d.readCompressed(len(dst), func(off int, s []int16) { copy(dst[off:], s) })
	}

	return readFrames(d, dst, &s16Conv)
}

func (d *Decoder) ReadFramesS32(dst []int32) (int, error) {
	if d.tag.Compressed() {
		return d.readCompressed(len(dst), func(off int, s []int16) { pcm.S16ToS32(dst[off:], s) })
	}

	return readFrames(d, dst, &s32Conv)
}

func (d *Decoder) ReadFramesF32(dst []float32) (int, error) {
	if d.tag.Compressed() {
		return d.readCompressed(len(dst), func(off int, s []int16) { pcm.S16ToF32(dst[off:], s) })
	}

	return readFrames(d, dst, &f32Conv)
}

// ReadSamples implements audio.Source. It returns a sample count, not a
// frame count.
func (d *Decoder) ReadSamples(dst []float32) (int, error) {
	n, err := d.ReadFramesF32(dst)

	return n * int(d.fmt.Channels), err
}

// PCMBuffer fills buf.Data with signed integers at the depth reported in
// buf.SourceBitDepth and returns the number of samples written.
func (d *Decoder) PCMBuffer(buf *goaudio.IntBuffer) (int, error) {
	if buf == nil || len(buf.Data) == 0 {
		return 0, fmt.Errorf("%w: empty buffer", ErrInvalidArgs)
	}

	if cap(d.s32) < len(buf.Data) {
		d.s32 = make([]int32, len(buf.Data))
	}
	s := d.s32[:len(buf.Data)]

	n, err := d.ReadFramesS32(s)
	depth := d.pcmDepth()
	shift := 32 - depth
	samples := n * int(d.fmt.Channels)
	for i := range samples {
		buf.Data[i] = int(s[i] >> shift)
	}

	buf.Format = d.AudioFormat()
	buf.SourceBitDepth = depth

	return samples, err
}

// pcmDepth is the integer depth PCMBuffer reports: the file's depth for
// integer PCM up to 32 bits, 16 for ADPCM and companded audio, 32 otherwise.
func (d *Decoder) pcmDepth() int {
	switch d.tag {
	case TagPCM:
		if b := int(d.fmt.BitsPerSample); b > 0 && b <= 32 {
			return b
		}
	case TagADPCM, TagDVIADPCM, TagALaw, TagMuLaw:
		return 16
	}

	return 32
}

// SeekToFrame moves to frame i, clamped to the last frame. Compressed
// streams are decoded up to the target, from the start of the data when
// moving backwards.
func (d *Decoder) SeekToFrame(i uint64) error {
	if d.closed {
		return ErrClosed
	}
	if d.totalFrames == 0 {
		return nil
	}
	i = min(i, d.totalFrames-1)

	if d.tag.Compressed() {
		return d.seekCompressed(i)
	}

	bpf := d.fmt.BytesPerFrame()
	cur := d.dataSize - d.remaining
	target := i * bpf

	if cur <= target {
		if err := stream.Skip(d.h, target-cur); err != nil {
			return fmt.Errorf("wav: seek to frame %d: %w", i, err)
		}
		d.remaining -= target - cur
		return nil
	}

	if err := d.rewind(); err != nil {
		return err
	}
	if err := stream.Skip(d.h, target); err != nil {
		return fmt.Errorf("wav: seek to frame %d: %w", i, err)
	}
	d.remaining -= target

	return nil
}

func (d *Decoder) seekCompressed(i uint64) error {
	if i < d.current {
		if err := d.rewind(); err != nil {
			return err
		}
	}

	ch := uint64(d.fmt.Channels)
	for d.current < i {
		n := min(i-d.current, uint64(len(d.s16))/ch)
		got, err := d.codec.Read(d.s16[:n*ch])
		d.current += uint64(got)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("%w: %w", ErrInvalidFile, err)
		}
		if got == 0 {
			return nil
		}
	}

	return nil
}

// rewind returns to the first sample.
func (d *Decoder) rewind() error {
	if err := d.h.SeekTo(int64(d.dataPos), stream.Start); err != nil {
		return fmt.Errorf("wav: rewind: %w", err)
	}

	d.remaining = d.dataSize
	d.current = 0
	if d.codec != nil {
		d.codec.Reset()
	}

	return nil
}

// Close releases the underlying stream.
func (d *Decoder) Close() error {
	if d.closed {
		return ErrClosed
	}
	d.closed = true

	return d.h.Close()
}

// readCompressed decodes up to dstLen/channels frames through the block
// decoder, handing each run of int16 samples to put with its offset in dst.
func (d *Decoder) readCompressed(dstLen int, put func(off int, s []int16)) (int, error) {
	if d.closed {
		return 0, ErrClosed
	}

	ch := int(d.fmt.Channels)
	want := uint64(dstLen / ch)
	if want == 0 {
		return 0, checkDst(dstLen)
	}
	want = min(want, d.totalFrames-min(d.current, d.totalFrames))

	frames := 0
	for uint64(frames) < want {
		n := min(int(want)-frames, len(d.s16)/ch)
		got, err := d.codec.Read(d.s16[:n*ch])
		put(frames*ch, d.s16[:got*ch])
		frames += got
		d.current += uint64(got)

		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return frames, fmt.Errorf("%w: %w", ErrInvalidFile, err)
		}
		if got == 0 {
			break
		}
	}

	if frames == 0 {
		return 0, io.EOF
	}

	return frames, nil
}

// checkDst reports a non-empty destination too short for a single frame.
func checkDst(n int) error {
	if n == 0 {
		return nil
	}

	return fmt.Errorf("%w: %w", ErrInvalidArgs, audio.ErrInvalidDstSize)
}

type sample interface{ ~int16 | ~int32 | ~float32 }

// converters routes raw data bytes to one canonical sample type.
type converters[T sample] struct {
	pcm   func([]T, []byte, int) int
	ieee  func([]T, []byte, int) int
	alaw  func([]T, []byte) int
	mulaw func([]T, []byte) int
}

var (
	s16Conv = converters[int16]{pcm.PCMToS16, pcm.IEEEToS16, pcm.AlawToS16, pcm.MulawToS16}
	s32Conv = converters[int32]{pcm.PCMToS32, pcm.IEEEToS32, pcm.AlawToS32, pcm.MulawToS32}
	f32Conv = converters[float32]{pcm.PCMToF32, pcm.IEEEToF32, pcm.AlawToF32, pcm.MulawToF32}
)

func readFrames[T sample](d *Decoder, dst []T, conv *converters[T]) (int, error) {
	if d.closed {
		return 0, ErrClosed
	}

	ch := int(d.fmt.Channels)
	want := len(dst) / ch
	if want == 0 {
		return 0, checkDst(len(dst))
	}

	bpf := int(d.fmt.BytesPerFrame())
	bps := bpf / ch
	if bps == 0 {
		return 0, fmt.Errorf("%w: %d-bit samples", ErrUnsupportedEncoding, d.fmt.BitsPerSample)
	}

	var convert func(dst []T, src []byte) int
	switch d.tag {
	case TagPCM:
		convert = func(dst []T, src []byte) int { return conv.pcm(dst, src, bps) }
	case TagIEEEFloat:
		convert = func(dst []T, src []byte) int { return conv.ieee(dst, src, bps) }
	case TagALaw:
		convert = conv.alaw
	case TagMuLaw:
		convert = conv.mulaw
	default:
		return 0, fmt.Errorf("%w: %s", ErrUnsupportedEncoding, d.tag)
	}

	perChunk := len(d.scratch) / bpf
	if perChunk == 0 {
		return 0, fmt.Errorf("%w: %d-byte frames", ErrUnsupportedEncoding, bpf)
	}

	frames := 0
	for frames < want {
		n := min(want-frames, perChunk)
		got, err := d.ReadRaw(d.scratch[:n*bpf])
		got /= bpf
		convert(dst[frames*ch:(frames+got)*ch], d.scratch[:got*bpf])
		frames += got

		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return frames, err
		}
		if got < n {
			break
		}
	}

	if frames == 0 {
		return 0, io.EOF
	}

	return frames, nil
}
