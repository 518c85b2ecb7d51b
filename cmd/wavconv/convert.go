// SPDX-License-Identifier: EPL-2.0

package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/ik5/wavkit/audio"
	"github.com/ik5/wavkit/formats/aiff"
	"github.com/ik5/wavkit/formats/flac"
	"github.com/ik5/wavkit/formats/mp3"
	"github.com/ik5/wavkit/formats/vorbis"
	"github.com/ik5/wavkit/formats/wav"
)

const copyBufferSamples = 8192

type config struct {
	In, Out    string
	Container  string
	Encoding   string
	Bits       int
	Rate       int
	Mono       bool
	Sequential bool
	Verbose    bool
}

func (c config) wavOptions() []wav.Option {
	if !c.Verbose {
		return nil
	}

	return []wav.Option{wav.WithChunkVisitor(func(hdr wav.ChunkHeader, _ io.ReadSeeker) error {
		log.Printf("chunk %q: %d bytes (+%d padding)", hdr.FourCC(), hdr.Size, hdr.Padding)
		return nil
	})}
}

func newRegistry(c config) *audio.Registry {
	reg := audio.NewRegistry()
	w := wav.Codec{Options: c.wavOptions()}
	reg.Register("wav", w)
	reg.Register("w64", w)
	reg.Register("mp3", mp3.Decoder{})
	reg.Register("ogg", vorbis.Decoder{})
	reg.Register("aif", aiff.Decoder{})
	reg.Register("aiff", aiff.Decoder{})
	reg.Register("flac", flac.Decoder{})

	return reg
}

// outputFormat builds the target format from the flags and the source.
func outputFormat(c config, src audio.Source) (wav.Format, error) {
	f := wav.Format{
		Channels:      src.Channels(),
		SampleRate:    src.SampleRate(),
		BitsPerSample: c.Bits,
	}

	switch strings.ToLower(c.Container) {
	case "riff", "wav":
		f.Container = wav.ContainerRIFF
	case "w64":
		f.Container = wav.ContainerW64
	default:
		return f, fmt.Errorf("%w: container %q", wav.ErrInvalidArgs, c.Container)
	}

	switch strings.ToLower(c.Encoding) {
	case "pcm":
		f.Tag = wav.TagPCM
		if f.BitsPerSample == 0 {
			f.BitsPerSample = 16
			if bd, ok := src.(audio.BitDepther); ok {
				switch d := bd.BitDepth(); d {
				case 8, 16, 24, 32:
					f.BitsPerSample = d
				}
			}
		}
	case "float":
		f.Tag = wav.TagIEEEFloat
		if f.BitsPerSample == 0 {
			f.BitsPerSample = 32
		}
	case "alaw":
		f.Tag = wav.TagALaw
		if f.BitsPerSample == 0 {
			f.BitsPerSample = 8
		}
	case "mulaw":
		f.Tag = wav.TagMuLaw
		if f.BitsPerSample == 0 {
			f.BitsPerSample = 8
		}
	default:
		return f, fmt.Errorf("%w: format %q", wav.ErrInvalidArgs, c.Encoding)
	}

	return f, nil
}

func openSource(c config) (audio.Source, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(c.In), "."))
	dec, ok := newRegistry(c).Get(ext)
	if !ok {
		return nil, fmt.Errorf("%w: %q", audio.ErrUnknownFormat, ext)
	}

	fh, err := os.Open(c.In)
	if err != nil {
		return nil, err
	}

	src, err := dec.Decode(fh)
	if err != nil {
		_ = fh.Close()
		return nil, fmt.Errorf("decode %s: %w", c.In, err)
	}

	return &fileSource{Source: src, f: fh}, nil
}

// fileSource closes the input file along with the decoder, which never owns
// the reader it was handed.
type fileSource struct {
	audio.Source
	f *os.File
}

// BitDepth forwards the wrapped source's depth, or 0 when it has none.
func (s *fileSource) BitDepth() int {
	if bd, ok := s.Source.(audio.BitDepther); ok {
		return bd.BitDepth()
	}

	return 0
}

func (s *fileSource) Close() error {
	return errors.Join(s.Source.Close(), s.f.Close())
}

// transcode copies the input into a new WAV or W64 file and returns the
// number of frames written.
func transcode(c config) (uint64, error) {
	src, err := openSource(c)
	if err != nil {
		return 0, err
	}

	if c.Rate > 0 && c.Rate != src.SampleRate() {
		src = audio.NewResampler(src, c.Rate)
	}
	if c.Mono && src.Channels() > 1 {
		src = audio.NewMonoMixer(src)
	}
	defer src.Close()

	f, err := outputFormat(c, src)
	if err != nil {
		return 0, err
	}

	if c.Sequential {
		return writeSequential(c.Out, f, src)
	}

	enc, err := wav.CreateFile(c.Out, f)
	if err != nil {
		return 0, err
	}

	n, err := audio.Copy(enc, src, make([]float32, copyBufferSamples))
	if cerr := enc.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return 0, fmt.Errorf("transcode %s: %w", c.In, err)
	}

	return uint64(n) / uint64(f.Channels), nil
}

// writeSequential buffers the whole input so the header can carry the final
// sizes.
func writeSequential(path string, f wav.Format, src audio.Source) (uint64, error) {
	var all sliceSink
	if _, err := audio.Copy(&all, src, make([]float32, copyBufferSamples)); err != nil {
		return 0, fmt.Errorf("read input: %w", err)
	}

	frames := uint64(len(all) / f.Channels)
	enc, err := wav.CreateFileSequential(path, f, frames)
	if err != nil {
		return 0, err
	}

	_, err = enc.WriteSamples(all)
	if cerr := enc.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return 0, fmt.Errorf("write %s: %w", path, err)
	}

	return frames, nil
}

type sliceSink []float32

func (s *sliceSink) WriteSamples(src []float32) (int, error) {
	*s = append(*s, src...)
	return len(src), nil
}

func printInfo(w io.Writer, c config) error {
	d, err := wav.OpenFile(c.In, c.wavOptions()...)
	if err != nil {
		return err
	}
	defer d.Close()

	fmt.Fprintf(w, "container: %s\n", d.Container())
	fmt.Fprintf(w, "encoding:  %s\n", d.Tag())
	fmt.Fprintf(w, "channels:  %d\n", d.Channels())
	fmt.Fprintf(w, "rate:      %d Hz\n", d.SampleRate())
	fmt.Fprintf(w, "bits:      %d\n", d.BitsPerSample())
	fmt.Fprintf(w, "frames:    %d\n", d.TotalFrames())

	for i, l := range d.Loops() {
		fmt.Fprintf(w, "loop %d:    %d-%d type %d\n", i, l.Start, l.End, l.Type)
	}

	return nil
}
