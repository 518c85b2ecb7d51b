// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"sync"
)

type Source interface {
	// SampleRate of the PCM stream in Hz.
	SampleRate() int
	// Channels count (e.g., 1=mono, 2=stereo).
	Channels() int
	// ReadSamples fills dst with interleaved float32 samples in [-1,1].
	// Returns number of float32 values written (not frames). When n == 0 with err == io.EOF, the stream is finished.
	ReadSamples(dst []float32) (n int, err error)

	BufSize() int

	// Close releases any resources.
	Close() error
}

// Sink consumes interleaved float32 samples. WriteSamples returns the number
// of samples accepted.
type Sink interface {
	WriteSamples(src []float32) (n int, err error)
}

// BitDepther is implemented by sources backed by integer PCM.
type BitDepther interface {
	BitDepth() int
}

// Decoder constructs a Source from an input reader.
type Decoder interface {
	Decode(r io.Reader) (Source, error)
}

// Registry for decoders by format key (e.g., "wav", "mp3", "ogg vorbis").
type Registry struct {
	codecs map[string]Decoder

	mtx *sync.Mutex
}

func NewRegistry() *Registry {
	return &Registry{
		codecs: make(map[string]Decoder),
		mtx:    &sync.Mutex{},
	}
}

func (r *Registry) Register(format string, d Decoder) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	r.codecs[format] = d
}

func (r *Registry) Get(format string) (Decoder, bool) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	d, ok := r.codecs[format]
	return d, ok
}

// Formats returns the registered format keys in sorted order.
func (r *Registry) Formats() []string {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	keys := make([]string, 0, len(r.codecs))
	for k := range r.codecs {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	return keys
}

// Copy pumps samples from src to dst through buf until src reports io.EOF
// and returns the number of samples written. buf is trimmed to whole frames.
func Copy(dst Sink, src Source, buf []float32) (int64, error) {
	ch := src.Channels()
	if ch <= 0 || len(buf) < ch {
		return 0, ErrInvalidDstSize
	}
	buf = buf[:len(buf)/ch*ch]

	var total int64
	for {
		n, err := src.ReadSamples(buf)
		if n > 0 {
			w, werr := dst.WriteSamples(buf[:n])
			total += int64(w)
			if werr != nil {
				return total, fmt.Errorf("audio: write: %w", werr)
			}
			if w < n {
				return total, io.ErrShortWrite
			}
		}

		if errors.Is(err, io.EOF) {
			return total, nil
		}
		if err != nil {
			return total, fmt.Errorf("audio: read: %w", err)
		}
		if n == 0 {
			return total, io.ErrNoProgress
		}
	}
}
