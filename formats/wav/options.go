// SPDX-License-Identifier: EPL-2.0

package wav

const defaultBufferSize = 4096

// Option configures a Decoder.
type Option func(*options)

type options struct {
	visitor    ChunkVisitor
	sequential bool
	maxLoops   int
	bufferSize int
}

func defaultOptions() options {
	return options{
		maxLoops:   DefaultMaxLoops,
		bufferSize: defaultBufferSize,
	}
}

// WithChunkVisitor registers fn to be called for each chunk after fmt.
func WithChunkVisitor(fn ChunkVisitor) Option {
	return func(o *options) { o.visitor = fn }
}

// Sequential opens the stream without ever seeking backwards. Parsing stops
// at the data chunk, so chunks after it are never seen, and the chunk visitor
// is not called. Non-seekable readers are always opened this way.
func Sequential() Option {
	return func(o *options) { o.sequential = true }
}

// WithMaxLoops sets how many smpl loop records are kept.
func WithMaxLoops(n int) Option {
	return func(o *options) {
		if n >= 0 {
			o.maxLoops = n
		}
	}
}

// WithBufferSize sets the size in bytes of the scratch buffer used for
// sample conversion.
func WithBufferSize(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.bufferSize = n
		}
	}
}
