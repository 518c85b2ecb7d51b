// SPDX-License-Identifier: EPL-2.0

// Package wav reads and writes RIFF/WAVE and Sony Wave64 (W64) files.
//
// # Decoding
//
// Open parses the container headers, records the fmt chunk, any fact and
// smpl chunks, and leaves the stream at the first byte of sample data:
//
//	dec, err := wav.OpenFile("in.wav")
//	if err != nil {
//	    return err
//	}
//	defer dec.Close()
//
//	buf := make([]int16, 4096*dec.Channels())
//	n, err := dec.ReadFramesS16(buf)
//
// Supported encodings are integer PCM, IEEE float (32 and 64
// bit), A-law, mu-law, Microsoft ADPCM and IMA ADPCM, plus
// WAVE_FORMAT_EXTENSIBLE wrappers around them. Every encoding can be read as
// int16, int32 or float32 frames. ReadRaw returns the undecoded bytes.
//
// Reads return the number of whole frames decoded. A read that reaches the
// end of the data returns what it has with a nil error; the next read
// returns io.EOF.
//
// Unknown chunks are skipped. A ChunkVisitor passed through WithChunkVisitor
// sees every chunk header before the decoder acts on it.
//
// # Encoding
//
// An Encoder writes integer PCM, IEEE float, A-law or mu-law data. In
// immediate mode the header sizes are patched on Close, which needs a
// seekable stream. In sequential mode the caller declares the frame count up
// front and Close fails with ErrSizeMismatch when the data written differs.
//
//	enc, err := wav.CreateFile("out.wav", wav.PCM16(48000, 2))
//	if err != nil {
//	    return err
//	}
//	if _, err := enc.WriteFramesS16(samples); err != nil {
//	    _ = enc.Close()
//	    return err
//	}
//	return enc.Close()
//
// # Errors
//
// Every error matches one of ErrInvalidArgs, ErrInvalidFile or
// ErrUnsupportedEncoding with errors.Is, unless it comes from the
// underlying stream.
package wav
