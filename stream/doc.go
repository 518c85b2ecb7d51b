// SPDX-License-Identifier: EPL-2.0

// Package stream is the byte I/O layer under the WAV decoder and encoder.
//
// A Handle can read, write, seek forward or to an absolute position, and
// close. Three backends ship with the package:
//   - File: a buffered *os.File, opened for reading or for writing
//   - Reader: a fixed, read-only in-memory buffer
//   - Buffer: a growable, write-only in-memory buffer
//
// Caller-owned values are adapted with FromReader, FromReadSeeker, FromWriter
// and FromWriteSeeker. Adapters never close the value they wrap.
//
// Offsets passed to SeekTo are never negative. Backwards movement is expressed
// as an absolute seek from Start.
package stream
