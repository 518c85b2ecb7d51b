// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"fmt"

	goaudio "github.com/go-audio/audio"
)

// Container identifies the outer file layout.
type Container int

const (
	// ContainerRIFF is the classic RIFF/WAVE layout with 32-bit chunk sizes.
	ContainerRIFF Container = iota
	// ContainerW64 is Sony Wave64: GUID chunk IDs and 64-bit sizes.
	ContainerW64
)

func (c Container) String() string {
	switch c {
	case ContainerRIFF:
		return "RIFF"
	case ContainerW64:
		return "W64"
	default:
		return fmt.Sprintf("Container(%d)", int(c))
	}
}

// FormatTag is the wFormatTag field of the fmt chunk.
type FormatTag uint16

const (
	TagPCM        FormatTag = 0x0001
	TagADPCM      FormatTag = 0x0002
	TagIEEEFloat  FormatTag = 0x0003
	TagALaw       FormatTag = 0x0006
	TagMuLaw      FormatTag = 0x0007
	TagDVIADPCM   FormatTag = 0x0011
	TagExtensible FormatTag = 0xFFFE
)

func (t FormatTag) String() string {
	switch t {
	case TagPCM:
		return "PCM"
	case TagADPCM:
		return "MS-ADPCM"
	case TagIEEEFloat:
		return "IEEE float"
	case TagALaw:
		return "A-law"
	case TagMuLaw:
		return "mu-law"
	case TagDVIADPCM:
		return "IMA-ADPCM"
	case TagExtensible:
		return "extensible"
	default:
		return fmt.Sprintf("FormatTag(%#04x)", uint16(t))
	}
}

// Compressed reports whether t is one of the block-based ADPCM encodings.
func (t FormatTag) Compressed() bool {
	return t == TagADPCM || t == TagDVIADPCM
}

// FmtChunk holds every field of the fmt chunk. The last four are only set
// when the chunk carries an extension.
type FmtChunk struct {
	FormatTag      FormatTag
	Channels       uint16
	SampleRate     uint32
	AvgBytesPerSec uint32
	BlockAlign     uint16
	BitsPerSample  uint16

	ExtendedSize       uint16
	ValidBitsPerSample uint16
	ChannelMask        uint32
	SubFormat          GUID
}

// Translated returns the effective tag: for extensible formats, the first two
// bytes of the sub-format GUID.
func (f *FmtChunk) Translated() FormatTag {
	if f.FormatTag == TagExtensible {
		return FormatTag(uint16(f.SubFormat[0]) | uint16(f.SubFormat[1])<<8)
	}

	return f.FormatTag
}

// BytesPerFrame is channels*bits/8 for byte-aligned depths and the block
// align otherwise.
func (f *FmtChunk) BytesPerFrame() uint64 {
	if f.BitsPerSample%8 == 0 {
		return uint64(f.BitsPerSample) * uint64(f.Channels) / 8
	}

	return uint64(f.BlockAlign)
}

// Format describes a stream independently of its container header.
type Format struct {
	Container     Container
	Tag           FormatTag
	Channels      int
	SampleRate    int
	BitsPerSample int
}

// PCM16 is shorthand for a 16-bit integer RIFF format.
func PCM16(sampleRate, channels int) Format {
	return Format{
		Container:     ContainerRIFF,
		Tag:           TagPCM,
		Channels:      channels,
		SampleRate:    sampleRate,
		BitsPerSample: 16,
	}
}

func (f Format) bytesPerSample() int { return f.BitsPerSample / 8 }

// AudioFormat returns the go-audio description of f.
func (f Format) AudioFormat() *goaudio.Format {
	return &goaudio.Format{NumChannels: f.Channels, SampleRate: f.SampleRate}
}

func (f Format) String() string {
	return fmt.Sprintf("%s %s %d Hz %d ch %d-bit", f.Container, f.Tag, f.SampleRate, f.Channels, f.BitsPerSample)
}
