// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"fmt"

	"github.com/google/uuid"
)

// GUID is a 16-byte identifier in its on-disk byte order: the first three
// fields are little-endian, the last eight bytes are stored as is.
//
// RIFF chunk identifiers are also carried as a GUID, with the four-character
// code in the first four bytes and zeros after it.
type GUID [16]byte

var (
	GUIDW64RIFF = MustParseGUID("66666972-912e-11cf-a5d6-28db04c10000")
	GUIDW64WAVE = MustParseGUID("65766177-acf3-11d3-8cd1-00c04f8edb8a")
	GUIDW64Fmt  = MustParseGUID("20746d66-acf3-11d3-8cd1-00c04f8edb8a")
	GUIDW64Fact = MustParseGUID("74636166-acf3-11d3-8cd1-00c04f8edb8a")
	GUIDW64Data = MustParseGUID("61746164-acf3-11d3-8cd1-00c04f8edb8a")
	GUIDW64Smpl = MustParseGUID("6c706d73-acf3-11d3-8cd1-00c04f8edb8a")

	// Extensible sub-formats.
	SubFormatPCM       = MustParseGUID("00000001-0000-0010-8000-00aa00389b71")
	SubFormatIEEEFloat = MustParseGUID("00000003-0000-0010-8000-00aa00389b71")
)

// ParseGUID parses the canonical textual form.
func ParseGUID(s string) (GUID, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return GUID{}, fmt.Errorf("%w: %w", ErrInvalidArgs, err)
	}

	return guidFromUUID(u), nil
}

func MustParseGUID(s string) GUID {
	return guidFromUUID(uuid.MustParse(s))
}

func guidFromUUID(u uuid.UUID) GUID {
	var g GUID
	g[0], g[1], g[2], g[3] = u[3], u[2], u[1], u[0]
	g[4], g[5] = u[5], u[4]
	g[6], g[7] = u[7], u[6]
	copy(g[8:], u[8:])

	return g
}

// UUID returns g with its fields in big-endian (RFC 4122) order.
func (g GUID) UUID() uuid.UUID {
	var u uuid.UUID
	u[0], u[1], u[2], u[3] = g[3], g[2], g[1], g[0]
	u[4], u[5] = g[5], g[4]
	u[6], u[7] = g[7], g[6]
	copy(u[8:], g[8:])

	return u
}

func (g GUID) String() string { return g.UUID().String() }

// FourCC returns the first four bytes as a string. For the Wave64 chunk
// GUIDs this is the matching RIFF code, e.g. "fmt ".
func (g GUID) FourCC() string { return string(g[:4]) }

func fourCC(id [4]byte) GUID {
	var g GUID
	copy(g[:], id[:])

	return g
}
