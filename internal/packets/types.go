// Package packets defines the wire-level packet types for the two
// bundled packet-set versions and their decode/encode contract:
// decode_payload(reader) -> P and encode_payload(P, writer) -> size.
// The header is always consumed by the frame reader before a decoder
// sees the payload.
package packets

import (
	"strings"

	"github.com/ernie/valkyrie-client/internal/wire"
)

// stripGatSuffix strips the legacy ".gat" map-file extension, matching
// every wire packet that names a map
func stripGatSuffix(name string) string {
	return strings.TrimSuffix(name, ".gat")
}

// Header is the 2-byte little-endian packet tag. It alone does not
// disambiguate direction or packet-set version; the registry the header
// is looked up in already encodes both.
type Header uint16

// Connection names which of the three simultaneous sessions a header
// belongs to. Headers are not unique across connections or versions.
type Connection int

const (
	ConnLogin Connection = iota
	ConnCharacter
	ConnMap
)

func (c Connection) String() string {
	switch c {
	case ConnLogin:
		return "login"
	case ConnCharacter:
		return "character"
	case ConnMap:
		return "map"
	default:
		return "unknown"
	}
}

// SizeClass describes how a packet's payload length is determined.
type SizeClass struct {
	// Fixed is the payload size in bytes for a fixed-size packet, or 0
	// if the packet is variable-size (length is read from the wire).
	Fixed int
}

func (s SizeClass) IsVariable() bool { return s.Fixed == 0 }

// Descriptor is the compile-time metadata the codec and frame reader
// need for one packet type, independent of its Go struct shape.
type Descriptor struct {
	Header Header
	Name   string
	Size   SizeClass
	// IsPing marks keep-alive traffic so the packet inspector can filter
	// it; it carries no decoding behavior of its own.
	IsPing bool
	// LengthRemainingOffByOne tags the one historical packet whose
	// encoded length field is one less than its actual byte count.
	LengthRemainingOffByOne bool
}

// Version20120307 and Version20220406 are the two bundled packet-set
// versions. Packet-set version is per-connection, set once at handshake,
// and immutable thereafter.
var (
	Version20120307 = wire.PacketVersion{Major: 2012, Minor: 3}
	Version20220406 = wire.PacketVersion{Major: 2022, Minor: 4}
)

// Decoder decodes one packet's payload from r. The returned value is an
// opaque payload; callers downcast to the concrete packet type they
// registered the handler for.
type Decoder func(r *wire.Reader) (any, error)

// Encoder writes v's payload (not the header) to w and returns the byte
// count written, matching decode_payload's contract in reverse.
type Encoder func(v any, w *wire.Writer) (int, error)
