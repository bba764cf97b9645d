// Package wire implements the packet codec primitives: a little-endian
// reader/writer pair and the decode-error taxonomy the frame reader and
// handler registry use to decide whether to wait, skip, or drop.
package wire

import "fmt"

// ErrShortFrame means the reader ran out of bytes before the declared
// field could be read. The frame reader treats this as "wait for more".
type ErrShortFrame struct {
	Want int
	Have int
}

func (e *ErrShortFrame) Error() string {
	return fmt.Sprintf("short frame: want %d bytes, have %d", e.Want, e.Have)
}

// ErrUnknownPacket means a header has no handler in the active registry.
type ErrUnknownPacket struct {
	Header uint16
}

func (e *ErrUnknownPacket) Error() string {
	return fmt.Sprintf("unknown packet header 0x%04x", e.Header)
}

// ErrUnknownVariant means a numeric discriminant did not map to a known
// enum variant.
type ErrUnknownVariant struct {
	Enum  string
	Value uint32
}

func (e *ErrUnknownVariant) Error() string {
	return fmt.Sprintf("unknown variant for %s: %d", e.Enum, e.Value)
}

// ErrBadLength means a variable-size packet declared a length smaller
// than its header plus required fields. Session-fatal.
type ErrBadLength struct {
	Header   uint16
	Declared int
	Minimum  int
}

func (e *ErrBadLength) Error() string {
	return fmt.Sprintf("packet 0x%04x declares length %d, minimum is %d", e.Header, e.Declared, e.Minimum)
}

// ErrDuplicateHandler is raised at registry-construction time when the
// same header is registered twice. Fatal: the bundle is malformed.
type ErrDuplicateHandler struct {
	Header uint16
}

func (e *ErrDuplicateHandler) Error() string {
	return fmt.Sprintf("duplicate handler for header 0x%04x", e.Header)
}
