// Package registry implements the handler registry: a table
// from packet header to a typed handler producing zero, one, or many
// domain events, built once per packet-set version and never mutated
// after construction.
package registry

import (
	"fmt"

	"github.com/ernie/valkyrie-client/internal/events"
	"github.com/ernie/valkyrie-client/internal/packets"
	"github.com/ernie/valkyrie-client/internal/wire"
)

// HandlerState is scratch state a stateful handler may read and mutate.
// The only current use is assembling the multi-packet inventory list
//.
type HandlerState struct {
	// InventoryBuffer is non-nil between InventoryStart and InventoryEnd.
	InventoryBuffer *[]packets.Item
}

// Handler decodes one packet and adapts it into events. It receives the
// registry-scoped transient state so a stateful handler can read and
// mutate it; stateless handlers ignore the parameter.
type Handler func(payload any, state *HandlerState) ([]events.Event, error)

// entry pairs one header's decoder with its handler and size-class
// metadata, exactly the table the frame reader and dispatcher need.
type entry struct {
	descriptor packets.Descriptor
	decoder    packets.Decoder
	handler    Handler
}

// Table is one connection's (login, character, or map) handler table for
// a single packet-set version. Construction-time duplicate registration
// is a hard error (ErrDuplicateHandler); there is no partial-registration
// state to observe once construction fails.
type Table struct {
	entries map[packets.Header]entry
}

// NewTable builds an empty table. Use Register to populate it; version
// bundle functions call Register repeatedly and propagate the first
// error, so a malformed bundle never leaves a partially built table in
// use.
func NewTable() *Table {
	return &Table{entries: make(map[packets.Header]entry)}
}

// Register adds one header's decode/handle pair. Returns
// *wire.ErrDuplicateHandler if the header is already registered.
func (t *Table) Register(desc packets.Descriptor, decoder packets.Decoder, handler Handler) error {
	if _, exists := t.entries[desc.Header]; exists {
		return &wire.ErrDuplicateHandler{Header: uint16(desc.Header)}
	}
	t.entries[desc.Header] = entry{descriptor: desc, decoder: decoder, handler: handler}
	return nil
}

// Lookup returns the descriptor for header, used by the frame reader to
// decide fixed-vs-variable framing before a full dispatch.
func (t *Table) Lookup(header packets.Header) (packets.Descriptor, bool) {
	e, ok := t.entries[header]
	return e.descriptor, ok
}

// Dispatch decodes payload with header's decoder and runs its handler,
// mutating state for stateful handlers. If header has no entry, it
// returns a single UnknownPacketDiagnostic event and no error — per
// the original protocol, an unknown header is a diagnostic, not a session-fatal
// condition.
func (t *Table) Dispatch(header packets.Header, r *wire.Reader, state *HandlerState) ([]events.Event, error) {
	e, ok := t.entries[header]
	if !ok {
		return []events.Event{&events.UnknownPacketDiagnostic{Header: uint16(header)}}, nil
	}
	payload, err := e.decoder(r)
	if err != nil {
		if uv, ok := err.(*wire.ErrUnknownVariant); ok {
			return []events.Event{&events.UnknownVariantDiagnostic{Enum: uv.Enum, Value: uv.Value}}, nil
		}
		return nil, err
	}
	return e.handler(payload, state)
}

// Bundle is the three per-connection tables registered together for one
// packet-set version of handler tables.
type Bundle struct {
	Version   wire.PacketVersion
	Login     *Table
	Character *Table
	Map       *Table
}

// NewBundle builds an empty bundle for the given version.
func NewBundle(version wire.PacketVersion) *Bundle {
	return &Bundle{
		Version:   version,
		Login:     NewTable(),
		Character: NewTable(),
		Map:       NewTable(),
	}
}

func (b *Bundle) TableFor(conn packets.Connection) (*Table, error) {
	switch conn {
	case packets.ConnLogin:
		return b.Login, nil
	case packets.ConnCharacter:
		return b.Character, nil
	case packets.ConnMap:
		return b.Map, nil
	default:
		return nil, fmt.Errorf("unknown connection kind %d", conn)
	}
}
