package registry

import (
	"testing"

	"github.com/ernie/valkyrie-client/internal/events"
	"github.com/ernie/valkyrie-client/internal/packets"
	"github.com/ernie/valkyrie-client/internal/wire"
)

func TestDuplicateHandlerIsFatal(t *testing.T) {
	table := NewTable()
	desc := packets.Descriptor{Header: packets.HeaderServerMessage, Size: packets.SizeClass{Fixed: 0}}
	handler := UnitEvent(func(p *packets.ServerMessagePacket) events.Event {
		return &events.ChatMessage{Text: p.Text}
	})
	if err := table.Register(desc, packets.DecodeServerMessagePacket, handler); err != nil {
		t.Fatalf("first registration failed: %v", err)
	}
	err := table.Register(desc, packets.DecodeServerMessagePacket, handler)
	if _, ok := err.(*wire.ErrDuplicateHandler); !ok {
		t.Fatalf("expected ErrDuplicateHandler, got %v", err)
	}
}

func TestUnknownPacketIsDiagnosticNotFatal(t *testing.T) {
	table := NewTable()
	r := wire.NewReader([]byte{})
	evs, err := table.Dispatch(packets.Header(0x9999), r, &HandlerState{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(evs) != 1 {
		t.Fatalf("expected one diagnostic event, got %d", len(evs))
	}
	if _, ok := evs[0].(*events.UnknownPacketDiagnostic); !ok {
		t.Fatalf("expected UnknownPacketDiagnostic, got %T", evs[0])
	}
}

func TestServerMessageDispatchesChatMessage(t *testing.T) {
	table := NewTable()
	desc := packets.Descriptor{Header: packets.HeaderServerMessage, Size: packets.SizeClass{Fixed: 0}}
	handler := UnitEvent(func(p *packets.ServerMessagePacket) events.Event {
		return &events.ChatMessage{Text: p.Text, Color: events.ChatColorServer}
	})
	if err := table.Register(desc, packets.DecodeServerMessagePacket, handler); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	w := wire.NewWriter()
	packets.EncodeServerMessagePacket(&packets.ServerMessagePacket{Text: "Welcome!"}, w)
	r := wire.NewReader(w.Bytes())

	evs, err := table.Dispatch(packets.HeaderServerMessage, r, &HandlerState{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	chat, ok := evs[0].(*events.ChatMessage)
	if !ok || chat.Text != "Welcome!" {
		t.Fatalf("got %+v", evs)
	}
}
