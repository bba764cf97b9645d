package packets

import (
	"testing"

	"github.com/ernie/valkyrie-client/internal/wire"
)

func TestChangeMapRoundTrip(t *testing.T) {
	w := wire.NewWriter()
	EncodeChangeMapPacket(&ChangeMapPacket{MapName: "prontera", Position: Position{X: 150, Y: 150}}, w)

	r := wire.NewReader(w.Bytes())
	decoded, err := DecodeChangeMapPacket(r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	pkt := decoded.(*ChangeMapPacket)
	if pkt.MapName != "prontera" {
		t.Fatalf("got map name %q, want %q (gat suffix should be stripped)", pkt.MapName, "prontera")
	}
	if pkt.Position != (Position{X: 150, Y: 150}) {
		t.Fatalf("got position %+v", pkt.Position)
	}
}

func TestServerMessageScenarioS3(t *testing.T) {
	w := wire.NewWriter()
	EncodeServerMessagePacket(&ServerMessagePacket{Text: "Welcome!"}, w)

	r := wire.NewReader(w.Bytes())
	decoded, err := DecodeServerMessagePacket(r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if decoded.(*ServerMessagePacket).Text != "Welcome!" {
		t.Fatalf("got %q", decoded.(*ServerMessagePacket).Text)
	}
}

func TestLoginServerLoginSuccessScenarioS1(t *testing.T) {
	original := &LoginServerLoginSuccessPacket{
		AccountID: 12345,
		LoginID1:  1,
		LoginID2:  2,
		Sex:       SexMale,
		CharacterServers: []CharacterServerEntry{
			{Address: [4]uint8{127, 0, 0, 1}, Port: 6121, Name: "Test", UserCount: 3},
		},
	}
	w := wire.NewWriter()
	EncodeLoginServerLoginSuccessPacket(original, w)

	r := wire.NewReader(w.Bytes())
	decoded, err := DecodeLoginServerLoginSuccessPacket(r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	pkt := decoded.(*LoginServerLoginSuccessPacket)
	if pkt.AccountID != 12345 {
		t.Fatalf("got account id %d", pkt.AccountID)
	}
	if len(pkt.CharacterServers) != 1 || pkt.CharacterServers[0].Name != "Test" {
		t.Fatalf("got character servers %+v", pkt.CharacterServers)
	}
	if r.Remaining() != 0 {
		t.Fatalf("expected decode to consume exactly the encoded bytes, %d remain", r.Remaining())
	}
}

func TestInventoryItemRoundTrip(t *testing.T) {
	regular := Item{
		Index:  0,
		ItemID: 501,
		Type:   ItemTypeHealing,
		Cards:  []uint32{7},
		Regular: &RegularItem{
			Amount: 5,
			Flags:  RegularItemFlags{Identified: true},
		},
	}
	w := wire.NewWriter()
	list := &RegularItemListPacket{Items: []Item{regular}}
	EncodeRegularItemListPacket(list, w)

	r := wire.NewReader(w.Bytes())
	decoded, err := DecodeRegularItemListPacket(r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := decoded.(*RegularItemListPacket).Items[0]
	if got.ItemID != 501 || got.Regular.Amount != 5 || !got.Regular.Flags.Identified {
		t.Fatalf("got %+v", got)
	}
	if len(got.Cards) != 1 || got.Cards[0] != 7 {
		t.Fatalf("got cards %+v", got.Cards)
	}
}

func TestUnknownVariantDropsPacketNotConnection(t *testing.T) {
	// Enum discriminant 0xFF where 0x00-0x02 are defined for Sex.
	r := wire.NewReader([]byte{0xFF})
	_, err := DecodeSex(r)
	uv, ok := err.(*wire.ErrUnknownVariant)
	if !ok {
		t.Fatalf("expected ErrUnknownVariant, got %T", err)
	}
	if uv.Enum != "Sex" || uv.Value != 0xFF {
		t.Fatalf("got %+v", uv)
	}
}
