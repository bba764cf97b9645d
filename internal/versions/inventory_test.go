package versions

import (
	"testing"

	"github.com/ernie/valkyrie-client/internal/events"
	"github.com/ernie/valkyrie-client/internal/packets"
	"github.com/ernie/valkyrie-client/internal/registry"
	"github.com/ernie/valkyrie-client/internal/wire"
)

// TestInventoryAssemblyScenarioS4 feeds InventoryStart + RegularItemList
// + EquippableItemList + InventoryEnd and expects exactly one
// SetInventory event with both items normalized.
func TestInventoryAssemblyScenarioS4(t *testing.T) {
	bundle, err := BundleFor(Tag20220406)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	state := &registry.HandlerState{}

	dispatch := func(header packets.Header, payload []byte) []events.Event {
		r := wire.NewReader(payload)
		r.Version = bundle.Version
		evs, err := bundle.Map.Dispatch(header, r, state)
		if err != nil {
			t.Fatalf("dispatch 0x%04x: unexpected error: %v", header, err)
		}
		return evs
	}

	startW := wire.NewWriter()
	if evs := dispatch(packets.HeaderInventoryStart, startW.Bytes()); len(evs) != 0 {
		t.Fatalf("InventoryStart should emit no events, got %+v", evs)
	}

	regularW := wire.NewWriter()
	packets.EncodeRegularItemListPacket(&packets.RegularItemListPacket{
		Items: []packets.Item{{
			Index:   0,
			ItemID:  501,
			Type:    packets.ItemTypeHealing,
			Regular: &packets.RegularItem{Amount: 5},
		}},
	}, regularW)
	if evs := dispatch(packets.HeaderRegularItemList, regularW.Bytes()); len(evs) != 0 {
		t.Fatalf("RegularItemList should emit no events, got %+v", evs)
	}

	equipW := wire.NewWriter()
	packets.EncodeEquippableItemListPacket(&packets.EquippableItemListPacket{
		Items: []packets.Item{{
			Index:      1,
			ItemID:     1201,
			Type:       packets.ItemTypeWeapon,
			Equippable: &packets.EquippableItem{RefinementLevel: 7},
		}},
	}, equipW)
	if evs := dispatch(packets.HeaderEquippableItemList, equipW.Bytes()); len(evs) != 0 {
		t.Fatalf("EquippableItemList should emit no events, got %+v", evs)
	}

	endW := wire.NewWriter()
	evs := dispatch(packets.HeaderInventoryEnd, endW.Bytes())
	if len(evs) != 1 {
		t.Fatalf("expected exactly one SetInventory event, got %d", len(evs))
	}
	inv, ok := evs[0].(*events.SetInventory)
	if !ok {
		t.Fatalf("expected SetInventory, got %T", evs[0])
	}
	if len(inv.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(inv.Items))
	}
	if inv.Items[0].ItemID != 501 || inv.Items[0].Regular.Amount != 5 {
		t.Fatalf("got regular item %+v", inv.Items[0])
	}
	if inv.Items[1].ItemID != 1201 || inv.Items[1].Equippable.RefinementLevel != 7 {
		t.Fatalf("got equippable item %+v", inv.Items[1])
	}

	if state.InventoryBuffer != nil {
		t.Fatal("expected inventory buffer to be cleared after InventoryEnd")
	}
}

func TestListPacketWithoutStartIsProtocolError(t *testing.T) {
	bundle, err := BundleFor(Tag20220406)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	state := &registry.HandlerState{}
	w := wire.NewWriter()
	r := wire.NewReader(w.Bytes())
	if _, err := bundle.Map.Dispatch(packets.HeaderRegularItemList, r, state); err == nil {
		t.Fatal("expected a protocol error for a list packet with no InventoryStart")
	}
}
