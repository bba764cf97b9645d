// Package versions populates the handler-registry bundles for each
// supported packet-set version. Bundles never mix: the orchestrator
// picks exactly one at startup and every table derives from it.
package versions

import (
	"fmt"

	"github.com/ernie/valkyrie-client/internal/events"
	"github.com/ernie/valkyrie-client/internal/packets"
	"github.com/ernie/valkyrie-client/internal/registry"
)

// registerCommonLogin wires the login-stage handlers shared by both
// bundled versions.
func registerCommonLogin(t *registry.Table) error {
	regs := []struct {
		desc    packets.Descriptor
		decoder packets.Decoder
		handler registry.Handler
	}{
		{
			packets.Descriptor{Header: packets.HeaderLoginServerSuccess, Size: packets.SizeClass{Fixed: 0}},
			packets.DecodeLoginServerLoginSuccessPacket,
			registry.UnitEvent(func(p *packets.LoginServerLoginSuccessPacket) events.Event {
				return &events.LoginServerConnected{
					LoginData: events.LoginData{
						AccountID: p.AccountID,
						LoginID1:  p.LoginID1,
						LoginID2:  p.LoginID2,
						Sex:       p.Sex,
					},
					CharacterServers: p.CharacterServers,
				}
			}),
		},
		{
			packets.Descriptor{Header: packets.HeaderLoginKeepAlive, Size: packets.SizeClass{Fixed: 4}, IsPing: true},
			packets.DecodeLoginKeepAlivePacket,
			registry.Consume[*packets.LoginKeepAlivePacket](),
		},
	}
	for _, r := range regs {
		if err := t.Register(r.desc, r.decoder, r.handler); err != nil {
			return err
		}
	}
	return nil
}

// registerCommonCharacter wires the character-stage handlers shared by
// both bundled versions.
func registerCommonCharacter(t *registry.Table) error {
	regs := []struct {
		desc    packets.Descriptor
		decoder packets.Decoder
		handler registry.Handler
	}{
		{
			packets.Descriptor{Header: packets.HeaderCharacterServerAccept, Size: packets.SizeClass{Fixed: 0}},
			packets.DecodeCharacterServerAcceptPacket,
			registry.UnitEvent(func(p *packets.CharacterServerAcceptPacket) events.Event {
				return &events.CharacterList{Characters: p.Characters}
			}),
		},
		{
			packets.Descriptor{Header: packets.HeaderMapServerSuccess, Size: packets.SizeClass{Fixed: 26}},
			packets.DecodeMapServerSuccessPacket,
			registry.UnitEvent(func(p *packets.MapServerSuccessPacket) events.Event {
				return &events.CharacterSelected{
					CharacterID:   p.CharacterID,
					MapName:       p.MapName,
					MapServerAddr: p.Address,
					MapServerPort: p.Port,
				}
			}),
		},
		{
			packets.Descriptor{Header: packets.HeaderCharacterKeepAlive, Size: packets.SizeClass{Fixed: 0}, IsPing: true},
			packets.DecodeCharacterKeepAlivePacket,
			registry.Consume[*packets.CharacterKeepAlivePacket](),
		},
	}
	for _, r := range regs {
		if err := t.Register(r.desc, r.decoder, r.handler); err != nil {
			return err
		}
	}
	return nil
}

// registerCommonMap wires the map-stage handlers shared by both bundled
// versions, including the stateful inventory-assembly sequence
//.
func registerCommonMap(t *registry.Table) error {
	plain := []struct {
		desc    packets.Descriptor
		decoder packets.Decoder
		handler registry.Handler
	}{
		{
			packets.Descriptor{Header: packets.HeaderMapLoginSuccess, Size: packets.SizeClass{Fixed: 9}},
			packets.DecodeMapLoginSuccessPacket,
			registry.UnitEvent(func(p *packets.MapLoginSuccessPacket) events.Event {
				return &events.UpdateClientTick{ClientTick: p.ClientTick}
			}),
		},
		{
			packets.Descriptor{Header: packets.HeaderMapKeepAlive, Size: packets.SizeClass{Fixed: 4}, IsPing: true},
			packets.DecodeMapKeepAlivePacket,
			registry.Consume[*packets.MapKeepAlivePacket](),
		},
		{
			packets.Descriptor{Header: packets.HeaderServerMessage, Size: packets.SizeClass{Fixed: 0}},
			packets.DecodeServerMessagePacket,
			registry.UnitEvent(func(p *packets.ServerMessagePacket) events.Event {
				return &events.ChatMessage{Text: p.Text, Color: events.ChatColorServer}
			}),
		},
		{
			packets.Descriptor{Header: packets.HeaderOverheadMessage, Size: packets.SizeClass{Fixed: 0}},
			packets.DecodeOverheadMessagePacket,
			registry.UnitEvent(func(p *packets.OverheadMessagePacket) events.Event {
				return &events.OverheadMessage{EntityID: p.EntityID, Text: p.Text}
			}),
		},
		{
			packets.Descriptor{Header: packets.HeaderChangeMap, Size: packets.SizeClass{Fixed: 20}},
			packets.DecodeChangeMapPacket,
			registry.UnitEvent(func(p *packets.ChangeMapPacket) events.Event {
				return &events.ChangeMap{MapName: p.MapName, Position: p.Position}
			}),
		},
		{
			packets.Descriptor{Header: packets.HeaderEntityAppearStationaryNew, Size: packets.SizeClass{Fixed: 21}},
			packets.DecodeEntityAppearStationaryNew,
			registry.UnitEvent(func(p *packets.EntitySnapshot) events.Event {
				return &events.AddEntity{Snapshot: *p}
			}),
		},
		{
			packets.Descriptor{Header: packets.HeaderEntityAppearStationaryExisting, Size: packets.SizeClass{Fixed: 21}},
			packets.DecodeEntityAppearStationaryExisting,
			registry.UnitEvent(func(p *packets.EntitySnapshot) events.Event {
				return &events.AddEntity{Snapshot: *p}
			}),
		},
		{
			packets.Descriptor{Header: packets.HeaderEntityAppearMoving, Size: packets.SizeClass{Fixed: 25}},
			packets.DecodeEntityAppearMoving,
			registry.UnitEvent(func(p *packets.EntitySnapshot) events.Event {
				return &events.AddEntity{Snapshot: *p}
			}),
		},
		{
			packets.Descriptor{Header: packets.HeaderEntityDisappear, Size: packets.SizeClass{Fixed: 5}},
			packets.DecodeEntityDisappearPacket,
			registry.UnitEvent(func(p *packets.EntityDisappearPacket) events.Event {
				return &events.RemoveEntity{EntityID: p.EntityID}
			}),
		},
		{
			packets.Descriptor{Header: packets.HeaderRestartResponse, Size: packets.SizeClass{Fixed: 1}},
			packets.DecodeRestartResponsePacket,
			registry.UnitEvent(func(p *packets.RestartResponsePacket) events.Event {
				if p.Ack == packets.LogoutAckOk {
					return &events.LoggedOut{}
				}
				return &events.Disconnect{Reason: events.DisconnectLogoutTimeout, Detail: "server requested Wait10Seconds"}
			}),
		},
	}
	for _, r := range plain {
		if err := t.Register(r.desc, r.decoder, r.handler); err != nil {
			return err
		}
	}
	return registerInventoryAssembly(t)
}

// registerInventoryAssembly wires InventoryStart/RegularItemList/
// EquippableItemList/InventoryEnd as the stateful sequence the original protocol
// describes: Start (re)initializes the shared buffer, list packets
// append to it, End drains it into one SetInventory event. A list
// packet with no buffer initialized is a protocol error.
func registerInventoryAssembly(t *registry.Table) error {
	start := registry.Stateful(func(p *packets.InventoryStartPacket, state *registry.HandlerState) ([]events.Event, error) {
		buf := make([]packets.Item, 0, 16)
		state.InventoryBuffer = &buf
		return nil, nil
	})
	regularList := registry.Stateful(func(p *packets.RegularItemListPacket, state *registry.HandlerState) ([]events.Event, error) {
		if state.InventoryBuffer == nil {
			return nil, fmt.Errorf("RegularItemList received with no InventoryStart buffer")
		}
		*state.InventoryBuffer = append(*state.InventoryBuffer, p.Items...)
		return nil, nil
	})
	equippableList := registry.Stateful(func(p *packets.EquippableItemListPacket, state *registry.HandlerState) ([]events.Event, error) {
		if state.InventoryBuffer == nil {
			return nil, fmt.Errorf("EquippableItemList received with no InventoryStart buffer")
		}
		*state.InventoryBuffer = append(*state.InventoryBuffer, p.Items...)
		return nil, nil
	})
	end := registry.Stateful(func(p *packets.InventoryEndPacket, state *registry.HandlerState) ([]events.Event, error) {
		if state.InventoryBuffer == nil {
			return nil, fmt.Errorf("InventoryEnd received with no InventoryStart buffer")
		}
		items := *state.InventoryBuffer
		state.InventoryBuffer = nil
		return []events.Event{&events.SetInventory{Items: items}}, nil
	})

	regs := []struct {
		desc    packets.Descriptor
		decoder packets.Decoder
		handler registry.Handler
	}{
		{packets.Descriptor{Header: packets.HeaderInventoryStart, Size: packets.SizeClass{Fixed: 0}}, packets.DecodeInventoryStartPacket, start},
		{packets.Descriptor{Header: packets.HeaderRegularItemList, Size: packets.SizeClass{Fixed: 0}}, packets.DecodeRegularItemListPacket, regularList},
		{packets.Descriptor{Header: packets.HeaderEquippableItemList, Size: packets.SizeClass{Fixed: 0}}, packets.DecodeEquippableItemListPacket, equippableList},
		{packets.Descriptor{Header: packets.HeaderInventoryEnd, Size: packets.SizeClass{Fixed: 0}}, packets.DecodeInventoryEndPacket, end},
	}
	for _, r := range regs {
		if err := t.Register(r.desc, r.decoder, r.handler); err != nil {
			return err
		}
	}
	return nil
}
