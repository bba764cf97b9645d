package packets

import "github.com/ernie/valkyrie-client/internal/wire"

// Map-stage packet headers.
const (
	HeaderMapLoginSuccess      Header = 0x0073
	HeaderMapKeepAlive         Header = 0x007E
	HeaderServerMessage        Header = 0x008E
	HeaderOverheadMessage      Header = 0x008D
	HeaderChangeMap            Header = 0x0091
	HeaderEntityAppearStationaryNew      Header = 0x0078
	HeaderEntityAppearStationaryExisting Header = 0x0079
	HeaderEntityAppearMoving             Header = 0x007B
	HeaderEntityDisappear      Header = 0x0080
	HeaderInventoryStart       Header = 0x01F4
	HeaderRegularItemList      Header = 0x01EE
	HeaderEquippableItemList   Header = 0x00A4
	HeaderInventoryEnd         Header = 0x01F5
	HeaderRestart              Header = 0x00B2
	HeaderQuit                 Header = 0x018A
	HeaderRestartResponse      Header = 0x00B3
	HeaderNotifySkillUnitOld   Header = 0x0117
	HeaderNotifySkillUnit      Header = 0x09CA
)

// MapLoginSuccessPacket hands the orchestrator its initial client tick
// and spawn position.
type MapLoginSuccessPacket struct {
	ClientTick uint32
	Position   Position
}

func DecodeMapLoginSuccessPacket(r *wire.Reader) (any, error) {
	tick, err := r.U32()
	if err != nil {
		return nil, err
	}
	x, err := r.U16()
	if err != nil {
		return nil, err
	}
	y, err := r.U16()
	if err != nil {
		return nil, err
	}
	if err := r.Skip(r.Remaining()); err != nil {
		return nil, err
	}
	return &MapLoginSuccessPacket{ClientTick: tick, Position: Position{X: x, Y: y}}, nil
}

func EncodeMapLoginSuccessPacket(v any, w *wire.Writer) (int, error) {
	pkt := v.(*MapLoginSuccessPacket)
	start := w.Len()
	w.U32(pkt.ClientTick)
	w.U16(pkt.Position.X)
	w.U16(pkt.Position.Y)
	w.U8(0)
	return w.Len() - start, nil
}

// MapKeepAlivePacket carries the current client tick.
type MapKeepAlivePacket struct{ ClientTick uint32 }

func DecodeMapKeepAlivePacket(r *wire.Reader) (any, error) {
	tick, err := r.U32()
	if err != nil {
		return nil, err
	}
	return &MapKeepAlivePacket{ClientTick: tick}, nil
}

func EncodeMapKeepAlivePacket(v any, w *wire.Writer) (int, error) {
	pkt := v.(*MapKeepAlivePacket)
	start := w.Len()
	w.U32(pkt.ClientTick)
	return w.Len() - start, nil
}

// ServerMessagePacket is the variable-size chat broadcast decoded for
// scenario S3 ("Welcome!").
type ServerMessagePacket struct {
	Text string
}

func DecodeServerMessagePacket(r *wire.Reader) (any, error) {
	text, err := r.RemainingString()
	if err != nil {
		return nil, err
	}
	return &ServerMessagePacket{Text: text}, nil
}

func EncodeServerMessagePacket(v any, w *wire.Writer) (int, error) {
	pkt := v.(*ServerMessagePacket)
	start := w.Len()
	w.RemainingString(pkt.Text)
	return w.Len() - start, nil
}

// OverheadMessagePacket is player-overhead chat. The original source's
// handler folds this into the generic chat stream with a "// FIX: this
// should be a different event" note; this decoder preserves
// the originating entity so the handler can emit a dedicated event
// instead of losing that information.
type OverheadMessagePacket struct {
	EntityID uint32
	Text     string
}

func DecodeOverheadMessagePacket(r *wire.Reader) (any, error) {
	entityID, err := r.U32()
	if err != nil {
		return nil, err
	}
	text, err := r.RemainingStringMinusOne()
	if err != nil {
		return nil, err
	}
	return &OverheadMessagePacket{EntityID: entityID, Text: text}, nil
}

func EncodeOverheadMessagePacket(v any, w *wire.Writer) (int, error) {
	pkt := v.(*OverheadMessagePacket)
	start := w.Len()
	w.U32(pkt.EntityID)
	w.RemainingString(pkt.Text)
	w.U8(0)
	return w.Len() - start, nil
}

// ChangeMapPacket is decoded for scenario S5: map_name has its ".gat"
// suffix stripped by the codec, not the handler.
type ChangeMapPacket struct {
	MapName  string
	Position Position
}

func DecodeChangeMapPacket(r *wire.Reader) (any, error) {
	mapName, err := r.FixedString(16)
	if err != nil {
		return nil, err
	}
	x, err := r.U16()
	if err != nil {
		return nil, err
	}
	y, err := r.U16()
	if err != nil {
		return nil, err
	}
	return &ChangeMapPacket{MapName: stripGatSuffix(mapName), Position: Position{X: x, Y: y}}, nil
}

func EncodeChangeMapPacket(v any, w *wire.Writer) (int, error) {
	pkt := v.(*ChangeMapPacket)
	start := w.Len()
	w.FixedString(pkt.MapName+".gat", 16)
	w.U16(pkt.Position.X)
	w.U16(pkt.Position.Y)
	return w.Len() - start, nil
}

// EntityDisappearPacket reports an entity leaving visibility.
type EntityDisappearPacket struct {
	EntityID uint32
	Reason   uint8
}

func DecodeEntityDisappearPacket(r *wire.Reader) (any, error) {
	entityID, err := r.U32()
	if err != nil {
		return nil, err
	}
	reason, err := r.U8()
	if err != nil {
		return nil, err
	}
	return &EntityDisappearPacket{EntityID: entityID, Reason: reason}, nil
}

func EncodeEntityDisappearPacket(v any, w *wire.Writer) (int, error) {
	pkt := v.(*EntityDisappearPacket)
	start := w.Len()
	w.U32(pkt.EntityID)
	w.U8(pkt.Reason)
	return w.Len() - start, nil
}

// DecodeEntityAppearStationaryNew/Existing/Moving adapt the three
// EntitySnapshot variant decoders to the registry's Decoder signature.
func DecodeEntityAppearStationaryNew(r *wire.Reader) (any, error) {
	snap, err := DecodeEntityStationaryNew(r)
	if err != nil {
		return nil, err
	}
	return &snap, nil
}

func DecodeEntityAppearStationaryExisting(r *wire.Reader) (any, error) {
	snap, err := DecodeEntityStationaryExisting(r)
	if err != nil {
		return nil, err
	}
	return &snap, nil
}

func DecodeEntityAppearMoving(r *wire.Reader) (any, error) {
	snap, err := DecodeEntityMoving(r)
	if err != nil {
		return nil, err
	}
	return &snap, nil
}

func encodeEntitySnapshot(w *wire.Writer, snap *EntitySnapshot) {
	w.U32(snap.EntityID)
	w.U16(snap.SpriteJob)
	w.U8(snap.HeadDirection)
	w.U16(snap.Position.X)
	w.U16(snap.Position.Y)
	if snap.Destination != nil {
		w.U16(snap.Destination.X)
		w.U16(snap.Destination.Y)
	}
	w.U32(snap.Health)
	w.U32(snap.MaxHealth)
	w.U8(uint8(snap.Sex))
	w.U8(snap.Size)
}

func EncodeEntityAppearStationaryNew(v any, w *wire.Writer) (int, error) {
	start := w.Len()
	encodeEntitySnapshot(w, v.(*EntitySnapshot))
	return w.Len() - start, nil
}

func EncodeEntityAppearStationaryExisting(v any, w *wire.Writer) (int, error) {
	return EncodeEntityAppearStationaryNew(v, w)
}

func EncodeEntityAppearMoving(v any, w *wire.Writer) (int, error) {
	start := w.Len()
	encodeEntitySnapshot(w, v.(*EntitySnapshot))
	return w.Len() - start, nil
}

// Inventory assembly packets. InventoryStart carries no fields; it just (re)initializes
// the registry's transient item buffer.
type InventoryStartPacket struct{}

func DecodeInventoryStartPacket(r *wire.Reader) (any, error) {
	return &InventoryStartPacket{}, nil
}

func EncodeInventoryStartPacket(v any, w *wire.Writer) (int, error) { return 0, nil }

// RegularItemListPacket is a variable-size packet holding a repeat-
// until-end list of fixed-layout regular-item records.
type RegularItemListPacket struct {
	Items []Item
}

func DecodeRegularItemListPacket(r *wire.Reader) (any, error) {
	pkt := &RegularItemListPacket{}
	for r.Remaining() > 0 {
		item, err := DecodeRegularItemEntry(r)
		if err != nil {
			return nil, err
		}
		pkt.Items = append(pkt.Items, item)
	}
	return pkt, nil
}

func EncodeRegularItemListPacket(v any, w *wire.Writer) (int, error) {
	pkt := v.(*RegularItemListPacket)
	start := w.Len()
	for _, item := range pkt.Items {
		w.U16(item.Index + 2)
		w.U32(item.ItemID)
		w.U8(uint8(item.Type))
		w.U32(item.HireExpiration)
		w.U16(item.Regular.Amount)
		w.U32(item.Regular.EquippedPosition)
		var flags uint8
		if item.Regular.Flags.Identified {
			flags |= 0x01
		}
		if item.Regular.Flags.InEtcTab {
			flags |= 0x02
		}
		w.U8(flags)
		encodeCards(w, item.Cards, 4)
	}
	return w.Len() - start, nil
}

// EquippableItemListPacket is a variable-size packet holding a repeat-
// until-end list of fixed-layout equippable-item records.
type EquippableItemListPacket struct {
	Items []Item
}

func DecodeEquippableItemListPacket(r *wire.Reader) (any, error) {
	pkt := &EquippableItemListPacket{}
	for r.Remaining() > 0 {
		item, err := DecodeEquippableItemEntry(r)
		if err != nil {
			return nil, err
		}
		pkt.Items = append(pkt.Items, item)
	}
	return pkt, nil
}

func EncodeEquippableItemListPacket(v any, w *wire.Writer) (int, error) {
	pkt := v.(*EquippableItemListPacket)
	start := w.Len()
	for _, item := range pkt.Items {
		w.U16(item.Index + 2)
		w.U32(item.ItemID)
		w.U8(uint8(item.Type))
		w.U32(item.HireExpiration)
		eq := item.Equippable
		w.U32(eq.EquipMask)
		w.U32(eq.EquippedMask)
		w.U8(eq.BindType)
		w.U8(eq.SpriteNumber)
		for i := 0; i < maxItemOptions; i++ {
			if i < len(eq.Options) {
				o := eq.Options[i]
				w.I16(o.Index)
				w.I16(o.Value)
				w.U8(o.Parameter)
			} else {
				w.I16(0)
				w.I16(0)
				w.U8(0)
			}
		}
		w.U8(eq.RefinementLevel)
		w.U8(eq.EnchantmentLevel)
		var flags uint8
		if eq.Flags.Identified {
			flags |= 0x01
		}
		if eq.Flags.Broken {
			flags |= 0x02
		}
		if eq.Flags.InEtcTab {
			flags |= 0x04
		}
		w.U8(flags)
		encodeCards(w, item.Cards, 4)
	}
	return w.Len() - start, nil
}

func encodeCards(w *wire.Writer, cards []uint32, slots int) {
	for i := 0; i < slots; i++ {
		if i < len(cards) {
			w.U32(cards[i])
		} else {
			w.U32(0)
		}
	}
}

// InventoryEndPacket drains the registry's transient item buffer into a
// single SetInventory event.
type InventoryEndPacket struct{}

func DecodeInventoryEndPacket(r *wire.Reader) (any, error) {
	return &InventoryEndPacket{}, nil
}

func EncodeInventoryEndPacket(v any, w *wire.Writer) (int, error) { return 0, nil }

// LogoutAck is the server's reply to Restart(Disconnect)/Quit: either an
// immediate Ok or a Wait10Seconds deferral.
type LogoutAck uint8

const (
	LogoutAckOk           LogoutAck = 0
	LogoutAckWait10Seconds LogoutAck = 1
)

func DecodeLogoutAck(v uint8) (LogoutAck, error) {
	switch LogoutAck(v) {
	case LogoutAckOk, LogoutAckWait10Seconds:
		return LogoutAck(v), nil
	default:
		return 0, &wire.ErrUnknownVariant{Enum: "LogoutAck", Value: uint32(v)}
	}
}

// RestartResponsePacket carries the logout acknowledgement.
type RestartResponsePacket struct {
	Ack LogoutAck
}

func DecodeRestartResponsePacket(r *wire.Reader) (any, error) {
	v, err := r.U8()
	if err != nil {
		return nil, err
	}
	ack, err := DecodeLogoutAck(v)
	if err != nil {
		return nil, err
	}
	return &RestartResponsePacket{Ack: ack}, nil
}

func EncodeRestartResponsePacket(v any, w *wire.Writer) (int, error) {
	pkt := v.(*RestartResponsePacket)
	start := w.Len()
	w.U8(uint8(pkt.Ack))
	return w.Len() - start, nil
}

// RestartPacket requests Restart(Disconnect); QuitPacket requests the
// session be torn down entirely. Both carry no fields.
type RestartPacket struct{}
type QuitPacket struct{}

func DecodeRestartPacket(r *wire.Reader) (any, error) { return &RestartPacket{}, nil }
func EncodeRestartPacket(v any, w *wire.Writer) (int, error) { return 0, nil }
func DecodeQuitPacket(r *wire.Reader) (any, error)    { return &QuitPacket{}, nil }
func EncodeQuitPacket(v any, w *wire.Writer) (int, error)    { return 0, nil }

// NotifySkillUnitOldPacket is the older bundle's ground-skill-unit
// notification; its 1-byte unit id has no published mapping to UnitID
//, decoded via DecodeLegacyUnitID's documented placeholder.
type NotifySkillUnitOldPacket struct {
	UnitObjectID uint32
	SourceID     uint32
	Position     Position
	UnitKind     UnitID
}

func DecodeNotifySkillUnitOldPacket(r *wire.Reader) (any, error) {
	unitObjectID, err := r.U32()
	if err != nil {
		return nil, err
	}
	sourceID, err := r.U32()
	if err != nil {
		return nil, err
	}
	x, err := r.U16()
	if err != nil {
		return nil, err
	}
	y, err := r.U16()
	if err != nil {
		return nil, err
	}
	unitKind, err := DecodeLegacyUnitID(r)
	if err != nil {
		return nil, err
	}
	return &NotifySkillUnitOldPacket{
		UnitObjectID: unitObjectID,
		SourceID:     sourceID,
		Position:     Position{X: x, Y: y},
		UnitKind:     unitKind,
	}, nil
}

func EncodeNotifySkillUnitOldPacket(v any, w *wire.Writer) (int, error) {
	pkt := v.(*NotifySkillUnitOldPacket)
	start := w.Len()
	w.U32(pkt.UnitObjectID)
	w.U32(pkt.SourceID)
	w.U16(pkt.Position.X)
	w.U16(pkt.Position.Y)
	w.U8(1)
	return w.Len() - start, nil
}

// NotifySkillUnitPacket is the newer bundle's ground-skill-unit
// notification, carrying the full 4-byte UnitID with no placeholder
// mapping required.
type NotifySkillUnitPacket struct {
	UnitObjectID uint32
	SourceID     uint32
	Position     Position
	UnitKind     UnitID
}

func DecodeNotifySkillUnitPacket(r *wire.Reader) (any, error) {
	unitObjectID, err := r.U32()
	if err != nil {
		return nil, err
	}
	sourceID, err := r.U32()
	if err != nil {
		return nil, err
	}
	x, err := r.U16()
	if err != nil {
		return nil, err
	}
	y, err := r.U16()
	if err != nil {
		return nil, err
	}
	unitKind, err := DecodeUnitID(r)
	if err != nil {
		return nil, err
	}
	return &NotifySkillUnitPacket{
		UnitObjectID: unitObjectID,
		SourceID:     sourceID,
		Position:     Position{X: x, Y: y},
		UnitKind:     unitKind,
	}, nil
}

func EncodeNotifySkillUnitPacket(v any, w *wire.Writer) (int, error) {
	pkt := v.(*NotifySkillUnitPacket)
	start := w.Len()
	w.U32(pkt.UnitObjectID)
	w.U32(pkt.SourceID)
	w.U16(pkt.Position.X)
	w.U16(pkt.Position.Y)
	w.U32(uint32(pkt.UnitKind))
	return w.Len() - start, nil
}
