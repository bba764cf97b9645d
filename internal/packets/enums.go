package packets

import "github.com/ernie/valkyrie-client/internal/wire"

// Sex is a u8-discriminant enum; unknown values are a decode error per
// the enum policy in the original protocol.
type Sex uint8

const (
	SexFemale Sex = 0
	SexMale   Sex = 1
	SexServer Sex = 2
)

func DecodeSex(r *wire.Reader) (Sex, error) {
	v, err := r.U8()
	if err != nil {
		return 0, err
	}
	switch Sex(v) {
	case SexFemale, SexMale, SexServer:
		return Sex(v), nil
	default:
		return 0, &wire.ErrUnknownVariant{Enum: "Sex", Value: uint32(v)}
	}
}

// ChatColor classifies a ServerMessagePacket's originating channel for
// consumer display; it is inferred by the handler, not carried on the
// wire for this packet family.
type ChatColor uint8

const (
	ChatColorServer ChatColor = iota
	ChatColorWhisper
	ChatColorParty
	ChatColorGuild
	ChatColorBattleground
)

// ItemTypeTag is a u8 enum distinguishing regular from equippable items
// on the wire.
type ItemTypeTag uint8

const (
	ItemTypeHealing ItemTypeTag = 0
	ItemTypeUsable  ItemTypeTag = 2
	ItemTypeEtc     ItemTypeTag = 3
	ItemTypeWeapon  ItemTypeTag = 4
	ItemTypeArmor   ItemTypeTag = 5
	ItemTypeCard    ItemTypeTag = 6
	ItemTypeAmmo    ItemTypeTag = 10
)

func DecodeItemTypeTag(r *wire.Reader) (ItemTypeTag, error) {
	v, err := r.U8()
	if err != nil {
		return 0, err
	}
	switch ItemTypeTag(v) {
	case ItemTypeHealing, ItemTypeUsable, ItemTypeEtc, ItemTypeWeapon, ItemTypeArmor, ItemTypeCard, ItemTypeAmmo:
		return ItemTypeTag(v), nil
	default:
		return 0, &wire.ErrUnknownVariant{Enum: "ItemTypeTag", Value: uint32(v)}
	}
}

// IsEquippable reports whether this type tag decodes an EquippableItem
// payload rather than a RegularItem payload.
func (t ItemTypeTag) IsEquippable() bool {
	switch t {
	case ItemTypeWeapon, ItemTypeArmor, ItemTypeCard, ItemTypeAmmo:
		return true
	default:
		return false
	}
}

// UnitID is the 4-byte internal enum for ground/skill units. The older
// packet bundle's NotifySkillUnitPacket carries only a 1-byte discriminant
// with no published mapping table to this enum; the original protocol that gap is
// flagged as missing data-definition work, not guessed at. Decoding that
// old packet yields the UnitIDSafetywall placeholder (see
// DecodeLegacyUnitID), whatever the legacy byte.
type UnitID uint32

const (
	UnitIDUnknown    UnitID = 0
	UnitIDSafetywall UnitID = 1
	UnitIDFirewall   UnitID = 2
	UnitIDIcewall    UnitID = 3
	UnitIDTrap       UnitID = 4
)

func DecodeUnitID(r *wire.Reader) (UnitID, error) {
	v, err := r.U32()
	if err != nil {
		return 0, err
	}
	switch UnitID(v) {
	case UnitIDUnknown, UnitIDSafetywall, UnitIDFirewall, UnitIDIcewall, UnitIDTrap:
		return UnitID(v), nil
	default:
		return 0, &wire.ErrUnknownVariant{Enum: "UnitID", Value: v}
	}
}

// DecodeLegacyUnitID decodes the older packet bundle's 1-byte unit-id
// field. There is no published table from the legacy byte values to
// UnitID, so every legacy value maps to UnitIDSafetywall as a documented
// placeholder (matching the source's own placeholder, the original protocol) rather
// than failing the whole packet on an enum we cannot resolve.
func DecodeLegacyUnitID(r *wire.Reader) (UnitID, error) {
	if _, err := r.U8(); err != nil {
		return 0, err
	}
	return UnitIDSafetywall, nil
}
