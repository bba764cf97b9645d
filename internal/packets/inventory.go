package packets

import "github.com/ernie/valkyrie-client/internal/wire"

// ItemOption is one of an equippable item's up to-5 (index, value,
// parameter) triples.
type ItemOption struct {
	Index     int16
	Value     int16
	Parameter uint8
}

const maxItemOptions = 5

// RegularItemFlags holds the two boolean flags a regular item carries.
type RegularItemFlags struct {
	Identified bool
	InEtcTab   bool
}

// EquippableItemFlags holds the three boolean flags an equippable item
// carries.
type EquippableItemFlags struct {
	Identified bool
	Broken     bool
	InEtcTab   bool
}

// RegularItem is the variant-specific payload for non-equippable items:
// amount, equipped position, and the two flags.
type RegularItem struct {
	Amount          uint16
	EquippedPosition uint32
	Flags           RegularItemFlags
}

// EquippableItem is the variant-specific payload for weapons, armor,
// cards, and ammo.
type EquippableItem struct {
	EquipMask        uint32
	EquippedMask      uint32
	BindType         uint8
	SpriteNumber     uint8
	Options          []ItemOption
	RefinementLevel  uint8
	EnchantmentLevel uint8
	Flags            EquippableItemFlags
}

// Item is the normalized inventory entry: common fields plus exactly one
// of Regular or Equippable populated, matching the wire's variant split.
type Item struct {
	// Index is the on-wire u16 normalized by subtracting the fixed +2
	// offset the legacy protocol always adds.
	Index             uint16
	ItemID            uint32
	Type              ItemTypeTag
	Cards             []uint32
	HireExpiration    uint32
	Regular           *RegularItem
	Equippable        *EquippableItem
}

func decodeItemFlagsRegular(v uint8) RegularItemFlags {
	return RegularItemFlags{
		Identified: v&0x01 != 0,
		InEtcTab:   v&0x02 != 0,
	}
}

func decodeItemFlagsEquippable(v uint8) EquippableItemFlags {
	return EquippableItemFlags{
		Identified: v&0x01 != 0,
		Broken:     v&0x02 != 0,
		InEtcTab:   v&0x04 != 0,
	}
}

// DecodeRegularItemEntry decodes one fixed-layout regular-item record as
// they appear packed inside a RegularItemList packet.
func DecodeRegularItemEntry(r *wire.Reader) (Item, error) {
	item, cardCount, err := decodeItemCommon(r)
	if err != nil {
		return Item{}, err
	}
	amount, err := r.U16()
	if err != nil {
		return Item{}, err
	}
	equippedPos, err := r.U32()
	if err != nil {
		return Item{}, err
	}
	flagsByte, err := r.U8()
	if err != nil {
		return Item{}, err
	}
	item.Cards, err = decodeCards(r, cardCount)
	if err != nil {
		return Item{}, err
	}
	item.Regular = &RegularItem{
		Amount:           amount,
		EquippedPosition: equippedPos,
		Flags:            decodeItemFlagsRegular(flagsByte),
	}
	return item, nil
}

// DecodeEquippableItemEntry decodes one fixed-layout equippable-item
// record as they appear packed inside an EquippableItemList packet.
func DecodeEquippableItemEntry(r *wire.Reader) (Item, error) {
	item, cardCount, err := decodeItemCommon(r)
	if err != nil {
		return Item{}, err
	}
	equipMask, err := r.U32()
	if err != nil {
		return Item{}, err
	}
	equippedMask, err := r.U32()
	if err != nil {
		return Item{}, err
	}
	bindType, err := r.U8()
	if err != nil {
		return Item{}, err
	}
	spriteNumber, err := r.U8()
	if err != nil {
		return Item{}, err
	}
	options := make([]ItemOption, 0, maxItemOptions)
	for i := 0; i < maxItemOptions; i++ {
		idx, err := r.I16()
		if err != nil {
			return Item{}, err
		}
		val, err := r.I16()
		if err != nil {
			return Item{}, err
		}
		param, err := r.U8()
		if err != nil {
			return Item{}, err
		}
		if idx != 0 {
			options = append(options, ItemOption{Index: idx, Value: val, Parameter: param})
		}
	}
	refinement, err := r.U8()
	if err != nil {
		return Item{}, err
	}
	enchantment, err := r.U8()
	if err != nil {
		return Item{}, err
	}
	flagsByte, err := r.U8()
	if err != nil {
		return Item{}, err
	}
	item.Cards, err = decodeCards(r, cardCount)
	if err != nil {
		return Item{}, err
	}
	item.Equippable = &EquippableItem{
		EquipMask:        equipMask,
		EquippedMask:     equippedMask,
		BindType:         bindType,
		SpriteNumber:     spriteNumber,
		Options:          options,
		RefinementLevel:  refinement,
		EnchantmentLevel: enchantment,
		Flags:            decodeItemFlagsEquippable(flagsByte),
	}
	return item, nil
}

// decodeItemCommon reads the fields shared by both variants (index, item
// id, type tag, hire-expiration) and returns the card-slot count, always
// 4 in the legacy record layout; the caller reads that many card ids
// after its variant-specific fields.
func decodeItemCommon(r *wire.Reader) (Item, int, error) {
	wireIndex, err := r.U16()
	if err != nil {
		return Item{}, 0, err
	}
	itemID, err := r.U32()
	if err != nil {
		return Item{}, 0, err
	}
	typeTag, err := DecodeItemTypeTag(r)
	if err != nil {
		return Item{}, 0, err
	}
	hireExpiration, err := r.U32()
	if err != nil {
		return Item{}, 0, err
	}
	const cardSlots = 4
	return Item{
		// The wire always adds a fixed +2 offset to the index; the
		// codec normalizes it away here so callers see the logical
		// inventory slot.
		Index:          wireIndex - 2,
		ItemID:         itemID,
		Type:           typeTag,
		HireExpiration: hireExpiration,
	}, cardSlots, nil
}

func decodeCards(r *wire.Reader, count int) ([]uint32, error) {
	cards := make([]uint32, 0, count)
	for i := 0; i < count; i++ {
		v, err := r.U32()
		if err != nil {
			return nil, err
		}
		if v != 0 {
			cards = append(cards, v)
		}
	}
	return cards, nil
}
