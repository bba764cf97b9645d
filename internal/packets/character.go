package packets

import "github.com/ernie/valkyrie-client/internal/wire"

// Character-stage packet headers.
const (
	HeaderCharacterServerAccept Header = 0x006B
	HeaderCharacterServerReject Header = 0x006C
	HeaderSelectCharacter       Header = 0x0066
	HeaderMapServerSuccess      Header = 0x0071
	HeaderCharacterKeepAlive    Header = 0x0187
)

// CharacterEntry is one playable character in the account's roster.
type CharacterEntry struct {
	CharacterID uint32
	BaseLevel   uint32
	JobLevel    uint32
	Name        string
	Slot        uint8
	// RenameCount is present only for Version20220406 and later; older
	// bundles leave it zero.
	RenameCount uint32
}

const characterEntrySize = 4 + 4 + 4 + 24 + 1 + 3 // ids + name + slot + padding

// CharacterServerAcceptPacket is the variable-size character list reply.
type CharacterServerAcceptPacket struct {
	Characters []CharacterEntry
}

func DecodeCharacterServerAcceptPacket(r *wire.Reader) (any, error) {
	pkt := &CharacterServerAcceptPacket{}
	entrySize := characterEntrySize
	if r.Version.AtLeast(Version20220406) {
		entrySize += 4
	}
	for r.Remaining() >= entrySize {
		charID, err := r.U32()
		if err != nil {
			return nil, err
		}
		baseLevel, err := r.U32()
		if err != nil {
			return nil, err
		}
		jobLevel, err := r.U32()
		if err != nil {
			return nil, err
		}
		name, err := r.FixedString(24)
		if err != nil {
			return nil, err
		}
		slot, err := r.U8()
		if err != nil {
			return nil, err
		}
		if err := r.Skip(3); err != nil {
			return nil, err
		}
		entry := CharacterEntry{
			CharacterID: charID,
			BaseLevel:   baseLevel,
			JobLevel:    jobLevel,
			Name:        name,
			Slot:        slot,
		}
		if r.Version.AtLeast(Version20220406) {
			renameCount, err := r.U32()
			if err != nil {
				return nil, err
			}
			entry.RenameCount = renameCount
		}
		pkt.Characters = append(pkt.Characters, entry)
	}
	return pkt, nil
}

// EncodeCharacterServerAcceptPacket writes the version-gated RenameCount
// field whenever version is at least Version20220406.
func EncodeCharacterServerAcceptPacket(v any, w *wire.Writer) (int, error) {
	pkt := v.(*CharacterServerAcceptPacket)
	start := w.Len()
	for _, c := range pkt.Characters {
		w.U32(c.CharacterID)
		w.U32(c.BaseLevel)
		w.U32(c.JobLevel)
		w.FixedString(c.Name, 24)
		w.U8(c.Slot)
		w.U8(0)
		w.U8(0)
		w.U8(0)
		if c.RenameCount != 0 {
			w.U32(c.RenameCount)
		}
	}
	return w.Len() - start, nil
}

// SelectCharacterPacket is the fixed-size request to enter the world
// with one roster slot.
type SelectCharacterPacket struct {
	Slot uint8
}

func DecodeSelectCharacterPacket(r *wire.Reader) (any, error) {
	slot, err := r.U8()
	if err != nil {
		return nil, err
	}
	return &SelectCharacterPacket{Slot: slot}, nil
}

func EncodeSelectCharacterPacket(v any, w *wire.Writer) (int, error) {
	pkt := v.(*SelectCharacterPacket)
	start := w.Len()
	w.U8(pkt.Slot)
	return w.Len() - start, nil
}

// MapServerSuccessPacket carries the map-server endpoint and character
// id the character stage hands forward to the map stage.
type MapServerSuccessPacket struct {
	CharacterID uint32
	MapName     string
	Address     [4]uint8
	Port        uint16
}

func DecodeMapServerSuccessPacket(r *wire.Reader) (any, error) {
	charID, err := r.U32()
	if err != nil {
		return nil, err
	}
	mapName, err := r.FixedString(16)
	if err != nil {
		return nil, err
	}
	addrBytes, err := r.Bytes(4)
	if err != nil {
		return nil, err
	}
	port, err := r.U16()
	if err != nil {
		return nil, err
	}
	pkt := &MapServerSuccessPacket{CharacterID: charID, MapName: stripGatSuffix(mapName), Port: port}
	copy(pkt.Address[:], addrBytes)
	return pkt, nil
}

func EncodeMapServerSuccessPacket(v any, w *wire.Writer) (int, error) {
	pkt := v.(*MapServerSuccessPacket)
	start := w.Len()
	w.U32(pkt.CharacterID)
	w.FixedString(pkt.MapName, 16)
	w.RawBytes(pkt.Address[:4])
	w.U16(pkt.Port)
	return w.Len() - start, nil
}

// CharacterKeepAlivePacket carries no fields.
type CharacterKeepAlivePacket struct{}

func DecodeCharacterKeepAlivePacket(r *wire.Reader) (any, error) {
	return &CharacterKeepAlivePacket{}, nil
}

func EncodeCharacterKeepAlivePacket(v any, w *wire.Writer) (int, error) {
	return 0, nil
}
