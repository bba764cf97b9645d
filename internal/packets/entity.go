package packets

import "github.com/ernie/valkyrie-client/internal/wire"

// Position is a 2D map tile coordinate.
type Position struct {
	X, Y uint16
}

// EntitySnapshot is the normalized form of the three "entity appeared"
// wire variants: stationary-new, stationary-existing, and
// moving. Destination is non-nil only for the moving variant.
type EntitySnapshot struct {
	EntityID     uint32
	SpriteJob    uint16
	HeadDirection uint8
	Position     Position
	Destination  *Position
	Health       uint32
	MaxHealth    uint32
	Sex          Sex
	Size         uint8
}

// DecodeEntityStationaryNew decodes the variant sent when a never-before-
// seen entity appears standing still.
func DecodeEntityStationaryNew(r *wire.Reader) (EntitySnapshot, error) {
	return decodeEntityCommon(r, false)
}

// DecodeEntityStationaryExisting decodes the variant sent when an
// already-known entity is reported standing still (e.g. after a map
// refresh). The wire shape is identical to the "new" variant; the
// distinction only matters to the handler deciding whether to emit
// AddEntity or merely refresh state.
func DecodeEntityStationaryExisting(r *wire.Reader) (EntitySnapshot, error) {
	return decodeEntityCommon(r, false)
}

// DecodeEntityMoving decodes the variant sent when an entity appears
// already walking toward a destination tile.
func DecodeEntityMoving(r *wire.Reader) (EntitySnapshot, error) {
	return decodeEntityCommon(r, true)
}

func decodeEntityCommon(r *wire.Reader, moving bool) (EntitySnapshot, error) {
	entityID, err := r.U32()
	if err != nil {
		return EntitySnapshot{}, err
	}
	spriteJob, err := r.U16()
	if err != nil {
		return EntitySnapshot{}, err
	}
	headDirection, err := r.U8()
	if err != nil {
		return EntitySnapshot{}, err
	}
	posX, err := r.U16()
	if err != nil {
		return EntitySnapshot{}, err
	}
	posY, err := r.U16()
	if err != nil {
		return EntitySnapshot{}, err
	}
	snap := EntitySnapshot{
		EntityID:      entityID,
		SpriteJob:     spriteJob,
		HeadDirection: headDirection,
		Position:      Position{X: posX, Y: posY},
	}
	if moving {
		destX, err := r.U16()
		if err != nil {
			return EntitySnapshot{}, err
		}
		destY, err := r.U16()
		if err != nil {
			return EntitySnapshot{}, err
		}
		snap.Destination = &Position{X: destX, Y: destY}
	}
	health, err := r.U32()
	if err != nil {
		return EntitySnapshot{}, err
	}
	maxHealth, err := r.U32()
	if err != nil {
		return EntitySnapshot{}, err
	}
	sex, err := DecodeSex(r)
	if err != nil {
		return EntitySnapshot{}, err
	}
	size, err := r.U8()
	if err != nil {
		return EntitySnapshot{}, err
	}
	snap.Health = health
	snap.MaxHealth = maxHealth
	snap.Sex = sex
	snap.Size = size
	return snap, nil
}
