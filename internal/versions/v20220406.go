package versions

import (
	"github.com/ernie/valkyrie-client/internal/events"
	"github.com/ernie/valkyrie-client/internal/packets"
	"github.com/ernie/valkyrie-client/internal/registry"
)

// Bundle20220406 builds the handler bundle for the 20220406 packet-set
// version: the newer ground-skill-unit notification carries the full
// 4-byte UnitID, and CharacterServerAcceptPacket gains the version-gated
// RenameCount field.
func Bundle20220406() (*registry.Bundle, error) {
	bundle := registry.NewBundle(packets.Version20220406)

	if err := registerCommonLogin(bundle.Login); err != nil {
		return nil, err
	}
	if err := registerCommonCharacter(bundle.Character); err != nil {
		return nil, err
	}
	if err := registerCommonMap(bundle.Map); err != nil {
		return nil, err
	}

	err := bundle.Map.Register(
		packets.Descriptor{Header: packets.HeaderNotifySkillUnit, Size: packets.SizeClass{Fixed: 16}},
		packets.DecodeNotifySkillUnitPacket,
		registry.UnitEvent(func(p *packets.NotifySkillUnitPacket) events.Event {
			return &events.AddSkillUnit{
				UnitObjectID: p.UnitObjectID,
				SourceID:     p.SourceID,
				Position:     p.Position,
				Kind:         p.UnitKind,
			}
		}),
	)
	if err != nil {
		return nil, err
	}

	return bundle, nil
}
