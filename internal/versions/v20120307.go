package versions

import (
	"github.com/ernie/valkyrie-client/internal/events"
	"github.com/ernie/valkyrie-client/internal/packets"
	"github.com/ernie/valkyrie-client/internal/registry"
)

// Bundle20120307 builds the handler bundle for the 20120307 packet-set
// version: the legacy ground-skill-unit notification carries only a
// 1-byte unit id with no published mapping to UnitID, decoded
// via the documented Safetywall placeholder.
func Bundle20120307() (*registry.Bundle, error) {
	bundle := registry.NewBundle(packets.Version20120307)

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
		packets.Descriptor{Header: packets.HeaderNotifySkillUnitOld, Size: packets.SizeClass{Fixed: 13}},
		packets.DecodeNotifySkillUnitOldPacket,
		registry.UnitEvent(func(p *packets.NotifySkillUnitOldPacket) events.Event {
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
