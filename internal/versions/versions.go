package versions

import (
	"fmt"

	"github.com/ernie/valkyrie-client/internal/registry"
)

// Tag identifies a bundled packet-set version by its date-like name
// of wire-compatible packet definitions.
type Tag string

const (
	Tag20120307 Tag = "20120307"
	Tag20220406 Tag = "20220406"
)

// BundleFor builds the named version's handler bundle. The orchestrator
// chooses exactly one at startup from configuration; bundles never mix.
func BundleFor(tag Tag) (*registry.Bundle, error) {
	switch tag {
	case Tag20120307:
		return Bundle20120307()
	case Tag20220406:
		return Bundle20220406()
	default:
		return nil, fmt.Errorf("unsupported packet-set version %q", tag)
	}
}
