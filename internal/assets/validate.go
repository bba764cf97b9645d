package assets

import (
	"bytes"
	"fmt"

	"github.com/ftrvxmtrx/tga"
	"golang.org/x/image/bmp"
)

// validateFallbackBytes decode-validates fallback asset bytes for the
// two entries in fallbackTable that name an image format this package
// can actually decode (.tga, .bmp). A corrupt fallback asset is the
// worst possible miss — it's the thing every other miss falls back to —
// so it fails loudly at lookup time instead of reaching a caller as
// bytes that merely look like a .tga or .bmp file.
func validateFallbackBytes(ext string, data []byte) error {
	switch ext {
	case ".tga":
		if _, err := tga.Decode(bytes.NewReader(data)); err != nil {
			return fmt.Errorf("decode-validate %s fallback: %w", ext, err)
		}
	case ".bmp":
		if _, err := bmp.Decode(bytes.NewReader(data)); err != nil {
			return fmt.Errorf("decode-validate %s fallback: %w", ext, err)
		}
	}
	return nil
}
