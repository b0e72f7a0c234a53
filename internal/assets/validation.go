package assets

import (
	"fmt"
	"strings"
)

// ValidateAssetName rejects empty names and names carrying separators or
// dots, which would let a caller pick another extension or directory.
func ValidateAssetName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	}
	if strings.ContainsAny(name, "/\\.\x00") {
		return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
	}
	return nil
}
