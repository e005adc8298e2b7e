package assets

import "fmt"

// MaxAssetNameLength bounds template and script names.
const MaxAssetNameLength = 64

// ValidateAssetName accepts names made of ASCII letters, digits, '_' and
// '-', without extension. Separators and dots never reach the filesystem.
func ValidateAssetName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	}
	if len(name) > MaxAssetNameLength {
		return fmt.Errorf("%w: %q is longer than %d characters", ErrInvalidAssetName, name, MaxAssetNameLength)
	}
	for i := 0; i < len(name); i++ {
		if !isNameByte(name[i]) {
			return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
		}
	}
	return nil
}

func isNameByte(c byte) bool {
	return c >= 'a' && c <= 'z' ||
		c >= 'A' && c <= 'Z' ||
		c >= '0' && c <= '9' ||
		c == '_' || c == '-'
}
