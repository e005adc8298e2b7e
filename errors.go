package sitegen

import "errors"

// Sentinel errors for library operations.
var (
	ErrNilConfig        = errors.New("config cannot be nil")
	ErrInvalidAssetPath = errors.New("invalid templates directory")
	ErrFeedSetup        = errors.New("feed sync setup failed")
)
