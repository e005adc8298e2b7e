package main

import (
	"errors"

	sitegen "github.com/alnah/go-sitegen"
	"github.com/alnah/go-sitegen/internal/config"
)

// Exit codes for the sitegen CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage.
const (
	ExitSuccess = 0 // Build finished, warnings included
	ExitGeneral = 1 // Build could not run
	ExitUsage   = 2 // Invalid flags or config
)

// exitCodeFor returns the appropriate exit code for an error.
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	if errors.Is(err, ErrUsage) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, sitegen.ErrInvalidAssetPath) {
		return ExitUsage
	}

	return ExitGeneral
}
