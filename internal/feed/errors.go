package feed

import "errors"

// Sentinel errors recorded in a Report.
var (
	ErrUnexpectedStatus = errors.New("unexpected HTTP status")
	ErrResponseTooLarge = errors.New("response exceeds size limit")
	ErrNoEntries        = errors.New("feed has no usable entries")
	ErrFallbackFailed   = errors.New("fallback aggregator failed")
)
