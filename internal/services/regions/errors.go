package regions

import "errors"

var (
	// ErrRegionNotFound is returned when a region ID is unknown
	ErrRegionNotFound = errors.New("region not found")

	// ErrRegionTooShort is returned when a span does not exceed the minimum region length
	ErrRegionTooShort = errors.New("region span does not exceed minimum length")

	// ErrInvalidBounds is returned when a span has negative or inverted bounds
	ErrInvalidBounds = errors.New("invalid region bounds")
)
