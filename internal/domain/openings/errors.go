package openings

import "errors"

// Sentinel kinds for opening statistics errors.
var (
	ErrInvalidSide = errors.New("invalid side selector")
)
