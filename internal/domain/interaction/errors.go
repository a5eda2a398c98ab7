package interaction

import "errors"

// Sentinel kinds for interaction errors.
var (
	ErrMisalignedBars = errors.New("bars and records differ in length")
)
