package scale

import (
	"errors"
	"fmt"
)

// Sentinel kinds for scale construction errors.
var (
	ErrDegenerateDomain = errors.New("degenerate scale domain")
	ErrDegenerateRange  = errors.New("degenerate scale range")
)

// DomainError describes which scale rejected its domain.
type DomainError struct {
	Scale  string
	Lo, Hi string
	Err    error
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("%s scale [%s, %s]: %v", e.Scale, e.Lo, e.Hi, e.Err)
}

func (e *DomainError) Unwrap() error { return e.Err }

func degenerate(kind string, lo, hi any) error {
	return &DomainError{Scale: kind, Lo: fmt.Sprint(lo), Hi: fmt.Sprint(hi), Err: ErrDegenerateDomain}
}
