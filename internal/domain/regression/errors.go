package regression

import "errors"

// Sentinel kinds for regression errors.
var (
	ErrEmptyInput = errors.New("regression input is empty")
	ErrSingular   = errors.New("regression input has zero x variance")
	ErrBadStep    = errors.New("sample step must be positive")
)
