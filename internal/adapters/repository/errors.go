package repository

import "errors"

// Sentinel kinds for snapshot errors.
var (
	ErrNotFound = errors.New("no snapshot published")
	ErrStale    = errors.New("snapshot older than the published one")
)
