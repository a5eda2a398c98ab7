package dataset

import "errors"

// Sentinel kinds for dataset errors.
var (
	ErrUnsupportedFormat = errors.New("unsupported dataset format")
	ErrInvalidRecord     = errors.New("invalid dataset record")
	ErrEmptyDataset      = errors.New("dataset is empty")
)
