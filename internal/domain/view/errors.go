package view

import "errors"

// Sentinel kinds for view errors.
var (
	ErrMissingViewport = errors.New("viewport not measured")
	ErrReentrantUpdate = errors.New("update issued during a recompute pass")
	ErrUnknownKey      = errors.New("filter key outside the partition universe")
)

// Issue is a non-fatal failure inside a pass: one chart or one partition was
// skipped while the rest of the view was derived.
type Issue struct {
	Chart     string
	Partition string
	Err       error
}

func (i Issue) Error() string {
	if i.Partition != "" {
		return i.Chart + "/" + i.Partition + ": " + i.Err.Error()
	}
	return i.Chart + ": " + i.Err.Error()
}

func (i Issue) Unwrap() error { return i.Err }

// ErrNoRecords reports an empty ridership selection.
var ErrNoRecords = errors.New("no ridership records in the selection")
