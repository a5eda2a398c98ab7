package queue

import "errors"

// Reasons an event is dropped.
var (
	ErrClosed = errors.New("queue closed")
	ErrFull   = errors.New("queue full")
)
