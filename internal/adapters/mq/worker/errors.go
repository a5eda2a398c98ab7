package worker

import "errors"

// ErrUnknownEvent is returned for events the dispatcher cannot route.
var ErrUnknownEvent = errors.New("unknown event kind")
