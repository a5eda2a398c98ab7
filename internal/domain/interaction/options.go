package interaction

import "github.com/okian/chartkit/pkg/logger"

// Option applies a configuration option to the Tracker.
type Option func(*Tracker)

// WithLogger sets a custom logger for the tracker.
func WithLogger(l logger.Logger) Option {
	return func(t *Tracker) {
		if l != nil {
			t.logger = l
		}
	}
}

// WithLayout sets the initial tooltip layout.
func WithLayout(l Layout) Option {
	return func(t *Tracker) {
		t.layout = l
	}
}

// WithID fixes the tooltip container id instead of generating one.
func WithID(id string) Option {
	return func(t *Tracker) {
		if id != "" {
			t.id = id
		}
	}
}
