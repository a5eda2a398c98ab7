package repository

import "time"

// Option applies a configuration option to the AtomicStore.
type Option func(*AtomicStore)

// WithClock overrides the publish timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *AtomicStore) {
		if now != nil {
			s.now = now
		}
	}
}
