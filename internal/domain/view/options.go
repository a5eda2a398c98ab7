package view

import (
	"context"

	"github.com/okian/chartkit/internal/domain/interaction"
	"github.com/okian/chartkit/pkg/logger"
)

// Observer is called after every successful pass, on the updating goroutine.
type Observer func(ctx context.Context, d Derived)

// Option applies a configuration option to the Controller.
type Option func(*Controller)

// WithLogger sets a custom logger for the controller.
func WithLogger(l logger.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithCeiling overrides the ridership value axis top.
func WithCeiling(ceiling float64) Option {
	return func(c *Controller) {
		if ceiling > 0 {
			c.ceiling = ceiling
		}
	}
}

// WithDefaultYears sets the initial selection. Years outside the dataset are
// dropped; if none remain every year is selected.
func WithDefaultYears(years ...string) Option {
	return func(c *Controller) {
		if len(years) > 0 {
			c.defaultYears = years
		}
	}
}

// WithShowInfo sets whether annotations start visible. They do by default.
func WithShowInfo(show bool) Option {
	return func(c *Controller) {
		c.showInfo = show
	}
}

// WithTracker sets the hover tracker driven by pointer events.
func WithTracker(t *interaction.Tracker) Option {
	return func(c *Controller) {
		if t != nil {
			c.tracker = t
		}
	}
}

// WithTooltipLayout sets the tooltip offsets and width; the viewport width is
// filled in on every pass.
func WithTooltipLayout(l interaction.Layout) Option {
	return func(c *Controller) {
		c.layout = l
	}
}

// WithObserver registers fn to receive every derived view.
func WithObserver(fn Observer) Option {
	return func(c *Controller) {
		if fn != nil {
			c.observers = append(c.observers, fn)
		}
	}
}

// WithSession sets the id embedded in scene ids.
func WithSession(id string) Option {
	return func(c *Controller) {
		c.session = id
	}
}
