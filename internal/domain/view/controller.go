package view

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/okian/chartkit/internal/domain/geometry"
	"github.com/okian/chartkit/internal/domain/interaction"
	"github.com/okian/chartkit/internal/domain/model"
	"github.com/okian/chartkit/internal/domain/regression"
	"github.com/okian/chartkit/internal/domain/scale"
	"github.com/okian/chartkit/pkg/logger"
	"github.com/okian/chartkit/pkg/metrics"
)

// Controller owns the filter, the viewport and the info toggle, and runs a
// full pass after every change. One pass runs at a time; an update issued
// while a pass is running fails with ErrReentrantUpdate.
type Controller struct {
	mu       sync.RWMutex
	updating atomic.Bool

	data         model.Datasets
	universe     model.Filter
	defaultYears []string
	filter       model.Filter
	viewport     model.Viewport
	ready        bool
	showInfo     bool
	ceiling      float64
	version      uint64
	session      string
	derived      *Derived

	tracker   *interaction.Tracker
	layout    interaction.Layout
	observers []Observer
	logger    logger.Logger
}

// NewController creates a controller over data. Ridership and annotations are
// ordered by date; the inputs are not modified.
func NewController(data model.Datasets, opts ...Option) *Controller {
	c := &Controller{
		defaultYears: DefaultYears,
		ceiling:      DefaultRidershipCeiling,
		showInfo:     true,
		session:      uuid.NewString(),
		layout:       interaction.DefaultLayout(0),
		logger:       logger.Get().Named("view"),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.tracker == nil {
		c.tracker = interaction.NewTracker(interaction.WithLayout(c.layout))
	}

	c.data = model.Datasets{
		Scatter:     slices.Clone(data.Scatter),
		Ridership:   slices.Clone(data.Ridership),
		Annotations: slices.Clone(data.Annotations),
	}
	slices.SortStableFunc(c.data.Ridership, func(a, b model.TimeSeriesRecord) int { return a.Date.Compare(b.Date) })
	slices.SortStableFunc(c.data.Annotations, func(a, b model.AnnotationRecord) int { return a.Date.Compare(b.Date) })

	c.universe = model.NewFilter(c.data.Years()...)
	c.filter = c.initialFilter()
	return c
}

func (c *Controller) initialFilter() model.Filter {
	var keep []string
	for _, y := range c.defaultYears {
		if c.universe.Contains(y) {
			keep = append(keep, y)
		}
	}
	if len(keep) == 0 {
		return c.universe
	}
	return model.NewFilter(keep...)
}

// Ready marks the container as attached and measured, then runs the first pass.
func (c *Controller) Ready(ctx context.Context, v model.Viewport) error {
	_, err := c.update(ctx, "ready", func() (bool, error) {
		c.mu.Lock()
		defer c.mu.Unlock()
		c.ready = true
		c.viewport = normalize(v)
		return true, nil
	})
	return err
}

// SetViewport replaces the viewport. A zero height is derived from the width.
func (c *Controller) SetViewport(ctx context.Context, width, height float64) error {
	_, err := c.update(ctx, "resize", func() (bool, error) {
		c.mu.Lock()
		defer c.mu.Unlock()
		c.viewport = normalize(model.Viewport{Width: width, Height: height})
		return true, nil
	})
	return err
}

// SetFilter replaces the selected years. An empty selection is ignored and
// reported as not applied; keys outside the universe are rejected.
func (c *Controller) SetFilter(ctx context.Context, keys []string) (bool, error) {
	return c.update(ctx, "set_filter", func() (bool, error) {
		return c.applyFilter(ctx, model.NewFilter(keys...))
	})
}

// Toggle adds or removes one year, like a checkbox.
func (c *Controller) Toggle(ctx context.Context, key string, checked bool) (bool, error) {
	return c.update(ctx, "toggle_year", func() (bool, error) {
		c.mu.RLock()
		next := c.filter.Without(key)
		if checked {
			next = c.filter.With(key)
		}
		c.mu.RUnlock()
		return c.applyFilter(ctx, next)
	})
}

func (c *Controller) applyFilter(ctx context.Context, f model.Filter) (bool, error) {
	if f.Empty() {
		c.logger.Debug(ctx, "empty filter ignored")
		metrics.RecordFilterRejected("empty")
		return false, nil
	}
	if !f.SubsetOf(c.universe) {
		var unknown []string
		for _, k := range f.Keys() {
			if !c.universe.Contains(k) {
				unknown = append(unknown, k)
			}
		}
		metrics.RecordFilterRejected("unknown_key")
		return false, fmt.Errorf("%s: %w", strings.Join(unknown, ","), ErrUnknownKey)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if f.Equal(c.filter) {
		return false, nil
	}
	c.filter = f
	return true, nil
}

// ToggleInfo shows or hides the annotations.
func (c *Controller) ToggleInfo(ctx context.Context) error {
	_, err := c.update(ctx, "toggle_info", func() (bool, error) {
		c.mu.Lock()
		defer c.mu.Unlock()
		c.showInfo = !c.showInfo
		return true, nil
	})
	return err
}

// Recompute runs a pass over the current state.
func (c *Controller) Recompute(ctx context.Context) error {
	_, err := c.update(ctx, "recompute", func() (bool, error) { return true, nil })
	return err
}

// update applies mutate and, if it changed anything, runs a pass. The
// updating flag is held across both so observers cannot nest updates.
func (c *Controller) update(ctx context.Context, op string, mutate func() (bool, error)) (bool, error) {
	if !c.updating.CompareAndSwap(false, true) {
		c.logger.Warn(ctx, "reentrant update rejected", logger.String("op", op))
		metrics.RecordErrorByComponent("view", "reentrant")
		return false, ErrReentrantUpdate
	}
	defer c.updating.Store(false)

	changed, err := mutate()
	if err != nil || !changed {
		return changed, err
	}
	return true, c.recompute(ctx)
}

func (c *Controller) recompute(ctx context.Context) error {
	start := time.Now()
	c.mu.Lock()
	if !c.ready || !c.viewport.Valid() {
		c.mu.Unlock()
		metrics.RecordRecompute("missing_viewport", 0)
		return ErrMissingViewport
	}
	c.version++
	in := Input{
		Version:  c.version,
		Session:  c.session,
		Data:     c.data,
		Filter:   c.filter,
		Viewport: c.viewport,
		ShowInfo: c.showInfo,
		Ceiling:  c.ceiling,
	}
	c.mu.Unlock()

	d, err := Derive(in)
	if err != nil {
		metrics.RecordRecompute("error", msSince(start))
		return err
	}
	c.report(ctx, d)

	c.mu.Lock()
	c.derived = &d
	c.mu.Unlock()

	layout := c.layout
	layout.ViewportWidth = in.Viewport.Width
	c.tracker.SetLayout(layout)
	if s := c.tracker.State(); s.Active != nil && !d.HasRecord(geometry.RecordKey(*s.Active)) {
		c.tracker.Reset(ctx)
	}

	result := "ok"
	if len(d.Issues) > 0 {
		result = "partial"
	}
	metrics.RecordRecompute(result, msSince(start))
	if d.Ridership != nil {
		metrics.UpdateSelectedRecords(len(d.Ridership.Records))
	}

	for _, fn := range c.observers {
		fn(ctx, d)
	}
	return nil
}

func (c *Controller) report(ctx context.Context, d Derived) {
	for _, is := range d.Issues {
		fields := []logger.Field{logger.String("chart", is.Chart), logger.Error(is.Err)}
		if is.Partition != "" {
			fields = append(fields, logger.String("partition", is.Partition))
		}
		switch {
		case errors.Is(is.Err, regression.ErrSingular):
			metrics.RecordRegressionSingular()
			c.logger.Warn(ctx, "regression overlay omitted", fields...)
		case errors.Is(is.Err, scale.ErrDegenerateDomain), errors.Is(is.Err, scale.ErrDegenerateRange):
			metrics.RecordDegenerateDomain(is.Chart)
			c.logger.Warn(ctx, "chart skipped", fields...)
		default:
			c.logger.Warn(ctx, "chart issue", fields...)
		}
	}
}

// Pointer feeds a pointer position over the ridership chart to the tracker.
func (c *Controller) Pointer(ctx context.Context, x, y float64) (interaction.HoverState, error) {
	d, ok := c.Derived()
	if !ok || d.Ridership == nil {
		return c.tracker.Leave(ctx), nil
	}
	if !d.Ridership.Bundle.Box.Contains(x, y) {
		c.tracker.Move(ctx, x, y)
		return c.tracker.Leave(ctx), nil
	}
	return c.tracker.Pointer(ctx, x, y, d.Ridership.Bars, d.Ridership.Records)
}

// PointerLeave hides the tooltip.
func (c *Controller) PointerLeave(ctx context.Context) interaction.HoverState {
	return c.tracker.Leave(ctx)
}

// Derived returns the latest pass result.
func (c *Controller) Derived() (Derived, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.derived == nil {
		return Derived{}, false
	}
	return *c.derived, true
}

// Filter returns the active selection.
func (c *Controller) Filter() model.Filter {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.filter
}

// Universe returns every selectable year.
func (c *Controller) Universe() model.Filter { return c.universe }

// Viewport returns the current viewport.
func (c *Controller) Viewport() model.Viewport {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.viewport
}

// ShowInfo reports whether annotations are visible.
func (c *Controller) ShowInfo() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.showInfo
}

// Tracker returns the hover tracker.
func (c *Controller) Tracker() *interaction.Tracker { return c.tracker }

func normalize(v model.Viewport) model.Viewport {
	if v.Height <= 0 && v.Width > 0 {
		v.Height = v.Width * geometry.GoldenRatio
	}
	return v
}

func msSince(t time.Time) float64 {
	return float64(time.Since(t).Microseconds()) / 1000
}
