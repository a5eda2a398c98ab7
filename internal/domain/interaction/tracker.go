package interaction

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/okian/chartkit/internal/domain/geometry"
	"github.com/okian/chartkit/internal/domain/model"
	"github.com/okian/chartkit/pkg/logger"
	"github.com/okian/chartkit/pkg/metrics"
)

// Tracker owns one hover state and the tooltip container it drives.
// The container id is fixed for the tracker's lifetime.
type Tracker struct {
	mu     sync.RWMutex
	id     string
	state  HoverState
	layout Layout
	logger logger.Logger
}

// NewTracker creates an idle tracker.
func NewTracker(opts ...Option) *Tracker {
	t := &Tracker{
		id:     "tooltip-" + uuid.NewString(),
		state:  Idle(),
		layout: DefaultLayout(0),
		logger: logger.Get().Named("interaction"),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// ID returns the tooltip container id.
func (t *Tracker) ID() string { return t.id }

// State returns a copy of the current hover state.
func (t *Tracker) State() HoverState {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.state
}

// SetLayout replaces the placement bounds, e.g. after a resize, and
// re-anchors the tooltip.
func (t *Tracker) SetLayout(l Layout) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.layout = l
	t.state = Move(t.state, t.state.PointerX, t.state.PointerY, l)
}

// Enter starts or continues hovering over rec.
func (t *Tracker) Enter(ctx context.Context, rec model.TimeSeriesRecord) HoverState {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.state.Same(rec) {
		t.logger.Debug(ctx, "hover enter", logger.String("date", geometry.RecordKey(rec)))
		metrics.RecordHoverTransition("enter")
	}
	t.state = Enter(t.state, rec, t.layout)
	return t.state
}

// Move repositions the tooltip under the pointer.
func (t *Tracker) Move(_ context.Context, x, y float64) HoverState {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.state = Move(t.state, x, y, t.layout)
	metrics.RecordHoverTransition("move")
	return t.state
}

// Leave ends hovering.
func (t *Tracker) Leave(ctx context.Context) HoverState {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state.Phase == PhaseHovering {
		t.logger.Debug(ctx, "hover leave")
		metrics.RecordHoverTransition("leave")
	}
	t.state = Leave(t.state)
	return t.state
}

// Pointer turns a raw pointer position into enter, move and leave
// transitions against the drawn bars. bars[i] must be the projection of
// records[i].
func (t *Tracker) Pointer(ctx context.Context, x, y float64, bars []geometry.Rect, records []model.TimeSeriesRecord) (HoverState, error) {
	if len(bars) != len(records) {
		return t.State(), fmt.Errorf("%d bars, %d records: %w", len(bars), len(records), ErrMisalignedBars)
	}
	t.Move(ctx, x, y)
	i, ok := HitTest(bars, x, y)
	if !ok {
		return t.Leave(ctx), nil
	}
	return t.Enter(ctx, records[i]), nil
}

// Reset forgets the active record, e.g. when the filter drops it.
func (t *Tracker) Reset(ctx context.Context) {
	t.Leave(ctx)
}

// Group draws the tooltip overlay for the current state.
func (t *Tracker) Group() geometry.Group {
	s := t.State()
	return geometry.ProjectTooltip(t.id, s.Tooltip.X, s.Tooltip.Y, s.Tooltip.Content, !s.Tooltip.Visible)
}
