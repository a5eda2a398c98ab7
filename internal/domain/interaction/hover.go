// Package interaction tracks pointer hover over the ridership bars and keeps
// the tooltip overlay in sync with it.
package interaction

import (
	"math"

	"github.com/okian/chartkit/internal/domain/format"
	"github.com/okian/chartkit/internal/domain/geometry"
	"github.com/okian/chartkit/internal/domain/model"
)

// Phase is the hover state machine position.
type Phase string

// Hover phases.
const (
	PhaseIdle     Phase = "idle"
	PhaseHovering Phase = "hovering"
)

// Default tooltip placement relative to the pointer.
const (
	DefaultOffsetX = 42
	DefaultOffsetY = 40
)

// Layout bounds where the tooltip may be placed.
type Layout struct {
	ViewportWidth float64
	OffsetX       float64
	OffsetY       float64
	TooltipWidth  float64
}

// DefaultLayout returns the standard tooltip placement for a viewport width.
func DefaultLayout(viewportWidth float64) Layout {
	return Layout{
		ViewportWidth: viewportWidth,
		OffsetX:       DefaultOffsetX,
		OffsetY:       DefaultOffsetY,
		TooltipWidth:  geometry.TooltipWidth,
	}
}

// Anchor returns the tooltip origin for a pointer at (x, y). The tooltip
// never leaves the viewport on the left, right or top edge.
func (l Layout) Anchor(x, y float64) (float64, float64) {
	right := math.Max(l.ViewportWidth-l.TooltipWidth, 0)
	ax := math.Min(math.Max(x-l.OffsetX, 0), right)
	ay := math.Max(y-l.OffsetY, 0)
	return ax, ay
}

// Tooltip is the overlay derived from the hover state.
type Tooltip struct {
	Visible bool
	X, Y    float64
	Content geometry.TooltipContent
}

// HoverState is the whole hover FSM state. It is a value: transitions return
// a new state and never mutate their input.
type HoverState struct {
	Phase    Phase
	Active   *model.TimeSeriesRecord
	PointerX float64
	PointerY float64
	Tooltip  Tooltip
}

// Idle returns the initial state.
func Idle() HoverState {
	return HoverState{Phase: PhaseIdle}
}

// Content derives the tooltip text for a record.
func Content(r model.TimeSeriesRecord) geometry.TooltipContent {
	return geometry.TooltipContent{
		Headline: format.Riders(r.Ridership),
		Detail:   format.WeekdayDate(r.Date),
	}
}

// Enter makes rec the active record and shows the tooltip at the last
// pointer position. Entering the same record twice yields the same state.
func Enter(s HoverState, rec model.TimeSeriesRecord, l Layout) HoverState {
	active := rec
	s.Phase = PhaseHovering
	s.Active = &active
	s.Tooltip.Visible = true
	s.Tooltip.Content = Content(rec)
	s.Tooltip.X, s.Tooltip.Y = l.Anchor(s.PointerX, s.PointerY)
	return s
}

// Move records the pointer and repositions the tooltip. The phase is left
// unchanged, so a move while idle keeps the tooltip hidden.
func Move(s HoverState, x, y float64, l Layout) HoverState {
	s.PointerX, s.PointerY = x, y
	s.Tooltip.X, s.Tooltip.Y = l.Anchor(x, y)
	return s
}

// Leave clears the active record and hides the tooltip.
func Leave(s HoverState) HoverState {
	s.Phase = PhaseIdle
	s.Active = nil
	s.Tooltip.Visible = false
	return s
}

// Same reports whether the state is hovering over rec.
func (s HoverState) Same(rec model.TimeSeriesRecord) bool {
	return s.Phase == PhaseHovering && s.Active != nil && s.Active.Date.Equal(rec.Date)
}

// HitTest returns the index of the topmost bar under (x, y). Later bars are
// drawn over earlier ones.
func HitTest(bars []geometry.Rect, x, y float64) (int, bool) {
	for i := len(bars) - 1; i >= 0; i-- {
		if bars[i].Contains(x, y) {
			return i, true
		}
	}
	return -1, false
}
