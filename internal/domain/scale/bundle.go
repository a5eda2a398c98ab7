package scale

import (
	"fmt"
	"time"

	"github.com/okian/chartkit/internal/domain/model"
)

// Box is a chart's outer size together with the margins around its plot area.
type Box struct {
	Width, Height float64
	Margin        model.Margin
}

// Inner returns the plot area as [x0, x1] × [y0, y1].
func (b Box) Inner() (x0, x1, y0, y1 float64) {
	return b.Margin.Left, b.Width - b.Margin.Right, b.Margin.Top, b.Height - b.Margin.Bottom
}

// Contains reports whether (x, y) lies inside the plot area.
func (b Box) Contains(x, y float64) bool {
	x0, x1, y0, y1 := b.Inner()
	return x >= x0 && x <= x1 && y >= y0 && y <= y1
}

func (b Box) validate() error {
	x0, x1, y0, y1 := b.Inner()
	if x1 <= x0 || y1 <= y0 {
		return fmt.Errorf("box %gx%g with margins %+v: %w", b.Width, b.Height, b.Margin, ErrDegenerateRange)
	}
	return nil
}

// ScatterBundle holds the scales of one scatter panel.
type ScatterBundle struct {
	Version uint64
	Box     Box
	X, Y    Linear
}

// NewScatterBundle builds the x and y scales of a scatter panel over fixed domains.
func NewScatterBundle(version uint64, box Box, xDomain, yDomain [2]float64) (ScatterBundle, error) {
	if err := box.validate(); err != nil {
		return ScatterBundle{}, err
	}
	x0, x1, y0, y1 := box.Inner()
	xs, err := NewLinear(xDomain[0], xDomain[1], x0, x1)
	if err != nil {
		return ScatterBundle{}, err
	}
	// Screen y grows downward: the domain low maps to the bottom edge.
	ys, err := NewLinear(yDomain[0], yDomain[1], y1, y0)
	if err != nil {
		return ScatterBundle{}, err
	}
	return ScatterBundle{Version: version, Box: box, X: xs, Y: ys}, nil
}

// RidershipBundle holds the scales of the ridership chart.
type RidershipBundle struct {
	Version uint64
	Box     Box
	X       Time
	Y       Linear
	Band    Band
}

// NewRidershipBundle builds the time, value and band scales of the ridership
// chart. first and last bound the selected records, keys enumerate them, and
// ceiling is the fixed top of the value axis.
func NewRidershipBundle(version uint64, box Box, first, last time.Time, keys []string, ceiling float64) (RidershipBundle, error) {
	if err := box.validate(); err != nil {
		return RidershipBundle{}, err
	}
	x0, x1, y0, y1 := box.Inner()
	xs, err := NewTime(first, last, x0, x1)
	if err != nil {
		return RidershipBundle{}, err
	}
	ys, err := NewLinear(0, ceiling, y1, y0)
	if err != nil {
		return RidershipBundle{}, err
	}
	band, err := NewBand(keys, x0, x1)
	if err != nil {
		return RidershipBundle{}, err
	}
	return RidershipBundle{Version: version, Box: box, X: xs, Y: ys, Band: band}, nil
}
