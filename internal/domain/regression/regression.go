// Package regression fits ordinary least-squares lines to scatter partitions.
package regression

import (
	"fmt"
	"math"

	"github.com/aclements/go-moremath/vec"
)

// Point is one (x, y) observation.
type Point struct {
	X, Y float64
}

// Line is y = Slope·x + Intercept.
type Line struct {
	Slope     float64
	Intercept float64
}

// Fit returns the closed-form OLS line through points.
//
//	slope     = (n·Sxy − Sx·Sy) / (n·Sxx − Sx²)
//	intercept = (Sy − slope·Sx) / n
func Fit(points []Point) (Line, error) {
	n := float64(len(points))
	if n == 0 {
		return Line{}, ErrEmptyInput
	}
	var sx, sy, sxy, sxx float64
	for _, p := range points {
		sx += p.X
		sy += p.Y
		sxy += p.X * p.Y
		sxx += p.X * p.X
	}
	den := n*sxx - sx*sx
	if den == 0 {
		return Line{}, fmt.Errorf("%d points at x=%g: %w", len(points), points[0].X, ErrSingular)
	}
	slope := (n*sxy - sx*sy) / den
	return Line{Slope: slope, Intercept: (sy - slope*sx) / n}, nil
}

// At evaluates the line at x.
func (l Line) At(x float64) float64 {
	return l.Slope*x + l.Intercept
}

// Sample evaluates the line on the grid lo, lo+step, ..., hi. The grid depends
// only on the arguments, so the overlay spans the whole axis regardless of
// where the data lie.
func (l Line) Sample(lo, hi, step float64) ([]Point, error) {
	if step <= 0 || math.IsNaN(step) {
		return nil, ErrBadStep
	}
	num := int(math.Round((hi-lo)/step)) + 1
	if num < 1 {
		return nil, nil
	}
	xs := vec.Linspace(lo, hi, num)
	ys := vec.Map(l.At, xs)
	out := make([]Point, len(xs))
	for i := range xs {
		out[i] = Point{X: xs[i], Y: ys[i]}
	}
	return out, nil
}
