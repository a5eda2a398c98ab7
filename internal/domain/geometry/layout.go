package geometry

import (
	"math"

	"github.com/okian/chartkit/internal/domain/model"
	"github.com/okian/chartkit/internal/domain/scale"
)

// Scatter panel layout.
var (
	ScatterMargin  = model.Margin{Top: 10, Right: 20, Bottom: 25, Left: 25}
	ScatterXDomain = [2]float64{0, 20}
	ScatterYDomain = [2]float64{0, 13}
)

// Ridership chart layout.
var RidershipMargin = model.Margin{Top: 50, Right: 10, Bottom: 25, Left: 35}

const (
	scatterWidthRatio  = 0.45
	scatterHeightRatio = 0.8
	scatterHeightShare = 0.33

	// GoldenRatio derives the ridership chart height from its width.
	GoldenRatio = 0.618

	scatterYTicks   = 6
	scatterXTicks   = 10
	ridershipYTicks = 10
	ridershipXTicks = 10

	regressionStep = 1.0
)

// ScatterBox sizes one Anscombe panel for a container width.
func ScatterBox(containerWidth float64) scale.Box {
	return scale.Box{
		Width:  containerWidth * scatterWidthRatio,
		Height: math.Ceil(containerWidth*scatterHeightRatio) * scatterHeightShare,
		Margin: ScatterMargin,
	}
}

// RidershipBox sizes the ridership chart for a viewport. A zero height is
// derived from the width.
func RidershipBox(v model.Viewport) scale.Box {
	h := v.Height
	if h <= 0 {
		h = v.Width * GoldenRatio
	}
	return scale.Box{Width: v.Width, Height: h, Margin: RidershipMargin}
}
