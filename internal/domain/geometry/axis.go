package geometry

import (
	"fmt"

	"github.com/okian/chartkit/internal/domain/model"
)

const (
	tickSize    = 6
	tickPadding = 3
	// baseline offsets approximating 0.71em and 0.32em at a 10px font.
	bottomLabelDY = 7.1
	leftLabelDY   = 3.2
)

var axisStyle = Style{Stroke: "currentColor", Fill: "none"}
var labelStyle = Style{Fill: "currentColor"}

// Tick is one labelled position on an axis, in pixels.
type Tick struct {
	Pos   float64
	Label string
}

// BottomAxis draws a horizontal axis spanning [r0, r1] translated to y.
func BottomAxis(class string, ticks []Tick, r0, r1, y float64) Group {
	g := Group{Class: class, Transform: translate(0, y)}
	g.Primitives = append(g.Primitives, Polyline{
		Points: []Point{{r0, tickSize}, {r0, 0}, {r1, 0}, {r1, tickSize}},
		Style:  withClass(axisStyle, "domain"),
	})
	for _, t := range ticks {
		g.Primitives = append(g.Primitives,
			Line{X1: t.Pos, Y1: 0, X2: t.Pos, Y2: tickSize, Style: withClass(axisStyle, "tick")},
			Text{
				X: t.Pos, Y: tickSize + tickPadding + bottomLabelDY,
				Anchor: model.AnchorMiddle, Content: t.Label,
				Style: withClass(labelStyle, "tick"),
			},
		)
	}
	return g
}

// LeftAxis draws a vertical axis spanning [r0, r1] translated to x.
func LeftAxis(class string, ticks []Tick, r0, r1, x float64) Group {
	g := Group{Class: class, Transform: translate(x, 0)}
	g.Primitives = append(g.Primitives, Polyline{
		Points: []Point{{-tickSize, r0}, {0, r0}, {0, r1}, {-tickSize, r1}},
		Style:  withClass(axisStyle, "domain"),
	})
	for _, t := range ticks {
		g.Primitives = append(g.Primitives,
			Line{X1: 0, Y1: t.Pos, X2: -tickSize, Y2: t.Pos, Style: withClass(axisStyle, "tick")},
			Text{
				X: -(tickSize + tickPadding), Y: t.Pos + leftLabelDY,
				Anchor: model.AnchorEnd, Content: t.Label,
				Style: withClass(labelStyle, "tick"),
			},
		)
	}
	return g
}

func translate(x, y float64) string {
	return fmt.Sprintf("translate(%g,%g)", x, y)
}

func withClass(s Style, class string) Style {
	s.Class = class
	return s
}
