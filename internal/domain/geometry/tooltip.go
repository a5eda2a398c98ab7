package geometry

import "github.com/okian/chartkit/internal/domain/model"

// Tooltip box dimensions in pixels.
const (
	TooltipWidth  = 96
	TooltipHeight = 32
)

// TooltipContent is the two-line text of the hover tooltip.
type TooltipContent struct {
	Headline string
	Detail   string
}

// ProjectTooltip draws the tooltip box at (x, y). The group keeps id across
// calls; hidden only toggles visibility.
func ProjectTooltip(id string, x, y float64, c TooltipContent, hidden bool) Group {
	return Group{
		ID:        id,
		Class:     "tooltip",
		Transform: translate(x, y),
		Hidden:    hidden,
		Primitives: []Primitive{
			Rect{
				Width: TooltipWidth, Height: TooltipHeight, Rx: 2.5,
				Style: Style{Class: "tooltip-box", Fill: "white", Stroke: "#40404050"},
			},
			Text{X: TooltipWidth / 2, Y: 15, Anchor: model.AnchorMiddle, Content: c.Headline, Style: Style{Class: "tooltip-headline", Fill: "red"}},
			Text{X: TooltipWidth / 2, Y: 27, Anchor: model.AnchorMiddle, Content: c.Detail, Style: Style{Class: "tooltip-detail", Fill: "black"}},
		},
	}
}
