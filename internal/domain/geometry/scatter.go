package geometry

import (
	"github.com/okian/chartkit/internal/domain/format"
	"github.com/okian/chartkit/internal/domain/model"
	"github.com/okian/chartkit/internal/domain/regression"
	"github.com/okian/chartkit/internal/domain/scale"
)

// Scatter colours.
const (
	PointFill       = "#202020"
	RegressionColor = "#ff7300"
)

// ProjectScatter draws one Anscombe panel: a circle per record, the
// regression overlay sampled across the full x domain when line is non-nil,
// and both axes.
func ProjectScatter(records []model.ScatterRecord, b scale.ScatterBundle, line *regression.Line) Group {
	x0, x1, y0, y1 := b.Box.Inner()
	r := b.Box.Height / 100

	points := Group{Class: "points"}
	for _, rec := range records {
		points.Primitives = append(points.Primitives, Circle{
			CX: b.X.Map(rec.X), CY: b.Y.Map(rec.Y), R: r,
			Style: Style{Class: "point", Fill: PointFill},
		})
	}

	panel := Group{Class: "scatter"}
	panel.Groups = append(panel.Groups,
		BottomAxis("x-axis", linearTicks(b.X, scatterXTicks), x0, x1, y1),
		LeftAxis("y-axis", linearTicks(b.Y, scatterYTicks), y1, y0, x0),
		points,
	)
	if line != nil {
		panel.Groups = append(panel.Groups, regressionGroup(*line, b))
	}
	return panel
}

func regressionGroup(line regression.Line, b scale.ScatterBundle) Group {
	lo, hi := b.X.Domain()
	samples, err := line.Sample(lo, hi, regressionStep)
	if err != nil {
		return Group{Class: "regression"}
	}
	pl := Polyline{Style: Style{Class: "regression", Fill: "none", Stroke: RegressionColor, StrokeWidth: 1}}
	for _, s := range samples {
		pl.Points = append(pl.Points, Point{X: b.X.Map(s.X), Y: b.Y.Map(s.Y)})
	}
	return Group{Class: "regression", Primitives: []Primitive{pl}}
}

func linearTicks(s scale.Linear, n int) []Tick {
	values := s.Ticks(n)
	ticks := make([]Tick, len(values))
	for i, v := range values {
		ticks[i] = Tick{Pos: s.Map(v), Label: format.Number(v)}
	}
	return ticks
}

// QuartetScene lays panels out two per row inside a container of the given
// width.
func QuartetScene(id string, containerWidth float64, box scale.Box, panels []Group) Scene {
	rows := (len(panels) + 1) / 2
	s := Scene{ID: id, Width: containerWidth, Height: float64(rows) * box.Height}
	for i, p := range panels {
		p.Transform = translate(float64(i%2)*box.Width, float64(i/2)*box.Height)
		s.Groups = append(s.Groups, p)
	}
	return s
}
