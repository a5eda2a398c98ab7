package geometry

import (
	"time"

	"github.com/okian/chartkit/internal/domain/format"
	"github.com/okian/chartkit/internal/domain/model"
	"github.com/okian/chartkit/internal/domain/scale"
)

// TagWeekend marks bars that fall on a Saturday or Sunday.
const TagWeekend = "weekend"

// Annotation colours.
const (
	AnnotationStroke = "#202020"
	AnnotationText   = "#303030"
)

// RecordKey identifies a ridership record inside the band scale.
func RecordKey(r model.TimeSeriesRecord) string {
	return r.Date.Format(time.DateOnly)
}

// RecordKeys returns the band domain for records.
func RecordKeys(records []model.TimeSeriesRecord) []string {
	keys := make([]string, len(records))
	for i, r := range records {
		keys[i] = RecordKey(r)
	}
	return keys
}

// ProjectRidership draws one bar per record plus both axes. Bars keep the
// order of records.
func ProjectRidership(records []model.TimeSeriesRecord, b scale.RidershipBundle) Group {
	x0, x1, y0, y1 := b.Box.Inner()
	width := b.Band.Bandwidth()
	base := b.Y.Map(0)

	bars := Group{Class: "bars"}
	for _, rec := range records {
		top := b.Y.Map(rec.Ridership)
		bar := Rect{
			Key: RecordKey(rec),
			X:   b.X.Map(rec.Date), Y: top,
			Width: width, Height: base - top,
			Style: Style{Class: "bar"},
		}
		if rec.IsWeekend() {
			bar.Tags = []string{TagWeekend}
		}
		bars.Primitives = append(bars.Primitives, bar)
	}

	chart := Group{Class: "ridership"}
	chart.Groups = append(chart.Groups,
		bars,
		BottomAxis("x-axis", timeTicks(b.X, ridershipXTicks), x0, x1, y1),
		LeftAxis("y-axis", siTicks(b.Y, ridershipYTicks), y1, y0, x0),
	)
	return chart
}

// ProjectAnnotations draws a connector and a label per annotation.
func ProjectAnnotations(records []model.AnnotationRecord, b scale.RidershipBundle) Group {
	g := Group{Class: "annotations"}
	for _, a := range records {
		x := b.X.Map(a.Date)
		end := b.Y.Map(a.Length)
		g.Primitives = append(g.Primitives,
			Line{
				X1: x, Y1: b.Y.Map(a.Value) - 2, X2: x, Y2: end,
				Style: Style{Class: "annotation", Stroke: AnnotationStroke, StrokeWidth: 0.5},
			},
			Text{
				X: x, Y: end - 2, Anchor: a.Justify, Content: a.Message,
				Style: Style{Class: "annotation", Fill: AnnotationText},
			},
		)
	}
	return g
}

// RidershipScene stacks the chart, its annotations and the tooltip overlay.
func RidershipScene(id string, b scale.RidershipBundle, groups ...Group) Scene {
	return Scene{ID: id, Width: b.Box.Width, Height: b.Box.Height, Groups: groups}
}

func timeTicks(s scale.Time, n int) []Tick {
	values := s.Ticks(n)
	ticks := make([]Tick, len(values))
	for i, v := range values {
		ticks[i] = Tick{Pos: s.Map(v), Label: format.MonthYear(v)}
	}
	return ticks
}

// siTicks labels only even tick indices to keep the value axis readable.
func siTicks(s scale.Linear, n int) []Tick {
	values := s.Ticks(n)
	ticks := make([]Tick, len(values))
	for i, v := range values {
		ticks[i] = Tick{Pos: s.Map(v)}
		if i%2 == 0 {
			ticks[i].Label = format.SITrim(v)
		}
	}
	return ticks
}
