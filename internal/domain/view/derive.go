// Package view owns the active filter and viewport and re-derives every
// chart from them.
package view

import (
	"errors"
	"slices"

	"github.com/okian/chartkit/internal/domain/geometry"
	"github.com/okian/chartkit/internal/domain/model"
	"github.com/okian/chartkit/internal/domain/regression"
	"github.com/okian/chartkit/internal/domain/scale"
)

// DefaultRidershipCeiling is the fixed top of the ridership value axis.
const DefaultRidershipCeiling = 5_500_000

// DefaultYears is the initial year selection.
var DefaultYears = []string{"2020", "2021", "2022"}

// Chart names used in issues, scene ids and metrics.
const (
	ChartAnscombe  = "anscombe"
	ChartRidership = "ridership"
)

// Input is everything one pass depends on.
type Input struct {
	Version  uint64
	Session  string
	Data     model.Datasets
	Filter   model.Filter
	Viewport model.Viewport
	ShowInfo bool
	Ceiling  float64
}

// Panel is one projected scatter partition.
type Panel struct {
	Key   string
	Line  *regression.Line
	Group geometry.Group
}

// ScatterView is the derived Anscombe quartet.
type ScatterView struct {
	Box    scale.Box
	Panels []Panel
}

// RidershipView is the derived ridership chart. Bars[i] is the projection of
// Records[i].
type RidershipView struct {
	Bundle      scale.RidershipBundle
	Records     []model.TimeSeriesRecord
	Annotations []model.AnnotationRecord
	Chart       geometry.Group
	Notes       geometry.Group
	Bars        []geometry.Rect
}

// Derived is the result of one pass. A nil chart was skipped; Issues says why.
type Derived struct {
	Version   uint64
	Session   string
	Filter    model.Filter
	Viewport  model.Viewport
	ShowInfo  bool
	Scatter   *ScatterView
	Ridership *RidershipView
	Issues    []Issue
}

// Derive runs a full pass: select, scale, fit, project. It is pure.
func Derive(in Input) (Derived, error) {
	if !in.Viewport.Valid() {
		return Derived{}, ErrMissingViewport
	}
	if in.Ceiling <= 0 {
		in.Ceiling = DefaultRidershipCeiling
	}
	out := Derived{
		Version:  in.Version,
		Session:  in.Session,
		Filter:   in.Filter,
		Viewport: in.Viewport,
		ShowInfo: in.ShowInfo,
	}

	sv, issues := deriveScatter(in)
	out.Scatter = sv
	out.Issues = append(out.Issues, issues...)

	rv, err := deriveRidership(in)
	if err != nil {
		out.Issues = append(out.Issues, Issue{Chart: ChartRidership, Err: err})
	}
	out.Ridership = rv
	return out, nil
}

func deriveScatter(in Input) (*ScatterView, []Issue) {
	box := geometry.ScatterBox(in.Viewport.Width)
	b, err := scale.NewScatterBundle(in.Version, box, geometry.ScatterXDomain, geometry.ScatterYDomain)
	if err != nil {
		return nil, []Issue{{Chart: ChartAnscombe, Err: err}}
	}
	var issues []Issue
	sv := &ScatterView{Box: box}
	for _, key := range in.Data.ScatterPartitions() {
		records := partition(in.Data.Scatter, key)
		pts := make([]regression.Point, len(records))
		for i, r := range records {
			pts[i] = regression.Point{X: r.X, Y: r.Y}
		}
		var line *regression.Line
		if l, err := regression.Fit(pts); err != nil {
			issues = append(issues, Issue{Chart: ChartAnscombe, Partition: key, Err: err})
		} else {
			line = &l
		}
		g := geometry.ProjectScatter(records, b, line)
		g.ID = ChartAnscombe + "-" + key
		sv.Panels = append(sv.Panels, Panel{Key: key, Line: line, Group: g})
	}
	return sv, issues
}

func deriveRidership(in Input) (*RidershipView, error) {
	var records []model.TimeSeriesRecord
	for _, r := range in.Data.Ridership {
		if in.Filter.Contains(r.Year()) {
			records = append(records, r)
		}
	}
	if len(records) == 0 {
		return nil, ErrNoRecords
	}
	first, last := records[0].Date, records[len(records)-1].Date
	b, err := scale.NewRidershipBundle(in.Version, geometry.RidershipBox(in.Viewport), first, last, geometry.RecordKeys(records), in.Ceiling)
	if err != nil {
		return nil, err
	}
	var notes []model.AnnotationRecord
	for _, a := range in.Data.Annotations {
		if in.Filter.Contains(a.Year()) {
			notes = append(notes, a)
		}
	}
	rv := &RidershipView{
		Bundle:      b,
		Records:     records,
		Annotations: notes,
		Chart:       geometry.ProjectRidership(records, b),
		Notes:       geometry.ProjectAnnotations(notes, b),
	}
	rv.Notes.Hidden = !in.ShowInfo
	if bars, ok := rv.Chart.Find("bars"); ok {
		rv.Bars = bars.Rects()
	}
	return rv, nil
}

func partition(records []model.ScatterRecord, key string) []model.ScatterRecord {
	var out []model.ScatterRecord
	for _, r := range records {
		if r.Dataset == key {
			out = append(out, r)
		}
	}
	return out
}

// ScatterScene assembles the quartet scene.
func (d Derived) ScatterScene() (geometry.Scene, bool) {
	if d.Scatter == nil {
		return geometry.Scene{}, false
	}
	panels := make([]geometry.Group, len(d.Scatter.Panels))
	for i, p := range d.Scatter.Panels {
		panels[i] = p.Group
	}
	return geometry.QuartetScene(sceneID(ChartAnscombe, d.Session), d.Viewport.Width, d.Scatter.Box, panels), true
}

// RidershipScene assembles the ridership scene with the tooltip overlay on top.
func (d Derived) RidershipScene(tooltip geometry.Group) (geometry.Scene, bool) {
	if d.Ridership == nil {
		return geometry.Scene{}, false
	}
	r := d.Ridership
	return geometry.RidershipScene(sceneID(ChartRidership, d.Session), r.Bundle, r.Chart, r.Notes, tooltip), true
}

// HasRecord reports whether the ridership selection contains a record for date key.
func (d Derived) HasRecord(key string) bool {
	if d.Ridership == nil {
		return false
	}
	return slices.ContainsFunc(d.Ridership.Records, func(r model.TimeSeriesRecord) bool {
		return geometry.RecordKey(r) == key
	})
}

// Degenerate reports whether any chart was skipped for a degenerate domain or range.
func (d Derived) Degenerate() bool {
	for _, is := range d.Issues {
		if errors.Is(is.Err, scale.ErrDegenerateDomain) || errors.Is(is.Err, scale.ErrDegenerateRange) {
			return true
		}
	}
	return false
}

func sceneID(chart, session string) string {
	if session == "" {
		return chart
	}
	return chart + "-" + session
}
