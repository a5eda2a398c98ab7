// Package geometry projects records through scale bundles into a scene graph
// that a render surface can draw. Every function here is pure.
package geometry

import "github.com/okian/chartkit/internal/domain/model"

// Kind names a primitive type in serialized scenes.
type Kind string

// Primitive kinds.
const (
	KindCircle   Kind = "circle"
	KindRect     Kind = "rect"
	KindLine     Kind = "line"
	KindPolyline Kind = "polyline"
	KindText     Kind = "text"
)

// Style carries the presentation attributes shared by all primitives.
// Zero values are left to the stylesheet.
type Style struct {
	Class       string  `json:"class,omitempty"`
	Fill        string  `json:"fill,omitempty"`
	Stroke      string  `json:"stroke,omitempty"`
	StrokeWidth float64 `json:"strokeWidth,omitempty"`
}

// Primitive is a drawable leaf of the scene graph.
type Primitive interface {
	Kind() Kind
}

// Point is a screen-space coordinate.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Circle is a filled disc.
type Circle struct {
	CX    float64 `json:"cx"`
	CY    float64 `json:"cy"`
	R     float64 `json:"r"`
	Style Style   `json:"style"`
}

// Rect is an axis-aligned rectangle. Key identifies the record it was
// projected from, Tags are extra classes such as "weekend".
type Rect struct {
	Key    string   `json:"key,omitempty"`
	X      float64  `json:"x"`
	Y      float64  `json:"y"`
	Width  float64  `json:"width"`
	Height float64  `json:"height"`
	Rx     float64  `json:"rx,omitempty"`
	Tags   []string `json:"tags,omitempty"`
	Style  Style    `json:"style"`
}

// Line is a straight segment.
type Line struct {
	X1    float64 `json:"x1"`
	Y1    float64 `json:"y1"`
	X2    float64 `json:"x2"`
	Y2    float64 `json:"y2"`
	Style Style   `json:"style"`
}

// Polyline is an open path through Points.
type Polyline struct {
	Points []Point `json:"points"`
	Style  Style   `json:"style"`
}

// Text is a label anchored at (X, Y).
type Text struct {
	X       float64          `json:"x"`
	Y       float64          `json:"y"`
	Anchor  model.TextAnchor `json:"anchor"`
	Content string           `json:"content"`
	Style   Style            `json:"style"`
}

func (Circle) Kind() Kind   { return KindCircle }
func (Rect) Kind() Kind     { return KindRect }
func (Line) Kind() Kind     { return KindLine }
func (Polyline) Kind() Kind { return KindPolyline }
func (Text) Kind() Kind     { return KindText }

// Contains reports whether (x, y) falls on the rect. The right edge is
// exclusive so adjacent bands never overlap.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y <= r.Y+r.Height
}

// Group is a node of the scene graph.
type Group struct {
	ID         string      `json:"id,omitempty"`
	Class      string      `json:"class,omitempty"`
	Transform  string      `json:"transform,omitempty"`
	Hidden     bool        `json:"hidden,omitempty"`
	Primitives []Primitive `json:"primitives,omitempty"`
	Groups     []Group     `json:"groups,omitempty"`
}

// Find returns the first group, depth first, whose ID or Class equals name.
func (g Group) Find(name string) (Group, bool) {
	if g.ID == name || g.Class == name {
		return g, true
	}
	for _, c := range g.Groups {
		if f, ok := c.Find(name); ok {
			return f, true
		}
	}
	return Group{}, false
}

// Rects returns the rects held directly by the group.
func (g Group) Rects() []Rect {
	var out []Rect
	for _, p := range g.Primitives {
		if r, ok := p.(Rect); ok {
			out = append(out, r)
		}
	}
	return out
}

// Scene is the root of a drawable chart.
type Scene struct {
	ID     string  `json:"id"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Groups []Group `json:"groups"`
}

// Find searches the scene's top-level groups and their children.
func (s Scene) Find(name string) (Group, bool) {
	for _, g := range s.Groups {
		if f, ok := g.Find(name); ok {
			return f, true
		}
	}
	return Group{}, false
}
