package model

import "time"

// EventKind identifies a UI event forwarded by the page shell.
type EventKind string

// Supported UI events.
const (
	EventReady        EventKind = "ready"         // container attached and measured
	EventResize       EventKind = "resize"        // container size changed
	EventSetFilter    EventKind = "set_filter"    // replace the selected years
	EventToggleYear   EventKind = "toggle_year"   // one checkbox changed
	EventToggleInfo   EventKind = "toggle_info"   // show/hide annotations
	EventPointerMove  EventKind = "pointer_move"  // pointer moved over the ridership chart
	EventPointerLeave EventKind = "pointer_leave" // pointer left the ridership chart
)

// Event is a UI interaction submitted by clients.
// Only the fields relevant to Kind are read.
type Event struct {
	EventID string    // unique id for tracing
	Kind    EventKind // what happened
	Width   float64   // ready, resize
	Height  float64   // ready, resize; zero derives it from Width
	Years   []string  // set_filter
	Year    string    // toggle_year
	Checked bool      // toggle_year
	X, Y    float64   // pointer_move, in chart pixels
	TS      time.Time // event timestamp
}
