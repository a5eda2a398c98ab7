// Package model contains domain models passed between layers.
package model

import (
	"strconv"
	"strings"
	"time"
)

// TextAnchor mirrors the SVG text-anchor attribute.
type TextAnchor string

// Supported text anchors.
const (
	AnchorStart  TextAnchor = "start"
	AnchorMiddle TextAnchor = "middle"
	AnchorEnd    TextAnchor = "end"
)

// ParseTextAnchor maps a free-form justify value onto a TextAnchor.
// Unknown values fall back to AnchorStart.
func ParseTextAnchor(s string) TextAnchor {
	switch TextAnchor(strings.ToLower(strings.TrimSpace(s))) {
	case AnchorMiddle:
		return AnchorMiddle
	case AnchorEnd:
		return AnchorEnd
	default:
		return AnchorStart
	}
}

// ScatterRecord is one point of a scatter partition (an Anscombe dataset).
type ScatterRecord struct {
	ID      int
	Dataset string // partition key, e.g. "I".."IV"
	X       float64
	Y       float64
}

// TimeSeriesRecord is one day of subway ridership.
type TimeSeriesRecord struct {
	Date      time.Time
	Ridership float64
}

// Year returns the partition key of the record.
func (r TimeSeriesRecord) Year() string {
	return strconv.Itoa(r.Date.Year())
}

// IsWeekend reports whether the record falls on a Saturday or Sunday.
func (r TimeSeriesRecord) IsWeekend() bool {
	d := r.Date.Weekday()
	return d == time.Sunday || d == time.Saturday
}

// AnnotationRecord is an explanatory label pinned to a date on the ridership chart.
type AnnotationRecord struct {
	Date    time.Time
	Value   float64 // where the connector starts (data units)
	Length  float64 // where the connector ends and the text sits (data units)
	Message string
	Justify TextAnchor
}

// Year returns the partition key of the annotation.
func (a AnnotationRecord) Year() string {
	return strconv.Itoa(a.Date.Year())
}

// Datasets bundles the immutable inputs loaded at startup.
type Datasets struct {
	Scatter     []ScatterRecord
	Ridership   []TimeSeriesRecord
	Annotations []AnnotationRecord
}

// ScatterPartitions returns the distinct scatter partition keys in first-seen order.
func (d Datasets) ScatterPartitions() []string {
	var keys []string
	seen := make(map[string]struct{})
	for _, r := range d.Scatter {
		if _, ok := seen[r.Dataset]; ok {
			continue
		}
		seen[r.Dataset] = struct{}{}
		keys = append(keys, r.Dataset)
	}
	return keys
}

// Years returns the sorted ridership partition universe.
func (d Datasets) Years() []string {
	keys := make([]string, 0, len(d.Ridership))
	for _, r := range d.Ridership {
		keys = append(keys, r.Year())
	}
	return NewFilter(keys...).Keys()
}
