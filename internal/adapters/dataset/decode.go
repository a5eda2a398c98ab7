// Package dataset loads the chart datasets from JSON or YAML files, or from
// the copies embedded in the binary.
package dataset

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"

	"github.com/okian/chartkit/internal/domain/model"
)

// Format is a dataset file encoding.
type Format string

// Supported formats.
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatOf picks the format from a file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%s: %w", path, ErrUnsupportedFormat)
	}
}

// dateLayouts are tried in order when parsing record dates.
var dateLayouts = []string{
	"2006-01-02T15:04:05.000",
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	time.DateOnly,
}

type scatterRow struct {
	ID      any    `json:"id" yaml:"id"`
	Dataset string `json:"dataset" yaml:"dataset"`
	X       any    `json:"x" yaml:"x"`
	Y       any    `json:"y" yaml:"y"`
}

type ridershipRow struct {
	Date    string `json:"date" yaml:"date"`
	Subways any    `json:"subways_total_estimated_ridership" yaml:"subways_total_estimated_ridership"`
}

type annotationRow struct {
	Date    string `json:"date" yaml:"date"`
	Value   any    `json:"value" yaml:"value"`
	Length  any    `json:"length" yaml:"length"`
	Message string `json:"message" yaml:"message"`
	Justify string `json:"justify" yaml:"justify"`
}

func decodeRows[T any](r io.Reader, f Format) ([]T, error) {
	var rows []T
	var err error
	switch f {
	case FormatJSON:
		err = json.NewDecoder(r).Decode(&rows)
	case FormatYAML:
		err = yaml.NewDecoder(r).Decode(&rows)
		if err == io.EOF {
			err = nil
		}
	default:
		return nil, fmt.Errorf("%q: %w", f, ErrUnsupportedFormat)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", f, err)
	}
	return rows, nil
}

// DecodeScatter reads scatter records.
func DecodeScatter(r io.Reader, f Format) ([]model.ScatterRecord, error) {
	rows, err := decodeRows[scatterRow](r, f)
	if err != nil {
		return nil, err
	}
	out := make([]model.ScatterRecord, 0, len(rows))
	for i, row := range rows {
		id, err := cast.ToIntE(row.ID)
		if err != nil {
			return nil, invalid("scatter", i, "id", err)
		}
		x, err := cast.ToFloat64E(row.X)
		if err != nil {
			return nil, invalid("scatter", i, "x", err)
		}
		y, err := cast.ToFloat64E(row.Y)
		if err != nil {
			return nil, invalid("scatter", i, "y", err)
		}
		if row.Dataset == "" {
			return nil, invalid("scatter", i, "dataset", ErrEmptyDataset)
		}
		out = append(out, model.ScatterRecord{ID: id, Dataset: row.Dataset, X: x, Y: y})
	}
	return out, nil
}

// DecodeRidership reads daily ridership records. Fields other than the date
// and the subway total are ignored.
func DecodeRidership(r io.Reader, f Format) ([]model.TimeSeriesRecord, error) {
	rows, err := decodeRows[ridershipRow](r, f)
	if err != nil {
		return nil, err
	}
	out := make([]model.TimeSeriesRecord, 0, len(rows))
	for i, row := range rows {
		d, err := ParseDate(row.Date)
		if err != nil {
			return nil, invalid("ridership", i, "date", err)
		}
		v, err := cast.ToFloat64E(row.Subways)
		if err != nil {
			return nil, invalid("ridership", i, "subways_total_estimated_ridership", err)
		}
		out = append(out, model.TimeSeriesRecord{Date: d, Ridership: v})
	}
	return out, nil
}

// DecodeAnnotations reads annotation records.
func DecodeAnnotations(r io.Reader, f Format) ([]model.AnnotationRecord, error) {
	rows, err := decodeRows[annotationRow](r, f)
	if err != nil {
		return nil, err
	}
	out := make([]model.AnnotationRecord, 0, len(rows))
	for i, row := range rows {
		d, err := ParseDate(row.Date)
		if err != nil {
			return nil, invalid("annotations", i, "date", err)
		}
		v, err := cast.ToFloat64E(row.Value)
		if err != nil {
			return nil, invalid("annotations", i, "value", err)
		}
		l, err := cast.ToFloat64E(row.Length)
		if err != nil {
			return nil, invalid("annotations", i, "length", err)
		}
		out = append(out, model.AnnotationRecord{
			Date: d, Value: v, Length: l,
			Message: row.Message, Justify: model.ParseTextAnchor(row.Justify),
		})
	}
	return out, nil
}

// ParseDate reads an ISO date or timestamp and returns midnight UTC of that
// calendar day.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised date %q", s)
}

func invalid(set string, row int, field string, err error) error {
	return fmt.Errorf("%s row %d field %s: %w: %w", set, row, field, ErrInvalidRecord, err)
}
