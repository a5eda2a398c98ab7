package format_test

import (
	"testing"
	"time"

	"github.com/okian/chartkit/internal/domain/format"
)

func TestSI(t *testing.T) {
	tests := []struct {
		name      string
		value     float64
		precision int
		want      string
	}{
		{"millions", 1234567, 3, "1.23M"},
		{"rounds up", 5_296_000, 3, "5.30M"},
		{"thousands", 987_654, 3, "988k"},
		{"units", 500, 3, "500"},
		{"padded", 12, 3, "12.0"},
		{"zero", 0, 3, "0.00"},
		{"milli", 0.0042, 2, "4.2m"},
		{"negative", -2500, 2, "-2.5k"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := format.SI(tt.value, tt.precision); got != tt.want {
				t.Errorf("SI(%v, %d) = %q, want %q", tt.value, tt.precision, got, tt.want)
			}
		})
	}
}

func TestSITrim(t *testing.T) {
	tests := []struct {
		value float64
		want  string
	}{
		{0, "0"},
		{500_000, "500k"},
		{1_000_000, "1M"},
		{1_500_000, "1.5M"},
		{5_000_000, "5M"},
	}
	for _, tt := range tests {
		if got := format.SITrim(tt.value); got != tt.want {
			t.Errorf("SITrim(%v) = %q, want %q", tt.value, got, tt.want)
		}
	}
}

func TestLabels(t *testing.T) {
	d := time.Date(2020, time.March, 7, 0, 0, 0, 0, time.UTC)
	if got := format.WeekdayDate(d); got != "Sat 3/7/2020" {
		t.Errorf("WeekdayDate = %q", got)
	}
	if got := format.MonthYear(d); got != "Mar 2020" {
		t.Errorf("MonthYear = %q", got)
	}
	if got := format.Riders(1234567); got != "1.23M Riders" {
		t.Errorf("Riders = %q", got)
	}
	if got := format.Number(2.5); got != "2.5" {
		t.Errorf("Number = %q", got)
	}
}
