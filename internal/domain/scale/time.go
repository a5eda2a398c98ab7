package scale

import "time"

// monthSteps are the tick spacings, in months, tried from finest to coarsest.
var monthSteps = []int{1, 2, 3, 6, 12, 24, 60, 120}

// Time is a continuous scale over timestamps, linear in elapsed duration.
type Time struct {
	t0, t1 time.Time
	r0, r1 float64
}

// NewTime returns a time scale. Equal endpoints are rejected with
// ErrDegenerateDomain.
func NewTime(t0, t1 time.Time, r0, r1 float64) (Time, error) {
	if t0.Equal(t1) {
		return Time{}, degenerate("time", t0.Format(time.RFC3339), t1.Format(time.RFC3339))
	}
	return Time{t0: t0, t1: t1, r0: r0, r1: r1}, nil
}

// Domain returns the input interval.
func (s Time) Domain() (t0, t1 time.Time) { return s.t0, s.t1 }

// Range returns the output interval.
func (s Time) Range() (r0, r1 float64) { return s.r0, s.r1 }

// Map projects t into the range.
func (s Time) Map(t time.Time) float64 {
	frac := float64(t.Sub(s.t0)) / float64(s.t1.Sub(s.t0))
	return interpolate(s.r0, s.r1, frac)
}

// Invert maps a pixel back to a timestamp.
func (s Time) Invert(px float64) time.Time {
	frac := (px - s.r0) / (s.r1 - s.r0)
	return s.t0.Add(time.Duration(frac * float64(s.t1.Sub(s.t0))))
}

// Ticks returns at most n month-aligned ticks inside the domain.
func (s Time) Ticks(n int) []time.Time {
	if n < 1 {
		return nil
	}
	lo, hi := s.t0, s.t1
	if hi.Before(lo) {
		lo, hi = hi, lo
	}
	first := time.Date(lo.Year(), lo.Month(), 1, 0, 0, 0, 0, lo.Location())
	if first.Before(lo) {
		first = first.AddDate(0, 1, 0)
	}
	for _, step := range monthSteps {
		// Align coarse steps to calendar boundaries, e.g. quarters start in Jan/Apr/Jul/Oct.
		start := first
		if step <= 12 {
			for int(start.Month()-1)%step != 0 {
				start = start.AddDate(0, 1, 0)
			}
		}
		var ticks []time.Time
		for t := start; !t.After(hi); t = t.AddDate(0, step, 0) {
			ticks = append(ticks, t)
			if len(ticks) > n {
				break
			}
		}
		if len(ticks) <= n {
			return ticks
		}
	}
	return []time.Time{lo, hi}
}
