// Package scale maps data domains onto pixel ranges.
//
// All scales are immutable values. A scale is rebuilt, never adjusted, when its
// domain or range changes.
package scale

import (
	"math"

	"github.com/aclements/go-moremath/vec"
)

// Linear is a continuous affine mapping from [lo, hi] to [r0, r1].
type Linear struct {
	lo, hi float64
	r0, r1 float64
}

// NewLinear returns a linear scale. A zero-width or non-finite domain is
// rejected with ErrDegenerateDomain.
func NewLinear(lo, hi, r0, r1 float64) (Linear, error) {
	if lo == hi || !finite(lo) || !finite(hi) {
		return Linear{}, degenerate("linear", lo, hi)
	}
	return Linear{lo: lo, hi: hi, r0: r0, r1: r1}, nil
}

// Domain returns the input interval.
func (s Linear) Domain() (lo, hi float64) { return s.lo, s.hi }

// Range returns the output interval.
func (s Linear) Range() (r0, r1 float64) { return s.r0, s.r1 }

// Map projects x into the range. Values outside the domain extrapolate.
func (s Linear) Map(x float64) float64 {
	t := (x - s.lo) / (s.hi - s.lo)
	return interpolate(s.r0, s.r1, t)
}

// Invert maps a pixel back into the domain.
func (s Linear) Invert(px float64) float64 {
	t := (px - s.r0) / (s.r1 - s.r0)
	return interpolate(s.lo, s.hi, t)
}

// Ticks returns round tick values inside the domain. n is a hint: the step
// is 1, 2 or 5 times a power of ten, whichever gives closest to n intervals.
func (s Linear) Ticks(n int) []float64 {
	if n < 1 {
		return nil
	}
	lo, hi := math.Min(s.lo, s.hi), math.Max(s.lo, s.hi)
	i1, i2, inc := tickSpec(lo, hi, float64(n))
	if i2 < i1 && n == 1 {
		i1, i2, inc = tickSpec(lo, hi, 2)
	}
	if i2 < i1 {
		return nil
	}
	idx := vec.Linspace(i1, i2, int(i2-i1)+1)
	out := make([]float64, len(idx))
	for k, i := range idx {
		i = math.Round(i)
		// A negative increment is a reciprocal; dividing keeps 0.2 exact.
		if inc < 0 {
			out[k] = i / -inc
		} else {
			out[k] = i * inc
		}
	}
	return out
}

// Step thresholds between the 1, 2, 5 and 10 multipliers.
var (
	tickE10 = math.Sqrt(50)
	tickE5  = math.Sqrt(10)
	tickE2  = math.Sqrt(2)
)

// tickSpec returns the first and last tick index and the increment for
// about count intervals over [lo, hi]. Ticks are i*inc, or i/-inc when inc
// is negative.
func tickSpec(lo, hi, count float64) (i1, i2, inc float64) {
	step := (hi - lo) / count
	power := math.Floor(math.Log10(step))
	ratio := step / math.Pow(10, power)
	factor := 1.0
	switch {
	case ratio >= tickE10:
		factor = 10
	case ratio >= tickE5:
		factor = 5
	case ratio >= tickE2:
		factor = 2
	}
	if power < 0 {
		inc = math.Pow(10, -power) / factor
		i1, i2 = math.Round(lo*inc), math.Round(hi*inc)
		if i1/inc < lo {
			i1++
		}
		if i2/inc > hi {
			i2--
		}
		return i1, i2, -inc
	}
	inc = math.Pow(10, power) * factor
	i1, i2 = math.Round(lo/inc), math.Round(hi/inc)
	if i1*inc < lo {
		i1++
	}
	if i2*inc > hi {
		i2--
	}
	return i1, i2, inc
}

// interpolate returns a at t == 0 and b at t == 1, exactly.
func interpolate(a, b, t float64) float64 {
	return a*(1-t) + b*t
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
