// Package format renders numbers and dates the way chart labels show them.
package format

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// siPrefixes runs from yocto (1e-24) to yotta (1e24); index 8 is the unit.
var siPrefixes = [...]string{"y", "z", "a", "f", "p", "n", "µ", "m", "", "k", "M", "G", "T", "P", "E", "Z", "Y"}

const defaultTrimPrecision = 6

// SI formats v with precision significant digits and an SI prefix,
// e.g. SI(1234567, 3) == "1.23M" and SI(500, 3) == "500".
func SI(v float64, precision int) string {
	if precision < 1 {
		precision = 1
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	digits, exp := decimalParts(v, precision)
	k := floorDiv(exp, 3)
	if k < -8 {
		k = -8
	} else if k > 8 {
		k = 8
	}
	i := exp - 3*k + 1
	n := len(digits)
	var body string
	switch {
	case i == n:
		body = digits
	case i > n:
		body = digits + strings.Repeat("0", i-n)
	case i > 0:
		body = digits[:i] + "." + digits[i:]
	default:
		rest, _ := decimalParts(v, max(1, precision+i-1))
		body = "0." + strings.Repeat("0", -i) + rest
	}
	return sign + body + siPrefixes[k+8]
}

// SITrim is SI with insignificant trailing zeros removed, e.g. "5M", "500k".
func SITrim(v float64) string {
	s := SI(v, defaultTrimPrecision)
	end := len(s)
	for end > 0 && !isDigit(s[end-1]) {
		end--
	}
	num, prefix := s[:end], s[end:]
	if strings.Contains(num, ".") {
		num = strings.TrimRight(num, "0")
		num = strings.TrimSuffix(num, ".")
	}
	return num + prefix
}

// Riders is the tooltip headline for a ridership value.
func Riders(v float64) string {
	return SI(v, 3) + " Riders"
}

// WeekdayDate renders a day as "Mon 1/2/2006".
func WeekdayDate(t time.Time) string {
	return t.Format("Mon 1/2/2006")
}

// MonthYear renders a time axis label, e.g. "Mar 2020".
func MonthYear(t time.Time) string {
	return t.Format("Jan 2006")
}

// Number renders a plain axis value without trailing zeros.
func Number(v float64) string {
	if v == 0 {
		return "0"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// decimalParts returns the significant digits of v rounded to precision
// digits, and the decimal exponent of the first digit.
func decimalParts(v float64, precision int) (string, int) {
	s := strconv.FormatFloat(v, 'e', precision-1, 64)
	mant, expPart, _ := strings.Cut(s, "e")
	exp, _ := strconv.Atoi(expPart)
	return strings.Replace(mant, ".", "", 1), exp
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
