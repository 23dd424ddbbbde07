package util

import (
	"math"
	"strconv"
	"strings"
)

// FormatFloat prints f the way answers quote numbers: shortest round-trip
// digits, at least one decimal for integral values ("10.0"), exponent form
// only for very large or very small magnitudes.
func FormatFloat(f float64) string {
	if f == 0 {
		return "0.0"
	}
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	if abs := math.Abs(f); abs >= 1e16 || abs < 1e-4 {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// RoundFloat rounds f to the given number of decimal places.
func RoundFloat(f float64, places int) float64 {
	p := math.Pow(10, float64(places))
	r := math.Round(f*p) / p
	if math.IsInf(r, 0) || math.IsNaN(r) {
		return f
	}
	return r
}
