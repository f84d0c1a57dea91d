package engine

import (
	"math"
	"strconv"
)

// Num formats v in its shortest exact form: 2, -0.5, 1e-07.
func Num(v float64) string {
	if v == 0 {
		return "0"
	}
	if a := math.Abs(v); a < 1e-4 || a >= 1e15 {
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Fixed formats v with dp decimal places. Negative zero prints as zero.
func Fixed(v float64, dp int) string {
	s := strconv.FormatFloat(v, 'f', dp, 64)
	if z, err := strconv.ParseFloat(s, 64); err == nil && z == 0 && math.Signbit(z) {
		return s[1:]
	}
	return s
}

// Paren wraps negative numbers in parentheses for substitution steps.
func Paren(v float64) string {
	if v < 0 {
		return "(" + Num(v) + ")"
	}
	return Num(v)
}
