package core

import "math"

// Round2 rounds to 2 decimal places. Monetary figures and percentages
// are rounded with it at the point of computation; the rounding is part
// of the observable contract, not presentation.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Round3 rounds to 3 decimal places, used for ratios expressed as
// fractions (e.g. Bollinger %B).
func Round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
