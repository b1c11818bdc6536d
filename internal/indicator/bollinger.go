package indicator

import (
	"math"

	"github.com/Nikhil170404/Quantapp/internal/core"
)

// Default Bollinger parameters.
const (
	DefaultBollingerPeriod = 20
	DefaultBollingerK      = 2.0
)

// BollingerResult holds the bands at the most recent bar. PercentB is a
// fraction (0 at the lower band, 1 at the upper band), Bandwidth a
// percentage of the middle band.
type BollingerResult struct {
	Upper     float64
	Middle    float64
	Lower     float64
	PercentB  float64
	Bandwidth float64
}

// Bollinger computes bands as SMA ± k population standard deviations over
// the trailing window. Returns a neutral result with PercentB 0.5 when
// fewer than period closes are available; PercentB also falls back to
// 0.5 when the bands collapse to zero width.
func Bollinger(closes []float64, period int, k float64) BollingerResult {
	if period <= 0 || len(closes) < period {
		return BollingerResult{PercentB: 0.5}
	}

	window := closes[len(closes)-period:]
	var sum float64
	for _, p := range window {
		sum += p
	}
	mean := sum / float64(period)

	var variance float64
	for _, p := range window {
		variance += (p - mean) * (p - mean)
	}
	stddev := math.Sqrt(variance / float64(period))

	upper := mean + k*stddev
	lower := mean - k*stddev
	price := closes[len(closes)-1]

	percentB := 0.5
	if upper != lower {
		percentB = (price - lower) / (upper - lower)
	}
	var bandwidth float64
	if mean != 0 {
		bandwidth = (upper - lower) / mean * 100
	}

	return BollingerResult{
		Upper:     core.Round2(upper),
		Middle:    core.Round2(mean),
		Lower:     core.Round2(lower),
		PercentB:  core.Round3(percentB),
		Bandwidth: core.Round2(bandwidth),
	}
}
