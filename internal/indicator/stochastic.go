package indicator

import "github.com/Nikhil170404/Quantapp/internal/core"

// Default stochastic oscillator parameters.
const (
	DefaultStochasticK = 14
	DefaultStochasticD = 3
)

// Stochastic zones.
const (
	ZoneOverbought = "overbought"
	ZoneOversold   = "oversold"
	ZoneNeutral    = "neutral"
)

// StochasticResult holds %K, %D and the derived zone.
type StochasticResult struct {
	K    float64
	D    float64
	Zone string
}

// Stochastic computes the stochastic oscillator: %K over a kPeriod
// high/low window, %D as the dPeriod SMA of %K. Returns a neutral 50/50
// result when fewer than kPeriod+dPeriod-1 candles are available. A bar
// whose window has zero range contributes a neutral 50 to %K.
func Stochastic(s *core.Series, kPeriod, dPeriod int) StochasticResult {
	if kPeriod <= 0 || dPeriod <= 0 || s.Len() < kPeriod+dPeriod-1 {
		return StochasticResult{K: 50, D: 50, Zone: ZoneNeutral}
	}

	n := s.Len()
	kValues := make([]float64, 0, dPeriod)
	for i := n - dPeriod; i < n; i++ {
		kValues = append(kValues, percentK(s, i, kPeriod))
	}

	k := kValues[len(kValues)-1]
	var d float64
	for _, v := range kValues {
		d += v
	}
	d /= float64(dPeriod)

	zone := ZoneNeutral
	switch {
	case k > 80 && d > 80:
		zone = ZoneOverbought
	case k < 20 && d < 20:
		zone = ZoneOversold
	}

	return StochasticResult{K: core.Round2(k), D: core.Round2(d), Zone: zone}
}

// percentK computes raw %K at bar i over the trailing kPeriod window.
func percentK(s *core.Series, i, kPeriod int) float64 {
	lo := s.Lows[i]
	hi := s.Highs[i]
	for j := i - kPeriod + 1; j <= i; j++ {
		if s.Highs[j] > hi {
			hi = s.Highs[j]
		}
		if s.Lows[j] < lo {
			lo = s.Lows[j]
		}
	}
	if hi == lo {
		return 50
	}
	return (s.Closes[i] - lo) / (hi - lo) * 100
}
