package indicator

import (
	"math"

	"github.com/Nikhil170404/Quantapp/internal/core"
)

// DefaultADXPeriod is the standard ADX lookback.
const DefaultADXPeriod = 14

// Trend strength buckets derived from the ADX value.
const (
	TrendWeak       = "weak"
	TrendModerate   = "moderate"
	TrendStrong     = "strong"
	TrendVeryStrong = "very_strong"
)

// ADXResult holds the Average Directional Index and the directional
// indicators at the most recent bar.
type ADXResult struct {
	ADX     float64
	PlusDI  float64
	MinusDI float64
	Trend   string
}

// ADX computes Wilder's Average Directional Index. Returns a zero result
// bucketed as weak when fewer than 2·period candles are available.
func ADX(s *core.Series, period int) ADXResult {
	n := s.Len()
	if period <= 0 || n < 2*period {
		return ADXResult{Trend: TrendWeak}
	}

	// Directional movement and true range per bar.
	plusDM := make([]float64, n-1)
	minusDM := make([]float64, n-1)
	tr := make([]float64, n-1)
	for i := 1; i < n; i++ {
		upMove := s.Highs[i] - s.Highs[i-1]
		downMove := s.Lows[i-1] - s.Lows[i]
		if upMove > downMove && upMove > 0 {
			plusDM[i-1] = upMove
		}
		if downMove > upMove && downMove > 0 {
			minusDM[i-1] = downMove
		}
		tr[i-1] = TrueRange(s.Highs[i], s.Lows[i], s.Closes[i-1])
	}

	// Wilder accumulation: seed with the first period sum, then
	// smoothed = smoothed - smoothed/period + current.
	var smPlus, smMinus, smTR float64
	for i := 0; i < period; i++ {
		smPlus += plusDM[i]
		smMinus += minusDM[i]
		smTR += tr[i]
	}

	var plusDI, minusDI, adx float64
	var dxCount int
	for i := period - 1; i < len(tr); i++ {
		if i >= period {
			smPlus = smPlus - smPlus/float64(period) + plusDM[i]
			smMinus = smMinus - smMinus/float64(period) + minusDM[i]
			smTR = smTR - smTR/float64(period) + tr[i]
		}

		plusDI, minusDI = 0, 0
		if smTR != 0 {
			plusDI = smPlus / smTR * 100
			minusDI = smMinus / smTR * 100
		}
		var dx float64
		if plusDI+minusDI != 0 {
			dx = math.Abs(plusDI-minusDI) / (plusDI + minusDI) * 100
		}

		dxCount++
		if dxCount <= period {
			adx += dx
			if dxCount == period {
				adx /= float64(period)
			}
		} else {
			adx = (adx*float64(period-1) + dx) / float64(period)
		}
	}

	return ADXResult{
		ADX:     core.Round2(adx),
		PlusDI:  core.Round2(plusDI),
		MinusDI: core.Round2(minusDI),
		Trend:   trendBucket(adx),
	}
}

func trendBucket(adx float64) string {
	switch {
	case adx < 20:
		return TrendWeak
	case adx < 30:
		return TrendModerate
	case adx < 50:
		return TrendStrong
	default:
		return TrendVeryStrong
	}
}
