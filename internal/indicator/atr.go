package indicator

import (
	"math"

	"github.com/Nikhil170404/Quantapp/internal/core"
)

// DefaultATRPeriod is the standard ATR lookback.
const DefaultATRPeriod = 14

// ATRResult holds the Average True Range and its size relative to the
// last close.
type ATRResult struct {
	Value   float64
	Percent float64
}

// TrueRange returns max(high-low, |high-prevClose|, |low-prevClose|).
func TrueRange(high, low, prevClose float64) float64 {
	return math.Max(high-low, math.Max(math.Abs(high-prevClose), math.Abs(low-prevClose)))
}

// ATR computes the Wilder-smoothed Average True Range. Returns a zero
// result when fewer than period+1 candles are available.
func ATR(s *core.Series, period int) ATRResult {
	if period <= 0 || s.Len() < period+1 {
		return ATRResult{}
	}

	var atr float64
	for i := 1; i <= period; i++ {
		atr += TrueRange(s.Highs[i], s.Lows[i], s.Closes[i-1])
	}
	atr /= float64(period)

	for i := period + 1; i < s.Len(); i++ {
		tr := TrueRange(s.Highs[i], s.Lows[i], s.Closes[i-1])
		atr = (atr*float64(period-1) + tr) / float64(period)
	}

	var percent float64
	if close := s.LastClose(); close != 0 {
		percent = atr / close * 100
	}
	return ATRResult{Value: core.Round2(atr), Percent: core.Round2(percent)}
}

// ATRStop returns an ATR-based stop-loss: entry minus multiplier·ATR for
// long entries, entry plus multiplier·ATR for shorts.
func ATRStop(entry, atr, multiplier float64, side core.Action) float64 {
	if side == core.ActionSell {
		return core.Round2(entry + multiplier*atr)
	}
	return core.Round2(entry - multiplier*atr)
}

// ATRShares sizes a position so the configured risk amount is lost if
// price moves multiplier·ATR against it. Returns 0 when ATR or the
// multiplier is non-positive.
func ATRShares(riskAmount, atr, multiplier float64) int {
	if atr <= 0 || multiplier <= 0 {
		return 0
	}
	return int(riskAmount / (multiplier * atr))
}
