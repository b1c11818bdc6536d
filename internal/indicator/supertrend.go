package indicator

import "github.com/Nikhil170404/Quantapp/internal/core"

// Default SuperTrend parameters.
const (
	DefaultSuperTrendPeriod     = 10
	DefaultSuperTrendMultiplier = 3.0
)

// SuperTrend directions.
const (
	DirectionUp   = "up"
	DirectionDown = "down"
)

// SuperTrendResult holds the trailing band value and current direction.
// Direction is empty when the input was too short to compute a trend.
type SuperTrendResult struct {
	Value     float64
	Direction string
	UpperBand float64
	LowerBand float64
}

// SuperTrend computes the ATR-band trend follower around HL2. Direction
// flips to up when price closes above the final upper band and to down
// when it closes below the final lower band.
func SuperTrend(s *core.Series, period int, multiplier float64) SuperTrendResult {
	n := s.Len()
	if period <= 0 || n < period+1 {
		return SuperTrendResult{}
	}

	// Wilder ATR maintained incrementally alongside the bands.
	var atr float64
	for i := 1; i <= period; i++ {
		atr += TrueRange(s.Highs[i], s.Lows[i], s.Closes[i-1])
	}
	atr /= float64(period)

	hl2 := (s.Highs[period] + s.Lows[period]) / 2
	finalUpper := hl2 + multiplier*atr
	finalLower := hl2 - multiplier*atr
	direction := DirectionUp
	if s.Closes[period] < finalLower {
		direction = DirectionDown
	}

	for i := period + 1; i < n; i++ {
		tr := TrueRange(s.Highs[i], s.Lows[i], s.Closes[i-1])
		atr = (atr*float64(period-1) + tr) / float64(period)

		hl2 = (s.Highs[i] + s.Lows[i]) / 2
		basicUpper := hl2 + multiplier*atr
		basicLower := hl2 - multiplier*atr

		// Bands only ratchet in the trend direction until price
		// closes through them.
		if basicUpper < finalUpper || s.Closes[i-1] > finalUpper {
			finalUpper = basicUpper
		}
		if basicLower > finalLower || s.Closes[i-1] < finalLower {
			finalLower = basicLower
		}

		switch {
		case s.Closes[i] > finalUpper:
			direction = DirectionUp
		case s.Closes[i] < finalLower:
			direction = DirectionDown
		}
	}

	value := finalLower
	if direction == DirectionDown {
		value = finalUpper
	}
	return SuperTrendResult{
		Value:     core.Round2(value),
		Direction: direction,
		UpperBand: core.Round2(finalUpper),
		LowerBand: core.Round2(finalLower),
	}
}
