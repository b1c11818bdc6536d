package indicator

import "github.com/Nikhil170404/Quantapp/internal/core"

// Default Parabolic SAR parameters.
const (
	DefaultSARAcceleration = 0.02
	DefaultSARMax          = 0.2
)

// SARResult holds the Parabolic SAR stop value and current trend.
// Trend is empty when the input was too short to compute one.
type SARResult struct {
	SAR   float64
	Trend string
}

// ParabolicSAR computes the classic extreme-point/acceleration-factor
// recurrence, reversing whenever price breaches the stop. Requires at
// least 2 candles.
func ParabolicSAR(s *core.Series, accel, maxAccel float64) SARResult {
	n := s.Len()
	if n < 2 {
		return SARResult{}
	}

	uptrend := s.Closes[1] > s.Closes[0]
	af := accel
	var sar, ep float64
	if uptrend {
		sar = s.Lows[0]
		ep = s.Highs[0]
	} else {
		sar = s.Highs[0]
		ep = s.Lows[0]
	}

	for i := 1; i < n; i++ {
		sar = sar + af*(ep-sar)

		if uptrend {
			// Stop may never ride above the prior two lows.
			if sar > s.Lows[i-1] {
				sar = s.Lows[i-1]
			}
			if i >= 2 && sar > s.Lows[i-2] {
				sar = s.Lows[i-2]
			}
			if s.Lows[i] < sar {
				uptrend = false
				sar = ep
				ep = s.Lows[i]
				af = accel
			} else if s.Highs[i] > ep {
				ep = s.Highs[i]
				af = minFloat(af+accel, maxAccel)
			}
		} else {
			if sar < s.Highs[i-1] {
				sar = s.Highs[i-1]
			}
			if i >= 2 && sar < s.Highs[i-2] {
				sar = s.Highs[i-2]
			}
			if s.Highs[i] > sar {
				uptrend = true
				sar = ep
				ep = s.Highs[i]
				af = accel
			} else if s.Lows[i] < ep {
				ep = s.Lows[i]
				af = minFloat(af+accel, maxAccel)
			}
		}
	}

	trend := DirectionDown
	if uptrend {
		trend = DirectionUp
	}
	return SARResult{SAR: core.Round2(sar), Trend: trend}
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
