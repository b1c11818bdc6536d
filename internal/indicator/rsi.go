package indicator

import "github.com/Nikhil170404/Quantapp/internal/core"

// DefaultRSIPeriod is the standard RSI lookback.
const DefaultRSIPeriod = 14

// RSI computes the Relative Strength Index with Wilder's smoothing.
// It returns the neutral value 50 when fewer than period+1 closes are
// available, and 100 when the smoothed average loss is exactly zero
// (all-gain series never divide by zero).
func RSI(closes []float64, period int) float64 {
	if period <= 0 || len(closes) < period+1 {
		return 50
	}

	var avgGain, avgLoss float64
	for i := 1; i <= period; i++ {
		change := closes[i] - closes[i-1]
		if change > 0 {
			avgGain += change
		} else {
			avgLoss -= change
		}
	}
	avgGain /= float64(period)
	avgLoss /= float64(period)

	for i := period + 1; i < len(closes); i++ {
		change := closes[i] - closes[i-1]
		var gain, loss float64
		if change > 0 {
			gain = change
		} else {
			loss = -change
		}
		avgGain = (avgGain*float64(period-1) + gain) / float64(period)
		avgLoss = (avgLoss*float64(period-1) + loss) / float64(period)
	}

	if avgLoss == 0 {
		return 100
	}

	rs := avgGain / avgLoss
	return core.Round2(100 - 100/(1+rs))
}
