package indicator

import "github.com/Nikhil170404/Quantapp/internal/core"

// Default MACD parameters.
const (
	DefaultMACDFast   = 12
	DefaultMACDSlow   = 26
	DefaultMACDSignal = 9
)

// MACDResult holds the MACD line, signal line and histogram at the most
// recent bar.
type MACDResult struct {
	MACD      float64
	Signal    float64
	Histogram float64
}

// MACD computes Moving Average Convergence Divergence. The fast and slow
// EMAs are seeded with the first close, so the MACD line spans the whole
// input. Returns an all-zero result when the input is shorter than the
// slow period.
func MACD(closes []float64, fast, slow, signal int) MACDResult {
	if len(closes) < slow {
		return MACDResult{}
	}

	emaFast := emaSeedFirst(closes, fast)
	emaSlow := emaSeedFirst(closes, slow)

	line := make([]float64, len(closes))
	for i := range closes {
		line[i] = emaFast[i] - emaSlow[i]
	}
	signalLine := emaSeedFirst(line, signal)

	macd := core.Round2(line[len(line)-1])
	sig := core.Round2(signalLine[len(signalLine)-1])
	return MACDResult{
		MACD:      macd,
		Signal:    sig,
		Histogram: core.Round2(macd - sig),
	}
}
