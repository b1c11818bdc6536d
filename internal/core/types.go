package core

import "time"

// Action represents a trading decision.
type Action string

const (
	ActionBuy  Action = "BUY"
	ActionSell Action = "SELL"
	ActionHold Action = "HOLD"
	// ActionExit instructs the backtest engine to flatten every open
	// position. It is never produced by the signal generator.
	ActionExit Action = "EXIT"
)

// Candle represents one OHLCV bar.
type Candle struct {
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// Series is a chronological candle sequence with derived parallel slices.
// Callers must not mutate a Series after construction; every analysis
// function treats it as read-only.
type Series struct {
	Candles []Candle
	Closes  []float64
	Highs   []float64
	Lows    []float64
	Volumes []float64
}

// NewSeries builds a Series from candles, deriving the parallel slices once.
func NewSeries(candles []Candle) *Series {
	s := &Series{
		Candles: candles,
		Closes:  make([]float64, len(candles)),
		Highs:   make([]float64, len(candles)),
		Lows:    make([]float64, len(candles)),
		Volumes: make([]float64, len(candles)),
	}
	for i, c := range candles {
		s.Closes[i] = c.Close
		s.Highs[i] = c.High
		s.Lows[i] = c.Low
		s.Volumes[i] = c.Volume
	}
	return s
}

// Len returns the number of candles in the series.
func (s *Series) Len() int {
	return len(s.Candles)
}

// Last returns the most recent candle. It panics on an empty series;
// callers are expected to check Len first.
func (s *Series) Last() Candle {
	return s.Candles[len(s.Candles)-1]
}

// LastClose returns the most recent close, or 0 for an empty series.
func (s *Series) LastClose() float64 {
	if len(s.Closes) == 0 {
		return 0
	}
	return s.Closes[len(s.Closes)-1]
}

// Slice returns a Series over candles[from:to]. The derived slices share
// backing arrays with the parent, which is safe because a Series is
// never mutated.
func (s *Series) Slice(from, to int) *Series {
	return &Series{
		Candles: s.Candles[from:to],
		Closes:  s.Closes[from:to],
		Highs:   s.Highs[from:to],
		Lows:    s.Lows[from:to],
		Volumes: s.Volumes[from:to],
	}
}
