package indicator

import "github.com/Nikhil170404/Quantapp/internal/core"

// Ichimoku periods (Tenkan/Kijun/Senkou B, Chikou displacement).
const (
	IchimokuTenkanPeriod = 9
	IchimokuKijunPeriod  = 26
	IchimokuSenkouPeriod = 52
	IchimokuChikouShift  = 26
)

// Ichimoku bias readings.
const (
	BiasBullish = "bullish"
	BiasBearish = "bearish"
	BiasNeutral = "neutral"
)

// IchimokuResult holds the five Ichimoku lines at the most recent bar.
// Chikou is the close from ChikouShift periods back, the value the
// lagging span is compared against.
type IchimokuResult struct {
	Tenkan  float64
	Kijun   float64
	SenkouA float64
	SenkouB float64
	Chikou  float64
	Bias    string
}

// Ichimoku computes the standard 9/26/52 Ichimoku lines. Requires at
// least 52 candles; shorter input yields an all-zero neutral result.
// The bias is bullish iff price sits above both Senkou spans and Tenkan
// is above Kijun, bearish in the symmetric case, neutral otherwise.
func Ichimoku(s *core.Series) IchimokuResult {
	if s.Len() < IchimokuSenkouPeriod {
		return IchimokuResult{Bias: BiasNeutral}
	}

	tenkan := midpoint(s, IchimokuTenkanPeriod)
	kijun := midpoint(s, IchimokuKijunPeriod)
	senkouA := (tenkan + kijun) / 2
	senkouB := midpoint(s, IchimokuSenkouPeriod)
	chikou := s.Closes[s.Len()-IchimokuChikouShift]

	price := s.LastClose()
	bias := BiasNeutral
	switch {
	case price > senkouA && price > senkouB && tenkan > kijun:
		bias = BiasBullish
	case price < senkouA && price < senkouB && tenkan < kijun:
		bias = BiasBearish
	}

	return IchimokuResult{
		Tenkan:  core.Round2(tenkan),
		Kijun:   core.Round2(kijun),
		SenkouA: core.Round2(senkouA),
		SenkouB: core.Round2(senkouB),
		Chikou:  core.Round2(chikou),
		Bias:    bias,
	}
}

// midpoint returns (highest high + lowest low) / 2 over the trailing
// period bars.
func midpoint(s *core.Series, period int) float64 {
	n := s.Len()
	hi := s.Highs[n-period]
	lo := s.Lows[n-period]
	for i := n - period + 1; i < n; i++ {
		if s.Highs[i] > hi {
			hi = s.Highs[i]
		}
		if s.Lows[i] < lo {
			lo = s.Lows[i]
		}
	}
	return (hi + lo) / 2
}
