// Package risk scores how hostile a symbol's recent price/volume action
// is to a new position. The score is a weighted composite of volatility,
// volume anomaly and distance from the moving average.
package risk

import (
	"math"

	"github.com/Nikhil170404/Quantapp/internal/core"
	"github.com/Nikhil170404/Quantapp/internal/indicator"
)

// DefaultPeriod is the trailing window for all three sub-scores.
const DefaultPeriod = 20

// Level buckets the composite score.
type Level string

const (
	LevelLow     Level = "LOW"
	LevelMedium  Level = "MEDIUM"
	LevelHigh    Level = "HIGH"
	LevelExtreme Level = "EXTREME"
)

// Sub-score caps. The three caps sum to the 100-point scale.
const (
	volatilityCap = 40.0
	volumeCap     = 30.0
	priceCap      = 30.0
)

// Breakdown exposes the three weighted sub-scores.
type Breakdown struct {
	VolatilityRisk float64
	VolumeRisk     float64
	PriceRisk      float64
}

// Score is an immutable composite risk assessment, recomputed per request.
type Score struct {
	Score          float64
	Level          Level
	Volatility     float64
	VolumeRatio    float64
	PriceDeviation float64
	Breakdown      Breakdown
}

// Scorer computes composite risk scores over a trailing window.
type Scorer struct {
	period int
}

// NewScorer creates a Scorer; a non-positive period falls back to
// DefaultPeriod.
func NewScorer(period int) *Scorer {
	if period <= 0 {
		period = DefaultPeriod
	}
	return &Scorer{period: period}
}

// Score computes the composite risk score for the series. With fewer
// than period candles it returns the deliberately conservative
// MEDIUM/50 default instead of an error.
func (sc *Scorer) Score(s *core.Series) Score {
	if s.Len() < sc.period {
		return Score{Score: 50, Level: LevelMedium}
	}

	closes := s.Closes[s.Len()-sc.period:]
	volumes := s.Volumes[s.Len()-sc.period:]
	price := s.LastClose()

	// Volatility: coefficient of variation of closes, as a percent.
	mean := indicator.SMALast(closes, sc.period)
	var variance float64
	for _, c := range closes {
		variance += (c - mean) * (c - mean)
	}
	stddev := math.Sqrt(variance / float64(sc.period))
	var volatility float64
	if mean != 0 {
		volatility = stddev / mean * 100
	}
	volatilityRisk := math.Min(volatility*4, volatilityCap)

	// Volume anomaly: deviation of the current bar from the window mean.
	avgVolume := indicator.SMALast(volumes, sc.period)
	volumeRatio := 1.0
	if avgVolume != 0 {
		volumeRatio = volumes[len(volumes)-1] / avgVolume
	}
	volumeRisk := math.Min(math.Abs(volumeRatio-1)*30, volumeCap)

	// Price extension: distance from the window moving average.
	var priceDeviation float64
	if mean != 0 {
		priceDeviation = math.Abs(price-mean) / mean * 100
	}
	priceRisk := math.Min(priceDeviation*3, priceCap)

	total := math.Min(volatilityRisk+volumeRisk+priceRisk, 100)

	return Score{
		Score:          core.Round2(total),
		Level:          levelFor(total),
		Volatility:     core.Round2(volatility),
		VolumeRatio:    core.Round2(volumeRatio),
		PriceDeviation: core.Round2(priceDeviation),
		Breakdown: Breakdown{
			VolatilityRisk: core.Round2(volatilityRisk),
			VolumeRisk:     core.Round2(volumeRisk),
			PriceRisk:      core.Round2(priceRisk),
		},
	}
}

func levelFor(score float64) Level {
	switch {
	case score < 30:
		return LevelLow
	case score < 60:
		return LevelMedium
	case score < 80:
		return LevelHigh
	default:
		return LevelExtreme
	}
}
