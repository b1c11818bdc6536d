package risk

import (
	"testing"
	"time"

	"github.com/Nikhil170404/Quantapp/internal/core"
)

func series(closes []float64, volumes []float64) *core.Series {
	base := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	candles := make([]core.Candle, len(closes))
	for i, c := range closes {
		candles[i] = core.Candle{
			Time:   base.AddDate(0, 0, i),
			Open:   c,
			High:   c,
			Low:    c,
			Close:  c,
			Volume: volumes[i],
		}
	}
	return core.NewSeries(candles)
}

func flat(n int, close, volume float64) *core.Series {
	closes := make([]float64, n)
	volumes := make([]float64, n)
	for i := range closes {
		closes[i] = close
		volumes[i] = volume
	}
	return series(closes, volumes)
}

func TestScorer_InsufficientData(t *testing.T) {
	got := NewScorer(20).Score(flat(10, 100, 1000))

	if got.Score != 50 {
		t.Errorf("Score = %f, want conservative default 50", got.Score)
	}
	if got.Level != LevelMedium {
		t.Errorf("Level = %q, want MEDIUM", got.Level)
	}
}

func TestScorer_FlatSeriesIsLowRisk(t *testing.T) {
	got := NewScorer(20).Score(flat(30, 100, 1000))

	if got.Breakdown.VolatilityRisk != 0 {
		t.Errorf("VolatilityRisk = %f, want 0", got.Breakdown.VolatilityRisk)
	}
	if got.Breakdown.VolumeRisk != 0 {
		t.Errorf("VolumeRisk = %f, want 0", got.Breakdown.VolumeRisk)
	}
	if got.Breakdown.PriceRisk != 0 {
		t.Errorf("PriceRisk = %f, want 0", got.Breakdown.PriceRisk)
	}
	if got.Score != 0 {
		t.Errorf("Score = %f, want 0", got.Score)
	}
	if got.Level != LevelLow {
		t.Errorf("Level = %q, want LOW", got.Level)
	}
	if got.VolumeRatio != 1 {
		t.Errorf("VolumeRatio = %f, want 1", got.VolumeRatio)
	}
}

func TestScorer_VolumeSpike(t *testing.T) {
	s := flat(30, 100, 1000)
	s.Volumes[len(s.Volumes)-1] = 5000
	s.Candles[len(s.Candles)-1].Volume = 5000

	got := NewScorer(20).Score(s)

	// Spike lifts the window mean too: avg = (19*1000+5000)/20 = 1200,
	// ratio 5000/1200 = 4.17, risk capped at 30.
	if got.Breakdown.VolumeRisk != 30 {
		t.Errorf("VolumeRisk = %f, want capped 30", got.Breakdown.VolumeRisk)
	}
	if got.VolumeRatio != 4.17 {
		t.Errorf("VolumeRatio = %f, want 4.17", got.VolumeRatio)
	}
}

func TestScorer_CapsAndLevels(t *testing.T) {
	// Violent swings cap the volatility sub-score at 40.
	closes := make([]float64, 30)
	volumes := make([]float64, 30)
	for i := range closes {
		if i%2 == 0 {
			closes[i] = 50
		} else {
			closes[i] = 150
		}
		volumes[i] = 1000
	}
	got := NewScorer(20).Score(series(closes, volumes))

	if got.Breakdown.VolatilityRisk != 40 {
		t.Errorf("VolatilityRisk = %f, want capped 40", got.Breakdown.VolatilityRisk)
	}
	if got.Score > 100 {
		t.Errorf("Score = %f, must be capped at 100", got.Score)
	}
}

func TestLevelFor(t *testing.T) {
	cases := []struct {
		score float64
		want  Level
	}{
		{0, LevelLow},
		{29.99, LevelLow},
		{30, LevelMedium},
		{59.99, LevelMedium},
		{60, LevelHigh},
		{79.99, LevelHigh},
		{80, LevelExtreme},
		{100, LevelExtreme},
	}
	for _, c := range cases {
		if got := levelFor(c.score); got != c.want {
			t.Errorf("levelFor(%v) = %q, want %q", c.score, got, c.want)
		}
	}
}
