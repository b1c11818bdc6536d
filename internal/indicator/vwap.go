package indicator

import "github.com/Nikhil170404/Quantapp/internal/core"

// VWAP computes the volume-weighted average price over the entire
// supplied series; callers control the window by slicing their input.
// Returns 0 for an empty series and the last close when total volume is
// zero (no weighting is possible).
func VWAP(s *core.Series) float64 {
	if s.Len() == 0 {
		return 0
	}

	var pv, volume float64
	for _, c := range s.Candles {
		typical := (c.High + c.Low + c.Close) / 3
		pv += typical * c.Volume
		volume += c.Volume
	}
	if volume == 0 {
		return core.Round2(s.LastClose())
	}
	return core.Round2(pv / volume)
}
