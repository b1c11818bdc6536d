package signal

import (
	"fmt"

	"github.com/Nikhil170404/Quantapp/internal/core"
	"github.com/Nikhil170404/Quantapp/internal/risk"
)

// Recommendation is a qualitative companion to a Signal: a strategy
// label, a free-text description, a position-size tier and a holding
// period. It is a pure function of (action, confidence, risk level,
// ADX); see Recommend.
type Recommendation struct {
	Strategy      string
	Description   string
	PositionSize  string
	HoldingPeriod string
}

// Recommend derives the qualitative recommendation from the four signal
// dimensions via a fixed decision table.
func Recommend(action core.Action, confidence float64, level risk.Level, adx float64) Recommendation {
	if action != core.ActionBuy && action != core.ActionSell {
		return Recommendation{
			Strategy:      "wait",
			Description:   "No clear edge. Stay flat until the indicators align.",
			PositionSize:  "none",
			HoldingPeriod: "n/a",
		}
	}

	var strategy, holding string
	switch {
	case adx >= 30:
		strategy = "trend_following"
		holding = "2-6 weeks"
	case adx >= 20:
		strategy = "swing"
		holding = "1-3 weeks"
	default:
		strategy = "mean_reversion"
		holding = "3-10 days"
	}

	var size string
	switch level {
	case risk.LevelLow:
		if confidence >= 70 {
			size = "large (8-10% of account)"
		} else {
			size = "standard (4-6% of account)"
		}
	case risk.LevelMedium:
		size = "standard (4-6% of account)"
	case risk.LevelHigh:
		size = "small (2-3% of account)"
		holding = "3-5 days"
	default: // EXTREME
		strategy = "avoid"
		size = "minimal (1% of account)"
		holding = "1-2 days"
	}

	direction := "long"
	if action == core.ActionSell {
		direction = "short"
	}
	conviction := "moderate"
	if confidence >= 70 {
		conviction = "high"
	}

	return Recommendation{
		Strategy: strategy,
		Description: fmt.Sprintf("%s %s setup with %s conviction (confidence %.0f, risk %s).",
			capitalize(direction), strategy, conviction, confidence, level),
		PositionSize:  size,
		HoldingPeriod: holding,
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return string(s[0]-'a'+'A') + s[1:]
}
