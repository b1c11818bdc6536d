// Package signal combines indicator readings and the composite risk
// score into a single trading decision with confidence, price levels and
// an ordered list of human-readable reasons.
package signal

import (
	"time"

	"github.com/Nikhil170404/Quantapp/internal/core"
	"github.com/Nikhil170404/Quantapp/internal/indicator"
	"github.com/Nikhil170404/Quantapp/internal/risk"
)

// Snapshot captures every indicator reading that fed a signal.
type Snapshot struct {
	RSI        float64
	MACD       indicator.MACDResult
	Bollinger  indicator.BollingerResult
	ADX        indicator.ADXResult
	ATR        indicator.ATRResult
	Stochastic indicator.StochasticResult
	VWAP       float64
	SuperTrend indicator.SuperTrendResult
	Ichimoku   indicator.IchimokuResult
	SAR        indicator.SARResult
}

// Signal is one trading decision. It is created fresh per analysis call
// and never mutated. TargetPrice, StopLoss and RiskReward are nil for
// HOLD signals, which carry no levels.
type Signal struct {
	Symbol      string
	Action      core.Action
	Confidence  float64
	EntryPrice  float64
	TargetPrice *float64
	StopLoss    *float64
	RiskReward  *float64
	Reasons     []string
	Risk        risk.Score
	Indicators  Snapshot
	GeneratedAt time.Time
}

// Levels holds the target/stop pair and their reward-to-risk ratio for
// an actionable signal.
type Levels struct {
	Target     float64
	Stop       float64
	RiskReward float64
}

// ATR multipliers for long entries. The target widens to 3 ATR when the
// risk level is LOW and tightens to 2.5 otherwise.
const (
	stopATRMultiplier      = 2.0
	targetATRMultiplier    = 2.5
	targetATRMultiplierLow = 3.0
)

// Fixed fallback percentages. SELL levels always use these; BUY levels
// only fall back to them when ATR is degenerate (zero).
const (
	fallbackTargetPct = 0.06
	fallbackStopPct   = 0.04
)

// PriceLevels derives target, stop and reward-to-risk for an actionable
// signal. Returns nil for HOLD.
func PriceLevels(action core.Action, entry, atr float64, level risk.Level) *Levels {
	switch action {
	case core.ActionBuy:
		if atr <= 0 {
			target := core.Round2(entry * (1 + fallbackTargetPct))
			stop := core.Round2(entry * (1 - fallbackStopPct))
			return &Levels{Target: target, Stop: stop, RiskReward: riskReward(target-entry, entry-stop)}
		}
		mult := targetATRMultiplier
		if level == risk.LevelLow {
			mult = targetATRMultiplierLow
		}
		target := core.Round2(entry + mult*atr)
		stop := indicator.ATRStop(entry, atr, stopATRMultiplier, core.ActionBuy)
		return &Levels{Target: target, Stop: stop, RiskReward: riskReward(target-entry, entry-stop)}

	case core.ActionSell:
		target := core.Round2(entry * (1 - fallbackTargetPct))
		stop := core.Round2(entry * (1 + fallbackStopPct))
		return &Levels{Target: target, Stop: stop, RiskReward: riskReward(entry-target, stop-entry)}
	}
	return nil
}

// riskReward is potential gain over potential loss, guarded against a
// zero-width stop.
func riskReward(gain, loss float64) float64 {
	if loss <= 0 {
		return 0
	}
	return core.Round2(gain / loss)
}
