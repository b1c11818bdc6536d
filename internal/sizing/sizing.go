// internal/sizing/sizing.go
package sizing

import (
	"math"

	"github.com/Nikhil170404/Quantapp/internal/core"
)

// Method names reported in Result.Method.
const (
	MethodFixedDollar  = "fixed_dollar"
	MethodFixedPercent = "fixed_percent"
	MethodKelly        = "kelly"
	MethodATR          = "atr"
	MethodVolatility   = "volatility_adjusted"
	MethodRiskParity   = "risk_parity"
	MethodConfidence   = "confidence_based"
)

const (
	// DefaultKellyFraction scales the clamped Kelly fraction; raw Kelly
	// is never used directly.
	DefaultKellyFraction = 0.25

	// kellyCap bounds the raw Kelly fraction before the fractional
	// multiplier is applied.
	kellyCap = 0.5

	// Volatility-adjusted allocation bounds, in percent of account.
	minVolatilityPct = 0.5
	maxVolatilityPct = 50.0
)

// Result is the outcome of one sizing discipline. Confidence carries a
// method-specific meaning: the clamped Kelly fraction for Kelly, the
// risk percentage for ATR sizing, the allocation percentage for the
// percentage-based methods.
type Result struct {
	Shares       int
	DollarAmount float64
	RiskAmount   float64
	Method       string
	Confidence   float64
}

func sharesFor(amount, price float64) int {
	if price <= 0 || amount <= 0 {
		return 0
	}
	return int(math.Floor(amount / price))
}

func result(method string, shares int, price, riskAmount, confidence float64) Result {
	return Result{
		Shares:       shares,
		DollarAmount: core.Round2(float64(shares) * price),
		RiskAmount:   core.Round2(riskAmount),
		Method:       method,
		Confidence:   core.Round2(confidence),
	}
}

// FixedDollar buys as many whole shares as the fixed amount affords.
func FixedDollar(amount, price float64) Result {
	shares := sharesFor(amount, price)
	return result(MethodFixedDollar, shares, price, float64(shares)*price, 100)
}

// FixedPercent allocates a fixed percentage of the account.
func FixedPercent(account, percent, price float64) Result {
	amount := account * percent / 100
	shares := sharesFor(amount, price)
	return result(MethodFixedPercent, shares, price, float64(shares)*price, percent)
}

// Kelly sizes by the Kelly criterion f* = (b*p - q) / b, where b is the
// average win/loss ratio, p the win rate and q = 1-p. The raw fraction
// is clamped into [0, 0.5] and then scaled by the fractional multiplier
// (DefaultKellyFraction when fraction <= 0) before any money is
// committed. Result.Confidence reports the clamped raw fraction in
// percent.
func Kelly(account, price, winRate, avgWinLossRatio, fraction float64) Result {
	if fraction <= 0 {
		fraction = DefaultKellyFraction
	}
	if avgWinLossRatio <= 0 {
		return result(MethodKelly, 0, price, 0, 0)
	}

	p := math.Min(math.Max(winRate, 0), 1)
	q := 1 - p
	f := (avgWinLossRatio*p - q) / avgWinLossRatio
	f = math.Min(math.Max(f, 0), kellyCap)

	amount := account * f * fraction
	shares := sharesFor(amount, price)
	return result(MethodKelly, shares, price, float64(shares)*price, f*100)
}

// ATRBased risks a fixed percentage of the account per trade, with the
// stop distance expressed as multiplier*ATR per share. Notional is
// capped at the account size when a tiny ATR would otherwise size past
// the available cash.
func ATRBased(account, riskPercent, price, atr, multiplier float64) Result {
	if atr <= 0 || multiplier <= 0 {
		return result(MethodATR, 0, price, 0, riskPercent)
	}
	riskAmount := account * riskPercent / 100
	shares := int(math.Floor(riskAmount / (atr * multiplier)))
	if shares < 0 {
		shares = 0
	}
	if max := sharesFor(account, price); shares > max {
		shares = max
	}
	return result(MethodATR, shares, price, riskAmount, riskPercent)
}

// VolatilityAdjusted scales a base allocation percentage by the ratio of
// target to current volatility, clamped into [0.5%, 50%] of the
// account. A non-positive current volatility falls back to the base
// percentage.
func VolatilityAdjusted(account, basePercent, targetVol, currentVol, price float64) Result {
	pct := basePercent
	if currentVol > 0 && targetVol > 0 {
		pct = basePercent * targetVol / currentVol
	}
	pct = math.Min(math.Max(pct, minVolatilityPct), maxVolatilityPct)

	amount := account * pct / 100
	shares := sharesFor(amount, price)
	return result(MethodVolatility, shares, price, float64(shares)*price, pct)
}

// RiskParity allocates inversely to the symbol's volatility relative to
// portfolio volatility, split evenly across the target position count.
func RiskParity(account, symbolVol, portfolioVol, price float64, positions int) Result {
	if symbolVol <= 0 || portfolioVol <= 0 || positions <= 0 {
		return result(MethodRiskParity, 0, price, 0, 0)
	}
	weight := (portfolioVol / symbolVol) / float64(positions)
	if weight > 1 {
		weight = 1
	}
	amount := account * weight
	shares := sharesFor(amount, price)
	return result(MethodRiskParity, shares, price, float64(shares)*price, weight*100)
}

// ConfidenceBased interpolates the allocation percentage linearly
// between basePercent (confidence 0) and maxPercent (confidence 100).
func ConfidenceBased(account, basePercent, maxPercent, confidence, price float64) Result {
	c := math.Min(math.Max(confidence, 0), 100)
	pct := basePercent + (maxPercent-basePercent)*c/100

	amount := account * pct / 100
	shares := sharesFor(amount, price)
	return result(MethodConfidence, shares, price, float64(shares)*price, pct)
}
