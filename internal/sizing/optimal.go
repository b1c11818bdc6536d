// internal/sizing/optimal.go
package sizing

import "github.com/Nikhil170404/Quantapp/internal/core"

// DefaultHeatCeiling is the maximum aggregate risk percentage committed
// across open positions before new entries are rejected.
const DefaultHeatCeiling = 10.0

// Inputs gathers the parameters for OptimalSize. Account and Price are
// required; each sizing discipline joins the vote only when its own
// parameters are present (non-zero), so callers supply what they know
// and get the most conservative answer across the methods that could
// run.
type Inputs struct {
	Account float64
	Price   float64

	// Fixed-dollar, when FixedAmount > 0.
	FixedAmount float64

	// Fixed-percent, when PercentOfAccount > 0.
	PercentOfAccount float64

	// Kelly, when AvgWinLossRatio > 0. KellyFraction <= 0 means
	// DefaultKellyFraction.
	WinRate         float64
	AvgWinLossRatio float64
	KellyFraction   float64

	// ATR-based, when ATR > 0 and ATRMultiplier > 0.
	ATR           float64
	ATRMultiplier float64
	RiskPercent   float64

	// Volatility-adjusted, when CurrentVolatility > 0 and
	// BasePercent > 0.
	BasePercent       float64
	TargetVolatility  float64
	CurrentVolatility float64

	// Risk-parity, when SymbolVolatility > 0 and PositionCount > 0.
	SymbolVolatility    float64
	PortfolioVolatility float64
	PositionCount       int

	// Confidence-based, when MaxPercent > 0.
	Confidence float64
	MaxPercent float64
}

// OptimalSize runs every discipline whose parameters are present and
// returns the smallest share count among them. Picking the minimum is
// the safety policy: no single optimistic method can oversize a trade.
// With no runnable method the zero Result is returned.
func OptimalSize(in Inputs) Result {
	var candidates []Result

	if in.FixedAmount > 0 {
		candidates = append(candidates, FixedDollar(in.FixedAmount, in.Price))
	}
	if in.PercentOfAccount > 0 {
		candidates = append(candidates, FixedPercent(in.Account, in.PercentOfAccount, in.Price))
	}
	if in.AvgWinLossRatio > 0 {
		candidates = append(candidates, Kelly(in.Account, in.Price, in.WinRate, in.AvgWinLossRatio, in.KellyFraction))
	}
	if in.ATR > 0 && in.ATRMultiplier > 0 {
		candidates = append(candidates, ATRBased(in.Account, in.RiskPercent, in.Price, in.ATR, in.ATRMultiplier))
	}
	if in.CurrentVolatility > 0 && in.BasePercent > 0 {
		candidates = append(candidates, VolatilityAdjusted(in.Account, in.BasePercent, in.TargetVolatility, in.CurrentVolatility, in.Price))
	}
	if in.SymbolVolatility > 0 && in.PositionCount > 0 {
		candidates = append(candidates, RiskParity(in.Account, in.SymbolVolatility, in.PortfolioVolatility, in.Price, in.PositionCount))
	}
	if in.MaxPercent > 0 {
		candidates = append(candidates, ConfidenceBased(in.Account, in.BasePercent, in.MaxPercent, in.Confidence, in.Price))
	}

	if len(candidates) == 0 {
		return Result{}
	}

	best := candidates[0]
	for _, c := range candidates[1:] {
		if c.Shares < best.Shares {
			best = c
		}
	}
	return best
}

// CheckHeat sums the risk percentages already committed to open
// positions and rejects the new position if adding it would push the
// total past the ceiling (DefaultHeatCeiling when ceiling <= 0).
func CheckHeat(openRiskPercents []float64, newRiskPercent, ceiling float64) error {
	if ceiling <= 0 {
		ceiling = DefaultHeatCeiling
	}
	total := newRiskPercent
	for _, r := range openRiskPercents {
		total += r
	}
	if total > ceiling {
		return core.Errorf(core.ErrRiskLimitExceeded,
			"portfolio heat %.2f%% would exceed ceiling %.2f%%", total, ceiling)
	}
	return nil
}
