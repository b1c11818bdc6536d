package backtest

import (
	"math"
	"time"

	"github.com/Nikhil170404/Quantapp/internal/core"
)

const tradingDaysPerYear = 252

// CalculateStats computes performance statistics from the trade ledger
// and the equity curve.
func CalculateStats(trades []Trade, equity []float64, dates []time.Time, initial float64) Stats {
	s := Stats{TotalTrades: len(trades)}

	var grossProfit, grossLoss, totalPL float64
	var winStreak, lossStreak int
	for _, t := range trades {
		totalPL += t.PL
		if t.IsWin() {
			s.WinningTrades++
			grossProfit += t.PL
			winStreak++
			lossStreak = 0
		} else {
			s.LosingTrades++
			grossLoss += -t.PL
			lossStreak++
			winStreak = 0
		}
		if winStreak > s.LongestWinStreak {
			s.LongestWinStreak = winStreak
		}
		if lossStreak > s.LongestLossStreak {
			s.LongestLossStreak = lossStreak
		}
	}

	if s.TotalTrades > 0 {
		s.WinRate = core.Round2(float64(s.WinningTrades) / float64(s.TotalTrades) * 100)
		s.Expectancy = core.Round2(totalPL / float64(s.TotalTrades))
	}
	if s.WinningTrades > 0 {
		s.AverageWin = core.Round2(grossProfit / float64(s.WinningTrades))
	}
	if s.LosingTrades > 0 {
		s.AverageLoss = core.Round2(grossLoss / float64(s.LosingTrades))
	}
	if s.AverageLoss > 0 {
		s.WinLossRatio = core.Round2(s.AverageWin / s.AverageLoss)
	}
	switch {
	case grossLoss > 0:
		s.ProfitFactor = core.Round2(grossProfit / grossLoss)
	default:
		// No losing trades leaves the ratio unbounded; report the
		// gross profit instead of infinity.
		s.ProfitFactor = core.Round2(grossProfit)
	}

	if len(equity) == 0 || initial <= 0 {
		return s
	}

	final := equity[len(equity)-1]
	s.TotalReturn = core.Round2(final - initial)
	s.TotalReturnPct = core.Round2((final - initial) / initial * 100)
	s.CAGR = core.Round2(calculateCAGR(initial, final, len(dates)))

	dd, ddPct := calculateMaxDrawdown(equity)
	s.MaxDrawdown = core.Round2(dd)
	s.MaxDrawdownPct = core.Round2(ddPct)

	returns := stepReturns(equity)
	s.SharpeRatio = core.Round2(calculateSharpeRatio(returns))
	s.SortinoRatio = core.Round2(calculateSortinoRatio(returns))
	if s.MaxDrawdownPct > 0 {
		s.CalmarRatio = core.Round2(s.CAGR / s.MaxDrawdownPct)
	}

	return s
}

// calculateCAGR annualizes growth treating the date axis as trading
// days.
func calculateCAGR(initial, final float64, days int) float64 {
	if days <= 0 || final <= 0 {
		return 0
	}
	years := float64(days) / tradingDaysPerYear
	if years <= 0 {
		return 0
	}
	return (math.Pow(final/initial, 1/years) - 1) * 100
}

// calculateMaxDrawdown finds the largest peak-to-trough decline on the
// equity curve, in dollars and as a percentage of the peak.
func calculateMaxDrawdown(equity []float64) (float64, float64) {
	var maxDD, maxDDPct, peak float64
	for _, v := range equity {
		if v > peak {
			peak = v
		}
		dd := peak - v
		if dd > maxDD {
			maxDD = dd
			if peak > 0 {
				maxDDPct = dd / peak * 100
			}
		}
	}
	return maxDD, maxDDPct
}

// stepReturns converts the equity curve into per-step fractional
// returns.
func stepReturns(equity []float64) []float64 {
	if len(equity) < 2 {
		return nil
	}
	returns := make([]float64, 0, len(equity)-1)
	for i := 1; i < len(equity); i++ {
		if equity[i-1] == 0 {
			returns = append(returns, 0)
			continue
		}
		returns = append(returns, (equity[i]-equity[i-1])/equity[i-1])
	}
	return returns
}

// calculateSharpeRatio computes the annualized risk-adjusted return on
// the per-step return series. Risk-free rate is taken as zero.
func calculateSharpeRatio(returns []float64) float64 {
	if len(returns) < 2 {
		return 0
	}
	mean := meanOf(returns)
	var variance float64
	for _, r := range returns {
		variance += (r - mean) * (r - mean)
	}
	stdDev := math.Sqrt(variance / float64(len(returns)-1))
	if stdDev == 0 {
		return 0
	}
	return mean / stdDev * math.Sqrt(tradingDaysPerYear)
}

// calculateSortinoRatio is Sharpe with only negative returns in the
// denominator.
func calculateSortinoRatio(returns []float64) float64 {
	if len(returns) < 2 {
		return 0
	}
	mean := meanOf(returns)
	var downside float64
	var n int
	for _, r := range returns {
		if r < 0 {
			downside += r * r
			n++
		}
	}
	if n == 0 {
		return 0
	}
	dev := math.Sqrt(downside / float64(n))
	if dev == 0 {
		return 0
	}
	return mean / dev * math.Sqrt(tradingDaysPerYear)
}

func meanOf(values []float64) float64 {
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
