// internal/portfolio/performance.go
package portfolio

import "github.com/Nikhil170404/Quantapp/internal/core"

// performance summarizes returns and trade quality. The caller holds
// the lock.
func (a *Account) performance() Performance {
	eq := a.equity()
	perf := Performance{
		TotalReturn:     core.Round2(eq - a.cfg.InitialCash),
		TotalReturnPct:  core.Round2((eq - a.cfg.InitialCash) / a.cfg.InitialCash * 100),
		DayReturn:       core.Round2(eq - a.dayStart),
		TradeCount:      len(a.trades),
		CommissionsPaid: core.Round2(a.commissions),
	}
	if a.dayStart > 0 {
		perf.DayReturnPct = core.Round2((eq - a.dayStart) / a.dayStart * 100)
	}

	roundTrips := a.closedRoundTrips()
	perf.ClosedTrades = len(roundTrips)
	if len(roundTrips) == 0 {
		return perf
	}

	var wins int
	var grossProfit, grossLoss float64
	for _, pl := range roundTrips {
		if pl > 0 {
			wins++
			grossProfit += pl
		} else {
			grossLoss += -pl
		}
	}
	perf.WinRate = core.Round2(float64(wins) / float64(len(roundTrips)) * 100)
	if grossLoss > 0 {
		perf.ProfitFactor = core.Round2(grossProfit / grossLoss)
	} else {
		perf.ProfitFactor = core.Round2(grossProfit)
	}
	return perf
}

// closedRoundTrips walks the fill ledger per symbol and emits the net
// PL of every completed cycle, where a cycle closes when cumulative
// bought shares equal cumulative sold shares. Open positions never
// produce a round trip.
func (a *Account) closedRoundTrips() []float64 {
	type cycle struct {
		bought, sold          int
		buyCost, sellProceeds float64
		commissions           float64
	}
	open := make(map[string]*cycle)
	var results []float64

	for _, t := range a.trades {
		c, ok := open[t.Symbol]
		if !ok {
			c = &cycle{}
			open[t.Symbol] = c
		}
		if t.Side == SideBuy {
			c.bought += t.Shares
			c.buyCost += float64(t.Shares) * t.Price
		} else {
			c.sold += t.Shares
			c.sellProceeds += float64(t.Shares) * t.Price
		}
		c.commissions += t.Commission

		if c.bought > 0 && c.bought == c.sold {
			results = append(results, c.sellProceeds-c.buyCost-c.commissions)
			delete(open, t.Symbol)
		}
	}
	return results
}
