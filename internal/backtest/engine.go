package backtest

import (
	"sort"
	"time"

	"github.com/Nikhil170404/Quantapp/internal/core"
	"github.com/Nikhil170404/Quantapp/internal/metrics"
	"github.com/Nikhil170404/Quantapp/internal/signal"
	"github.com/Nikhil170404/Quantapp/internal/sizing"
	"go.uber.org/zap"
)

// Engine replays a signal stream against a candle series and produces a
// trade ledger, an equity curve and performance statistics. A single
// Engine may run backtests concurrently; each Run call is a pure
// function of its inputs.
type Engine struct {
	logger  *zap.Logger
	metrics *metrics.Registry
}

// NewEngine creates an Engine. Logger and metrics may be nil.
func NewEngine(logger *zap.Logger, m *metrics.Registry) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{logger: logger, metrics: m}
}

// position is an open simulated position.
type position struct {
	symbol    string
	side      string // "long" or "short"
	shares    int
	entryTime time.Time
	entry     float64 // fill price, slippage applied
	entryComm float64
	stop      float64 // 0 means none
	target    float64
}

// Run executes the simulation. Candles and signals are sorted by time
// and merged; for each candle, in order: open positions are checked for
// stop or target breach against the candle's high/low (stop checked
// first, so it wins when both could trigger inside one bar), then
// signals dated on or before the candle are applied, then the
// mark-to-market equity is appended to the curve.
func (e *Engine) Run(symbol string, candles []core.Candle, signals []*signal.Signal, cfg Config) (*Result, error) {
	start := time.Now()

	if len(candles) == 0 {
		e.metrics.BacktestCompleted("error", time.Since(start).Seconds())
		return nil, core.Errorf(core.ErrNoData, "backtest %s: no candles", symbol)
	}
	cfg = withDefaults(cfg)

	sorted := make([]core.Candle, len(candles))
	copy(sorted, candles)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Time.Before(sorted[j].Time) })

	queue := make([]*signal.Signal, len(signals))
	copy(queue, signals)
	sort.Slice(queue, func(i, j int) bool { return queue[i].GeneratedAt.Before(queue[j].GeneratedAt) })

	cash := cfg.InitialCapital
	var open []*position
	var trades []Trade
	equity := make([]float64, 0, len(sorted)+1)
	equity = append(equity, cfg.InitialCapital)
	dates := make([]time.Time, 0, len(sorted))
	next := 0

	for _, candle := range sorted {
		// Stops and targets fire intrabar.
		kept := open[:0]
		for _, p := range open {
			price, reason := p.triggered(candle)
			if reason == "" {
				kept = append(kept, p)
				continue
			}
			cash = e.close(&trades, cash, p, price, candle.Time, reason, cfg)
		}
		open = kept

		// Apply every signal dated on or before this candle.
		for next < len(queue) && !queue[next].GeneratedAt.After(candle.Time) {
			sig := queue[next]
			next++

			switch sig.Action {
			case core.ActionBuy:
				cash, open = e.enter(cash, open, sig, candle, "long", cfg)
			case core.ActionSell:
				cash, open = e.enter(cash, open, sig, candle, "short", cfg)
			case core.ActionExit:
				for _, p := range open {
					price := fillPrice(candle.Close, cfg.SlippageRate, p.side == "short")
					cash = e.close(&trades, cash, p, price, candle.Time, ExitSignal, cfg)
				}
				open = nil
			}
		}

		equity = append(equity, markToMarket(cash, open, candle.Close))
		dates = append(dates, candle.Time)
	}

	// Anything still open is closed at the final bar so the ledger is
	// complete.
	last := sorted[len(sorted)-1]
	for _, p := range open {
		price := fillPrice(last.Close, cfg.SlippageRate, p.side == "short")
		cash = e.close(&trades, cash, p, price, last.Time, ExitEnd, cfg)
	}
	equity[len(equity)-1] = cash

	result := &Result{
		Symbol:      symbol,
		Config:      cfg,
		StartDate:   sorted[0].Time,
		EndDate:     last.Time,
		Trades:      trades,
		EquityCurve: equity,
		Dates:       dates,
		Stats:       CalculateStats(trades, equity, dates, cfg.InitialCapital),
	}

	e.metrics.BacktestCompleted("ok", time.Since(start).Seconds())
	e.logger.Debug("backtest complete",
		zap.String("symbol", symbol),
		zap.Int("candles", len(sorted)),
		zap.Int("trades", len(trades)),
		zap.Float64("final_equity", equity[len(equity)-1]),
	)
	return result, nil
}

func withDefaults(cfg Config) Config {
	def := DefaultConfig()
	if cfg.InitialCapital <= 0 {
		cfg.InitialCapital = def.InitialCapital
	}
	if cfg.MaxPositions <= 0 {
		cfg.MaxPositions = def.MaxPositions
	}
	if cfg.SizingMethod == "" {
		cfg.SizingMethod = def.SizingMethod
	}
	if cfg.PositionPercent <= 0 {
		cfg.PositionPercent = def.PositionPercent
	}
	if cfg.MaxPercent <= 0 {
		cfg.MaxPercent = def.MaxPercent
	}
	if cfg.RiskPercent <= 0 {
		cfg.RiskPercent = def.RiskPercent
	}
	if cfg.ATRMultiplier <= 0 {
		cfg.ATRMultiplier = def.ATRMultiplier
	}
	return cfg
}

// fillPrice applies slippage against the trader: buys fill higher,
// sells fill lower.
func fillPrice(price, slippage float64, buy bool) float64 {
	if buy {
		return price * (1 + slippage)
	}
	return price * (1 - slippage)
}

// triggered reports the exit fill price and reason if the candle
// breaches the position's stop or target. The stop is checked first.
func (p *position) triggered(c core.Candle) (float64, string) {
	if p.side == "long" {
		if p.stop > 0 && c.Low <= p.stop {
			return p.stop, ExitStop
		}
		if p.target > 0 && c.High >= p.target {
			return p.target, ExitTarget
		}
		return 0, ""
	}
	if p.stop > 0 && c.High >= p.stop {
		return p.stop, ExitStop
	}
	if p.target > 0 && c.Low <= p.target {
		return p.target, ExitTarget
	}
	return 0, ""
}

// enter opens a position for the signal if the position cap, sizing and
// capital all allow it; otherwise the signal is dropped silently.
func (e *Engine) enter(cash float64, open []*position, sig *signal.Signal, candle core.Candle, side string, cfg Config) (float64, []*position) {
	if len(open) >= cfg.MaxPositions {
		return cash, open
	}

	equity := markToMarket(cash, open, candle.Close)
	fill := fillPrice(candle.Close, cfg.SlippageRate, side == "long")
	shares := e.shares(equity, fill, sig, cfg)
	if shares <= 0 {
		return cash, open
	}
	notional := float64(shares) * fill
	comm := notional * cfg.CommissionRate
	if side == "long" && notional+comm > cash {
		return cash, open
	}
	if side == "short" && notional > cash {
		return cash, open
	}

	p := &position{
		symbol:    sig.Symbol,
		side:      side,
		shares:    shares,
		entryTime: candle.Time,
		entry:     fill,
		entryComm: comm,
	}
	if sig.StopLoss != nil {
		p.stop = *sig.StopLoss
	}
	if sig.TargetPrice != nil {
		p.target = *sig.TargetPrice
	}

	if side == "long" {
		cash -= notional + comm
	} else {
		cash += notional - comm
	}
	return cash, append(open, p)
}

// close settles the position at the given fill price, appends the trade
// to the ledger and returns the updated cash.
func (e *Engine) close(trades *[]Trade, cash float64, p *position, price float64, when time.Time, reason string, cfg Config) float64 {
	notional := float64(p.shares) * price
	comm := notional * cfg.CommissionRate

	var pl float64
	if p.side == "long" {
		cash += notional - comm
		pl = notional - float64(p.shares)*p.entry - p.entryComm - comm
	} else {
		cash -= notional + comm
		pl = float64(p.shares)*p.entry - notional - p.entryComm - comm
	}

	basis := float64(p.shares) * p.entry
	*trades = append(*trades, Trade{
		Symbol:     p.symbol,
		Side:       p.side,
		Shares:     p.shares,
		EntryTime:  p.entryTime,
		EntryPrice: core.Round2(p.entry),
		ExitTime:   when,
		ExitPrice:  core.Round2(price),
		PL:         core.Round2(pl),
		PLPercent:  core.Round2(pl / basis * 100),
		ExitReason: reason,
	})
	return cash
}

// shares sizes the entry per the configured discipline.
func (e *Engine) shares(equity, price float64, sig *signal.Signal, cfg Config) int {
	switch cfg.SizingMethod {
	case sizing.MethodATR:
		return sizing.ATRBased(equity, cfg.RiskPercent, price, sig.Indicators.ATR.Value, cfg.ATRMultiplier).Shares
	case sizing.MethodConfidence:
		return sizing.ConfidenceBased(equity, cfg.PositionPercent, cfg.MaxPercent, sig.Confidence, price).Shares
	case "optimal":
		return sizing.OptimalSize(sizing.Inputs{
			Account:          equity,
			Price:            price,
			PercentOfAccount: cfg.PositionPercent,
			ATR:              sig.Indicators.ATR.Value,
			ATRMultiplier:    cfg.ATRMultiplier,
			RiskPercent:      cfg.RiskPercent,
			BasePercent:      cfg.PositionPercent,
			Confidence:       sig.Confidence,
			MaxPercent:       cfg.MaxPercent,
			KellyFraction:    cfg.KellyFraction,
		}).Shares
	default:
		return sizing.FixedPercent(equity, cfg.PositionPercent, price).Shares
	}
}

// markToMarket values the account at the given price: long positions
// add their notional, shorts subtract theirs.
func markToMarket(cash float64, open []*position, price float64) float64 {
	equity := cash
	for _, p := range open {
		if p.side == "long" {
			equity += float64(p.shares) * price
		} else {
			equity -= float64(p.shares) * price
		}
	}
	return equity
}
