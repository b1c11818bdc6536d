package backtest

import (
	"time"

	"github.com/Nikhil170404/Quantapp/internal/sizing"
)

// Config holds the simulation parameters for one backtest run.
type Config struct {
	InitialCapital float64
	CommissionRate float64 // fraction of notional, charged on entry and exit
	SlippageRate   float64 // fraction of price, applied against the trader
	MaxPositions   int     // concurrently open positions
	RiskPercent    float64 // risk per trade, for ATR sizing

	// SizingMethod selects the position sizing discipline: one of
	// sizing.MethodFixedPercent, sizing.MethodATR,
	// sizing.MethodConfidence or "optimal" (minimum across the
	// configured methods). Empty means fixed-percent.
	SizingMethod    string
	PositionPercent float64 // allocation for fixed-percent and the confidence base
	MaxPercent      float64 // upper allocation bound for confidence sizing
	ATRMultiplier   float64 // stop distance in ATRs for ATR sizing
	KellyFraction   float64 // fractional multiplier when Kelly joins optimal sizing
}

// DefaultConfig returns the standard simulation parameters.
func DefaultConfig() Config {
	return Config{
		InitialCapital:  100000,
		CommissionRate:  0.001,
		SlippageRate:    0.001,
		MaxPositions:    5,
		RiskPercent:     2,
		SizingMethod:    sizing.MethodFixedPercent,
		PositionPercent: 10,
		MaxPercent:      20,
		ATRMultiplier:   2,
	}
}

// Exit reasons recorded on closed trades.
const (
	ExitStop   = "stop"
	ExitTarget = "target"
	ExitSignal = "signal"
	ExitEnd    = "end"
)

// Trade is one completed round-trip in the simulation ledger. PL is net
// of commission on both legs.
type Trade struct {
	Symbol     string
	Side       string // "long" or "short"
	Shares     int
	EntryTime  time.Time
	EntryPrice float64
	ExitTime   time.Time
	ExitPrice  float64
	PL         float64
	PLPercent  float64
	ExitReason string
}

// Result holds the complete backtest output. EquityCurve starts at the
// initial capital, then carries one mark-to-market point per candle, so
// its length is always len(Dates)+1.
type Result struct {
	Symbol      string
	Config      Config
	StartDate   time.Time
	EndDate     time.Time
	Trades      []Trade
	EquityCurve []float64
	Dates       []time.Time
	Stats       Stats
}

// Stats holds performance statistics over the ledger and equity curve.
type Stats struct {
	TotalTrades   int
	WinningTrades int
	LosingTrades  int
	WinRate       float64 // percentage of profitable trades

	ProfitFactor float64 // gross profit / gross loss
	AverageWin   float64
	AverageLoss  float64
	WinLossRatio float64

	LongestWinStreak  int
	LongestLossStreak int

	TotalReturn    float64 // dollars
	TotalReturnPct float64
	CAGR           float64

	MaxDrawdown    float64 // dollars, peak to trough on the equity curve
	MaxDrawdownPct float64

	SharpeRatio  float64 // annualized by sqrt(252)
	SortinoRatio float64 // downside deviation denominator
	CalmarRatio  float64 // CAGR / max drawdown percent

	Expectancy float64 // net PL per trade, dollars
}

// IsWin returns true if the trade was profitable.
func (t Trade) IsWin() bool {
	return t.PL > 0
}
