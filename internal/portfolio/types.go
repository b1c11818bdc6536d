// internal/portfolio/types.go
// Package portfolio implements a simulated trading account: market,
// limit and stop orders against caller-supplied prices, with cash and
// position invariants enforced on every fill.
package portfolio

import "time"

// OrderSide represents the direction of an order.
type OrderSide string

const (
	// SideBuy represents a buy order.
	SideBuy OrderSide = "BUY"
	// SideSell represents a sell order.
	SideSell OrderSide = "SELL"
)

// OrderType represents the type of order execution.
type OrderType string

const (
	// TypeMarket executes immediately at the supplied price.
	TypeMarket OrderType = "MARKET"
	// TypeLimit executes at the limit price or better.
	TypeLimit OrderType = "LIMIT"
	// TypeStop triggers when the stop price is reached.
	TypeStop OrderType = "STOP"
)

// OrderStatus represents the lifecycle status of an order.
type OrderStatus string

const (
	// StatusPending indicates the order is resting in the book.
	StatusPending OrderStatus = "PENDING"
	// StatusFilled indicates the order has been filled.
	StatusFilled OrderStatus = "FILLED"
	// StatusCancelled indicates the order was cancelled.
	StatusCancelled OrderStatus = "CANCELLED"
	// StatusRejected indicates the order failed validation at fill time.
	StatusRejected OrderStatus = "REJECTED"
)

// Order represents an order against the simulated account.
type Order struct {
	ID         string      `json:"id"`
	Symbol     string      `json:"symbol"`
	Side       OrderSide   `json:"side"`
	Type       OrderType   `json:"type"`
	Shares     int         `json:"shares"`
	LimitPrice float64     `json:"limit_price,omitempty"`
	StopPrice  float64     `json:"stop_price,omitempty"`
	FillPrice  float64     `json:"fill_price,omitempty"`
	Commission float64     `json:"commission,omitempty"`
	Status     OrderStatus `json:"status"`
	CreatedAt  time.Time   `json:"created_at"`
	FilledAt   *time.Time  `json:"filled_at,omitempty"`
}

// IsOpen returns true if the order is still resting.
func (o Order) IsOpen() bool {
	return o.Status == StatusPending
}

// Position represents a holding in the simulated account.
type Position struct {
	Symbol              string    `json:"symbol"`
	Shares              int       `json:"shares"`
	AverageCost         float64   `json:"average_cost"`
	CurrentPrice        float64   `json:"current_price"`
	MarketValue         float64   `json:"market_value"`
	UnrealizedPL        float64   `json:"unrealized_pl"`
	UnrealizedPLPercent float64   `json:"unrealized_pl_percent"`
	RealizedPL          float64   `json:"realized_pl"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// TradeRecord is one fill in the account's ledger.
type TradeRecord struct {
	ID         string    `json:"id"`
	OrderID    string    `json:"order_id"`
	Symbol     string    `json:"symbol"`
	Side       OrderSide `json:"side"`
	Shares     int       `json:"shares"`
	Price      float64   `json:"price"`
	Commission float64   `json:"commission"`
	Time       time.Time `json:"time"`
}

// Performance summarizes account results. Win rate and profit factor
// count only closed round-trips; open positions never contribute.
type Performance struct {
	TotalReturn     float64 `json:"total_return"`
	TotalReturnPct  float64 `json:"total_return_pct"`
	DayReturn       float64 `json:"day_return"`
	DayReturnPct    float64 `json:"day_return_pct"`
	WinRate         float64 `json:"win_rate"`
	ProfitFactor    float64 `json:"profit_factor"`
	ClosedTrades    int     `json:"closed_trades"`
	TradeCount      int     `json:"trade_count"`
	CommissionsPaid float64 `json:"commissions_paid"`
}

// State is a point-in-time snapshot of the account. Monetary fields are
// rounded to 2 decimals.
type State struct {
	Owner       string      `json:"owner"`
	Cash        float64     `json:"cash"`
	Equity      float64     `json:"equity"`
	Positions   []Position  `json:"positions"`
	OpenOrders  []Order     `json:"open_orders"`
	Performance Performance `json:"performance"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// Config holds simulation parameters for an account.
type Config struct {
	InitialCash    float64
	CommissionRate float64 // fraction of notional per fill
	SlippageRate   float64 // fraction of price, applied against the trader
}

// DefaultConfig returns the standard paper-trading parameters.
func DefaultConfig() Config {
	return Config{
		InitialCash:    100000,
		CommissionRate: 0.001,
		SlippageRate:   0.001,
	}
}
