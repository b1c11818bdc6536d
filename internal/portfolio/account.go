// internal/portfolio/account.go
package portfolio

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/Nikhil170404/Quantapp/internal/core"
	"github.com/Nikhil170404/Quantapp/internal/metrics"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Account is one simulated trading account. All methods are safe for
// concurrent use; a single mutex serializes order placement and
// position updates so the cash and share invariants always hold.
type Account struct {
	mu sync.Mutex

	owner       string
	cfg         Config
	cash        float64
	dayStart    float64
	positions   map[string]*Position
	orders      map[string]*Order
	orderSeq    []string // placement order, for deterministic fills
	trades      []TradeRecord
	commissions float64
	createdAt   time.Time

	logger  *zap.Logger
	metrics *metrics.Registry
}

// NewAccount creates an account for the owner. Zero config fields fall
// back to DefaultConfig values; logger and metrics may be nil.
func NewAccount(owner string, cfg Config, logger *zap.Logger, m *metrics.Registry) *Account {
	if cfg.InitialCash <= 0 {
		cfg.InitialCash = DefaultConfig().InitialCash
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Account{
		owner:     owner,
		cfg:       cfg,
		cash:      cfg.InitialCash,
		dayStart:  cfg.InitialCash,
		positions: make(map[string]*Position),
		orders:    make(map[string]*Order),
		createdAt: time.Now(),
		logger:    logger,
		metrics:   m,
	}
}

// Owner returns the account's owner key.
func (a *Account) Owner() string {
	return a.owner
}

// PlaceMarketOrder validates and immediately fills an order at the
// slippage-adjusted price. A buy fails with ErrInsufficientFunds when
// cost plus commission exceeds cash; a sell fails with
// ErrInsufficientShares when the position is smaller than the order.
// Validation failures never partially fill.
func (a *Account) PlaceMarketOrder(symbol string, side OrderSide, shares int, price float64) (*Order, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := validateOrder(symbol, side, shares, price); err != nil {
		a.metrics.OrderProcessed("market", "rejected")
		return nil, err
	}

	fill := core.Round2(a.slippageAdjusted(price, side))
	comm := core.Round2(float64(shares) * fill * a.cfg.CommissionRate)

	if side == SideBuy {
		cost := float64(shares)*fill + comm
		if cost > a.cash {
			a.metrics.OrderProcessed("market", "rejected")
			return nil, core.Errorf(core.ErrInsufficientFunds,
				"%s: need %.2f, have %.2f", symbol, cost, a.cash)
		}
	} else {
		held := 0
		if p, ok := a.positions[symbol]; ok {
			held = p.Shares
		}
		if held < shares {
			a.metrics.OrderProcessed("market", "rejected")
			return nil, core.Errorf(core.ErrInsufficientShares,
				"%s: need %d shares, have %d", symbol, shares, held)
		}
	}

	now := time.Now()
	o := &Order{
		ID:         uuid.New().String(),
		Symbol:     symbol,
		Side:       side,
		Type:       TypeMarket,
		Shares:     shares,
		FillPrice:  fill,
		Commission: comm,
		Status:     StatusFilled,
		CreatedAt:  now,
		FilledAt:   &now,
	}
	a.orders[o.ID] = o
	a.orderSeq = append(a.orderSeq, o.ID)
	a.applyFill(o)

	a.metrics.OrderProcessed("market", "filled")
	a.logger.Debug("market order filled",
		zap.String("owner", a.owner),
		zap.String("symbol", symbol),
		zap.String("side", string(side)),
		zap.Int("shares", shares),
		zap.Float64("fill", fill),
	)
	cp := *o
	return &cp, nil
}

// PlaceLimitOrder queues an order that fills when the market price
// reaches the limit: buys at or below, sells at or above.
func (a *Account) PlaceLimitOrder(symbol string, side OrderSide, shares int, limit float64) (*Order, error) {
	return a.queueOrder(symbol, side, shares, TypeLimit, limit)
}

// PlaceStopOrder queues an order that triggers when the market price
// crosses the stop: buys at or above, sells at or below.
func (a *Account) PlaceStopOrder(symbol string, side OrderSide, shares int, stop float64) (*Order, error) {
	return a.queueOrder(symbol, side, shares, TypeStop, stop)
}

func (a *Account) queueOrder(symbol string, side OrderSide, shares int, typ OrderType, trigger float64) (*Order, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	kind := strings.ToLower(string(typ))
	if err := validateOrder(symbol, side, shares, trigger); err != nil {
		a.metrics.OrderProcessed(kind, "rejected")
		return nil, err
	}

	o := &Order{
		ID:        uuid.New().String(),
		Symbol:    symbol,
		Side:      side,
		Type:      typ,
		Shares:    shares,
		Status:    StatusPending,
		CreatedAt: time.Now(),
	}
	if typ == TypeLimit {
		o.LimitPrice = trigger
	} else {
		o.StopPrice = trigger
	}
	a.orders[o.ID] = o
	a.orderSeq = append(a.orderSeq, o.ID)

	a.metrics.OrderProcessed(kind, "queued")
	cp := *o
	return &cp, nil
}

// CancelOrder cancels a pending order. Filled, rejected or already
// cancelled orders fail with ErrOrderNotPending.
func (a *Account) CancelOrder(id string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	o, ok := a.orders[id]
	if !ok {
		return core.Errorf(core.ErrOrderNotFound, "order %s not found", id)
	}
	if o.Status != StatusPending {
		return core.Errorf(core.ErrOrderNotPending, "order %s is %s", id, o.Status)
	}
	o.Status = StatusCancelled
	a.metrics.OrderProcessed(strings.ToLower(string(o.Type)), "cancelled")
	return nil
}

// UpdatePositions refreshes every position's mark-to-market fields from
// the supplied prices, then fills any pending order whose trigger
// condition is met. Orders whose fill would break an invariant (funds
// or shares no longer sufficient) are rejected, not retried.
func (a *Account) UpdatePositions(prices map[string]float64) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.refresh(prices)

	for _, id := range a.orderSeq {
		o := a.orders[id]
		if o.Status != StatusPending {
			continue
		}
		price, ok := prices[o.Symbol]
		if !ok {
			continue
		}
		fill, triggered := o.triggerFill(price, a.cfg.SlippageRate)
		if !triggered {
			continue
		}
		a.fillPending(o, fill)
	}
}

// triggerFill reports the fill price if the market price satisfies the
// order's trigger. Limit orders fill at their limit price; stop orders
// behave as market orders once triggered, so slippage applies to the
// stop price.
func (o *Order) triggerFill(price, slippage float64) (float64, bool) {
	switch o.Type {
	case TypeLimit:
		if o.Side == SideBuy && price <= o.LimitPrice {
			return o.LimitPrice, true
		}
		if o.Side == SideSell && price >= o.LimitPrice {
			return o.LimitPrice, true
		}
	case TypeStop:
		if o.Side == SideBuy && price >= o.StopPrice {
			return o.StopPrice * (1 + slippage), true
		}
		if o.Side == SideSell && price <= o.StopPrice {
			return o.StopPrice * (1 - slippage), true
		}
	}
	return 0, false
}

func (a *Account) fillPending(o *Order, fill float64) {
	kind := strings.ToLower(string(o.Type))
	fill = core.Round2(fill)
	comm := core.Round2(float64(o.Shares) * fill * a.cfg.CommissionRate)

	if o.Side == SideBuy {
		if float64(o.Shares)*fill+comm > a.cash {
			o.Status = StatusRejected
			a.metrics.OrderProcessed(kind, "rejected")
			return
		}
	} else {
		held := 0
		if p, ok := a.positions[o.Symbol]; ok {
			held = p.Shares
		}
		if held < o.Shares {
			o.Status = StatusRejected
			a.metrics.OrderProcessed(kind, "rejected")
			return
		}
	}

	now := time.Now()
	o.FillPrice = fill
	o.Commission = comm
	o.Status = StatusFilled
	o.FilledAt = &now
	a.applyFill(o)
	a.metrics.OrderProcessed(kind, "filled")
}

// applyFill moves cash and updates the position for a filled order.
// Buys average into the existing cost basis; sells reduce shares and
// realize PL against the average cost, deleting the position at zero.
// The caller holds the lock.
func (a *Account) applyFill(o *Order) {
	now := time.Now()
	notional := float64(o.Shares) * o.FillPrice

	if o.Side == SideBuy {
		a.cash -= notional + o.Commission
		p, ok := a.positions[o.Symbol]
		if !ok {
			p = &Position{Symbol: o.Symbol}
			a.positions[o.Symbol] = p
		}
		totalCost := p.AverageCost*float64(p.Shares) + notional
		p.Shares += o.Shares
		p.AverageCost = totalCost / float64(p.Shares)
		p.CurrentPrice = o.FillPrice
		p.UpdatedAt = now
		markPosition(p)
	} else {
		a.cash += notional - o.Commission
		p := a.positions[o.Symbol]
		p.RealizedPL += (o.FillPrice - p.AverageCost) * float64(o.Shares)
		p.Shares -= o.Shares
		if p.Shares == 0 {
			delete(a.positions, o.Symbol)
		} else {
			p.CurrentPrice = o.FillPrice
			p.UpdatedAt = now
			markPosition(p)
		}
	}

	a.commissions += o.Commission
	a.trades = append(a.trades, TradeRecord{
		ID:         uuid.New().String(),
		OrderID:    o.ID,
		Symbol:     o.Symbol,
		Side:       o.Side,
		Shares:     o.Shares,
		Price:      o.FillPrice,
		Commission: o.Commission,
		Time:       now,
	})
}

// refresh recomputes mark-to-market fields. The caller holds the lock.
func (a *Account) refresh(prices map[string]float64) {
	now := time.Now()
	for sym, p := range a.positions {
		price, ok := prices[sym]
		if !ok {
			continue
		}
		p.CurrentPrice = price
		p.UpdatedAt = now
		markPosition(p)
	}
}

func markPosition(p *Position) {
	p.MarketValue = float64(p.Shares) * p.CurrentPrice
	p.UnrealizedPL = (p.CurrentPrice - p.AverageCost) * float64(p.Shares)
	if p.AverageCost > 0 {
		p.UnrealizedPLPercent = (p.CurrentPrice - p.AverageCost) / p.AverageCost * 100
	}
}

// ResetDay rolls the day-return baseline to the current equity,
// refreshing positions from the supplied prices first.
func (a *Account) ResetDay(prices map[string]float64) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.refresh(prices)
	a.dayStart = a.equity()
}

// equity values the account at current marks. The caller holds the
// lock.
func (a *Account) equity() float64 {
	total := a.cash
	for _, p := range a.positions {
		total += p.MarketValue
	}
	return total
}

// State returns a snapshot of the account. Monetary figures are rounded
// to 2 decimals; positions are sorted by symbol and open orders appear
// in placement order.
func (a *Account) State() State {
	a.mu.Lock()
	defer a.mu.Unlock()

	positions := make([]Position, 0, len(a.positions))
	for _, p := range a.positions {
		cp := *p
		cp.AverageCost = core.Round2(cp.AverageCost)
		cp.MarketValue = core.Round2(cp.MarketValue)
		cp.UnrealizedPL = core.Round2(cp.UnrealizedPL)
		cp.UnrealizedPLPercent = core.Round2(cp.UnrealizedPLPercent)
		cp.RealizedPL = core.Round2(cp.RealizedPL)
		positions = append(positions, cp)
	}
	sort.Slice(positions, func(i, j int) bool { return positions[i].Symbol < positions[j].Symbol })

	open := make([]Order, 0)
	for _, id := range a.orderSeq {
		if o := a.orders[id]; o.Status == StatusPending {
			open = append(open, *o)
		}
	}

	return State{
		Owner:       a.owner,
		Cash:        core.Round2(a.cash),
		Equity:      core.Round2(a.equity()),
		Positions:   positions,
		OpenOrders:  open,
		Performance: a.performance(),
		UpdatedAt:   time.Now(),
	}
}

func validateOrder(symbol string, side OrderSide, shares int, price float64) error {
	if symbol == "" {
		return core.ErrInvalidSymbol
	}
	if shares <= 0 {
		return core.Errorf(core.ErrInvalidQuantity, "%s: shares must be positive, got %d", symbol, shares)
	}
	if price <= 0 {
		return core.Errorf(core.ErrInvalidPrice, "%s: price must be positive, got %f", symbol, price)
	}
	if side != SideBuy && side != SideSell {
		return core.Errorf(core.ErrInvalidSide, "%s: invalid side %q", symbol, side)
	}
	return nil
}

// slippageAdjusted moves the fill against the trader.
func (a *Account) slippageAdjusted(price float64, side OrderSide) float64 {
	if side == SideBuy {
		return price * (1 + a.cfg.SlippageRate)
	}
	return price * (1 - a.cfg.SlippageRate)
}
