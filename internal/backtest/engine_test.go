package backtest

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/Nikhil170404/Quantapp/internal/core"
	"github.com/Nikhil170404/Quantapp/internal/signal"
	"github.com/Nikhil170404/Quantapp/internal/sizing"
)

func day(n int) time.Time {
	return time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC).AddDate(0, 0, n)
}

func flatCandle(n int, price float64) core.Candle {
	return core.Candle{Time: day(n), Open: price, High: price, Low: price, Close: price, Volume: 1000}
}

func ptr(v float64) *float64 { return &v }

func testSignal(action core.Action, n int, stop, target *float64) *signal.Signal {
	return &signal.Signal{
		Symbol:      "AAPL",
		Action:      action,
		Confidence:  50,
		StopLoss:    stop,
		TargetPrice: target,
		GeneratedAt: day(n),
	}
}

func TestRun_NoCandles(t *testing.T) {
	e := NewEngine(nil, nil)
	_, err := e.Run("AAPL", nil, nil, DefaultConfig())
	if !errors.Is(err, core.ErrNoData) {
		t.Fatalf("err = %v, want ErrNoData", err)
	}
}

func TestRun_EquityCurveLength(t *testing.T) {
	e := NewEngine(nil, nil)
	candles := []core.Candle{flatCandle(0, 100), flatCandle(1, 100), flatCandle(2, 100)}

	r, err := e.Run("AAPL", candles, nil, DefaultConfig())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if len(r.EquityCurve) != len(candles)+1 {
		t.Errorf("equity curve len = %d, want %d", len(r.EquityCurve), len(candles)+1)
	}
	if len(r.Dates) != len(candles) {
		t.Errorf("dates len = %d, want %d", len(r.Dates), len(candles))
	}
	for i, v := range r.EquityCurve {
		if v != r.Config.InitialCapital {
			t.Errorf("equity[%d] = %f, want flat at initial capital", i, v)
		}
	}
	if len(r.Trades) != 0 {
		t.Errorf("trades = %d, want none without signals", len(r.Trades))
	}
}

func TestRun_LongRoundTrip(t *testing.T) {
	e := NewEngine(nil, nil)
	cfg := Config{
		InitialCapital:  10000,
		PositionPercent: 100,
	}
	candles := []core.Candle{flatCandle(0, 100), flatCandle(1, 110), flatCandle(2, 110)}
	signals := []*signal.Signal{
		testSignal(core.ActionBuy, 0, nil, nil),
		testSignal(core.ActionExit, 2, nil, nil),
	}

	r, err := e.Run("AAPL", candles, signals, cfg)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if len(r.Trades) != 1 {
		t.Fatalf("trades = %d, want 1", len(r.Trades))
	}
	tr := r.Trades[0]
	if tr.Side != "long" || tr.Shares != 100 {
		t.Errorf("trade = %+v, want 100 shares long", tr)
	}
	if tr.PL != 1000 {
		t.Errorf("PL = %f, want 1000", tr.PL)
	}
	if tr.ExitReason != ExitSignal {
		t.Errorf("ExitReason = %q, want %q", tr.ExitReason, ExitSignal)
	}

	want := []float64{10000, 10000, 11000, 11000}
	for i, v := range want {
		if r.EquityCurve[i] != v {
			t.Errorf("equity[%d] = %f, want %f", i, r.EquityCurve[i], v)
		}
	}
	if r.Stats.TotalReturnPct != 10 {
		t.Errorf("TotalReturnPct = %f, want 10", r.Stats.TotalReturnPct)
	}
	if r.Stats.WinRate != 100 {
		t.Errorf("WinRate = %f, want 100", r.Stats.WinRate)
	}
}

func TestRun_StopWinsOverTargetInOneBar(t *testing.T) {
	e := NewEngine(nil, nil)
	cfg := Config{InitialCapital: 10000, PositionPercent: 100}
	candles := []core.Candle{
		flatCandle(0, 100),
		{Time: day(1), Open: 100, High: 110, Low: 90, Close: 100, Volume: 1000},
	}
	signals := []*signal.Signal{
		testSignal(core.ActionBuy, 0, ptr(95), ptr(105)),
	}

	r, err := e.Run("AAPL", candles, signals, cfg)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if len(r.Trades) != 1 {
		t.Fatalf("trades = %d, want 1", len(r.Trades))
	}
	tr := r.Trades[0]
	if tr.ExitReason != ExitStop {
		t.Errorf("ExitReason = %q, want stop to win the ambiguous bar", tr.ExitReason)
	}
	if tr.ExitPrice != 95 {
		t.Errorf("ExitPrice = %f, want 95", tr.ExitPrice)
	}
	if tr.PL != -500 {
		t.Errorf("PL = %f, want -500", tr.PL)
	}
}

func TestRun_TargetExit(t *testing.T) {
	e := NewEngine(nil, nil)
	cfg := Config{InitialCapital: 10000, PositionPercent: 100}
	candles := []core.Candle{
		flatCandle(0, 100),
		{Time: day(1), Open: 100, High: 106, Low: 99, Close: 105, Volume: 1000},
	}
	signals := []*signal.Signal{
		testSignal(core.ActionBuy, 0, ptr(95), ptr(105)),
	}

	r, err := e.Run("AAPL", candles, signals, cfg)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if got := r.Trades[0].ExitReason; got != ExitTarget {
		t.Errorf("ExitReason = %q, want %q", got, ExitTarget)
	}
	if got := r.Trades[0].PL; got != 500 {
		t.Errorf("PL = %f, want 500", got)
	}
}

func TestRun_MaxPositionsDropsExcessSignals(t *testing.T) {
	e := NewEngine(nil, nil)
	cfg := Config{InitialCapital: 100000, PositionPercent: 10, MaxPositions: 1}
	candles := []core.Candle{flatCandle(0, 100), flatCandle(1, 100)}
	signals := []*signal.Signal{
		testSignal(core.ActionBuy, 0, nil, nil),
		testSignal(core.ActionBuy, 0, nil, nil),
		testSignal(core.ActionBuy, 1, nil, nil),
	}

	r, err := e.Run("AAPL", candles, signals, cfg)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	// One position allowed; the others are dropped, not queued.
	if len(r.Trades) != 1 {
		t.Errorf("trades = %d, want 1", len(r.Trades))
	}
}

func TestRun_SlippageAndCommissionAgainstTrader(t *testing.T) {
	e := NewEngine(nil, nil)
	cfg := Config{
		InitialCapital:  100000,
		PositionPercent: 10,
		SlippageRate:    0.001,
	}
	candles := []core.Candle{flatCandle(0, 100), flatCandle(1, 100)}
	signals := []*signal.Signal{
		testSignal(core.ActionBuy, 0, nil, nil),
		testSignal(core.ActionExit, 1, nil, nil),
	}

	r, err := e.Run("AAPL", candles, signals, cfg)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	tr := r.Trades[0]
	if tr.EntryPrice != 100.1 {
		t.Errorf("EntryPrice = %f, want 100.1 (buy fills higher)", tr.EntryPrice)
	}
	if tr.ExitPrice != 99.9 {
		t.Errorf("ExitPrice = %f, want 99.9 (sell fills lower)", tr.ExitPrice)
	}
	// 99 shares lose the 0.2 spread each.
	if tr.PL != -19.8 {
		t.Errorf("PL = %f, want -19.80", tr.PL)
	}
}

func TestRun_ShortRoundTrip(t *testing.T) {
	e := NewEngine(nil, nil)
	cfg := Config{InitialCapital: 10000, PositionPercent: 100}
	candles := []core.Candle{flatCandle(0, 100), flatCandle(1, 90), flatCandle(2, 90)}
	signals := []*signal.Signal{
		testSignal(core.ActionSell, 0, nil, nil),
		testSignal(core.ActionExit, 2, nil, nil),
	}

	r, err := e.Run("AAPL", candles, signals, cfg)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	tr := r.Trades[0]
	if tr.Side != "short" || tr.Shares != 100 {
		t.Fatalf("trade = %+v, want 100 shares short", tr)
	}
	if tr.PL != 1000 {
		t.Errorf("PL = %f, want 1000 on the 10-point drop", tr.PL)
	}
	if got := r.EquityCurve[2]; got != 11000 {
		t.Errorf("equity after drop = %f, want 11000", got)
	}
}

func TestRun_OpenPositionClosedAtEnd(t *testing.T) {
	e := NewEngine(nil, nil)
	cfg := Config{InitialCapital: 10000, PositionPercent: 100}
	candles := []core.Candle{flatCandle(0, 100), flatCandle(1, 104)}
	signals := []*signal.Signal{testSignal(core.ActionBuy, 0, nil, nil)}

	r, err := e.Run("AAPL", candles, signals, cfg)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(r.Trades) != 1 {
		t.Fatalf("trades = %d, want the open position settled at the last bar", len(r.Trades))
	}
	if got := r.Trades[0].ExitReason; got != ExitEnd {
		t.Errorf("ExitReason = %q, want %q", got, ExitEnd)
	}
	if got := r.EquityCurve[len(r.EquityCurve)-1]; got != 10400 {
		t.Errorf("final equity = %f, want 10400", got)
	}
}

func TestRun_ATRSizing(t *testing.T) {
	e := NewEngine(nil, nil)
	cfg := Config{
		InitialCapital: 100000,
		SizingMethod:   sizing.MethodATR,
		RiskPercent:    1,
		ATRMultiplier:  2,
	}
	sig := testSignal(core.ActionBuy, 0, nil, nil)
	sig.Indicators.ATR.Value = 4

	candles := []core.Candle{flatCandle(0, 100), flatCandle(1, 100)}
	r, err := e.Run("AAPL", candles, []*signal.Signal{sig}, cfg)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	// Risk 1000 over an 8-point stop distance sizes 125 shares.
	if got := r.Trades[0].Shares; got != 125 {
		t.Errorf("shares = %d, want 125", got)
	}
}

func TestRun_Deterministic(t *testing.T) {
	e := NewEngine(nil, nil)
	candles := []core.Candle{flatCandle(0, 100), flatCandle(1, 102), flatCandle(2, 101), flatCandle(3, 104)}
	signals := []*signal.Signal{
		testSignal(core.ActionBuy, 0, nil, nil),
		testSignal(core.ActionExit, 3, nil, nil),
	}
	cfg := Config{InitialCapital: 50000, PositionPercent: 20}

	a, err := e.Run("AAPL", candles, signals, cfg)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	b, err := e.Run("AAPL", candles, signals, cfg)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(a.Trades) != len(b.Trades) || a.Stats != b.Stats {
		t.Error("identical inputs produced different results")
	}
	if math.Abs(a.EquityCurve[len(a.EquityCurve)-1]-b.EquityCurve[len(b.EquityCurve)-1]) > 1e-9 {
		t.Error("final equity diverged between identical runs")
	}
}
