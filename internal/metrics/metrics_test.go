package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNilRegistryIsSafe(t *testing.T) {
	var r *Registry
	// Must not panic.
	r.SignalGenerated("BUY")
	r.ObserveAnalysis(0.1)
	r.BacktestCompleted("ok", 1.5)
	r.OrderProcessed("market", "filled")
}

func TestSignalGenerated(t *testing.T) {
	r := NewRegistry()
	r.SignalGenerated("BUY")
	r.SignalGenerated("BUY")
	r.SignalGenerated("HOLD")

	if got := testutil.ToFloat64(r.signalsGenerated.WithLabelValues("BUY")); got != 2 {
		t.Errorf("BUY counter = %f, want 2", got)
	}
	if got := testutil.ToFloat64(r.signalsGenerated.WithLabelValues("HOLD")); got != 1 {
		t.Errorf("HOLD counter = %f, want 1", got)
	}
}

func TestOrderProcessed(t *testing.T) {
	r := NewRegistry()
	r.OrderProcessed("market", "filled")
	r.OrderProcessed("limit", "rejected")

	if got := testutil.ToFloat64(r.ordersTotal.WithLabelValues("market", "filled")); got != 1 {
		t.Errorf("market/filled counter = %f, want 1", got)
	}
}
