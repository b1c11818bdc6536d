package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Registry holds all Prometheus metrics. A nil *Registry is valid and
// records nothing, so instrumentation stays optional for callers.
type Registry struct {
	*prometheus.Registry

	signalsGenerated *prometheus.CounterVec
	analysisDuration prometheus.Histogram
	backtestsTotal   *prometheus.CounterVec
	backtestDuration prometheus.Histogram
	ordersTotal      *prometheus.CounterVec
}

// NewRegistry creates a new metrics registry with all metrics registered.
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()

	// Register Go runtime metrics
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	r := &Registry{
		Registry: reg,

		signalsGenerated: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "quantapp_signals_generated_total",
				Help: "Total number of signals generated",
			},
			[]string{"action"},
		),
		analysisDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "quantapp_analysis_duration_seconds",
				Help:    "Single-symbol analysis duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
		),
		backtestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "quantapp_backtests_total",
				Help: "Total number of backtests",
			},
			[]string{"status"},
		),
		backtestDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "quantapp_backtest_duration_seconds",
				Help:    "Backtest duration in seconds",
				Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30},
			},
		),
		ordersTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "quantapp_orders_total",
				Help: "Total number of simulated orders by type and outcome",
			},
			[]string{"type", "status"},
		),
	}

	reg.MustRegister(r.signalsGenerated)
	reg.MustRegister(r.analysisDuration)
	reg.MustRegister(r.backtestsTotal)
	reg.MustRegister(r.backtestDuration)
	reg.MustRegister(r.ordersTotal)

	return r
}

// SignalGenerated counts one generated signal by action.
func (r *Registry) SignalGenerated(action string) {
	if r == nil {
		return
	}
	r.signalsGenerated.WithLabelValues(action).Inc()
}

// ObserveAnalysis records one analysis duration.
func (r *Registry) ObserveAnalysis(seconds float64) {
	if r == nil {
		return
	}
	r.analysisDuration.Observe(seconds)
}

// BacktestCompleted counts one backtest run and its duration.
func (r *Registry) BacktestCompleted(status string, seconds float64) {
	if r == nil {
		return
	}
	r.backtestsTotal.WithLabelValues(status).Inc()
	r.backtestDuration.Observe(seconds)
}

// OrderProcessed counts one simulated order by type and outcome.
func (r *Registry) OrderProcessed(orderType, status string) {
	if r == nil {
		return
	}
	r.ordersTotal.WithLabelValues(orderType, status).Inc()
}
