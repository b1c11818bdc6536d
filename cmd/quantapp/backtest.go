package main

import (
	"fmt"

	"github.com/Nikhil170404/Quantapp/internal/backtest"
	"github.com/Nikhil170404/Quantapp/internal/core"
	"github.com/Nikhil170404/Quantapp/internal/logger"
	"github.com/Nikhil170404/Quantapp/internal/metrics"
	"github.com/Nikhil170404/Quantapp/internal/signal"
	"github.com/spf13/cobra"
)

var (
	backtestSymbol string
	backtestFile   string
)

var backtestCmd = &cobra.Command{
	Use:   "backtest",
	Short: "Backtest the signal generator over a candle file",
	Long:  "Generate signals bar by bar over a CSV candle file and replay them through the backtest engine",
	RunE:  runBacktest,
}

func init() {
	backtestCmd.Flags().StringVar(&backtestSymbol, "symbol", "", "Symbol to backtest (required)")
	backtestCmd.Flags().StringVar(&backtestFile, "file", "", "CSV candle file: date,open,high,low,close,volume (required)")

	backtestCmd.MarkFlagRequired("symbol")
	backtestCmd.MarkFlagRequired("file")

	rootCmd.AddCommand(backtestCmd)
}

func runBacktest(cmd *cobra.Command, args []string) error {
	log := logger.Must(debug)
	defer log.Sync()

	cfg, err := loadConfig(log)
	if err != nil {
		return err
	}

	candles, err := loadCandles(backtestFile)
	if err != nil {
		return err
	}

	var m *metrics.Registry
	if cfg.Metrics.Enabled {
		m = metrics.NewRegistry()
	}

	gen := signal.NewGenerator(signal.Config{
		MinHistory:    cfg.Signals.MinHistory,
		BuyThreshold:  cfg.Signals.BuyThreshold,
		SellThreshold: cfg.Signals.SellThreshold,
		RiskPeriod:    cfg.Risk.Period,
	}, log, m)

	// Walk the series bar by bar so each signal only sees history up to
	// its own date.
	var signals []*signal.Signal
	for i := cfg.Signals.MinHistory; i <= len(candles); i++ {
		sig, err := gen.Generate(core.NewSeries(candles[:i]), backtestSymbol)
		if err != nil {
			continue
		}
		if sig.Action == core.ActionHold {
			continue
		}
		signals = append(signals, sig)
	}

	engine := backtest.NewEngine(log, m)
	result, err := engine.Run(backtestSymbol, candles, signals, backtest.Config{
		InitialCapital:  cfg.Backtest.InitialCapital,
		CommissionRate:  cfg.Backtest.CommissionRate,
		SlippageRate:    cfg.Backtest.SlippageRate,
		MaxPositions:    cfg.Backtest.MaxPositions,
		RiskPercent:     cfg.Sizing.RiskPercent,
		SizingMethod:    cfg.Backtest.SizingMethod,
		PositionPercent: cfg.Sizing.PositionPercent,
		MaxPercent:      cfg.Sizing.MaxPercent,
		ATRMultiplier:   cfg.Sizing.ATRMultiplier,
		KellyFraction:   cfg.Sizing.KellyFraction,
	})
	if err != nil {
		return err
	}

	s := result.Stats
	fmt.Println("=== Quantapp Backtest ===")
	fmt.Printf("Symbol:   %s\n", result.Symbol)
	fmt.Printf("Period:   %s to %s\n",
		result.StartDate.Format("2006-01-02"), result.EndDate.Format("2006-01-02"))
	fmt.Printf("Signals:  %d\n", len(signals))
	fmt.Println()

	fmt.Printf("Trades:        %d (%d wins, %d losses)\n", s.TotalTrades, s.WinningTrades, s.LosingTrades)
	fmt.Printf("Win rate:      %.2f%%\n", s.WinRate)
	fmt.Printf("Profit factor: %.2f\n", s.ProfitFactor)
	fmt.Printf("Expectancy:    %.2f per trade\n", s.Expectancy)
	fmt.Printf("Streaks:       %d wins / %d losses\n", s.LongestWinStreak, s.LongestLossStreak)
	fmt.Println()

	fmt.Printf("Total return:  %.2f (%.2f%%)\n", s.TotalReturn, s.TotalReturnPct)
	fmt.Printf("CAGR:          %.2f%%\n", s.CAGR)
	fmt.Printf("Max drawdown:  %.2f (%.2f%%)\n", s.MaxDrawdown, s.MaxDrawdownPct)
	fmt.Printf("Sharpe:        %.2f\n", s.SharpeRatio)
	fmt.Printf("Sortino:       %.2f\n", s.SortinoRatio)
	fmt.Printf("Calmar:        %.2f\n", s.CalmarRatio)

	return nil
}
