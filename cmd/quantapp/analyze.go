package main

import (
	"fmt"

	"github.com/Nikhil170404/Quantapp/internal/core"
	"github.com/Nikhil170404/Quantapp/internal/logger"
	"github.com/Nikhil170404/Quantapp/internal/metrics"
	"github.com/Nikhil170404/Quantapp/internal/signal"
	"github.com/spf13/cobra"
)

var (
	analyzeSymbol string
	analyzeFile   string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze a candle series and print the trading signal",
	Long:  "Run the indicator suite and signal generator over a CSV candle file",
	RunE:  runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeSymbol, "symbol", "", "Symbol being analyzed (required)")
	analyzeCmd.Flags().StringVar(&analyzeFile, "file", "", "CSV candle file: date,open,high,low,close,volume (required)")

	analyzeCmd.MarkFlagRequired("symbol")
	analyzeCmd.MarkFlagRequired("file")

	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	log := logger.Must(debug)
	defer log.Sync()

	cfg, err := loadConfig(log)
	if err != nil {
		return err
	}

	candles, err := loadCandles(analyzeFile)
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

	sig, err := gen.Generate(core.NewSeries(candles), analyzeSymbol)
	if err != nil {
		return err
	}

	fmt.Println("=== Quantapp Analysis ===")
	fmt.Printf("Symbol:     %s\n", sig.Symbol)
	fmt.Printf("Candles:    %d (through %s)\n", len(candles), sig.GeneratedAt.Format("2006-01-02"))
	fmt.Printf("Action:     %s\n", sig.Action)
	fmt.Printf("Confidence: %.2f\n", sig.Confidence)
	fmt.Printf("Entry:      %.2f\n", sig.EntryPrice)
	if sig.TargetPrice != nil {
		fmt.Printf("Target:     %.2f\n", *sig.TargetPrice)
		fmt.Printf("Stop:       %.2f\n", *sig.StopLoss)
		fmt.Printf("R/R:        %.2f\n", *sig.RiskReward)
	}
	fmt.Printf("Risk:       %s (%.2f)\n", sig.Risk.Level, sig.Risk.Score)
	fmt.Println()

	fmt.Println("Reasons:")
	for _, r := range sig.Reasons {
		fmt.Printf("  - %s\n", r)
	}
	fmt.Println()

	rec := signal.Recommend(sig.Action, sig.Confidence, sig.Risk.Level, sig.Indicators.ADX.ADX)
	fmt.Println("Recommendation:")
	fmt.Printf("  Strategy: %s\n", rec.Strategy)
	fmt.Printf("  Size:     %s\n", rec.PositionSize)
	fmt.Printf("  Holding:  %s\n", rec.HoldingPeriod)
	fmt.Printf("  %s\n", rec.Description)

	return nil
}
