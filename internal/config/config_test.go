package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_FromFile(t *testing.T) {
	content := []byte(`
signals:
  min_history: 60
  buy_threshold: 45

backtest:
  initial_capital: 250000
  sizing_method: atr
`)

	tmpDir := t.TempDir()
	cfgPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(cfgPath, content, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(cfgPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Signals.MinHistory != 60 {
		t.Errorf("expected min_history 60, got %d", cfg.Signals.MinHistory)
	}
	if cfg.Backtest.InitialCapital != 250000 {
		t.Errorf("expected initial_capital 250000, got %f", cfg.Backtest.InitialCapital)
	}

	// Untouched sections keep their defaults.
	if cfg.Signals.SellThreshold != -40 {
		t.Errorf("expected default sell_threshold -40, got %f", cfg.Signals.SellThreshold)
	}
	if cfg.Indicators.RSIPeriod != 14 {
		t.Errorf("expected default rsi_period 14, got %d", cfg.Indicators.RSIPeriod)
	}
}

func TestDefaults(t *testing.T) {
	cfg := Defaults()

	if cfg.Signals.BuyThreshold != 40 || cfg.Signals.SellThreshold != -40 {
		t.Errorf("unexpected default thresholds: %f/%f",
			cfg.Signals.BuyThreshold, cfg.Signals.SellThreshold)
	}
	if cfg.Sizing.KellyFraction != 0.25 {
		t.Errorf("expected default kelly_fraction 0.25, got %f", cfg.Sizing.KellyFraction)
	}
	if cfg.Sizing.HeatCeiling != 10 {
		t.Errorf("expected default heat_ceiling 10, got %f", cfg.Sizing.HeatCeiling)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults must validate, got %v", err)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:    "valid defaults",
			mutate:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:    "min history below longest indicator window",
			mutate:  func(c *Config) { c.Signals.MinHistory = 30 },
			wantErr: true,
		},
		{
			name:    "buy threshold not positive",
			mutate:  func(c *Config) { c.Signals.BuyThreshold = -5 },
			wantErr: true,
		},
		{
			name:    "sell threshold not negative",
			mutate:  func(c *Config) { c.Signals.SellThreshold = 10 },
			wantErr: true,
		},
		{
			name:    "kelly fraction above 1",
			mutate:  func(c *Config) { c.Sizing.KellyFraction = 1.5 },
			wantErr: true,
		},
		{
			name:    "zero initial capital",
			mutate:  func(c *Config) { c.Backtest.InitialCapital = 0 },
			wantErr: true,
		},
		{
			name:    "commission rate too large",
			mutate:  func(c *Config) { c.Backtest.CommissionRate = 0.5 },
			wantErr: true,
		},
		{
			name:    "max positions below 1",
			mutate:  func(c *Config) { c.Backtest.MaxPositions = 0 },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
