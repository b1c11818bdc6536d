package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/Nikhil170404/Quantapp/internal/core"
	"github.com/Nikhil170404/Quantapp/internal/indicator"
	"github.com/Nikhil170404/Quantapp/internal/sizing"
	"github.com/spf13/viper"
)

type Config struct {
	Indicators IndicatorConfig `mapstructure:"indicators"`
	Risk       RiskConfig      `mapstructure:"risk"`
	Signals    SignalConfig    `mapstructure:"signals"`
	Sizing     SizingConfig    `mapstructure:"sizing"`
	Backtest   BacktestConfig  `mapstructure:"backtest"`
	Portfolio  PortfolioConfig `mapstructure:"portfolio"`
	Metrics    MetricsConfig   `mapstructure:"metrics"`
}

// IndicatorConfig holds lookback periods and factors for the technical
// indicators.
type IndicatorConfig struct {
	RSIPeriod            int     `mapstructure:"rsi_period"`
	MACDFast             int     `mapstructure:"macd_fast"`
	MACDSlow             int     `mapstructure:"macd_slow"`
	MACDSignal           int     `mapstructure:"macd_signal"`
	BollingerPeriod      int     `mapstructure:"bollinger_period"`
	BollingerK           float64 `mapstructure:"bollinger_k"`
	ATRPeriod            int     `mapstructure:"atr_period"`
	ADXPeriod            int     `mapstructure:"adx_period"`
	StochasticK          int     `mapstructure:"stochastic_k"`
	StochasticD          int     `mapstructure:"stochastic_d"`
	SuperTrendPeriod     int     `mapstructure:"supertrend_period"`
	SuperTrendMultiplier float64 `mapstructure:"supertrend_multiplier"`
	SARAcceleration      float64 `mapstructure:"sar_acceleration"`
	SARMax               float64 `mapstructure:"sar_max"`
}

// RiskConfig holds risk scorer settings.
type RiskConfig struct {
	Period int `mapstructure:"period"`
}

// SignalConfig holds signal generator thresholds.
type SignalConfig struct {
	MinHistory    int     `mapstructure:"min_history"`
	BuyThreshold  float64 `mapstructure:"buy_threshold"`
	SellThreshold float64 `mapstructure:"sell_threshold"`
}

// SizingConfig holds position sizing defaults.
type SizingConfig struct {
	KellyFraction   float64 `mapstructure:"kelly_fraction"`
	HeatCeiling     float64 `mapstructure:"heat_ceiling"`
	RiskPercent     float64 `mapstructure:"risk_percent"`
	PositionPercent float64 `mapstructure:"position_percent"`
	MaxPercent      float64 `mapstructure:"max_percent"`
	ATRMultiplier   float64 `mapstructure:"atr_multiplier"`
}

// BacktestConfig holds backtest engine defaults.
type BacktestConfig struct {
	InitialCapital float64 `mapstructure:"initial_capital"`
	CommissionRate float64 `mapstructure:"commission_rate"`
	SlippageRate   float64 `mapstructure:"slippage_rate"`
	MaxPositions   int     `mapstructure:"max_positions"`
	SizingMethod   string  `mapstructure:"sizing_method"`
}

// PortfolioConfig holds paper-trading account defaults.
type PortfolioConfig struct {
	InitialCash    float64 `mapstructure:"initial_cash"`
	CommissionRate float64 `mapstructure:"commission_rate"`
	SlippageRate   float64 `mapstructure:"slippage_rate"`
}

// MetricsConfig holds metrics configuration.
type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// Load reads configuration from file
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	// Support environment variable overrides
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	// Expand environment variables in string values
	for _, key := range v.AllKeys() {
		val := v.GetString(key)
		if strings.HasPrefix(val, "${") && strings.HasSuffix(val, "}") {
			envKey := strings.TrimSuffix(strings.TrimPrefix(val, "${"), "}")
			v.Set(key, os.Getenv(envKey))
		}
	}

	cfg := Defaults()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return cfg, nil
}

// Defaults returns a config with sensible defaults
func Defaults() *Config {
	return &Config{
		Indicators: IndicatorConfig{
			RSIPeriod:            indicator.DefaultRSIPeriod,
			MACDFast:             indicator.DefaultMACDFast,
			MACDSlow:             indicator.DefaultMACDSlow,
			MACDSignal:           indicator.DefaultMACDSignal,
			BollingerPeriod:      indicator.DefaultBollingerPeriod,
			BollingerK:           indicator.DefaultBollingerK,
			ATRPeriod:            indicator.DefaultATRPeriod,
			ADXPeriod:            indicator.DefaultADXPeriod,
			StochasticK:          indicator.DefaultStochasticK,
			StochasticD:          indicator.DefaultStochasticD,
			SuperTrendPeriod:     indicator.DefaultSuperTrendPeriod,
			SuperTrendMultiplier: indicator.DefaultSuperTrendMultiplier,
			SARAcceleration:      indicator.DefaultSARAcceleration,
			SARMax:               indicator.DefaultSARMax,
		},
		Risk: RiskConfig{
			Period: 20,
		},
		Signals: SignalConfig{
			MinHistory:    60,
			BuyThreshold:  40,
			SellThreshold: -40,
		},
		Sizing: SizingConfig{
			KellyFraction:   sizing.DefaultKellyFraction,
			HeatCeiling:     sizing.DefaultHeatCeiling,
			RiskPercent:     2,
			PositionPercent: 10,
			MaxPercent:      20,
			ATRMultiplier:   2,
		},
		Backtest: BacktestConfig{
			InitialCapital: 100000,
			CommissionRate: 0.001,
			SlippageRate:   0.001,
			MaxPositions:   5,
			SizingMethod:   sizing.MethodFixedPercent,
		},
		Portfolio: PortfolioConfig{
			InitialCash:    100000,
			CommissionRate: 0.001,
			SlippageRate:   0.001,
		},
		Metrics: MetricsConfig{
			Enabled: true,
		},
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Signals.MinHistory < 52 {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("signals.min_history must cover the longest indicator window (52), got %d", c.Signals.MinHistory))
	}
	if c.Signals.BuyThreshold <= 0 || c.Signals.BuyThreshold > 100 {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("signals.buy_threshold must be in (0, 100], got %f", c.Signals.BuyThreshold))
	}
	if c.Signals.SellThreshold >= 0 || c.Signals.SellThreshold < -100 {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("signals.sell_threshold must be in [-100, 0), got %f", c.Signals.SellThreshold))
	}

	if c.Sizing.KellyFraction <= 0 || c.Sizing.KellyFraction > 1 {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("sizing.kelly_fraction must be in (0, 1], got %f", c.Sizing.KellyFraction))
	}
	if c.Sizing.HeatCeiling <= 0 || c.Sizing.HeatCeiling > 100 {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("sizing.heat_ceiling must be in (0, 100], got %f", c.Sizing.HeatCeiling))
	}

	if c.Backtest.InitialCapital <= 0 {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("backtest.initial_capital must be positive, got %f", c.Backtest.InitialCapital))
	}
	if c.Backtest.CommissionRate < 0 || c.Backtest.CommissionRate > 0.05 {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("backtest.commission_rate must be in [0, 0.05], got %f", c.Backtest.CommissionRate))
	}
	if c.Backtest.SlippageRate < 0 || c.Backtest.SlippageRate > 0.05 {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("backtest.slippage_rate must be in [0, 0.05], got %f", c.Backtest.SlippageRate))
	}
	if c.Backtest.MaxPositions < 1 {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("backtest.max_positions must be at least 1, got %d", c.Backtest.MaxPositions))
	}

	if c.Portfolio.InitialCash <= 0 {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("portfolio.initial_cash must be positive, got %f", c.Portfolio.InitialCash))
	}

	return nil
}
