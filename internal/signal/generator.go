package signal

import (
	"fmt"
	"math"
	"time"

	"github.com/Nikhil170404/Quantapp/internal/core"
	"github.com/Nikhil170404/Quantapp/internal/indicator"
	"github.com/Nikhil170404/Quantapp/internal/metrics"
	"github.com/Nikhil170404/Quantapp/internal/risk"
	"go.uber.org/zap"
)

// DefaultMinHistory is the hard minimum number of candles Generate
// accepts. Below it the generator fails instead of degrading.
const DefaultMinHistory = 50

// Per-indicator weights. Contributions are vote·weight, votes in
// [-1, 1]; the weights sum to 100 so the composite lands in [-100, 100].
const (
	weightRSI        = 10.0
	weightMACD       = 15.0
	weightBollinger  = 10.0
	weightADX        = 15.0
	weightStochastic = 10.0
	weightVWAP       = 5.0
	weightSuperTrend = 10.0
	weightIchimoku   = 10.0
	weightSAR        = 5.0
	weightVolume     = 5.0
	weightRisk       = 5.0
)

// Config holds generator thresholds.
type Config struct {
	MinHistory    int
	BuyThreshold  float64
	SellThreshold float64
	RiskPeriod    int
}

// DefaultConfig returns the standard thresholds: BUY above 40, SELL
// below -40, 50-candle minimum history.
func DefaultConfig() Config {
	return Config{
		MinHistory:    DefaultMinHistory,
		BuyThreshold:  40,
		SellThreshold: -40,
		RiskPeriod:    risk.DefaultPeriod,
	}
}

// Generator turns a candle series into a Signal. It is stateless apart
// from its configuration and safe for concurrent use across symbols.
type Generator struct {
	cfg     Config
	scorer  *risk.Scorer
	logger  *zap.Logger
	metrics *metrics.Registry
}

// NewGenerator creates a Generator. Zero config fields fall back to
// DefaultConfig values; logger and metrics may be nil.
func NewGenerator(cfg Config, logger *zap.Logger, m *metrics.Registry) *Generator {
	def := DefaultConfig()
	if cfg.MinHistory <= 0 {
		cfg.MinHistory = def.MinHistory
	}
	if cfg.BuyThreshold == 0 {
		cfg.BuyThreshold = def.BuyThreshold
	}
	if cfg.SellThreshold == 0 {
		cfg.SellThreshold = def.SellThreshold
	}
	if cfg.RiskPeriod <= 0 {
		cfg.RiskPeriod = def.RiskPeriod
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Generator{
		cfg:     cfg,
		scorer:  risk.NewScorer(cfg.RiskPeriod),
		logger:  logger,
		metrics: m,
	}
}

// Generate analyzes the series and returns a fresh Signal. It fails
// with ErrInsufficientData below the configured minimum history; this
// is the one indicator-side condition that is a hard error rather than
// a neutral default.
func (g *Generator) Generate(s *core.Series, symbol string) (*Signal, error) {
	start := time.Now()

	have := 0
	if s != nil {
		have = s.Len()
	}
	if have < g.cfg.MinHistory {
		return nil, core.Errorf(core.ErrInsufficientData,
			"%s: need at least %d candles, have %d", symbol, g.cfg.MinHistory, have)
	}

	snap := Snapshot{
		RSI:        indicator.RSI(s.Closes, indicator.DefaultRSIPeriod),
		MACD:       indicator.MACD(s.Closes, indicator.DefaultMACDFast, indicator.DefaultMACDSlow, indicator.DefaultMACDSignal),
		Bollinger:  indicator.Bollinger(s.Closes, indicator.DefaultBollingerPeriod, indicator.DefaultBollingerK),
		ADX:        indicator.ADX(s, indicator.DefaultADXPeriod),
		ATR:        indicator.ATR(s, indicator.DefaultATRPeriod),
		Stochastic: indicator.Stochastic(s, indicator.DefaultStochasticK, indicator.DefaultStochasticD),
		VWAP:       indicator.VWAP(s),
		SuperTrend: indicator.SuperTrend(s, indicator.DefaultSuperTrendPeriod, indicator.DefaultSuperTrendMultiplier),
		Ichimoku:   indicator.Ichimoku(s),
		SAR:        indicator.ParabolicSAR(s, indicator.DefaultSARAcceleration, indicator.DefaultSARMax),
	}
	riskScore := g.scorer.Score(s)

	score, reasons := g.score(s, snap, riskScore)

	action := core.ActionHold
	switch {
	case score > g.cfg.BuyThreshold:
		action = core.ActionBuy
	case score < g.cfg.SellThreshold:
		action = core.ActionSell
	}

	sig := &Signal{
		Symbol:      symbol,
		Action:      action,
		Confidence:  core.Round2(math.Min(math.Abs(score), 100)),
		EntryPrice:  core.Round2(s.LastClose()),
		Reasons:     reasons,
		Risk:        riskScore,
		Indicators:  snap,
		GeneratedAt: s.Last().Time,
	}
	if lv := PriceLevels(action, sig.EntryPrice, snap.ATR.Value, riskScore.Level); lv != nil {
		sig.TargetPrice = &lv.Target
		sig.StopLoss = &lv.Stop
		sig.RiskReward = &lv.RiskReward
	}

	g.metrics.SignalGenerated(string(action))
	g.metrics.ObserveAnalysis(time.Since(start).Seconds())
	g.logger.Debug("signal generated",
		zap.String("symbol", symbol),
		zap.String("action", string(action)),
		zap.Float64("confidence", sig.Confidence),
		zap.Int("reasons", len(reasons)),
	)
	return sig, nil
}

// score sums the weighted indicator votes in a fixed evaluation order.
// Every non-neutral factor appends one reason, so the reason list order
// mirrors the order below.
func (g *Generator) score(s *core.Series, snap Snapshot, riskScore risk.Score) (float64, []string) {
	var score float64
	var reasons []string
	add := func(contribution float64, reason string) {
		score += contribution
		reasons = append(reasons, reason)
	}

	// RSI
	switch {
	case snap.RSI < 30:
		add(weightRSI, fmt.Sprintf("RSI %.2f oversold, rebound likely", snap.RSI))
	case snap.RSI < 40:
		add(weightRSI/2, fmt.Sprintf("RSI %.2f approaching oversold", snap.RSI))
	case snap.RSI > 70:
		add(-weightRSI, fmt.Sprintf("RSI %.2f overbought, pullback likely", snap.RSI))
	case snap.RSI > 60:
		add(-weightRSI/2, fmt.Sprintf("RSI %.2f approaching overbought", snap.RSI))
	}

	// MACD
	switch {
	case snap.MACD.Histogram > 0:
		add(weightMACD, fmt.Sprintf("MACD above signal line, histogram %.2f", snap.MACD.Histogram))
	case snap.MACD.Histogram < 0:
		add(-weightMACD, fmt.Sprintf("MACD below signal line, histogram %.2f", snap.MACD.Histogram))
	}

	// Bollinger %B
	if snap.Bollinger.Middle != 0 {
		switch pb := snap.Bollinger.PercentB; {
		case pb <= 0:
			add(weightBollinger, fmt.Sprintf("price below lower Bollinger band, %%B %.3f", pb))
		case pb < 0.2:
			add(weightBollinger/2, fmt.Sprintf("price near lower Bollinger band, %%B %.3f", pb))
		case pb >= 1:
			add(-weightBollinger, fmt.Sprintf("price above upper Bollinger band, %%B %.3f", pb))
		case pb > 0.8:
			add(-weightBollinger/2, fmt.Sprintf("price near upper Bollinger band, %%B %.3f", pb))
		}
	}

	// ADX: direction from the DI spread, strength from the ADX bucket.
	if snap.ADX.ADX >= 20 && snap.ADX.PlusDI != snap.ADX.MinusDI {
		strength := 0.5
		if snap.ADX.ADX >= 30 {
			strength = 1
		}
		if snap.ADX.PlusDI > snap.ADX.MinusDI {
			add(weightADX*strength, fmt.Sprintf("ADX %.2f %s uptrend", snap.ADX.ADX, snap.ADX.Trend))
		} else {
			add(-weightADX*strength, fmt.Sprintf("ADX %.2f %s downtrend", snap.ADX.ADX, snap.ADX.Trend))
		}
	}

	// Stochastic
	switch snap.Stochastic.Zone {
	case indicator.ZoneOversold:
		add(weightStochastic, fmt.Sprintf("stochastic oversold, K %.2f D %.2f", snap.Stochastic.K, snap.Stochastic.D))
	case indicator.ZoneOverbought:
		add(-weightStochastic, fmt.Sprintf("stochastic overbought, K %.2f D %.2f", snap.Stochastic.K, snap.Stochastic.D))
	}

	// VWAP
	price := s.LastClose()
	if snap.VWAP > 0 {
		switch {
		case price > snap.VWAP:
			add(weightVWAP, fmt.Sprintf("price %.2f above VWAP %.2f", price, snap.VWAP))
		case price < snap.VWAP:
			add(-weightVWAP, fmt.Sprintf("price %.2f below VWAP %.2f", price, snap.VWAP))
		}
	}

	// SuperTrend
	switch snap.SuperTrend.Direction {
	case indicator.DirectionUp:
		add(weightSuperTrend, fmt.Sprintf("SuperTrend up, trailing band %.2f", snap.SuperTrend.Value))
	case indicator.DirectionDown:
		add(-weightSuperTrend, fmt.Sprintf("SuperTrend down, trailing band %.2f", snap.SuperTrend.Value))
	}

	// Ichimoku
	switch snap.Ichimoku.Bias {
	case indicator.BiasBullish:
		add(weightIchimoku, "price above Ichimoku cloud, Tenkan above Kijun")
	case indicator.BiasBearish:
		add(-weightIchimoku, "price below Ichimoku cloud, Tenkan below Kijun")
	}

	// Parabolic SAR
	switch snap.SAR.Trend {
	case indicator.DirectionUp:
		add(weightSAR, fmt.Sprintf("Parabolic SAR %.2f below price", snap.SAR.SAR))
	case indicator.DirectionDown:
		add(-weightSAR, fmt.Sprintf("Parabolic SAR %.2f above price", snap.SAR.SAR))
	}

	// Volume confirmation: an elevated bar votes with the bar's direction.
	if riskScore.VolumeRatio >= 1.5 && s.Len() >= 2 {
		change := s.Closes[s.Len()-1] - s.Closes[s.Len()-2]
		switch {
		case change > 0:
			add(weightVolume, fmt.Sprintf("volume %.2fx average confirming up move", riskScore.VolumeRatio))
		case change < 0:
			add(-weightVolume, fmt.Sprintf("volume %.2fx average confirming down move", riskScore.VolumeRatio))
		}
	}

	// Risk adjustment: calm tape adds conviction, hostile tape removes it.
	switch riskScore.Level {
	case risk.LevelLow:
		add(weightRisk, fmt.Sprintf("risk score %.2f, calm conditions", riskScore.Score))
	case risk.LevelHigh:
		add(-weightRisk/2, fmt.Sprintf("risk score %.2f, elevated risk", riskScore.Score))
	case risk.LevelExtreme:
		add(-weightRisk, fmt.Sprintf("risk score %.2f, extreme risk", riskScore.Score))
	}

	return score, reasons
}
