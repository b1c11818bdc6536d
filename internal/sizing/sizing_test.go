// internal/sizing/sizing_test.go
package sizing

import (
	"errors"
	"testing"

	"github.com/Nikhil170404/Quantapp/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFixedDollar(t *testing.T) {
	r := FixedDollar(5000, 150)
	assert.Equal(t, 33, r.Shares)
	assert.Equal(t, 4950.0, r.DollarAmount)
	assert.Equal(t, MethodFixedDollar, r.Method)

	assert.Equal(t, 0, FixedDollar(5000, 0).Shares)
	assert.Equal(t, 0, FixedDollar(0, 150).Shares)
}

func TestFixedPercent(t *testing.T) {
	r := FixedPercent(100000, 5, 150)
	assert.Equal(t, 33, r.Shares)
	assert.Equal(t, 5.0, r.Confidence)
}

func TestKelly(t *testing.T) {
	// f* = (2*0.6 - 0.4) / 2 = 0.4, quarter-Kelly commits 10% of account.
	r := Kelly(100000, 100, 0.6, 2, 0.25)
	assert.Equal(t, 100, r.Shares)
	assert.Equal(t, 40.0, r.Confidence)
	assert.Equal(t, MethodKelly, r.Method)
}

func TestKelly_ClampUpper(t *testing.T) {
	// A certain winner computes f* = 1; the cap holds it at 0.5.
	r := Kelly(100000, 100, 1, 2, 0.25)
	assert.Equal(t, 50.0, r.Confidence)
	assert.Equal(t, 125, r.Shares)
}

func TestKelly_ClampLower(t *testing.T) {
	// A certain loser computes f* = -0.5; the clamp floors it at 0.
	r := Kelly(100000, 100, 0, 2, 0.25)
	assert.Equal(t, 0, r.Shares)
	assert.Equal(t, 0.0, r.Confidence)
}

func TestKelly_FractionDefaultsWhenUnset(t *testing.T) {
	explicit := Kelly(100000, 100, 0.6, 2, DefaultKellyFraction)
	defaulted := Kelly(100000, 100, 0.6, 2, 0)
	assert.Equal(t, explicit, defaulted)
}

func TestKelly_NoPayoffRatio(t *testing.T) {
	assert.Equal(t, 0, Kelly(100000, 100, 0.6, 0, 0.25).Shares)
}

func TestATRBased(t *testing.T) {
	// Risk 1% of 100k = 1000; stop distance 2*4 = 8 per share.
	r := ATRBased(100000, 1, 500, 4, 2)
	assert.Equal(t, 125, r.Shares)
	assert.Equal(t, 1000.0, r.RiskAmount)
	assert.Equal(t, MethodATR, r.Method)
}

func TestATRBased_CapsAtAccount(t *testing.T) {
	// A tiny ATR would size to 20000 shares; the account affords 1000.
	r := ATRBased(10000, 2, 10, 0.01, 1)
	assert.Equal(t, 1000, r.Shares)
}

func TestATRBased_ZeroATR(t *testing.T) {
	assert.Equal(t, 0, ATRBased(100000, 1, 500, 0, 2).Shares)
}

func TestVolatilityAdjusted(t *testing.T) {
	// Current vol double the target halves the base allocation.
	r := VolatilityAdjusted(100000, 10, 0.15, 0.30, 100)
	assert.Equal(t, 50, r.Shares)
	assert.Equal(t, 5.0, r.Confidence)
}

func TestVolatilityAdjusted_Clamps(t *testing.T) {
	high := VolatilityAdjusted(100000, 10, 0.5, 0.01, 100)
	assert.Equal(t, 50.0, high.Confidence)
	assert.Equal(t, 500, high.Shares)

	low := VolatilityAdjusted(100000, 10, 0.001, 1, 100)
	assert.Equal(t, 0.5, low.Confidence)
	assert.Equal(t, 5, low.Shares)
}

func TestVolatilityAdjusted_ZeroCurrentVolUsesBase(t *testing.T) {
	r := VolatilityAdjusted(100000, 10, 0.15, 0, 100)
	assert.Equal(t, 100, r.Shares)
}

func TestRiskParity(t *testing.T) {
	// Symbol twice as volatile as the portfolio, split over 4 slots:
	// weight = (0.1/0.2)/4 = 12.5% of account.
	r := RiskParity(100000, 0.2, 0.1, 100, 4)
	assert.Equal(t, 125, r.Shares)
	assert.Equal(t, 12.5, r.Confidence)

	assert.Equal(t, 0, RiskParity(100000, 0, 0.1, 100, 4).Shares)
	assert.Equal(t, 0, RiskParity(100000, 0.2, 0.1, 100, 0).Shares)
}

func TestConfidenceBased(t *testing.T) {
	assert.Equal(t, 20, ConfidenceBased(100000, 2, 10, 0, 100).Shares)
	assert.Equal(t, 60, ConfidenceBased(100000, 2, 10, 50, 100).Shares)
	assert.Equal(t, 100, ConfidenceBased(100000, 2, 10, 100, 100).Shares)

	// Out-of-range confidence clamps instead of extrapolating.
	assert.Equal(t, 100, ConfidenceBased(100000, 2, 10, 150, 100).Shares)
}

func TestOptimalSize_PicksMinimum(t *testing.T) {
	in := Inputs{
		Account:          100000,
		Price:            100,
		PercentOfAccount: 5,
		WinRate:          0.6,
		AvgWinLossRatio:  2,
		KellyFraction:    0.25,
		ATR:              4,
		ATRMultiplier:    2,
		RiskPercent:      1,
		BasePercent:      2,
		MaxPercent:       10,
		Confidence:       50,
	}

	r := OptimalSize(in)
	require.Greater(t, r.Shares, 0)
	assert.Equal(t, MethodFixedPercent, r.Method)
	assert.Equal(t, 50, r.Shares)

	// The minimum policy: never larger than any individual method.
	assert.LessOrEqual(t, r.Shares, FixedPercent(in.Account, in.PercentOfAccount, in.Price).Shares)
	assert.LessOrEqual(t, r.Shares, Kelly(in.Account, in.Price, in.WinRate, in.AvgWinLossRatio, in.KellyFraction).Shares)
	assert.LessOrEqual(t, r.Shares, ATRBased(in.Account, in.RiskPercent, in.Price, in.ATR, in.ATRMultiplier).Shares)
	assert.LessOrEqual(t, r.Shares, ConfidenceBased(in.Account, in.BasePercent, in.MaxPercent, in.Confidence, in.Price).Shares)
}

func TestOptimalSize_NoMethodsAvailable(t *testing.T) {
	r := OptimalSize(Inputs{Account: 100000, Price: 100})
	assert.Equal(t, 0, r.Shares)
	assert.Empty(t, r.Method)
}

func TestCheckHeat(t *testing.T) {
	require.NoError(t, CheckHeat([]float64{3, 4}, 2, 10))

	err := CheckHeat([]float64{3, 4}, 4, 10)
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrRiskLimitExceeded))
}

func TestCheckHeat_DefaultCeiling(t *testing.T) {
	require.NoError(t, CheckHeat([]float64{5}, 5, 0))
	require.Error(t, CheckHeat([]float64{5}, 5.5, 0))
}
