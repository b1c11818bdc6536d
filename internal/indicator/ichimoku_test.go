package indicator

import "testing"

func TestIchimoku_InsufficientData(t *testing.T) {
	closes := make([]float64, 51)
	for i := range closes {
		closes[i] = 100
	}
	got := Ichimoku(testSeries(1, closes...))
	if got.Bias != BiasNeutral || got.Tenkan != 0 || got.SenkouB != 0 {
		t.Errorf("ichimoku on short input = %+v, want all-zero neutral", got)
	}
}

func TestIchimoku_BullishUptrend(t *testing.T) {
	closes := make([]float64, 60)
	for i := range closes {
		closes[i] = 100 + 2*float64(i)
	}
	got := Ichimoku(testSeries(1, closes...))

	if got.Bias != BiasBullish {
		t.Errorf("Bias = %q, want %q", got.Bias, BiasBullish)
	}
	if got.Tenkan <= got.Kijun {
		t.Errorf("Tenkan %f should exceed Kijun %f in an uptrend", got.Tenkan, got.Kijun)
	}
	if got.SenkouA <= got.SenkouB {
		t.Errorf("Senkou A %f should exceed Senkou B %f in an uptrend", got.SenkouA, got.SenkouB)
	}
}

func TestIchimoku_BearishDowntrend(t *testing.T) {
	closes := make([]float64, 60)
	for i := range closes {
		closes[i] = 300 - 2*float64(i)
	}
	got := Ichimoku(testSeries(1, closes...))

	if got.Bias != BiasBearish {
		t.Errorf("Bias = %q, want %q", got.Bias, BiasBearish)
	}
}

func TestIchimoku_ChikouIsDisplacedClose(t *testing.T) {
	closes := make([]float64, 60)
	for i := range closes {
		closes[i] = float64(i)
	}
	got := Ichimoku(testSeries(1, closes...))

	// Close from 26 periods back: index 60-26 = 34.
	if got.Chikou != 34 {
		t.Errorf("Chikou = %f, want 34", got.Chikou)
	}
}
