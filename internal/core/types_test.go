package core

import (
	"testing"
	"time"
)

func candles(closes ...float64) []Candle {
	base := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	out := make([]Candle, len(closes))
	for i, c := range closes {
		out[i] = Candle{
			Time:   base.AddDate(0, 0, i),
			Open:   c,
			High:   c + 1,
			Low:    c - 1,
			Close:  c,
			Volume: 1000,
		}
	}
	return out
}

func TestNewSeries_DerivedSlices(t *testing.T) {
	s := NewSeries(candles(10, 11, 12))

	if s.Len() != 3 {
		t.Fatalf("Len = %d, want 3", s.Len())
	}
	if s.Closes[1] != 11 {
		t.Errorf("Closes[1] = %f, want 11", s.Closes[1])
	}
	if s.Highs[2] != 13 {
		t.Errorf("Highs[2] = %f, want 13", s.Highs[2])
	}
	if s.Lows[0] != 9 {
		t.Errorf("Lows[0] = %f, want 9", s.Lows[0])
	}
	if s.LastClose() != 12 {
		t.Errorf("LastClose = %f, want 12", s.LastClose())
	}
}

func TestSeries_Slice(t *testing.T) {
	s := NewSeries(candles(1, 2, 3, 4, 5))
	sub := s.Slice(1, 4)

	if sub.Len() != 3 {
		t.Fatalf("sub.Len = %d, want 3", sub.Len())
	}
	if sub.Closes[0] != 2 || sub.LastClose() != 4 {
		t.Errorf("slice closes = %v, want [2 3 4]", sub.Closes)
	}
}

func TestSeries_EmptyLastClose(t *testing.T) {
	s := NewSeries(nil)
	if s.LastClose() != 0 {
		t.Errorf("LastClose on empty series = %f, want 0", s.LastClose())
	}
}
