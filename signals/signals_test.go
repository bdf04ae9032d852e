package signals

import (
	"math"
	"testing"

	"github.com/fintrack/fintrack"
)

func almost(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestSMA(t *testing.T) {
	closes := []float64{1, 2, 3, 4, 5}
	testCases := []struct {
		name   string
		period int
		want   float64
		wantOK bool
	}{
		{"last three", 3, 4, true},
		{"whole series", 5, 3, true},
		{"not enough data", 6, 0, false},
		{"zero period", 0, 0, false},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := SMA(closes, tc.period)
			if ok != tc.wantOK || !almost(got, tc.want) {
				t.Errorf("SMA(%d) = %v, %v, want %v, %v", tc.period, got, ok, tc.want, tc.wantOK)
			}
		})
	}
}

func TestEMA(t *testing.T) {
	// seed = SMA(1,2,3) = 2; k = 0.5
	// then 4: 4*0.5 + 2*0.5 = 3; then 5: 5*0.5 + 3*0.5 = 4
	got, ok := EMA([]float64{1, 2, 3, 4, 5}, 3)
	if !ok || !almost(got, 4) {
		t.Errorf("EMA = %v, %v, want 4, true", got, ok)
	}
	if _, ok := EMA([]float64{1, 2}, 3); ok {
		t.Error("EMA with a short series reported ok")
	}
}

func TestRSI(t *testing.T) {
	t.Run("all gains saturate at 100", func(t *testing.T) {
		closes := []float64{1, 2, 3, 4, 5, 6}
		got, ok := RSI(closes, 5)
		if !ok || !almost(got, 100) {
			t.Errorf("RSI = %v, %v, want 100, true", got, ok)
		}
	})
	t.Run("balanced gains and losses sit at 50", func(t *testing.T) {
		closes := []float64{10, 11, 10, 11, 10, 11, 10}
		got, ok := RSI(closes, 6)
		if !ok || !almost(got, 50) {
			t.Errorf("RSI = %v, %v, want 50, true", got, ok)
		}
	})
	t.Run("needs period+1 points", func(t *testing.T) {
		if _, ok := RSI([]float64{1, 2, 3}, 3); ok {
			t.Error("RSI with too few points reported ok")
		}
	})
	t.Run("stays within bounds", func(t *testing.T) {
		closes := []float64{50, 48, 52, 47, 53, 49, 51, 46, 54, 50, 48, 52, 47, 53, 49, 51}
		got, ok := RSI(closes, 14)
		if !ok || got < 0 || got > 100 {
			t.Errorf("RSI = %v, %v, want within [0, 100]", got, ok)
		}
	})
}

func TestMACD(t *testing.T) {
	if _, _, ok := MACD(make([]float64, 30)); ok {
		t.Error("MACD with a short series reported ok")
	}
	// a steadily rising series keeps the fast EMA above the slow one
	closes := make([]float64, 60)
	for i := range closes {
		closes[i] = 100 + float64(i)
	}
	macd, signal, ok := MACD(closes)
	if !ok {
		t.Fatal("MACD reported not ok on 60 points")
	}
	if macd <= 0 {
		t.Errorf("macd = %v, want positive on a rising series", macd)
	}
	if signal <= 0 {
		t.Errorf("signal = %v, want positive on a rising series", signal)
	}
}

func TestAnalyze(t *testing.T) {
	day := fintrack.MustParseDate("2025-01-01")
	var history []fintrack.ClosePrice
	for i := 0; i < 60; i++ {
		history = append(history, fintrack.ClosePrice{
			Date:  day.Add(i),
			Close: fintrack.USD(100 + float64(i)),
		})
	}
	r, err := Analyze("AAPL", history)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if r.Symbol != "AAPL" || !almost(r.Last, 159) {
		t.Errorf("report = %+v, want symbol AAPL, last 159", r)
	}
	if r.SMA20 == 0 || r.SMA50 == 0 || r.RSI14 == 0 {
		t.Errorf("report = %+v, want all indicators computed on 60 points", r)
	}
	if r.Trend != "overbought" {
		t.Errorf("trend = %q, want overbought (RSI is 100 on a monotonic rise)", r.Trend)
	}

	t.Run("empty history is an error", func(t *testing.T) {
		if _, err := Analyze("AAPL", nil); err == nil {
			t.Error("Analyze(empty) succeeded, want error")
		}
	})
}
