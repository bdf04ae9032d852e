// Package signals computes standard technical indicators over a close-price
// series: simple and exponential moving averages, RSI, and MACD. Everything
// here is a pure function over the series; no state, no I/O.
package signals

import (
	"fmt"

	"github.com/fintrack/fintrack"
)

// SMA returns the simple moving average of the last period values.
// It returns false when the series is shorter than the period.
func SMA(closes []float64, period int) (float64, bool) {
	if period <= 0 || len(closes) < period {
		return 0, false
	}
	sum := 0.0
	for _, v := range closes[len(closes)-period:] {
		sum += v
	}
	return sum / float64(period), true
}

// EMA returns the exponential moving average with the standard smoothing
// factor 2/(period+1), seeded with the SMA of the first period values.
func EMA(closes []float64, period int) (float64, bool) {
	if period <= 0 || len(closes) < period {
		return 0, false
	}
	seed, _ := SMA(closes[:period], period)
	k := 2.0 / float64(period+1)
	ema := seed
	for _, v := range closes[period:] {
		ema = v*k + ema*(1-k)
	}
	return ema, true
}

// RSI returns the relative strength index over the given period, using
// Wilder's smoothing of average gains and losses.
func RSI(closes []float64, period int) (float64, bool) {
	if period <= 0 || len(closes) < period+1 {
		return 0, false
	}
	var gain, loss float64
	for i := 1; i <= period; i++ {
		delta := closes[i] - closes[i-1]
		if delta > 0 {
			gain += delta
		} else {
			loss -= delta
		}
	}
	avgGain, avgLoss := gain/float64(period), loss/float64(period)
	for i := period + 1; i < len(closes); i++ {
		delta := closes[i] - closes[i-1]
		g, l := 0.0, 0.0
		if delta > 0 {
			g = delta
		} else {
			l = -delta
		}
		avgGain = (avgGain*float64(period-1) + g) / float64(period)
		avgLoss = (avgLoss*float64(period-1) + l) / float64(period)
	}
	if avgLoss == 0 {
		return 100, true
	}
	rs := avgGain / avgLoss
	return 100 - 100/(1+rs), true
}

// MACD returns the MACD line (EMA12 - EMA26) and its 9-period signal line.
func MACD(closes []float64) (macd, signal float64, ok bool) {
	const fast, slow, span = 12, 26, 9
	if len(closes) < slow+span {
		return 0, 0, false
	}
	// the signal line is the EMA of the MACD series, so the MACD line is
	// computed at each point once both EMAs are defined
	var macds []float64
	for i := slow; i <= len(closes); i++ {
		f, _ := EMA(closes[:i], fast)
		s, _ := EMA(closes[:i], slow)
		macds = append(macds, f-s)
	}
	signal, ok = EMA(macds, span)
	if !ok {
		return 0, 0, false
	}
	return macds[len(macds)-1], signal, true
}

// Report is the indicator summary for one symbol.
type Report struct {
	Symbol     string  `json:"symbol"`
	Last       float64 `json:"last"`
	SMA20      float64 `json:"sma_20,omitempty"`
	SMA50      float64 `json:"sma_50,omitempty"`
	RSI14      float64 `json:"rsi_14,omitempty"`
	MACD       float64 `json:"macd,omitempty"`
	MACDSignal float64 `json:"macd_signal,omitempty"`
	Trend      string  `json:"trend"`
}

// Analyze computes the report for a close-price series. Indicators that
// need more data than the series holds are left at zero; the trend reading
// uses whatever is available.
func Analyze(symbol string, history []fintrack.ClosePrice) (*Report, error) {
	if len(history) == 0 {
		return nil, fmt.Errorf("no price history for %q", symbol)
	}
	closes := make([]float64, len(history))
	for i, p := range history {
		closes[i] = p.Close.Float64()
	}
	r := &Report{Symbol: symbol, Last: closes[len(closes)-1]}
	r.SMA20, _ = SMA(closes, 20)
	r.SMA50, _ = SMA(closes, 50)
	r.RSI14, _ = RSI(closes, 14)
	r.MACD, r.MACDSignal, _ = MACD(closes)
	r.Trend = trend(r)
	return r, nil
}

// trend turns the indicators into a one-word reading.
func trend(r *Report) string {
	switch {
	case r.RSI14 >= 70:
		return "overbought"
	case r.RSI14 > 0 && r.RSI14 <= 30:
		return "oversold"
	case r.SMA20 > 0 && r.Last > r.SMA20:
		return "bullish"
	case r.SMA20 > 0 && r.Last < r.SMA20:
		return "bearish"
	default:
		return "neutral"
	}
}
