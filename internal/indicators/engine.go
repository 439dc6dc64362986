package indicators

import (
	"math"

	"github.com/markcheno/go-talib"

	"github.com/wonny/screener/internal/contracts"
)

// Default indicator periods
const (
	RSIPeriod  = 14
	MACDFast   = 12
	MACDSlow   = 26
	MACDSignal = 9
	SMAShort   = 50
	SMALong    = 200
)

// Engine computes RSI, MACD and moving averages from a close series
type Engine struct {
	rsiPeriod                   int
	macdFast, macdSlow, macdSig int
	smaShort, smaLong           int
}

// NewEngine creates an engine with the default periods
func NewEngine() *Engine {
	return &Engine{
		rsiPeriod: RSIPeriod,
		macdFast:  MACDFast,
		macdSlow:  MACDSlow,
		macdSig:   MACDSignal,
		smaShort:  SMAShort,
		smaLong:   SMALong,
	}
}

// Compute returns the last valid value of every indicator.
// An indicator whose lookback exceeds the series is left nil.
func (e *Engine) Compute(closes []float64) contracts.IndicatorSnapshot {
	return contracts.IndicatorSnapshot{
		RSI:            e.rsi(closes),
		MACDSignalDiff: e.macdDiff(closes),
		SMA50:          sma(closes, e.smaShort),
		SMA200:         sma(closes, e.smaLong),
	}
}

func (e *Engine) rsi(closes []float64) *float64 {
	if len(closes) < e.rsiPeriod+1 {
		return nil
	}
	return last(talib.Rsi(closes, e.rsiPeriod))
}

// macdDiff is MACD line minus signal line on the last bar
func (e *Engine) macdDiff(closes []float64) *float64 {
	if len(closes) < e.macdSlow+e.macdSig-1 {
		return nil
	}
	macd, signal, _ := talib.Macd(closes, e.macdFast, e.macdSlow, e.macdSig)
	m, s := last(macd), last(signal)
	if m == nil || s == nil {
		return nil
	}
	diff := *m - *s
	return &diff
}

func sma(closes []float64, period int) *float64 {
	if len(closes) < period {
		return nil
	}
	return last(talib.Sma(closes, period))
}

func last(series []float64) *float64 {
	if len(series) == 0 {
		return nil
	}
	v := series[len(series)-1]
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}
