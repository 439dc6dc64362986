package s2_metrics

import (
	"github.com/wonny/screener/internal/contracts"
	"github.com/wonny/screener/pkg/logger"
)

// TechnicalCalculator derives RSI, MACD and moving-average metrics from price history
// ⭐ SSOT: 기술적 지표 판정은 여기서만
type TechnicalCalculator struct {
	engine contracts.IndicatorEngine
	logger *logger.Logger
}

// NewTechnicalCalculator creates a new technical calculator
func NewTechnicalCalculator(engine contracts.IndicatorEngine, log *logger.Logger) *TechnicalCalculator {
	return &TechnicalCalculator{
		engine: engine,
		logger: log,
	}
}

// Calculate reads only the last value of each indicator series.
// Price_above_xMA is true when the latest close is strictly above the average.
func (c *TechnicalCalculator) Calculate(symbol string, bars []contracts.PriceBar, b *contracts.MetricBuilder) {
	if len(bars) == 0 {
		return
	}

	closes := contracts.Closes(bars)
	lastClose := closes[len(closes)-1]
	b.SetLastClose(lastClose)

	snap := c.engine.Compute(closes)

	b.SetFloatPtr(contracts.RSI, snap.RSI)
	b.SetFloatPtr(contracts.MACDSignalDiff, snap.MACDSignalDiff)
	if snap.SMA50 != nil {
		b.SetBool(contracts.PriceAbove50MA, lastClose > *snap.SMA50)
	}
	if snap.SMA200 != nil {
		b.SetBool(contracts.PriceAbove200MA, lastClose > *snap.SMA200)
	}

	c.logger.WithFields(map[string]interface{}{
		"symbol":     symbol,
		"bars":       len(bars),
		"last_close": lastClose,
		"has_sma200": snap.SMA200 != nil,
	}).Debug("Calculated technical metrics")
}
