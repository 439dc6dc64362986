package s2_metrics

import (
	"math"

	"github.com/wonny/screener/internal/contracts"
	"github.com/wonny/screener/pkg/logger"
)

// GrowthCalculator derives RevCAGR and EPSCAGR from the income statement
// ⭐ SSOT: 성장률 계산은 여기서만
type GrowthCalculator struct {
	logger *logger.Logger
}

// NewGrowthCalculator creates a new growth calculator
func NewGrowthCalculator(log *logger.Logger) *GrowthCalculator {
	return &GrowthCalculator{logger: log}
}

// Calculate sets the growth metrics it can derive. Net income stands in for
// earnings, so EPSCAGR tracks net income growth.
func (c *GrowthCalculator) Calculate(symbol string, income *contracts.StatementTable, b *contracts.MetricBuilder) {
	if income == nil {
		return
	}

	for _, g := range []struct {
		metric contracts.MetricName
		item   string
	}{
		{contracts.RevCAGR, contracts.ItemTotalRevenue},
		{contracts.EPSCAGR, contracts.ItemNetIncome},
	} {
		latest, earliest, years, ok := income.Span(g.item)
		if !ok {
			continue
		}
		v, ok := CAGR(latest, earliest, years)
		if !ok {
			c.logger.WithFields(map[string]interface{}{
				"symbol":   symbol,
				"metric":   g.metric,
				"earliest": earliest,
				"latest":   latest,
			}).Debug("CAGR skipped")
			continue
		}
		b.SetFloat(g.metric, v)
	}
}

// CAGR returns (latest/earliest)^(1/years) - 1 as a percentage.
// Omitted when earliest <= 0 (no sign convention for a negative base),
// when latest < 0 or when fewer than one year separates the figures.
func CAGR(latest, earliest float64, years int) (float64, bool) {
	if years < 1 || earliest <= 0 || latest < 0 {
		return 0, false
	}
	v := (math.Pow(latest/earliest, 1/float64(years)) - 1) * 100
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
