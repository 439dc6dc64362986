package s2_metrics

import (
	"github.com/wonny/screener/internal/contracts"
)

// ValuationCalculator copies P/E, PEG and Beta and derives EV/EBITDA
type ValuationCalculator struct{}

// NewValuationCalculator creates a new valuation calculator
func NewValuationCalculator() *ValuationCalculator {
	return &ValuationCalculator{}
}

// Calculate sets the valuation metrics from the quote snapshot
func (c *ValuationCalculator) Calculate(q contracts.QuoteSnapshot, b *contracts.MetricBuilder) {
	b.SetFloatPtr(contracts.PE, q.TrailingPE)
	b.SetFloatPtr(contracts.PEG, q.PEG)
	// scored under Technical, but only the quote reports it
	b.SetFloatPtr(contracts.Beta, q.Beta)

	if q.EnterpriseValue != nil && q.EBITDA != nil && *q.EBITDA != 0 {
		b.SetFloat(contracts.EVToEBITDA, *q.EnterpriseValue / *q.EBITDA)
	}
}
