package s2_metrics

import (
	"github.com/wonny/screener/internal/contracts"
)

// applyOwnership copies scraped ownership fields onto the record
func applyOwnership(o *contracts.OwnershipData, b *contracts.MetricBuilder) {
	if o == nil {
		return
	}
	b.SetFloatPtr(contracts.PromoterHolding, o.PromoterHolding)
	if o.PledgedPercent != nil {
		b.SetFloat(contracts.PledgedPercent, *o.PledgedPercent)
		b.SetPledgeFromPattern(o.PledgeFromPattern)
	}
}
