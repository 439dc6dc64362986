package selection

import (
	"sort"
	"time"

	"github.com/wonny/screener/internal/contracts"
	"github.com/wonny/screener/pkg/logger"
)

// Ranker implements S4: ordering a batch of records by total score
// ⭐ SSOT: S4 랭킹 로직은 여기서만
type Ranker struct {
	scorer contracts.RecordScorer
	logger *logger.Logger
	now    func() time.Time
}

// NewRanker creates a new ranker
func NewRanker(scorer contracts.RecordScorer, logger *logger.Logger) *Ranker {
	return &Ranker{
		scorer: scorer,
		logger: logger,
		now:    time.Now,
	}
}

// Rank scores every usable record and sorts by Total descending.
// Ties keep input (fetch) order. Errored records go to Unavailable.
func (r *Ranker) Rank(records []*contracts.MetricRecord) *contracts.BatchResult {
	result := &contracts.BatchResult{
		Ranked:      make([]contracts.RankedStock, 0, len(records)),
		Unavailable: make([]contracts.UnavailableStock, 0),
		GeneratedAt: r.now(),
	}

	for _, rec := range records {
		if rec == nil {
			continue
		}
		if rec.Failed() {
			result.Unavailable = append(result.Unavailable, contracts.UnavailableStock{
				Symbol: rec.Symbol(),
				Reason: rec.Err().Error(),
			})
			continue
		}

		result.Ranked = append(result.Ranked, contracts.RankedStock{
			Symbol:  rec.Symbol(),
			Name:    rec.CompanyName(),
			Metrics: rec,
			Score:   r.scorer.Score(rec),
		})
	}

	// Sort by total score (descending), stable for ties
	sort.SliceStable(result.Ranked, func(i, j int) bool {
		return result.Ranked[i].Score.Total > result.Ranked[j].Score.Total
	})

	// Assign ranks
	for i := range result.Ranked {
		result.Ranked[i].Rank = i + 1
	}

	fields := map[string]interface{}{
		"total_stocks": len(result.Ranked),
		"unavailable":  len(result.Unavailable),
	}
	if !result.Empty() {
		fields["top_score"] = result.Ranked[0].Score.Total
		fields["top_symbol"] = result.Ranked[0].Symbol
	}
	r.logger.WithFields(fields).Info("Ranking completed")

	return result
}
