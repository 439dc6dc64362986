package contracts

import "time"

// RankedStock is one row of the ranked result set
// ⭐ SSOT: S4 랭킹 결과 전달
type RankedStock struct {
	Rank    int           `json:"rank"` // 1-based ranking
	Symbol  string        `json:"symbol"`
	Name    string        `json:"name,omitempty"`
	Metrics *MetricRecord `json:"metrics"`
	Score   ScoreRecord   `json:"score"`
}

// UnavailableStock is an identifier whose primary fetch failed
type UnavailableStock struct {
	Symbol string `json:"symbol"`
	Reason string `json:"reason"`
}

// BatchResult is the outcome of one run
type BatchResult struct {
	Ranked      []RankedStock      `json:"ranked"`
	Unavailable []UnavailableStock `json:"unavailable"`
	RulesHash   string             `json:"rules_hash,omitempty"`
	GeneratedAt time.Time          `json:"generated_at"`
}

// Empty is the "no data" condition: nothing could be ranked
func (b *BatchResult) Empty() bool {
	return b == nil || len(b.Ranked) == 0
}
