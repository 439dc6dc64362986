package selection

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/screener/internal/contracts"
	"github.com/wonny/screener/internal/s3_scoring"
	"github.com/wonny/screener/pkg/logger"
)

// totalsScorer scores each symbol with a fixed total
type totalsScorer map[string]int

func (s totalsScorer) Score(rec *contracts.MetricRecord) contracts.ScoreRecord {
	var out contracts.ScoreRecord
	out.Add(contracts.Growth, s[rec.Symbol()])
	return out
}

func rec(symbol string) *contracts.MetricRecord {
	return contracts.NewMetricBuilder(symbol).Build()
}

func TestRank_StableDescending(t *testing.T) {
	r := NewRanker(totalsScorer{"A": 3, "B": -1, "C": 3}, logger.Nop())

	result := r.Rank([]*contracts.MetricRecord{rec("A"), rec("B"), rec("C")})

	require.Len(t, result.Ranked, 3)
	assert.Equal(t, "A", result.Ranked[0].Symbol)
	assert.Equal(t, "C", result.Ranked[1].Symbol)
	assert.Equal(t, "B", result.Ranked[2].Symbol)

	for i, row := range result.Ranked {
		assert.Equal(t, i+1, row.Rank)
	}
}

func TestRank_UnavailableExcluded(t *testing.T) {
	failed := contracts.NewMetricBuilder("BAD.NS").
		SetFloat(contracts.ROE, 40).
		SetError(errors.New("history: not found")).
		Build()

	r := NewRanker(s3_scoring.NewDefaultScorer(), logger.Nop())
	result := r.Rank([]*contracts.MetricRecord{failed, rec("EMPTY.NS"), nil})

	require.Len(t, result.Ranked, 1)
	assert.Equal(t, "EMPTY.NS", result.Ranked[0].Symbol)
	assert.Equal(t, 0, result.Ranked[0].Score.Total)

	require.Len(t, result.Unavailable, 1)
	assert.Equal(t, contracts.UnavailableStock{Symbol: "BAD.NS", Reason: "history: not found"}, result.Unavailable[0])
}

func TestRank_AllAbsentRecordIsKept(t *testing.T) {
	good := contracts.NewMetricBuilder("GOOD.NS").SetFloat(contracts.ROE, 20).Build()
	bad := contracts.NewMetricBuilder("WEAK.NS").SetFloat(contracts.ROE, 5).Build()

	r := NewRanker(s3_scoring.NewDefaultScorer(), logger.Nop())
	result := r.Rank([]*contracts.MetricRecord{rec("EMPTY.NS"), bad, good})

	require.Len(t, result.Ranked, 3)
	assert.Equal(t, []string{"GOOD.NS", "EMPTY.NS", "WEAK.NS"}, symbols(result))
}

func TestRank_Empty(t *testing.T) {
	r := NewRanker(totalsScorer{}, logger.Nop())
	r.now = func() time.Time { return time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC) }

	result := r.Rank(nil)
	assert.True(t, result.Empty())
	assert.Equal(t, 2026, result.GeneratedAt.Year())
}

func TestRank_CarriesCompanyName(t *testing.T) {
	named := contracts.NewMetricBuilder("TCS.NS").SetCompanyName("Tata Consultancy Services").Build()

	result := NewRanker(totalsScorer{}, logger.Nop()).Rank([]*contracts.MetricRecord{named})
	require.Len(t, result.Ranked, 1)
	assert.Equal(t, "Tata Consultancy Services", result.Ranked[0].Name)
	assert.Same(t, named, result.Ranked[0].Metrics)
}

func symbols(b *contracts.BatchResult) []string {
	out := make([]string, 0, len(b.Ranked))
	for _, row := range b.Ranked {
		out = append(out, row.Symbol)
	}
	return out
}
