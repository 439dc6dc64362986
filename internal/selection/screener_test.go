package selection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/screener/internal/contracts"
	"github.com/wonny/screener/pkg/logger"
)

func ranked() *contracts.BatchResult {
	scorer := totalsScorer{"A": 5, "B": 3, "C": 3, "D": 0, "E": -2}
	roe := contracts.NewMetricBuilder("C").SetFloat(contracts.ROE, 12).Build()

	result := NewRanker(scorer, logger.Nop()).Rank([]*contracts.MetricRecord{
		rec("A"), rec("B"), roe, rec("D"), rec("E"),
	})
	result.RulesHash = "abc"
	result.Unavailable = []contracts.UnavailableStock{{Symbol: "X", Reason: "timeout"}}
	return result
}

func intPtr(v int) *int { return &v }

func TestScreen(t *testing.T) {
	tests := []struct {
		name string
		opts ScreenOptions
		want []string
	}{
		{"no cuts", ScreenOptions{}, []string{"A", "B", "C", "D", "E"}},
		{"top 2", ScreenOptions{TopN: 2}, []string{"A", "B"}},
		{"min total 0", ScreenOptions{MinTotal: intPtr(0)}, []string{"A", "B", "C", "D"}},
		{"min total and top", ScreenOptions{MinTotal: intPtr(3), TopN: 10}, []string{"A", "B", "C"}},
		{"min growth", ScreenOptions{MinCategory: map[contracts.Category]int{contracts.Growth: 4}}, []string{"A"}},
		{"require ROE", ScreenOptions{Require: []contracts.MetricName{contracts.ROE}}, []string{"C"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := Screen(ranked(), tt.opts)
			assert.Equal(t, tt.want, symbols(out))
			assert.Equal(t, "abc", out.RulesHash)
			assert.Len(t, out.Unavailable, 1)
		})
	}
}

func TestScreen_KeepsRanks(t *testing.T) {
	out := Screen(ranked(), ScreenOptions{Require: []contracts.MetricName{contracts.ROE}})
	require.Len(t, out.Ranked, 1)
	assert.Equal(t, 3, out.Ranked[0].Rank)
}

func TestScreen_DoesNotMutateInput(t *testing.T) {
	in := ranked()
	Screen(in, ScreenOptions{TopN: 1})
	assert.Len(t, in.Ranked, 5)
}

func TestScreen_Nil(t *testing.T) {
	assert.True(t, Screen(nil, ScreenOptions{TopN: 3}).Empty())
}

func TestScreener_Filters(t *testing.T) {
	_, filtered := screen(ranked(), ScreenOptions{TopN: 1, MinTotal: intPtr(0)})
	assert.Equal(t, map[string]int{"min_total": 1, "top_n": 3}, filtered)

	out := NewScreener(ScreenOptions{TopN: 1}, logger.Nop()).Screen(ranked())
	assert.Equal(t, []string{"A"}, symbols(out))
}
