package s3_scoring

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wonny/screener/internal/contracts"
)

func TestNarrate(t *testing.T) {
	rec := contracts.NewMetricBuilder("MIX.NS").
		SetCompanyName("Mixed Ltd").
		SetFloat(contracts.RevCAGR, 20).
		SetFloat(contracts.DividendYield, 0.04).
		SetFloat(contracts.RSI, 75).
		SetBool(contracts.PriceAbove200MA, false).
		SetFloat(contracts.Beta, 1).
		Build()

	c := NewDefaultScorer().Narrate(rec)

	assert.Equal(t, "MIX.NS", c.Symbol)
	assert.Equal(t, "Mixed Ltd", c.Name)
	assert.Equal(t, []string{
		"Revenue growth: RevCAGR 20.00% > 15%",
		"Dividend yield: DividendYield 4.00% > 3%",
	}, c.Strengths)
	assert.Equal(t, []string{
		"RSI: RSI 75.00 > 70",
		"200-day trend: Price_above_200MA is false",
	}, c.Weaknesses)
	assert.Equal(t, 0, c.Score.Total)
}

func TestNarrate_Failed(t *testing.T) {
	rec := contracts.NewMetricBuilder("BAD.NS").SetError(errors.New("not found")).Build()

	c := NewDefaultScorer().Narrate(rec)
	assert.Equal(t, "not found", c.Error)
	assert.Empty(t, c.Strengths)
	assert.Empty(t, c.Weaknesses)
}

func TestNarrate_Nil(t *testing.T) {
	c := NewDefaultScorer().Narrate(nil)
	assert.NotNil(t, c.Strengths)
	assert.NotNil(t, c.Weaknesses)
}

func TestStatement_DefaultsLabel(t *testing.T) {
	hit := RuleHit{
		Rule:      Rule{Metric: contracts.PEG},
		Value:     0.5,
		Delta:     1,
		Condition: *lt(1),
	}
	assert.Equal(t, "PEG: PEG 0.50 < 1", Statement(hit))
}
