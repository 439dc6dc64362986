package s1_universe

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/screener/pkg/logger"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		raw     string
		want    string
		wantErr bool
	}{
		{"tcs", "TCS.NS", false},
		{"  infy \n", "INFY.NS", false},
		{"RELIANCE.NS", "RELIANCE.NS", false},
		{"reliance.bo", "RELIANCE.BO", false},
		{"M&M", "M&M.NS", false},
		{"bajaj-auto", "BAJAJ-AUTO.NS", false},
		{"", "", true},
		{"   ", "", true},
		{"TCS.NS.X", "", true},
		{"$TCS", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := Normalize(tt.raw, ".NS")
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBuilder_DedupePreservesOrder(t *testing.T) {
	b := NewBuilder(Config{ExchangeSuffix: ".NS"}, logger.Nop())

	u, err := b.Build(context.Background(), []string{"infy", "TCS", "INFY.NS", " tcs ", "sbin", ""})
	require.NoError(t, err)
	assert.Equal(t, []string{"INFY.NS", "TCS.NS", "SBIN.NS"}, u.Stocks)
	assert.Equal(t, []string{""}, u.ExcludedEntries())
}

func TestBuilder_Build(t *testing.T) {
	b := NewBuilder(Config{ExchangeSuffix: ".NS"}, logger.Nop())

	u, err := b.Build(context.Background(), []string{"wipro", "WIPRO.NS", "??", "itc"})
	require.NoError(t, err)

	assert.Equal(t, []string{"WIPRO.NS", "ITC.NS"}, u.Stocks)
	assert.Equal(t, 4, u.TotalCount)
	assert.Equal(t, []string{"??"}, u.ExcludedEntries())
	assert.Contains(t, u.Excluded["??"], "invalid identifier")
}

func TestBuilder_DefaultUniverse(t *testing.T) {
	b := NewBuilder(Config{}, logger.Nop())

	u, err := b.Build(context.Background(), nil)
	require.NoError(t, err)

	assert.Equal(t, 50, u.Count())
	assert.Empty(t, u.Excluded)
	for _, s := range u.Stocks {
		assert.True(t, strings.HasSuffix(s, ".NS"), s)
	}
}

func TestBuilder_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewBuilder(Config{}, logger.Nop()).Build(ctx, []string{"TCS"})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCompanyCode(t *testing.T) {
	assert.Equal(t, "TCS", CompanyCode("TCS.NS"))
	assert.Equal(t, "M&M", CompanyCode("M&M.NS"))
	assert.Equal(t, "INFY", CompanyCode("INFY"))
}

func TestDefaultNifty50IsCopy(t *testing.T) {
	a := DefaultNifty50()
	a[0] = "CHANGED"
	assert.NotEqual(t, "CHANGED", DefaultNifty50()[0])
}

func TestParseList(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "csv with symbol column",
			input: "Name,Symbol,Qty\nTata Consultancy,TCS,10\nInfosys,INFY,5\n",
			want:  []string{"TCS", "INFY"},
		},
		{
			name:  "csv with ticker column and blank cell",
			input: "ticker\nRELIANCE.NS\n\nHDFCBANK\n",
			want:  []string{"RELIANCE.NS", "HDFCBANK"},
		},
		{
			name:  "free text",
			input: "TCS, INFY; wipro\nSBIN",
			want:  []string{"TCS", "INFY", "wipro", "SBIN"},
		},
		{
			name:  "empty",
			input: "",
			want:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseList(strings.NewReader(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
