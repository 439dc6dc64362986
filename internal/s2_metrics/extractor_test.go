package s2_metrics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/screener/internal/contracts"
	"github.com/wonny/screener/internal/indicators"
	"github.com/wonny/screener/pkg/logger"
	"github.com/wonny/screener/pkg/metrics"
)

func okPrices() priceFunc {
	return func(ctx context.Context, symbol string) ([]contracts.PriceBar, error) {
		return rampBars(250), nil
	}
}

func okFundamentals() fundamentalsFunc {
	return func(ctx context.Context, symbol string) (*contracts.Fundamentals, error) {
		return sampleFundamentals(), nil
	}
}

func okOwnership(t *testing.T) ownershipFunc {
	return func(ctx context.Context, code string) (*contracts.OwnershipData, error) {
		assert.Equal(t, "SAMPLE", code, "exchange suffix stripped")
		return &contracts.OwnershipData{PromoterHolding: ptr(60), PledgedPercent: ptr(0), PledgeFromPattern: true}, nil
	}
}

func newExtractor(p contracts.PriceProvider, f contracts.FundamentalsProvider, o contracts.OwnershipScraper) *Extractor {
	return NewExtractor(p, f, o, indicators.NewEngine(), logger.Nop(), metrics.New())
}

func TestExtractor_AllSources(t *testing.T) {
	rec := newExtractor(okPrices(), okFundamentals(), okOwnership(t)).Extract(context.Background(), "SAMPLE.NS")

	assert.False(t, rec.Failed())
	assert.Equal(t, "SAMPLE.NS", rec.Symbol())
	assert.Equal(t, "Sample Ltd", rec.CompanyName())
	assert.Equal(t, len(contracts.AllMetrics), rec.Len(), "every metric derivable: %v", rec.Present())
	assert.True(t, rec.PledgeFromPattern())

	pledged, ok := rec.Float(contracts.PledgedPercent)
	assert.True(t, ok)
	assert.Equal(t, 0.0, pledged)
}

func TestExtractor_HistoryFailureMarksUnavailable(t *testing.T) {
	notFound := errors.New("symbol may be delisted")
	prices := priceFunc(func(ctx context.Context, symbol string) ([]contracts.PriceBar, error) {
		return nil, notFound
	})

	rec := newExtractor(prices, okFundamentals(), nil).Extract(context.Background(), "SAMPLE.NS")

	assert.True(t, rec.Failed())
	assert.ErrorIs(t, rec.Err(), notFound)
	// partial fields from other sub-fetches are kept
	assert.True(t, rec.Has(contracts.ROE))
	assert.False(t, rec.Has(contracts.RSI))
}

func TestExtractor_OwnershipFailureIsSoft(t *testing.T) {
	own := ownershipFunc(func(ctx context.Context, code string) (*contracts.OwnershipData, error) {
		return nil, errors.New("502 bad gateway")
	})

	rec := newExtractor(okPrices(), okFundamentals(), own).Extract(context.Background(), "SAMPLE.NS")

	assert.False(t, rec.Failed())
	assert.False(t, rec.Has(contracts.PromoterHolding))
	assert.False(t, rec.Has(contracts.PledgedPercent))
	assert.True(t, rec.Has(contracts.RSI))
	assert.True(t, rec.Has(contracts.PE))
}

func TestExtractor_RecoversPanics(t *testing.T) {
	fund := fundamentalsFunc(func(ctx context.Context, symbol string) (*contracts.Fundamentals, error) {
		panic("unexpected payload")
	})

	var rec *contracts.MetricRecord
	require.NotPanics(t, func() {
		rec = newExtractor(okPrices(), fund, nil).Extract(context.Background(), "SAMPLE.NS")
	})

	assert.False(t, rec.Failed())
	assert.True(t, rec.Has(contracts.PriceAbove200MA))
	assert.False(t, rec.Has(contracts.PE))
}

func TestExtractor_RejectsUnorderedStatement(t *testing.T) {
	fund := fundamentalsFunc(func(ctx context.Context, symbol string) (*contracts.Fundamentals, error) {
		f := sampleFundamentals()
		// oldest first: violates the most-recent-first precondition
		f.Income.Periods[0], f.Income.Periods[2] = f.Income.Periods[2], f.Income.Periods[0]
		return f, nil
	})

	rec := newExtractor(okPrices(), fund, nil).Extract(context.Background(), "SAMPLE.NS")

	assert.False(t, rec.Has(contracts.RevCAGR))
	assert.False(t, rec.Has(contracts.ROE))
	assert.True(t, rec.Has(contracts.CurrentRatio), "balance sheet still valid")
}

func TestExtractor_RespectsContext(t *testing.T) {
	slow := priceFunc(func(ctx context.Context, symbol string) ([]contracts.PriceBar, error) {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(time.Second):
			return rampBars(10), nil
		}
	})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	rec := newExtractor(slow, okFundamentals(), nil).Extract(ctx, "SAMPLE.NS")
	assert.ErrorIs(t, rec.Err(), context.DeadlineExceeded)
}
