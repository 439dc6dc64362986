package s2_metrics

import (
	"context"
	"fmt"

	"github.com/wonny/screener/internal/contracts"
	"github.com/wonny/screener/internal/s1_universe"
	"github.com/wonny/screener/pkg/logger"
	"github.com/wonny/screener/pkg/metrics"
)

// Sub-fetch sources, used as log fields and metric labels
const (
	sourceHistory      = "history"
	sourceFundamentals = "fundamentals"
	sourceOwnership    = "ownership"
)

// Extractor is the Metric Extractor: it fetches raw data for one identifier
// and derives the metric record. Every collaborator call is guarded on its
// own; only a failed price-history fetch marks the record unavailable.
// ⭐ SSOT: 메트릭 추출은 여기서만
type Extractor struct {
	prices       contracts.PriceProvider
	fundamentals contracts.FundamentalsProvider
	ownership    contracts.OwnershipScraper // optional

	growth    *GrowthCalculator
	financial *FinancialCalculator
	valuation *ValuationCalculator
	technical *TechnicalCalculator

	logger  *logger.Logger
	metrics *metrics.Registry
}

// NewExtractor creates a new extractor. ownership may be nil.
func NewExtractor(
	prices contracts.PriceProvider,
	fundamentals contracts.FundamentalsProvider,
	ownership contracts.OwnershipScraper,
	engine contracts.IndicatorEngine,
	log *logger.Logger,
	reg *metrics.Registry,
) *Extractor {
	return &Extractor{
		prices:       prices,
		fundamentals: fundamentals,
		ownership:    ownership,
		growth:       NewGrowthCalculator(log),
		financial:    NewFinancialCalculator(log),
		valuation:    NewValuationCalculator(),
		technical:    NewTechnicalCalculator(engine, log),
		logger:       log,
		metrics:      reg,
	}
}

// Extract never fails: errors end up on the record or as absent metrics
func (e *Extractor) Extract(ctx context.Context, symbol string) *contracts.MetricRecord {
	b := contracts.NewMetricBuilder(symbol)
	log := e.logger.WithSymbol(symbol)

	// 1. Price history (primary)
	bars, err := guard(sourceHistory, func() ([]contracts.PriceBar, error) {
		return e.prices.FetchHistory(ctx, symbol)
	})
	e.metrics.ObserveSubFetch(sourceHistory, err)
	if err != nil {
		log.WithError(err).Warn("Price history unavailable")
		b.SetError(err)
	} else {
		e.technical.Calculate(symbol, bars, b)
	}

	// 2. Quote snapshot + statements
	fund, err := guard(sourceFundamentals, func() (*contracts.Fundamentals, error) {
		return e.fundamentals.FetchFundamentals(ctx, symbol)
	})
	e.metrics.ObserveSubFetch(sourceFundamentals, err)
	if err != nil {
		log.WithError(err).Warn("Fundamentals unavailable")
	} else if fund != nil {
		e.applyFundamentals(symbol, fund, b, log)
	}

	// 3. Ownership disclosure (soft dependency)
	if e.ownership != nil {
		own, err := guard(sourceOwnership, func() (*contracts.OwnershipData, error) {
			return e.ownership.FetchOwnership(ctx, s1_universe.CompanyCode(symbol))
		})
		e.metrics.ObserveSubFetch(sourceOwnership, err)
		if err != nil {
			log.WithError(err).Debug("Ownership unavailable")
		} else {
			applyOwnership(own, b)
		}
	}

	rec := b.Build()
	log.WithFields(map[string]interface{}{
		"metrics": rec.Len(),
		"failed":  rec.Failed(),
	}).Debug("Extraction completed")
	return rec
}

func (e *Extractor) applyFundamentals(symbol string, fund *contracts.Fundamentals, b *contracts.MetricBuilder, log *logger.Logger) {
	b.SetCompanyName(fund.Quote.CompanyName)

	// 기간 순서가 보장되지 않은 재무제표는 사용하지 않음
	checked := *fund
	checked.Income = validated(fund.Income, "income", log)
	checked.Balance = validated(fund.Balance, "balance", log)
	checked.CashFlow = validated(fund.CashFlow, "cash_flow", log)

	e.growth.Calculate(symbol, checked.Income, b)
	e.financial.Calculate(symbol, &checked, b)
	e.valuation.Calculate(checked.Quote, b)
}

func validated(t *contracts.StatementTable, name string, log *logger.Logger) *contracts.StatementTable {
	if t == nil {
		return nil
	}
	if err := t.Validate(); err != nil {
		log.WithError(err).WithField("statement", name).Warn("Statement rejected")
		return nil
	}
	return t
}

// guard runs one collaborator call, converting a panic into an error
func guard[T any](source string, fn func() (T, error)) (out T, err error) {
	defer func() {
		if r := recover(); r != nil {
			var zero T
			out = zero
			err = fmt.Errorf("%s: panic: %v", source, r)
		}
	}()
	return fn()
}
