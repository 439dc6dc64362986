package s2_metrics

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/wonny/screener/internal/contracts"
	"github.com/wonny/screener/pkg/logger"
	"github.com/wonny/screener/pkg/metrics"
)

// Builder extracts a whole batch concurrently
// ⭐ SSOT: S2 배치 추출 오케스트레이션은 여기서만
type Builder struct {
	extractor contracts.MetricExtractor
	workers   int
	timeout   time.Duration
	logger    *logger.Logger
	metrics   *metrics.Registry
}

// NewBuilder creates a batch builder with a bounded worker pool and a
// per-identifier timeout
func NewBuilder(extractor contracts.MetricExtractor, workers int, timeout time.Duration, log *logger.Logger, reg *metrics.Registry) *Builder {
	if workers < 1 {
		workers = 1
	}
	return &Builder{
		extractor: extractor,
		workers:   workers,
		timeout:   timeout,
		logger:    log,
		metrics:   reg,
	}
}

// Build returns one record per input symbol, in input order.
// A slow or failing identifier never blocks or fails the others.
func (b *Builder) Build(ctx context.Context, symbols []string) []*contracts.MetricRecord {
	start := time.Now()
	b.logger.WithFields(map[string]interface{}{
		"stock_count": len(symbols),
		"workers":     b.workers,
	}).Info("Starting metric extraction")

	cache := NewRunCache(b.metrics)
	records := make([]*contracts.MetricRecord, len(symbols))

	var g errgroup.Group
	g.SetLimit(b.workers)

	for i, symbol := range symbols {
		g.Go(func() error {
			records[i] = cache.Get(symbol, func() *contracts.MetricRecord {
				sctx := ctx
				if b.timeout > 0 {
					var cancel context.CancelFunc
					sctx, cancel = context.WithTimeout(ctx, b.timeout)
					defer cancel()
				}
				rec, err := guard("extract", func() (*contracts.MetricRecord, error) {
					return b.extractor.Extract(sctx, symbol), nil
				})
				if err == nil && rec == nil {
					err = fmt.Errorf("extract %s: %w", symbol, contracts.ErrNoData)
				}
				if err != nil {
					b.logger.WithSymbol(symbol).WithError(err).Error("Extraction aborted")
					return contracts.NewMetricBuilder(symbol).SetError(err).Build()
				}
				return rec
			})
			return nil
		})
	}
	_ = g.Wait()

	failed := 0
	for _, r := range records {
		if r.Failed() {
			failed++
		}
	}

	b.logger.WithFields(map[string]interface{}{
		"total":    len(symbols),
		"unique":   cache.Len(),
		"success":  len(symbols) - failed,
		"failed":   failed,
		"duration": time.Since(start).String(),
	}).Info("Metric extraction completed")

	return records
}
