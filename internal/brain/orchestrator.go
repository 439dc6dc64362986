package brain

import (
	"context"
	"fmt"
	"time"

	"github.com/wonny/screener/internal/contracts"
	"github.com/wonny/screener/internal/s1_universe"
	"github.com/wonny/screener/internal/s2_metrics"
	"github.com/wonny/screener/internal/s3_scoring"
	"github.com/wonny/screener/internal/selection"
	"github.com/wonny/screener/pkg/logger"
	"github.com/wonny/screener/pkg/metrics"
)

// Orchestrator coordinates one screening run
// ⭐ SSOT: 파이프라인 조율은 여기서만
// S1 Universe → S2 Metrics → S3 Scoring → S4 Ranking → Screen
type Orchestrator struct {
	universeBuilder *s1_universe.Builder
	metricBuilder   *s2_metrics.Builder
	scorer          *s3_scoring.Scorer
	ranker          *selection.Ranker

	logger  *logger.Logger
	metrics *metrics.Registry
}

// RunConfig holds configuration for a pipeline run
type RunConfig struct {
	RunID   string
	Symbols []string // 비어 있으면 기본 유니버스
	Screen  selection.ScreenOptions
}

// RunResult holds the results of a complete pipeline run
type RunResult struct {
	RunID           string
	Universe        *contracts.Universe
	Records         []*contracts.MetricRecord
	Full            *contracts.BatchResult // before screening
	Result          *contracts.BatchResult // after screening
	CompletedStages []string
	Duration        time.Duration
}

// NewOrchestrator creates a new orchestrator
func NewOrchestrator(
	universeBuilder *s1_universe.Builder,
	metricBuilder *s2_metrics.Builder,
	scorer *s3_scoring.Scorer,
	logger *logger.Logger,
	reg *metrics.Registry,
) *Orchestrator {
	return &Orchestrator{
		universeBuilder: universeBuilder,
		metricBuilder:   metricBuilder,
		scorer:          scorer,
		ranker:          selection.NewRanker(scorer, logger),
		logger:          logger,
		metrics:         reg,
	}
}

// RulesHash identifies the active rule table
func (o *Orchestrator) RulesHash() string { return o.scorer.Hash() }

// Run executes S1 → S4 and the post-rank screen.
// An all-failed batch is not an error: Result.Empty() reports it.
func (o *Orchestrator) Run(ctx context.Context, config RunConfig) (*RunResult, error) {
	startTime := time.Now()

	result := &RunResult{
		RunID:           config.RunID,
		CompletedStages: make([]string, 0, 4),
	}

	log := o.logger.WithRun(config.RunID)
	log.WithFields(map[string]interface{}{
		"symbols":    len(config.Symbols),
		"rules_hash": o.scorer.Hash(),
	}).Info("Starting pipeline run")

	// S1: Universe
	universe, err := o.universeBuilder.Build(ctx, config.Symbols)
	if err != nil {
		return result, fmt.Errorf("S1 failed: %w", err)
	}
	result.Universe = universe
	result.CompletedStages = append(result.CompletedStages, "S1:Universe")

	// S2: Metrics (run-scoped cache lives inside Build)
	result.Records = o.metricBuilder.Build(ctx, universe.Stocks)
	result.CompletedStages = append(result.CompletedStages, "S2:Metrics")

	// S3+S4: Scoring and ranking
	full := o.ranker.Rank(result.Records)
	full.RulesHash = o.scorer.Hash()
	result.Full = full
	result.CompletedStages = append(result.CompletedStages, "S3:Scoring", "S4:Ranker")

	result.Result = selection.NewScreener(config.Screen, o.logger).Screen(full)
	result.Duration = time.Since(startTime)

	o.metrics.ObserveRun(result.Duration, len(full.Ranked), len(full.Unavailable))

	fields := map[string]interface{}{
		"duration":    result.Duration.Seconds(),
		"stocks":      universe.Count(),
		"ranked":      len(full.Ranked),
		"unavailable": len(full.Unavailable),
		"excluded":    len(universe.Excluded),
	}
	if full.Empty() {
		log.WithFields(fields).Warn("Pipeline run produced no data")
	} else {
		log.WithFields(fields).Info("Pipeline run completed successfully")
	}

	return result, nil
}

// Commentary extracts and narrates each holding of a user portfolio.
// Output follows input order; unusable identifiers are appended with their reason.
func (o *Orchestrator) Commentary(ctx context.Context, symbols []string) ([]s3_scoring.Commentary, error) {
	if len(symbols) == 0 {
		return nil, fmt.Errorf("commentary: no symbols given")
	}

	universe, err := o.universeBuilder.Build(ctx, symbols)
	if err != nil {
		return nil, fmt.Errorf("commentary: %w", err)
	}

	records := o.metricBuilder.Build(ctx, universe.Stocks)

	out := make([]s3_scoring.Commentary, 0, len(records)+len(universe.Excluded))
	for _, rec := range records {
		out = append(out, o.scorer.Narrate(rec))
	}

	for _, raw := range universe.ExcludedEntries() {
		out = append(out, s3_scoring.Commentary{
			Symbol:     raw,
			Strengths:  []string{},
			Weaknesses: []string{},
			Error:      universe.Excluded[raw],
		})
	}

	o.logger.WithFields(map[string]interface{}{
		"holdings": len(symbols),
		"narrated": len(records),
		"excluded": len(universe.Excluded),
	}).Info("Commentary completed")

	return out, nil
}
