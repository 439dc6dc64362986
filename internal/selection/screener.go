package selection

import (
	"github.com/wonny/screener/internal/contracts"
	"github.com/wonny/screener/pkg/logger"
)

// ScreenOptions trims a ranked result for display.
// Zero values disable the corresponding cut.
type ScreenOptions struct {
	TopN        int                        // 상위 N개만 (0 = 전체)
	MinTotal    *int                       // Total 최소값
	MinCategory map[contracts.Category]int // 버킷별 최소값
	Require     []contracts.MetricName     // 반드시 있어야 하는 메트릭
}

// Screener applies post-rank cuts
// ⭐ SSOT: 랭킹 후 필터링은 여기서만 (재정렬 없음)
type Screener struct {
	opts   ScreenOptions
	logger *logger.Logger
}

// NewScreener creates a new screener
func NewScreener(opts ScreenOptions, logger *logger.Logger) *Screener {
	return &Screener{
		opts:   opts,
		logger: logger,
	}
}

// Screen applies the configured cuts and logs how many rows each removed
func (s *Screener) Screen(result *contracts.BatchResult) *contracts.BatchResult {
	out, filtered := screen(result, s.opts)

	in := 0
	if result != nil {
		in = len(result.Ranked)
	}
	s.logger.WithFields(map[string]interface{}{
		"total_input":  in,
		"passed":       len(out.Ranked),
		"filtered_out": in - len(out.Ranked),
		"filters":      filtered,
	}).Info("Screening completed")

	return out
}

// Screen returns a copy of result keeping ranked rows that pass opts, in order.
// Rank numbers are kept as assigned by the ranker.
func Screen(result *contracts.BatchResult, opts ScreenOptions) *contracts.BatchResult {
	out, _ := screen(result, opts)
	return out
}

func screen(result *contracts.BatchResult, opts ScreenOptions) (*contracts.BatchResult, map[string]int) {
	filtered := make(map[string]int) // Filter name -> count
	if result == nil {
		return &contracts.BatchResult{}, filtered
	}

	out := &contracts.BatchResult{
		Ranked:      make([]contracts.RankedStock, 0, len(result.Ranked)),
		Unavailable: result.Unavailable,
		RulesHash:   result.RulesHash,
		GeneratedAt: result.GeneratedAt,
	}

	for _, row := range result.Ranked {
		if reason := checkConditions(row, opts); reason != "" {
			filtered[reason]++
			continue
		}
		if opts.TopN > 0 && len(out.Ranked) >= opts.TopN {
			filtered["top_n"]++
			continue
		}
		out.Ranked = append(out.Ranked, row)
	}

	return out, filtered
}

// checkConditions returns empty string if passed, otherwise the filter name
func checkConditions(row contracts.RankedStock, opts ScreenOptions) string {
	if opts.MinTotal != nil && row.Score.Total < *opts.MinTotal {
		return "min_total"
	}

	for _, cat := range contracts.Categories {
		if min, ok := opts.MinCategory[cat]; ok && row.Score.Get(cat) < min {
			return "min_" + string(cat)
		}
	}

	for _, m := range opts.Require {
		if row.Metrics == nil || !row.Metrics.Has(m) {
			return "missing_" + string(m)
		}
	}

	return ""
}
