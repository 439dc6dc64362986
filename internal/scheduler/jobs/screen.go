package jobs

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/wonny/screener/internal/brain"
	"github.com/wonny/screener/internal/contracts"
	"github.com/wonny/screener/internal/selection"
	"github.com/wonny/screener/pkg/logger"
)

// Runner runs one screening pass
type Runner interface {
	Run(ctx context.Context, config brain.RunConfig) (*brain.RunResult, error)
}

// ScreenJob re-runs the screen on a schedule.
// Every run is a fresh pipeline invocation with its own fetch cache.
// ⭐ SSOT: 정기 스크리닝은 이 Job에서만
type ScreenJob struct {
	runner   Runner
	schedule string
	symbols  []string
	topN     int
	logger   *logger.Logger

	mu     sync.RWMutex
	latest *contracts.BatchResult
	runs   int
}

// NewScreenJob creates a new screening job. Empty symbols means the default universe.
func NewScreenJob(runner Runner, schedule string, symbols []string, topN int, log *logger.Logger) *ScreenJob {
	if topN <= 0 {
		topN = 10
	}
	return &ScreenJob{
		runner:   runner,
		schedule: schedule,
		symbols:  symbols,
		topN:     topN,
		logger:   log,
	}
}

// Name returns the job name
func (j *ScreenJob) Name() string {
	return "screen"
}

// Schedule returns the cron schedule
func (j *ScreenJob) Schedule() string {
	return j.schedule
}

// Run executes one screening pass and logs the top N
func (j *ScreenJob) Run(ctx context.Context) error {
	j.mu.Lock()
	j.runs++
	runID := fmt.Sprintf("sched-%s-%d", time.Now().Format("20060102-150405"), j.runs)
	j.mu.Unlock()

	log := j.logger.WithRun(runID)
	log.Info("Starting scheduled screen")

	res, err := j.runner.Run(ctx, brain.RunConfig{
		RunID:   runID,
		Symbols: j.symbols,
		Screen:  selection.ScreenOptions{TopN: j.topN},
	})
	if err != nil {
		return fmt.Errorf("screen run: %w", err)
	}

	if res.Result.Empty() {
		// 외부 소스 전체 실패 → 재시도 대상
		return fmt.Errorf("screen run %s: %w", runID, contracts.ErrNoData)
	}

	j.mu.Lock()
	j.latest = res.Result
	j.mu.Unlock()

	for _, row := range res.Result.Ranked {
		log.WithSymbol(row.Symbol).WithFields(map[string]interface{}{
			"rank":  row.Rank,
			"total": row.Score.Total,
		}).Info("Top ranked")
	}

	return nil
}

// Latest returns the most recent successful result, or nil
func (j *ScreenJob) Latest() *contracts.BatchResult {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return j.latest
}
