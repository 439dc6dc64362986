package jobs

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/screener/internal/brain"
	"github.com/wonny/screener/internal/contracts"
	"github.com/wonny/screener/internal/selection"
	"github.com/wonny/screener/pkg/logger"
)

type runFunc func(ctx context.Context, cfg brain.RunConfig) (*brain.RunResult, error)

func (f runFunc) Run(ctx context.Context, cfg brain.RunConfig) (*brain.RunResult, error) {
	return f(ctx, cfg)
}

type constScorer int

func (c constScorer) Score(*contracts.MetricRecord) contracts.ScoreRecord {
	return contracts.ScoreRecord{Growth: int(c), Total: int(c)}
}

func TestScreenJob_Run(t *testing.T) {
	var seen []brain.RunConfig
	runner := runFunc(func(_ context.Context, cfg brain.RunConfig) (*brain.RunResult, error) {
		seen = append(seen, cfg)
		full := selection.NewRanker(constScorer(2), logger.Nop()).Rank([]*contracts.MetricRecord{
			contracts.NewMetricBuilder("TCS.NS").Build(),
			contracts.NewMetricBuilder("INFY.NS").Build(),
		})
		return &brain.RunResult{Full: full, Result: selection.Screen(full, cfg.Screen)}, nil
	})

	job := NewScreenJob(runner, "0 30 16 * * 1-5", nil, 1, logger.Nop())
	assert.Equal(t, "screen", job.Name())
	assert.Equal(t, "0 30 16 * * 1-5", job.Schedule())
	assert.Nil(t, job.Latest())

	require.NoError(t, job.Run(context.Background()))
	require.NoError(t, job.Run(context.Background()))

	require.Len(t, seen, 2)
	assert.Nil(t, seen[0].Symbols)
	assert.Equal(t, 1, seen[0].Screen.TopN)
	assert.NotEqual(t, seen[0].RunID, seen[1].RunID)

	require.NotNil(t, job.Latest())
	assert.Len(t, job.Latest().Ranked, 1)
}

func TestScreenJob_NoData(t *testing.T) {
	runner := runFunc(func(context.Context, brain.RunConfig) (*brain.RunResult, error) {
		return &brain.RunResult{Result: &contracts.BatchResult{}}, nil
	})

	err := NewScreenJob(runner, "@daily", nil, 0, logger.Nop()).Run(context.Background())
	assert.True(t, errors.Is(err, contracts.ErrNoData))
}

func TestScreenJob_RunError(t *testing.T) {
	runner := runFunc(func(context.Context, brain.RunConfig) (*brain.RunResult, error) {
		return nil, context.Canceled
	})

	err := NewScreenJob(runner, "@daily", []string{"TCS"}, 5, logger.Nop()).Run(context.Background())
	assert.True(t, errors.Is(err, context.Canceled))
}
