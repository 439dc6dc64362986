package scheduler

import (
	"context"
	"time"
)

// Job is a unit of scheduled work
// ⭐ SSOT: 스케줄 작업 인터페이스는 여기서만 정의
type Job interface {
	Name() string

	// Run executes one pass; a returned error makes the scheduler retry
	Run(ctx context.Context) error

	// Schedule returns the cron expression with a leading seconds field,
	// e.g. "0 30 16 * * 1-5" (weekdays 16:30), "@daily", "@every 1h"
	Schedule() string
}

// JobResult is one execution of a job, retries included
type JobResult struct {
	JobName   string        `json:"job_name"`
	StartTime time.Time     `json:"start_time"`
	EndTime   time.Time     `json:"end_time"`
	Duration  time.Duration `json:"duration"`
	Attempts  int           `json:"attempts"`
	Success   bool          `json:"success"`
	Error     string        `json:"error,omitempty"`
}

// maxHistory bounds how many results are kept per job
const maxHistory = 100

// JobHistory keeps the most recent results of one job, oldest first.
// 메모리에만 보관 (재시작 시 초기화)
type JobHistory struct {
	Results []JobResult
}

// AddResult appends a result and drops the oldest beyond maxHistory
func (h *JobHistory) AddResult(result JobResult) {
	h.Results = append(h.Results, result)
	if over := len(h.Results) - maxHistory; over > 0 {
		h.Results = append([]JobResult(nil), h.Results[over:]...)
	}
}

// GetLatestResults returns a copy of the last n results
func (h *JobHistory) GetLatestResults(n int) []JobResult {
	n = min(n, len(h.Results))
	if n <= 0 {
		return []JobResult{}
	}
	return append([]JobResult(nil), h.Results[len(h.Results)-n:]...)
}

// HistorySummary aggregates a JobHistory
type HistorySummary struct {
	Success             int
	Failed              int
	ConsecutiveFailures int // failures since the last success
	LastSuccess         *time.Time
	LastFailure         *time.Time
}

// SuccessRate returns Success / total, or 0 with no runs
func (s HistorySummary) SuccessRate() float64 {
	total := s.Success + s.Failed
	if total == 0 {
		return 0
	}
	return float64(s.Success) / float64(total)
}

// Summary walks the history once, newest first
func (h *JobHistory) Summary() HistorySummary {
	var sum HistorySummary
	streak := true
	for i := len(h.Results) - 1; i >= 0; i-- {
		r := h.Results[i]
		start := r.StartTime
		if r.Success {
			sum.Success++
			streak = false
			if sum.LastSuccess == nil {
				sum.LastSuccess = &start
			}
			continue
		}
		sum.Failed++
		if streak {
			sum.ConsecutiveFailures++
		}
		if sum.LastFailure == nil {
			sum.LastFailure = &start
		}
	}
	return sum
}
