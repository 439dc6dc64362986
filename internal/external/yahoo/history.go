package yahoo

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/wnjoon/go-yfinance/pkg/models"
	"github.com/wnjoon/go-yfinance/pkg/ticker"

	"github.com/wonny/screener/internal/contracts"
)

type historyFunc func(symbol, period string) ([]contracts.PriceBar, error)

// FetchHistory returns daily bars for the configured period, oldest first.
// Transient failures are retried up to FETCH_MAX_RETRIES times with a doubling delay;
// an empty history is final.
func (c *Client) FetchHistory(ctx context.Context, symbol string) ([]contracts.PriceBar, error) {
	delay := c.retryDelay
	var lastErr error

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			c.logger.WithSymbol(symbol).WithError(lastErr).WithFields(map[string]interface{}{
				"attempt": attempt,
				"delay":   delay,
			}).Warn("Retrying history fetch")

			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(delay):
			}
			delay *= 2
		}

		bars, err := c.fetchHistoryOnce(ctx, symbol)
		if err == nil {
			c.logger.WithSymbol(symbol).WithField("bars", len(bars)).Debug("History fetched")
			return bars, nil
		}
		if errors.Is(err, contracts.ErrEmptyHistory) || ctx.Err() != nil {
			return nil, err
		}
		lastErr = err
	}

	return nil, lastErr
}

// fetchHistoryOnce runs one go-yfinance call, abandoning it when ctx ends
func (c *Client) fetchHistoryOnce(ctx context.Context, symbol string) ([]contracts.PriceBar, error) {
	type result struct {
		bars []contracts.PriceBar
		err  error
	}

	// go-yfinance has no context support
	done := make(chan result, 1)
	go func() {
		bars, err := c.history(symbol, c.period)
		done <- result{bars, err}
	}()

	var res result
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res = <-done:
	}

	if res.err != nil {
		return nil, fmt.Errorf("history %s: %w", symbol, res.err)
	}
	if len(res.bars) == 0 {
		return nil, fmt.Errorf("history %s: %w", symbol, contracts.ErrEmptyHistory)
	}

	sort.SliceStable(res.bars, func(i, j int) bool {
		return res.bars[i].Date.Before(res.bars[j].Date)
	})
	return res.bars, nil
}

func yfinanceHistory(symbol, period string) ([]contracts.PriceBar, error) {
	t, err := ticker.New(symbol)
	if err != nil {
		return nil, fmt.Errorf("failed to create ticker: %w", err)
	}
	defer t.Close()

	bars, err := t.History(models.HistoryParams{
		Period:     period,
		Interval:   "1d",
		AutoAdjust: true,
	})
	if err != nil {
		return nil, err
	}

	out := make([]contracts.PriceBar, 0, len(bars))
	for _, bar := range bars {
		if bar.Close <= 0 {
			continue
		}
		out = append(out, contracts.PriceBar{
			Date:   bar.Date,
			Open:   bar.Open,
			High:   bar.High,
			Low:    bar.Low,
			Close:  bar.Close,
			Volume: float64(bar.Volume),
		})
	}
	return out, nil
}
