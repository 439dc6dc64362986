package yahoo

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/wonny/screener/pkg/config"
	"github.com/wonny/screener/pkg/httputil"
	"github.com/wonny/screener/pkg/logger"
)

// Client is the price/fundamentals provider backed by Yahoo Finance.
// Price history goes through go-yfinance; the quote snapshot and annual
// statements come from the quoteSummary endpoint, which needs a session
// cookie plus crumb obtained once per client.
type Client struct {
	httpClient *httputil.Client
	logger     *logger.Logger
	baseURL    string
	queryURL   string
	period     string

	history    historyFunc
	maxRetries int
	retryDelay time.Duration

	mu    sync.Mutex
	crumb string
}

// NewClient creates a new Yahoo client
func NewClient(cfg *config.Config, httpClient *httputil.Client, log *logger.Logger) *Client {
	return &Client{
		httpClient: httpClient,
		logger:     log.WithField("source", "yahoo"),
		baseURL:    strings.TrimRight(cfg.Yahoo.BaseURL, "/"),
		queryURL:   strings.TrimRight(cfg.Yahoo.QueryURL, "/"),
		period:     cfg.Fetch.HistoryPeriod,
		history:    yfinanceHistory,
		maxRetries: cfg.Fetch.MaxRetries,
		retryDelay: cfg.Fetch.RetryDelay,
	}
}

// ensureCrumb returns the cached crumb, fetching cookie and crumb on first use
func (c *Client) ensureCrumb(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.crumb != "" {
		return c.crumb, nil
	}

	// 1. 쿠키 획득 (응답 코드는 무시, 쿠키만 필요)
	if resp, err := c.httpClient.Get(ctx, c.baseURL); err == nil {
		resp.Body.Close()
	} else {
		c.logger.WithError(err).Debug("Cookie page fetch failed, trying crumb anyway")
	}

	// 2. crumb 획득
	body, err := c.httpClient.GetBody(ctx, c.queryURL+"/v1/test/getcrumb")
	if err != nil {
		return "", fmt.Errorf("fetch crumb: %w", err)
	}

	crumb := strings.TrimSpace(string(body))
	if crumb == "" || strings.Contains(crumb, "<") {
		return "", fmt.Errorf("fetch crumb: invalid crumb response")
	}

	c.crumb = crumb
	c.logger.Debug("Yahoo crumb acquired")
	return crumb, nil
}

// invalidateCrumb drops the cached crumb so the next call refreshes the session
func (c *Client) invalidateCrumb() {
	c.mu.Lock()
	c.crumb = ""
	c.mu.Unlock()
}
