package screener

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sony/gobreaker"

	"github.com/wonny/screener/internal/contracts"
	"github.com/wonny/screener/pkg/config"
	"github.com/wonny/screener/pkg/httputil"
	"github.com/wonny/screener/pkg/logger"
	"github.com/wonny/screener/pkg/metrics"
)

// Client scrapes promoter holding and pledge data from screener.in
// ⭐ SSOT: 지분 공시 스크래핑은 이 클라이언트에서만
type Client struct {
	httpClient *httputil.Client
	logger     *logger.Logger
	baseURL    string
	breaker    *gobreaker.CircuitBreaker
}

// NewClient creates a new ownership scraper.
// Three consecutive failures open the breaker for a minute; while open,
// every call fails fast with gobreaker.ErrOpenState.
func NewClient(cfg *config.Config, httpClient *httputil.Client, log *logger.Logger, reg *metrics.Registry) *Client {
	log = log.WithField("source", "screener")

	st := gobreaker.Settings{Name: "ownership"}
	st.Interval = 60 * time.Second
	st.Timeout = 60 * time.Second
	st.ReadyToTrip = func(counts gobreaker.Counts) bool {
		return counts.ConsecutiveFailures >= 3
	}
	// An unknown company is not a sign of an unhealthy source
	st.IsSuccessful = func(err error) bool {
		return err == nil || errors.Is(err, contracts.ErrNotFound) || errors.Is(err, context.Canceled)
	}
	st.OnStateChange = func(name string, from, to gobreaker.State) {
		reg.SetBreakerState(name, int(to))
		log.WithFields(map[string]interface{}{
			"breaker": name,
			"from":    from.String(),
			"to":      to.String(),
		}).Warn("Circuit breaker state changed")
	}

	return &Client{
		httpClient: httpClient,
		logger:     log,
		baseURL:    strings.TrimRight(cfg.Ownership.BaseURL, "/"),
		breaker:    gobreaker.NewCircuitBreaker(st),
	}
}

// FetchOwnership returns promoter holding and pledged percent for a company code.
// A page without the expected row or pattern yields nil fields, not an error.
func (c *Client) FetchOwnership(ctx context.Context, companyCode string) (*contracts.OwnershipData, error) {
	out, err := c.breaker.Execute(func() (interface{}, error) {
		html, err := c.fetchCompanyPage(ctx, companyCode)
		if err != nil {
			return nil, err
		}
		return parseOwnershipHTML(html)
	})
	if err != nil {
		return nil, fmt.Errorf("ownership %s: %w", companyCode, err)
	}

	data := out.(*contracts.OwnershipData)
	c.logger.WithFields(map[string]interface{}{
		"code":     companyCode,
		"promoter": data.PromoterHolding != nil,
		"pledged":  data.PledgedPercent != nil,
	}).Debug("Ownership fetched")

	return data, nil
}

// fetchCompanyPage tries the consolidated view first, then the standalone one
func (c *Client) fetchCompanyPage(ctx context.Context, code string) (string, error) {
	paths := []string{
		fmt.Sprintf("/company/%s/consolidated/", url.PathEscape(code)),
		fmt.Sprintf("/company/%s/", url.PathEscape(code)),
	}

	var lastErr error
	for _, p := range paths {
		body, err := c.httpClient.GetBody(ctx, c.baseURL+p)
		if err == nil {
			return string(body), nil
		}
		if httputil.StatusCode(err) != http.StatusNotFound {
			return "", err
		}
		lastErr = contracts.ErrNotFound
	}
	return "", lastErr
}
