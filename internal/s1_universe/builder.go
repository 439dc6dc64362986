package s1_universe

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/wonny/screener/internal/contracts"
	"github.com/wonny/screener/pkg/logger"
)

// 거래소 식별자 패턴: 본 코드 + 선택적 거래소 접미사
var symbolPattern = regexp.MustCompile(`^[A-Z0-9][A-Z0-9&\-_]*(\.[A-Z]{1,3})?$`)

// Config holds normalization settings
type Config struct {
	ExchangeSuffix string `yaml:"exchange_suffix"` // e.g. ".NS"
}

// Builder normalizes a raw identifier list into a Universe
type Builder struct {
	config Config
	logger *logger.Logger
}

// NewBuilder creates a new Universe Builder
func NewBuilder(config Config, log *logger.Logger) *Builder {
	if config.ExchangeSuffix == "" {
		config.ExchangeSuffix = ".NS"
	}
	return &Builder{
		config: config,
		logger: log,
	}
}

// Build normalizes raw identifiers: trimmed, uppercased, exchange-suffixed.
// Duplicates collapse to their first occurrence; unusable entries are excluded
// with a reason. An empty input falls back to the default universe.
// ⭐ SSOT: S1 → S2 유니버스 생성
func (b *Builder) Build(ctx context.Context, raw []string) (*contracts.Universe, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if len(raw) == 0 {
		raw = DefaultNifty50()
	}

	universe := &contracts.Universe{
		Date:       time.Now(),
		Stocks:     make([]string, 0, len(raw)),
		Excluded:   make(map[string]string),
		TotalCount: len(raw),
	}

	seen := make(map[string]bool, len(raw))
	for _, entry := range raw {
		symbol, err := Normalize(entry, b.config.ExchangeSuffix)
		if err != nil {
			universe.Excluded[entry] = err.Error()
			continue
		}
		if seen[symbol] {
			continue
		}
		seen[symbol] = true
		universe.Stocks = append(universe.Stocks, symbol)
	}

	b.logger.WithFields(map[string]interface{}{
		"input":    len(raw),
		"stocks":   len(universe.Stocks),
		"excluded": len(universe.Excluded),
	}).Info("Universe built")

	return universe, nil
}

// Normalize converts one raw entry into its canonical exchange-qualified form
func Normalize(raw, suffix string) (string, error) {
	s := strings.ToUpper(strings.TrimSpace(raw))
	if s == "" {
		return "", fmt.Errorf("empty identifier")
	}
	if !strings.Contains(s, ".") {
		s += strings.ToUpper(suffix)
	}
	if !symbolPattern.MatchString(s) {
		return "", fmt.Errorf("invalid identifier %q", s)
	}
	return s, nil
}

// CompanyCode strips the exchange suffix ("TCS.NS" -> "TCS")
func CompanyCode(symbol string) string {
	if i := strings.LastIndex(symbol, "."); i > 0 {
		return symbol[:i]
	}
	return symbol
}
