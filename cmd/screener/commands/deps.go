package commands

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/wonny/screener/internal/brain"
	"github.com/wonny/screener/internal/contracts"
	screenerin "github.com/wonny/screener/internal/external/screener"
	"github.com/wonny/screener/internal/external/yahoo"
	"github.com/wonny/screener/internal/indicators"
	"github.com/wonny/screener/internal/s1_universe"
	"github.com/wonny/screener/internal/s2_metrics"
	"github.com/wonny/screener/internal/s3_scoring"
	"github.com/wonny/screener/pkg/config"
	"github.com/wonny/screener/pkg/httputil"
	"github.com/wonny/screener/pkg/logger"
	"github.com/wonny/screener/pkg/metrics"
)

// deps bundles everything a command needs for a pipeline run
type deps struct {
	cfg          *config.Config
	log          *logger.Logger
	reg          *metrics.Registry
	scorer       *s3_scoring.Scorer
	orchestrator *brain.Orchestrator
}

// initDeps wires config → clients → extractor → orchestrator
func initDeps() (*deps, error) {
	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if verbose {
		cfg.LogLevel = "debug"
	}

	// 2. Initialize logger
	log := logger.New(cfg)

	var reg *metrics.Registry
	if cfg.MetricsEnabled {
		reg = metrics.New()
	}

	// 3. Rule table (flag > RULES_FILE > built-in)
	path := rulesFile
	if path == "" {
		path = cfg.RulesFile
	}
	rules, err := s3_scoring.LoadRules(path)
	if err != nil {
		return nil, err
	}
	scorer, err := s3_scoring.NewScorer(rules)
	if err != nil {
		return nil, fmt.Errorf("init scorer: %w", err)
	}

	// 4. External clients (each with its own cookie jar)
	yahooClient := yahoo.NewClient(cfg, httputil.New(cfg, log).WithMetrics(reg), log)

	var ownership contracts.OwnershipScraper
	if cfg.Ownership.Enabled {
		// 차단기가 연속 실패를 세므로 재시도는 1회만
		ownership = screenerin.NewClient(cfg, httputil.New(cfg, log).WithRetry(1, cfg.Fetch.RetryDelay).WithMetrics(reg), log, reg)
	}

	// 5. Stages
	extractor := s2_metrics.NewExtractor(yahooClient, yahooClient, ownership, indicators.NewEngine(), log, reg)
	metricBuilder := s2_metrics.NewBuilder(extractor, cfg.Fetch.Workers, cfg.Fetch.Timeout, log, reg)
	universeBuilder := s1_universe.NewBuilder(s1_universe.Config{ExchangeSuffix: cfg.Universe.ExchangeSuffix}, log)

	orchestrator := brain.NewOrchestrator(universeBuilder, metricBuilder, scorer, log, reg)

	log.WithFields(map[string]interface{}{
		"env":        cfg.Env,
		"workers":    cfg.Fetch.Workers,
		"ownership":  cfg.Ownership.Enabled,
		"rules_hash": scorer.Hash(),
	}).Debug("Dependencies initialized")

	return &deps{
		cfg:          cfg,
		log:          log,
		reg:          reg,
		scorer:       scorer,
		orchestrator: orchestrator,
	}, nil
}

// readSymbolsInput merges --symbols and --file ("-" reads stdin)
func readSymbolsInput(symbolsFlag, file string, stdin io.Reader) ([]string, error) {
	var out []string
	for _, s := range strings.Split(symbolsFlag, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}

	if file == "" {
		return out, nil
	}

	var r io.Reader = stdin
	if file != "-" {
		f, err := os.Open(file)
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", file, err)
		}
		defer f.Close()
		r = f
	}

	fromFile, err := s1_universe.ParseList(r)
	if err != nil {
		return nil, err
	}
	return append(out, fromFile...), nil
}
