package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"github.com/wonny/screener/internal/brain"
	"github.com/wonny/screener/internal/contracts"
	"github.com/wonny/screener/internal/s1_universe"
	"github.com/wonny/screener/internal/s3_scoring"
	"github.com/wonny/screener/internal/selection"
	"github.com/wonny/screener/pkg/logger"
)

// maxBodyBytes caps uploaded identifier lists
const maxBodyBytes = 1 << 20

// Runner is the pipeline surface the HTTP layer needs
type Runner interface {
	Run(ctx context.Context, config brain.RunConfig) (*brain.RunResult, error)
	Commentary(ctx context.Context, symbols []string) ([]s3_scoring.Commentary, error)
}

// ScreeningHandler handles ranking and commentary endpoints
// ⭐ SSOT: 스크리닝 API 핸들러는 이 구조체에서만
type ScreeningHandler struct {
	runner Runner
	logger *logger.Logger
}

// NewScreeningHandler creates a new screening handler
func NewScreeningHandler(runner Runner, log *logger.Logger) *ScreeningHandler {
	return &ScreeningHandler{
		runner: runner,
		logger: log,
	}
}

// RankResponse is the ranked result of one run
type RankResponse struct {
	RunID       string                       `json:"run_id"`
	RulesHash   string                       `json:"rules_hash"`
	GeneratedAt time.Time                    `json:"generated_at"`
	NoData      bool                         `json:"no_data"`
	Ranked      []contracts.RankedStock      `json:"ranked"`
	Unavailable []contracts.UnavailableStock `json:"unavailable"`
	Excluded    map[string]string            `json:"excluded,omitempty"`
}

// SymbolsRequest is the JSON body accepted by POST endpoints
type SymbolsRequest struct {
	Symbols []string `json:"symbols"`
}

// Rank runs a fresh screen
// GET  /api/rank?symbols=TCS,INFY&top=10&min_score=0
// POST /api/rank (text/csv, text/plain or application/json body)
func (h *ScreeningHandler) Rank(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	opts, err := parseScreenOptions(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	var symbols []string
	if r.Method == http.MethodPost {
		symbols, err = readSymbols(r)
		if err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		if len(symbols) == 0 {
			respondError(w, http.StatusBadRequest, "Request body has no symbols")
			return
		}
	} else {
		symbols = splitSymbols(r.URL.Query().Get("symbols"))
	}

	runID := fmt.Sprintf("api-%d", time.Now().UnixNano())
	result, err := h.runner.Run(ctx, brain.RunConfig{
		RunID:   runID,
		Symbols: symbols,
		Screen:  opts,
	})
	if err != nil {
		h.logger.WithError(err).Error("Screening run failed")
		respondError(w, http.StatusInternalServerError, "Screening run failed")
		return
	}

	resp := RankResponse{
		RunID:       runID,
		RulesHash:   result.Result.RulesHash,
		GeneratedAt: result.Result.GeneratedAt,
		NoData:      result.Result.Empty(),
		Ranked:      result.Result.Ranked,
		Unavailable: result.Result.Unavailable,
	}
	if result.Universe != nil && len(result.Universe.Excluded) > 0 {
		resp.Excluded = result.Universe.Excluded
	}

	respondJSON(w, http.StatusOK, resp)
}

// StockCommentary returns strengths and weaknesses for one identifier
// GET /api/stocks/{symbol}/commentary
func (h *ScreeningHandler) StockCommentary(w http.ResponseWriter, r *http.Request) {
	symbol := mux.Vars(r)["symbol"]

	out, err := h.runner.Commentary(r.Context(), []string{symbol})
	if err != nil {
		h.logger.WithSymbol(symbol).WithError(err).Error("Commentary failed")
		respondError(w, http.StatusInternalServerError, "Commentary failed")
		return
	}
	if len(out) == 0 {
		respondError(w, http.StatusNotFound, "Data not available")
		return
	}
	if out[0].Error != "" {
		respondError(w, http.StatusNotFound, "Data not available: "+out[0].Error)
		return
	}

	respondJSON(w, http.StatusOK, out[0])
}

// PortfolioCommentary narrates every holding of an uploaded portfolio
// POST /api/commentary
func (h *ScreeningHandler) PortfolioCommentary(w http.ResponseWriter, r *http.Request) {
	symbols, err := readSymbols(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if len(symbols) == 0 {
		respondError(w, http.StatusBadRequest, "Request body has no symbols")
		return
	}

	out, err := h.runner.Commentary(r.Context(), symbols)
	if err != nil {
		h.logger.WithError(err).Error("Portfolio commentary failed")
		respondError(w, http.StatusInternalServerError, "Commentary failed")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"holdings": out,
	})
}

func parseScreenOptions(r *http.Request) (selection.ScreenOptions, error) {
	var opts selection.ScreenOptions
	q := r.URL.Query()

	if topStr := q.Get("top"); topStr != "" {
		top, err := strconv.Atoi(topStr)
		if err != nil || top < 0 {
			return opts, fmt.Errorf("invalid 'top' (expected non-negative integer)")
		}
		opts.TopN = top
	}

	if minStr := q.Get("min_score"); minStr != "" {
		minTotal, err := strconv.Atoi(minStr)
		if err != nil {
			return opts, fmt.Errorf("invalid 'min_score' (expected integer)")
		}
		opts.MinTotal = &minTotal
	}

	return opts, nil
}

func readSymbols(r *http.Request) ([]string, error) {
	data, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("invalid request body")
	}

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/json" {
		var req SymbolsRequest
		if err := json.Unmarshal(data, &req); err != nil {
			return nil, fmt.Errorf("invalid request body")
		}
		return req.Symbols, nil
	}

	symbols, err := s1_universe.ParseList(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("invalid identifier list: %v", err)
	}
	return symbols, nil
}

func splitSymbols(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
