package handlers

import (
	"net/http"

	"github.com/wonny/screener/internal/s3_scoring"
)

// RuleSource exposes the active rule table
type RuleSource interface {
	Rules() []s3_scoring.Rule
	Hash() string
}

// RulesHandler serves the effective rule table
type RulesHandler struct {
	source RuleSource
}

// NewRulesHandler creates a new rules handler
func NewRulesHandler(source RuleSource) *RulesHandler {
	return &RulesHandler{source: source}
}

// GetRules returns the rule table in rule-file form with its hash
// GET /api/rules
func (h *RulesHandler) GetRules(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"hash":  h.source.Hash(),
		"rules": s3_scoring.ToConfig(h.source.Rules()).Rules,
	})
}
