package s3_scoring

import (
	"fmt"

	"github.com/wonny/screener/internal/contracts"
	"github.com/wonny/screener/internal/strategyconfig"
)

// Rule reads one metric and contributes +1/-1/0 to exactly one bucket
type Rule struct {
	Metric   contracts.MetricName
	Category contracts.Category
	Label    string
	Unit     string
	Scale    float64 // 0 = 1
	Plus     *strategyconfig.Condition
	Minus    *strategyconfig.Condition
}

func gt(v float64) *strategyconfig.Condition {
	return &strategyconfig.Condition{Op: strategyconfig.OpGT, Value: v}
}

func lt(v float64) *strategyconfig.Condition {
	return &strategyconfig.Condition{Op: strategyconfig.OpLT, Value: v}
}

func le(v float64) *strategyconfig.Condition {
	return &strategyconfig.Condition{Op: strategyconfig.OpLE, Value: v}
}

func eq(v float64) *strategyconfig.Condition {
	return &strategyconfig.Condition{Op: strategyconfig.OpEQ, Value: v}
}

// DefaultRules returns the built-in rule table
// ⭐ SSOT: 기본 점수 규칙은 여기서만 정의 (configs/rules.yaml과 동일)
func DefaultRules() []Rule {
	return []Rule{
		// Growth
		{Metric: contracts.RevCAGR, Category: contracts.Growth, Label: "revenue growth", Unit: "%", Plus: gt(15), Minus: lt(5)},
		{Metric: contracts.EPSCAGR, Category: contracts.Growth, Label: "earnings growth", Unit: "%", Plus: gt(15), Minus: lt(5)},

		// Financial
		{Metric: contracts.ROE, Category: contracts.Financial, Label: "return on equity", Unit: "%", Plus: gt(15), Minus: lt(10)},
		{Metric: contracts.ROCE, Category: contracts.Financial, Label: "return on capital employed", Unit: "%", Plus: gt(15), Minus: lt(10)},
		{Metric: contracts.DebtToEquity, Category: contracts.Financial, Label: "leverage", Plus: lt(0.5), Minus: gt(1)},
		{Metric: contracts.InterestCoverage, Category: contracts.Financial, Label: "interest coverage", Plus: gt(5), Minus: lt(1)},
		{Metric: contracts.CurrentRatio, Category: contracts.Financial, Label: "liquidity", Plus: gt(1.5), Minus: lt(1)},
		{Metric: contracts.FreeCashFlow, Category: contracts.Financial, Label: "free cash flow", Plus: gt(0), Minus: le(0)},
		{Metric: contracts.DividendYield, Category: contracts.Financial, Label: "dividend yield", Unit: "%", Scale: 100, Plus: gt(3)}, // 분수(0.03) → % 변환

		// Valuation
		{Metric: contracts.PE, Category: contracts.Valuation, Label: "P/E", Plus: lt(15), Minus: gt(40)},
		{Metric: contracts.PEG, Category: contracts.Valuation, Label: "PEG", Plus: lt(1), Minus: gt(2)},
		{Metric: contracts.EVToEBITDA, Category: contracts.Valuation, Label: "EV/EBITDA", Plus: lt(10), Minus: gt(20)},

		// Technical
		{Metric: contracts.RSI, Category: contracts.Technical, Label: "RSI", Plus: lt(30), Minus: gt(70)},
		{Metric: contracts.MACDSignalDiff, Category: contracts.Technical, Label: "MACD momentum", Plus: gt(0)},
		{Metric: contracts.PriceAbove200MA, Category: contracts.Technical, Label: "200-day trend", Plus: eq(1), Minus: eq(0)},
		{Metric: contracts.PriceAbove50MA, Category: contracts.Technical, Label: "50-day trend", Plus: eq(1)},
		{Metric: contracts.Beta, Category: contracts.Technical, Label: "volatility", Plus: lt(0.8), Minus: gt(1.2)},

		// Ownership
		{Metric: contracts.PromoterHolding, Category: contracts.Ownership, Label: "promoter holding", Unit: "%", Plus: gt(50), Minus: lt(30)},
		{Metric: contracts.PledgedPercent, Category: contracts.Ownership, Label: "pledged shares", Unit: "%", Plus: eq(0), Minus: gt(0)},
	}
}

// RulesFromConfig converts a validated rule file into rules
func RulesFromConfig(rf *strategyconfig.RulesFile) ([]Rule, error) {
	if err := strategyconfig.Validate(rf); err != nil {
		return nil, err
	}

	rules := make([]Rule, 0, len(rf.Rules))
	for _, rs := range rf.Rules {
		metric, _ := contracts.ParseMetricName(rs.Metric)
		cat, _ := contracts.ParseCategory(rs.Category)
		rules = append(rules, Rule{
			Metric:   metric,
			Category: cat,
			Label:    rs.Label,
			Unit:     rs.Unit,
			Scale:    rs.Scale,
			Plus:     copyCondition(rs.Plus),
			Minus:    copyCondition(rs.Minus),
		})
	}
	return rules, nil
}

// ToConfig renders rules in rule-file form (for printing and hashing)
func ToConfig(rules []Rule) *strategyconfig.RulesFile {
	rf := &strategyconfig.RulesFile{Version: "1", Rules: make([]strategyconfig.RuleSpec, 0, len(rules))}
	for _, r := range rules {
		rf.Rules = append(rf.Rules, strategyconfig.RuleSpec{
			Metric:   string(r.Metric),
			Category: string(r.Category),
			Label:    r.Label,
			Unit:     r.Unit,
			Scale:    r.Scale,
			Plus:     copyCondition(r.Plus),
			Minus:    copyCondition(r.Minus),
		})
	}
	return rf
}

// LoadRules returns DefaultRules when path is empty, otherwise the rules in the file
func LoadRules(path string) ([]Rule, error) {
	if path == "" {
		return DefaultRules(), nil
	}

	rf, _, err := strategyconfig.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load rules: %w", err)
	}
	return RulesFromConfig(rf)
}

func copyCondition(c *strategyconfig.Condition) *strategyconfig.Condition {
	if c == nil {
		return nil
	}
	cp := *c
	return &cp
}

// copyRules deep-copies a rule table, conditions included
func copyRules(rules []Rule) []Rule {
	out := make([]Rule, len(rules))
	for i, r := range rules {
		r.Plus = copyCondition(r.Plus)
		r.Minus = copyCondition(r.Minus)
		out[i] = r
	}
	return out
}

func (r Rule) scale() float64 {
	return strategyconfig.EffectiveScale(r.Scale)
}
