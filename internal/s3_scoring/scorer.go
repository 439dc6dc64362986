package s3_scoring

import (
	"github.com/wonny/screener/internal/contracts"
	"github.com/wonny/screener/internal/strategyconfig"
)

// RuleHit is one rule whose condition fired for a record
type RuleHit struct {
	Rule      Rule
	Value     float64 // scaled value that was compared; bools are 1/0
	Delta     int     // +1 or -1
	Condition strategyconfig.Condition
}

// Scorer implements S3: threshold rules → category sub-scores
// ⭐ SSOT: 점수 계산은 여기서만 (순수 함수, I/O 없음)
type Scorer struct {
	rules []Rule
	hash  string
}

// NewScorer creates a scorer over a fixed rule table
func NewScorer(rules []Rule) (*Scorer, error) {
	owned := copyRules(rules)

	hash, err := strategyconfig.Hash(ToConfig(owned))
	if err != nil {
		return nil, err
	}

	return &Scorer{rules: owned, hash: hash}, nil
}

// NewDefaultScorer creates a scorer over DefaultRules
func NewDefaultScorer() *Scorer {
	s, err := NewScorer(DefaultRules())
	if err != nil {
		panic(err)
	}
	return s
}

// Rules returns a copy of the rule table
func (s *Scorer) Rules() []Rule {
	return copyRules(s.rules)
}

// Hash identifies the rule table in logs and results
func (s *Scorer) Hash() string { return s.hash }

// Score sums every fired rule into its bucket.
// A nil or all-absent record scores zero everywhere.
func (s *Scorer) Score(rec *contracts.MetricRecord) contracts.ScoreRecord {
	var score contracts.ScoreRecord
	for _, hit := range s.Evaluate(rec) {
		score.Add(hit.Rule.Category, hit.Delta)
	}
	return score
}

// Evaluate lists the rules that fired, in rule-table order
func (s *Scorer) Evaluate(rec *contracts.MetricRecord) []RuleHit {
	if rec == nil {
		return nil
	}

	var hits []RuleHit
	for _, rule := range s.rules {
		v, ok := value(rec, rule)
		if !ok {
			continue // 값 없음 → 의견 없음
		}

		switch {
		case rule.Plus != nil && rule.Plus.Holds(v):
			hits = append(hits, RuleHit{Rule: rule, Value: v, Delta: 1, Condition: *rule.Plus})
		case rule.Minus != nil && rule.Minus.Holds(v):
			hits = append(hits, RuleHit{Rule: rule, Value: v, Delta: -1, Condition: *rule.Minus})
		}
	}
	return hits
}

func value(rec *contracts.MetricRecord, rule Rule) (float64, bool) {
	if rule.Metric.IsBool() {
		b, ok := rec.Bool(rule.Metric)
		if !ok {
			return 0, false
		}
		if b {
			return 1, true
		}
		return 0, true
	}

	f, ok := rec.Float(rule.Metric)
	if !ok {
		return 0, false
	}
	return f * rule.scale(), true
}
