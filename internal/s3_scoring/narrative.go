package s3_scoring

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/wonny/screener/internal/contracts"
)

// Commentary is the per-holding narrative view
type Commentary struct {
	Symbol     string                `json:"symbol"`
	Name       string                `json:"name,omitempty"`
	Score      contracts.ScoreRecord `json:"score"`
	Strengths  []string              `json:"strengths"`
	Weaknesses []string              `json:"weaknesses"`
	Error      string                `json:"error,omitempty"`
}

// Narrate turns the fired rules of rec into strength/weakness statements
func (s *Scorer) Narrate(rec *contracts.MetricRecord) Commentary {
	c := Commentary{Strengths: []string{}, Weaknesses: []string{}}
	if rec == nil {
		return c
	}

	c.Symbol = rec.Symbol()
	c.Name = rec.CompanyName()
	if rec.Failed() {
		c.Error = rec.Err().Error()
		return c
	}

	for _, hit := range s.Evaluate(rec) {
		c.Score.Add(hit.Rule.Category, hit.Delta)
		line := Statement(hit)
		if hit.Delta > 0 {
			c.Strengths = append(c.Strengths, line)
		} else {
			c.Weaknesses = append(c.Weaknesses, line)
		}
	}
	return c
}

// Statement renders one hit, e.g. "Revenue growth: RevCAGR 20.00% > 15%"
func Statement(hit RuleHit) string {
	label := hit.Rule.Label
	if label == "" {
		label = string(hit.Rule.Metric)
	}

	if hit.Rule.Metric.IsBool() {
		return fmt.Sprintf("%s: %s is %t", capitalize(label), hit.Rule.Metric, hit.Value == 1)
	}

	unit := hit.Rule.Unit
	return fmt.Sprintf("%s: %s %.2f%s %s %s%s",
		capitalize(label), hit.Rule.Metric,
		hit.Value, unit,
		hit.Condition.Op, strconv.FormatFloat(hit.Condition.Value, 'f', -1, 64), unit)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
