package strategyconfig

import (
	"fmt"

	"github.com/wonny/screener/internal/contracts"
)

// ValidationError 검증 실패 (프로그램 중단)
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Warning 권장 위반 (경고만)
type Warning struct {
	Code    string
	Message string
}

// Validate checks all required constraints
// 실패 시 error 반환 (프로그램 중단)
func Validate(rf *RulesFile) error {
	if len(rf.Rules) == 0 {
		return ValidationError{"rules", "must not be empty"}
	}

	for i, r := range rf.Rules {
		field := fmt.Sprintf("rules[%d]", i)

		metric, ok := contracts.ParseMetricName(r.Metric)
		if !ok {
			return ValidationError{field + ".metric", fmt.Sprintf("unknown metric %q", r.Metric)}
		}
		if _, ok := contracts.ParseCategory(r.Category); !ok {
			return ValidationError{field + ".category", fmt.Sprintf("unknown category %q", r.Category)}
		}
		if r.Plus == nil && r.Minus == nil {
			return ValidationError{field, "at least one of plus/minus is required"}
		}
		if r.Scale < 0 {
			return ValidationError{field + ".scale", "must be >= 0"}
		}

		if r.Plus != nil {
			if err := validateCondition(metric, r.Plus); err != nil {
				return ValidationError{field + ".plus", err.Error()}
			}
		}
		if r.Minus != nil {
			if err := validateCondition(metric, r.Minus); err != nil {
				return ValidationError{field + ".minus", err.Error()}
			}
		}

		if metric.IsBool() && r.Scale != 0 {
			return ValidationError{field + ".scale", "not allowed on boolean metric"}
		}
	}

	return nil
}

// Warn reports suspicious but legal rule tables
func Warn(rf *RulesFile) []Warning {
	var warnings []Warning

	seen := make(map[string]bool, len(rf.Rules))
	for _, r := range rf.Rules {
		if seen[r.Metric] {
			warnings = append(warnings, Warning{
				Code:    "DUPLICATE_METRIC",
				Message: fmt.Sprintf("%s is scored by more than one rule", r.Metric),
			})
		}
		seen[r.Metric] = true

		// 양쪽 조건이 같은 값에서 동시에 성립하면 0점으로 상쇄됨
		if r.Plus != nil && r.Minus != nil && overlaps(*r.Plus, *r.Minus) {
			warnings = append(warnings, Warning{
				Code:    "OVERLAPPING_CONDITIONS",
				Message: fmt.Sprintf("%s: plus (%s) and minus (%s) can both hold", r.Metric, r.Plus, r.Minus),
			})
		}
	}

	for _, m := range contracts.AllMetrics {
		if !seen[string(m)] {
			warnings = append(warnings, Warning{
				Code:    "UNSCORED_METRIC",
				Message: fmt.Sprintf("%s has no rule", m),
			})
		}
	}

	return warnings
}

func validateCondition(metric contracts.MetricName, c *Condition) error {
	valid := false
	for _, op := range Ops {
		if c.Op == op {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("unsupported op %q", c.Op)
	}

	if metric.IsBool() {
		if c.Op != OpEQ {
			return fmt.Errorf("boolean metric only supports %q", OpEQ)
		}
		if c.Value != 0 && c.Value != 1 {
			return fmt.Errorf("boolean value must be 0 or 1")
		}
	}
	return nil
}

// overlaps probes the thresholds of both conditions for a shared satisfying value
func overlaps(a, b Condition) bool {
	const eps = 1e-9
	for _, v := range []float64{a.Value, a.Value - eps, a.Value + eps, b.Value, b.Value - eps, b.Value + eps} {
		if a.Holds(v) && b.Holds(v) {
			return true
		}
	}
	return false
}
