package strategyconfig

// RulesFile is the scoring rule table as written in YAML
// ⭐ SSOT: 규칙 파일 스키마는 여기서만 정의
type RulesFile struct {
	Version string     `yaml:"version" json:"version"`
	Rules   []RuleSpec `yaml:"rules" json:"rules"`
}

// RuleSpec is one threshold rule: a metric, its bucket and up to two conditions
type RuleSpec struct {
	Metric   string     `yaml:"metric" json:"metric"`
	Category string     `yaml:"category" json:"category"`
	Label    string     `yaml:"label,omitempty" json:"label,omitempty"` // narrative subject, e.g. "revenue growth"
	Unit     string     `yaml:"unit,omitempty" json:"unit,omitempty"`   // "%" or ""
	Scale    float64    `yaml:"scale,omitempty" json:"scale,omitempty"` // 0 = 1 (no scaling)
	Plus     *Condition `yaml:"plus,omitempty" json:"plus,omitempty"`
	Minus    *Condition `yaml:"minus,omitempty" json:"minus,omitempty"`
}

// Condition compares a (scaled) metric value against a threshold.
// Boolean metrics compare as 1 (true) / 0 (false) and only allow "==".
type Condition struct {
	Op    string  `yaml:"op" json:"op"`
	Value float64 `yaml:"value" json:"value"`
}

// Supported comparison operators
const (
	OpGT = ">"
	OpLT = "<"
	OpGE = ">="
	OpLE = "<="
	OpEQ = "=="
)

// Ops lists every supported operator
var Ops = []string{OpGT, OpLT, OpGE, OpLE, OpEQ}

// Holds reports whether v satisfies the condition
func (c Condition) Holds(v float64) bool {
	switch c.Op {
	case OpGT:
		return v > c.Value
	case OpLT:
		return v < c.Value
	case OpGE:
		return v >= c.Value
	case OpLE:
		return v <= c.Value
	case OpEQ:
		return v == c.Value
	}
	return false
}

// String renders the condition as "> 15"
func (c Condition) String() string {
	return c.Op + " " + formatThreshold(c.Value)
}

// EffectiveScale returns the multiplier applied before comparison; 0 means 1
func EffectiveScale(scale float64) float64 {
	if scale == 0 {
		return 1
	}
	return scale
}
