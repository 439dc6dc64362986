package strategyconfig

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoad(t *testing.T) {
	path := "../../configs/rules.yaml"

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Skip("rules file not found")
	}

	rf, yamlData, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if len(rf.Rules) != 19 {
		t.Errorf("expected 19 rules, got %d", len(rf.Rules))
	}

	if w := Warn(rf); len(w) != 0 {
		t.Errorf("expected no warnings for shipped rules, got %v", w)
	}

	hash, err := Hash(rf)
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}
	if len(hash) != 64 {
		t.Errorf("expected 64 char hash, got %d", len(hash))
	}

	// 동일 설정 → 동일 해시
	hash2, _ := Hash(rf)
	if hash != hash2 {
		t.Error("hash not deterministic")
	}

	t.Logf("rules hash: %s", hash)
	t.Logf("yaml size: %d bytes", len(yamlData))
}

func TestLoadMissingFile(t *testing.T) {
	if _, _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestParseRejectsUnknownField(t *testing.T) {
	data := []byte(`
version: "1"
rules:
  - metric: ROE
    category: Financial
    treshold: 15
    plus: {op: ">", value: 15}
`)
	if _, err := Parse(data); err == nil {
		t.Fatal("expected unknown field error")
	}
}

func TestValidate(t *testing.T) {
	gt := func(v float64) *Condition { return &Condition{Op: OpGT, Value: v} }

	tests := []struct {
		name  string
		rule  RuleSpec
		field string
	}{
		{"unknown metric", RuleSpec{Metric: "Alpha", Category: "Growth", Plus: gt(1)}, "rules[0].metric"},
		{"unknown category", RuleSpec{Metric: "ROE", Category: "Quality", Plus: gt(1)}, "rules[0].category"},
		{"no conditions", RuleSpec{Metric: "ROE", Category: "Financial"}, "rules[0]"},
		{"negative scale", RuleSpec{Metric: "ROE", Category: "Financial", Scale: -1, Plus: gt(1)}, "rules[0].scale"},
		{"bad op", RuleSpec{Metric: "ROE", Category: "Financial", Plus: &Condition{Op: "=>", Value: 1}}, "rules[0].plus"},
		{"bool with gt", RuleSpec{Metric: "Price_above_50MA", Category: "Technical", Plus: gt(0)}, "rules[0].plus"},
		{"bool value 2", RuleSpec{Metric: "Price_above_50MA", Category: "Technical", Minus: &Condition{Op: OpEQ, Value: 2}}, "rules[0].minus"},
		{"bool scaled", RuleSpec{Metric: "Price_above_50MA", Category: "Technical", Scale: 100, Plus: &Condition{Op: OpEQ, Value: 1}}, "rules[0].scale"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := Validate(&RulesFile{Rules: []RuleSpec{tc.rule}})
			if err == nil {
				t.Fatal("expected validation error")
			}
			ve, ok := err.(ValidationError)
			if !ok {
				t.Fatalf("expected ValidationError, got %T", err)
			}
			if ve.Field != tc.field {
				t.Errorf("expected field %s, got %s", tc.field, ve.Field)
			}
		})
	}

	if err := Validate(&RulesFile{}); err == nil {
		t.Error("expected error for empty rule list")
	}
}

func TestWarn(t *testing.T) {
	rf := &RulesFile{Rules: []RuleSpec{
		{Metric: "ROE", Category: "Financial", Plus: &Condition{OpGT, 5}, Minus: &Condition{OpLT, 15}},
		{Metric: "ROE", Category: "Financial", Plus: &Condition{OpGT, 15}},
	}}

	codes := map[string]int{}
	for _, w := range Warn(rf) {
		codes[w.Code]++
	}

	if codes["DUPLICATE_METRIC"] != 1 {
		t.Errorf("expected 1 DUPLICATE_METRIC, got %d", codes["DUPLICATE_METRIC"])
	}
	if codes["OVERLAPPING_CONDITIONS"] != 1 {
		t.Errorf("expected 1 OVERLAPPING_CONDITIONS, got %d", codes["OVERLAPPING_CONDITIONS"])
	}
	// 19개 중 ROE만 규칙 있음
	if codes["UNSCORED_METRIC"] != 18 {
		t.Errorf("expected 18 UNSCORED_METRIC, got %d", codes["UNSCORED_METRIC"])
	}
}

func TestConditionHolds(t *testing.T) {
	tests := []struct {
		c    Condition
		v    float64
		want bool
	}{
		{Condition{OpGT, 30}, 30, false},
		{Condition{OpGT, 30}, 30.001, true},
		{Condition{OpLT, 30}, 29.999, true},
		{Condition{OpGE, 1}, 1, true},
		{Condition{OpLE, 0}, 0, true},
		{Condition{OpEQ, 0}, 0, true},
		{Condition{OpEQ, 0}, 0.1, false},
		{Condition{"?", 0}, 0, false},
	}

	for _, tc := range tests {
		if got := tc.c.Holds(tc.v); got != tc.want {
			t.Errorf("%s holds(%v) = %v, want %v", tc.c, tc.v, got, tc.want)
		}
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	rf := &RulesFile{Version: "1", Rules: []RuleSpec{
		{Metric: "DividendYield", Category: "Financial", Scale: 100, Unit: "%", Plus: &Condition{OpGT, 3}},
	}}

	data, err := Marshal(rf)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if !strings.Contains(string(data), "scale: 100") {
		t.Errorf("expected scale in output, got:\n%s", data)
	}

	back, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	h1, _ := Hash(rf)
	h2, _ := Hash(back)
	if h1 != h2 {
		t.Error("hash changed after YAML round trip")
	}
}

func TestEffectiveScale(t *testing.T) {
	tests := map[float64]float64{0: 1, 100: 100, 0.5: 0.5}
	for in, want := range tests {
		if got := EffectiveScale(in); got != want {
			t.Errorf("EffectiveScale(%v) = %v, want %v", in, got, want)
		}
	}
}
