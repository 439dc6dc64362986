package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wonny/screener/internal/s3_scoring"
	"github.com/wonny/screener/internal/strategyconfig"
	"github.com/wonny/screener/pkg/config"
)

// rulesCmd represents the rules command
var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "적용 중인 점수 규칙 테이블 출력",
	Long: `적용되는 규칙 테이블과 해시를 출력합니다.
--rules 가 없으면 RULES_FILE, 그것도 없으면 내장 규칙을 사용합니다.

Example:
  go run ./cmd/screener rules
  go run ./cmd/screener rules --rules configs/rules.yaml
  go run ./cmd/screener rules --yaml > my_rules.yaml`,
	RunE: runRules,
}

var rulesYAML bool

func init() {
	rootCmd.AddCommand(rulesCmd)

	rulesCmd.Flags().BoolVar(&rulesYAML, "yaml", false, "print the rule table as YAML")
}

func runRules(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	path := rulesFile
	if path == "" {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		path = cfg.RulesFile
	}
	rules, err := s3_scoring.LoadRules(path)
	if err != nil {
		return err
	}

	rf := s3_scoring.ToConfig(rules)
	if rulesYAML {
		data, err := strategyconfig.Marshal(rf)
		if err != nil {
			return fmt.Errorf("marshal rules: %w", err)
		}
		_, err = out.Write(data)
		return err
	}

	hash, err := strategyconfig.Hash(rf)
	if err != nil {
		return err
	}

	source := "built-in"
	if path != "" {
		source = path
	}
	PrintHeader(out, "Scoring Rules", [][2]string{
		{"Source", source},
		{"Rules", fmt.Sprintf("%d", len(rules))},
		{"Hash", hash},
	})
	PrintRules(out, rules)

	for _, w := range strategyconfig.Warn(rf) {
		PrintWarning(out, fmt.Sprintf("[%s] %s", w.Code, w.Message))
	}
	return nil
}
