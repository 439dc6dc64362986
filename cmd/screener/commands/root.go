package commands

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	rulesFile string
	verbose   bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "screener",
	Short: "Equity screener - 펀더멘털/기술적/지분 점수 기반 종목 랭킹",
	Long: `Equity Screener CLI

종목별 메트릭을 추출하고 규칙 테이블로 점수를 매겨 랭킹합니다.
Universe → Metrics → Scoring → Ranking

Usage:
  go run ./cmd/screener [command]

Examples:
  go run ./cmd/screener screen
  go run ./cmd/screener screen --symbols TCS,INFY,ITC --top 5
  go run ./cmd/screener commentary --file portfolio.csv
  go run ./cmd/screener rules --rules configs/rules.yaml
  go run ./cmd/screener api
  go run ./cmd/screener schedule --cron "0 30 16 * * 1-5"`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&rulesFile, "rules", "", "rule table YAML (default: built-in rules, or RULES_FILE)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output (LOG_LEVEL=debug)")
}
