package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/wonny/screener/internal/brain"
	"github.com/wonny/screener/internal/selection"
)

// screenCmd represents the screen command
var screenCmd = &cobra.Command{
	Use:   "screen",
	Short: "종목 스크리닝 및 랭킹",
	Long: `유니버스의 각 종목에 대해 메트릭을 추출하고 점수를 매겨 랭킹합니다.

입력이 없으면 기본 유니버스(NIFTY 50)를 사용합니다.
--file 은 Symbol/Ticker 열이 있는 CSV 또는 자유 형식 텍스트를 받습니다 ("-" = stdin).

Example:
  go run ./cmd/screener screen
  go run ./cmd/screener screen --symbols TCS,INFY --top 5
  go run ./cmd/screener screen --file watchlist.csv --min-score 3 --json`,
	RunE: runScreen,
}

var (
	screenSymbols  string
	screenFile     string
	screenTop      int
	screenMinScore int
	screenJSON     bool
)

func init() {
	rootCmd.AddCommand(screenCmd)

	screenCmd.Flags().StringVar(&screenSymbols, "symbols", "", "comma-separated identifiers")
	screenCmd.Flags().StringVar(&screenFile, "file", "", "identifier list (CSV or text, - for stdin)")
	screenCmd.Flags().IntVar(&screenTop, "top", 0, "show only the top N (0 = all)")
	screenCmd.Flags().IntVar(&screenMinScore, "min-score", 0, "minimum total score")
	screenCmd.Flags().BoolVar(&screenJSON, "json", false, "print JSON instead of a table")
}

func runScreen(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	symbols, err := readSymbolsInput(screenSymbols, screenFile, cmd.InOrStdin())
	if err != nil {
		return err
	}

	d, err := initDeps()
	if err != nil {
		return fmt.Errorf("init: %w", err)
	}

	opts := selection.ScreenOptions{TopN: screenTop}
	if cmd.Flags().Changed("min-score") {
		opts.MinTotal = &screenMinScore
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runID := fmt.Sprintf("cli-%s", time.Now().Format("20060102-150405"))
	res, err := d.orchestrator.Run(ctx, brain.RunConfig{
		RunID:   runID,
		Symbols: symbols,
		Screen:  opts,
	})
	if err != nil {
		return fmt.Errorf("screen: %w", err)
	}

	if screenJSON {
		return printJSON(out, res.Result)
	}

	universe := "default (NIFTY 50)"
	if len(symbols) > 0 {
		universe = fmt.Sprintf("%d user symbols", len(symbols))
	}
	PrintHeader(out, "Equity Screen", [][2]string{
		{"Run ID", runID},
		{"Universe", universe},
		{"Rules", d.scorer.Hash()[:12]},
		{"Duration", res.Duration.Round(time.Millisecond).String()},
	})

	if res.Universe != nil {
		for _, raw := range res.Universe.ExcludedEntries() {
			PrintWarning(out, fmt.Sprintf("Skipped %q: %s", raw, res.Universe.Excluded[raw]))
		}
	}

	PrintRankTable(out, res.Result)
	return nil
}
