package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

// commentaryCmd represents the commentary command
var commentaryCmd = &cobra.Command{
	Use:   "commentary",
	Short: "보유 종목별 강점/약점 코멘트",
	Long: `포트폴리오의 각 종목에 대해 어떤 규칙 임계값을 넘었는지
강점(Strengths)과 약점(Weaknesses)으로 출력합니다.

Example:
  go run ./cmd/screener commentary --symbols TCS,ITC
  go run ./cmd/screener commentary --file portfolio.csv
  cat portfolio.csv | go run ./cmd/screener commentary --file -`,
	RunE: runCommentary,
}

var (
	commentarySymbols string
	commentaryFile    string
	commentaryJSON    bool
)

func init() {
	rootCmd.AddCommand(commentaryCmd)

	commentaryCmd.Flags().StringVar(&commentarySymbols, "symbols", "", "comma-separated holdings")
	commentaryCmd.Flags().StringVar(&commentaryFile, "file", "", "portfolio file (CSV or text, - for stdin)")
	commentaryCmd.Flags().BoolVar(&commentaryJSON, "json", false, "print JSON")
}

func runCommentary(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	symbols, err := readSymbolsInput(commentarySymbols, commentaryFile, cmd.InOrStdin())
	if err != nil {
		return err
	}
	if len(symbols) == 0 {
		return fmt.Errorf("no holdings given (use --symbols or --file)")
	}

	d, err := initDeps()
	if err != nil {
		return fmt.Errorf("init: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	items, err := d.orchestrator.Commentary(ctx, symbols)
	if err != nil {
		return err
	}

	if commentaryJSON {
		return printJSON(out, items)
	}

	PrintHeader(out, "Portfolio Commentary", [][2]string{
		{"Holdings", fmt.Sprintf("%d", len(symbols))},
		{"Rules", d.scorer.Hash()[:12]},
	})
	PrintCommentary(out, items)
	return nil
}
