package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/wonny/screener/internal/scheduler"
	"github.com/wonny/screener/internal/scheduler/jobs"
)

// scheduleCmd represents the schedule command
var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "정기 스크리닝 스케줄러 시작",
	Long: `cron 스케줄에 따라 스크리닝을 반복 실행합니다.
매 실행은 새로운 파이프라인 호출이며 이전 실행의 데이터를 재사용하지 않습니다.

스케줄 형식은 초 단위를 포함한 6개 필드입니다 (sec min hour dom mon dow).
스케줄러는 Ctrl+C로 종료할 수 있습니다.

Example:
  go run ./cmd/screener schedule
  go run ./cmd/screener schedule --cron "0 30 16 * * 1-5" --top 20
  go run ./cmd/screener schedule --symbols TCS,INFY --run-now`,
	RunE: runSchedule,
}

var (
	scheduleCron    string
	scheduleTop     int
	scheduleSymbols string
	scheduleRunNow  bool
)

func init() {
	rootCmd.AddCommand(scheduleCmd)

	scheduleCmd.Flags().StringVar(&scheduleCron, "cron", "", "cron schedule with seconds (default: SCHEDULE_CRON)")
	scheduleCmd.Flags().IntVar(&scheduleTop, "top", 10, "number of top ranks to log per run")
	scheduleCmd.Flags().StringVar(&scheduleSymbols, "symbols", "", "comma-separated identifiers (default universe if empty)")
	scheduleCmd.Flags().BoolVar(&scheduleRunNow, "run-now", false, "run once immediately before waiting for the schedule")
}

func runSchedule(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	symbols, err := readSymbolsInput(scheduleSymbols, "", nil)
	if err != nil {
		return err
	}

	d, err := initDeps()
	if err != nil {
		return fmt.Errorf("init: %w", err)
	}

	cronExpr := scheduleCron
	if cronExpr == "" {
		cronExpr = d.cfg.ScheduleCron
	}

	sched := scheduler.New(d.log, scheduler.WithRetry(d.cfg.Fetch.MaxRetries, d.cfg.Fetch.RetryDelay))
	job := jobs.NewScreenJob(d.orchestrator, cronExpr, symbols, scheduleTop, d.log)
	if err := sched.AddJob(job); err != nil {
		return fmt.Errorf("add job: %w", err)
	}

	if scheduleRunNow {
		if err := sched.RunJob(job.Name()); err != nil {
			PrintWarning(out, fmt.Sprintf("Immediate run failed: %v", err))
		}
		PrintRankTable(out, job.Latest())
	}

	sched.Start()
	defer sched.Stop()

	PrintSuccess(out, "Scheduler started")
	PrintKeyValue(out, "Job", job.Name(), 8)
	PrintKeyValue(out, "Cron", cronExpr, 8)
	if next, ok := sched.NextRun(job.Name()); ok {
		PrintKeyValue(out, "Next run", next.Format("2006-01-02 15:04:05"), 8)
	}
	fmt.Fprintln(out, "\nPress Ctrl+C to stop")

	// Wait for interrupt signal
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	fmt.Fprintln(out, "\n🛑 Stopping scheduler...")
	return nil
}
