package commands

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/wonny/screener/internal/api"
	"github.com/wonny/screener/internal/api/handlers"
)

// apiCmd represents the api command
var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "API 서버 시작",
	Long: `REST API 서버를 시작합니다.

Endpoints:
  GET  /health
  GET  /metrics
  GET  /api/rank?symbols=TCS,INFY&top=5&min_score=3
  POST /api/rank                       (JSON, CSV 또는 텍스트 본문)
  POST /api/commentary
  GET  /api/stocks/{symbol}/commentary
  GET  /api/rules

Example:
  go run ./cmd/screener api
  go run ./cmd/screener api --port 9000`,
	RunE: runAPI,
}

var apiPort string

func init() {
	rootCmd.AddCommand(apiCmd)

	apiCmd.Flags().StringVar(&apiPort, "port", "", "listen port (default: PORT)")
}

func runAPI(cmd *cobra.Command, args []string) error {
	d, err := initDeps()
	if err != nil {
		return fmt.Errorf("init: %w", err)
	}
	if apiPort != "" {
		d.cfg.Port = apiPort
	}

	router := api.NewRouter(
		handlers.NewScreeningHandler(d.orchestrator, d.log),
		handlers.NewRulesHandler(d.scorer),
		d.reg,
		d.log,
	)
	server := api.New(d.cfg, d.log, router)

	listener, err := net.Listen("tcp", ":"+d.cfg.Port)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", d.cfg.Port, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "🚀 Screener API listening on :%s (Ctrl+C to stop)\n", d.cfg.Port)

	// Graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := server.Serve(ctx, listener); err != nil {
		return err
	}

	d.log.Info("Server exited")
	return nil
}
