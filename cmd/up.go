package cmd

import (
	"context"
	"fmt"

	"lstack/internal/app"

	"github.com/spf13/cobra"
)

var (
	upNoTUI       bool
	upMetricsAddr string
)

func newUpCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "up",
		Short: "Start the emulator and keep it running until interrupted",
		Long: `Installs the emulator if needed, starts it and waits for it to report
readiness. It can run in two modes:

1. Interactive TUI Mode (default):
   - Shows startup progress and the latest log lines.
   - Once ready, lists every service endpoint; y copies the selected one.
   - q or Ctrl+C stops the emulator and exits.

2. Non-TUI / CLI Mode (using --no-tui flag):
   - Logs progress to stderr and prints the endpoint table to stdout.
   - Keeps the emulator running until the process is interrupted (e.g., Ctrl+C).

With --metrics-addr the command also serves Prometheus metrics on /metrics,
the endpoint list as JSON on /endpoints and the lifecycle state on /healthz.`,
		Args: cobra.NoArgs,
		RunE: runUp,
	}
	cmd.Flags().BoolVar(&upNoTUI, "no-tui", false, "Disable TUI and log to the console")
	cmd.Flags().StringVar(&upMetricsAddr, "metrics-addr", "", "Serve metrics and endpoints on this address, e.g. :9090")
	return cmd
}

func runUp(cmd *cobra.Command, args []string) error {
	cfg := app.NewConfig(upNoTUI, debug, configPath, upMetricsAddr)

	application, err := app.NewApplication(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return application.Run(ctx)
}
