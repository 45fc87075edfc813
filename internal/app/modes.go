package app

import (
	"context"
	"fmt"
	"io"
	"os/signal"
	"syscall"

	"lstack/internal/tui"
	"lstack/pkg/logging"
)

// runCLIMode starts the emulator, prints its endpoints and keeps it running
// until interrupted or until it exits on its own.
func runCLIMode(ctx context.Context, config *Config, services *Services, out io.Writer) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	defer services.Fixture.Close()

	logging.Info("CLI", "Running in no-TUI mode.")
	if err := services.Fixture.Start(ctx); err != nil {
		logging.Error("CLI", err, "Emulator failed to start")
		return err
	}

	urls, err := services.Fixture.Endpoints()
	if err != nil {
		return err
	}
	fmt.Fprintln(out, tui.RenderEndpointTable(tui.SortedEndpoints(urls), 0, -1))
	logging.Info("CLI", "Emulator ready (run %s). Press Ctrl+C to stop it and exit.", services.Fixture.RunID())

	select {
	case <-ctx.Done():
		logging.Info("CLI", "--- Shutting down emulator ---")
		return nil
	case <-services.Fixture.Exited():
		return fmt.Errorf("emulator exited unexpectedly")
	}
}

// runTUIMode executes the interactive terminal UI mode
func runTUIMode(ctx context.Context, config *Config, services *Services) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	defer services.Fixture.Close()

	// Switch logging to channel-based system for TUI integration
	logLevel := logging.LevelInfo
	if config.Debug {
		logLevel = logging.LevelDebug
	}
	logChan := logging.InitForTUI(logLevel)
	defer logging.CloseTUIChannel()

	if err := tui.Run(ctx, services.Fixture, logChan); err != nil {
		logging.Error("TUI-Lifecycle", err, "TUI ended with an error")
		return err
	}
	logging.Info("TUI-Lifecycle", "TUI exited.")
	return nil
}
