package tui

import (
	"context"
	"errors"
	"fmt"

	"lstack/pkg/logging"

	tea "github.com/charmbracelet/bubbletea"
)

// Run shows the startup view until the user quits. It returns the failure
// the view ended on, if any. Stopping the emulator is left to the caller.
func Run(ctx context.Context, emulator Emulator, logChannel <-chan logging.LogEntry) error {
	p := tea.NewProgram(NewModel(ctx, emulator, logChannel), tea.WithAltScreen(), tea.WithContext(ctx))
	final, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}
	if m, ok := final.(Model); ok {
		return m.Err()
	}
	return nil
}
