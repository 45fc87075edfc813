package tui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"lstack/pkg/logging"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

var errEmulatorExited = errors.New("emulator exited unexpectedly")

func (m Model) View() string {
	if m.quitting {
		return "Stopping emulator...\n"
	}

	header := headerStyle.Render("lstack")
	var body string
	switch m.phase {
	case phaseStarting:
		body = m.startingView()
	case phaseReady:
		body = m.readyView()
	case phaseFailed:
		body = m.failedView()
	}
	return lipgloss.JoinVertical(lipgloss.Left, header, body, helpStyle.Render(m.helpLine())) + "\n"
}

func (m Model) startingView() string {
	elapsed := m.now.Sub(m.startedAt).Truncate(time.Second)
	lines := []string{
		fmt.Sprintf("%s Starting emulator... %s", m.spinner.View(), elapsed),
	}
	if len(m.logLines) > 0 {
		lines = append(lines, "", renderLogLines(m.logLines, m.contentWidth()))
	}
	return panelStyle.Render(strings.Join(lines, "\n"))
}

func (m Model) readyView() string {
	title := readyStyle.Render(IconText(IconCheck, "Emulator ready"))
	if id := m.emulator.RunID(); id != "" {
		title += mutedStyle.Render("  run " + id)
	}
	parts := []string{title, "", RenderEndpointTable(m.endpoints, m.contentWidth(), m.selected)}
	if m.status != "" {
		parts = append(parts, "", m.status)
	}
	return panelStyle.Render(strings.Join(parts, "\n"))
}

func (m Model) failedView() string {
	msg := "unknown error"
	if m.err != nil {
		msg = m.err.Error()
	}
	parts := []string{errorStyle.Render(IconText(IconCross, "Emulator failed")), "", msg}
	if len(m.logLines) > 0 {
		parts = append(parts, "", renderLogLines(m.logLines, m.contentWidth()))
	}
	return panelStyle.Render(strings.Join(parts, "\n"))
}

func (m Model) helpLine() string {
	return m.help.View(m.keys)
}

// contentWidth is the space inside the panel, or 0 before the first resize.
func (m Model) contentWidth() int {
	if m.width <= 0 {
		return 0
	}
	w := m.width - panelStyle.GetHorizontalFrameSize()
	if w < 10 {
		return 10
	}
	return w
}

func renderLogLines(entries []logging.LogEntry, maxWidth int) string {
	out := make([]string, len(entries))
	for i, e := range entries {
		line := fmt.Sprintf("%s [%s] %s: %s", e.Timestamp.Format("15:04:05"), e.Level, e.Subsystem, e.Message)
		if maxWidth > 0 && runewidth.StringWidth(line) > maxWidth {
			line = runewidth.Truncate(line, maxWidth-1, "") + "…"
		}
		out[i] = styleLogLine(e.Level, line)
	}
	return strings.Join(out, "\n")
}

func styleLogLine(level logging.LogLevel, line string) string {
	switch level {
	case logging.LevelError:
		return logErrorStyle.Render(line)
	case logging.LevelWarn:
		return logWarnStyle.Render(line)
	case logging.LevelDebug:
		return logDebugStyle.Render(line)
	default:
		return logInfoStyle.Render(line)
	}
}
