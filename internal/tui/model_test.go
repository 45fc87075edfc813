package tui

import (
	"context"
	"errors"
	"testing"
	"time"

	"lstack/pkg/logging"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEmulator struct {
	startErr  error
	endpoints map[string]string
	exited    chan struct{}
}

func (f *fakeEmulator) Start(context.Context) error { return f.startErr }
func (f *fakeEmulator) Endpoints() (map[string]string, error) {
	return f.endpoints, nil
}
func (f *fakeEmulator) Exited() <-chan struct{} { return f.exited }
func (f *fakeEmulator) RunID() string           { return "run-1" }

func newFakeEmulator() *fakeEmulator {
	return &fakeEmulator{
		endpoints: map[string]string{
			"s3":  "http://test.localhost.atlassian.io:4572/",
			"sqs": "http://localhost:4576/",
		},
		exited: make(chan struct{}),
	}
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	require.True(t, ok)
	return nm, cmd
}

func TestStartEmulatorCmdReportsEndpoints(t *testing.T) {
	emu := newFakeEmulator()
	msg := startEmulatorCmd(context.Background(), emu)()

	started, ok := msg.(startedMsg)
	require.True(t, ok)
	require.NoError(t, started.err)
	assert.Equal(t, []Endpoint{
		{Service: "s3", URL: "http://test.localhost.atlassian.io:4572/"},
		{Service: "sqs", URL: "http://localhost:4576/"},
	}, started.endpoints)
}

func TestStartEmulatorCmdReportsFailure(t *testing.T) {
	emu := newFakeEmulator()
	emu.startErr = errors.New("emulator did not become ready in time")

	started := startEmulatorCmd(context.Background(), emu)().(startedMsg)
	assert.EqualError(t, started.err, "emulator did not become ready in time")
}

func TestModelStartingToReady(t *testing.T) {
	emu := newFakeEmulator()
	m := NewModel(context.Background(), emu, nil)
	assert.Contains(t, m.View(), "Starting emulator")

	m, cmd := update(t, m, startedMsg{
		endpoints: SortedEndpoints(emu.endpoints),
		exited:    emu.exited,
	})
	require.NotNil(t, cmd, "ready model waits for the emulator to exit")
	assert.Equal(t, phaseReady, m.phase)

	view := m.View()
	assert.Contains(t, view, "Emulator ready")
	assert.Contains(t, view, "run-1")
	assert.Contains(t, view, "http://localhost:4576/")
}

func TestModelStartFailure(t *testing.T) {
	m := NewModel(context.Background(), newFakeEmulator(), nil)
	m, _ = update(t, m, startedMsg{err: errors.New("make: *** [infra] Error 2")})

	assert.Equal(t, phaseFailed, m.phase)
	assert.EqualError(t, m.Err(), "make: *** [infra] Error 2")
	assert.Contains(t, m.View(), "Emulator failed")
}

func TestModelEmulatorExit(t *testing.T) {
	emu := newFakeEmulator()
	m := NewModel(context.Background(), emu, nil)
	m, cmd := update(t, m, startedMsg{endpoints: SortedEndpoints(emu.endpoints), exited: emu.exited})

	close(emu.exited)
	msg := cmd()
	assert.Equal(t, emulatorExitedMsg{}, msg)

	m, _ = update(t, m, msg)
	assert.Equal(t, phaseFailed, m.phase)
	assert.ErrorIs(t, m.Err(), errEmulatorExited)
}

func TestModelSelectionAndCopy(t *testing.T) {
	var copied string
	orig := clipboardWriteAll
	clipboardWriteAll = func(s string) error {
		copied = s
		return nil
	}
	defer func() { clipboardWriteAll = orig }()

	emu := newFakeEmulator()
	m := NewModel(context.Background(), emu, nil)
	m, _ = update(t, m, startedMsg{endpoints: SortedEndpoints(emu.endpoints)})

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 1, m.selected)
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 1, m.selected, "selection stays on the last row")

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'y'}})
	require.NotNil(t, cmd)
	m, _ = update(t, m, cmd())
	assert.Equal(t, "http://localhost:4576/", copied)
	assert.Contains(t, m.View(), "Copied http://localhost:4576/")

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 0, m.selected)
}

func TestModelCopyFailure(t *testing.T) {
	orig := clipboardWriteAll
	clipboardWriteAll = func(string) error { return errors.New("no clipboard utility") }
	defer func() { clipboardWriteAll = orig }()

	emu := newFakeEmulator()
	m := NewModel(context.Background(), emu, nil)
	m, _ = update(t, m, startedMsg{endpoints: SortedEndpoints(emu.endpoints)})
	_, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'y'}})
	m, _ = update(t, m, cmd())

	assert.Contains(t, m.View(), "Copy failed")
}

func TestModelQuit(t *testing.T) {
	m := NewModel(context.Background(), newFakeEmulator(), nil)
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})

	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
	assert.True(t, m.quitting)

	// Exit caused by our own teardown is not a failure.
	m, _ = update(t, m, emulatorExitedMsg{})
	assert.NoError(t, m.Err())
}

func TestModelCollectsLogLines(t *testing.T) {
	ch := make(chan logging.LogEntry, maxLogLines+2)
	m := NewModel(context.Background(), newFakeEmulator(), ch)

	for i := 0; i < maxLogLines+2; i++ {
		entry := logging.LogEntry{Timestamp: time.Now(), Level: logging.LevelInfo, Subsystem: "Installer", Message: "step"}
		var cmd tea.Cmd
		m, cmd = update(t, m, logEntryMsg{entry: entry})
		require.NotNil(t, cmd, "keeps listening")
	}
	assert.Len(t, m.logLines, maxLogLines)
	assert.Contains(t, m.View(), "Installer: step")

	close(ch)
	assert.Equal(t, logClosedMsg{}, listenForLogsCmd(ch)())
}

func TestModelTickUpdatesElapsed(t *testing.T) {
	m := NewModel(context.Background(), newFakeEmulator(), nil)
	later := m.startedAt.Add(3 * time.Second)

	m, cmd := update(t, m, tickMsg(later))
	require.NotNil(t, cmd)
	assert.Contains(t, m.View(), "3s")
}

func TestHelpLineFollowsPhase(t *testing.T) {
	emu := newFakeEmulator()
	m := NewModel(context.Background(), emu, nil)

	assert.Contains(t, m.helpLine(), "stop and quit")
	assert.NotContains(t, m.helpLine(), "copy URL")

	m, _ = update(t, m, startedMsg{endpoints: SortedEndpoints(emu.endpoints)})
	assert.Contains(t, m.helpLine(), "copy URL")

	m, _ = update(t, m, emulatorExitedMsg{})
	assert.NotContains(t, m.helpLine(), "copy URL")
}
