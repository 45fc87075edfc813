package tui

import (
	"context"
	"time"

	"lstack/pkg/logging"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// Emulator is what the startup view drives. *fixture.Fixture satisfies it.
type Emulator interface {
	Start(ctx context.Context) error
	Endpoints() (map[string]string, error)
	Exited() <-chan struct{}
	RunID() string
}

type phase int

const (
	phaseStarting phase = iota
	phaseReady
	phaseFailed
)

type (
	startedMsg struct {
		endpoints []Endpoint
		exited    <-chan struct{}
		err       error
	}
	emulatorExitedMsg struct{}
	logEntryMsg       struct{ entry logging.LogEntry }
	logClosedMsg      struct{}
	tickMsg           time.Time
	copiedMsg         struct {
		url string
		err error
	}
)

// For mocking in tests
var clipboardWriteAll = clipboard.WriteAll

// Model is the bubbletea model of `lstack up`.
type Model struct {
	ctx        context.Context
	emulator   Emulator
	logChannel <-chan logging.LogEntry

	phase     phase
	keys      KeyMap
	help      help.Model
	spinner   spinner.Model
	startedAt time.Time
	now       time.Time
	logLines  []logging.LogEntry

	endpoints []Endpoint
	selected  int
	status    string
	err       error

	width    int
	height   int
	quitting bool
}

// NewModel creates the startup model. logChannel may be nil.
func NewModel(ctx context.Context, emulator Emulator, logChannel <-chan logging.LogEntry) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = spinnerStyle

	keys := DefaultKeyMap()
	keys.setReady(false)

	now := time.Now()
	return Model{
		keys:       keys,
		help:       help.New(),
		ctx:        ctx,
		emulator:   emulator,
		logChannel: logChannel,
		phase:      phaseStarting,
		spinner:    s,
		startedAt:  now,
		now:        now,
	}
}

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		m.spinner.Tick,
		startEmulatorCmd(m.ctx, m.emulator),
		tickCmd(),
	}
	if m.logChannel != nil {
		cmds = append(cmds, listenForLogsCmd(m.logChannel))
	}
	return tea.Batch(cmds...)
}

func startEmulatorCmd(ctx context.Context, e Emulator) tea.Cmd {
	return func() tea.Msg {
		if err := e.Start(ctx); err != nil {
			return startedMsg{err: err}
		}
		urls, err := e.Endpoints()
		if err != nil {
			return startedMsg{err: err}
		}
		return startedMsg{endpoints: SortedEndpoints(urls), exited: e.Exited()}
	}
}

func waitForExitCmd(exited <-chan struct{}) tea.Cmd {
	if exited == nil {
		return nil
	}
	return func() tea.Msg {
		<-exited
		return emulatorExitedMsg{}
	}
}

func listenForLogsCmd(ch <-chan logging.LogEntry) tea.Cmd {
	return func() tea.Msg {
		entry, ok := <-ch
		if !ok {
			return logClosedMsg{}
		}
		return logEntryMsg{entry: entry}
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(elapsedTickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func copyCmd(url string) tea.Cmd {
	return func() tea.Msg {
		return copiedMsg{url: url, err: clipboardWriteAll(url)}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case spinner.TickMsg:
		if m.phase != phaseStarting {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tickMsg:
		if m.phase != phaseStarting {
			return m, nil
		}
		m.now = time.Time(msg)
		return m, tickCmd()

	case startedMsg:
		if msg.err != nil {
			m.phase = phaseFailed
			m.err = msg.err
			return m, nil
		}
		m.phase = phaseReady
		m.keys.setReady(true)
		m.endpoints = msg.endpoints
		m.now = time.Now()
		return m, waitForExitCmd(msg.exited)

	case emulatorExitedMsg:
		if m.quitting {
			return m, nil
		}
		m.phase = phaseFailed
		m.keys.setReady(false)
		m.err = errEmulatorExited
		return m, nil

	case logEntryMsg:
		m.logLines = append(m.logLines, msg.entry)
		if len(m.logLines) > maxLogLines {
			m.logLines = m.logLines[len(m.logLines)-maxLogLines:]
		}
		return m, listenForLogsCmd(m.logChannel)

	case logClosedMsg:
		return m, nil

	case copiedMsg:
		if msg.err != nil {
			m.status = IconText(IconCross, "Copy failed: "+msg.err.Error())
		} else {
			m.status = IconText(IconLink, "Copied "+msg.url)
		}
		return m, nil
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		if m.selected > 0 {
			m.selected--
		}
	case key.Matches(msg, m.keys.Down):
		if m.selected < len(m.endpoints)-1 {
			m.selected++
		}
	case key.Matches(msg, m.keys.Copy):
		if len(m.endpoints) > 0 {
			return m, copyCmd(m.endpoints[m.selected].URL)
		}
	}
	return m, nil
}

// Err returns the startup or runtime failure shown by the view, if any.
func (m Model) Err() error {
	return m.err
}
