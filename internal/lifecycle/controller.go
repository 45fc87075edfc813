package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"lstack/internal/executor"
	"lstack/internal/metrics"
	"lstack/internal/snapshot"
	"lstack/pkg/logging"

	"github.com/google/uuid"
)

// Environment variables passed to the emulator.
const (
	EnvServices = "SERVICES"
	EnvHostname = "HOSTNAME"
	EnvRunID    = "LSTACK_RUN_ID"
)

// Installer makes sure the emulator sources are present before launch.
type Installer interface {
	EnsureInstalled(ctx context.Context) error
}

// Process is a running emulator.
type Process interface {
	Pid() int
	Stdout() io.ReadCloser
	StderrTail() string
	Exited() <-chan struct{}
	Terminate(grace time.Duration) error
}

// Launcher starts the emulator as a detached child.
type Launcher interface {
	Launch(c executor.Command) (Process, error)
}

// ExecLauncher launches through an executor.Executor.
type ExecLauncher struct {
	Executor *executor.Executor
}

func (l ExecLauncher) Launch(c executor.Command) (Process, error) {
	p, err := l.Executor.Start(c)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Options configures a Controller.
type Options struct {
	Installer Installer
	Launcher  Launcher
	// Command is the emulator's start command, run in Dir.
	Command []string
	Dir     string
	// ReadyMarker is the exact stdout line that signals readiness.
	ReadyMarker string
	// ArtifactPath is the configuration artifact holding the default ports.
	ArtifactPath   string
	Services       snapshot.ServiceList
	Hostname       string
	StartupTimeout time.Duration
	ShutdownGrace  time.Duration
	Metrics        *metrics.Recorder
}

// Controller owns the single emulator instance of a process. It is safe for
// concurrent use: the first EnsureStarted call installs and launches, every
// other caller waits for that attempt's outcome.
type Controller struct {
	opts Options

	mu        sync.Mutex
	state     State
	startDone chan struct{}
	proc      Process
	snap      *snapshot.Snapshot
	err       error
	runID     string
	startedAt time.Time
}

// New creates a Controller in the NotStarted state.
func New(opts Options) *Controller {
	c := &Controller{opts: opts, state: StateNotStarted}
	c.opts.Metrics.SetState(c.state.String(), stateNames())
	return c
}

// EnsureStarted starts the emulator if needed and blocks until it is ready.
// A failed start is not retried; later calls return the same error.
// ctx bounds this caller's wait. The start attempt itself runs under the
// first caller's ctx.
func (c *Controller) EnsureStarted(ctx context.Context) (*snapshot.Snapshot, error) {
	c.mu.Lock()
	switch c.state {
	case StateReady:
		snap := c.snap
		c.mu.Unlock()
		return snap, nil
	case StateFailed:
		err := c.err
		c.mu.Unlock()
		return nil, err
	case StateStopped:
		c.mu.Unlock()
		return nil, ErrStopped
	case StateStarting:
		done := c.startDone
		c.mu.Unlock()
		select {
		case <-done:
			return c.outcome()
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	done := make(chan struct{})
	c.startDone = done
	c.setState(StateStarting)
	c.mu.Unlock()

	snap, err := c.start(ctx)

	c.mu.Lock()
	switch {
	case c.state == StateStopped:
		// Torn down while starting; Teardown already killed what was launched.
	case err != nil:
		c.err = err
		c.proc = nil
		c.setState(StateFailed)
	default:
		c.snap = snap
		c.setState(StateReady)
	}
	close(done)
	c.mu.Unlock()

	return c.outcome()
}

func (c *Controller) outcome() (*snapshot.Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch c.state {
	case StateReady:
		return c.snap, nil
	case StateFailed:
		return nil, c.err
	default:
		return nil, ErrStopped
	}
}

func (c *Controller) start(ctx context.Context) (*snapshot.Snapshot, error) {
	if c.opts.Installer != nil {
		if err := c.opts.Installer.EnsureInstalled(ctx); err != nil {
			return nil, err
		}
	}

	runID := uuid.NewString()
	cmd := c.launchCommand(runID)
	startedAt := time.Now()

	logging.Info("Lifecycle", "Starting emulator: %s", cmd)
	proc, err := c.opts.Launcher.Launch(cmd)
	if err != nil {
		c.opts.Metrics.Launch(metrics.LaunchFailed, 0)
		return nil, &StartupError{Kind: ErrStartupFailed, Reason: "launch failed", Err: err}
	}

	c.mu.Lock()
	if c.state == StateStopped {
		c.mu.Unlock()
		c.kill(proc, metrics.KillTeardown)
		return nil, ErrStopped
	}
	c.proc = proc
	c.runID = runID
	c.startedAt = startedAt
	c.mu.Unlock()
	logging.Debug("Lifecycle", "Emulator launched (PID: %d, run %s)", proc.Pid(), runID)

	if err := waitForMarker(ctx, proc, c.opts.ReadyMarker, c.startupTimeout()); err != nil {
		if errors.Is(err, ErrStartupTimeout) {
			c.opts.Metrics.Launch(metrics.LaunchTimeout, time.Since(startedAt))
		} else {
			c.opts.Metrics.Launch(metrics.LaunchFailed, time.Since(startedAt))
		}
		logging.Error("Lifecycle", err, "Emulator did not become ready")
		c.abandon(proc)
		return nil, err
	}

	snap, err := snapshot.Load(c.opts.ArtifactPath)
	if err != nil {
		c.opts.Metrics.Launch(metrics.LaunchFailed, time.Since(startedAt))
		c.abandon(proc)
		return nil, &StartupError{Kind: ErrStartupFailed, Reason: "reading service ports", Err: err}
	}
	snap = snap.WithOverrides(c.opts.Services.Ports)

	c.opts.Metrics.Launch(metrics.LaunchReady, time.Since(startedAt))
	logging.Info("Lifecycle", "Emulator ready after %s with %d services", time.Since(startedAt).Round(time.Millisecond), snap.Len())
	return snap, nil
}

func (c *Controller) launchCommand(runID string) executor.Command {
	env := map[string]string{EnvRunID: runID}
	if services := c.opts.Services.Env(); services != "" {
		env[EnvServices] = services
	}
	if c.opts.Hostname != "" {
		env[EnvHostname] = c.opts.Hostname
	}
	return executor.Command{
		Args: append([]string(nil), c.opts.Command...),
		Dir:  c.opts.Dir,
		Env:  env,
	}
}

func (c *Controller) startupTimeout() time.Duration {
	if c.opts.StartupTimeout <= 0 {
		return 5 * time.Minute
	}
	return c.opts.StartupTimeout
}

// Snapshot returns the service ports captured at readiness.
func (c *Controller) Snapshot() (*snapshot.Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateReady {
		return nil, fmt.Errorf("%w (state %s)", ErrNotReady, c.state)
	}
	return c.snap, nil
}

// State returns the current lifecycle state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// RunID returns the identifier passed to the current emulator run.
func (c *Controller) RunID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.runID
}

// Uptime returns how long the emulator has been running, or zero.
func (c *Controller) Uptime() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateReady {
		return 0
	}
	return time.Since(c.startedAt)
}

// Exited is closed when the running emulator exits. It is nil when no
// emulator is running.
func (c *Controller) Exited() <-chan struct{} {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.proc == nil {
		return nil
	}
	return c.proc.Exited()
}

// Teardown stops the emulator. It is idempotent and safe to call in any
// state, including while a start is in flight. It does not wait for the
// start attempt to finish.
func (c *Controller) Teardown() {
	c.mu.Lock()
	proc := c.proc
	c.proc = nil
	switch c.state {
	case StateStarting, StateReady:
		c.snap = nil
		c.setState(StateStopped)
	}
	c.mu.Unlock()

	if proc == nil {
		return
	}
	logging.Info("Lifecycle", "Stopping emulator (PID: %d)", proc.Pid())
	c.kill(proc, metrics.KillTeardown)
}

// abandon kills proc unless Teardown already took it.
func (c *Controller) abandon(proc Process) {
	c.mu.Lock()
	owned := c.proc == proc
	if owned {
		c.proc = nil
	}
	c.mu.Unlock()
	if owned {
		c.kill(proc, metrics.KillStartupFailure)
	}
}

func (c *Controller) kill(proc Process, reason string) {
	c.opts.Metrics.Kill(reason)
	if err := proc.Terminate(c.opts.ShutdownGrace); err != nil {
		logging.Warn("Lifecycle", "Failed to stop emulator (PID: %d): %v", proc.Pid(), err)
	}
}

// setState must be called with mu held.
func (c *Controller) setState(s State) {
	if c.state != s {
		logging.Debug("Lifecycle", "State %s -> %s", c.state, s)
	}
	c.state = s
	c.opts.Metrics.SetState(s.String(), stateNames())
}
