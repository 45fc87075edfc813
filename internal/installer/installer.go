// Package installer makes sure the emulator's code is present on disk.
//
// Installation state lives only on the filesystem: the emulator counts as
// installed when its marker file exists inside the install directory, so the
// fetch and build cost is paid once per machine rather than once per run.
package installer

import (
	"context"
	"fmt"
	"os"
	"sync"

	"lstack/internal/executor"
	"lstack/internal/metrics"
	"lstack/pkg/logging"
)

// Runner runs a command to completion. *executor.Executor satisfies it.
type Runner interface {
	Run(ctx context.Context, c executor.Command) (*executor.Result, error)
}

// Config tells the installer where and how to install.
type Config struct {
	Dir          string
	RepoURL      string
	MarkerPath   string
	BuildCommand string
}

// Installer fetches and builds the emulator into a fixed directory.
type Installer struct {
	cfg     Config
	runner  Runner
	metrics *metrics.Recorder

	mu sync.Mutex
}

// For mocking in tests
var osRemoveAll = os.RemoveAll

// New creates an Installer. rec may be nil.
func New(cfg Config, runner Runner, rec *metrics.Recorder) *Installer {
	return &Installer{
		cfg:     cfg,
		runner:  runner,
		metrics: rec,
	}
}

// Installed reports whether the marker file exists.
func (i *Installer) Installed() bool {
	_, err := os.Stat(i.cfg.MarkerPath)
	return err == nil
}

// EnsureInstalled installs the emulator unless the marker file already
// exists. Concurrent callers are serialized; only one of them installs.
func (i *Installer) EnsureInstalled(ctx context.Context) error {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.Installed() {
		logging.Debug("Installer", "Emulator already installed in %s", i.cfg.Dir)
		i.metrics.InstallCheck(metrics.InstallSkipped)
		return nil
	}
	return i.install(ctx)
}

// Reinstall wipes the install directory and installs again.
func (i *Installer) Reinstall(ctx context.Context) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.install(ctx)
}

func (i *Installer) install(ctx context.Context) error {
	logging.Info("Installer", "Installing emulator to %s (this may take a while)", i.cfg.Dir)

	if err := osRemoveAll(i.cfg.Dir); err != nil {
		i.metrics.InstallCheck(metrics.InstallFailed)
		return &InstallationError{Step: StepClean, Dir: i.cfg.Dir, Err: err}
	}

	if _, err := i.runner.Run(ctx, executor.Argv("git", "clone", i.cfg.RepoURL, i.cfg.Dir)); err != nil {
		i.metrics.InstallCheck(metrics.InstallFailed)
		logging.Error("Installer", err, "Fetching %s failed", i.cfg.RepoURL)
		return &InstallationError{Step: StepFetch, Dir: i.cfg.Dir, Err: err}
	}

	build := executor.Shell(fmt.Sprintf("cd %q; %s", i.cfg.Dir, i.cfg.BuildCommand))
	if _, err := i.runner.Run(ctx, build); err != nil {
		i.metrics.InstallCheck(metrics.InstallFailed)
		logging.Error("Installer", err, "Building emulator in %s failed", i.cfg.Dir)
		return &InstallationError{Step: StepBuild, Dir: i.cfg.Dir, Err: err}
	}

	if !i.Installed() {
		i.metrics.InstallCheck(metrics.InstallFailed)
		return &InstallationError{
			Step: StepBuild,
			Dir:  i.cfg.Dir,
			Err:  fmt.Errorf("marker file %s missing after build", i.cfg.MarkerPath),
		}
	}

	i.metrics.InstallCheck(metrics.InstallSucceeded)
	logging.Info("Installer", "Emulator installed in %s", i.cfg.Dir)
	return nil
}
