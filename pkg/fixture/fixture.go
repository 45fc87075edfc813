package fixture

import (
	"context"
	"fmt"
	"os"
	"time"

	"lstack/internal/cleanup"
	"lstack/internal/config"
	"lstack/internal/endpoint"
	"lstack/internal/executor"
	"lstack/internal/installer"
	"lstack/internal/lifecycle"
	"lstack/internal/metrics"
	"lstack/internal/snapshot"
	"lstack/pkg/logging"

	"github.com/prometheus/client_golang/prometheus"
)

const defaultRegion = "us-east-1"

// M is what TestMain receives; *testing.M satisfies it.
type M interface {
	Run() int
}

// Fixture owns one emulator for the lifetime of a test run.
type Fixture struct {
	cfg      Config
	region   string
	registry *prometheus.Registry
	cleanup  *cleanup.Registry

	executor   *executor.Executor
	installer  Installer
	controller *lifecycle.Controller
	resolver   *endpoint.Resolver
}

// New builds a Fixture. Nothing is installed or started until Start.
func New(opts ...Option) (*Fixture, error) {
	o := &options{region: defaultRegion}
	for _, opt := range opts {
		opt(o)
	}

	cfg, err := loadConfig(o)
	if err != nil {
		return nil, err
	}
	if len(o.services) > 0 {
		cfg.Emulator.Services = o.services
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	services, err := snapshot.ParseServices(cfg.Emulator.Services)
	if err != nil {
		return nil, fmt.Errorf("invalid emulator services: %w", err)
	}

	if o.logOutput != nil {
		logging.InitForCLI(logging.ParseLevel(cfg.Logging.Level), o.logOutput)
	}

	registry := o.registry
	if registry == nil {
		registry = prometheus.NewRegistry()
	}
	rec, err := metrics.NewRecorder(registry, "")
	if err != nil {
		return nil, fmt.Errorf("failed to register metrics: %w", err)
	}

	f := &Fixture{
		cfg:      cfg,
		region:   o.region,
		registry: registry,
		cleanup:  cleanup.NewRegistry(),
	}
	f.executor = executor.New(executor.Options{
		ExtraPath: cfg.Exec.ExtraPath,
		Shell:     cfg.Exec.Shell,
		Cleanup:   f.cleanup,
	})

	f.installer = o.installer
	if f.installer == nil {
		f.installer = installer.New(installer.Config{
			Dir:          cfg.Install.Dir,
			RepoURL:      cfg.Install.RepoURL,
			MarkerPath:   cfg.MarkerPath(),
			BuildCommand: cfg.Install.BuildCommand,
		}, f.executor, rec)
	}

	launcher := o.launcher
	if launcher == nil {
		launcher = lifecycle.ExecLauncher{Executor: f.executor}
	}

	f.controller = lifecycle.New(lifecycle.Options{
		Installer:      f.installer,
		Launcher:       launcher,
		Command:        cfg.EmulatorCommand(),
		Dir:            cfg.Install.Dir,
		ReadyMarker:    cfg.Emulator.ReadyMarker,
		ArtifactPath:   cfg.ArtifactPath(),
		Services:       services,
		Hostname:       cfg.Emulator.Hostname,
		StartupTimeout: cfg.Emulator.StartupTimeout,
		ShutdownGrace:  cfg.Emulator.ShutdownGrace,
		Metrics:        rec,
	})
	f.resolver = endpoint.NewResolver(f.controller, endpoint.Options{
		Scheme:       cfg.Endpoints.Scheme,
		Host:         cfg.Endpoints.Host,
		VirtualHosts: cfg.Endpoints.VirtualHosts,
	})
	f.cleanup.Register("emulator teardown", f.controller.Teardown)

	return f, nil
}

func loadConfig(o *options) (Config, error) {
	switch {
	case o.config != nil:
		return *o.config, nil
	case o.configPath != "":
		return config.LoadConfigFromPath(o.configPath)
	default:
		return config.LoadConfig()
	}
}

// Start installs and launches the emulator if that has not happened yet and
// waits until it is ready. It is the before-suite step.
func (f *Fixture) Start(ctx context.Context) error {
	_, err := f.controller.EnsureStarted(ctx)
	return err
}

// Stop tears the emulator down without waiting for it to exit. It is the
// after-suite step.
func (f *Fixture) Stop() {
	f.controller.Teardown()
}

// Run starts the emulator, exports TEST_<SVC>_URL variables, runs m and
// closes the fixture. It returns the exit code for os.Exit. An interrupt
// while the run is in progress still tears the emulator down.
func (f *Fixture) Run(m M) int {
	stopSignals := f.cleanup.HandleSignals()
	defer stopSignals()
	defer f.Close()

	if err := f.Start(context.Background()); err != nil {
		logging.Error("Fixture", err, "Emulator failed to start")
		fmt.Fprintf(os.Stderr, "emulator failed to start: %v\n", err)
		return 1
	}
	if err := f.ExportEnv(); err != nil {
		logging.Error("Fixture", err, "Failed to export endpoint variables")
		fmt.Fprintf(os.Stderr, "failed to export endpoint variables: %v\n", err)
		return 1
	}
	return m.Run()
}

// Close stops the emulator, waits up to the shutdown grace period for it to
// exit and runs every cleanup hook the fixture registered.
func (f *Fixture) Close() {
	f.shutdown()
	f.cleanup.Run()
}

// shutdown stops the emulator and gives it the grace period to exit, so the
// forced kill still happens before the test binary is gone.
func (f *Fixture) shutdown() {
	exited := f.controller.Exited()
	f.Stop()
	if exited == nil {
		return
	}
	wait := f.cfg.Emulator.ShutdownGrace + time.Second
	select {
	case <-exited:
	case <-time.After(wait):
		logging.Warn("Fixture", "Emulator still running %s after teardown", wait)
	}
}

// Endpoint returns the base URL of service, e.g. http://localhost:4576/.
func (f *Fixture) Endpoint(service string) (string, error) {
	return f.resolver.Resolve(service)
}

// Endpoints returns the base URL of every service the emulator exposes.
func (f *Fixture) Endpoints() (map[string]string, error) {
	return f.resolver.All()
}

// Port returns the port of service.
func (f *Fixture) Port(service string) (int, error) {
	snap, err := f.controller.Snapshot()
	if err != nil {
		return 0, err
	}
	port, ok := snap.Port(service)
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownService, service)
	}
	return port, nil
}

// ExportEnv sets TEST_<SVC>_URL for every service so code under test can
// find the emulator without importing this package.
func (f *Fixture) ExportEnv() error {
	urls, err := f.Endpoints()
	if err != nil {
		return err
	}
	for svc, url := range urls {
		if err := os.Setenv(endpoint.EnvName(svc), url); err != nil {
			return fmt.Errorf("failed to set %s: %w", endpoint.EnvName(svc), err)
		}
	}
	logging.Debug("Fixture", "Exported %d endpoint variables", len(urls))
	return nil
}

// Metrics returns the registry holding the fixture's metrics.
func (f *Fixture) Metrics() *prometheus.Registry {
	return f.registry
}

// Config returns the configuration the fixture was built with.
func (f *Fixture) Config() Config {
	return f.cfg
}

// State reports the emulator's lifecycle state, e.g. "Ready".
func (f *Fixture) State() string {
	return f.controller.State().String()
}

// RunID identifies the current emulator run.
func (f *Fixture) RunID() string {
	return f.controller.RunID()
}

// Exited is closed when the emulator exits; nil when none is running.
func (f *Fixture) Exited() <-chan struct{} {
	return f.controller.Exited()
}

// Reinstall discards the cached install and fetches and builds it again.
// It only applies to the built-in installer.
func (f *Fixture) Reinstall(ctx context.Context) error {
	inst, ok := f.installer.(*installer.Installer)
	if !ok {
		return fmt.Errorf("reinstall is not supported by %T", f.installer)
	}
	return inst.Reinstall(ctx)
}

// Install makes sure the emulator is installed without starting it.
func (f *Fixture) Install(ctx context.Context) error {
	return f.installer.EnsureInstalled(ctx)
}
