package app

import (
	"context"
	"fmt"
	"io"
	"os"

	"lstack/internal/config"
	"lstack/pkg/logging"
)

// Application is the main application structure behind `lstack up`
type Application struct {
	config   *Config
	services *Services
	out      io.Writer
}

// NewApplication creates and initializes a new application instance
func NewApplication(cfg *Config) (*Application, error) {
	appLogLevel := logging.LevelInfo
	if cfg.Debug {
		appLogLevel = logging.LevelDebug
	}

	// CLI logging until the TUI takes over
	logging.InitForCLI(appLogLevel, os.Stderr)

	if cfg.LstackConfig == nil {
		lstackCfg, err := LoadConfig(cfg.ConfigPath)
		if err != nil {
			logging.Error("Bootstrap", err, "Failed to load lstack configuration")
			return nil, err
		}
		cfg.LstackConfig = &lstackCfg
	}
	if !cfg.Debug {
		if level := logging.ParseLevel(cfg.LstackConfig.Logging.Level); level != appLogLevel {
			logging.InitForCLI(level, os.Stderr)
		}
	}

	services, err := InitializeServices(cfg)
	if err != nil {
		logging.Error("Bootstrap", err, "Failed to initialize services")
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	return &Application{
		config:   cfg,
		services: services,
		out:      os.Stdout,
	}, nil
}

// LoadConfig loads the configuration from path, or from the layered
// locations when path is empty.
func LoadConfig(path string) (config.LstackConfig, error) {
	if path != "" {
		cfg, err := config.LoadConfigFromPath(path)
		if err != nil {
			return config.LstackConfig{}, fmt.Errorf("failed to load lstack configuration from path %s: %w", path, err)
		}
		logging.Debug("Bootstrap", "Loaded configuration from custom path: %s", path)
		return cfg, nil
	}
	cfg, err := config.LoadConfig()
	if err != nil {
		return config.LstackConfig{}, fmt.Errorf("failed to load lstack configuration: %w", err)
	}
	logging.Debug("Bootstrap", "Loaded configuration using layered approach")
	return cfg, nil
}

// Run executes the application in the appropriate mode until ctx is done,
// the user quits or the emulator exits. The emulator is always stopped
// before Run returns.
func (a *Application) Run(ctx context.Context) error {
	if a.services.MetricsServer != nil {
		if err := a.services.MetricsServer.Start(); err != nil {
			a.services.Fixture.Close()
			return err
		}
		defer a.services.MetricsServer.Shutdown(context.Background())
	}

	if a.config.NoTUI {
		return a.runCLIMode(ctx)
	}
	return a.runTUIMode(ctx)
}

// runCLIMode runs the application in non-interactive CLI mode
func (a *Application) runCLIMode(ctx context.Context) error {
	return runCLIMode(ctx, a.config, a.services, a.out)
}

// runTUIMode runs the application in interactive TUI mode
func (a *Application) runTUIMode(ctx context.Context) error {
	return runTUIMode(ctx, a.config, a.services)
}
