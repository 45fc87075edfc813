package app

import (
	"lstack/internal/config"
)

// Config holds the settings of one `lstack up` run.
type Config struct {
	// UI mode
	NoTUI bool

	// Debug settings
	Debug bool

	// ConfigPath loads configuration from a single file instead of the layered lookup.
	ConfigPath string

	// MetricsAddr serves /metrics and /endpoints when set, e.g. ":9090".
	MetricsAddr string

	// Environment configuration
	LstackConfig *config.LstackConfig
}

// NewConfig creates a new application configuration
func NewConfig(noTUI, debug bool, configPath, metricsAddr string) *Config {
	return &Config{
		NoTUI:       noTUI,
		Debug:       debug,
		ConfigPath:  configPath,
		MetricsAddr: metricsAddr,
	}
}
