package fixture

import (
	"io"

	"lstack/internal/config"
	"lstack/internal/lifecycle"

	"github.com/prometheus/client_golang/prometheus"
)

// Config is the fixture's configuration. Start from DefaultConfig.
type Config = config.LstackConfig

// DefaultConfig returns the built-in configuration.
func DefaultConfig() Config {
	return config.GetDefaultConfig()
}

// Installer and Launcher let tests replace the install and launch steps.
type (
	Installer = lifecycle.Installer
	Launcher  = lifecycle.Launcher
	Process   = lifecycle.Process
)

// Option configures New.
type Option func(*options)

type options struct {
	config     *Config
	configPath string
	services   []string
	region     string
	registry   *prometheus.Registry
	installer  Installer
	launcher   Launcher
	logOutput  io.Writer
}

// WithConfig uses cfg instead of the layered configuration files.
func WithConfig(cfg Config) Option {
	return func(o *options) {
		o.config = &cfg
	}
}

// WithConfigFile loads the configuration from a single file.
func WithConfigFile(path string) Option {
	return func(o *options) {
		o.configPath = path
	}
}

// WithServices restricts the emulator to the given services, e.g. "s3" or
// "sqs:4576".
func WithServices(services ...string) Option {
	return func(o *options) {
		o.services = append(o.services, services...)
	}
}

// WithRegion sets the AWS region used by AWSConfig. Defaults to us-east-1.
func WithRegion(region string) Option {
	return func(o *options) {
		o.region = region
	}
}

// WithRegistry registers the fixture's metrics with reg instead of a private registry.
func WithRegistry(reg *prometheus.Registry) Option {
	return func(o *options) {
		o.registry = reg
	}
}

// WithInstaller replaces the git and build based installer.
func WithInstaller(i Installer) Option {
	return func(o *options) {
		o.installer = i
	}
}

// WithLauncher replaces the process launcher.
func WithLauncher(l Launcher) Option {
	return func(o *options) {
		o.launcher = l
	}
}

// WithLogOutput sends fixture logs to w. Without it the fixture leaves the
// logging setup alone.
func WithLogOutput(w io.Writer) Option {
	return func(o *options) {
		o.logOutput = w
	}
}
