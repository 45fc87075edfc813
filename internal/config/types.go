package config

import (
	"time"
)

// LstackConfig is the top-level configuration structure for lstack.
type LstackConfig struct {
	Install   InstallConfig   `yaml:"install"`
	Emulator  EmulatorConfig  `yaml:"emulator"`
	Exec      ExecConfig      `yaml:"exec"`
	Endpoints EndpointsConfig `yaml:"endpoints"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// InstallConfig describes where the emulator is cached on disk and how it gets there.
type InstallConfig struct {
	Dir          string `yaml:"dir,omitempty"`          // Install directory, cached across runs
	RepoURL      string `yaml:"repoURL,omitempty"`      // Source repository cloned into Dir
	MarkerFile   string `yaml:"markerFile,omitempty"`   // Relative to Dir; its presence means "installed"
	BuildCommand string `yaml:"buildCommand,omitempty"` // Shell one-liner run inside Dir after the clone
}

// EmulatorConfig describes how the emulator is launched and how readiness is detected.
type EmulatorConfig struct {
	Command        []string      `yaml:"command,omitempty"`        // Defaults to make -C <install.dir> infra
	ReadyMarker    string        `yaml:"readyMarker,omitempty"`    // Exact stdout line signalling readiness
	ConfigArtifact string        `yaml:"configArtifact,omitempty"` // Relative to install.dir; scanned for ports
	StartupTimeout time.Duration `yaml:"startupTimeout,omitempty"` // Upper bound on the readiness wait
	ShutdownGrace  time.Duration `yaml:"shutdownGrace,omitempty"`  // SIGTERM to SIGKILL delay on teardown
	Services       []string      `yaml:"services,omitempty"`       // e.g. ["s3", "sqs:4576"]; passed as SERVICES
	Hostname       string        `yaml:"hostname,omitempty"`       // Passed as HOSTNAME when set
}

// ExecConfig controls how external commands are run.
type ExecConfig struct {
	ExtraPath string `yaml:"extraPath,omitempty"` // Prepended to PATH for every command
	Shell     string `yaml:"shell,omitempty"`     // Interpreter for one-liners
}

// EndpointsConfig shapes the URLs handed to test code.
type EndpointsConfig struct {
	Scheme       string            `yaml:"scheme,omitempty"`
	Host         string            `yaml:"host,omitempty"`
	VirtualHosts map[string]string `yaml:"virtualHosts,omitempty"` // service -> host replacing Host
}

// LoggingConfig holds log settings.
type LoggingConfig struct {
	Level string `yaml:"level,omitempty"`
}
