package config

import (
	"os"
	"path/filepath"
	"time"
)

const (
	DefaultRepoURL        = "https://github.com/atlassian/localstack"
	DefaultMarkerFile     = "localstack/constants.py"
	DefaultBuildCommand   = "make install"
	DefaultReadyMarker    = "Ready."
	DefaultConfigArtifact = "localstack/constants.py"
	DefaultExtraPath      = "/usr/local/bin/"
	DefaultShell          = "bash"
	DefaultScheme         = "http"
	DefaultHost           = "localhost"

	// S3 clients address buckets as <bucket>.<host>; this wildcard domain resolves to 127.0.0.1.
	DefaultS3VirtualHost = "test.localhost.atlassian.io"

	DefaultStartupTimeout = 5 * time.Minute
	DefaultShutdownGrace  = 5 * time.Second
)

// For mocking in tests
var osTempDir = os.TempDir

// DefaultInstallDir is the install directory used when none is configured.
func DefaultInstallDir() string {
	return filepath.Join(osTempDir(), "localstack_install_dir")
}

// GetDefaultConfig returns the built-in configuration.
func GetDefaultConfig() LstackConfig {
	return LstackConfig{
		Install: InstallConfig{
			Dir:          DefaultInstallDir(),
			RepoURL:      DefaultRepoURL,
			MarkerFile:   DefaultMarkerFile,
			BuildCommand: DefaultBuildCommand,
		},
		Emulator: EmulatorConfig{
			ReadyMarker:    DefaultReadyMarker,
			ConfigArtifact: DefaultConfigArtifact,
			StartupTimeout: DefaultStartupTimeout,
			ShutdownGrace:  DefaultShutdownGrace,
		},
		Exec: ExecConfig{
			ExtraPath: DefaultExtraPath,
			Shell:     DefaultShell,
		},
		Endpoints: EndpointsConfig{
			Scheme: DefaultScheme,
			Host:   DefaultHost,
			VirtualHosts: map[string]string{
				"s3": DefaultS3VirtualHost,
			},
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// EmulatorCommand returns the configured launch command, or make -C <dir> infra.
func (c LstackConfig) EmulatorCommand() []string {
	if len(c.Emulator.Command) > 0 {
		return c.Emulator.Command
	}
	return []string{"make", "-C", c.Install.Dir, "infra"}
}

// MarkerPath is the absolute path of the install marker file.
func (c LstackConfig) MarkerPath() string {
	return filepath.Join(c.Install.Dir, c.Install.MarkerFile)
}

// ArtifactPath is the absolute path of the emulator's port configuration file.
func (c LstackConfig) ArtifactPath() string {
	return filepath.Join(c.Install.Dir, c.Emulator.ConfigArtifact)
}
