package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// For mocking in tests
var osUserHomeDir = os.UserHomeDir
var osGetwd = os.Getwd

const (
	userConfigDir    = ".config/lstack"
	projectConfigDir = ".lstack"
	configFileName   = "config.yaml"
)

// LoadConfig loads the lstack configuration by layering default, user, and project settings.
func LoadConfig() (LstackConfig, error) {
	config := GetDefaultConfig()

	userConfigPath, err := getUserConfigPath()
	if err != nil {
		// User config is optional
		fmt.Fprintf(os.Stderr, "Warning: Could not determine user config path: %v\n", err)
	} else {
		if _, err := os.Stat(userConfigPath); !os.IsNotExist(err) {
			userConfig, err := loadConfigFromFile(userConfigPath)
			if err != nil {
				return LstackConfig{}, fmt.Errorf("error loading user config from %s: %w", userConfigPath, err)
			}
			config = mergeConfigs(config, userConfig)
		}
	}

	projectConfigPath, err := getProjectConfigPath()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Could not determine project config path: %v\n", err)
	} else {
		if _, err := os.Stat(projectConfigPath); !os.IsNotExist(err) {
			projectConfig, err := loadConfigFromFile(projectConfigPath)
			if err != nil {
				return LstackConfig{}, fmt.Errorf("error loading project config from %s: %w", projectConfigPath, err)
			}
			config = mergeConfigs(config, projectConfig)
		}
	}

	if err := config.Validate(); err != nil {
		return LstackConfig{}, err
	}
	return config, nil
}

// LoadConfigFromPath loads a single configuration file on top of the defaults,
// skipping the user and project layers.
func LoadConfigFromPath(path string) (LstackConfig, error) {
	fileConfig, err := loadConfigFromFile(path)
	if err != nil {
		return LstackConfig{}, fmt.Errorf("error loading config from %s: %w", path, err)
	}
	config := mergeConfigs(GetDefaultConfig(), fileConfig)
	if err := config.Validate(); err != nil {
		return LstackConfig{}, err
	}
	return config, nil
}

var getUserConfigPath = func() (string, error) {
	homeDir, err := osUserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, userConfigDir, configFileName), nil
}

var getProjectConfigPath = func() (string, error) {
	wd, err := osGetwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(wd, projectConfigDir, configFileName), nil
}

// loadConfigFromFile loads an LstackConfig from a YAML file.
func loadConfigFromFile(filePath string) (LstackConfig, error) {
	var config LstackConfig
	data, err := os.ReadFile(filePath)
	if err != nil {
		return LstackConfig{}, err
	}
	err = yaml.Unmarshal(data, &config)
	if err != nil {
		return LstackConfig{}, err
	}
	return config, nil
}

// mergeConfigs merges 'overlay' config into 'base' config.
func mergeConfigs(base, overlay LstackConfig) LstackConfig {
	merged := base

	// Install
	if overlay.Install.Dir != "" {
		merged.Install.Dir = overlay.Install.Dir
	}
	if overlay.Install.RepoURL != "" {
		merged.Install.RepoURL = overlay.Install.RepoURL
	}
	if overlay.Install.MarkerFile != "" {
		merged.Install.MarkerFile = overlay.Install.MarkerFile
	}
	if overlay.Install.BuildCommand != "" {
		merged.Install.BuildCommand = overlay.Install.BuildCommand
	}

	// Emulator
	if len(overlay.Emulator.Command) > 0 {
		merged.Emulator.Command = overlay.Emulator.Command
	}
	if overlay.Emulator.ReadyMarker != "" {
		merged.Emulator.ReadyMarker = overlay.Emulator.ReadyMarker
	}
	if overlay.Emulator.ConfigArtifact != "" {
		merged.Emulator.ConfigArtifact = overlay.Emulator.ConfigArtifact
	}
	if overlay.Emulator.StartupTimeout != 0 {
		merged.Emulator.StartupTimeout = overlay.Emulator.StartupTimeout
	}
	if overlay.Emulator.ShutdownGrace != 0 {
		merged.Emulator.ShutdownGrace = overlay.Emulator.ShutdownGrace
	}
	if len(overlay.Emulator.Services) > 0 {
		merged.Emulator.Services = overlay.Emulator.Services
	}
	if overlay.Emulator.Hostname != "" {
		merged.Emulator.Hostname = overlay.Emulator.Hostname
	}

	// Exec
	if overlay.Exec.ExtraPath != "" {
		merged.Exec.ExtraPath = overlay.Exec.ExtraPath
	}
	if overlay.Exec.Shell != "" {
		merged.Exec.Shell = overlay.Exec.Shell
	}

	// Endpoints: virtual hosts merge per service, overlay wins
	if overlay.Endpoints.Scheme != "" {
		merged.Endpoints.Scheme = overlay.Endpoints.Scheme
	}
	if overlay.Endpoints.Host != "" {
		merged.Endpoints.Host = overlay.Endpoints.Host
	}
	if len(overlay.Endpoints.VirtualHosts) > 0 {
		vhosts := make(map[string]string, len(base.Endpoints.VirtualHosts)+len(overlay.Endpoints.VirtualHosts))
		for svc, host := range base.Endpoints.VirtualHosts {
			vhosts[svc] = host
		}
		for svc, host := range overlay.Endpoints.VirtualHosts {
			if host == "" {
				delete(vhosts, svc) // empty value disables the rewrite
				continue
			}
			vhosts[svc] = host
		}
		merged.Endpoints.VirtualHosts = vhosts
	}

	if overlay.Logging.Level != "" {
		merged.Logging.Level = overlay.Logging.Level
	}

	return merged
}

// Validate reports configuration that cannot produce a working fixture.
func (c LstackConfig) Validate() error {
	var errs []error
	if c.Install.Dir == "" {
		errs = append(errs, errors.New("install.dir must not be empty"))
	}
	if c.Install.MarkerFile == "" {
		errs = append(errs, errors.New("install.markerFile must not be empty"))
	}
	if c.Emulator.ReadyMarker == "" {
		errs = append(errs, errors.New("emulator.readyMarker must not be empty"))
	}
	if c.Emulator.ConfigArtifact == "" {
		errs = append(errs, errors.New("emulator.configArtifact must not be empty"))
	}
	if c.Emulator.StartupTimeout <= 0 {
		errs = append(errs, fmt.Errorf("emulator.startupTimeout must be positive, got %s", c.Emulator.StartupTimeout))
	}
	if c.Emulator.ShutdownGrace < 0 {
		errs = append(errs, fmt.Errorf("emulator.shutdownGrace must not be negative, got %s", c.Emulator.ShutdownGrace))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid configuration: %w", errors.Join(errs...))
	}
	return nil
}

// GetUserConfigDir returns the user configuration directory path
func GetUserConfigDir() (string, error) {
	homeDir, err := osUserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, userConfigDir), nil
}
