package app

import (
	"testing"
)

func TestNewConfig(t *testing.T) {
	tests := []struct {
		name        string
		noTUI       bool
		debug       bool
		configPath  string
		metricsAddr string
	}{
		{
			name:        "full configuration",
			noTUI:       true,
			debug:       true,
			configPath:  "/etc/lstack/config.yaml",
			metricsAddr: ":9090",
		},
		{
			name: "minimal configuration",
		},
		{
			name:  "debug only",
			debug: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfig(tt.noTUI, tt.debug, tt.configPath, tt.metricsAddr)

			if cfg.NoTUI != tt.noTUI {
				t.Errorf("NoTUI = %v, want %v", cfg.NoTUI, tt.noTUI)
			}
			if cfg.Debug != tt.debug {
				t.Errorf("Debug = %v, want %v", cfg.Debug, tt.debug)
			}
			if cfg.ConfigPath != tt.configPath {
				t.Errorf("ConfigPath = %q, want %q", cfg.ConfigPath, tt.configPath)
			}
			if cfg.MetricsAddr != tt.metricsAddr {
				t.Errorf("MetricsAddr = %q, want %q", cfg.MetricsAddr, tt.metricsAddr)
			}
			if cfg.LstackConfig != nil {
				t.Error("LstackConfig should be nil until loaded")
			}
		})
	}
}
