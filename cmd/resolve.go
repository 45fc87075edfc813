package cmd

import (
	"errors"
	"fmt"
	"io/fs"

	"lstack/internal/app"
	"lstack/internal/config"
	"lstack/internal/endpoint"
	"lstack/internal/snapshot"
)

// staticResolver resolves endpoints from the installed emulator's
// configuration artifact, without starting anything. The ports match a
// running emulator started with the same configuration.
func staticResolver() (*endpoint.Resolver, config.LstackConfig, error) {
	cfg, err := app.LoadConfig(configPath)
	if err != nil {
		return nil, cfg, err
	}
	services, err := snapshot.ParseServices(cfg.Emulator.Services)
	if err != nil {
		return nil, cfg, fmt.Errorf("invalid emulator services: %w", err)
	}

	snap, err := snapshot.Load(cfg.ArtifactPath())
	if errors.Is(err, fs.ErrNotExist) {
		return nil, cfg, fmt.Errorf("emulator is not installed in %s; run `lstack install` first", cfg.Install.Dir)
	}
	if err != nil {
		return nil, cfg, err
	}

	resolver := endpoint.NewResolver(endpoint.Static(snap.WithOverrides(services.Ports)), endpoint.Options{
		Scheme:       cfg.Endpoints.Scheme,
		Host:         cfg.Endpoints.Host,
		VirtualHosts: cfg.Endpoints.VirtualHosts,
	})
	return resolver, cfg, nil
}
