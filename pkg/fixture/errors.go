package fixture

import (
	"lstack/internal/endpoint"
	"lstack/internal/executor"
	"lstack/internal/installer"
	"lstack/internal/lifecycle"
)

var (
	ErrNotReady       = lifecycle.ErrNotReady
	ErrStopped        = lifecycle.ErrStopped
	ErrStartupFailed  = lifecycle.ErrStartupFailed
	ErrStartupTimeout = lifecycle.ErrStartupTimeout
	ErrUnknownService = endpoint.ErrUnknownService
)

type (
	StartupError         = lifecycle.StartupError
	InstallationError    = installer.InstallationError
	ExternalCommandError = executor.ExternalCommandError
)
