package ginkgohook_test

import "context"

type noopInstaller struct{}

func (noopInstaller) EnsureInstalled(context.Context) error { return nil }
