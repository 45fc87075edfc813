package app

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApplication(t *testing.T, command string) (*Application, *syncBuffer) {
	t.Helper()
	cfg := NewConfig(true, false, "", "")
	cfg.LstackConfig = testLstackConfig(t, command)

	app, err := NewApplication(cfg)
	require.NoError(t, err)
	out := &syncBuffer{}
	app.out = out
	return app, out
}

func TestModeSelection(t *testing.T) {
	tests := []struct {
		name      string
		noTUI     bool
		expectCLI bool
	}{
		{name: "CLI mode selected", noTUI: true, expectCLI: true},
		{name: "TUI mode selected", noTUI: false, expectCLI: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfig(tt.noTUI, false, "", "")
			assert.Equal(t, tt.expectCLI, cfg.NoTUI)
		})
	}
}

func TestRunCLIModeUntilCancelled(t *testing.T) {
	app, out := newTestApplication(t, "echo Ready.; exec sleep 30")

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()

	require.Eventually(t, func() bool {
		return app.services.Fixture.State() == "Ready"
	}, 10*time.Second, 20*time.Millisecond)
	require.Eventually(t, func() bool {
		return len(out.String()) > 0
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("Run did not return after cancellation")
	}

	printed := out.String()
	assert.Contains(t, printed, "SERVICE")
	assert.Contains(t, printed, "http://test.localhost.atlassian.io:4572/")
	assert.Contains(t, printed, "http://localhost:4576/")
	assert.Equal(t, "Stopped", app.services.Fixture.State())
}

func TestRunCLIModeStartFailure(t *testing.T) {
	app, _ := newTestApplication(t, "echo 'address already in use'; exit 1")

	err := app.Run(context.Background())
	assert.Error(t, err)
	assert.Equal(t, "Failed", app.services.Fixture.State())
}

func TestRunCLIModeEmulatorExits(t *testing.T) {
	app, _ := newTestApplication(t, "echo Ready.; sleep 0.3")

	err := app.Run(context.Background())
	assert.ErrorContains(t, err, "exited unexpectedly")
}
