package logging

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]LogLevel{
		"debug":   LevelDebug,
		"INFO":    LevelInfo,
		" warn ":  LevelWarn,
		"warning": LevelWarn,
		"error":   LevelError,
		"bogus":   LevelInfo,
		"":        LevelInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in), "input %q", in)
	}
}

func TestCLIModeWritesSubsystemAndError(t *testing.T) {
	var buf bytes.Buffer
	InitForCLI(LevelDebug, &buf)

	Error("Lifecycle", errors.New("boom"), "start failed after %d attempts", 1)

	out := buf.String()
	assert.Contains(t, out, "start failed after 1 attempts")
	assert.Contains(t, out, "subsystem=Lifecycle")
	assert.Contains(t, out, "error=boom")
}

func TestCLIModeFiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	InitForCLI(LevelWarn, &buf)

	Info("Installer", "should not appear")
	Warn("Installer", "should appear")

	assert.NotContains(t, buf.String(), "should not appear")
	assert.Contains(t, buf.String(), "should appear")
}

func TestTUIModeSendsEntries(t *testing.T) {
	ch := InitForTUI(LevelInfo)
	require.NotNil(t, ch)
	defer InitForCLI(LevelInfo, &bytes.Buffer{})

	Debug("Emulator", "filtered")
	Info("Emulator", "hello %s", "world")

	entry := <-ch
	assert.Equal(t, LevelInfo, entry.Level)
	assert.Equal(t, "Emulator", entry.Subsystem)
	assert.Equal(t, "hello world", entry.Message)

	CloseTUIChannel()
	_, ok := <-ch
	assert.False(t, ok, "channel should be closed")
}
