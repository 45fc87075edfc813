package app

import (
	"bytes"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"lstack/internal/config"

	"github.com/stretchr/testify/require"
)

// syncBuffer is a bytes.Buffer safe for one writer and a polling reader.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// testLstackConfig returns a configuration whose install dir already holds
// the marker file, so no install runs, and whose emulator is a shell one-liner.
func testLstackConfig(t *testing.T, command string) *config.LstackConfig {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "localstack"), 0755))
	artifact := "DEFAULT_PORT_S3 = 4572\nDEFAULT_PORT_SQS = 4576\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "localstack", "constants.py"), []byte(artifact), 0644))

	cfg := config.GetDefaultConfig()
	cfg.Install.Dir = dir
	cfg.Emulator.Command = []string{command}
	cfg.Emulator.StartupTimeout = 10 * time.Second
	cfg.Emulator.ShutdownGrace = time.Second
	return &cfg
}
