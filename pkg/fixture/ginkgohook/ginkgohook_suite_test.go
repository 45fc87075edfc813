package ginkgohook_test

import (
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"testing"
	"time"

	"lstack/pkg/fixture"
	"lstack/pkg/fixture/ginkgohook"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var (
	installDir string
	emulator   = newEmulator()
)

var _ = ginkgohook.Register(emulator)

func newEmulator() *fixture.Fixture {
	dir, err := os.MkdirTemp("", "ginkgohook")
	if err != nil {
		panic(err)
	}
	installDir = dir
	if err := os.MkdirAll(filepath.Join(dir, "localstack"), 0755); err != nil {
		panic(err)
	}
	artifact := "DEFAULT_PORT_S3 = 4572\nDEFAULT_PORT_SQS = 4576\n"
	if err := os.WriteFile(filepath.Join(dir, "localstack", "constants.py"), []byte(artifact), 0644); err != nil {
		panic(err)
	}

	cfg := fixture.DefaultConfig()
	cfg.Install.Dir = dir
	// Ignores SIGTERM so only the forced kill stops it.
	cfg.Emulator.Command = []string{"trap '' TERM; echo $$ > " + pidFile() + "; echo Ready.; sleep 60 & wait"}
	cfg.Emulator.StartupTimeout = 10 * time.Second
	cfg.Emulator.ShutdownGrace = time.Second

	f, err := fixture.New(
		fixture.WithConfig(cfg),
		fixture.WithInstaller(noopInstaller{}),
		fixture.WithLogOutput(io.Discard),
	)
	if err != nil {
		panic(err)
	}
	return f
}

func pidFile() string {
	return filepath.Join(installDir, "emulator.pid")
}

func TestGinkgoHook(t *testing.T) {
	defer os.RemoveAll(installDir)
	RegisterFailHandler(Fail)
	RunSpecs(t, "Ginkgo Hook Suite")
	if state := emulator.State(); state != "Stopped" {
		t.Errorf("emulator state after suite = %s, want Stopped", state)
	}

	data, err := os.ReadFile(pidFile())
	if err != nil {
		t.Fatalf("emulator pid not recorded: %v", err)
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		t.Fatalf("invalid emulator pid %q", data)
	}
	if err := syscall.Kill(pid, 0); err == nil {
		_ = syscall.Kill(-pid, syscall.SIGKILL)
		t.Errorf("emulator %d still running after the suite", pid)
	}
}

var _ = Describe("Register", func() {
	It("starts the emulator before the specs run", func() {
		Expect(emulator.State()).To(Equal("Ready"))
	})

	It("exports endpoint variables", func() {
		url, err := emulator.Endpoint("sqs")
		Expect(err).NotTo(HaveOccurred())
		Expect(url).To(Equal("http://localhost:4576/"))
		Expect(os.Getenv("TEST_SQS_URL")).To(Equal(url))
		Expect(os.Getenv("TEST_S3_URL")).To(Equal("http://test.localhost.atlassian.io:4572/"))
	})
})
