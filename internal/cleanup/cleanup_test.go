package cleanup

import (
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunIsLIFOAndOnce(t *testing.T) {
	r := NewRegistry()
	var order []string
	r.Register("first", func() { order = append(order, "first") })
	r.Register("second", func() { order = append(order, "second") })

	r.Run()
	r.Run()

	assert.Equal(t, []string{"second", "first"}, order)
	assert.Zero(t, r.Len())
}

func TestReleaseRemovesHook(t *testing.T) {
	r := NewRegistry()
	called := false
	release := r.Register("released", func() { called = true })
	require.Equal(t, 1, r.Len())

	release()
	release()
	r.Run()

	assert.False(t, called)
}

func TestPanickingHookDoesNotStopOthers(t *testing.T) {
	r := NewRegistry()
	called := false
	r.Register("survivor", func() { called = true })
	r.Register("panics", func() { panic("boom") })

	assert.NotPanics(t, r.Run)
	assert.True(t, called)
}

func TestHandleSignalsRunsHooksAndExits(t *testing.T) {
	exited := make(chan int, 1)
	original := osExit
	osExit = func(code int) { exited <- code }
	defer func() { osExit = original }()

	r := NewRegistry()
	ran := make(chan struct{})
	r.Register("kill emulator", func() { close(ran) })

	stop := r.HandleSignals()
	defer stop()

	require.NoError(t, syscall.Kill(syscall.Getpid(), syscall.SIGTERM))

	select {
	case <-ran:
	case <-time.After(5 * time.Second):
		t.Fatal("cleanup hook did not run after SIGTERM")
	}
	select {
	case code := <-exited:
		assert.Equal(t, 128+int(syscall.SIGTERM), code)
	case <-time.After(5 * time.Second):
		t.Fatal("exit was not requested after SIGTERM")
	}
}
