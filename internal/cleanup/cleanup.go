// Package cleanup collects release callbacks that must run before the owning
// process goes away, whether it exits normally or is interrupted.
package cleanup

import (
	"os"
	"os/signal"
	"sync"
	"syscall"

	"lstack/pkg/logging"
)

// For mocking in tests
var osExit = os.Exit

type hook struct {
	id   uint64
	name string
	fn   func()
}

// Registry holds outstanding cleanup hooks. The zero value is not usable; use NewRegistry.
type Registry struct {
	mu     sync.Mutex
	nextID uint64
	hooks  []hook
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register adds fn to the registry. The returned release func removes it
// without running it; release is safe to call more than once.
func (r *Registry) Register(name string, fn func()) (release func()) {
	r.mu.Lock()
	r.nextID++
	id := r.nextID
	r.hooks = append(r.hooks, hook{id: id, name: name, fn: fn})
	r.mu.Unlock()

	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		for i, h := range r.hooks {
			if h.id == id {
				r.hooks = append(r.hooks[:i], r.hooks[i+1:]...)
				return
			}
		}
	}
}

// Len returns the number of outstanding hooks.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.hooks)
}

// Run executes every outstanding hook once, most recently registered first.
// A panicking hook is logged and does not stop the others.
func (r *Registry) Run() {
	r.mu.Lock()
	hooks := r.hooks
	r.hooks = nil
	r.mu.Unlock()

	for i := len(hooks) - 1; i >= 0; i-- {
		runHook(hooks[i])
	}
}

func runHook(h hook) {
	defer func() {
		if rec := recover(); rec != nil {
			logging.Warn("Cleanup", "Cleanup hook %q panicked: %v", h.name, rec)
		}
	}()
	logging.Debug("Cleanup", "Running cleanup hook %q", h.name)
	h.fn()
}

// HandleSignals runs the registry when SIGINT or SIGTERM arrives and then
// exits with 128+signal. The returned stop func detaches the handler.
func (r *Registry) HandleSignals() (stop func()) {
	sigChan := make(chan os.Signal, 1)
	done := make(chan struct{})
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		select {
		case sig := <-sigChan:
			logging.Warn("Cleanup", "Received %s, releasing resources", sig)
			r.Run()
			code := 1
			if s, ok := sig.(syscall.Signal); ok {
				code = 128 + int(s)
			}
			osExit(code)
		case <-done:
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			signal.Stop(sigChan)
			close(done)
		})
	}
}
