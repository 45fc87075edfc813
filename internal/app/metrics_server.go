package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"lstack/pkg/fixture"
	"lstack/pkg/logging"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsServer exposes the fixture's metrics and endpoints over HTTP.
type MetricsServer struct {
	addr    string
	fixture *fixture.Fixture
	server  *http.Server

	mu       sync.Mutex
	listener net.Listener
}

// NewMetricsServer creates a server for addr. Nothing listens until Start.
func NewMetricsServer(addr string, f *fixture.Fixture) *MetricsServer {
	s := &MetricsServer{addr: addr, fixture: f}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(f.Metrics(), promhttp.HandlerOpts{}))
	mux.HandleFunc("/endpoints", s.handleEndpoints)
	mux.HandleFunc("/healthz", s.handleHealth)

	s.server = &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

// Start listens on the configured address and serves in the background.
func (s *MetricsServer) Start() error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.addr, err)
	}
	s.mu.Lock()
	s.listener = ln
	s.mu.Unlock()

	logging.Info("Metrics", "Serving metrics on http://%s/metrics", ln.Addr())
	go func() {
		if err := s.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Error("Metrics", err, "Metrics server stopped")
		}
	}()
	return nil
}

// Addr returns the address the server listens on, or "" before Start.
func (s *MetricsServer) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Shutdown stops the server.
func (s *MetricsServer) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}

func (s *MetricsServer) handleEndpoints(w http.ResponseWriter, r *http.Request) {
	urls, err := s.fixture.Endpoints()
	if err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"runID":     s.fixture.RunID(),
		"endpoints": urls,
	})
}

func (s *MetricsServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	state := s.fixture.State()
	status := http.StatusOK
	if state != "Ready" {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, map[string]string{"state": state})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Debug("Metrics", "Failed to write response: %v", err)
	}
}
