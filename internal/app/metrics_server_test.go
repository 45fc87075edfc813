package app

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func get(t *testing.T, url string) (int, string) {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func TestMetricsServer(t *testing.T) {
	cfg := NewConfig(true, false, "", "127.0.0.1:0")
	cfg.LstackConfig = testLstackConfig(t, "echo Ready.; exec sleep 30")
	s, err := InitializeServices(cfg)
	require.NoError(t, err)
	defer s.Fixture.Close()

	srv := s.MetricsServer
	assert.Empty(t, srv.Addr())
	require.NoError(t, srv.Start())
	defer srv.Shutdown(context.Background())
	base := "http://" + srv.Addr()

	status, _ := get(t, base+"/endpoints")
	assert.Equal(t, http.StatusServiceUnavailable, status)
	status, body := get(t, base+"/healthz")
	assert.Equal(t, http.StatusServiceUnavailable, status)
	assert.Contains(t, body, "NotStarted")

	require.NoError(t, s.Fixture.Start(context.Background()))

	status, body = get(t, base+"/endpoints")
	require.Equal(t, http.StatusOK, status)
	var payload struct {
		RunID     string            `json:"runID"`
		Endpoints map[string]string `json:"endpoints"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &payload))
	assert.Equal(t, s.Fixture.RunID(), payload.RunID)
	assert.Equal(t, "http://localhost:4576/", payload.Endpoints["sqs"])

	status, _ = get(t, base+"/healthz")
	assert.Equal(t, http.StatusOK, status)

	status, body = get(t, base+"/metrics")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, `lstack_emulator_state{state="Ready"} 1`)
	assert.Contains(t, body, `lstack_emulator_launches_total{result="ready"} 1`)
	assert.Contains(t, body, "go_goroutines")
}
