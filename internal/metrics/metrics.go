// Package metrics exposes Prometheus instrumentation for the emulator fixture.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Install results
const (
	InstallSkipped   = "skipped"
	InstallSucceeded = "installed"
	InstallFailed    = "failed"
)

// Kill reasons
const (
	KillTeardown       = "teardown"
	KillStartupFailure = "startup_failure"
)

// Launch results
const (
	LaunchReady   = "ready"
	LaunchFailed  = "failed"
	LaunchTimeout = "timeout"
)

// Recorder records installer and lifecycle events. A nil *Recorder is valid
// and records nothing.
type Recorder struct {
	installChecks   *prometheus.CounterVec
	launches        *prometheus.CounterVec
	startupDuration prometheus.Histogram
	kills           *prometheus.CounterVec
	state           *prometheus.GaugeVec
}

// NewRecorder creates a Recorder and registers its collectors with reg.
func NewRecorder(reg prometheus.Registerer, namespace string) (*Recorder, error) {
	if namespace == "" {
		namespace = "lstack"
	}

	r := &Recorder{
		installChecks: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "install_checks_total",
				Help:      "Install checks by outcome (skipped when already installed)",
			},
			[]string{"result"},
		),
		launches: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "emulator_launches_total",
				Help:      "Emulator launch attempts by outcome",
			},
			[]string{"result"},
		),
		startupDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "emulator_startup_duration_seconds",
				Help:      "Time from launch until the readiness marker was observed",
				Buckets:   []float64{1, 5, 15, 30, 60, 120, 300, 600},
			},
		),
		kills: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "emulator_kills_total",
				Help:      "Emulator processes stopped, by reason",
			},
			[]string{"reason"},
		),
		state: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "emulator_state",
				Help:      "1 for the lifecycle state the emulator is currently in",
			},
			[]string{"state"},
		),
	}

	for _, c := range []prometheus.Collector{r.installChecks, r.launches, r.startupDuration, r.kills, r.state} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// InstallCheck counts one install check with the given result.
func (r *Recorder) InstallCheck(result string) {
	if r == nil {
		return
	}
	r.installChecks.WithLabelValues(result).Inc()
}

// Launch counts one launch attempt and, when ready, observes its startup time.
func (r *Recorder) Launch(result string, startup time.Duration) {
	if r == nil {
		return
	}
	r.launches.WithLabelValues(result).Inc()
	if result == LaunchReady {
		r.startupDuration.Observe(startup.Seconds())
	}
}

// Kill counts one emulator process stopped for reason: KillTeardown when
// the fixture was torn down, KillStartupFailure when a start was abandoned.
func (r *Recorder) Kill(reason string) {
	if r == nil {
		return
	}
	r.kills.WithLabelValues(reason).Inc()
}

// SetState marks current as the active state among all.
func (r *Recorder) SetState(current string, all []string) {
	if r == nil {
		return
	}
	for _, s := range all {
		v := 0.0
		if s == current {
			v = 1
		}
		r.state.WithLabelValues(s).Set(v)
	}
}
