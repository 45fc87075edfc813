package app

import (
	"fmt"

	"lstack/pkg/fixture"

	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Services holds everything `lstack up` drives
type Services struct {
	Fixture       *fixture.Fixture
	MetricsServer *MetricsServer
}

// InitializeServices builds the fixture and, when an address is configured,
// the metrics server in front of it.
func InitializeServices(cfg *Config) (*Services, error) {
	if cfg.LstackConfig == nil {
		return nil, fmt.Errorf("configuration not loaded")
	}

	f, err := fixture.New(fixture.WithConfig(*cfg.LstackConfig))
	if err != nil {
		return nil, err
	}

	s := &Services{Fixture: f}
	if cfg.MetricsAddr != "" {
		reg := f.Metrics()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		s.MetricsServer = NewMetricsServer(cfg.MetricsAddr, f)
	}
	return s, nil
}
