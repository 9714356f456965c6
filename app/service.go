// Package app assembles the advisor service from its configuration.
package app

import (
	"context"
	"fmt"
	"net/http"

	apianalysis "github.com/kilianp07/v2g-advisor/api/analysis"
	"github.com/kilianp07/v2g-advisor/config"
	"github.com/kilianp07/v2g-advisor/core/analysis"
	"github.com/kilianp07/v2g-advisor/core/finance"
	coremetrics "github.com/kilianp07/v2g-advisor/core/metrics"
	"github.com/kilianp07/v2g-advisor/core/risk"
	"github.com/kilianp07/v2g-advisor/core/score"
	"github.com/kilianp07/v2g-advisor/infra/logger"
	"github.com/kilianp07/v2g-advisor/infra/metrics"
	"github.com/kilianp07/v2g-advisor/infra/mqtt"
	"github.com/kilianp07/v2g-advisor/internal/eventbus"
)

// Service wires the analysis engine, its sinks and the HTTP API.
type Service struct {
	Engine *analysis.Engine

	bus         *eventbus.Bus[analysis.Result]
	publisher   mqtt.Publisher
	addr        string
	promEnabled bool
	promPort    int
	log         logger.Logger
}

// New creates a Service from the configuration.
func New(cfg *config.Config) (*Service, error) {
	logg := logger.New("service")

	var sinks []coremetrics.MetricsSink
	if cfg.Metrics.PrometheusEnabled {
		sink, err := metrics.NewPromSink(cfg.Metrics)
		if err != nil {
			return nil, fmt.Errorf("prom sink: %w", err)
		}
		sinks = append(sinks, sink)
	}
	if cfg.Metrics.InfluxEnabled {
		sink := metrics.NewInfluxSinkWithFallback(
			cfg.Metrics.InfluxURL, cfg.Metrics.InfluxToken,
			cfg.Metrics.InfluxOrg, cfg.Metrics.InfluxBucket)
		sinks = append(sinks, sink)
	}
	var sink coremetrics.MetricsSink = coremetrics.NopSink{}
	if len(sinks) == 1 {
		sink = sinks[0]
	} else if len(sinks) > 1 {
		sink = metrics.NewMultiSink(sinks...)
	}

	bus := eventbus.New[analysis.Result]()
	engine := analysis.NewEngine(
		finance.NewAnalyzer(finance.DefaultTariffs(), cfg.Finance),
		score.NewScorer(),
		risk.NewSimulator(finance.NewAnalyzer(finance.DefaultTariffs(), cfg.Finance), cfg.Risk),
		analysis.WithSink(sink),
		analysis.WithLogger(logger.New("engine")),
		analysis.WithPublisher(bus.Publish),
	)

	svc := &Service{
		Engine:      engine,
		bus:         bus,
		addr:        cfg.API.Addr,
		promEnabled: cfg.Metrics.PrometheusEnabled,
		promPort:    cfg.Metrics.PrometheusPort,
		log:         logg,
	}

	if cfg.MQTT.Enabled {
		pub, err := mqtt.NewPahoPublisher(cfg.MQTT)
		if err != nil {
			return nil, fmt.Errorf("mqtt publisher: %w", err)
		}
		svc.publisher = pub
	}
	return svc, nil
}

// Run starts the service and blocks until the context is cancelled.
func (s *Service) Run(ctx context.Context) error {
	if s.publisher != nil {
		events, cancel := s.bus.Subscribe()
		defer cancel()
		go func() {
			for res := range events {
				if err := s.publisher.PublishResult(res); err != nil {
					s.log.Errorf("publish result: %v", err)
				}
			}
		}()
	}

	if s.promEnabled {
		go func() {
			addr := fmt.Sprintf(":%d", s.promPort)
			if err := metrics.StartPromServer(ctx, addr); err != nil {
				s.log.Errorf("prom server: %v", err)
			}
		}()
	}

	mux := http.NewServeMux()
	apianalysis.NewHandler(s.Engine, logger.New("api")).Register(mux)
	srv := &http.Server{Addr: s.addr, Handler: mux}
	go func() {
		<-ctx.Done()
		_ = srv.Shutdown(context.Background())
	}()
	s.log.Infof("listening on %s", s.addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Close releases resources held by the service.
func (s *Service) Close() error {
	s.bus.Close()
	if s.publisher != nil {
		s.publisher.Disconnect()
	}
	return nil
}
