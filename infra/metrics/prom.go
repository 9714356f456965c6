package metrics

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	coremetrics "github.com/kilianp07/v2g-advisor/core/metrics"
)

// PromSink records analysis events in Prometheus metrics.
type PromSink struct {
	analyses *prometheus.CounterVec
	duration prometheus.Histogram
	trials   prometheus.Counter
	roiGap   prometheus.Histogram
}

// NewPromSink registers analysis metrics on the default Prometheus registerer.
// The Prometheus server should be started separately using cfg.PrometheusPort.
func NewPromSink(cfg coremetrics.Config) (coremetrics.MetricsSink, error) {
	return NewPromSinkWithRegistry(cfg, prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(cfg coremetrics.Config, reg prometheus.Registerer) (coremetrics.MetricsSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	analyses := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "analyses_total",
		Help: "Total number of completed business-case analyses",
	}, []string{"location", "recommendation", "confidence"})
	duration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "analysis_duration_seconds",
		Help:    "Time spent running a full analysis",
		Buckets: prometheus.DefBuckets,
	})
	trials := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "risk_simulation_trials_total",
		Help: "Total number of Monte Carlo trials executed",
	})
	roiGap := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "analysis_roi_gap_percent",
		Help:    "Absolute ROI gap between the two business lines",
		Buckets: []float64{1, 2, 5, 10, 20, 50, 100},
	})

	if err := reg.Register(analyses); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			analyses = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(duration); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			duration = are.ExistingCollector.(prometheus.Histogram)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(trials); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			trials = are.ExistingCollector.(prometheus.Counter)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(roiGap); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			roiGap = are.ExistingCollector.(prometheus.Histogram)
		} else {
			return nil, err
		}
	}

	return &PromSink{analyses: analyses, duration: duration, trials: trials, roiGap: roiGap}, nil
}

// RecordAnalysis increments the analysis counter and observes durations.
func (s *PromSink) RecordAnalysis(ev coremetrics.AnalysisEvent) error {
	s.analyses.WithLabelValues(string(ev.Location), string(ev.Recommendation), ev.Confidence).Inc()
	s.duration.Observe(ev.Duration.Seconds())
	gap := ev.DRROIPercent - ev.SMPROIPercent
	if gap < 0 {
		gap = -gap
	}
	s.roiGap.Observe(gap)
	return nil
}

// RecordSimulation counts executed Monte Carlo trials.
func (s *PromSink) RecordSimulation(ev coremetrics.SimulationEvent) error {
	s.trials.Add(float64(ev.Trials))
	return nil
}

// StartPromServer starts an HTTP server exposing Prometheus metrics on the given address.
// The server runs until the provided context is canceled.
// A dedicated ServeMux is used to avoid interfering with other handlers.
func StartPromServer(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: addr, Handler: mux}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
