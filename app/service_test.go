package app

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/kilianp07/v2g-advisor/config"
	"github.com/kilianp07/v2g-advisor/core/analysis"
	"github.com/kilianp07/v2g-advisor/core/model"
	"github.com/kilianp07/v2g-advisor/infra/mqtt"
)

func TestNewServiceDefaults(t *testing.T) {
	svc, err := New(config.Default())
	require.NoError(t, err)
	defer func() { require.NoError(t, svc.Close()) }()

	require.NotNil(t, svc.Engine)

	// The wired engine is usable end to end.
	res, err := svc.Engine.Analyze(context.Background(), analysis.Request{
		Scenario: model.Scenario{
			Name:           "smoke",
			CapacityKW:     500,
			Location:       model.RegionJeju,
			DRUtilization:  0.5,
			SMPUtilization: 0.5,
		},
	})
	require.NoError(t, err)
	require.NotEmpty(t, res.AnalysisID)
}

func TestServiceForwardsResultsToPublisher(t *testing.T) {
	cfg := config.Default()
	cfg.API.Addr = "127.0.0.1:0"
	svc, err := New(cfg)
	require.NoError(t, err)
	defer func() { require.NoError(t, svc.Close()) }()

	pub := mqtt.NewMockPublisher()
	svc.publisher = pub

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- svc.Run(ctx) }()

	// Give the forwarding subscription a moment to attach.
	time.Sleep(50 * time.Millisecond)

	_, err = svc.Engine.Analyze(ctx, analysis.Request{
		Scenario: model.Scenario{
			Name:           "forwarded",
			CapacityKW:     500,
			Location:       model.RegionCapital,
			DRUtilization:  0.5,
			SMPUtilization: 0.5,
		},
	})
	require.NoError(t, err)

	require.Eventually(t, func() bool { return pub.Count() == 1 },
		2*time.Second, 10*time.Millisecond)

	cancel()
	require.NoError(t, <-done)
}

func TestNewServiceWithPromSink(t *testing.T) {
	cfg := config.Default()
	cfg.Metrics.PrometheusEnabled = true
	svc, err := New(cfg)
	require.NoError(t, err)
	require.NoError(t, svc.Close())
}
