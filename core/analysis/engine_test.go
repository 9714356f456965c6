package analysis

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kilianp07/v2g-advisor/core/finance"
	"github.com/kilianp07/v2g-advisor/core/metrics"
	"github.com/kilianp07/v2g-advisor/core/model"
	"github.com/kilianp07/v2g-advisor/core/risk"
	"github.com/kilianp07/v2g-advisor/core/score"
)

type captureSink struct {
	mu          sync.Mutex
	analyses    []metrics.AnalysisEvent
	simulations []metrics.SimulationEvent
}

func (s *captureSink) RecordAnalysis(ev metrics.AnalysisEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.analyses = append(s.analyses, ev)
	return nil
}

func (s *captureSink) RecordSimulation(ev metrics.SimulationEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.simulations = append(s.simulations, ev)
	return nil
}

func newTestEngine(sink metrics.MetricsSink, pub func(Result)) *Engine {
	fin := finance.NewAnalyzer(finance.DefaultTariffs(), finance.Config{})
	opts := []Option{}
	if sink != nil {
		opts = append(opts, WithSink(sink))
	}
	if pub != nil {
		opts = append(opts, WithPublisher(pub))
	}
	return NewEngine(fin, score.NewScorer(), risk.NewSimulator(fin, risk.Config{Trials: 50, Seed: 3}), opts...)
}

func testRequest(t *testing.T) Request {
	t.Helper()
	sc, err := model.NewScenario("seoul-depot", 1000, model.RegionCapital, 0.7, 0.6)
	require.NoError(t, err)
	return Request{
		Scenario: sc,
		Score: &model.ScoreInput{
			CapacityKW:          1000,
			Location:            model.RegionCapital,
			BudgetBillion:       50,
			RiskPreference:      model.PreferStable,
			RegularPatternRatio: 0.7,
			DRDispatchTimeRatio: 0.6,
			ChargingSpots:       30,
			PowerCapacityMVA:    0.15,
			TotalPorts:          50,
			SmartOCPPPorts:      35,
			V2GPorts:            5,
			BrandType:           model.BrandB2GLarge,
			SOH:                 model.SOHDistribution{R85to95: 1},
		},
	}
}

func TestAnalyzeFullPipeline(t *testing.T) {
	sink := &captureSink{}
	var published []Result
	e := newTestEngine(sink, func(r Result) { published = append(published, r) })

	res, err := e.Analyze(context.Background(), testRequest(t))
	require.NoError(t, err)

	require.NotEmpty(t, res.AnalysisID)
	require.NotNil(t, res.Score)
	require.NotNil(t, res.Combined)
	require.Nil(t, res.Risk)
	require.Equal(t, res.Combined.FinalRecommendation, res.Recommendation)
	require.Equal(t, res.Combined.Confidence, res.Confidence)

	require.Len(t, sink.analyses, 1)
	require.Equal(t, res.AnalysisID, sink.analyses[0].AnalysisID)
	require.Equal(t, string(res.Recommendation), string(sink.analyses[0].Recommendation))

	require.Len(t, published, 1)
	require.Equal(t, res.AnalysisID, published[0].AnalysisID)
}

func TestAnalyzeWithRisk(t *testing.T) {
	sink := &captureSink{}
	e := newTestEngine(sink, nil)

	req := testRequest(t)
	req.IncludeRisk = true
	res, err := e.Analyze(context.Background(), req)
	require.NoError(t, err)

	require.NotNil(t, res.Risk)
	require.Equal(t, 50, res.Risk.Trials)
	require.Len(t, sink.simulations, 1)
	require.Equal(t, res.AnalysisID, sink.simulations[0].AnalysisID)
}

func TestAnalyzeWithoutScore(t *testing.T) {
	e := newTestEngine(nil, nil)

	req := testRequest(t)
	req.Score = nil
	res, err := e.Analyze(context.Background(), req)
	require.NoError(t, err)

	require.Nil(t, res.Score)
	require.Nil(t, res.Combined)
	// Falls back to the revenue-only call.
	want := model.LineSMP
	if res.Finance.DR.ROI.ROI > res.Finance.SMP.ROI.ROI {
		want = model.LineDR
	}
	require.Equal(t, want, res.Recommendation)
}

func TestAnalyzeInvalidScenario(t *testing.T) {
	e := newTestEngine(nil, nil)
	_, err := e.Analyze(context.Background(), Request{Scenario: model.Scenario{CapacityKW: -1}})
	require.Error(t, err)
}

func TestAnalyzeCancelledContextSkipsRisk(t *testing.T) {
	e := newTestEngine(nil, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	req := testRequest(t)
	req.IncludeRisk = true
	_, err := e.Analyze(ctx, req)
	require.ErrorIs(t, err, context.Canceled)
}
