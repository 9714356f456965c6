package metrics

import (
	"time"

	"github.com/kilianp07/v2g-advisor/core/model"
)

// AnalysisEvent represents a completed business-case analysis to be recorded.
type AnalysisEvent struct {
	AnalysisID     string
	Scenario       string
	Location       model.Region
	CapacityKW     float64
	Recommendation model.BusinessLine
	Confidence     string
	DRROIPercent   float64
	SMPROIPercent  float64
	ScoreDR        float64
	ScoreSMP       float64
	Duration       time.Duration
	Time           time.Time
}

// MetricsSink records analysis results for observability purposes.
type MetricsSink interface {
	RecordAnalysis(ev AnalysisEvent) error
}

// SimulationEvent captures data about a Monte Carlo risk run.
type SimulationEvent struct {
	AnalysisID string
	Trials     int
	Duration   time.Duration
	Time       time.Time
}

// SimulationRecorder is implemented by sinks able to record risk simulation runs.
type SimulationRecorder interface {
	RecordSimulation(ev SimulationEvent) error
}

// NopSink implements MetricsSink with no-op methods.
type NopSink struct{}

func (NopSink) RecordAnalysis(AnalysisEvent) error { return nil }

// Ensure NopSink implements SimulationRecorder.
func (NopSink) RecordSimulation(SimulationEvent) error { return nil }
