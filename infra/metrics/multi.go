package metrics

import coremetrics "github.com/kilianp07/v2g-advisor/core/metrics"

// MultiSink fans analysis events out to multiple sinks.
type MultiSink struct {
	Sinks []coremetrics.MetricsSink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...coremetrics.MetricsSink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordAnalysis forwards the event to all sinks, returning the first error encountered.
func (m *MultiSink) RecordAnalysis(ev coremetrics.AnalysisEvent) error {
	for _, s := range m.Sinks {
		if err := s.RecordAnalysis(ev); err != nil {
			return err
		}
	}
	return nil
}

// RecordSimulation forwards simulation events to sinks that support them.
func (m *MultiSink) RecordSimulation(ev coremetrics.SimulationEvent) error {
	for _, s := range m.Sinks {
		if rec, ok := s.(coremetrics.SimulationRecorder); ok {
			if err := rec.RecordSimulation(ev); err != nil {
				return err
			}
		}
	}
	return nil
}
