// Package analysis wires the financial, qualitative and risk views into a
// single integrated evaluation of a V2G site.
package analysis

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kilianp07/v2g-advisor/core/finance"
	"github.com/kilianp07/v2g-advisor/core/logger"
	"github.com/kilianp07/v2g-advisor/core/metrics"
	"github.com/kilianp07/v2g-advisor/core/model"
	"github.com/kilianp07/v2g-advisor/core/recommend"
	"github.com/kilianp07/v2g-advisor/core/risk"
	"github.com/kilianp07/v2g-advisor/core/score"
)

// Request bundles the inputs of one integrated analysis.
type Request struct {
	Scenario model.Scenario `json:"scenario"`
	// Score carries the qualitative site attributes. When nil, the
	// qualitative view and the combined recommendation are skipped.
	Score *model.ScoreInput `json:"score,omitempty"`
	// IncludeRisk enables the Monte Carlo simulation for this request.
	IncludeRisk bool `json:"include_risk"`
}

// Result is the complete outcome of one analysis request.
type Result struct {
	AnalysisID string              `json:"analysis_id"`
	Scenario   model.Scenario      `json:"scenario"`
	Finance    finance.Comparison  `json:"finance"`
	Score      *score.Result       `json:"score,omitempty"`
	Risk       *risk.Result        `json:"risk,omitempty"`
	Combined   *recommend.Combined `json:"combined,omitempty"`
	// Recommendation is the headline call: combined when a score input was
	// provided, revenue-only otherwise.
	Recommendation model.BusinessLine   `json:"recommendation"`
	Confidence     recommend.Confidence `json:"confidence"`
	StartedAt      time.Time            `json:"started_at"`
	Duration       time.Duration        `json:"duration"`
}

// Engine orchestrates the sub-analyzers and reports completions to the
// metrics sink and the event bus.
type Engine struct {
	Finance  *finance.Analyzer
	Scorer   *score.Scorer
	Risk     *risk.Simulator
	Combiner recommend.Combiner

	sink metrics.MetricsSink
	pub  func(Result)
	log  logger.Logger
}

// Option customizes an Engine.
type Option func(*Engine)

// WithSink routes completion events to the given metrics sink.
func WithSink(s metrics.MetricsSink) Option {
	return func(e *Engine) { e.sink = s }
}

// WithPublisher registers a callback invoked with every completed result.
func WithPublisher(pub func(Result)) Option {
	return func(e *Engine) { e.pub = pub }
}

// WithLogger sets the engine logger.
func WithLogger(l logger.Logger) Option {
	return func(e *Engine) { e.log = l }
}

// NewEngine assembles an engine from the prepared sub-analyzers.
func NewEngine(fin *finance.Analyzer, sc *score.Scorer, rk *risk.Simulator, opts ...Option) *Engine {
	e := &Engine{
		Finance:  fin,
		Scorer:   sc,
		Risk:     rk,
		Combiner: recommend.NewCombiner(),
		sink:     metrics.NopSink{},
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Analyze runs the full pipeline for one request. The context bounds the
// Monte Carlo stage, which dominates the runtime.
func (e *Engine) Analyze(ctx context.Context, req Request) (Result, error) {
	start := time.Now()
	res := Result{
		AnalysisID: uuid.NewString(),
		Scenario:   req.Scenario,
		StartedAt:  start,
	}

	cmp, err := e.Finance.Compare(req.Scenario)
	if err != nil {
		return Result{}, fmt.Errorf("financial comparison: %w", err)
	}
	res.Finance = cmp

	res.Recommendation = model.LineSMP
	if cmp.DR.ROI.ROI > cmp.SMP.ROI.ROI {
		res.Recommendation = model.LineDR
	}
	res.Confidence = recommend.ConfidenceLow

	if req.Score != nil {
		sr, err := e.Scorer.Comprehensive(*req.Score)
		if err != nil {
			return Result{}, fmt.Errorf("qualitative scoring: %w", err)
		}
		res.Score = &sr
		combined := e.Combiner.Combine(cmp, sr)
		res.Combined = &combined
		res.Recommendation = combined.FinalRecommendation
		res.Confidence = combined.Confidence
	}

	if req.IncludeRisk {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		riskStart := time.Now()
		rr, err := e.Risk.Run(req.Scenario)
		if err != nil {
			return Result{}, fmt.Errorf("risk simulation: %w", err)
		}
		res.Risk = &rr
		if rec, ok := e.sink.(metrics.SimulationRecorder); ok {
			ev := metrics.SimulationEvent{
				AnalysisID: res.AnalysisID,
				Trials:     rr.Trials,
				Duration:   time.Since(riskStart),
				Time:       time.Now(),
			}
			if err := rec.RecordSimulation(ev); err != nil && e.log != nil {
				e.log.Warnf("record simulation: %v", err)
			}
		}
	}

	res.Duration = time.Since(start)
	e.report(res)
	if e.pub != nil {
		e.pub(res)
	}
	return res, nil
}

func (e *Engine) report(res Result) {
	ev := metrics.AnalysisEvent{
		AnalysisID:     res.AnalysisID,
		Scenario:       res.Scenario.Name,
		Location:       res.Scenario.Location,
		CapacityKW:     res.Scenario.CapacityKW,
		Recommendation: res.Recommendation,
		Confidence:     string(res.Confidence),
		DRROIPercent:   res.Finance.DR.ROI.ROI,
		SMPROIPercent:  res.Finance.SMP.ROI.ROI,
		Duration:       res.Duration,
		Time:           time.Now(),
	}
	if res.Score != nil {
		ev.ScoreDR = res.Score.TotalDR
		ev.ScoreSMP = res.Score.TotalSMP
	}
	if err := e.sink.RecordAnalysis(ev); err != nil && e.log != nil {
		e.log.Warnf("record analysis: %v", err)
	}
}
