package risk

import (
	"fmt"
	randv2 "math/rand/v2"
	"runtime"
	"sort"
	"sync"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/kilianp07/v2g-advisor/core/finance"
	"github.com/kilianp07/v2g-advisor/core/model"
)

// Config defines the Monte Carlo parameters.
type Config struct {
	// Trials is the number of independent draws.
	Trials int `json:"trials"`
	// Seed makes a run exactly reproducible; zero is an ordinary fixed seed.
	Seed uint64 `json:"seed"`
	// Workers caps the parallel workers; zero uses GOMAXPROCS.
	Workers int `json:"workers"`
}

// SetDefaults applies the standard 1000-trial configuration.
func (c *Config) SetDefaults() {
	if c.Trials == 0 {
		c.Trials = 1000
	}
	if c.Workers == 0 {
		c.Workers = runtime.GOMAXPROCS(0)
	}
}

// Validate checks the simulation parameters.
func (c Config) Validate() error {
	if c.Trials <= 0 {
		return fmt.Errorf("trials must be positive")
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers cannot be negative")
	}
	return nil
}

// Perturbation bounds applied to the utilization draws.
const (
	capacitySigma    = 0.1
	utilizationSigma = 0.1
	drUtilMin        = 0.1
	drUtilMax        = 0.95
	smpUtilMin       = 0.1
	smpUtilMax       = 0.85
)

// Metrics summarizes the ROI distribution of one business line.
type Metrics struct {
	MeanROI      float64 `json:"mean_roi"`
	StdROI       float64 `json:"std_roi"`
	VaR95        float64 `json:"var_95"` // 5th percentile
	VaR99        float64 `json:"var_99"` // 1st percentile
	ProbPositive float64 `json:"prob_positive"`
}

// Result carries the distribution summaries of both lines.
type Result struct {
	DR       Metrics        `json:"dr_risk_metrics"`
	SMP      Metrics        `json:"smp_risk_metrics"`
	Trials   int            `json:"trials"`
	Scenario model.Scenario `json:"base_scenario"`
}

// Simulator perturbs a scenario and re-runs the financial pipeline to
// estimate the ROI distribution of both lines. Trials are independent, so
// they are fanned out over a fixed worker pool; each worker owns a seeded
// PCG stream, which keeps a run reproducible regardless of scheduling.
type Simulator struct {
	Analyzer *finance.Analyzer
	Config   Config
}

// NewSimulator returns a simulator over the given analyzer.
func NewSimulator(a *finance.Analyzer, cfg Config) *Simulator {
	cfg.SetDefaults()
	return &Simulator{Analyzer: a, Config: cfg}
}

// Run executes the Monte Carlo simulation for the scenario.
func (s *Simulator) Run(sc model.Scenario) (Result, error) {
	if err := sc.Validate(); err != nil {
		return Result{}, fmt.Errorf("invalid scenario: %w", err)
	}
	if err := s.Config.Validate(); err != nil {
		return Result{}, err
	}

	workers := s.Config.Workers
	if workers > s.Config.Trials {
		workers = s.Config.Trials
	}

	drChunks := make([][]float64, workers)
	smpChunks := make([][]float64, workers)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		trials := s.Config.Trials / workers
		if w < s.Config.Trials%workers {
			trials++
		}
		wg.Add(1)
		go func(w, trials int) {
			defer wg.Done()
			drChunks[w], smpChunks[w] = s.runChunk(sc, trials, uint64(w))
		}(w, trials)
	}
	wg.Wait()

	var drROIs, smpROIs []float64
	for w := 0; w < workers; w++ {
		drROIs = append(drROIs, drChunks[w]...)
		smpROIs = append(smpROIs, smpChunks[w]...)
	}

	return Result{
		DR:       summarize(drROIs),
		SMP:      summarize(smpROIs),
		Trials:   s.Config.Trials,
		Scenario: sc,
	}, nil
}

// runChunk executes trials draws on a dedicated random stream.
func (s *Simulator) runChunk(sc model.Scenario, trials int, stream uint64) (drROIs, smpROIs []float64) {
	src := randv2.NewPCG(s.Config.Seed, stream)
	capDist := distuv.Normal{Mu: 1.0, Sigma: capacitySigma, Src: src}
	drDist := distuv.Normal{Mu: sc.DRUtilization, Sigma: utilizationSigma, Src: src}
	smpDist := distuv.Normal{Mu: sc.SMPUtilization, Sigma: utilizationSigma, Src: src}

	drROIs = make([]float64, 0, trials)
	smpROIs = make([]float64, 0, trials)
	for i := 0; i < trials; i++ {
		trial := sc
		trial.CapacityKW = sc.CapacityKW * capDist.Rand()
		if trial.CapacityKW <= 0 {
			trial.CapacityKW = sc.CapacityKW * capacitySigma
		}
		trial.DRUtilization = clamp(drDist.Rand(), drUtilMin, drUtilMax)
		trial.SMPUtilization = clamp(smpDist.Rand(), smpUtilMin, smpUtilMax)

		cmp, err := s.Analyzer.Compare(trial)
		if err != nil {
			// Perturbed inputs are clamped into validity above; a failure
			// here indicates a broken tariff table, not a bad draw.
			continue
		}
		drROIs = append(drROIs, cmp.DR.ROI.ROI)
		smpROIs = append(smpROIs, cmp.SMP.ROI.ROI)
	}
	return drROIs, smpROIs
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// summarize reduces the ROI samples to distribution statistics. The input
// order does not matter.
func summarize(rois []float64) Metrics {
	if len(rois) == 0 {
		return Metrics{}
	}
	sorted := append([]float64(nil), rois...)
	sort.Float64s(sorted)

	positive := 0
	for _, r := range rois {
		if r > 0 {
			positive++
		}
	}

	m := Metrics{
		MeanROI:      stat.Mean(sorted, nil),
		VaR95:        stat.Quantile(0.05, stat.Empirical, sorted, nil),
		VaR99:        stat.Quantile(0.01, stat.Empirical, sorted, nil),
		ProbPositive: float64(positive) / float64(len(rois)),
	}
	if len(sorted) > 1 {
		m.StdROI = stat.StdDev(sorted, nil)
	}
	return m
}
