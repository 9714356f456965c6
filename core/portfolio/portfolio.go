package portfolio

import (
	"fmt"

	"github.com/kilianp07/v2g-advisor/core/finance"
	"github.com/kilianp07/v2g-advisor/core/model"
	"github.com/kilianp07/v2g-advisor/core/risk"
)

// RiskFreeROI is the baseline return subtracted when computing Sharpe
// ratios, in percent.
const RiskFreeROI = 3.0

// Entry holds the return and risk figures of one candidate scenario.
type Entry struct {
	Scenario model.Scenario `json:"scenario"`

	DRROI  float64 `json:"dr_roi"`
	SMPROI float64 `json:"smp_roi"`

	DRAnnualRevenue  float64 `json:"dr_annual_revenue"`
	SMPAnnualRevenue float64 `json:"smp_annual_revenue"`

	DRSharpe  float64 `json:"dr_sharpe"`
	SMPSharpe float64 `json:"smp_sharpe"`
	DRRisk    float64 `json:"dr_risk"` // ROI standard deviation
	SMPRisk   float64 `json:"smp_risk"`
}

// Result ranks the candidate scenarios by risk-adjusted return.
type Result struct {
	Entries []Entry `json:"scenarios"`

	BestDRSharpe  string `json:"best_dr_sharpe"`
	BestSMPSharpe string `json:"best_smp_sharpe"`
	LowestRiskDR  string `json:"lowest_risk_dr"`
	LowestRiskSMP string `json:"lowest_risk_smp"`
}

// Optimizer evaluates scenario portfolios using the financial model and the
// Monte Carlo simulator.
type Optimizer struct {
	Finance *finance.Analyzer
	Risk    *risk.Simulator
}

// NewOptimizer returns an optimizer over the given analyzers.
func NewOptimizer(f *finance.Analyzer, r *risk.Simulator) *Optimizer {
	return &Optimizer{Finance: f, Risk: r}
}

// Optimize analyzes every scenario and selects the best risk-adjusted and
// lowest-risk candidates per business line.
func (o *Optimizer) Optimize(scenarios []model.Scenario) (Result, error) {
	if len(scenarios) == 0 {
		return Result{}, fmt.Errorf("no scenarios to optimize")
	}

	res := Result{Entries: make([]Entry, 0, len(scenarios))}
	for _, sc := range scenarios {
		cmp, err := o.Finance.Compare(sc)
		if err != nil {
			return Result{}, fmt.Errorf("scenario %q: %w", sc.Name, err)
		}
		rk, err := o.Risk.Run(sc)
		if err != nil {
			return Result{}, fmt.Errorf("scenario %q risk: %w", sc.Name, err)
		}

		e := Entry{
			Scenario:         sc,
			DRROI:            cmp.DR.ROI.ROI,
			SMPROI:           cmp.SMP.ROI.ROI,
			DRAnnualRevenue:  cmp.DR.Revenue.AnnualRevenue,
			SMPAnnualRevenue: cmp.SMP.Revenue.AnnualRevenue,
			DRRisk:           rk.DR.StdROI,
			SMPRisk:          rk.SMP.StdROI,
		}
		if rk.DR.StdROI > 0 {
			e.DRSharpe = (rk.DR.MeanROI - RiskFreeROI) / rk.DR.StdROI
		}
		if rk.SMP.StdROI > 0 {
			e.SMPSharpe = (rk.SMP.MeanROI - RiskFreeROI) / rk.SMP.StdROI
		}
		res.Entries = append(res.Entries, e)
	}

	res.BestDRSharpe = pick(res.Entries, func(e Entry) float64 { return e.DRSharpe }, true)
	res.BestSMPSharpe = pick(res.Entries, func(e Entry) float64 { return e.SMPSharpe }, true)
	res.LowestRiskDR = pick(res.Entries, func(e Entry) float64 { return e.DRRisk }, false)
	res.LowestRiskSMP = pick(res.Entries, func(e Entry) float64 { return e.SMPRisk }, false)
	return res, nil
}

// pick returns the name of the entry maximizing (or minimizing) the metric.
func pick(entries []Entry, metric func(Entry) float64, max bool) string {
	best := 0
	for i := 1; i < len(entries); i++ {
		v, b := metric(entries[i]), metric(entries[best])
		if (max && v > b) || (!max && v < b) {
			best = i
		}
	}
	return entries[best].Scenario.Name
}
