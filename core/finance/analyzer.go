package finance

import (
	"fmt"

	"github.com/kilianp07/v2g-advisor/core/model"
)

// Config defines the parameters of the investment-return calculation.
type Config struct {
	HorizonYears int     `json:"horizon_years"`
	DiscountRate float64 `json:"discount_rate"`
	OpexRate     float64 `json:"opex_rate"`
}

// SetDefaults applies the standard 10-year, 5% assumptions.
func (c *Config) SetDefaults() {
	if c.HorizonYears == 0 {
		c.HorizonYears = 10
	}
	if c.DiscountRate == 0 {
		c.DiscountRate = 0.05
	}
	if c.OpexRate == 0 {
		c.OpexRate = 0.05
	}
}

// Validate checks the configuration ranges.
func (c Config) Validate() error {
	if c.HorizonYears <= 0 {
		return fmt.Errorf("horizon_years must be positive")
	}
	if c.DiscountRate < 0 || c.DiscountRate >= 1 {
		return fmt.Errorf("discount_rate must be within [0,1)")
	}
	if c.OpexRate < 0 || c.OpexRate >= 1 {
		return fmt.Errorf("opex_rate must be within [0,1)")
	}
	return nil
}

// Analyzer computes revenue, cost and return figures from injected tariff
// tables. It is stateless apart from its configuration and safe for
// concurrent use.
type Analyzer struct {
	Tariffs Tariffs
	Config  Config
}

// NewAnalyzer returns an analyzer over the given tables.
func NewAnalyzer(t Tariffs, cfg Config) *Analyzer {
	cfg.SetDefaults()
	return &Analyzer{Tariffs: t, Config: cfg}
}

// LineResult groups the three financial views of one business line.
type LineResult struct {
	Revenue RevenueBreakdown `json:"revenue"`
	Costs   CostBreakdown    `json:"costs"`
	ROI     ROIMetrics       `json:"roi_metrics"`
}

// Comparison holds the full financial model for both lines.
type Comparison struct {
	DR  LineResult `json:"dr"`
	SMP LineResult `json:"smp"`
}

// Compare runs the complete revenue, cost and ROI pipeline for both
// business lines of the scenario.
func (a *Analyzer) Compare(sc model.Scenario) (Comparison, error) {
	if err := sc.Validate(); err != nil {
		return Comparison{}, fmt.Errorf("invalid scenario: %w", err)
	}

	drRevenue := a.DRRevenue(sc.CapacityKW, sc.Location, sc.DRUtilization)
	drCosts, err := a.InvestmentCosts(sc.CapacityKW, model.LineDR)
	if err != nil {
		return Comparison{}, err
	}

	smpRevenue := a.SMPRevenue(sc.CapacityKW, sc.Location, sc.SMPUtilization)
	smpCosts, err := a.InvestmentCosts(sc.CapacityKW, model.LineSMP)
	if err != nil {
		return Comparison{}, err
	}

	return Comparison{
		DR: LineResult{
			Revenue: drRevenue,
			Costs:   drCosts,
			ROI:     a.ROIMetricsFor(drRevenue.AnnualRevenue, drCosts.TotalInvestment),
		},
		SMP: LineResult{
			Revenue: smpRevenue,
			Costs:   smpCosts,
			ROI:     a.ROIMetricsFor(smpRevenue.AnnualRevenue, smpCosts.TotalInvestment),
		},
	}, nil
}
