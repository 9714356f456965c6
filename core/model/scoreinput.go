package model

import "fmt"

// RiskPreference tags the operator's appetite used by the qualitative scorer.
type RiskPreference string

const (
	PreferStable   RiskPreference = "stable"
	PreferNeutral  RiskPreference = "neutral"
	PreferHighRisk RiskPreference = "high_risk"
)

// BrandType distinguishes B2G/large-enterprise operators from everyone else.
type BrandType string

const (
	BrandB2GLarge BrandType = "b2g_large"
	BrandOthers   BrandType = "others"
)

// SOHDistribution partitions a fleet into four state-of-health buckets.
// The ratios conceptually sum to 1; Normalized rescales them before use.
type SOHDistribution struct {
	Under70 float64 `json:"soh_under_70_ratio"`
	R70to85 float64 `json:"soh_70_85_ratio"`
	R85to95 float64 `json:"soh_85_95_ratio"`
	Over95  float64 `json:"soh_over_95_ratio"`
}

// Normalized returns the distribution rescaled to sum to 1. A zero
// distribution is returned unchanged.
func (d SOHDistribution) Normalized() SOHDistribution {
	total := d.Under70 + d.R70to85 + d.R85to95 + d.Over95
	if total <= 0 {
		return d
	}
	return SOHDistribution{
		Under70: d.Under70 / total,
		R70to85: d.R70to85 / total,
		R85to95: d.R85to95 / total,
		Over95:  d.Over95 / total,
	}
}

// WeightedAverage computes the fleet-average SOH using the midpoint weight
// of each bucket (0.70, 0.775, 0.90, 0.975).
func (d SOHDistribution) WeightedAverage() float64 {
	n := d.Normalized()
	return n.Under70*0.70 + n.R70to85*0.775 + n.R85to95*0.90 + n.Over95*0.975
}

// ScoreInput is the operational profile evaluated by the qualitative scorer.
// Like Scenario it is request-scoped and immutable after construction.
type ScoreInput struct {
	CapacityKW    float64 `json:"capacity_kw"`
	Location      Region  `json:"location"`
	BudgetBillion float64 `json:"budget_billion"` // KRW 1e8 units

	RiskPreference RiskPreference `json:"risk_preference"`

	RegularPatternRatio float64 `json:"regular_pattern_ratio"`  // [0,1]
	DRDispatchTimeRatio float64 `json:"dr_dispatch_time_ratio"` // [0,1]

	ChargingSpots    int     `json:"charging_spots"`
	PowerCapacityMVA float64 `json:"power_capacity_mva"`

	TotalPorts     int `json:"total_ports"`
	SmartOCPPPorts int `json:"smart_ocpp_ports"`
	V2GPorts       int `json:"v2g_ports"`

	BrandType BrandType `json:"brand_type"`

	SOH SOHDistribution `json:"soh"`
}

// Validate checks the numeric invariants. Enum tags are not validated here:
// unrecognized risk preferences and brand types fall back to their
// documented defaults inside the scorer.
func (in ScoreInput) Validate() error {
	if in.CapacityKW <= 0 {
		return fmt.Errorf("capacity must be positive, got %.2f", in.CapacityKW)
	}
	if in.BudgetBillion < 0 {
		return fmt.Errorf("budget cannot be negative")
	}
	for name, r := range map[string]float64{
		"regular_pattern_ratio":  in.RegularPatternRatio,
		"dr_dispatch_time_ratio": in.DRDispatchTimeRatio,
	} {
		if r < 0 || r > 1 {
			return fmt.Errorf("%s must be within [0,1], got %.3f", name, r)
		}
	}
	if in.ChargingSpots < 0 || in.TotalPorts < 0 || in.SmartOCPPPorts < 0 || in.V2GPorts < 0 {
		return fmt.Errorf("port and spot counts cannot be negative")
	}
	if in.SmartOCPPPorts+in.V2GPorts > 0 && in.TotalPorts > 0 && in.SmartOCPPPorts > in.TotalPorts {
		return fmt.Errorf("smart/ocpp ports exceed total ports")
	}
	for name, r := range map[string]float64{
		"soh_under_70_ratio": in.SOH.Under70,
		"soh_70_85_ratio":    in.SOH.R70to85,
		"soh_85_95_ratio":    in.SOH.R85to95,
		"soh_over_95_ratio":  in.SOH.Over95,
	} {
		if r < 0 {
			return fmt.Errorf("%s cannot be negative", name)
		}
	}
	return nil
}
