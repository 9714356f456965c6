package model

import "fmt"

// BusinessLine selects one of the two revenue programs under comparison.
type BusinessLine string

const (
	LineDR  BusinessLine = "DR"
	LineSMP BusinessLine = "SMP"
)

// RiskTolerance tags a scenario with the investor's appetite for volatility.
type RiskTolerance string

const (
	RiskLow    RiskTolerance = "low"
	RiskMedium RiskTolerance = "medium"
	RiskHigh   RiskTolerance = "high"
)

// Scenario is the immutable input of a business-case analysis. It is created
// once per request and never mutated afterwards.
type Scenario struct {
	Name             string        `json:"name"`
	CapacityKW       float64       `json:"capacity_kw"`
	Location         Region        `json:"location"`
	DRUtilization    float64       `json:"dr_utilization"`  // [0,1]
	SMPUtilization   float64       `json:"smp_utilization"` // [0,1]
	InvestmentBudget float64       `json:"investment_budget"`
	TargetROI        float64       `json:"target_roi"`
	RiskTolerance    RiskTolerance `json:"risk_tolerance"`
}

// NewScenario builds a validated Scenario. Numeric fields outside their
// documented ranges are rejected; an unknown risk tolerance defaults to
// medium, mirroring the tariff tables which default unknown enum tags.
func NewScenario(name string, capacityKW float64, location Region, drUtil, smpUtil float64) (Scenario, error) {
	s := Scenario{
		Name:           name,
		CapacityKW:     capacityKW,
		Location:       location,
		DRUtilization:  drUtil,
		SMPUtilization: smpUtil,
		RiskTolerance:  RiskMedium,
	}
	if err := s.Validate(); err != nil {
		return Scenario{}, err
	}
	return s, nil
}

// Validate checks the numeric invariants of the scenario.
func (s Scenario) Validate() error {
	if s.CapacityKW <= 0 {
		return fmt.Errorf("capacity must be positive, got %.2f", s.CapacityKW)
	}
	if s.DRUtilization < 0 || s.DRUtilization > 1 {
		return fmt.Errorf("dr utilization must be within [0,1], got %.3f", s.DRUtilization)
	}
	if s.SMPUtilization < 0 || s.SMPUtilization > 1 {
		return fmt.Errorf("smp utilization must be within [0,1], got %.3f", s.SMPUtilization)
	}
	if s.InvestmentBudget < 0 {
		return fmt.Errorf("investment budget cannot be negative")
	}
	return nil
}

// NormalizedRiskTolerance maps unrecognized tags to RiskMedium.
func (s Scenario) NormalizedRiskTolerance() RiskTolerance {
	switch s.RiskTolerance {
	case RiskLow, RiskMedium, RiskHigh:
		return s.RiskTolerance
	default:
		return RiskMedium
	}
}
