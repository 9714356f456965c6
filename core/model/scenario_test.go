package model

import "testing"

func TestNewScenarioValidation(t *testing.T) {
	if _, err := NewScenario("ok", 1000, RegionCapital, 0.7, 0.6); err != nil {
		t.Fatalf("valid scenario rejected: %v", err)
	}
	cases := []struct {
		name            string
		capacity        float64
		drUtil, smpUtil float64
	}{
		{"zero capacity", 0, 0.5, 0.5},
		{"negative capacity", -10, 0.5, 0.5},
		{"dr utilization above one", 1000, 1.1, 0.5},
		{"negative smp utilization", 1000, 0.5, -0.1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := NewScenario("bad", tc.capacity, RegionCapital, tc.drUtil, tc.smpUtil); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestScenarioValidateBudget(t *testing.T) {
	sc := Scenario{CapacityKW: 100, DRUtilization: 0.5, SMPUtilization: 0.5, InvestmentBudget: -1}
	if err := sc.Validate(); err == nil {
		t.Fatal("expected error for negative budget")
	}
}

func TestNormalizedRiskTolerance(t *testing.T) {
	sc := Scenario{RiskTolerance: RiskHigh}
	if got := sc.NormalizedRiskTolerance(); got != RiskHigh {
		t.Fatalf("got %q, want %q", got, RiskHigh)
	}
	sc.RiskTolerance = "aggressive"
	if got := sc.NormalizedRiskTolerance(); got != RiskMedium {
		t.Fatalf("unknown tolerance: got %q, want %q", got, RiskMedium)
	}
}
