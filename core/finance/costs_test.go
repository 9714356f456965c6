package finance

import (
	"math"
	"testing"

	"github.com/kilianp07/v2g-advisor/core/model"
)

func TestInvestmentCostsScaleBands(t *testing.T) {
	a := newTestAnalyzer()
	cases := []struct {
		capacity float64
		want     float64
	}{
		{500, 1.0},
		{1000, 0.95},
		{1999, 0.95},
		{2000, 0.90},
		{4999, 0.90},
		{5000, 0.85},
		{20000, 0.85},
	}
	for _, tc := range cases {
		costs, err := a.InvestmentCosts(tc.capacity, model.LineDR)
		if err != nil {
			t.Fatalf("capacity %.0f: %v", tc.capacity, err)
		}
		if costs.ScaleFactor != tc.want {
			t.Errorf("capacity %.0f: scale factor %f, want %f", tc.capacity, costs.ScaleFactor, tc.want)
		}
	}
}

func TestInvestmentCostsTotals(t *testing.T) {
	a := newTestAnalyzer()
	costs, err := a.InvestmentCosts(1000, model.LineDR)
	if err != nil {
		t.Fatal(err)
	}

	// 1 MW earns the 5% discount on every component.
	base := (800000.0 + 300000 + 200000 + 100000) * 1000 * 0.95
	addon := (150000.0 + 100000) * 1000 * 0.95
	if math.Abs(costs.EquipmentCost-base) > 1e-6 {
		t.Fatalf("equipment cost %f, want %f", costs.EquipmentCost, base)
	}
	if math.Abs(costs.AdditionalCost-addon) > 1e-6 {
		t.Fatalf("additional cost %f, want %f", costs.AdditionalCost, addon)
	}
	if math.Abs(costs.TotalInvestment-(base+addon)) > 1e-6 {
		t.Fatalf("total %f, want %f", costs.TotalInvestment, base+addon)
	}
	if math.Abs(costs.UnitCostPerKW-(base+addon)/1000) > 1e-6 {
		t.Fatalf("unit cost %f, want %f", costs.UnitCostPerKW, (base+addon)/1000)
	}
}

func TestInvestmentCostsLineAddOnsDiffer(t *testing.T) {
	a := newTestAnalyzer()
	dr, err := a.InvestmentCosts(1000, model.LineDR)
	if err != nil {
		t.Fatal(err)
	}
	smp, err := a.InvestmentCosts(1000, model.LineSMP)
	if err != nil {
		t.Fatal(err)
	}
	if dr.EquipmentCost != smp.EquipmentCost {
		t.Fatal("base equipment costs must match across lines")
	}
	// SMP carries trading and forecast systems (320k/kW) against DR's
	// integration and monitoring (250k/kW).
	if smp.AdditionalCost <= dr.AdditionalCost {
		t.Fatalf("smp add-ons %f should exceed dr add-ons %f", smp.AdditionalCost, dr.AdditionalCost)
	}
	if _, ok := smp.Components[CostTradingSystem]; !ok {
		t.Fatal("smp breakdown missing trading system component")
	}
	if _, ok := dr.Components[CostSystemIntegration]; !ok {
		t.Fatal("dr breakdown missing system integration component")
	}
}

func TestInvestmentCostsUnknownLine(t *testing.T) {
	a := newTestAnalyzer()
	if _, err := a.InvestmentCosts(1000, model.BusinessLine("P2P")); err == nil {
		t.Fatal("expected error for unknown business line")
	}
}
