package sensitivity

import (
	"fmt"

	"github.com/kilianp07/v2g-advisor/core/finance"
	"github.com/kilianp07/v2g-advisor/core/model"
)

// Variable enumerates the scenario parameters a sweep may vary. The set is
// closed: each variable owns an explicit apply function instead of a
// name-keyed dynamic dispatch.
type Variable string

const (
	VarCapacity       Variable = "capacity"
	VarDRUtilization  Variable = "dr_utilization"
	VarSMPUtilization Variable = "smp_utilization"
)

// apply returns a copy of the scenario with the variable set to value.
var apply = map[Variable]func(model.Scenario, float64) model.Scenario{
	VarCapacity: func(sc model.Scenario, v float64) model.Scenario {
		sc.CapacityKW = v
		return sc
	},
	VarDRUtilization: func(sc model.Scenario, v float64) model.Scenario {
		sc.DRUtilization = v
		return sc
	},
	VarSMPUtilization: func(sc model.Scenario, v float64) model.Scenario {
		sc.SMPUtilization = v
		return sc
	},
}

// Point is one sample of a sweep: the varied value and both ROI outcomes.
type Point struct {
	Value    float64      `json:"value"`
	Location model.Region `json:"location,omitempty"`
	DRROI    float64      `json:"dr_roi"`
	SMPROI   float64      `json:"smp_roi"`
}

// Analyzer sweeps scenario parameters through the financial model.
type Analyzer struct {
	Finance *finance.Analyzer
}

// NewAnalyzer returns a sweep analyzer over the given financial model.
func NewAnalyzer(f *finance.Analyzer) *Analyzer { return &Analyzer{Finance: f} }

// Sweep evaluates the base scenario once per value of the chosen variable.
func (a *Analyzer) Sweep(base model.Scenario, v Variable, values []float64) ([]Point, error) {
	fn, ok := apply[v]
	if !ok {
		return nil, fmt.Errorf("unknown sweep variable %q", v)
	}
	points := make([]Point, 0, len(values))
	for _, value := range values {
		cmp, err := a.Finance.Compare(fn(base, value))
		if err != nil {
			return nil, fmt.Errorf("sweep %s=%v: %w", v, value, err)
		}
		points = append(points, Point{
			Value:  value,
			DRROI:  cmp.DR.ROI.ROI,
			SMPROI: cmp.SMP.ROI.ROI,
		})
	}
	return points, nil
}

// SweepLocations evaluates the base scenario once per candidate region.
func (a *Analyzer) SweepLocations(base model.Scenario, regions []model.Region) ([]Point, error) {
	points := make([]Point, 0, len(regions))
	for _, r := range regions {
		sc := base
		sc.Location = r
		cmp, err := a.Finance.Compare(sc)
		if err != nil {
			return nil, fmt.Errorf("sweep location=%s: %w", r, err)
		}
		points = append(points, Point{
			Location: r,
			DRROI:    cmp.DR.ROI.ROI,
			SMPROI:   cmp.SMP.ROI.ROI,
		})
	}
	return points, nil
}
