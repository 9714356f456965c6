package finance

import (
	"fmt"

	"github.com/kilianp07/v2g-advisor/core/model"
)

// CostBreakdown itemizes the capital expenditure of one business line.
// TotalInvestment equals the sum of all per-kW components, after the scale
// discount, multiplied by the capacity.
type CostBreakdown struct {
	Line            model.BusinessLine `json:"line"`
	EquipmentCost   float64            `json:"equipment_cost"`  // base components, total KRW
	AdditionalCost  float64            `json:"additional_cost"` // line add-ons, total KRW
	TotalInvestment float64            `json:"total_investment"`

	// Components maps each cost item to its discounted per-kW rate.
	Components map[string]float64 `json:"cost_breakdown"`

	ScaleFactor   float64 `json:"scale_factor"`
	UnitCostPerKW float64 `json:"unit_cost_per_kw"`
}

// InvestmentCosts computes the capital costs for the given capacity and
// business line. Larger installations earn a uniform discount on every
// component (15% at 5 MW, 10% at 2 MW, 5% at 1 MW).
func (a *Analyzer) InvestmentCosts(capacityKW float64, line model.BusinessLine) (CostBreakdown, error) {
	addons, ok := a.Tariffs.AddOnCosts[line]
	if !ok {
		return CostBreakdown{}, fmt.Errorf("unknown business line %q", line)
	}

	sf := scaleFactor(capacityKW)

	var basePerKW, addonPerKW float64
	components := make(map[string]float64, len(a.Tariffs.BaseCosts)+len(addons))
	for k, v := range a.Tariffs.BaseCosts {
		basePerKW += v
		components[k] = v * sf
	}
	for k, v := range addons {
		addonPerKW += v
		components[k] = v * sf
	}

	base := basePerKW * capacityKW * sf
	addon := addonPerKW * capacityKW * sf
	total := base + addon

	return CostBreakdown{
		Line:            line,
		EquipmentCost:   base,
		AdditionalCost:  addon,
		TotalInvestment: total,
		Components:      components,
		ScaleFactor:     sf,
		UnitCostPerKW:   total / capacityKW,
	}, nil
}
