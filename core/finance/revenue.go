package finance

import (
	"github.com/kilianp07/v2g-advisor/core/model"
)

const (
	daysPerMonth     = 30
	dispatchHoursDay = 2
)

// RevenueBreakdown holds the annual revenue of one business line together
// with its monthly profile and fee decomposition.
type RevenueBreakdown struct {
	Line            model.BusinessLine `json:"line"`
	AnnualRevenue   float64            `json:"annual_revenue"`
	MonthlyRevenues [12]float64        `json:"monthly_revenues"`

	// DR fee decomposition (annual figures). Zero for SMP.
	BasicFee     float64 `json:"basic_fee,omitempty"`
	CapacityFee  float64 `json:"capacity_fee,omitempty"`
	ReductionFee float64 `json:"reduction_fee,omitempty"`

	// AveragePrice is the implied realized KRW/kWh. Zero for DR.
	AveragePrice float64 `json:"average_price,omitempty"`
}

// DRRevenue computes the demand-response revenue stream. The base and
// capacity fees are flat per month; the reduction fee follows the seasonal
// curve. The annual total is exactly the sum of the twelve monthly totals.
func (a *Analyzer) DRRevenue(capacityKW float64, location model.Region, utilization float64) RevenueBreakdown {
	t := a.Tariffs
	monthlyBasic := capacityKW * t.DRBaseFeePerKWMonth
	monthlyCapacity := capacityKW * t.DRCapacityFeePerKWMonth * t.drLocationFactor(location)

	out := RevenueBreakdown{Line: model.LineDR}
	for m, factor := range t.DRSeasonalFactors {
		monthlyUtil := utilization * factor
		reductionKWh := capacityKW * daysPerMonth * dispatchHoursDay * monthlyUtil
		reductionFee := reductionKWh * t.DRReductionFeePerKWh

		total := monthlyBasic + monthlyCapacity + reductionFee
		out.MonthlyRevenues[m] = total
		out.AnnualRevenue += total
		out.ReductionFee += reductionFee
	}
	out.BasicFee = monthlyBasic * 12
	out.CapacityFee = monthlyCapacity * 12
	return out
}

// SMPRevenue computes the spot-market revenue stream as a deterministic
// expected value: each simulated hour contributes its price-shaped revenue
// multiplied by the probability of a discharge, which is the utilization
// scaled by the monthly demand factor and clamped to [0,1].
func (a *Analyzer) SMPRevenue(capacityKW float64, location model.Region, utilization float64) RevenueBreakdown {
	t := a.Tariffs
	locFactor := t.smpLocationFactor(location)

	out := RevenueBreakdown{Line: model.LineSMP}
	for m, demandFactor := range t.SMPDemandFactors {
		p := utilization * demandFactor
		if p > 1 {
			p = 1
		}
		if p < 0 {
			p = 0
		}
		var monthly float64
		for _, hourFactor := range t.SMPHourlyFactors {
			hourlyPrice := t.SMPBasePrice * hourFactor * locFactor
			monthly += capacityKW * hourlyPrice * p
		}
		monthly *= daysPerMonth
		out.MonthlyRevenues[m] = monthly
		out.AnnualRevenue += monthly
	}
	if utilization > 0 {
		out.AveragePrice = out.AnnualRevenue / (capacityKW * utilization * t.OperationHours)
	}
	return out
}
