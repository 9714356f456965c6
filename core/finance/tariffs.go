package finance

import "github.com/kilianp07/v2g-advisor/core/model"

// Tariffs bundles every rate table used by the revenue and cost model.
// The tables are plain data so tests can substitute their own values;
// DefaultTariffs returns the published program rates.
type Tariffs struct {
	// DR program rates, KRW.
	DRBaseFeePerKWMonth     float64 `json:"dr_base_fee_per_kw_month"`
	DRCapacityFeePerKWMonth float64 `json:"dr_capacity_fee_per_kw_month"`
	DRReductionFeePerKWh    float64 `json:"dr_reduction_fee_per_kwh"`

	// SMP reference price, KRW/kWh.
	SMPBasePrice float64 `json:"smp_base_price"`

	// OperationHours is the yearly hour count used for the implied
	// average-price calculation.
	OperationHours float64 `json:"operation_hours"`

	// Regional multipliers. Regions missing from a table use factor 1.0.
	DRLocationFactor  map[model.Region]float64 `json:"dr_location_factor"`
	SMPLocationFactor map[model.Region]float64 `json:"smp_location_factor"`

	// DRSeasonalFactors scales the monthly reduction performance,
	// peaking in mid-summer and winter.
	DRSeasonalFactors [12]float64 `json:"dr_seasonal_factors"`

	// SMPHourlyFactors shapes the intra-day price curve; SMPDemandFactors
	// scales the utilization month by month.
	SMPHourlyFactors [24]float64 `json:"smp_hourly_factors"`
	SMPDemandFactors [12]float64 `json:"smp_demand_factors"`

	// Investment cost components, KRW/kW.
	BaseCosts  map[string]float64                        `json:"base_costs"`
	AddOnCosts map[model.BusinessLine]map[string]float64 `json:"addon_costs"`
}

// Cost component keys shared by both business lines.
const (
	CostEquipment      = "v2g_equipment"
	CostInfrastructure = "infrastructure"
	CostInstallation   = "installation"
	CostCertification  = "certification"

	CostSystemIntegration = "system_integration"
	CostMonitoring        = "monitoring"
	CostTradingSystem     = "trading_system"
	CostForecastSystem    = "forecast_system"
)

// DefaultTariffs returns the program rate tables.
func DefaultTariffs() Tariffs {
	return Tariffs{
		DRBaseFeePerKWMonth:     3000,
		DRCapacityFeePerKWMonth: 2000,
		DRReductionFeePerKWh:    150,
		SMPBasePrice:            85,
		OperationHours:          8760,
		DRLocationFactor: map[model.Region]float64{
			model.RegionCapital:     1.2,
			model.RegionChungcheong: 1.0,
			model.RegionYeongnam:    1.1,
			model.RegionHonam:       0.9,
			model.RegionGangwon:     0.8,
			model.RegionJeju:        0.7,
		},
		SMPLocationFactor: map[model.Region]float64{
			model.RegionCapital:     1.0,
			model.RegionChungcheong: 0.95,
			model.RegionYeongnam:    0.98,
			model.RegionHonam:       0.92,
			model.RegionGangwon:     0.88,
			model.RegionJeju:        0.85,
		},
		DRSeasonalFactors: [12]float64{1.3, 1.1, 0.8, 0.7, 0.9, 1.4, 1.5, 1.4, 1.0, 0.8, 1.0, 1.2},
		SMPHourlyFactors: [24]float64{
			0.7, 0.6, 0.6, 0.7, 0.8, 0.9, 1.0, 1.1,
			1.2, 1.1, 1.0, 1.0, 1.1, 1.2, 1.3, 1.4,
			1.5, 1.6, 1.7, 1.5, 1.3, 1.1, 0.9, 0.8,
		},
		SMPDemandFactors: [12]float64{1.2, 1.1, 0.9, 0.8, 0.7, 1.3, 1.4, 1.3, 1.0, 0.9, 1.0, 1.1},
		BaseCosts: map[string]float64{
			CostEquipment:      800000,
			CostInfrastructure: 300000,
			CostInstallation:   200000,
			CostCertification:  100000,
		},
		AddOnCosts: map[model.BusinessLine]map[string]float64{
			model.LineDR: {
				CostSystemIntegration: 150000,
				CostMonitoring:        100000,
			},
			model.LineSMP: {
				CostTradingSystem:  200000,
				CostForecastSystem: 120000,
			},
		},
	}
}

// drLocationFactor returns the DR multiplier for the region, 1.0 if unmapped.
func (t Tariffs) drLocationFactor(r model.Region) float64 {
	if f, ok := t.DRLocationFactor[r]; ok {
		return f
	}
	return 1.0
}

// smpLocationFactor returns the SMP multiplier for the region, 1.0 if unmapped.
func (t Tariffs) smpLocationFactor(r model.Region) float64 {
	if f, ok := t.SMPLocationFactor[r]; ok {
		return f
	}
	return 1.0
}

// scaleFactor returns the volume discount applied to all cost components.
func scaleFactor(capacityKW float64) float64 {
	switch {
	case capacityKW >= 5000:
		return 0.85
	case capacityKW >= 2000:
		return 0.90
	case capacityKW >= 1000:
		return 0.95
	default:
		return 1.0
	}
}
