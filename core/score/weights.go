package score

import "github.com/kilianp07/v2g-advisor/core/model"

// Category identifies one of the nine evaluation axes.
type Category string

const (
	CategoryRegion         Category = "region"
	CategoryScale          Category = "scale"
	CategoryRisk           Category = "risk"
	CategoryParking        Category = "parking"
	CategoryInfrastructure Category = "infrastructure"
	CategoryCharger        Category = "charger"
	CategoryBrand          Category = "brand"
	CategoryBattery        Category = "battery"
	CategoryBudget         Category = "budget"
)

// Categories returns the evaluation axes in their reporting order.
func Categories() []Category {
	return []Category{
		CategoryRegion, CategoryScale, CategoryRisk, CategoryParking,
		CategoryInfrastructure, CategoryCharger, CategoryBrand,
		CategoryBattery, CategoryBudget,
	}
}

// Weights holds the maximum points per category and the region preference
// tables. The maxima deliberately sum to 110: the totals are a relative
// DR-vs-SMP comparison, not a percentage, and are never renormalized.
type Weights struct {
	Max map[Category]float64

	DRPreferredRegions  []model.Region
	SMPPreferredRegions []model.Region

	// RegionAliases resolves display spellings before the preference lookup.
	RegionAliases map[model.Region]model.Region
}

// DefaultWeights returns the published weighting table.
func DefaultWeights() Weights {
	return Weights{
		Max: map[Category]float64{
			CategoryRegion:         20,
			CategoryScale:          25,
			CategoryRisk:           12,
			CategoryParking:        16,
			CategoryInfrastructure: 5,
			CategoryCharger:        5,
			CategoryBrand:          3,
			CategoryBattery:        14,
			CategoryBudget:         10,
		},
		DRPreferredRegions: []model.Region{
			model.RegionCapital, model.RegionSejong, model.RegionGwangju,
			model.RegionDaejeon, model.RegionDaegu, model.RegionGangwon,
		},
		SMPPreferredRegions: []model.Region{
			model.RegionIncheon, model.RegionBusan, model.RegionUlsan,
			model.RegionGyeongsang, model.RegionChungcheong,
			model.RegionJeolla, model.RegionJeju,
		},
		RegionAliases: map[model.Region]model.Region{
			model.RegionYeongnam: model.RegionGyeongsang,
			model.RegionHonam:    model.RegionJeolla,
		},
	}
}

// MaxTotal returns the sum of all category maxima.
func (w Weights) MaxTotal() float64 {
	var total float64
	for _, m := range w.Max {
		total += m
	}
	return total
}
