package score

import (
	"fmt"

	"github.com/kilianp07/v2g-advisor/core/model"
)

// CategoryScore holds the DR and SMP points of one category together with
// its maximum. Both values always lie within [0,max]; they need not sum to
// the maximum since several categories grant partial credit to both sides.
type CategoryScore struct {
	DR  float64 `json:"dr"`
	SMP float64 `json:"smp"`
	Max float64 `json:"max"`
}

// Result is the outcome of the comprehensive scoring.
type Result struct {
	TotalDR    float64                    `json:"total_dr"`
	TotalSMP   float64                    `json:"total_smp"`
	Categories map[Category]CategoryScore `json:"detailed_scores"`

	// Recommendation is DR only on a strictly greater DR total; ties favor
	// SMP.
	Recommendation model.BusinessLine `json:"recommendation"`
	ScoreGap       float64            `json:"score_gap"`
}

// Scorer evaluates an operational profile against the fixed piecewise
// tables. All sub-scorers are pure functions of their inputs.
type Scorer struct {
	Weights Weights
}

// NewScorer returns a scorer over the default weighting table.
func NewScorer() *Scorer { return &Scorer{Weights: DefaultWeights()} }

// RegionScore rates the location [20]: DR-preferred regions score (20,10),
// SMP-preferred (10,20), anything unmapped is neutral (15,15). Alias
// spellings are resolved before the lookup.
func (s *Scorer) RegionScore(location model.Region) (dr, smp float64) {
	mapped := location
	if alias, ok := s.Weights.RegionAliases[location]; ok {
		mapped = alias
	}
	for _, r := range s.Weights.DRPreferredRegions {
		if location == r || mapped == r {
			return 20, 10
		}
	}
	for _, r := range s.Weights.SMPPreferredRegions {
		if location == r || mapped == r {
			return 10, 20
		}
	}
	return 15, 15
}

// ScaleScore rates the installation size [25]. SMP favorability strictly
// increases with capacity across the 3/8/15 MW thresholds.
func (s *Scorer) ScaleScore(capacityKW float64) (dr, smp float64) {
	switch {
	case capacityKW <= 3000:
		return 25, 4
	case capacityKW <= 8000:
		return 17, 13
	case capacityKW <= 15000:
		return 11, 19
	default:
		return 6, 25
	}
}

// RiskScore rates the operator's risk appetite [12]. Unrecognized tags
// default to neutral.
func (s *Scorer) RiskScore(pref model.RiskPreference) (dr, smp float64) {
	switch pref {
	case model.PreferStable:
		return 12, 0
	case model.PreferHighRisk:
		return 0, 12
	default:
		return 6, 6
	}
}

// ParkingScore rates the parking pattern [16]: the DR dispatch-time overlap
// selects the weight split applied to the point pool.
func (s *Scorer) ParkingScore(regularRatio, dispatchRatio float64) (dr, smp float64) {
	const pool = 16
	var drWeight, smpWeight float64
	switch {
	case dispatchRatio > 0.5:
		drWeight, smpWeight = 0.8, 0.2
	case dispatchRatio >= 0.25:
		drWeight, smpWeight = 0.5, 0.5
	default:
		drWeight, smpWeight = 0.2, 0.8
	}
	return pool * drWeight, pool * smpWeight
}

// InfrastructureScore rates site capacity [5] by jointly matching charging
// spots and substation MVA against five paired bands. Profiles falling in a
// gap between bands score the neutral (3,3).
func (s *Scorer) InfrastructureScore(chargingSpots int, powerMVA float64) (dr, smp float64) {
	switch {
	case chargingSpots > 200 && powerMVA > 1.0:
		return 1, 5
	case chargingSpots > 120 && chargingSpots <= 200 && powerMVA > 0.6 && powerMVA <= 1.0:
		return 2, 4
	case chargingSpots > 80 && chargingSpots <= 120 && powerMVA > 0.4 && powerMVA <= 0.6:
		return 3, 3
	case chargingSpots > 40 && chargingSpots <= 80 && powerMVA > 0.2 && powerMVA <= 0.4:
		return 4, 2
	case chargingSpots <= 40 && powerMVA <= 0.2:
		return 5, 1
	default:
		return 3, 3
	}
}

// ChargerRatioScore rates the port mix [5]: the smart/OCPP fraction drives
// the DR side and the V2G fraction the SMP side, both through the same
// five-band threshold function.
func (s *Scorer) ChargerRatioScore(totalPorts, smartOCPPPorts, v2gPorts int) (dr, smp float64) {
	var rDR, rSMP float64
	if totalPorts > 0 {
		rDR = float64(smartOCPPPorts) / float64(totalPorts)
		rSMP = float64(v2gPorts) / float64(totalPorts)
	}
	return ratioBand(rDR), ratioBand(rSMP)
}

func ratioBand(ratio float64) float64 {
	switch {
	case ratio > 0.6:
		return 5
	case ratio > 0.4:
		return 4
	case ratio > 0.3:
		return 3
	case ratio > 0.2:
		return 2
	default:
		return 1
	}
}

// BrandScore rates operator trust [3]. Anything but a B2G/large-enterprise
// brand scores the default (1,3).
func (s *Scorer) BrandScore(brand model.BrandType) (dr, smp float64) {
	if brand == model.BrandB2GLarge {
		return 3, 0
	}
	return 1, 3
}

// BatteryScore rates degradation exposure [14]. DR is indifferent to wear
// and always scores full marks; the SMP side is thresholded on the
// fleet-average SOH of the renormalized distribution.
func (s *Scorer) BatteryScore(dist model.SOHDistribution) (dr, smp float64) {
	avg := dist.WeightedAverage()
	switch {
	case avg > 0.95:
		smp = 14
	case avg > 0.85:
		smp = 10
	case avg > 0.70:
		smp = 5
	default:
		smp = 0
	}
	return 14, smp
}

// BudgetScore rates the investment budget [10] through six ascending
// thresholds; every pair sums to exactly 10.
func (s *Scorer) BudgetScore(budgetBillion float64) (dr, smp float64) {
	switch {
	case budgetBillion < 10:
		return 10, 0
	case budgetBillion < 30:
		return 8, 2
	case budgetBillion < 80:
		return 6, 4
	case budgetBillion < 150:
		return 5, 5
	case budgetBillion < 300:
		return 4, 6
	case budgetBillion < 500:
		return 2, 8
	default:
		return 0, 10
	}
}

// Comprehensive evaluates all nine categories and sums them into the final
// DR and SMP totals.
func (s *Scorer) Comprehensive(in model.ScoreInput) (Result, error) {
	if err := in.Validate(); err != nil {
		return Result{}, fmt.Errorf("invalid score input: %w", err)
	}

	categories := make(map[Category]CategoryScore, 9)
	record := func(c Category, dr, smp float64) {
		categories[c] = CategoryScore{DR: dr, SMP: smp, Max: s.Weights.Max[c]}
	}

	dr, smp := s.RegionScore(in.Location)
	record(CategoryRegion, dr, smp)
	dr, smp = s.ScaleScore(in.CapacityKW)
	record(CategoryScale, dr, smp)
	dr, smp = s.RiskScore(in.RiskPreference)
	record(CategoryRisk, dr, smp)
	dr, smp = s.ParkingScore(in.RegularPatternRatio, in.DRDispatchTimeRatio)
	record(CategoryParking, dr, smp)
	dr, smp = s.InfrastructureScore(in.ChargingSpots, in.PowerCapacityMVA)
	record(CategoryInfrastructure, dr, smp)
	dr, smp = s.ChargerRatioScore(in.TotalPorts, in.SmartOCPPPorts, in.V2GPorts)
	record(CategoryCharger, dr, smp)
	dr, smp = s.BrandScore(in.BrandType)
	record(CategoryBrand, dr, smp)
	dr, smp = s.BatteryScore(in.SOH)
	record(CategoryBattery, dr, smp)
	dr, smp = s.BudgetScore(in.BudgetBillion)
	record(CategoryBudget, dr, smp)

	res := Result{Categories: categories}
	for _, cs := range categories {
		res.TotalDR += cs.DR
		res.TotalSMP += cs.SMP
	}
	res.Recommendation = model.LineSMP
	if res.TotalDR > res.TotalSMP {
		res.Recommendation = model.LineDR
	}
	res.ScoreGap = res.TotalDR - res.TotalSMP
	if res.ScoreGap < 0 {
		res.ScoreGap = -res.ScoreGap
	}
	return res, nil
}
