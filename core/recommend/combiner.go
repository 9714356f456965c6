package recommend

import (
	"github.com/kilianp07/v2g-advisor/core/finance"
	"github.com/kilianp07/v2g-advisor/core/model"
	"github.com/kilianp07/v2g-advisor/core/score"
)

// Confidence labels how clear-cut the combined recommendation is.
type Confidence string

const (
	ConfidenceVeryHigh Confidence = "very_high"
	ConfidenceHigh     Confidence = "high"
	ConfidenceModerate Confidence = "moderate"
	ConfidenceLow      Confidence = "low"
)

// Blend holds the numeric inputs and intermediates of the combination.
type Blend struct {
	DRROI       float64 `json:"dr_roi"`
	SMPROI      float64 `json:"smp_roi"`
	DRScore     float64 `json:"dr_score"`
	SMPScore    float64 `json:"smp_score"`
	DRWeighted  float64 `json:"dr_weighted"`
	SMPWeighted float64 `json:"smp_weighted"`
	ROIGap      float64 `json:"roi_gap"`
	ScoreGap    float64 `json:"score_gap"`
	WeightedGap float64 `json:"weighted_gap"`
}

// Combined merges the financial and qualitative views into one call.
type Combined struct {
	RevenueRecommendation model.BusinessLine `json:"revenue_recommendation"`
	ScoreRecommendation   model.BusinessLine `json:"score_recommendation"`
	FinalRecommendation   model.BusinessLine `json:"final_recommendation"`

	// RecommendationsMatch reports whether both views agreed. It is
	// informational only and never alters the final call.
	RecommendationsMatch bool       `json:"recommendations_match"`
	Confidence           Confidence `json:"confidence"`
	Metrics              Blend      `json:"metrics"`
}

// Combiner blends ROI percentages with qualitative scores. The two inputs
// live on different scales (unbounded percent vs. a 0-110 point total); the
// blend keeps them as-is, matching the legacy heuristic it reproduces.
type Combiner struct {
	ROIWeight   float64
	ScoreWeight float64
}

// NewCombiner returns the standard 60/40 combiner.
func NewCombiner() Combiner {
	return Combiner{ROIWeight: 0.6, ScoreWeight: 0.4}
}

// Combine produces the final weighted recommendation with its confidence
// tier.
func (c Combiner) Combine(cmp finance.Comparison, sc score.Result) Combined {
	b := Blend{
		DRROI:    cmp.DR.ROI.ROI,
		SMPROI:   cmp.SMP.ROI.ROI,
		DRScore:  sc.TotalDR,
		SMPScore: sc.TotalSMP,
	}
	b.DRWeighted = b.DRROI*c.ROIWeight + b.DRScore*c.ScoreWeight
	b.SMPWeighted = b.SMPROI*c.ROIWeight + b.SMPScore*c.ScoreWeight
	b.ROIGap = abs(b.DRROI - b.SMPROI)
	b.ScoreGap = sc.ScoreGap
	b.WeightedGap = abs(b.DRWeighted - b.SMPWeighted)

	out := Combined{
		RevenueRecommendation: model.LineSMP,
		ScoreRecommendation:   sc.Recommendation,
		FinalRecommendation:   model.LineSMP,
		Confidence:            confidenceFor(b.WeightedGap),
		Metrics:               b,
	}
	if b.DRROI > b.SMPROI {
		out.RevenueRecommendation = model.LineDR
	}
	if b.DRWeighted > b.SMPWeighted {
		out.FinalRecommendation = model.LineDR
	}
	out.RecommendationsMatch = out.RevenueRecommendation == out.ScoreRecommendation
	return out
}

func confidenceFor(gap float64) Confidence {
	switch {
	case gap > 15:
		return ConfidenceVeryHigh
	case gap > 10:
		return ConfidenceHigh
	case gap > 5:
		return ConfidenceModerate
	default:
		return ConfidenceLow
	}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
