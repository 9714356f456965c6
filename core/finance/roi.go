package finance

import (
	"encoding/json"
	"math"
)

// ROIMetrics carries the standard investment-return indicators derived from
// an annual revenue and a total investment.
type ROIMetrics struct {
	ROI             float64 `json:"roi"`            // percent over the horizon
	PaybackPeriod   float64 `json:"payback_period"` // years, +Inf when never recovered
	NPV             float64 `json:"npv"`
	IRR             float64 `json:"irr"` // single-period approximation, percent
	AnnualNetIncome float64 `json:"annual_net_income"`
	AnnualOpex      float64 `json:"annual_opex"`
}

// ROIMetricsFor derives the metrics for the given horizon and discount rate.
// Operating expense is a fixed fraction of the investment. Degenerate
// divisions never fault: a non-positive net income yields an infinite
// payback period and a zero investment yields zero ROI and IRR.
func (a *Analyzer) ROIMetricsFor(annualRevenue, investment float64) ROIMetrics {
	cfg := a.Config

	opex := investment * cfg.OpexRate
	net := annualRevenue - opex

	m := ROIMetrics{AnnualNetIncome: net, AnnualOpex: opex}

	if investment > 0 {
		m.ROI = (net*float64(cfg.HorizonYears) - investment) / investment * 100
		m.IRR = net / investment * 100
	}

	if net > 0 {
		m.PaybackPeriod = investment / net
	} else {
		m.PaybackPeriod = math.Inf(1)
	}

	npv := -investment
	for year := 1; year <= cfg.HorizonYears; year++ {
		npv += net / math.Pow(1+cfg.DiscountRate, float64(year))
	}
	m.NPV = npv
	return m
}

// MarshalJSON encodes the metrics with an explicit "inf" sentinel for the
// payback period, which JSON cannot represent as a number.
func (m ROIMetrics) MarshalJSON() ([]byte, error) {
	type alias ROIMetrics
	if !math.IsInf(m.PaybackPeriod, 1) {
		return json.Marshal(alias(m))
	}
	return json.Marshal(struct {
		alias
		PaybackPeriod string `json:"payback_period"`
	}{alias: alias(m), PaybackPeriod: "inf"})
}
