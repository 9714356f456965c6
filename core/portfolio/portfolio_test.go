package portfolio

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kilianp07/v2g-advisor/core/finance"
	"github.com/kilianp07/v2g-advisor/core/model"
	"github.com/kilianp07/v2g-advisor/core/risk"
)

func newTestOptimizer() *Optimizer {
	fin := finance.NewAnalyzer(finance.DefaultTariffs(), finance.Config{})
	sim := risk.NewSimulator(fin, risk.Config{Trials: 100, Seed: 7})
	return NewOptimizer(fin, sim)
}

func TestOptimizeRanksScenarios(t *testing.T) {
	o := newTestOptimizer()
	small, err := model.NewScenario("small", 800, model.RegionCapital, 0.7, 0.6)
	require.NoError(t, err)
	large, err := model.NewScenario("large", 6000, model.RegionJeju, 0.5, 0.8)
	require.NoError(t, err)

	res, err := o.Optimize([]model.Scenario{small, large})
	require.NoError(t, err)
	require.Len(t, res.Entries, 2)

	names := map[string]bool{}
	for _, e := range res.Entries {
		names[e.Scenario.Name] = true
		require.Positive(t, e.DRAnnualRevenue)
		require.Positive(t, e.SMPAnnualRevenue)
		require.GreaterOrEqual(t, e.DRRisk, 0.0)
		require.GreaterOrEqual(t, e.SMPRisk, 0.0)
	}
	require.True(t, names["small"] && names["large"])

	// The selections must point at analyzed scenarios.
	require.Contains(t, names, res.BestDRSharpe)
	require.Contains(t, names, res.BestSMPSharpe)
	require.Contains(t, names, res.LowestRiskDR)
	require.Contains(t, names, res.LowestRiskSMP)
}

func TestOptimizeDeterministicWithSeed(t *testing.T) {
	sc, err := model.NewScenario("only", 1000, model.RegionCapital, 0.7, 0.6)
	require.NoError(t, err)

	a, err := newTestOptimizer().Optimize([]model.Scenario{sc})
	require.NoError(t, err)
	b, err := newTestOptimizer().Optimize([]model.Scenario{sc})
	require.NoError(t, err)
	require.Equal(t, a, b)
}

func TestOptimizeEmptyInput(t *testing.T) {
	_, err := newTestOptimizer().Optimize(nil)
	require.Error(t, err)
}
