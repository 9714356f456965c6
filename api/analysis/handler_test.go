package analysis

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	coreanalysis "github.com/kilianp07/v2g-advisor/core/analysis"
	"github.com/kilianp07/v2g-advisor/core/finance"
	"github.com/kilianp07/v2g-advisor/core/model"
	"github.com/kilianp07/v2g-advisor/core/risk"
	"github.com/kilianp07/v2g-advisor/core/score"
	"github.com/kilianp07/v2g-advisor/infra/logger"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	fin := finance.NewAnalyzer(finance.DefaultTariffs(), finance.Config{})
	engine := coreanalysis.NewEngine(fin, score.NewScorer(),
		risk.NewSimulator(fin, risk.Config{Trials: 20, Seed: 1}))

	mux := http.NewServeMux()
	NewHandler(engine, logger.NopLogger{}).Register(mux)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(url, "application/json", bytes.NewReader(data))
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func TestAnalyzeEndpoint(t *testing.T) {
	srv := newTestServer(t)
	req := coreanalysis.Request{
		Scenario: model.Scenario{
			Name:           "api-test",
			CapacityKW:     1000,
			Location:       model.RegionCapital,
			DRUtilization:  0.7,
			SMPUtilization: 0.6,
		},
	}
	resp := postJSON(t, srv.URL+"/api/analyze", req)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var res coreanalysis.Result
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&res))
	require.NotEmpty(t, res.AnalysisID)
	require.Positive(t, res.Finance.DR.Revenue.AnnualRevenue)
}

func TestAnalyzeEndpointRejectsInvalidScenario(t *testing.T) {
	srv := newTestServer(t)
	req := coreanalysis.Request{Scenario: model.Scenario{CapacityKW: -1}}
	resp := postJSON(t, srv.URL+"/api/analyze", req)
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestAnalyzeEndpointRejectsBadJSON(t *testing.T) {
	srv := newTestServer(t)
	resp, err := http.Post(srv.URL+"/api/analyze", "application/json", bytes.NewReader([]byte("{")))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAnalyzeEndpointMethodNotAllowed(t *testing.T) {
	srv := newTestServer(t)
	resp, err := http.Get(srv.URL + "/api/analyze")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestScoreEndpoint(t *testing.T) {
	srv := newTestServer(t)
	in := model.ScoreInput{
		CapacityKW:          2000,
		Location:            model.RegionBusan,
		BudgetBillion:       100,
		RiskPreference:      model.PreferHighRisk,
		RegularPatternRatio: 0.4,
		DRDispatchTimeRatio: 0.2,
		TotalPorts:          40,
		V2GPorts:            30,
		SOH:                 model.SOHDistribution{Over95: 1},
	}
	resp := postJSON(t, srv.URL+"/api/score", in)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var res score.Result
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&res))
	require.Equal(t, model.LineSMP, res.Recommendation)
}

func TestRiskEndpoint(t *testing.T) {
	srv := newTestServer(t)
	sc := model.Scenario{
		Name:           "risk-test",
		CapacityKW:     1000,
		Location:       model.RegionCapital,
		DRUtilization:  0.7,
		SMPUtilization: 0.6,
	}
	resp := postJSON(t, srv.URL+"/api/risk", sc)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var res risk.Result
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&res))
	require.Equal(t, 20, res.Trials)
}
