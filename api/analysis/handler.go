// Package analysis exposes the advisor engine over HTTP.
package analysis

import (
	"encoding/json"
	"net/http"

	coreanalysis "github.com/kilianp07/v2g-advisor/core/analysis"
	"github.com/kilianp07/v2g-advisor/core/logger"
	"github.com/kilianp07/v2g-advisor/core/model"
)

// Handler serves the analysis endpoints.
type Handler struct {
	engine *coreanalysis.Engine
	log    logger.Logger
}

// NewHandler creates a Handler around the given engine.
func NewHandler(engine *coreanalysis.Engine, log logger.Logger) *Handler {
	return &Handler{engine: engine, log: log}
}

// Register mounts the endpoints on mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.Handle("/api/analyze", http.HandlerFunc(h.handleAnalyze))
	mux.Handle("/api/score", http.HandlerFunc(h.handleScore))
	mux.Handle("/api/risk", http.HandlerFunc(h.handleRisk))
}

// handleAnalyze runs the full pipeline via POST /api/analyze.
func (h *Handler) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req coreanalysis.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	res, err := h.engine.Analyze(r.Context(), req)
	if err != nil {
		h.log.Warnf("analyze request failed: %v", err)
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	h.writeJSON(w, res)
}

// handleScore runs only the qualitative scorer via POST /api/score.
func (h *Handler) handleScore(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var in model.ScoreInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	res, err := h.engine.Scorer.Comprehensive(in)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	h.writeJSON(w, res)
}

// handleRisk runs only the Monte Carlo simulation via POST /api/risk.
func (h *Handler) handleRisk(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var sc model.Scenario
	if err := json.NewDecoder(r.Body).Decode(&sc); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	res, err := h.engine.Risk.Run(sc)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	h.writeJSON(w, res)
}

func (h *Handler) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.log.Errorf("encode response: %v", err)
	}
}
