package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/pulsehealth/pulsehealth/internal/store"
	"github.com/pulsehealth/pulsehealth/pkg/types"
)

// Handler is the HTTP handler for all /api/v1/* endpoints.
// It reads analysis state from the report store and baselines from disk and
// returns JSON responses.
type Handler struct {
	reports   *store.ReportStore
	baselines *store.BaselineStore
	mux       *http.ServeMux
}

// New creates a Handler wired to the given stores and registers all routes.
func New(reports *store.ReportStore, baselines *store.BaselineStore) http.Handler {
	h := &Handler{reports: reports, baselines: baselines, mux: http.NewServeMux()}

	h.mux.HandleFunc("/api/v1/health", h.health)
	h.mux.HandleFunc("/api/v1/machines", h.listMachines)
	h.mux.HandleFunc("/api/v1/machines/", h.machine) // subtree — extracts {id}

	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

// --- route handlers ---------------------------------------------------------

// health returns GET /api/v1/health — overall health score and state counts.
func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		jsonErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	entries := h.reports.List()
	resp := HealthResponse{
		MachineCount: len(entries),
	}

	if len(entries) == 0 {
		resp.State = types.StateUnknown
		jsonResp(w, http.StatusOK, resp)
		return
	}

	var totalScore float64
	for _, e := range entries {
		totalScore += e.Report.HealthScore
		switch e.Report.State {
		case types.StateHealthy:
			resp.HealthyCount++
		case types.StateDegraded:
			resp.DegradedCount++
		case types.StateCritical:
			resp.CriticalCount++
		default:
			resp.UnknownCount++
		}
	}

	resp.OverallScore = totalScore / float64(len(entries))
	resp.State = stateFromScore(resp.OverallScore)
	jsonResp(w, http.StatusOK, resp)
}

// listMachines returns GET /api/v1/machines — a summary per live machine.
func (h *Handler) listMachines(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		jsonErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	entries := h.reports.List()
	out := make([]MachineSummary, 0, len(entries))
	for _, e := range entries {
		out = append(out, toSummary(e))
	}
	jsonResp(w, http.StatusOK, out)
}

// machine dispatches GET /api/v1/machines/{id}[/baseline|/recommendations].
func (h *Handler) machine(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		jsonErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	rest := strings.TrimPrefix(r.URL.Path, "/api/v1/machines/")
	if rest == "" {
		// Redirect bare /api/v1/machines/ to list handler.
		h.listMachines(w, r)
		return
	}

	id, sub, _ := strings.Cut(rest, "/")
	switch sub {
	case "":
		h.getReport(w, id)
	case "baseline":
		h.getBaseline(w, id)
	case "recommendations":
		h.getRecommendations(w, id)
	default:
		jsonErr(w, http.StatusNotFound, "not found")
	}
}

// getReport returns GET /api/v1/machines/{id} — the full analysis report.
func (h *Handler) getReport(w http.ResponseWriter, id string) {
	e, ok := h.liveEntry(id)
	if !ok {
		jsonErr(w, http.StatusNotFound, "machine not found")
		return
	}
	jsonResp(w, http.StatusOK, ReportResponse{
		Report:   e.Report,
		LastSeen: e.UpdatedAt.UTC().Format(time.RFC3339),
	})
}

// getBaseline returns GET /api/v1/machines/{id}/baseline — the learned
// baseline document.
func (h *Handler) getBaseline(w http.ResponseWriter, id string) {
	b, err := h.baselines.Load(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			jsonErr(w, http.StatusNotFound, "baseline not established")
			return
		}
		jsonErr(w, http.StatusInternalServerError, "baseline unavailable")
		return
	}
	jsonResp(w, http.StatusOK, b)
}

// getRecommendations returns GET /api/v1/machines/{id}/recommendations —
// the priority-ordered action list from the latest report.
func (h *Handler) getRecommendations(w http.ResponseWriter, id string) {
	e, ok := h.liveEntry(id)
	if !ok {
		jsonErr(w, http.StatusNotFound, "machine not found")
		return
	}
	recs := e.Report.Recommendations
	if recs == nil {
		recs = []types.Recommendation{}
	}
	jsonResp(w, http.StatusOK, RecommendationsResponse{
		Machine:         id,
		Recommendations: recs,
	})
}

// liveEntry fetches the report entry for id, excluding stale entries —
// treat them as not found.
func (h *Handler) liveEntry(id string) (*store.Entry, bool) {
	e, ok := h.reports.Get(id)
	if !ok {
		return nil, false
	}
	if time.Since(e.UpdatedAt) > h.reports.TTL() {
		return nil, false
	}
	return e, true
}

// --- helpers ----------------------------------------------------------------

func jsonResp(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func jsonErr(w http.ResponseWriter, code int, msg string) {
	jsonResp(w, code, errorResponse{Error: msg})
}

// stateFromScore converts a 0–100 score to a health state string.
// Mirrors the thresholds in internal/engine.
func stateFromScore(score float64) string {
	switch {
	case score >= 85:
		return types.StateHealthy
	case score >= 60:
		return types.StateDegraded
	default:
		return types.StateCritical
	}
}

// BuildStream assembles the WebSocket broadcast payload from the live
// report entries.
func BuildStream(reports *store.ReportStore) StreamPayload {
	entries := reports.List()
	machines := make([]MachineSummary, 0, len(entries))
	for _, e := range entries {
		machines = append(machines, toSummary(e))
	}
	return StreamPayload{
		Machines:    machines,
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
	}
}

// toSummary maps a store.Entry to its list representation.
func toSummary(e *store.Entry) MachineSummary {
	rep := e.Report
	return MachineSummary{
		Machine:          rep.Machine,
		State:            rep.State,
		HealthScore:      rep.HealthScore,
		AnomalyCount:     len(rep.Anomalies),
		RegressionCount:  len(rep.Regressions),
		FailurePredicted: rep.Prediction.Predicted,
		UsagePattern:     string(rep.Usage.Type),
		LastSeen:         e.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
