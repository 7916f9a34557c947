package api

import "github.com/pulsehealth/pulsehealth/pkg/types"

// HealthResponse is the payload for GET /api/v1/health.
type HealthResponse struct {
	OverallScore  float64 `json:"overall_score"`
	State         string  `json:"state"`
	MachineCount  int     `json:"machine_count"`
	HealthyCount  int     `json:"healthy_count"`
	DegradedCount int     `json:"degraded_count"`
	CriticalCount int     `json:"critical_count"`
	UnknownCount  int     `json:"unknown_count"`
}

// MachineSummary is one machine entry in GET /api/v1/machines.
type MachineSummary struct {
	Machine          string  `json:"machine"`
	State            string  `json:"state"`
	HealthScore      float64 `json:"health_score"`
	AnomalyCount     int     `json:"anomaly_count"`
	RegressionCount  int     `json:"regression_count"`
	FailurePredicted bool    `json:"failure_predicted"`
	UsagePattern     string  `json:"usage_pattern"`
	LastSeen         string  `json:"last_seen"` // RFC3339
}

// ReportResponse is the payload for GET /api/v1/machines/{id}: the full
// analysis report plus when it was last refreshed.
type ReportResponse struct {
	Report   *types.AnalysisReport `json:"report"`
	LastSeen string                `json:"last_seen"` // RFC3339
}

// RecommendationsResponse is the payload for
// GET /api/v1/machines/{id}/recommendations.
type RecommendationsResponse struct {
	Machine         string                 `json:"machine"`
	Recommendations []types.Recommendation `json:"recommendations"`
}

// StreamPayload is the data broadcast over the WebSocket stream: a summary
// per live machine.
type StreamPayload struct {
	Machines    []MachineSummary `json:"machines"`
	GeneratedAt string           `json:"generated_at"` // RFC3339
}

// errorResponse is a generic JSON error body.
type errorResponse struct {
	Error string `json:"error"`
}
