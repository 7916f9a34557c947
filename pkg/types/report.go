package types

import "time"

// Health states derived from the composite health score.
const (
	StateHealthy  = "healthy"
	StateDegraded = "degraded"
	StateCritical = "critical"
	StateUnknown  = "unknown"
)

// AnalysisReport is the composite record the engine publishes for one
// machine after analyzing a scan: the inverted health score plus every
// signal list, ready for the API and WebSocket stream.
type AnalysisReport struct {
	ID          string    `json:"id"`
	Machine     string    `json:"machine"`
	GeneratedAt time.Time `json:"generated_at"`

	// HealthScore is 0–100, higher = healthier (category scores are
	// higher-is-worse; the engine inverts their mean).
	HealthScore float64 `json:"health_score"`
	State       string  `json:"state"`

	CurrentMetrics  map[Category]float64 `json:"current_metrics"`
	BaselineID      string               `json:"baseline_id,omitempty"`
	Anomalies       []Anomaly            `json:"anomalies"`
	Regressions     []Regression         `json:"regressions"`
	Prediction      FailurePrediction    `json:"prediction"`
	Usage           UsagePattern         `json:"usage"`
	Recommendations []Recommendation     `json:"recommendations"`
}
