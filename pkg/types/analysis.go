package types

import "time"

// AnomalyType distinguishes readings above the baseline mean from readings
// below it.
type AnomalyType string

const (
	HighAnomaly AnomalyType = "high"
	LowAnomaly  AnomalyType = "low"
)

// Anomaly is a current reading that lies beyond the z-score threshold from
// its category's baseline mean.
type Anomaly struct {
	Category Category    `json:"category"`
	Current  float64     `json:"current"`
	Expected float64     `json:"expected"`
	ZScore   float64     `json:"z_score"`
	Severity string      `json:"severity"` // "warning" | "critical"
	Type     AnomalyType `json:"type"`
}

// Severity grades a detected regression.
type Severity string

const (
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// Regression is a sustained drift of a recent window's average score above
// the baseline average for the same category.
type Regression struct {
	Category           Category  `json:"category"`
	DegradationPercent float64   `json:"degradation_percent"`
	RecentAverage      float64   `json:"recent_average"`
	BaselineAverage    float64   `json:"baseline_average"`
	StartDate          time.Time `json:"start_date"`
	Severity           Severity  `json:"severity"`
}

// FailurePrediction is the result of extrapolating indicator trends to a
// threshold crossing. When Predicted is false, Reason explains why no
// prediction was made.
type FailurePrediction struct {
	Predicted          bool     `json:"predicted"`
	Reason             string   `json:"reason,omitempty"`
	DaysRemaining      float64  `json:"days_remaining,omitempty"`
	Confidence         float64  `json:"confidence,omitempty"`
	CriticalAttributes []string `json:"critical_attributes,omitempty"`
	Recommendation     string   `json:"recommendation,omitempty"`
}

// UsagePatternType is a coarse workload label for a machine.
type UsagePatternType string

const (
	PatternGaming          UsagePatternType = "gaming"
	PatternDevelopment     UsagePatternType = "development"
	PatternContentCreation UsagePatternType = "content-creation"
	PatternOffice          UsagePatternType = "office"
	PatternServer          UsagePatternType = "server"
	PatternGeneralUse      UsagePatternType = "general-use"
)

// UsagePattern is the classified workload type together with the static
// profile text drawn from the knowledge table.
type UsagePattern struct {
	Type            UsagePatternType `json:"type"`
	Confidence      float64          `json:"confidence"`
	Characteristics []string         `json:"characteristics"`
	Recommendations []string         `json:"recommendations"`
}

// Priority orders recommendations for the action list.
type Priority string

const (
	PriorityCritical Priority = "critical"
	PriorityHigh     Priority = "high"
	PriorityMedium   Priority = "medium"
	PriorityLow      Priority = "low"
)

// Rank returns the sort rank of the priority: lower sorts first.
// Unknown priorities sort last.
func (p Priority) Rank() int {
	switch p {
	case PriorityCritical:
		return 0
	case PriorityHigh:
		return 1
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 3
	default:
		return 4
	}
}

// Recommendation is one priority-ordered action item synthesized from the
// analysis signals.
type Recommendation struct {
	Priority Priority `json:"priority"`
	Category Category `json:"category"`
	Issue    string   `json:"issue"`
	Action   string   `json:"action"`
	Impact   string   `json:"impact"`
}
