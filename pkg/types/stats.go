package types

// StatSummary holds descriptive statistics over one category's sample set.
// Percentiles are nearest-rank (see analytics.Summarize), so for any
// non-empty input: Min ≤ P50 ≤ P95 ≤ P99 ≤ Max and StdDev ≥ 0.
type StatSummary struct {
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"stddev"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	P50    float64 `json:"p50"`
	P95    float64 `json:"p95"`
	P99    float64 `json:"p99"`
}

// TrendDirection labels the sign of a fitted slope.
type TrendDirection string

const (
	TrendIncreasing TrendDirection = "increasing"
	TrendDecreasing TrendDirection = "decreasing"
	TrendStable     TrendDirection = "stable"
)

// TrendResult is a least-squares linear fit over an ordered series.
// RSquared is not clamped — a pathological fit may legitimately yield a
// negative value.
type TrendResult struct {
	Slope     float64        `json:"slope"`
	Intercept float64        `json:"intercept"`
	RSquared  float64        `json:"r_squared"`
	Direction TrendDirection `json:"direction"`
}
