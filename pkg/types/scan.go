package types

import "time"

// Sample is one scalar metric reading: a category score at a point in time.
// Samples are immutable once produced by a collector.
type Sample struct {
	Category  Category  `json:"category"`
	Value     float64   `json:"value"`
	Timestamp time.Time `json:"timestamp"`
}

// Finding is a single health-check result attached to a scan: a scored,
// human-readable issue. Score follows the higher-is-worse convention;
// Impact grades how much the issue affects the machine (0–10).
type Finding struct {
	Category Category `json:"category"`
	Score    float64  `json:"score"`
	Impact   float64  `json:"impact"`
	Message  string   `json:"message"`
}

// Scan is one timestamped health-check pass over a machine: the per-category
// samples it measured, the findings it raised, and raw indicator readings
// (e.g. SMART counters) keyed by indicator name.
type Scan struct {
	Timestamp  time.Time          `json:"timestamp"`
	Samples    []Sample           `json:"samples"`
	Findings   []Finding          `json:"findings,omitempty"`
	Indicators map[string]float64 `json:"indicators,omitempty"`
}

// Values returns the per-category average of the scan's samples.
func (s Scan) Values() map[Category]float64 {
	sums := make(map[Category]float64)
	counts := make(map[Category]int)
	for _, sm := range s.Samples {
		sums[sm.Category] += sm.Value
		counts[sm.Category]++
	}
	out := make(map[Category]float64, len(sums))
	for c, sum := range sums {
		out[c] = sum / float64(counts[c])
	}
	return out
}

// AverageScore returns the mean of all sample values in the scan, or 0 for
// a scan with no samples.
func (s Scan) AverageScore() float64 {
	if len(s.Samples) == 0 {
		return 0
	}
	var sum float64
	for _, sm := range s.Samples {
		sum += sm.Value
	}
	return sum / float64(len(s.Samples))
}
