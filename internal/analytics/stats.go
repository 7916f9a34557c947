package analytics

import (
	"math"
	"sort"

	"github.com/pulsehealth/pulsehealth/pkg/types"
)

// Summarize computes descriptive statistics over values. The second return
// is false for an empty input — callers get an explicit "no summary", never
// a panic. The input slice is not modified.
//
// Percentiles are nearest-rank: sort ascending, index = floor(n × p),
// clamped to [0, n-1]. Truncated, not interpolated — this exact rule is
// relied on by deterministic baseline comparisons.
func Summarize(values []float64) (types.StatSummary, bool) {
	n := len(values)
	if n == 0 {
		return types.StatSummary{}, false
	}

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	var sum float64
	for _, v := range sorted {
		sum += v
	}
	mean := sum / float64(n)

	var sqDiff float64
	for _, v := range sorted {
		d := v - mean
		sqDiff += d * d
	}
	stddev := math.Sqrt(sqDiff / float64(n))

	return types.StatSummary{
		Count:  n,
		Mean:   mean,
		StdDev: stddev,
		Min:    sorted[0],
		Max:    sorted[n-1],
		P50:    percentile(sorted, 0.50),
		P95:    percentile(sorted, 0.95),
		P99:    percentile(sorted, 0.99),
	}, true
}

// percentile returns the nearest-rank percentile of an ascending-sorted
// non-empty slice.
func percentile(sorted []float64, p float64) float64 {
	idx := int(math.Floor(float64(len(sorted)) * p))
	if idx < 0 {
		idx = 0
	}
	if idx > len(sorted)-1 {
		idx = len(sorted) - 1
	}
	return sorted[idx]
}
