package analytics

import (
	"fmt"
	"math"
	"sort"

	"github.com/pulsehealth/pulsehealth/pkg/types"
)

// DefaultZThreshold is the minimum |z-score| flagged as anomalous.
const DefaultZThreshold = 3.0

// Anomaly severities. An anomaly escalates from warning to critical once it
// lies a full standard deviation beyond the threshold.
const (
	AnomalyWarning  = "warning"
	AnomalyCritical = "critical"
)

// AnomalyDetector flags current readings that lie too many standard
// deviations from their category's baseline mean.
type AnomalyDetector struct {
	threshold float64
}

// NewAnomalyDetector creates a detector. A zero threshold selects the
// default (3.0); a negative threshold is a configuration error.
func NewAnomalyDetector(threshold float64) (*AnomalyDetector, error) {
	if threshold < 0 {
		return nil, fmt.Errorf("%w: z threshold %.2f", ErrConfig, threshold)
	}
	if threshold == 0 {
		threshold = DefaultZThreshold
	}
	return &AnomalyDetector{threshold: threshold}, nil
}

// Detect compares current per-category readings against the baseline.
// Categories absent from the baseline, or whose baseline stddev is zero,
// are silently skipped — a degenerate baseline is not an error. The result
// is ordered by category name so repeated calls on unchanged inputs return
// identical lists.
func (d *AnomalyDetector) Detect(current map[types.Category]float64, baseline *types.Baseline) []types.Anomaly {
	if baseline == nil || len(current) == 0 {
		return nil
	}

	cats := make([]types.Category, 0, len(current))
	for c := range current {
		cats = append(cats, c)
	}
	sort.Slice(cats, func(i, j int) bool { return cats[i] < cats[j] })

	var out []types.Anomaly
	for _, cat := range cats {
		summary, ok := baseline.Metrics[cat]
		if !ok || summary.StdDev == 0 {
			continue
		}

		value := current[cat]
		z := (value - summary.Mean) / summary.StdDev
		if math.Abs(z) <= d.threshold {
			continue
		}

		typ := types.HighAnomaly
		if z < 0 {
			typ = types.LowAnomaly
		}
		severity := AnomalyWarning
		if math.Abs(z) >= d.threshold+1 {
			severity = AnomalyCritical
		}

		out = append(out, types.Anomaly{
			Category: cat,
			Current:  value,
			Expected: summary.Mean,
			ZScore:   z,
			Severity: severity,
			Type:     typ,
		})
	}
	return out
}
