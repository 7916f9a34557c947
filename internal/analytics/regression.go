package analytics

import (
	"fmt"
	"sort"

	"github.com/pulsehealth/pulsehealth/pkg/types"
)

// Regression detection parameters.
const (
	DefaultDriftThresholdPct = 20.0

	// minWindowScans is the smallest recent window a drift average is
	// trusted over.
	minWindowScans = 3

	// Severity bands, exclusive: drift above 50% is critical, above 30%
	// high, anything else that clears the threshold is medium.
	criticalDriftPct = 50.0
	highDriftPct     = 30.0
)

// RegressionDetector compares a recent window's per-category average score
// against the baseline average and reports sustained degradation.
type RegressionDetector struct {
	threshold float64
}

// NewRegressionDetector creates a detector. A zero threshold selects the
// default (20%); a negative threshold is a configuration error.
func NewRegressionDetector(driftThresholdPct float64) (*RegressionDetector, error) {
	if driftThresholdPct < 0 {
		return nil, fmt.Errorf("%w: drift threshold %.2f%%", ErrConfig, driftThresholdPct)
	}
	if driftThresholdPct == 0 {
		driftThresholdPct = DefaultDriftThresholdPct
	}
	return &RegressionDetector{threshold: driftThresholdPct}, nil
}

// Detect reports per-category regressions of window against baseline.
// The window must hold at least 3 scans (ErrInsufficientData otherwise).
//
// Scores are higher-is-worse, so degradation percent is the relative
// increase of the window average over the baseline average. Categories
// with a zero baseline average are skipped: any nonzero reading against a
// flat-zero baseline would be an infinite-percent drift, and the anomaly
// detector already covers new-signal cases.
func (d *RegressionDetector) Detect(window []types.Scan, baseline *types.Baseline) ([]types.Regression, error) {
	if len(window) < minWindowScans {
		return nil, fmt.Errorf("%w: window has %d scans, need %d", ErrInsufficientData, len(window), minWindowScans)
	}
	if baseline == nil {
		return nil, fmt.Errorf("%w: no baseline", ErrInsufficientData)
	}

	cats := make([]types.Category, 0, len(baseline.Metrics))
	for c := range baseline.Metrics {
		cats = append(cats, c)
	}
	sort.Slice(cats, func(i, j int) bool { return cats[i] < cats[j] })

	startDate := window[0].Timestamp

	var out []types.Regression
	for _, cat := range cats {
		baselineAvg := baseline.Metrics[cat].Mean
		if baselineAvg == 0 {
			continue
		}

		recentAvg, ok := windowAverage(window, cat)
		if !ok {
			continue
		}

		degradation := (recentAvg - baselineAvg) / baselineAvg * 100
		if degradation <= d.threshold {
			continue
		}

		severity := types.SeverityMedium
		switch {
		case degradation > criticalDriftPct:
			severity = types.SeverityCritical
		case degradation > highDriftPct:
			severity = types.SeverityHigh
		}

		out = append(out, types.Regression{
			Category:           cat,
			DegradationPercent: degradation,
			RecentAverage:      recentAvg,
			BaselineAverage:    baselineAvg,
			StartDate:          startDate,
			Severity:           severity,
		})
	}
	return out, nil
}

// windowAverage returns the mean of all sample values for cat across the
// window. ok is false when the window has no samples for the category.
func windowAverage(window []types.Scan, cat types.Category) (float64, bool) {
	var sum float64
	var n int
	for _, scan := range window {
		for _, s := range scan.Samples {
			if s.Category == cat {
				sum += s.Value
				n++
			}
		}
	}
	if n == 0 {
		return 0, false
	}
	return sum / float64(n), true
}
