package analytics

import "github.com/pulsehealth/pulsehealth/pkg/types"

// Usage classification thresholds over long-run category averages.
// Branches are evaluated in fixed order; the first match wins.
const (
	gamingGPUAvg  = 30.0
	gamingCPUAvg  = 20.0
	devCPUAvg     = 25.0
	devMemoryAvg  = 30.0
	contentMemAvg = 40.0
	contentGPUAvg = 25.0
	contentDisk   = 30.0
	officeCPUAvg  = 15.0
	officeMemAvg  = 20.0
	officeGPUAvg  = 10.0

	// Server gating: only trusted with enough independent scans behind the
	// baseline and a near-flat CPU history.
	serverMinScans    = 20
	serverCPUVariance = 50.0
)

// UsagePatternClassifier labels a machine's workload type from long-run
// category averages. Classification is deterministic: a fixed first-match
// decision list, with all profile text drawn from the static knowledge
// table in knowledge.go.
type UsagePatternClassifier struct{}

// Classify evaluates the decision list against per-category averages over
// scans. The baseline is consulted only to gate the Server branch (scan
// count); a nil baseline simply makes Server unreachable.
//
// A history with no samples at all is general-use: missing categories
// average to zero, which would otherwise satisfy the Office branch's
// all-below-threshold test on no evidence.
func (UsagePatternClassifier) Classify(scans []types.Scan, baseline *types.Baseline) types.UsagePattern {
	avg := historyAverages(scans)
	if len(avg) == 0 {
		return lookupPattern(types.PatternGeneralUse)
	}

	cpu := avg[types.CategoryCPU]
	mem := avg[types.CategoryMemory]
	gpu := avg[types.CategoryGPU]
	disk := avg[types.CategoryDisk]

	switch {
	case gpu > gamingGPUAvg && cpu > gamingCPUAvg:
		return lookupPattern(types.PatternGaming)

	case cpu > devCPUAvg && mem > devMemoryAvg:
		return lookupPattern(types.PatternDevelopment)

	case mem > contentMemAvg && (gpu > contentGPUAvg || disk > contentDisk):
		return lookupPattern(types.PatternContentCreation)

	case cpu < officeCPUAvg && mem < officeMemAvg && gpu < officeGPUAvg:
		return lookupPattern(types.PatternOffice)

	case baseline != nil && baseline.SampleCount > serverMinScans &&
		cpuVariance(scans) < serverCPUVariance:
		return lookupPattern(types.PatternServer)

	default:
		return lookupPattern(types.PatternGeneralUse)
	}
}

// historyAverages returns the per-category mean of all sample values across
// the scan history.
func historyAverages(scans []types.Scan) map[types.Category]float64 {
	sums := make(map[types.Category]float64)
	counts := make(map[types.Category]int)
	for _, scan := range scans {
		for _, s := range scan.Samples {
			sums[s.Category] += s.Value
			counts[s.Category]++
		}
	}
	out := make(map[types.Category]float64, len(sums))
	for c, sum := range sums {
		out[c] = sum / float64(counts[c])
	}
	return out
}

// cpuVariance returns the population variance of per-scan CPU averages
// across the history. Scans without CPU samples are excluded.
func cpuVariance(scans []types.Scan) float64 {
	var values []float64
	for _, scan := range scans {
		if v, ok := scan.Values()[types.CategoryCPU]; ok {
			values = append(values, v)
		}
	}
	summary, ok := Summarize(values)
	if !ok {
		return 0
	}
	return summary.StdDev * summary.StdDev
}
