package analytics

import (
	"fmt"
	"sort"

	"github.com/pulsehealth/pulsehealth/pkg/types"
)

// Ranker merge thresholds: a finding this bad on its own becomes a
// critical action item.
const (
	criticalFindingScore  = 45.0
	criticalFindingImpact = 7.0

	// maxPatternRecommendations caps how many usage-pattern tips are
	// appended to the action list.
	maxPatternRecommendations = 3
)

// RecommendationRanker merges every analysis signal into one
// priority-ordered action list.
type RecommendationRanker struct{}

// Rank builds the action list. Merge order is fixed:
//
//  1. findings with score > 45 and impact > 7 → critical
//  2. each regression → its own severity
//  3. each anomaly → high
//  4. the first 3 usage-pattern recommendations → low
//
// The result is stable-sorted by priority (critical < high < medium < low);
// equal priorities keep their merge-insertion order.
func (RecommendationRanker) Rank(
	findings []types.Finding,
	regressions []types.Regression,
	anomalies []types.Anomaly,
	usage *types.UsagePattern,
) []types.Recommendation {
	var out []types.Recommendation

	for _, f := range findings {
		if f.Score > criticalFindingScore && f.Impact > criticalFindingImpact {
			out = append(out, types.Recommendation{
				Priority: types.PriorityCritical,
				Category: f.Category,
				Issue:    f.Message,
				Action:   fmt.Sprintf("remediate the %s issue reported by the health check", f.Category),
				Impact:   "severe current health impact",
			})
		}
	}

	for _, r := range regressions {
		out = append(out, types.Recommendation{
			Priority: regressionPriority(r.Severity),
			Category: r.Category,
			Issue: fmt.Sprintf("%s degraded %.0f%% against baseline (%.1f vs %.1f)",
				r.Category, r.DegradationPercent, r.RecentAverage, r.BaselineAverage),
			Action: fmt.Sprintf("investigate changes to %s since %s",
				r.Category, r.StartDate.Format("2006-01-02")),
			Impact: "sustained performance regression",
		})
	}

	for _, a := range anomalies {
		out = append(out, types.Recommendation{
			Priority: types.PriorityHigh,
			Category: a.Category,
			Issue: fmt.Sprintf("%s reading %.1f is %.1f standard deviations from baseline mean %.1f",
				a.Category, a.Current, a.ZScore, a.Expected),
			Action: fmt.Sprintf("verify %s workload and sensors", a.Category),
			Impact: "abnormal behavior vs learned baseline",
		})
	}

	if usage != nil {
		for i, tip := range usage.Recommendations {
			if i >= maxPatternRecommendations {
				break
			}
			out = append(out, types.Recommendation{
				Priority: types.PriorityLow,
				Category: types.CategorySystem,
				Issue:    fmt.Sprintf("usage pattern: %s", usage.Type),
				Action:   tip,
				Impact:   "optimization for the detected workload",
			})
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Priority.Rank() < out[j].Priority.Rank()
	})
	return out
}

// regressionPriority maps a regression severity onto an action priority.
func regressionPriority(s types.Severity) types.Priority {
	switch s {
	case types.SeverityCritical:
		return types.PriorityCritical
	case types.SeverityHigh:
		return types.PriorityHigh
	default:
		return types.PriorityMedium
	}
}
