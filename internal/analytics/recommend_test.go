package analytics

import (
	"testing"
	"time"

	"github.com/pulsehealth/pulsehealth/pkg/types"
)

func TestRecommendationRanker_MergeAndOrder(t *testing.T) {
	var r RecommendationRanker

	findings := []types.Finding{
		{Category: types.CategoryDisk, Score: 60, Impact: 9, Message: "disk nearly full"},
		{Category: types.CategoryCPU, Score: 50, Impact: 5, Message: "moderate load"}, // impact too low
		{Category: types.CategoryGPU, Score: 40, Impact: 9, Message: "minor"},         // score too low
	}
	regressions := []types.Regression{
		{Category: types.CategoryMemory, DegradationPercent: 35, RecentAverage: 27, BaselineAverage: 20,
			StartDate: time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC), Severity: types.SeverityHigh},
		{Category: types.CategoryNetwork, DegradationPercent: 25, RecentAverage: 12.5, BaselineAverage: 10,
			StartDate: time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC), Severity: types.SeverityMedium},
	}
	anomalies := []types.Anomaly{
		{Category: types.CategoryThermal, Current: 90, Expected: 40, ZScore: 5, Severity: AnomalyCritical, Type: types.HighAnomaly},
	}
	usage := lookupPattern(types.PatternDevelopment)

	got := r.Rank(findings, regressions, anomalies, &usage)

	// 1 critical finding + 2 regressions + 1 anomaly + 3 pattern tips.
	if len(got) != 7 {
		t.Fatalf("got %d recommendations, want 7", len(got))
	}

	wantPriorities := []types.Priority{
		types.PriorityCritical, // disk finding
		types.PriorityHigh,     // memory regression
		types.PriorityHigh,     // thermal anomaly
		types.PriorityMedium,   // network regression
		types.PriorityLow, types.PriorityLow, types.PriorityLow,
	}
	for i, want := range wantPriorities {
		if got[i].Priority != want {
			t.Errorf("got[%d].Priority = %q, want %q", i, got[i].Priority, want)
		}
	}

	// Stable sort: within the High band, the regression was merged before
	// the anomaly and must stay first.
	if got[1].Category != types.CategoryMemory {
		t.Errorf("got[1].Category = %q, want memory (merge order preserved)", got[1].Category)
	}
	if got[2].Category != types.CategoryThermal {
		t.Errorf("got[2].Category = %q, want thermal", got[2].Category)
	}

	if got[0].Issue != "disk nearly full" {
		t.Errorf("got[0].Issue = %q", got[0].Issue)
	}
}

func TestRecommendationRanker_PatternTipsCapped(t *testing.T) {
	var r RecommendationRanker

	usage := types.UsagePattern{
		Type: types.PatternGaming,
		Recommendations: []string{
			"one", "two", "three", "four", "five",
		},
	}

	got := r.Rank(nil, nil, nil, &usage)
	if len(got) != 3 {
		t.Fatalf("got %d recommendations, want 3 (capped)", len(got))
	}
	for i, want := range []string{"one", "two", "three"} {
		if got[i].Action != want {
			t.Errorf("got[%d].Action = %q, want %q", i, got[i].Action, want)
		}
		if got[i].Priority != types.PriorityLow {
			t.Errorf("got[%d].Priority = %q, want low", i, got[i].Priority)
		}
	}
}

func TestRecommendationRanker_RegressionSeverityMapping(t *testing.T) {
	var r RecommendationRanker

	regs := []types.Regression{
		{Category: types.CategoryCPU, Severity: types.SeverityCritical},
		{Category: types.CategoryMemory, Severity: types.SeverityHigh},
		{Category: types.CategoryDisk, Severity: types.SeverityMedium},
	}

	got := r.Rank(nil, regs, nil, nil)
	if len(got) != 3 {
		t.Fatalf("got %d recommendations, want 3", len(got))
	}
	if got[0].Priority != types.PriorityCritical || got[0].Category != types.CategoryCPU {
		t.Errorf("got[0] = %+v, want critical cpu", got[0])
	}
	if got[1].Priority != types.PriorityHigh {
		t.Errorf("got[1].Priority = %q, want high", got[1].Priority)
	}
	if got[2].Priority != types.PriorityMedium {
		t.Errorf("got[2].Priority = %q, want medium", got[2].Priority)
	}
}

func TestRecommendationRanker_EmptyInputs(t *testing.T) {
	var r RecommendationRanker
	if got := r.Rank(nil, nil, nil, nil); len(got) != 0 {
		t.Errorf("got %d recommendations from empty inputs, want 0", len(got))
	}
}
