package analytics

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pulsehealth/pulsehealth/pkg/types"
)

// Defaults for baseline learning.
const (
	DefaultMinScans           = 5
	DefaultLearningPeriodDays = 14
)

// BaselineBuilder folds a closed window of historical scans into one
// immutable Baseline. It never merges into a prior baseline — rebuilds
// produce a fresh snapshot.
type BaselineBuilder struct {
	minScans       int
	learningPeriod time.Duration

	now func() time.Time // injectable for deterministic tests
}

// NewBaselineBuilder creates a builder. Zero values select the defaults
// (5 scans, 14 days); negative values are a configuration error.
func NewBaselineBuilder(minScans, learningPeriodDays int) (*BaselineBuilder, error) {
	if minScans < 0 {
		return nil, fmt.Errorf("%w: min scans %d", ErrConfig, minScans)
	}
	if learningPeriodDays < 0 {
		return nil, fmt.Errorf("%w: learning period %d days", ErrConfig, learningPeriodDays)
	}
	if minScans == 0 {
		minScans = DefaultMinScans
	}
	if learningPeriodDays == 0 {
		learningPeriodDays = DefaultLearningPeriodDays
	}
	return &BaselineBuilder{
		minScans:       minScans,
		learningPeriod: time.Duration(learningPeriodDays) * 24 * time.Hour,
		now:            time.Now,
	}, nil
}

// Build aggregates scans (ordered by time) into a Baseline for machine.
//
// Preconditions: at least the configured minimum number of scans AND a time
// span of at least the learning period. A refusal is the normal outcome for
// a young machine and is reported as ErrInsufficientData with the reason.
func (b *BaselineBuilder) Build(machine string, scans []types.Scan) (*types.Baseline, error) {
	if len(scans) < b.minScans {
		return nil, fmt.Errorf("%w: have %d scans, need %d", ErrInsufficientData, len(scans), b.minScans)
	}

	span := scans[len(scans)-1].Timestamp.Sub(scans[0].Timestamp)
	if span < b.learningPeriod {
		return nil, fmt.Errorf("%w: history spans %s, need %s",
			ErrInsufficientData, span.Round(time.Hour), b.learningPeriod)
	}

	// Fold all samples into per-category value sets, and per-scan average
	// scores into time-of-day / weekday buckets. Fresh aggregates per call —
	// nothing here mutates shared state.
	byCategory := make(map[types.Category][]float64)
	byHour := make(map[int]types.PatternBucket)
	byWeekday := make(map[int]types.PatternBucket)

	for _, scan := range scans {
		for _, s := range scan.Samples {
			byCategory[s.Category] = append(byCategory[s.Category], s.Value)
		}
		score := scan.AverageScore()
		byHour = foldBucket(byHour, scan.Timestamp.Hour(), score)
		byWeekday = foldBucket(byWeekday, int(scan.Timestamp.Weekday()), score)
	}

	metrics := make(map[types.Category]types.StatSummary, len(byCategory))
	for cat, values := range byCategory {
		if summary, ok := Summarize(values); ok {
			metrics[cat] = summary
		}
	}

	return &types.Baseline{
		ID:                 uuid.NewString(),
		Machine:            machine,
		EstablishedAt:      b.now(),
		LearningPeriodDays: int(b.learningPeriod / (24 * time.Hour)),
		SampleCount:        len(scans),
		Metrics:            metrics,
		TimePatterns: types.TimePatterns{
			ByHour:    byHour,
			ByWeekday: byWeekday,
		},
	}, nil
}

// foldBucket returns buckets with score accumulated into slot key.
func foldBucket(buckets map[int]types.PatternBucket, key int, score float64) map[int]types.PatternBucket {
	b := buckets[key]
	b.Count++
	b.Total += score
	buckets[key] = b
	return buckets
}
