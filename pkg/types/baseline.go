package types

import "time"

// PatternBucket accumulates per-scan average scores for one time slot
// (an hour of day or a day of week).
type PatternBucket struct {
	Count int     `json:"count"`
	Total float64 `json:"total"`
}

// Average returns the mean score for the bucket, or 0 for an empty bucket.
func (b PatternBucket) Average() float64 {
	if b.Count == 0 {
		return 0
	}
	return b.Total / float64(b.Count)
}

// TimePatterns aggregates scan scores by hour of day (0–23) and weekday
// (0 = Sunday, matching time.Weekday).
type TimePatterns struct {
	ByHour    map[int]PatternBucket `json:"by_hour"`
	ByWeekday map[int]PatternBucket `json:"by_weekday"`
}

// Baseline is the persisted statistical summary of a machine's "normal"
// behavior, built once from a closed historical window. A baseline is never
// partially mutated: rebuilds replace it wholesale, so concurrent readers
// need no locking.
type Baseline struct {
	ID                 string    `json:"id"`
	Machine            string    `json:"machine"`
	EstablishedAt      time.Time `json:"established_at"`
	LearningPeriodDays int       `json:"learning_period_days"`

	// SampleCount is the number of scans folded into this baseline.
	SampleCount int `json:"sample_count"`

	Metrics      map[Category]StatSummary `json:"metrics"`
	TimePatterns TimePatterns             `json:"time_patterns"`
}
