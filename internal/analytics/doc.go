// Package analytics turns historical health-check scans into a statistical
// baseline of normal behavior and compares new readings against it.
//
// Components, leaf-first:
//
//	Summarize       — descriptive statistics with nearest-rank percentiles
//	EstimateTrend   — closed-form least-squares regression with R²
//	BaselineBuilder — folds scan history into per-category summaries plus
//	                  hour-of-day / weekday score patterns
//	AnomalyDetector — z-score comparison of current readings vs a baseline
//	RegressionDetector — percent drift of a recent window vs a baseline
//	FailurePredictor   — extrapolates rising indicator trends to a
//	                     time-to-threshold prediction
//	UsagePatternClassifier — first-match workload labeling from long-run
//	                         category averages (static knowledge table)
//	RecommendationRanker   — merges all signals into a priority-ordered
//	                         action list
//
// Every component is synchronous and pure given its inputs. Failures are
// values, never panics: not-enough-data is ErrInsufficientData, degenerate
// inputs (zero variance, zero denominators) become skips, and out-of-range
// configuration is rejected at construction with ErrConfig. No NaN or Inf
// ever reaches an output record.
package analytics
