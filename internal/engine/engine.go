package engine

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/pulsehealth/pulsehealth/internal/analytics"
	"github.com/pulsehealth/pulsehealth/internal/config"
	"github.com/pulsehealth/pulsehealth/internal/history"
	"github.com/pulsehealth/pulsehealth/internal/store"
	"github.com/pulsehealth/pulsehealth/pkg/types"
)

// Health state thresholds on the 0–100 composite score.
const (
	healthyThreshold  = 85.0
	degradedThreshold = 60.0
)

// Engine runs the full analysis pass for one machine: it learns a baseline
// from the scan history, compares fresh scans against it, and publishes a
// composite report. All analytics components are pure; the engine owns the
// I/O around them.
type Engine struct {
	machine   string
	windowLen int

	history   *history.File
	baselines *store.BaselineStore

	builder        *analytics.BaselineBuilder
	anomalies      *analytics.AnomalyDetector
	regression     *analytics.RegressionDetector
	predictor      *analytics.FailurePredictor
	indicatorNames []string
	classifier     analytics.UsagePatternClassifier
	ranker         analytics.RecommendationRanker

	now func() time.Time // injectable for deterministic tests
}

// New wires an engine from configuration. Component construction validates
// the analytics thresholds; an out-of-range value fails here, not at
// analysis time.
func New(cfg *config.Config, hist *history.File, baselines *store.BaselineStore) (*Engine, error) {
	builder, err := analytics.NewBaselineBuilder(cfg.Engine.MinScans, cfg.Engine.LearningPeriodDays)
	if err != nil {
		return nil, fmt.Errorf("engine: baseline builder: %w", err)
	}
	anomalies, err := analytics.NewAnomalyDetector(cfg.Engine.ZThreshold)
	if err != nil {
		return nil, fmt.Errorf("engine: anomaly detector: %w", err)
	}
	regression, err := analytics.NewRegressionDetector(cfg.Engine.DriftThresholdPct)
	if err != nil {
		return nil, fmt.Errorf("engine: regression detector: %w", err)
	}

	indicators := make([]analytics.Indicator, 0, len(cfg.Engine.Indicators))
	names := make([]string, 0, len(cfg.Engine.Indicators))
	for _, ind := range cfg.Engine.Indicators {
		indicators = append(indicators, analytics.Indicator{
			Name:      ind.Name,
			Threshold: ind.Threshold,
			Weight:    ind.Weight,
		})
		names = append(names, ind.Name)
	}
	predictor, err := analytics.NewFailurePredictor(indicators)
	if err != nil {
		return nil, fmt.Errorf("engine: failure predictor: %w", err)
	}

	return &Engine{
		machine:        cfg.MachineID,
		windowLen:      cfg.Engine.WindowScans,
		history:        hist,
		baselines:      baselines,
		builder:        builder,
		anomalies:      anomalies,
		regression:     regression,
		predictor:      predictor,
		indicatorNames: names,
		now:            time.Now,
	}, nil
}

// EnsureBaseline returns the machine's baseline, building and persisting one
// from the full scan history if none is stored yet. A nil baseline with a
// nil error means the history is still too short — a normal state, analysis
// proceeds without baseline-dependent signals.
func (e *Engine) EnsureBaseline() (*types.Baseline, error) {
	baseline, err := e.baselines.Load(e.machine)
	if err == nil {
		return baseline, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	scans, err := e.history.Load()
	if err != nil {
		return nil, fmt.Errorf("engine: load history: %w", err)
	}

	baseline, err = e.builder.Build(e.machine, scans)
	if err != nil {
		if errors.Is(err, analytics.ErrInsufficientData) {
			slog.Info("engine: baseline not established yet", "machine", e.machine, "reason", err)
			return nil, nil
		}
		return nil, fmt.Errorf("engine: build baseline: %w", err)
	}

	if err := e.baselines.Save(baseline); err != nil {
		return nil, fmt.Errorf("engine: save baseline: %w", err)
	}
	slog.Info("engine: baseline established",
		"machine", e.machine, "baseline_id", baseline.ID, "scans", baseline.SampleCount)
	return baseline, nil
}

// RebuildBaseline discards any stored baseline and builds a fresh one from
// the full history. Unlike EnsureBaseline, too little history is an error
// here — the caller asked explicitly.
func (e *Engine) RebuildBaseline() (*types.Baseline, error) {
	scans, err := e.history.Load()
	if err != nil {
		return nil, fmt.Errorf("engine: load history: %w", err)
	}
	baseline, err := e.builder.Build(e.machine, scans)
	if err != nil {
		return nil, fmt.Errorf("engine: build baseline: %w", err)
	}
	if err := e.baselines.Save(baseline); err != nil {
		return nil, fmt.Errorf("engine: save baseline: %w", err)
	}
	return baseline, nil
}

// Analyze runs every detector over current against the stored history and
// baseline and assembles the composite report. Detectors that lack the data
// they need contribute empty signal lists, never errors: a young machine
// still gets a report with its health score and usage pattern.
func (e *Engine) Analyze(current types.Scan) (*types.AnalysisReport, error) {
	baseline, err := e.EnsureBaseline()
	if err != nil {
		return nil, err
	}

	scans, err := e.history.Load()
	if err != nil {
		return nil, fmt.Errorf("engine: load history: %w", err)
	}

	values := current.Values()
	report := &types.AnalysisReport{
		ID:             uuid.NewString(),
		Machine:        e.machine,
		GeneratedAt:    e.now(),
		CurrentMetrics: values,
	}
	report.HealthScore = healthScore(values)
	report.State = stateFor(report.HealthScore, len(values) > 0)

	if baseline != nil {
		report.BaselineID = baseline.ID
		report.Anomalies = e.anomalies.Detect(values, baseline)

		window, err := e.history.Tail(e.windowLen)
		if err != nil {
			return nil, fmt.Errorf("engine: load window: %w", err)
		}
		regressions, err := e.regression.Detect(window, baseline)
		if err != nil && !errors.Is(err, analytics.ErrInsufficientData) {
			return nil, fmt.Errorf("engine: regressions: %w", err)
		}
		report.Regressions = regressions
	}

	report.Prediction = e.predictor.Predict(e.indicatorSeries(scans, current))
	report.Usage = e.classifier.Classify(scans, baseline)
	report.Recommendations = e.ranker.Rank(
		current.Findings, report.Regressions, report.Anomalies, &report.Usage)

	return report, nil
}

// healthScore inverts the mean category score (higher-is-worse) into a
// 0–100 health score, clamped.
func healthScore(values map[types.Category]float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	score := 100 - sum/float64(len(values))
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// stateFor maps a health score to a state label. A scan with no readings at
// all is unknown, not critical.
func stateFor(score float64, hasReadings bool) string {
	switch {
	case !hasReadings:
		return types.StateUnknown
	case score >= healthyThreshold:
		return types.StateHealthy
	case score >= degradedThreshold:
		return types.StateDegraded
	default:
		return types.StateCritical
	}
}

// indicatorSeries builds per-indicator series for the configured indicators
// from the stored scans plus the current one, in scan order.
func (e *Engine) indicatorSeries(scans []types.Scan, current types.Scan) map[string][]float64 {
	out := make(map[string][]float64, len(e.indicatorNames))
	for _, name := range e.indicatorNames {
		series := history.IndicatorSeries(scans, name)
		if v, ok := current.Indicators[name]; ok {
			series = append(series, v)
		}
		if len(series) > 0 {
			out[name] = series
		}
	}
	return out
}
