package analytics

import (
	"fmt"
	"sort"

	"github.com/pulsehealth/pulsehealth/pkg/types"
)

// Failure extrapolation parameters.
const (
	// slopeNoiseFloor rejects flat or barely-rising indicator trends.
	slopeNoiseFloor = 0.1

	// predictionHorizonDays bounds how far ahead an extrapolation is
	// trusted. Crossings further out than this are ignored.
	predictionHorizonDays = 60.0

	// minIndicatorPoints is the shortest history a trend is fitted over.
	minIndicatorPoints = 3

	// Recommendation bands on the aggregated days-remaining estimate.
	urgentDays    = 7.0
	scheduledDays = 30.0
)

// Prediction recommendation text per band.
const (
	RecommendUrgent    = "urgent: back up data and replace the failing component immediately"
	RecommendScheduled = "schedule component replacement at high priority within the month"
	RecommendMonitor   = "monitor the trend; no immediate action required"
)

// Reasons attached to a non-prediction, distinguishable by callers.
const (
	ReasonInsufficientHistory = "insufficient indicator history"
	ReasonNoConcerningTrend   = "no concerning trend"
)

// Indicator names a raw counter to extrapolate, with its failure threshold
// and the weight its estimate carries in the aggregate.
type Indicator struct {
	Name      string
	Threshold float64
	Weight    float64
}

// FailurePredictor extrapolates rising indicator trends to a predicted
// threshold crossing.
type FailurePredictor struct {
	indicators []Indicator
}

// NewFailurePredictor creates a predictor over the named indicators.
// Thresholds must be positive; a zero weight selects 1.0 and a negative
// weight is a configuration error.
func NewFailurePredictor(indicators []Indicator) (*FailurePredictor, error) {
	cleaned := make([]Indicator, 0, len(indicators))
	for _, ind := range indicators {
		if ind.Name == "" {
			return nil, fmt.Errorf("%w: indicator with empty name", ErrConfig)
		}
		if ind.Threshold <= 0 {
			return nil, fmt.Errorf("%w: indicator %q threshold %.2f", ErrConfig, ind.Name, ind.Threshold)
		}
		if ind.Weight < 0 {
			return nil, fmt.Errorf("%w: indicator %q weight %.2f", ErrConfig, ind.Name, ind.Weight)
		}
		if ind.Weight == 0 {
			ind.Weight = 1.0
		}
		cleaned = append(cleaned, ind)
	}
	return &FailurePredictor{indicators: cleaned}, nil
}

// Predict fits a trend per indicator history (one value per day, oldest
// first) and keeps only concerning ones: slope above the noise floor with a
// threshold crossing inside the horizon. Kept estimates are combined into a
// weight-weighted days-remaining average; confidence is the plain average
// of the kept fits' R².
//
// With zero qualifying indicators the prediction is negative, and Reason
// distinguishes "no history long enough to fit" from "trends fitted but
// none concerning".
func (p *FailurePredictor) Predict(history map[string][]float64) types.FailurePrediction {
	var (
		weightedDays float64
		totalWeight  float64
		r2Sum        float64
		kept         []string
		fittedAny    bool
	)

	for _, ind := range p.indicators {
		series := history[ind.Name]
		if len(series) < minIndicatorPoints {
			continue
		}

		trend, ok := EstimateTrend(series)
		if !ok {
			continue
		}
		fittedAny = true

		if trend.Slope <= slopeNoiseFloor {
			continue
		}

		latest := series[len(series)-1]
		days := (ind.Threshold - latest) / trend.Slope
		if days <= 0 || days >= predictionHorizonDays {
			continue
		}

		weightedDays += days * ind.Weight
		totalWeight += ind.Weight
		r2Sum += trend.RSquared
		kept = append(kept, ind.Name)
	}

	if len(kept) == 0 {
		reason := ReasonNoConcerningTrend
		if !fittedAny {
			reason = ReasonInsufficientHistory
		}
		return types.FailurePrediction{Predicted: false, Reason: reason}
	}

	sort.Strings(kept)
	days := weightedDays / totalWeight

	recommendation := RecommendMonitor
	switch {
	case days < urgentDays:
		recommendation = RecommendUrgent
	case days < scheduledDays:
		recommendation = RecommendScheduled
	}

	return types.FailurePrediction{
		Predicted:          true,
		DaysRemaining:      days,
		Confidence:         r2Sum / float64(len(kept)),
		CriticalAttributes: kept,
		Recommendation:     recommendation,
	}
}
