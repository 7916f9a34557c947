package analytics

import "github.com/pulsehealth/pulsehealth/pkg/types"

// EstimateTrend fits an ordinary least-squares line to y using unit-spaced
// X values 0..n-1. The second return is false when no trend can be fitted:
// fewer than two points, or zero X variance.
func EstimateTrend(y []float64) (types.TrendResult, bool) {
	x := make([]float64, len(y))
	for i := range x {
		x[i] = float64(i)
	}
	return EstimateTrendXY(x, y)
}

// EstimateTrendXY fits an ordinary least-squares line to the paired series
// (x[i], y[i]). Requirements: len(x) == len(y) and n ≥ 2; the X-variance
// denominator must be nonzero. Violations return ok=false — never a panic
// or a divide-by-zero.
//
// RSquared = 1 − SSresidual/SStotal and is deliberately not clamped: a fit
// worse than the mean line yields a negative value. An all-equal Y series
// has SStotal == 0 and is reported as RSquared = 1 (the zero-slope line is
// an exact fit).
func EstimateTrendXY(x, y []float64) (types.TrendResult, bool) {
	n := len(y)
	if n < 2 || len(x) != n {
		return types.TrendResult{}, false
	}

	var sumX, sumY, sumXY, sumXX float64
	for i := 0; i < n; i++ {
		sumX += x[i]
		sumY += y[i]
		sumXY += x[i] * y[i]
		sumXX += x[i] * x[i]
	}

	denom := float64(n)*sumXX - sumX*sumX
	if denom == 0 {
		return types.TrendResult{}, false
	}

	slope := (float64(n)*sumXY - sumX*sumY) / denom
	intercept := (sumY - slope*sumX) / float64(n)

	meanY := sumY / float64(n)
	var ssTot, ssRes float64
	for i := 0; i < n; i++ {
		dt := y[i] - meanY
		ssTot += dt * dt
		dr := y[i] - (slope*x[i] + intercept)
		ssRes += dr * dr
	}

	r2 := 1.0
	if ssTot != 0 {
		r2 = 1 - ssRes/ssTot
	}

	dir := types.TrendStable
	switch {
	case slope > 0:
		dir = types.TrendIncreasing
	case slope < 0:
		dir = types.TrendDecreasing
	}

	return types.TrendResult{
		Slope:     slope,
		Intercept: intercept,
		RSquared:  r2,
		Direction: dir,
	}, true
}
