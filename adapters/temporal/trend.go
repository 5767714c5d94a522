package temporal

import (
	"math"

	"github.com/viable-systems/vsm-pattern-engine/domain/temporal"
	"github.com/viable-systems/vsm-pattern-engine/internal/numeric"
)

const (
	trendFlatSlope = 0.01
	trendRSquaredGate = 0.8
)

// detectTrend fits OLS on (0..n-1, y); emits only when r^2 > 0.8
// (spec.md §4.2).
func detectTrend(window []float64, windowStart int) *temporal.Pattern {
	slope, _, rSquared := numeric.LinearRegression(nil, window)
	if rSquared <= trendRSquaredGate {
		return nil
	}

	subtype := temporal.TrendFlat
	direction := "flat"
	switch {
	case slope > trendFlatSlope:
		subtype = temporal.TrendIncreasing
		direction = "increasing"
	case slope < -trendFlatSlope:
		subtype = temporal.TrendDecreasing
		direction = "decreasing"
	}

	return &temporal.Pattern{
		Kind:         temporal.KindTrend,
		WindowStart:  windowStart,
		Strength:     rSquared,
		TrendKind:    subtype,
		Slope:        slope,
		RSquared:     rSquared,
		Direction:    direction,
		AbsoluteRate: math.Abs(slope),
	}
}
