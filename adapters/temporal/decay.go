package temporal

import (
	"math"

	"github.com/viable-systems/vsm-pattern-engine/domain/temporal"
	"github.com/viable-systems/vsm-pattern-engine/internal/numeric"
)

const (
	decaySlopeGate    = -0.01
	decayRSquaredGate = 0.85
)

// detectDecay fits a log-linear OLS over the window: non-positive values
// have ln(y) substituted by 0 rather than the window being rejected
// (spec.md §4.2, §9 open question e — a documented fit-bias, not a bug
// to silently fix). Emits only when slope < -0.01 and r^2 > 0.85.
func detectDecay(window []float64, windowStart int) *temporal.Pattern {
	logValues := make([]float64, len(window))
	for i, v := range window {
		if v > 0 {
			logValues[i] = math.Log(v)
		} else {
			logValues[i] = 0
		}
	}

	slope, _, rSquared := numeric.LinearRegression(nil, logValues)
	if slope >= decaySlopeGate || rSquared <= decayRSquaredGate {
		return nil
	}

	decayRate := -slope
	halfLife := math.Log(2) / decayRate

	return &temporal.Pattern{
		Kind:                temporal.KindDecay,
		WindowStart:         windowStart,
		Strength:            rSquared,
		DecayRate:           decayRate,
		HalfLife:            halfLife,
		RSquared:            rSquared,
		ProjectedTimeToOneP: math.Log(100) / decayRate,
	}
}
