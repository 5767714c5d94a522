package temporal

import (
	"math"

	"github.com/viable-systems/vsm-pattern-engine/domain/temporal"
	"github.com/viable-systems/vsm-pattern-engine/internal/numeric"
)

// detectBurst flags indices above mean+2*std as burst instances; total
// strength is Sum(magnitudes)/Sum(|values|), clamped to 1 (spec.md §4.2).
func detectBurst(window []float64, windowStart int) *temporal.Pattern {
	mean := numeric.Mean(window)
	std := numeric.StdDev(window)
	threshold := mean + 2*std

	var instances []temporal.BurstInstance
	var magnitudeSum, absSum float64
	for i, v := range window {
		absSum += math.Abs(v)
		if v > threshold {
			magnitude := v - mean
			instances = append(instances, temporal.BurstInstance{Index: windowStart + i, Magnitude: magnitude})
			magnitudeSum += magnitude
		}
	}
	if len(instances) == 0 {
		return nil
	}

	strength := 0.0
	if absSum > 0 {
		strength = magnitudeSum / absSum
	}
	if strength > 1 {
		strength = 1
	}

	return &temporal.Pattern{
		Kind:             temporal.KindBurst,
		WindowStart:      windowStart,
		Strength:         strength,
		BurstInstances:   instances,
		BurstCount:       len(instances),
		AverageMagnitude: magnitudeSum / float64(len(instances)),
	}
}
