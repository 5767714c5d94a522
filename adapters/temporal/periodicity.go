package temporal

import (
	"math"

	"github.com/viable-systems/vsm-pattern-engine/domain/temporal"
	"github.com/viable-systems/vsm-pattern-engine/internal/numeric"
)

const periodicityStrengthGate = 0.7

// detectPeriodicity finds the first local maximum of the autocorrelation
// lag profile at lag>=1 with correlation > 0.5 (spec.md §4.2), then
// estimates phase as the lag in [-period/4, +period/4] that maximizes
// Pearson correlation between the window and a reference sine at that
// period.
func detectPeriodicity(window []float64, windowStart int) *temporal.Pattern {
	ac := numeric.Autocorrelation(window)
	bestLag := -1
	for lag := 1; lag < len(ac)-1; lag++ {
		if ac[lag] > 0.5 && ac[lag] > ac[lag-1] && ac[lag] > ac[lag+1] {
			bestLag = lag
			break
		}
	}
	if bestLag < 0 {
		return nil
	}
	strength := ac[bestLag]
	if strength <= periodicityStrengthGate {
		return nil
	}

	period := float64(bestLag)
	phase := estimatePhase(window, period)

	return &temporal.Pattern{
		Kind:        temporal.KindPeriodic,
		WindowStart: windowStart,
		Strength:    strength,
		Period:      period,
		Frequency:   1.0 / period,
		Phase:       phase,
	}
}

func estimatePhase(window []float64, period float64) float64 {
	quarterPeriod := int(period / 4)
	if quarterPeriod < 1 {
		quarterPeriod = 1
	}
	bestLag := 0
	bestCorr := math.Inf(-1)
	for lag := -quarterPeriod; lag <= quarterPeriod; lag++ {
		ref := referenceSine(len(window), period, lag)
		r := numeric.Pearson(window, ref)
		if r > bestCorr {
			bestCorr = r
			bestLag = lag
		}
	}
	return 2 * math.Pi * float64(bestLag) / period
}

func referenceSine(n int, period float64, lag int) []float64 {
	ref := make([]float64, n)
	for i := 0; i < n; i++ {
		ref[i] = math.Sin(2 * math.Pi * float64(i+lag) / period)
	}
	return ref
}
