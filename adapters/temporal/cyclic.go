package temporal

import (
	"github.com/viable-systems/vsm-pattern-engine/domain/temporal"
	"github.com/viable-systems/vsm-pattern-engine/internal/numeric"
)

const minCyclesToEmit = 2

// detectCyclic finds zero-crossings of the mean-centered window; a cycle
// spans consecutive crossings. Emits only when at least 2 cycles are
// found (spec.md §4.2). Regularity = 1/(1+cv), cv = std(durations)/mean(durations).
func detectCyclic(window []float64, windowStart int) *temporal.Pattern {
	mean := numeric.Mean(window)
	centered := make([]float64, len(window))
	for i, v := range window {
		centered[i] = v - mean
	}

	var crossings []int
	for i := 1; i < len(centered); i++ {
		if (centered[i-1] < 0 && centered[i] >= 0) || (centered[i-1] >= 0 && centered[i] < 0) {
			crossings = append(crossings, i)
		}
	}
	if len(crossings) < minCyclesToEmit+1 {
		return nil
	}

	var cycles []temporal.Cycle
	durations := make([]float64, 0, len(crossings)-1)
	for i := 1; i < len(crossings); i++ {
		start := crossings[i-1]
		end := crossings[i]
		duration := end - start
		cycles = append(cycles, temporal.Cycle{
			StartIndex: windowStart + start,
			EndIndex:   windowStart + end,
			Duration:   duration,
		})
		durations = append(durations, float64(duration))
	}
	if len(cycles) < minCyclesToEmit {
		return nil
	}

	meanDuration := numeric.Mean(durations)
	stdDuration := numeric.StdDev(durations)
	cv := 0.0
	if meanDuration != 0 {
		cv = stdDuration / meanDuration
	}
	regularity := 1.0 / (1.0 + cv)

	return &temporal.Pattern{
		Kind:        temporal.KindCyclic,
		WindowStart: windowStart,
		Strength:    regularity,
		Cycles:      cycles,
		Regularity:  regularity,
		Variability: cv,
	}
}
