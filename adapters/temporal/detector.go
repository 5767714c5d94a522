// Package temporal implements the five windowed pattern analyzers
// (periodicity, trend, burst, decay, cyclic) and the detector that
// orchestrates them across a sliding window, aggregating into a single
// PatternResult (spec.md §4.2).
package temporal

import (
	"github.com/viable-systems/vsm-pattern-engine/domain/core"
	"github.com/viable-systems/vsm-pattern-engine/domain/temporal"
	"github.com/viable-systems/vsm-pattern-engine/internal/numeric"
	"github.com/viable-systems/vsm-pattern-engine/internal/windowing"
)

// Detector runs all five temporal analyzers over a sequence's sliding
// windows and aggregates the results. It is stateless and safe for
// concurrent use (spec.md §5).
type Detector struct {
	WindowSize  int
	SlideInterval int
}

// NewDetector builds a Detector using spec.md §4.2's default window geometry.
func NewDetector() *Detector {
	return &Detector{WindowSize: windowing.DefaultSize, SlideInterval: windowing.DefaultSlide}
}

// Analyze runs the full pipeline: window the sequence, apply all five
// analyzers per window, then aggregate into a PatternResult.
func (d *Detector) Analyze(data []float64) temporal.PatternResult {
	result := temporal.PatternResult{
		ID:         core.NewPatternID(),
		Timestamp:  core.Now(),
		DataLength: len(data),
		Summary:    map[temporal.Kind]temporal.TypeSummary{},
	}

	windows := windowing.Slide(data, d.WindowSize, d.SlideInterval)
	for _, w := range windows {
		result.Patterns = append(result.Patterns, d.analyzeWindow(w)...)
	}

	d.summarize(&result)
	return result
}

func (d *Detector) analyzeWindow(w windowing.Window) []temporal.Pattern {
	var patterns []temporal.Pattern
	if p := detectPeriodicity(w.Data, w.Start); p != nil {
		patterns = append(patterns, *p)
	}
	if p := detectTrend(w.Data, w.Start); p != nil {
		patterns = append(patterns, *p)
	}
	if p := detectBurst(w.Data, w.Start); p != nil {
		patterns = append(patterns, *p)
	}
	if p := detectDecay(w.Data, w.Start); p != nil {
		patterns = append(patterns, *p)
	}
	if p := detectCyclic(w.Data, w.Start); p != nil {
		patterns = append(patterns, *p)
	}
	return patterns
}

func (d *Detector) summarize(result *temporal.PatternResult) {
	if len(result.Patterns) == 0 {
		result.Confidence = 0
		return
	}

	byType := map[temporal.Kind][]float64{}
	var allStrengths []float64
	var dominant *temporal.Pattern
	for i := range result.Patterns {
		p := &result.Patterns[i]
		byType[p.Kind] = append(byType[p.Kind], p.Strength)
		allStrengths = append(allStrengths, p.Strength)
		if dominant == nil || p.Strength > dominant.Strength {
			dominant = p
		}
	}

	for kind, strengths := range byType {
		maxStrength := strengths[0]
		for _, s := range strengths {
			if s > maxStrength {
				maxStrength = s
			}
		}
		result.Summary[kind] = temporal.TypeSummary{
			Count:           len(strengths),
			AverageStrength: numeric.Mean(strengths),
			MaxStrength:     maxStrength,
		}
	}
	result.DominantPattern = dominant

	meanStrength := numeric.Mean(allStrengths)
	consistency := typeConsistency(byType)
	result.Confidence = (meanStrength + consistency) / 2
}

// typeConsistency averages, across pattern types, (1 - var/mean) of that
// type's strengths; singleton types default to 0.5 consistency (spec.md
// §4.2's aggregate-confidence rule).
func typeConsistency(byType map[temporal.Kind][]float64) float64 {
	if len(byType) == 0 {
		return 0
	}
	var sum float64
	for _, strengths := range byType {
		if len(strengths) < 2 {
			sum += 0.5
			continue
		}
		mean := numeric.Mean(strengths)
		variance := numeric.Variance(strengths)
		if mean == 0 {
			sum += 0.5
			continue
		}
		c := 1 - variance/mean
		sum += c
	}
	return sum / float64(len(byType))
}
