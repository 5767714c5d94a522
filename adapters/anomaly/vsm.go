package anomaly

import (
	"math"

	"github.com/viable-systems/vsm-pattern-engine/domain/anomaly"
	"github.com/viable-systems/vsm-pattern-engine/internal/numeric"
)

// vsmRecursionDepth is fixed at 5 in this engine (spec.md §4.4, GLOSSARY).
const vsmRecursionDepth = 5.0

const (
	insufficientVarietyRatio = 0.5
	excessiveVarietyRatio    = 2.0
	recursionBreakdownSpread = 2.0
	algedonicStdMultiplier   = 4.0
)

// vsmBaseline precomputes the expected variety and thresholds the
// vsm_based method scores against (spec.md §4.4).
type vsmBaseline struct {
	expectedVariety   float64
	std               float64
	recursionDepth    float64
	algedonicThreshold float64
	viableLow         float64
	viableHigh        float64
}

// buildVSMBaseline computes variety(v) per element of baseline and
// derives the thresholds the vsm_based detector compares against.
func buildVSMBaseline(baseline []float64) vsmBaseline {
	varieties := make([]float64, len(baseline))
	for i, v := range baseline {
		varieties[i] = variety(v)
	}

	absValues := make([]float64, len(baseline))
	for i, v := range baseline {
		absValues[i] = math.Abs(v)
	}

	q1 := numeric.Percentile(varieties, 25)
	q3 := numeric.Percentile(varieties, 75)
	iqr := q3 - q1

	return vsmBaseline{
		expectedVariety:    numeric.Mean(varieties),
		std:                numeric.StdDev(varieties),
		recursionDepth:     vsmRecursionDepth,
		algedonicThreshold: numeric.Mean(absValues) + algedonicStdMultiplier*numeric.StdDev(absValues),
		viableLow:          q1 - 1.5*iqr,
		viableHigh:         q3 + 1.5*iqr,
	}
}

// variety is the scalar variety surrogate (spec.md GLOSSARY): |v|*ln(|v|+1).
// Sequence and "otherwise" cases (|unique(v)| and the constant 1) apply
// to composite inputs this detector's scalar data stream never produces,
// so only the scalar branch is exercised here.
func variety(v float64) float64 {
	abs := math.Abs(v)
	return abs * math.Log(abs+1)
}

// detectVSM classifies each value by variety_ratio against the
// baseline's expected variety, checking violations in the fixed
// evaluation order spec.md §4.4 specifies: insufficient, excessive,
// recursion breakdown, algedonic — first match wins.
func detectVSM(data []float64, baseline vsmBaseline) []anomaly.ClassifiedAnomaly {
	var results []anomaly.ClassifiedAnomaly
	for i, v := range data {
		vr := variety(v)
		ratio := 0.0
		if baseline.expectedVariety != 0 {
			ratio = vr / baseline.expectedVariety
		}

		violation, ok := classifyViolation(v, ratio, baseline)
		if !ok {
			continue
		}

		results = append(results, anomaly.ClassifiedAnomaly{
			Index:        i,
			Value:        v,
			Variety:      vr,
			VarietyRatio: ratio,
			Violation:    violation,
			Severity:     vsmSeverity(violation),
		})
	}
	return results
}

func classifyViolation(value, ratio float64, baseline vsmBaseline) (anomaly.Violation, bool) {
	switch {
	case ratio < insufficientVarietyRatio:
		return anomaly.ViolationInsufficientVariety, true
	case ratio > excessiveVarietyRatio:
		return anomaly.ViolationExcessiveVariety, true
	case math.Abs(math.Log2(math.Abs(value)+1)-baseline.recursionDepth) > recursionBreakdownSpread:
		return anomaly.ViolationRecursionBreakdown, true
	case math.Abs(value) > baseline.algedonicThreshold:
		return anomaly.ViolationAlgedonicAlert, true
	default:
		return "", false
	}
}

func vsmSeverity(v anomaly.Violation) anomaly.Severity {
	switch v {
	case anomaly.ViolationAlgedonicAlert:
		return anomaly.SeverityCritical
	case anomaly.ViolationRecursionBreakdown:
		return anomaly.SeverityHigh
	default:
		return anomaly.SeverityLow
	}
}
