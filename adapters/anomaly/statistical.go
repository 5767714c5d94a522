// Package anomaly implements the four anomaly-detection strategies
// (statistical, isolation-forest, LOF, vsm_based) and the detector that
// dispatches between them and classifies severity (spec.md §4.4).
package anomaly

import (
	"math"

	"github.com/viable-systems/vsm-pattern-engine/domain/anomaly"
	"github.com/viable-systems/vsm-pattern-engine/internal/numeric"
)

const baseZThreshold = 3.0

// dynamicThreshold adjusts the base z-score threshold by the baseline's
// tail shape: -0.5 when IQR/std > 1.5, +0.5 when IQR/std < 0.8 (spec.md
// §4.4, §9 open question a — the adjustment direction is carried over
// literally from the source, a documented and possibly inverted
// polarity: a baseline whose std is inflated by a few outliers has a
// small IQR/std and so gets the RAISED threshold, while a flat,
// uniform-like baseline with IQR/std above 1.5 gets the lowered one).
func dynamicThreshold(baseline []float64) float64 {
	std := numeric.StdDev(baseline)
	if std == 0 {
		return baseZThreshold
	}
	ratio := numeric.IQR(baseline) / std
	threshold := baseZThreshold
	switch {
	case ratio > 1.5:
		threshold -= 0.5
	case ratio < 0.8:
		threshold += 0.5
	}
	return threshold
}

// detectStatistical z-scores data against baseline's mean/std, flagging
// indices whose |z| exceeds the dynamic threshold (spec.md §4.4).
func detectStatistical(data, baseline []float64, threshold float64) []anomaly.ClassifiedAnomaly {
	mean := numeric.Mean(baseline)
	std := numeric.StdDev(baseline)
	if std == 0 {
		return nil
	}
	if threshold == 0 {
		threshold = dynamicThreshold(baseline)
	}

	var results []anomaly.ClassifiedAnomaly
	for i, v := range data {
		z := (v - mean) / std
		if math.Abs(z) > threshold {
			results = append(results, anomaly.ClassifiedAnomaly{
				Index:     i,
				Value:     v,
				Z:         z,
				Deviation: v - mean,
				Severity:  statisticalSeverity(z),
			})
		}
	}
	return results
}

func statisticalSeverity(z float64) anomaly.Severity {
	if math.Abs(z) > 4 {
		return anomaly.SeverityHigh
	}
	return anomaly.SeverityLow
}
