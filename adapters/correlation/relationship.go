package correlation

import (
	"math"

	"github.com/viable-systems/vsm-pattern-engine/domain/correlation"
)

// DefaultThreshold is the minimum |r| a relationship must reach to be
// retained (spec.md §4.3).
const DefaultThreshold = 0.5

// extractRelationships emits a Relationship for every i<j pair whose
// |correlation| >= threshold, with confidence derived from the Fisher
// transformation's 95% interval width (spec.md §4.3). lengths holds each
// series' raw sample count; the pair's aligned length (min of the two)
// feeds the Fisher standard error.
func extractRelationships(matrix *correlation.Matrix, lengths []int, threshold float64) []correlation.Relationship {
	n := len(lengths)
	var relationships []correlation.Relationship
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			r := matrix.Get(i, j)
			strength := math.Abs(r)
			if strength < threshold {
				continue
			}
			direction := "positive"
			if r < 0 {
				direction = "negative"
			}
			alignedN := lengths[i]
			if lengths[j] < alignedN {
				alignedN = lengths[j]
			}
			relationships = append(relationships, correlation.Relationship{
				I:           i,
				J:           j,
				Correlation: r,
				Strength:    strength,
				Direction:   direction,
				Confidence:  fisherConfidence(r, alignedN),
			})
		}
	}
	return relationships
}

// fisherConfidence computes 1 - min(upper-lower, 1) on the Fisher
// z-transform's 95% interval (spec.md §4.3). n is the sample count used
// to derive the standard error; n-3 must be positive or the interval is
// undefined and confidence defaults to 0.
func fisherConfidence(r float64, n int) float64 {
	if n <= 3 {
		return 0
	}
	// clamp r away from +-1 so atanh stays finite
	clamped := math.Max(-0.999999, math.Min(0.999999, r))
	z := math.Atanh(clamped)
	se := 1.0 / math.Sqrt(float64(n-3))
	lower := math.Tanh(z - 1.96*se)
	upper := math.Tanh(z + 1.96*se)
	width := upper - lower
	if width > 1 {
		width = 1
	}
	return 1 - width
}

// strongestRelationship returns the relationship with the greatest
// strength, or nil if relationships is empty.
func strongestRelationship(relationships []correlation.Relationship) *correlation.Relationship {
	if len(relationships) == 0 {
		return nil
	}
	strongest := relationships[0]
	for _, r := range relationships[1:] {
		if r.Strength > strongest.Strength {
			strongest = r
		}
	}
	return &strongest
}
