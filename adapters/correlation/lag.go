package correlation

import (
	"math"

	"github.com/viable-systems/vsm-pattern-engine/internal/numeric"
)

// LagResult is the outcome of an optimal-lag search: the lag (positive
// shifts b forward relative to a) whose shifted Pearson correlation has
// the largest magnitude.
type LagResult struct {
	OptimalLag  int
	Correlation float64
}

// findOptimalLag searches lag in [-maxLag, +maxLag], maxLag =
// floor(min(|a|,|b|)/4), shifting the series and re-correlating; the
// optimal lag is the argmax of |r| (spec.md §4.3).
func findOptimalLag(a, b []float64) LagResult {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	maxLag := n / 4
	best := LagResult{}
	bestAbs := -1.0
	for lag := -maxLag; lag <= maxLag; lag++ {
		sa, sb := shift(a, b, lag)
		if len(sa) < 2 {
			continue
		}
		r := numeric.Pearson(sa, sb)
		if math.Abs(r) > bestAbs {
			bestAbs = math.Abs(r)
			best = LagResult{OptimalLag: lag, Correlation: r}
		}
	}
	return best
}

// shift aligns a and b with b shifted by lag relative to a: positive lag
// means b lags a by lag steps, so a[0:n-lag] is compared to b[lag:n].
func shift(a, b []float64, lag int) ([]float64, []float64) {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	if lag >= 0 {
		if lag >= n {
			return nil, nil
		}
		return a[:n-lag], b[lag:n]
	}
	neg := -lag
	if neg >= n {
		return nil, nil
	}
	return a[neg:n], b[:n-neg]
}
