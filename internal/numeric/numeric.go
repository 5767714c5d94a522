// Package numeric implements the pure statistical primitives the temporal
// and correlation subsystems are built on: central tendency, dispersion,
// ranking, the four pairwise correlation methods, mutual information,
// ordinary least squares, and autocorrelation.
//
// Every function here is pure on a finite-length slice of finite reals;
// callers are responsible for filtering out NaN/Inf before calling in.
// Neither this package nor the analyzers built on it check for
// non-finite values.
package numeric

import (
	"math"
	"sort"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"
)

// correlation method weights (spec.md §4.3 multi-method blend).
const (
	WeightPearson  = 1.0
	WeightSpearman = 0.9
	WeightKendall  = 0.8
	WeightMI       = 1.1
)

// Mean returns the arithmetic mean, 0 for an empty slice.
func Mean(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}
	return stat.Mean(data, nil)
}

// Variance returns the population variance (divide by n, not n-1).
func Variance(data []float64) float64 {
	n := len(data)
	if n == 0 {
		return 0
	}
	m := Mean(data)
	sum := 0.0
	for _, v := range data {
		d := v - m
		sum += d * d
	}
	return sum / float64(n)
}

// StdDev returns the population standard deviation.
func StdDev(data []float64) float64 {
	return math.Sqrt(Variance(data))
}

// IQR returns the interquartile range using the quartile-position rule
// spec.md §4.1 specifies: positions at floor(n/4) and floor(3n/4) on a
// sorted copy, no interpolation. This intentionally diverges from
// montanaflynn's stats.Percentile (which interpolates); IQR uses the
// floor-indexed rule here, while the one place that needs interpolated
// Q1/Q3 (the VSM baseline's viable range) calls Percentile below.
func IQR(data []float64) float64 {
	n := len(data)
	if n == 0 {
		return 0
	}
	sorted := append([]float64(nil), data...)
	sort.Float64s(sorted)
	q1 := sorted[n/4]
	q3 := sorted[3*n/4]
	if 3*n/4 >= n {
		q3 = sorted[n-1]
	}
	return q3 - q1
}

// Percentile wraps montanaflynn/stats' interpolated percentile, used by
// the VSM baseline where spec.md calls for Q1/Q3 rather than the
// floor-indexed IQR rule above.
func Percentile(data []float64, p float64) float64 {
	if len(data) == 0 {
		return 0
	}
	sorted := append([]float64(nil), data...)
	v, err := stats.Percentile(sorted, p)
	if err != nil {
		return 0
	}
	return v
}

// Rank returns ascending ranks 1..n. Ties receive distinct ranks in input
// order rather than averaged midranks (spec.md §4.1, §9 open question f):
// this is a documented limitation, not a bug to silently fix — Spearman
// computed on tied data will diverge from the textbook midrank definition.
func Rank(data []float64) []float64 {
	n := len(data)
	ranks := make([]float64, n)
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(i, j int) bool {
		return data[idx[i]] < data[idx[j]]
	})
	for pos, originalIdx := range idx {
		ranks[originalIdx] = float64(pos + 1)
	}
	return ranks
}

func align(a, b []float64) ([]float64, []float64) {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	return a[:n], b[:n]
}

// Pearson returns the Pearson correlation coefficient, aligning both
// sequences to their common minimum length first. Returns 0 if the
// aligned length is below 2 or either series has zero population std.
func Pearson(a, b []float64) float64 {
	a, b = align(a, b)
	n := len(a)
	if n < 2 {
		return 0
	}
	stdA := StdDev(a)
	stdB := StdDev(b)
	if stdA == 0 || stdB == 0 {
		return 0
	}
	meanA := Mean(a)
	meanB := Mean(b)
	var cov float64
	for i := 0; i < n; i++ {
		cov += (a[i] - meanA) * (b[i] - meanB)
	}
	cov /= float64(n)
	return cov / (stdA * stdB)
}

// Spearman is Pearson computed on the per-series ranks.
func Spearman(a, b []float64) float64 {
	a, b = align(a, b)
	if len(a) < 2 {
		return 0
	}
	return Pearson(Rank(a), Rank(b))
}

// Kendall returns Kendall's tau over all i<j pairs, comparing the signs
// of (a_j - a_i) and (b_j - b_i). A tie in either dimension is counted as
// discordant rather than excluded from the denominator (spec.md §4.1,
// §9 open question b) — this is the documented, possibly non-standard
// choice carried over rather than reconciled with the usual tau-b
// definition.
func Kendall(a, b []float64) float64 {
	a, b = align(a, b)
	n := len(a)
	if n < 2 {
		return 0
	}
	var concordant, discordant int
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			da := a[j] - a[i]
			db := b[j] - b[i]
			switch {
			case da == 0 || db == 0:
				discordant++
			case (da > 0) == (db > 0):
				concordant++
			default:
				discordant++
			}
		}
	}
	total := concordant + discordant
	if total == 0 {
		return 0
	}
	return float64(concordant-discordant) / float64(total)
}

const miBins = 10

// MutualInformation computes a 10-bin histogram estimate of
// H(A)+H(B)-H(A,B), returning 0 if the aligned length is below 10 or
// either histogram has a zero bin width. When normalize is true the
// result is divided by min(H(A),H(B)) (the theoretical maximum MI for
// the pair), clamped to [0,1].
func MutualInformation(a, b []float64, normalize bool) float64 {
	a, b = align(a, b)
	n := len(a)
	if n < miBins {
		return 0
	}

	binA, widthA := histogramIndex(a)
	binB, widthB := histogramIndex(b)
	if widthA == 0 || widthB == 0 {
		return 0
	}

	var jointCounts [miBins][miBins]int
	var countsA, countsB [miBins]int
	for i := 0; i < n; i++ {
		ia := binA(a[i])
		ib := binB(b[i])
		jointCounts[ia][ib]++
		countsA[ia]++
		countsB[ib]++
	}

	entropy := func(counts []int, total int) float64 {
		h := 0.0
		for _, c := range counts {
			if c == 0 {
				continue
			}
			p := float64(c) / float64(total)
			h -= p * math.Log2(p)
		}
		return h
	}

	hA := entropy(countsA[:], n)
	hB := entropy(countsB[:], n)

	hJoint := 0.0
	for i := 0; i < miBins; i++ {
		for j := 0; j < miBins; j++ {
			c := jointCounts[i][j]
			if c == 0 {
				continue
			}
			p := float64(c) / float64(n)
			hJoint -= p * math.Log2(p)
		}
	}

	mi := hA + hB - hJoint
	if mi < 0 {
		mi = 0
	}
	if !normalize {
		return mi
	}
	maxMI := math.Min(hA, hB)
	if maxMI <= 0 {
		return 0
	}
	norm := mi / maxMI
	if norm > 1 {
		norm = 1
	}
	return norm
}

// histogramIndex builds a fixed-bin-count binning function for data,
// returning the indexer and the bin width (0 if data is degenerate).
func histogramIndex(data []float64) (func(float64) int, float64) {
	min, max := data[0], data[0]
	for _, v := range data {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	width := (max - min) / float64(miBins)
	if width == 0 {
		return func(float64) int { return 0 }, 0
	}
	return func(v float64) int {
		idx := int((v - min) / width)
		if idx >= miBins {
			idx = miBins - 1
		}
		if idx < 0 {
			idx = 0
		}
		return idx
	}, width
}

// LinearRegression performs OLS of y on x (x defaults to 0..n-1 when
// xs is nil), returning (slope, intercept, r-squared).
func LinearRegression(xs, ys []float64) (slope, intercept, rSquared float64) {
	n := len(ys)
	if n < 2 {
		return 0, 0, 0
	}
	if xs == nil {
		xs = make([]float64, n)
		for i := range xs {
			xs[i] = float64(i)
		}
	}
	intercept, slope = stat.LinearRegression(xs, ys, nil, false)
	rSquared = stat.RSquared(xs, ys, nil, intercept, slope)
	if math.IsNaN(rSquared) {
		rSquared = 0
	}
	return slope, intercept, rSquared
}

// Autocorrelation returns Pearson(a[0:n-lag], a[lag:n]) for lag in
// [0, n/2], the lag profile the periodicity analyzer searches.
func Autocorrelation(a []float64) []float64 {
	n := len(a)
	maxLag := n / 2
	result := make([]float64, maxLag+1)
	for lag := 0; lag <= maxLag; lag++ {
		result[lag] = Pearson(a[:n-lag], a[lag:])
	}
	return result
}

// MultiMethodCorrelation blends Pearson, Spearman, Kendall, and MI under
// spec.md §4.3's fixed weights: Sum(r*w)/Sum(w) over the methods in use.
func MultiMethodCorrelation(a, b []float64) float64 {
	pearson := Pearson(a, b)
	spearman := Spearman(a, b)
	kendall := Kendall(a, b)
	mi := MutualInformation(a, b, true)

	weighted := pearson*WeightPearson + spearman*WeightSpearman + kendall*WeightKendall + mi*WeightMI
	totalWeight := WeightPearson + WeightSpearman + WeightKendall + WeightMI
	return weighted / totalWeight
}
