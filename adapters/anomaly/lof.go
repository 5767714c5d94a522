package anomaly

import (
	"math"
	"sort"
)

const lofFlagScore = 1.5

// lofModel precomputes each baseline point's k-distance and local
// reachability density so per-query LOF scoring doesn't redo the
// leave-one-out neighbor search every call (spec.md §4.4).
type lofModel struct {
	baseline    []float64
	k           int
	kDistances  []float64
	lrds        []float64
}

// buildLOFModel precomputes the baseline's k-nearest-neighbor distances
// and local reachability densities. k = min(20, |baseline|/10).
func buildLOFModel(baseline []float64) *lofModel {
	n := len(baseline)
	k := n / 10
	if k > 20 {
		k = 20
	}
	if k < 1 {
		k = 1
	}
	if k >= n {
		k = n - 1
	}
	if k < 1 {
		return &lofModel{baseline: baseline, k: 0}
	}

	kDistances := make([]float64, n)
	neighborIdx := make([][]int, n)
	for i := range baseline {
		dists := nearestDistances(baseline, i, baseline[i], k)
		neighborIdx[i] = dists.indices
		kDistances[i] = dists.kthDistance
	}

	lrds := make([]float64, n)
	for i := range baseline {
		var sumReach float64
		for _, j := range neighborIdx[i] {
			d := math.Abs(baseline[i] - baseline[j])
			reach := math.Max(d, kDistances[j])
			sumReach += reach
		}
		if sumReach == 0 {
			lrds[i] = 0
		} else {
			lrds[i] = float64(k) / sumReach
		}
	}

	return &lofModel{baseline: baseline, k: k, kDistances: kDistances, lrds: lrds}
}

type neighborResult struct {
	indices     []int
	kthDistance float64
}

// nearestDistances finds the k nearest points to value among data,
// excluding the point at excludeIdx (use -1 to not exclude any).
func nearestDistances(data []float64, excludeIdx int, value float64, k int) neighborResult {
	type pair struct {
		idx  int
		dist float64
	}
	pairs := make([]pair, 0, len(data))
	for i, v := range data {
		if i == excludeIdx {
			continue
		}
		pairs = append(pairs, pair{idx: i, dist: math.Abs(value - v)})
	}
	sort.Slice(pairs, func(a, b int) bool { return pairs[a].dist < pairs[b].dist })
	if k > len(pairs) {
		k = len(pairs)
	}
	indices := make([]int, k)
	for i := 0; i < k; i++ {
		indices[i] = pairs[i].idx
	}
	kth := 0.0
	if k > 0 {
		kth = pairs[k-1].dist
	}
	return neighborResult{indices: indices, kthDistance: kth}
}

// score computes the LOF score of value against the baseline: the mean
// of its neighbors' lrds divided by its own lrd. A zero own-lrd yields
// 2.0 by spec (a fixed sentinel indicating a degenerate, "more anomalous
// than typical" reading, not 0/0=NaN).
func (m *lofModel) score(value float64) float64 {
	if m.k == 0 {
		return 0
	}
	neighbors := nearestDistances(m.baseline, -1, value, m.k)

	var sumReach float64
	var neighborLRDSum float64
	for _, j := range neighbors.indices {
		d := math.Abs(value - m.baseline[j])
		reach := math.Max(d, m.kDistances[j])
		sumReach += reach
		neighborLRDSum += m.lrds[j]
	}

	var ownLRD float64
	if sumReach != 0 {
		ownLRD = float64(m.k) / sumReach
	}
	if ownLRD == 0 {
		return 2.0
	}

	meanNeighborLRD := neighborLRDSum / float64(len(neighbors.indices))
	return meanNeighborLRD / ownLRD
}
