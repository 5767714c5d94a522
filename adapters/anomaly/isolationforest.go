package anomaly

import (
	"math"
	"math/rand"

	"golang.org/x/sync/errgroup"

	"github.com/viable-systems/vsm-pattern-engine/ports"
)

const (
	isolationForestTreeCount = 100
	isolationForestMaxDepth  = 10
	isolationForestSubsample = 256
	isolationForestFlagScore = 0.6
	eulerMascheroni          = 0.5772156649
)

// isolationNode is one node of a 1-D isolation tree: splits on a random
// threshold within the current subsample's range until maxDepth or a
// single unique value remains (spec.md §4.4).
type isolationNode struct {
	isLeaf     bool
	splitValue float64
	size       int
	left       *isolationNode
	right      *isolationNode
}

func buildIsolationTree(data []float64, depth int, rng *rand.Rand) *isolationNode {
	if depth >= isolationForestMaxDepth || allEqual(data) || len(data) <= 1 {
		return &isolationNode{isLeaf: true, size: len(data)}
	}

	min, max := data[0], data[0]
	for _, v := range data {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	if min == max {
		return &isolationNode{isLeaf: true, size: len(data)}
	}

	split := min + rng.Float64()*(max-min)
	var left, right []float64
	for _, v := range data {
		if v < split {
			left = append(left, v)
		} else {
			right = append(right, v)
		}
	}
	if len(left) == 0 || len(right) == 0 {
		return &isolationNode{isLeaf: true, size: len(data)}
	}

	return &isolationNode{
		splitValue: split,
		left:       buildIsolationTree(left, depth+1, rng),
		right:      buildIsolationTree(right, depth+1, rng),
	}
}

func allEqual(data []float64) bool {
	for _, v := range data {
		if v != data[0] {
			return false
		}
	}
	return true
}

// pathLength walks value down the tree, returning the traversal depth
// plus the leaf's size-correction term c(leaf.size).
func pathLength(node *isolationNode, value float64, depth int) float64 {
	if node.isLeaf {
		return float64(depth) + averagePathLengthFactor(node.size)
	}
	if value < node.splitValue {
		return pathLength(node.left, value, depth+1)
	}
	return pathLength(node.right, value, depth+1)
}

// averagePathLengthFactor is c(n), the expected unsuccessful-search path
// length of a binary search tree with n nodes (spec.md §4.4).
func averagePathLengthFactor(n int) float64 {
	if n <= 2 {
		return 1
	}
	nf := float64(n)
	return 2*(math.Log(nf-1)+eulerMascheroni) - 2*(nf-1)/nf
}

// isolationForest is a set of trees, each built over an independent
// random subsample of the baseline (spec.md §4.4).
type isolationForest struct {
	trees          []*isolationNode
	subsampleSize  int
}

// buildIsolationForest builds isolationForestTreeCount trees concurrently
// via errgroup, each over a subsample of size min(256, |baseline|) drawn
// from rng (spec.md §4.4, §9 — seeded for reproducibility).
func buildIsolationForest(baseline []float64, rng ports.RNG) *isolationForest {
	subsampleSize := isolationForestSubsample
	if len(baseline) < subsampleSize {
		subsampleSize = len(baseline)
	}

	trees := make([]*isolationNode, isolationForestTreeCount)
	var g errgroup.Group
	for t := 0; t < isolationForestTreeCount; t++ {
		t := t
		g.Go(func() error {
			treeRNG := rng.Stream("isolation-forest-tree", int64(t))
			subsample := sampleWithReplacement(baseline, subsampleSize, treeRNG)
			trees[t] = buildIsolationTree(subsample, 0, treeRNG)
			return nil
		})
	}
	_ = g.Wait()

	return &isolationForest{trees: trees, subsampleSize: subsampleSize}
}

func sampleWithReplacement(data []float64, size int, rng *rand.Rand) []float64 {
	if len(data) == 0 {
		return nil
	}
	sample := make([]float64, size)
	for i := range sample {
		sample[i] = data[rng.Intn(len(data))]
	}
	return sample
}

// score computes the isolation-forest anomaly score for value: the
// average path length across every tree, normalized via c(subsampleSize)
// per spec.md §4.4.
func (f *isolationForest) score(value float64) float64 {
	if len(f.trees) == 0 {
		return 0
	}
	var sum float64
	for _, tree := range f.trees {
		sum += pathLength(tree, value, 0)
	}
	avg := sum / float64(len(f.trees))
	c := averagePathLengthFactor(f.subsampleSize)
	if c == 0 {
		return 0
	}
	return math.Pow(2, -avg/c)
}
