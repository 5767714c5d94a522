package correlation

import (
	"github.com/viable-systems/vsm-pattern-engine/domain/correlation"
	"github.com/viable-systems/vsm-pattern-engine/internal/numeric"
)

// minCausalSampleSize is spec.md §4.3's "both sequences >= 20 long" gate.
const (
	minCausalSampleSize = 20
	causalLagOrder      = 1
	causalFThreshold    = 3.0
)

// grangerF computes a placeholder Granger-style F statistic for "does a
// Granger-cause b" at a fixed lag order of 1 (spec.md §9 open question c
// — the source is a random placeholder; this implementation instead
// compares a univariate OLS regression of b[t] on a[t-lag] (full model)
// against the intercept-only null, not a full multivariate lagged
// regression). Null model RSS is the total sum of squares around
// mean(b); full model RSS is the residual sum of squares of the OLS fit.
// Returns 0 unless more than 2*lag+2 aligned samples remain.
func grangerF(a, b []float64, lag int) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	if n <= 2*lag+2 {
		return 0
	}

	predictor := a[:n-lag]
	response := b[lag:n]

	slope, intercept, _ := numeric.LinearRegression(predictor, response)

	meanResponse := numeric.Mean(response)
	var rssNull, rssFull float64
	for i, y := range response {
		predicted := intercept + slope*predictor[i]
		rssFull += (y - predicted) * (y - predicted)
		rssNull += (y - meanResponse) * (y - meanResponse)
	}

	dfFull := float64(len(response) - 2)
	if dfFull <= 0 || rssFull == 0 {
		return 0
	}
	numeratorDF := 1.0
	f := ((rssNull - rssFull) / numeratorDF) / (rssFull / dfFull)
	if f < 0 {
		f = 0
	}
	return f
}

// analyzeCausality computes bidirectional Granger-style F statistics for
// every retained relationship whose series both meet the minimum sample
// size, building a directed multigraph of accepted links (spec.md §4.3).
func analyzeCausality(relationships []correlation.Relationship, series [][]float64) *correlation.CausalGraph {
	graph := &correlation.CausalGraph{}
	nodeSet := map[int]bool{}
	inDegree := map[int]int{}
	outDegree := map[int]int{}

	for _, rel := range relationships {
		a := series[rel.I]
		b := series[rel.J]
		if len(a) < minCausalSampleSize || len(b) < minCausalSampleSize {
			continue
		}

		lagAB := findOptimalLag(a, b)
		fAB := grangerF(a, b, causalLagOrder)
		fBA := grangerF(b, a, causalLagOrder)

		acceptAB := fAB > causalFThreshold
		acceptBA := fBA > causalFThreshold
		if !acceptAB && !acceptBA {
			continue
		}

		if acceptAB {
			graph.Links = append(graph.Links, correlation.CausalLink{
				From: rel.I, To: rel.J, FStatistic: fAB,
				Bidirectional: acceptAB && acceptBA, OptimalLag: lagAB.OptimalLag,
			})
			outDegree[rel.I]++
			inDegree[rel.J]++
			nodeSet[rel.I] = true
			nodeSet[rel.J] = true
		}
		if acceptBA {
			lagBA := findOptimalLag(b, a)
			graph.Links = append(graph.Links, correlation.CausalLink{
				From: rel.J, To: rel.I, FStatistic: fBA,
				Bidirectional: acceptAB && acceptBA, OptimalLag: lagBA.OptimalLag,
			})
			outDegree[rel.J]++
			inDegree[rel.I]++
			nodeSet[rel.I] = true
			nodeSet[rel.J] = true
		}
	}

	if len(graph.Links) == 0 {
		return nil
	}

	for node := range nodeSet {
		graph.Nodes = append(graph.Nodes, node)
		if outDegree[node] > 0 && inDegree[node] == 0 {
			graph.RootCauses = append(graph.RootCauses, node)
		}
		if inDegree[node] > 0 && outDegree[node] == 0 {
			graph.Effects = append(graph.Effects, node)
		}
	}
	return graph
}
