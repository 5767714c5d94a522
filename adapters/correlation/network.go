package correlation

import (
	"github.com/viable-systems/vsm-pattern-engine/domain/correlation"
)

// computeNetworkMetrics derives nodes/edges/density/average correlation
// plus the clustering coefficient and modularity placeholders spec.md
// §9 open question d calls out as needing documented definitions.
//
// nodes is the set of unique series endpoints touched by the retained
// relationships (spec.md §4.3), not the total series count passed to
// Analyze: a series with no significant relationship to any other
// series is not part of the induced relationship graph, so it
// contributes neither a node nor a possible pair to density.
//
// Clustering coefficient here is the global clustering coefficient of
// the undirected graph induced by the retained relationships: the
// fraction of connected triples that are closed into triangles.
// Modularity is a placeholder computed from density alone as
// density*(1-density), so it lies in [0, 0.25]; no community partition
// is searched and no multi-community optimization is performed.
func computeNetworkMetrics(seriesCount int, relationships []correlation.Relationship) correlation.NetworkMetrics {
	nodeSet := map[int]bool{}
	for _, r := range relationships {
		nodeSet[r.I] = true
		nodeSet[r.J] = true
	}
	nodes := len(nodeSet)

	metrics := correlation.NetworkMetrics{Nodes: nodes, Edges: len(relationships)}
	if nodes < 2 {
		return metrics
	}

	possiblePairs := float64(nodes*(nodes-1)) / 2
	metrics.Density = float64(len(relationships)) / possiblePairs

	var sum float64
	for _, r := range relationships {
		sum += r.Correlation
	}
	metrics.AverageCorrelation = sum / float64(len(relationships))

	metrics.ClusteringCoefficient = globalClusteringCoefficient(seriesCount, relationships)
	metrics.Modularity = placeholderModularity(metrics.Density)
	return metrics
}

func globalClusteringCoefficient(seriesCount int, relationships []correlation.Relationship) float64 {
	adjacency := make([][]bool, seriesCount)
	for i := range adjacency {
		adjacency[i] = make([]bool, seriesCount)
	}
	for _, r := range relationships {
		adjacency[r.I][r.J] = true
		adjacency[r.J][r.I] = true
	}

	var triangles, triples float64
	for i := 0; i < seriesCount; i++ {
		var neighbors []int
		for j := 0; j < seriesCount; j++ {
			if adjacency[i][j] {
				neighbors = append(neighbors, j)
			}
		}
		k := len(neighbors)
		if k < 2 {
			continue
		}
		triples += float64(k * (k - 1) / 2)
		for a := 0; a < len(neighbors); a++ {
			for b := a + 1; b < len(neighbors); b++ {
				if adjacency[neighbors[a]][neighbors[b]] {
					triangles++
				}
			}
		}
	}
	if triples == 0 {
		return 0
	}
	return triangles / triples
}

// placeholderModularity reports density*(1-density) as the modularity
// placeholder: 0 for an empty or complete graph, at most 0.25 (at
// density 0.5). It does not look at the graph's structure.
func placeholderModularity(density float64) float64 {
	return density - density*density
}
