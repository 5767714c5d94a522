// Package correlation holds the value types the correlation analyzer
// produces: the symmetric matrix, pairwise relationships, the optional
// causal graph, and network metrics (spec.md §3, §4.3).
package correlation

import "github.com/viable-systems/vsm-pattern-engine/domain/core"

// Matrix is a dense, symmetric n x n correlation matrix with unit
// diagonal (spec.md §3 invariant).
type Matrix struct {
	Size  int
	Cells [][]float64
}

// NewMatrix allocates an n x n matrix with a unit diagonal.
func NewMatrix(n int) *Matrix {
	cells := make([][]float64, n)
	for i := range cells {
		cells[i] = make([]float64, n)
		cells[i][i] = 1
	}
	return &Matrix{Size: n, Cells: cells}
}

// Set writes the (i,j) cell and its symmetric (j,i) counterpart.
func (m *Matrix) Set(i, j int, value float64) {
	m.Cells[i][j] = value
	m.Cells[j][i] = value
}

// Get reads the (i,j) cell.
func (m *Matrix) Get(i, j int) float64 {
	return m.Cells[i][j]
}

// Relationship is one significant pairwise correlation (spec.md §3).
type Relationship struct {
	I           int
	J           int
	Correlation float64
	Strength    float64 // |Correlation|
	Direction   string  // "positive" | "negative"
	Confidence  float64
}

// CausalLink is a directed edge in the causal graph, accepted when the
// Granger-style F statistic in that direction exceeds the spec's
// threshold (spec.md §4.3).
type CausalLink struct {
	From          int
	To            int
	FStatistic    float64
	Bidirectional bool
	OptimalLag    int
}

// CausalGraph stores the causal network as (nodes, edges) by index, not
// pointers, per spec.md §9's design note.
type CausalGraph struct {
	Nodes       []int
	Links       []CausalLink
	RootCauses  []int
	Effects     []int
}

// NetworkMetrics summarizes the relationship graph (spec.md §3, §4.3).
type NetworkMetrics struct {
	Nodes               int
	Edges               int
	Density             float64
	AverageCorrelation  float64
	ClusteringCoefficient float64
	Modularity          float64
}

// Result is the aggregate output of the correlation analyzer (spec.md §3).
type Result struct {
	ID                   core.CorrelationID
	Timestamp            core.Timestamp
	PatternCount         int
	Matrix               *Matrix
	Relationships        []Relationship
	StrongestRelationship *Relationship
	CausalAnalysis       *CausalGraph
	NetworkMetrics       NetworkMetrics
}
