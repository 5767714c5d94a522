package correlation

import (
	"context"

	"github.com/viable-systems/vsm-pattern-engine/domain/core"
	"github.com/viable-systems/vsm-pattern-engine/domain/correlation"
)

// Options tunes one Analyze call (spec.md §4.3).
type Options struct {
	Threshold       float64
	AnalyzeCausality bool
}

// DefaultOptions returns spec.md §4.3's default threshold with causal
// analysis opted out (it is an opt-in extra pass).
func DefaultOptions() Options {
	return Options{Threshold: DefaultThreshold, AnalyzeCausality: false}
}

// Analyzer computes the multi-method correlation matrix, extracts
// significant relationships, and optionally runs causal screening and
// network metrics (spec.md §4.3). It is stateless and safe for
// concurrent use.
type Analyzer struct{}

// NewAnalyzer builds a correlation Analyzer.
func NewAnalyzer() *Analyzer {
	return &Analyzer{}
}

// Analyze runs the full correlation pipeline over series.
func (a *Analyzer) Analyze(ctx context.Context, series []Series, opts Options) (correlation.Result, error) {
	result := correlation.Result{
		ID:           core.NewCorrelationID(),
		Timestamp:    core.Now(),
		PatternCount: len(series),
	}

	matrix, err := buildMatrix(ctx, series)
	if err != nil {
		return result, err
	}
	result.Matrix = matrix

	if len(series) < 2 {
		return result, nil
	}

	lengths := make([]int, len(series))
	values := make([][]float64, len(series))
	for i, s := range series {
		values[i] = s.Values()
		lengths[i] = len(values[i])
	}

	threshold := opts.Threshold
	if threshold == 0 {
		threshold = DefaultThreshold
	}
	result.Relationships = extractRelationships(matrix, lengths, threshold)
	result.StrongestRelationship = strongestRelationship(result.Relationships)

	if opts.AnalyzeCausality {
		result.CausalAnalysis = analyzeCausality(result.Relationships, values)
	}

	metrics := computeNetworkMetrics(len(series), result.Relationships)
	result.NetworkMetrics = metrics

	return result, nil
}
