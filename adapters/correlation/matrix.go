// Package correlation implements the multi-method correlation analyzer:
// matrix construction, relationship extraction, lag search, Granger-style
// causal screening, and network metrics (spec.md §4.3).
package correlation

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/viable-systems/vsm-pattern-engine/domain/correlation"
	"github.com/viable-systems/vsm-pattern-engine/internal/numeric"
)

// Series is anything the correlation analyzer can pull a numeric
// sequence out of — spec.md §4.3's "pattern-like" input.
type Series interface {
	Values() []float64
}

// buildMatrix constructs the dense symmetric matrix, computing each
// off-diagonal cell concurrently via errgroup (pairs are independent and
// CPU-bound, matching the teacher's concurrent-validation fan-out
// idiom). The diagonal is preset to 1 by NewMatrix.
func buildMatrix(ctx context.Context, series []Series) (*correlation.Matrix, error) {
	n := len(series)
	matrix := correlation.NewMatrix(n)
	if n < 2 {
		return matrix, nil
	}

	values := make([][]float64, n)
	for i, s := range series {
		values[i] = s.Values()
	}

	type cell struct {
		i, j int
		r    float64
	}
	cells := make(chan cell, n*n)

	g, _ := errgroup.WithContext(ctx)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			i, j := i, j
			g.Go(func() error {
				r := numeric.MultiMethodCorrelation(values[i], values[j])
				cells <- cell{i, j, r}
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	close(cells)

	for c := range cells {
		matrix.Set(c.i, c.j, c.r)
	}
	return matrix, nil
}
