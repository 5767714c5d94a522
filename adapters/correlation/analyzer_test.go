package correlation

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeSeries struct {
	values []float64
}

func (f fakeSeries) Values() []float64 { return f.values }

func TestMatrixSymmetricUnitDiagonal(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	series := make([]Series, 3)
	for i := range series {
		data := make([]float64, 50)
		for j := range data {
			data[j] = r.Float64()
		}
		series[i] = fakeSeries{values: data}
	}

	a := NewAnalyzer()
	result, err := a.Analyze(context.Background(), series, DefaultOptions())
	assert.NoError(t, err)
	for i := 0; i < 3; i++ {
		assert.Equal(t, 1.0, result.Matrix.Get(i, i))
		for j := 0; j < 3; j++ {
			assert.InDelta(t, result.Matrix.Get(i, j), result.Matrix.Get(j, i), 1e-9)
		}
	}
}

func TestCorrelationScenarioLinearRelation(t *testing.T) {
	r := rand.New(rand.NewSource(11))
	p1 := make([]float64, 50)
	for i := range p1 {
		p1[i] = r.NormFloat64()
	}
	p2 := make([]float64, 50)
	for i := range p2 {
		p2[i] = 2*p1[i] + 1
	}
	p3 := make([]float64, 50)
	for i := range p3 {
		p3[i] = r.NormFloat64()
	}

	series := []Series{fakeSeries{p1}, fakeSeries{p2}, fakeSeries{p3}}
	a := NewAnalyzer()
	result, err := a.Analyze(context.Background(), series, DefaultOptions())
	assert.NoError(t, err)

	r12 := result.Matrix.Get(0, 1)
	assert.Greater(t, r12, 0.99)
	assert.NotNil(t, result.StrongestRelationship)
	assert.Equal(t, "positive", result.StrongestRelationship.Direction)
}

func TestCausalityScenarioLaggedRelation(t *testing.T) {
	r := rand.New(rand.NewSource(3))
	n := 120
	a := make([]float64, n)
	a[0] = 0
	for i := 1; i < n; i++ {
		a[i] = a[i-1] + r.NormFloat64()
	}
	b := make([]float64, n)
	for i := 0; i < n; i++ {
		if i >= 2 {
			b[i] = a[i-2] + 0.01*r.NormFloat64()
		} else {
			b[i] = r.NormFloat64()
		}
	}

	series := []Series{fakeSeries{a}, fakeSeries{b}}
	analyzer := NewAnalyzer()
	opts := DefaultOptions()
	opts.AnalyzeCausality = true
	opts.Threshold = 0.1
	result, err := analyzer.Analyze(context.Background(), series, opts)
	assert.NoError(t, err)
	if assert.NotNil(t, result.CausalAnalysis) {
		found := false
		for _, link := range result.CausalAnalysis.Links {
			if link.From == 0 && link.To == 1 {
				found = true
				assert.Equal(t, 2, link.OptimalLag)
			}
		}
		assert.True(t, found, "expected a causal link from series 0 to series 1")
	}
}

func TestEmptySeriesYieldsEmptyMatrix(t *testing.T) {
	a := NewAnalyzer()
	result, err := a.Analyze(context.Background(), nil, DefaultOptions())
	assert.NoError(t, err)
	assert.Equal(t, 0, result.Matrix.Size)
	assert.Empty(t, result.Relationships)
}
