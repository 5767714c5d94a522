package temporal

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPeriodicDetectionScenario(t *testing.T) {
	data := make([]float64, 100)
	r := rand.New(rand.NewSource(1))
	for i := range data {
		data[i] = math.Sin(2*math.Pi*float64(i)/10) + 0.1*r.Float64()
	}

	d := NewDetector()
	result := d.Analyze(data)

	require := assert.New(t)
	require.NotNil(result.DominantPattern)
	if result.DominantPattern != nil {
		require.Equal("periodic", string(result.DominantPattern.Kind))
		require.InDelta(10, result.DominantPattern.Period, 1.5)
		require.Greater(result.DominantPattern.Strength, 0.7)
	}
}

func TestEmptyInputYieldsNoPatterns(t *testing.T) {
	d := NewDetector()
	result := d.Analyze(nil)
	assert.Empty(t, result.Patterns)
	assert.Equal(t, 0.0, result.Confidence)
	assert.Nil(t, result.DominantPattern)
}

func TestConstantInputYieldsNoTrendOrPeriodicity(t *testing.T) {
	data := make([]float64, 100)
	for i := range data {
		data[i] = 5.0
	}
	d := NewDetector()
	result := d.Analyze(data)
	for _, p := range result.Patterns {
		assert.NotEqual(t, "trend", string(p.Kind))
		assert.NotEqual(t, "periodic", string(p.Kind))
	}
}

func TestDeterministicAcrossRuns(t *testing.T) {
	data := make([]float64, 150)
	r := rand.New(rand.NewSource(42))
	for i := range data {
		data[i] = float64(i) * 0.5
	}
	_ = r

	d := NewDetector()
	r1 := d.Analyze(data)
	r2 := d.Analyze(data)
	assert.Equal(t, len(r1.Patterns), len(r2.Patterns))
	for i := range r1.Patterns {
		assert.Equal(t, r1.Patterns[i].Kind, r2.Patterns[i].Kind)
		assert.InDelta(t, r1.Patterns[i].Strength, r2.Patterns[i].Strength, 1e-9)
	}
}
