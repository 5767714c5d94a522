package vectorstore

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEncodeIsL2Normalized(t *testing.T) {
	enc := NewEncoder(16)
	vector := enc.Encode([]float64{1, 2, 3, 4, 5})

	var sumSquares float64
	for _, v := range vector {
		sumSquares += v * v
	}
	assert.InDelta(t, 1.0, math.Sqrt(sumSquares), 1e-9)
	assert.Len(t, vector, 16)
}

func TestEncodeZeroVectorStaysZero(t *testing.T) {
	enc := NewEncoder(8)
	vector := enc.Encode([]float64{0, 0, 0})
	for _, v := range vector {
		assert.Equal(t, 0.0, v)
	}
}

func TestEncodeDefaultsDimensionsWhenInvalid(t *testing.T) {
	enc := NewEncoder(0)
	assert.Equal(t, DefaultDimensions, enc.Dimensions)
}

func TestEncodeNamedIsDeterministic(t *testing.T) {
	enc := NewEncoder(32)
	features := map[string]float64{"mean": 1.5, "variance": 2.5}

	first := enc.EncodeNamed(features)
	second := enc.EncodeNamed(features)
	assert.Equal(t, first, second)
}

func TestEncodeFoldsOverlongFeaturesByModulo(t *testing.T) {
	enc := NewEncoder(4)
	features := make([]float64, 10)
	for i := range features {
		features[i] = 1
	}
	vector := enc.Encode(features)
	assert.Len(t, vector, 4)
}
