package vectorstore

import (
	"hash/fnv"
	"math"
)

// DefaultDimensions is D in spec.md §6.
const DefaultDimensions = 384

// Encoder turns a numeric feature vector into a fixed-dimension,
// L2-normalized vector suitable for the vector store (spec.md §6):
// over-long feature vectors are folded into D buckets via modulo
// feature hashing rather than truncated. It is the pluggable boundary
// spec.md §1 names — this is one concrete implementation of it.
type Encoder struct {
	Dimensions int
}

// NewEncoder builds an Encoder with the given target dimensionality.
func NewEncoder(dimensions int) *Encoder {
	if dimensions <= 0 {
		dimensions = DefaultDimensions
	}
	return &Encoder{Dimensions: dimensions}
}

// Encode hashes features into Dimensions buckets (summing collisions)
// and L2-normalizes the result.
func (e *Encoder) Encode(features []float64) []float64 {
	vector := make([]float64, e.Dimensions)
	for i, f := range features {
		bucket := featureBucket(i, e.Dimensions)
		vector[bucket] += f
	}
	normalize(vector)
	return vector
}

// EncodeNamed hashes a name->value feature map into buckets keyed by the
// FNV hash of the name, for callers building features from structured
// metadata rather than a positional slice.
func (e *Encoder) EncodeNamed(features map[string]float64) []float64 {
	vector := make([]float64, e.Dimensions)
	for name, value := range features {
		h := fnv.New32a()
		_, _ = h.Write([]byte(name))
		bucket := int(h.Sum32()) % e.Dimensions
		if bucket < 0 {
			bucket += e.Dimensions
		}
		vector[bucket] += value
	}
	normalize(vector)
	return vector
}

func featureBucket(i, dimensions int) int {
	return i % dimensions
}

func normalize(vector []float64) {
	var sumSquares float64
	for _, v := range vector {
		sumSquares += v * v
	}
	if sumSquares == 0 {
		return
	}
	norm := math.Sqrt(sumSquares)
	for i := range vector {
		vector[i] /= norm
	}
}
