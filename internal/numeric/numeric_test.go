package numeric

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPearsonSelfAndNegation(t *testing.T) {
	x := []float64{1, 2, 3, 4, 5, 6, 7}
	neg := make([]float64, len(x))
	for i, v := range x {
		neg[i] = -v
	}
	assert.InDelta(t, 1.0, Pearson(x, x), 1e-9)
	assert.InDelta(t, -1.0, Pearson(x, neg), 1e-9)
}

func TestPearsonBounded(t *testing.T) {
	a := []float64{3, 1, 4, 1, 5, 9, 2, 6}
	b := []float64{2, 7, 1, 8, 2, 8, 1, 8}
	r := Pearson(a, b)
	assert.LessOrEqual(t, math.Abs(r), 1.0)
}

func TestPearsonZeroStd(t *testing.T) {
	a := []float64{5, 5, 5, 5}
	b := []float64{1, 2, 3, 4}
	assert.Equal(t, 0.0, Pearson(a, b))
}

func TestPearsonShortSeries(t *testing.T) {
	assert.Equal(t, 0.0, Pearson([]float64{1}, []float64{2}))
}

func TestSpearmanMonotonicInvariance(t *testing.T) {
	a := []float64{1, 2, 3, 4, 5}
	b := []float64{2, 4, 6, 8, 10}
	bTransformed := make([]float64, len(b))
	for i, v := range b {
		bTransformed[i] = math.Log(v + 1)
	}
	assert.InDelta(t, Spearman(a, b), Spearman(a, bTransformed), 1e-9)
}

func TestKendallTiesAreDiscordant(t *testing.T) {
	a := []float64{1, 1, 2}
	b := []float64{1, 2, 3}
	tau := Kendall(a, b)
	assert.Less(t, tau, 1.0)
}

func TestMutualInformationShortSeries(t *testing.T) {
	a := []float64{1, 2, 3}
	b := []float64{1, 2, 3}
	assert.Equal(t, 0.0, MutualInformation(a, b, false))
}

func TestMutualInformationDegenerate(t *testing.T) {
	a := make([]float64, 12)
	for i := range a {
		a[i] = 5.0
	}
	b := make([]float64, 12)
	for i := range b {
		b[i] = float64(i)
	}
	assert.Equal(t, 0.0, MutualInformation(a, b, false))
}

func TestRankTieOrder(t *testing.T) {
	data := []float64{10, 10, 5}
	ranks := Rank(data)
	assert.Equal(t, []float64{2, 3, 1}, ranks)
}

func TestLinearRegressionPerfectLine(t *testing.T) {
	ys := []float64{1, 3, 5, 7, 9}
	slope, intercept, r2 := LinearRegression(nil, ys)
	assert.InDelta(t, 2.0, slope, 1e-9)
	assert.InDelta(t, 1.0, intercept, 1e-9)
	assert.InDelta(t, 1.0, r2, 1e-9)
}

func TestAutocorrelationLagZeroIsOne(t *testing.T) {
	a := []float64{1, 2, 3, 4, 5, 6, 7, 8}
	ac := Autocorrelation(a)
	assert.InDelta(t, 1.0, ac[0], 1e-9)
}

func TestIQRFloorIndexed(t *testing.T) {
	data := []float64{1, 2, 3, 4, 5, 6, 7, 8}
	iqr := IQR(data)
	assert.Greater(t, iqr, 0.0)
}

func TestMeanVarianceEmpty(t *testing.T) {
	assert.Equal(t, 0.0, Mean(nil))
	assert.Equal(t, 0.0, Variance(nil))
	assert.Equal(t, 0.0, StdDev(nil))
}
