package anomaly

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/viable-systems/vsm-pattern-engine/domain/anomaly"
	"github.com/viable-systems/vsm-pattern-engine/ports"
)

func TestStatisticalAnomalyScenario(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	baseline := make([]float64, 100)
	for i := range baseline {
		baseline[i] = 10 + 2*r.NormFloat64()
	}
	data := []float64{10, 11, 9, 50, 10, 11}

	d := NewDetector(ports.SystemRNG{})
	result := d.Detect(data, baseline, nil, Options{Method: anomaly.MethodStatistical})

	assert.True(t, result.AnomalyDetected)
	assert.Equal(t, 1, result.Count)
	assert.Equal(t, 3, result.ClassifiedAnomalies[0].Index)
	assert.Contains(t, []anomaly.Severity{anomaly.SeverityHigh, anomaly.SeverityMedium, anomaly.SeverityLow}, result.Severity)
}

func TestConstantBaselineYieldsNoAnomalies(t *testing.T) {
	baseline := make([]float64, 50)
	for i := range baseline {
		baseline[i] = 5.0
	}
	data := []float64{5, 5, 100, -100, 5}

	d := NewDetector(ports.SystemRNG{})
	result := d.Detect(data, baseline, nil, Options{Method: anomaly.MethodStatistical})
	assert.False(t, result.AnomalyDetected)
}

func TestIsolationForestScoreBounded(t *testing.T) {
	r := rand.New(rand.NewSource(2))
	baseline := make([]float64, 300)
	for i := range baseline {
		baseline[i] = r.NormFloat64()
	}
	forest := buildIsolationForest(baseline, ports.SystemRNG{})
	score := forest.score(0.0)
	assert.Greater(t, score, 0.0)
	assert.LessOrEqual(t, score, 1.0)

	outlierScore := forest.score(1000.0)
	assert.Greater(t, outlierScore, score)
}

func TestLOFNonNegative(t *testing.T) {
	r := rand.New(rand.NewSource(3))
	baseline := make([]float64, 200)
	for i := range baseline {
		baseline[i] = r.NormFloat64()
	}
	model := buildLOFModel(baseline)
	assert.GreaterOrEqual(t, model.score(0.0), 0.0)
	assert.GreaterOrEqual(t, model.score(50.0), 0.0)
}

func TestBatchDetectMergesOnlyDetected(t *testing.T) {
	r := rand.New(rand.NewSource(4))
	baseline := make([]float64, 100)
	for i := range baseline {
		baseline[i] = 10 + 2*r.NormFloat64()
	}
	streams := map[string][]float64{
		"clean":   {10, 11, 9, 10, 11},
		"anomalous": {10, 11, 9, 50, 10, 11},
	}

	d := NewDetector(ports.SystemRNG{})
	results := d.DetectBatch(context.Background(), streams, baseline, Options{Method: anomaly.MethodStatistical})

	_, cleanPresent := results["clean"]
	_, anomalousPresent := results["anomalous"]
	assert.False(t, cleanPresent)
	assert.True(t, anomalousPresent)
}

func TestDynamicThresholdSignAdjustment(t *testing.T) {
	heavyTailed := []float64{1, 1, 1, 1, 1, 1, 1, 1, 1, 100}
	narrow := make([]float64, 10)
	for i := range narrow {
		narrow[i] = float64(i)
	}

	heavyThreshold := dynamicThreshold(heavyTailed)
	narrowThreshold := dynamicThreshold(narrow)
	assert.NotEqual(t, heavyThreshold, narrowThreshold)
}
