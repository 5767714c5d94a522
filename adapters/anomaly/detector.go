package anomaly

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/viable-systems/vsm-pattern-engine/domain/anomaly"
	"github.com/viable-systems/vsm-pattern-engine/domain/core"
	"github.com/viable-systems/vsm-pattern-engine/domain/vsm"
	"github.com/viable-systems/vsm-pattern-engine/ports"
)

// batchFanoutDeadline bounds the anomaly batch operation (spec.md §5).
const batchFanoutDeadline = 5 * time.Second

// Options tunes one Detect call (spec.md §4.4).
type Options struct {
	Method    anomaly.Method
	Threshold float64
}

// Detector dispatches to the four anomaly-detection strategies and
// classifies severity (spec.md §4.4). It holds an RNG for the
// isolation-forest's seeded splitters and is safe for concurrent use.
type Detector struct {
	rng ports.RNG
}

// NewDetector builds an anomaly Detector using rng for reproducible
// isolation-forest construction.
func NewDetector(rng ports.RNG) *Detector {
	return &Detector{rng: rng}
}

// Detect runs one method against data/baseline and classifies the result
// (spec.md §4.4). vsmState carries the algedonic channel the coordinator
// owns; the vsm_based scorer itself is baselined from the caller-supplied
// baseline like every other method, not from vsmState.
func (d *Detector) Detect(data, baseline []float64, vsmState *vsm.State, opts Options) anomaly.Result {
	result := anomaly.Result{
		ID:        core.NewAnomalyID(),
		Timestamp: core.Now(),
		Method:    opts.Method,
		InputSize: len(data),
	}

	var classified []anomaly.ClassifiedAnomaly
	switch opts.Method {
	case anomaly.MethodIsolationForest:
		forest := buildIsolationForest(baseline, d.rng)
		for i, v := range data {
			score := forest.score(v)
			if score > isolationForestFlagScore {
				classified = append(classified, anomaly.ClassifiedAnomaly{
					Index: i, Value: v, Score: score,
					Severity: isolationSeverity(score),
				})
			}
		}
	case anomaly.MethodLOF:
		model := buildLOFModel(baseline)
		for i, v := range data {
			score := model.score(v)
			if score > lofFlagScore {
				classified = append(classified, anomaly.ClassifiedAnomaly{
					Index: i, Value: v, Score: score,
					Severity: lofSeverity(score),
				})
			}
		}
	case anomaly.MethodVSMBased:
		baselineModel := buildVSMBaseline(baseline)
		classified = detectVSM(data, baselineModel)
	default: // anomaly.MethodStatistical and the zero value
		classified = detectStatistical(data, baseline, opts.Threshold)
	}

	result.ClassifiedAnomalies = classified
	result.Count = len(classified)
	result.AnomalyDetected = result.Count > 0
	result.Severity = overallSeverity(classified)
	result.Critical = result.Severity == anomaly.SeverityCritical
	result.Description = describe(result, data)
	result.Recommendations = recommendations(result)
	return result
}

// DetectBatch fans out one Detect call per stream, joining with a fixed
// deadline; stragglers are abandoned and partial results are acceptable
// (spec.md §4.4, §5).
func (d *Detector) DetectBatch(ctx context.Context, streams map[string][]float64, baseline []float64, opts Options) map[string]anomaly.Result {
	ctx, cancel := context.WithTimeout(ctx, batchFanoutDeadline)
	defer cancel()

	type entry struct {
		id     string
		result anomaly.Result
	}
	results := make(chan entry, len(streams))

	g, gctx := errgroup.WithContext(ctx)
	for id, data := range streams {
		id, data := id, data
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return nil
			default:
			}
			results <- entry{id: id, result: d.Detect(data, baseline, nil, opts)}
			return nil
		})
	}
	finished := make(chan struct{})
	go func() { _ = g.Wait(); close(finished) }()
	select {
	case <-finished:
	case <-ctx.Done():
	}

	merged := map[string]anomaly.Result{}
	for len(results) > 0 {
		e := <-results
		if e.result.AnomalyDetected {
			merged[e.id] = e.result
		}
	}
	return merged
}

func isolationSeverity(score float64) anomaly.Severity {
	if score > 0.8 {
		return anomaly.SeverityHigh
	}
	return anomaly.SeverityLow
}

func lofSeverity(score float64) anomaly.Severity {
	if score > 2.0 {
		return anomaly.SeverityMedium
	}
	return anomaly.SeverityLow
}

// overallSeverity is the highest severity among individual anomalies,
// algedonic_alert forcing critical regardless of ranking (spec.md §4.4).
func overallSeverity(classified []anomaly.ClassifiedAnomaly) anomaly.Severity {
	if len(classified) == 0 {
		return anomaly.SeverityNone
	}
	rank := map[anomaly.Severity]int{
		anomaly.SeverityNone:     0,
		anomaly.SeverityLow:      1,
		anomaly.SeverityMedium:   2,
		anomaly.SeverityHigh:     3,
		anomaly.SeverityCritical: 4,
	}
	highest := anomaly.SeverityNone
	for _, c := range classified {
		severity := c.Severity
		if c.Violation == anomaly.ViolationAlgedonicAlert {
			severity = anomaly.SeverityCritical
		}
		if rank[severity] > rank[highest] {
			highest = severity
		}
	}
	return highest
}

func describe(result anomaly.Result, data []float64) string {
	if !result.AnomalyDetected {
		return fmt.Sprintf("no anomalies detected across %d points", len(data))
	}
	indices := make([]int, 0, len(result.ClassifiedAnomalies))
	for _, c := range result.ClassifiedAnomalies {
		indices = append(indices, c.Index)
	}
	return fmt.Sprintf("%d anomalies detected (method=%s, severity=%s) at indices %v", result.Count, result.Method, result.Severity, indices)
}

// recommendations derives follow-up actions from the violations present
// and the overall anomaly rate (spec.md §4.4).
func recommendations(result anomaly.Result) []string {
	var recs []string
	seen := map[string]bool{}
	add := func(rec string) {
		if !seen[rec] {
			seen[rec] = true
			recs = append(recs, rec)
		}
	}

	for _, c := range result.ClassifiedAnomalies {
		switch c.Violation {
		case anomaly.ViolationInsufficientVariety:
			add("increase variety")
		case anomaly.ViolationExcessiveVariety:
			add("apply variety filters")
		case anomaly.ViolationRecursionBreakdown:
			add("check recursion channels")
		}
	}
	if result.Critical {
		add("activate algedonic response")
	}
	if result.InputSize > 0 && float64(result.Count)/float64(result.InputSize) > 0.2 {
		add("review baseline")
	}
	return recs
}
