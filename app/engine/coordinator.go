// Package engine implements the coordinator: the serial-actor state
// owner that fuses temporal, correlation, and anomaly detector output
// into an engine-state snapshot, persists artifacts best-effort, and
// raises algedonic signals on critical anomalies (spec.md §4.5, §5).
package engine

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/viable-systems/vsm-pattern-engine/adapters/correlation"
	"github.com/viable-systems/vsm-pattern-engine/adapters/temporal"
	"github.com/viable-systems/vsm-pattern-engine/domain/anomaly"
	corrdomain "github.com/viable-systems/vsm-pattern-engine/domain/correlation"
	"github.com/viable-systems/vsm-pattern-engine/domain/core"
	tempdomain "github.com/viable-systems/vsm-pattern-engine/domain/temporal"
	"github.com/viable-systems/vsm-pattern-engine/domain/vsm"
	anomalyadapter "github.com/viable-systems/vsm-pattern-engine/adapters/anomaly"
	"github.com/viable-systems/vsm-pattern-engine/internal"
	"github.com/viable-systems/vsm-pattern-engine/ports"
)

const maxRetainedAnomalies = 100

// State is the engine's owned, mutable snapshot (spec.md §3). All
// mutation happens inside the coordinator's serial event loop.
type State struct {
	Patterns      map[core.PatternID]tempdomain.PatternResult
	Anomalies     []anomaly.Result
	Correlations  map[core.CorrelationID]corrdomain.Result
	VSM           vsm.State
	PatternsAnalyzed     int
	AnomaliesDetected    int
	CorrelationsFound    int
}

func newState() State {
	return State{
		Patterns:     map[core.PatternID]tempdomain.PatternResult{},
		Correlations: map[core.CorrelationID]corrdomain.Result{},
		VSM:          vsm.NewDefaultState(),
	}
}

// Viability is the per-call viability verdict (spec.md §4.5).
type Viability struct {
	Viable          bool
	VarietyRatio    float64
	Recommendations []string
}

// Snapshot is the read-only result of get_system_state (spec.md §4.5).
type Snapshot struct {
	VSM               vsm.State
	PatternsAnalyzed  int
	AnomaliesDetected int
	CorrelationsFound int
	PatternCount      int
	AnomalyCount      int
	CorrelationCount  int
	ViabilityScore    float64
}

// request is one message the coordinator's serial loop processes; each
// carries its own response channel, giving synchronous call semantics
// over an actor (spec.md §9's "single-writer task plus typed
// request/response messages" design note).
type request struct {
	run func(*State)
	done chan struct{}
}

// Coordinator owns State exclusively from within its own goroutine; all
// public methods enqueue a closure and block for it to run (spec.md §5).
type Coordinator struct {
	temporalDetector    *temporal.Detector
	correlationAnalyzer *correlation.Analyzer
	anomalyDetector     *anomalyadapter.Detector
	vectorStore         ports.VectorStore
	telemetry           ports.Telemetry

	requests chan request
	done     chan struct{}
}

// New builds a Coordinator and starts its serial event loop.
func New(
	temporalDetector *temporal.Detector,
	correlationAnalyzer *correlation.Analyzer,
	anomalyDetector *anomalyadapter.Detector,
	vectorStore ports.VectorStore,
	telemetry ports.Telemetry,
) *Coordinator {
	c := &Coordinator{
		temporalDetector:    temporalDetector,
		correlationAnalyzer: correlationAnalyzer,
		anomalyDetector:     anomalyDetector,
		vectorStore:         vectorStore,
		telemetry:           telemetry,
		requests:            make(chan request),
		done:                make(chan struct{}),
	}
	go c.loop()
	return c
}

// loop is the single logical actor (spec.md §5): it owns `state` and
// processes enqueued closures one at a time, so every operation is
// atomic with respect to the others.
func (c *Coordinator) loop() {
	state := newState()
	for {
		select {
		case req := <-c.requests:
			req.run(&state)
			close(req.done)
		case <-c.done:
			return
		}
	}
}

// submit enqueues fn to run inside the serial loop and blocks until it
// completes.
func (c *Coordinator) submit(fn func(*State)) {
	req := request{run: fn, done: make(chan struct{})}
	c.requests <- req
	<-req.done
}

// Close stops the coordinator's event loop.
func (c *Coordinator) Close() {
	close(c.done)
}

// AnalyzePattern runs the temporal detector over data, persists
// best-effort, and records the result (spec.md §4.5).
func (c *Coordinator) AnalyzePattern(ctx context.Context, data []float64) tempdomain.PatternResult {
	result := c.temporalDetector.Analyze(data)

	c.submit(func(s *State) {
		s.Patterns[result.ID] = result
		s.PatternsAnalyzed++
	})

	c.persistPattern(ctx, result)
	if c.telemetry != nil {
		c.telemetry.Count(telemetryPatternAnalyzed, 1, map[string]string{"patterns": itoa(len(result.Patterns))})
	}
	return result
}

// DetectAnomaly runs the anomaly detector against data (baseline
// defaults to the current vsm_state's level varieties), computes
// viability, raises the algedonic channel on critical results, retains
// up to 100 recent anomalies, and persists if anomalies were found
// (spec.md §4.5).
func (c *Coordinator) DetectAnomaly(ctx context.Context, data, baseline []float64, opts anomalyadapter.Options) (anomaly.Result, Viability) {
	var vsmState vsm.State
	c.submit(func(s *State) { vsmState = s.VSM })

	effectiveBaseline := baseline
	if effectiveBaseline == nil {
		for _, l := range vsmState.Levels {
			effectiveBaseline = append(effectiveBaseline, l.Variety)
		}
	}

	result := c.anomalyDetector.Detect(data, effectiveBaseline, &vsmState, opts)
	varietyRatio := vsmState.VarietyRatio()
	viability := Viability{
		Viable:          varietyRatio >= 1.0 && !result.Critical,
		VarietyRatio:    varietyRatio,
		Recommendations: result.Recommendations,
	}

	c.submit(func(s *State) {
		if result.Critical {
			s.VSM.Algedonic = vsm.AlgedonicChannel{
				Active:     true,
				LastSignal: result.Description,
				Timestamp:  core.Now(),
			}
		}
		s.Anomalies = append(s.Anomalies, result)
		if len(s.Anomalies) > maxRetainedAnomalies {
			s.Anomalies = s.Anomalies[len(s.Anomalies)-maxRetainedAnomalies:]
		}
		s.AnomaliesDetected++
	})

	if result.AnomalyDetected {
		c.persistAnomaly(ctx, result)
	}
	if c.telemetry != nil {
		c.telemetry.Count(telemetryAnomalyDetected, int64(result.Count), map[string]string{"critical": boolString(result.Critical)})
		if result.Critical {
			c.telemetry.Event(telemetryCriticalAnomaly, result.Description, true, nil)
		}
	}
	return result, viability
}

// CorrelatePatterns runs the correlation analyzer, persists only if a
// relationship was found significant, and retains the result (spec.md §4.5).
func (c *Coordinator) CorrelatePatterns(ctx context.Context, series []correlation.Series, opts correlation.Options) (corrdomain.Result, error) {
	result, err := c.correlationAnalyzer.Analyze(ctx, series, opts)
	if err != nil {
		return result, err
	}

	c.submit(func(s *State) {
		s.Correlations[result.ID] = result
		s.CorrelationsFound++
	})

	if len(result.Relationships) > 0 {
		c.persistCorrelation(ctx, result)
	}
	return result, nil
}

// GetSystemState returns a read-only snapshot of the coordinator's state
// (spec.md §4.5). viability_score = (variety_ratio + (1 -
// |anomalies|/100) + min(|patterns|/50, 1)) / 3.
func (c *Coordinator) GetSystemState() Snapshot {
	var snap Snapshot
	c.submit(func(s *State) {
		snap = Snapshot{
			VSM:               s.VSM,
			PatternsAnalyzed:  s.PatternsAnalyzed,
			AnomaliesDetected: s.AnomaliesDetected,
			CorrelationsFound: s.CorrelationsFound,
			PatternCount:      len(s.Patterns),
			AnomalyCount:      len(s.Anomalies),
			CorrelationCount:  len(s.Correlations),
		}
		varietyRatio := s.VSM.VarietyRatio()
		anomalyTerm := 1 - float64(len(s.Anomalies))/100
		patternTerm := float64(len(s.Patterns)) / 50
		if patternTerm > 1 {
			patternTerm = 1
		}
		snap.ViabilityScore = (varietyRatio + anomalyTerm + patternTerm) / 3
	})
	return snap
}

func (c *Coordinator) persistPattern(ctx context.Context, result tempdomain.PatternResult) {
	if c.vectorStore == nil {
		return
	}
	content, err := json.Marshal(result)
	if err != nil {
		internal.DefaultLogger.Error("[Coordinator] failed to encode pattern %s: %v", result.ID, err)
		return
	}
	doc := ports.VectorStoreDocument{
		ID: string(result.ID), Type: ports.DocTypePattern,
		Timestamp: result.Timestamp.String(), Content: content,
		Metadata: map[string]any{"data_length": result.DataLength},
	}
	if err := c.vectorStore.StorePattern(ctx, doc); err != nil {
		internal.DefaultLogger.Error("[Coordinator] failed to persist pattern %s: %v", result.ID, err)
	}
}

func (c *Coordinator) persistAnomaly(ctx context.Context, result anomaly.Result) {
	if c.vectorStore == nil {
		return
	}
	content, err := json.Marshal(result)
	if err != nil {
		internal.DefaultLogger.Error("[Coordinator] failed to encode anomaly %s: %v", result.ID, err)
		return
	}
	doc := ports.VectorStoreDocument{
		ID: string(result.ID), Type: ports.DocTypeAnomaly,
		Timestamp: result.Timestamp.String(), Content: content,
		Metadata: map[string]any{"severity": string(result.Severity), "critical": result.Critical},
	}
	if err := c.vectorStore.StoreAnomaly(ctx, doc); err != nil {
		internal.DefaultLogger.Error("[Coordinator] failed to persist anomaly %s: %v", result.ID, err)
	}
}

func (c *Coordinator) persistCorrelation(ctx context.Context, result corrdomain.Result) {
	if c.vectorStore == nil {
		return
	}
	content, err := json.Marshal(struct {
		PatternCount  int
		Relationships int
	}{result.PatternCount, len(result.Relationships)})
	if err != nil {
		internal.DefaultLogger.Error("[Coordinator] failed to encode correlation %s: %v", result.ID, err)
		return
	}
	doc := ports.VectorStoreDocument{
		ID: string(result.ID), Type: ports.DocTypeCorrelation,
		Timestamp: result.Timestamp.String(), Content: content,
		Metadata: map[string]any{"relationships": len(result.Relationships)},
	}
	if err := c.vectorStore.StoreCorrelation(ctx, doc); err != nil {
		internal.DefaultLogger.Error("[Coordinator] failed to persist correlation %s: %v", result.ID, err)
	}
}

const (
	telemetryPatternAnalyzed = "pattern_analyzed"
	telemetryAnomalyDetected = "anomaly_detected"
	telemetryCriticalAnomaly = "critical_anomaly"
)

func boolString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
