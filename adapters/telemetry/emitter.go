// Package telemetry implements ports.Telemetry on top of
// github.com/DataDog/datadog-go/v5's statsd client, emitting under a
// fixed namespace (spec.md §6). Every call is fire-and-forget: the
// statsd client batches and ships over UDP, and send errors are logged,
// never returned, matching spec.md §5's "telemetry sink is
// fire-and-forget" resource model.
package telemetry

import (
	"github.com/DataDog/datadog-go/v5/statsd"

	"github.com/viable-systems/vsm-pattern-engine/internal"
	"github.com/viable-systems/vsm-pattern-engine/ports"
)

// Namespace is the fixed telemetry prefix spec.md §6 requires.
const Namespace = "vsm."

// Event names for the telemetry categories of spec.md §6. The coordinator
// in app/engine does not use these constants: it emits under its own
// names pattern_analyzed, anomaly_detected and critical_anomaly.
const (
	EventPatternAnalyzed = "pattern-analyzed"
	EventAnomalyDetected = "anomaly-detected"
	EventCriticalAnomaly = "critical-anomaly"
	EventVSM             = "vsm"
	EventVectorStore     = "vector-store"
	EventSystemMemory    = "system-memory"
)

// Emitter wraps a *statsd.Client to implement ports.Telemetry.
type Emitter struct {
	client *statsd.Client
}

var _ ports.Telemetry = (*Emitter)(nil)

// New dials a statsd client at addr (e.g. "127.0.0.1:8125") under the
// fixed vsm. namespace.
func New(addr string) (*Emitter, error) {
	client, err := statsd.New(addr, statsd.WithNamespace(Namespace))
	if err != nil {
		return nil, err
	}
	return &Emitter{client: client}, nil
}

func toTags(tags map[string]string) []string {
	result := make([]string, 0, len(tags))
	for k, v := range tags {
		result = append(result, k+":"+v)
	}
	return result
}

func (e *Emitter) Count(name string, value int64, tags map[string]string) {
	if err := e.client.Count(name, value, toTags(tags), 1); err != nil {
		internal.DefaultLogger.Warn("[Telemetry] count emit failed for %s: %v", name, err)
	}
}

func (e *Emitter) Gauge(name string, value float64, tags map[string]string) {
	if err := e.client.Gauge(name, value, toTags(tags), 1); err != nil {
		internal.DefaultLogger.Warn("[Telemetry] gauge emit failed for %s: %v", name, err)
	}
}

func (e *Emitter) Timing(name string, durationMS float64, tags map[string]string) {
	if err := e.client.TimeInMilliseconds(name, durationMS, toTags(tags), 1); err != nil {
		internal.DefaultLogger.Warn("[Telemetry] timing emit failed for %s: %v", name, err)
	}
}

// Event emits an event; isAlgedonic marks it AlertType "error" and
// Priority "normal" so it bypasses ordinary informational filtering at
// the sink, matching the critical-anomaly algedonic bypass path spec.md
// §7 requires.
func (e *Emitter) Event(title, text string, isAlgedonic bool, tags map[string]string) {
	alertType := statsd.Info
	if isAlgedonic {
		alertType = statsd.Error
	}
	event := statsd.NewEvent(title, text)
	event.AlertType = alertType
	event.Tags = toTags(tags)
	if err := e.client.Event(event); err != nil {
		internal.DefaultLogger.Warn("[Telemetry] event emit failed for %s: %v", title, err)
	}
}

// Close flushes and closes the underlying statsd connection.
func (e *Emitter) Close() error {
	return e.client.Close()
}
