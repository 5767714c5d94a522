package engine

import (
	"context"
	"time"

	"github.com/viable-systems/vsm-pattern-engine/internal"
	"github.com/viable-systems/vsm-pattern-engine/ports"
)

// Scheduler runs the coordinator's pattern analysis on a fixed interval
// (spec.md §4.5's "scheduler tick every 5s"). Each tick runs only the
// temporal detector (AnalyzePattern) over the recent vectors; it does
// not run anomaly detection or correlation. A tick is fire-and-forget:
// a failed tick is logged and never skips future ticks (spec.md §7).
type Scheduler struct {
	coordinator *Coordinator
	vectorStore ports.VectorStore
	interval    time.Duration

	stop chan struct{}
}

// NewScheduler builds a Scheduler with the given tick interval.
func NewScheduler(coordinator *Coordinator, vectorStore ports.VectorStore, interval time.Duration) *Scheduler {
	return &Scheduler{
		coordinator: coordinator,
		vectorStore: vectorStore,
		interval:    interval,
		stop:        make(chan struct{}),
	}
}

// Run starts the ticker loop; it returns when ctx is cancelled or Stop is called.
func (s *Scheduler) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.tick(ctx)
		case <-s.stop:
			return
		case <-ctx.Done():
			return
		}
	}
}

// Stop halts the ticker loop.
func (s *Scheduler) Stop() {
	close(s.stop)
}

// tick pulls recent data from the vector store and runs pattern
// detection over it; errors are logged and do not abort future ticks.
func (s *Scheduler) tick(ctx context.Context) {
	if s.vectorStore == nil {
		return
	}
	docs, err := s.vectorStore.GetRecentData(ctx, ports.RecentDataQuery{
		Types: []ports.VectorStoreDocType{ports.DocTypePattern},
		Limit: 100,
		Sort:  "timestamp desc",
	})
	if err != nil {
		internal.DefaultLogger.Error("[Scheduler] tick failed to fetch recent data: %v", err)
		return
	}
	if len(docs) == 0 {
		return
	}

	series := extractVectors(docs)
	if len(series) > 0 {
		s.coordinator.AnalyzePattern(ctx, series)
	}
}

func extractVectors(docs []ports.VectorStoreDocument) []float64 {
	var values []float64
	for _, d := range docs {
		values = append(values, d.Vector...)
	}
	return values
}
