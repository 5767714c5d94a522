package engine

import (
	"github.com/viable-systems/vsm-pattern-engine/domain/temporal"
	"github.com/viable-systems/vsm-pattern-engine/internal/windowing"
)

// StreamProcessor wraps the temporal detector's streaming window mode
// (spec.md §4.2, §2's "buffered streaming pipeline wrapping detector").
// Each call to Push may complete a window and return its pattern
// analysis; the detector's own windowed Analyze still expects a full
// slice, so the stream here buffers and invokes it one window at a time.
type StreamProcessor struct {
	stream   *windowing.Stream
	detector interface {
		Analyze(data []float64) temporal.PatternResult
	}
}

// NewStreamProcessor builds a StreamProcessor over the given detector
// using spec.md §4.2's default window geometry.
func NewStreamProcessor(detector interface {
	Analyze(data []float64) temporal.PatternResult
}) *StreamProcessor {
	return &StreamProcessor{
		stream:   windowing.NewStream(windowing.DefaultSize, windowing.DefaultSlide),
		detector: detector,
	}
}

// Push appends one sample; when a window completes, it runs the
// detector over that single window and returns the result.
func (s *StreamProcessor) Push(value float64) (temporal.PatternResult, bool) {
	window, ready := s.stream.Push(value)
	if !ready {
		return temporal.PatternResult{}, false
	}
	return s.detector.Analyze(window.Data), true
}
