// Package windowing provides deterministic sliding-window views over a
// numeric sequence, used by the temporal detector to chunk a raw series
// before running the per-window analyzers (spec.md §4.2).
package windowing

// Default window geometry (spec.md §4.2).
const (
	DefaultSize  = 100
	DefaultSlide = 10
)

// Window is one fixed-size slice of the source sequence plus its start
// offset, so callers can report pattern-record indices relative to the
// original data.
type Window struct {
	Start int
	Data  []float64
}

// Slide produces fixed-size windows of size `size`, stepping `slide`
// elements between windows. An incomplete final window is discarded
// (spec.md §4.2). Returns nil if size <= 0 or data is shorter than size.
func Slide(data []float64, size, slide int) []Window {
	if size <= 0 || slide <= 0 || len(data) < size {
		return nil
	}
	var windows []Window
	for start := 0; start+size <= len(data); start += slide {
		w := make([]float64, size)
		copy(w, data[start:start+size])
		windows = append(windows, Window{Start: start, Data: w})
	}
	return windows
}

// Stream buffers samples pushed one at a time and emits a window each
// time it accumulates `size` elements, then drops the first `slide`
// elements to start the next window (spec.md §4.2's streaming mode).
type Stream struct {
	size   int
	slide  int
	start  int
	buffer []float64
}

// NewStream constructs a streaming window accumulator.
func NewStream(size, slide int) *Stream {
	return &Stream{size: size, slide: slide}
}

// Push appends one sample, returning a completed window and true if the
// buffer just reached `size` elements.
func (s *Stream) Push(value float64) (Window, bool) {
	s.buffer = append(s.buffer, value)
	if len(s.buffer) < s.size {
		return Window{}, false
	}
	w := Window{Start: s.start, Data: append([]float64(nil), s.buffer...)}
	drop := s.slide
	if drop > len(s.buffer) {
		drop = len(s.buffer)
	}
	s.buffer = append([]float64(nil), s.buffer[drop:]...)
	s.start += drop
	return w, true
}
