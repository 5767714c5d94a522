package windowing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlideDiscardsIncompleteFinalWindow(t *testing.T) {
	data := make([]float64, 25)
	for i := range data {
		data[i] = float64(i)
	}
	windows := Slide(data, 10, 10)
	assert.Len(t, windows, 2)
	assert.Equal(t, 0, windows[0].Start)
	assert.Equal(t, 10, windows[1].Start)
}

func TestSlideShorterThanSize(t *testing.T) {
	assert.Nil(t, Slide([]float64{1, 2, 3}, 10, 10))
}

func TestStreamEmitsOnFill(t *testing.T) {
	s := NewStream(3, 1)
	_, ok := s.Push(1)
	assert.False(t, ok)
	_, ok = s.Push(2)
	assert.False(t, ok)
	w, ok := s.Push(3)
	assert.True(t, ok)
	assert.Equal(t, []float64{1, 2, 3}, w.Data)

	w2, ok := s.Push(4)
	assert.True(t, ok)
	assert.Equal(t, []float64{2, 3, 4}, w2.Data)
}
