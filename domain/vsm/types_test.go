package vsm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewDefaultStateVarietyRatio(t *testing.T) {
	s := NewDefaultState()
	assert.InDelta(t, 1.5, s.VarietyRatio(), 1e-9)
	assert.InDelta(t, 300.0, s.TotalVariety(), 1e-9)
	assert.False(t, s.Algedonic.Active)
}

func TestVarietyRatioZeroEnvironmentIsZero(t *testing.T) {
	s := State{Levels: [5]Level{{Variety: 10}}, Environment: Environment{Variety: 0}}
	assert.Equal(t, 0.0, s.VarietyRatio())
}
