// Package vsm holds the viable-systems-model state the engine
// coordinator owns: the five recursion levels, the environment, and the
// algedonic channel (spec.md §3, §6).
package vsm

import "github.com/viable-systems/vsm-pattern-engine/domain/core"

// Level is one recursion tier's variety and absorption capacity.
type Level struct {
	Variety  float64
	Capacity float64
}

// Environment is the variety and uncertainty of the engine's surrounding
// environment, against which system variety is compared.
type Environment struct {
	Variety     float64
	Uncertainty float64
}

// AlgedonicChannel is the out-of-band critical-alert channel (spec.md §9 GLOSSARY).
type AlgedonicChannel struct {
	Active       bool
	LastSignal   string
	Timestamp    core.Timestamp
}

// State is the full viable-systems-model snapshot the coordinator
// mutates from within its serial event loop (spec.md §3).
type State struct {
	Levels      [5]Level
	Environment Environment
	Algedonic   AlgedonicChannel
}

// NewDefaultState builds the initial VSM state spec.md §6 specifies:
// level varieties 100/80/60/40/20 with capacities 150/120/100/80/50,
// environment variety 200 with uncertainty 0.3, algedonic channel
// inactive.
func NewDefaultState() State {
	return State{
		Levels: [5]Level{
			{Variety: 100, Capacity: 150},
			{Variety: 80, Capacity: 120},
			{Variety: 60, Capacity: 100},
			{Variety: 40, Capacity: 80},
			{Variety: 20, Capacity: 50},
		},
		Environment: Environment{Variety: 200, Uncertainty: 0.3},
		Algedonic:   AlgedonicChannel{Active: false},
	}
}

// TotalVariety sums the variety across all five recursion levels.
func (s State) TotalVariety() float64 {
	var total float64
	for _, l := range s.Levels {
		total += l.Variety
	}
	return total
}

// VarietyRatio is the requisite-variety ratio: system variety over
// environment variety (spec.md GLOSSARY, §8 invariant ratio >= 0).
func (s State) VarietyRatio() float64 {
	if s.Environment.Variety == 0 {
		return 0
	}
	return s.TotalVariety() / s.Environment.Variety
}
