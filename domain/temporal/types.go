// Package temporal holds the value types the temporal detector produces:
// the tagged-variant Pattern record and the aggregate PatternResult
// (spec.md §3, §4.2).
package temporal

import "github.com/viable-systems/vsm-pattern-engine/domain/core"

// Kind discriminates the Pattern tagged variant.
type Kind string

const (
	KindPeriodic Kind = "periodic"
	KindTrend    Kind = "trend"
	KindBurst    Kind = "burst"
	KindDecay    Kind = "decay"
	KindCyclic   Kind = "cyclic"
)

// TrendSubtype classifies a Trend pattern's slope.
type TrendSubtype string

const (
	TrendFlat        TrendSubtype = "flat"
	TrendIncreasing  TrendSubtype = "increasing"
	TrendDecreasing  TrendSubtype = "decreasing"
)

// BurstInstance is a single above-threshold index within a Burst pattern.
type BurstInstance struct {
	Index     int
	Magnitude float64
}

// Cycle is one zero-crossing-to-zero-crossing interval within a Cyclic pattern.
type Cycle struct {
	StartIndex int
	EndIndex   int
	Duration   int
}

// Pattern is the tagged-variant record every temporal analyzer emits.
// Exactly one of the variant-specific field groups is populated,
// selected by Kind; WindowStart anchors the pattern back to the source
// sequence since analyzers run per sliding window.
type Pattern struct {
	Kind        Kind
	WindowStart int
	Strength    float64 // always in [0,1]

	// Periodic
	Period    float64
	Frequency float64
	Phase     float64

	// Trend
	TrendKind    TrendSubtype
	Slope        float64
	RSquared     float64
	Direction    string
	AbsoluteRate float64

	// Burst
	BurstInstances  []BurstInstance
	BurstCount      int
	AverageMagnitude float64

	// Decay
	DecayRate          float64
	HalfLife           float64
	ProjectedTimeToOneP float64

	// Cyclic
	Cycles       []Cycle
	Regularity   float64
	Variability  float64
}

// TypeSummary aggregates all patterns of one Kind within a PatternResult.
type TypeSummary struct {
	Count        int
	AverageStrength float64
	MaxStrength  float64
}

// PatternResult is the aggregate output of running the temporal detector
// over an entire sequence (spec.md §3).
type PatternResult struct {
	ID              core.PatternID
	Timestamp       core.Timestamp
	DataLength      int
	Patterns        []Pattern
	Summary         map[Kind]TypeSummary
	DominantPattern *Pattern
	Confidence      float64
}
