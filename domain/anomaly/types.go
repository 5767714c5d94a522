// Package anomaly holds the value types the anomaly detector produces:
// the tagged-variant ClassifiedAnomaly and the aggregate Result
// (spec.md §3, §4.4).
package anomaly

import "github.com/viable-systems/vsm-pattern-engine/domain/core"

// Method identifies which detection strategy produced a Result.
type Method string

const (
	MethodStatistical     Method = "statistical"
	MethodIsolationForest Method = "isolation_forest"
	MethodLOF             Method = "lof"
	MethodVSMBased        Method = "vsm_based"
)

// Severity is the ordered anomaly severity scale (spec.md §3).
type Severity string

const (
	SeverityNone     Severity = "none"
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// Violation enumerates the vsm_based method's violation kinds (spec.md §4.4).
type Violation string

const (
	ViolationInsufficientVariety Violation = "insufficient_variety"
	ViolationExcessiveVariety    Violation = "excessive_variety"
	ViolationRecursionBreakdown  Violation = "recursion_breakdown"
	ViolationAlgedonicAlert      Violation = "algedonic_alert"
)

// ClassifiedAnomaly is the tagged-variant record emitted per flagged
// index, common fields plus exactly one variant's fields populated
// depending on which method produced it (spec.md §3).
type ClassifiedAnomaly struct {
	Index    int
	Value    float64
	Severity Severity

	// statistical
	Z          float64
	Deviation  float64

	// isolation_forest / lof share the Score field, tagged by Method
	Score float64

	// vsm_based
	Variety      float64
	VarietyRatio float64
	Violation    Violation
}

// Result is the aggregate output of one anomaly-detection call (spec.md §3).
type Result struct {
	ID                core.AnomalyID
	Timestamp         core.Timestamp
	Method            Method
	InputSize         int
	AnomalyDetected   bool
	Count             int
	ClassifiedAnomalies []ClassifiedAnomaly
	Severity          Severity
	Critical          bool
	Description       string
	Recommendations   []string
}
