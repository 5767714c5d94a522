package core

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ID represents an internal, non-externally-addressed domain identifier:
// vector-store document ids, request trace ids, matrix cell references.
type ID string

// NewID creates a new unique identifier using UUID v7 for time-ordered generation.
func NewID() ID {
	// Use UUID v7 for time-ordered, sortable IDs.
	// Falls back to v4 if v7 is not available (for compatibility).
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return ID(id.String())
}

// String returns the string representation.
func (id ID) String() string {
	return string(id)
}

// IsEmpty checks if the ID is empty.
func (id ID) IsEmpty() bool {
	return id == ""
}

const prefixedIDRandBytes = 8 // 8 bytes -> 16 lowercase hex chars

// NewPrefixedID mints an identifier in the "<prefix>_<16 lowercase hex chars>"
// format spec'd for pattern/anomaly/correlation results, reading randomness
// from crypto/rand so identifiers come from a cryptographically strong source.
func NewPrefixedID(prefix string) string {
	buf := make([]byte, prefixedIDRandBytes)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand.Read only fails if the OS entropy source is broken;
		// fall back to a fresh UUID's trailing bytes rather than panic.
		id, _ := uuid.NewV7()
		copy(buf, id[len(id)-prefixedIDRandBytes:])
	}
	return prefix + "_" + hex.EncodeToString(buf)
}

// Domain-specific identifier types minted with NewPrefixedID.
type (
	PatternID     string
	AnomalyID     string
	CorrelationID string
)

func (id PatternID) String() string     { return string(id) }
func (id AnomalyID) String() string     { return string(id) }
func (id CorrelationID) String() string { return string(id) }

// NewPatternID mints a "pat_" prefixed pattern-result identifier.
func NewPatternID() PatternID { return PatternID(NewPrefixedID("pat")) }

// NewAnomalyID mints an "anom_" prefixed anomaly-result identifier.
func NewAnomalyID() AnomalyID { return AnomalyID(NewPrefixedID("anom")) }

// NewCorrelationID mints a "corr_" prefixed correlation-result identifier.
func NewCorrelationID() CorrelationID { return CorrelationID(NewPrefixedID("corr")) }

// ParsePatternID parses a string into a PatternID.
func ParsePatternID(s string) (PatternID, error) {
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("pattern ID cannot be empty")
	}
	return PatternID(s), nil
}

// ParseAnomalyID parses a string into an AnomalyID.
func ParseAnomalyID(s string) (AnomalyID, error) {
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("anomaly ID cannot be empty")
	}
	return AnomalyID(s), nil
}

// ParseCorrelationID parses a string into a CorrelationID.
func ParseCorrelationID(s string) (CorrelationID, error) {
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("correlation ID cannot be empty")
	}
	return CorrelationID(s), nil
}
