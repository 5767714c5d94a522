package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions (spec.md §7 error kinds).
var (
	// Not found errors
	ErrNotFound           = errors.New("resource not found")
	ErrPatternNotFound     = fmt.Errorf("%w: pattern", ErrNotFound)
	ErrAnomalyNotFound     = fmt.Errorf("%w: anomaly", ErrNotFound)
	ErrCorrelationNotFound = fmt.Errorf("%w: correlation", ErrNotFound)

	// Input-domain errors (§7): never abort the pipeline, callers check these
	// and fall back to "no pattern"/zero-valued results.
	ErrEmptySequence    = errors.New("sequence is empty")
	ErrSequenceTooShort = errors.New("sequence shorter than the minimum required length")
	ErrNonFiniteValue   = errors.New("sequence contains a non-finite value")

	// Insufficient-data errors (§7): reported per-record, overall call still succeeds.
	ErrInsufficientData = errors.New("insufficient data for analysis")

	// Transport errors (§7): returned typed from adapters/vectorstore.
	ErrVectorStoreTimeout     = errors.New("vector store request timed out")
	ErrVectorStoreUnavailable = errors.New("vector store unavailable")

	// Viability errors.
	ErrRecursionBreakdown = errors.New("recursion depth outside viable range")
)

// NewNotFoundError builds a not-found error carrying the resource and id.
func NewNotFoundError(resource string, id string) error {
	return fmt.Errorf("%w: %s with id %s", ErrNotFound, resource, id)
}

// IsNotFoundError reports whether err (or its chain) is a not-found error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsTransportError reports whether err (or its chain) came from the vector-store transport.
func IsTransportError(err error) bool {
	return errors.Is(err, ErrVectorStoreTimeout) || errors.Is(err, ErrVectorStoreUnavailable)
}
