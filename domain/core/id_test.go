package core

import (
	"strings"
	"testing"
)

// TestNewIDUniqueness tests that NewID generates unique identifiers.
func TestNewIDUniqueness(t *testing.T) {
	const numIDs = 10000

	// Generate many IDs
	ids := make(map[ID]bool, numIDs)
	for i := 0; i < numIDs; i++ {
		id := NewID()
		if id.IsEmpty() {
			t.Errorf("Generated empty ID at iteration %d", i)
		}
		if ids[id] {
			t.Errorf("Generated duplicate ID: %s", id)
		}
		ids[id] = true
	}

	if len(ids) != numIDs {
		t.Errorf("Expected %d unique IDs, got %d", numIDs, len(ids))
	}
}

// TestIDString tests ID string conversion.
func TestIDString(t *testing.T) {
	id := ID("test-123")
	if id.String() != "test-123" {
		t.Errorf("Expected String() to return 'test-123', got '%s'", id.String())
	}
}

// TestIDIsEmpty tests ID emptiness check.
func TestIDIsEmpty(t *testing.T) {
	emptyID := ID("")
	if !emptyID.IsEmpty() {
		t.Error("Expected empty ID to be empty")
	}

	nonEmptyID := ID("not-empty")
	if nonEmptyID.IsEmpty() {
		t.Error("Expected non-empty ID to not be empty")
	}
}

// TestNewPrefixedIDFormat checks the "<prefix>_<16 hex>" shape the spec requires.
func TestNewPrefixedIDFormat(t *testing.T) {
	cases := []struct {
		prefix string
		mint   func() string
	}{
		{"pat", func() string { return NewPatternID().String() }},
		{"anom", func() string { return NewAnomalyID().String() }},
		{"corr", func() string { return NewCorrelationID().String() }},
	}

	for _, c := range cases {
		id := c.mint()
		wantPrefix := c.prefix + "_"
		if !strings.HasPrefix(id, wantPrefix) {
			t.Errorf("expected %q to have prefix %q", id, wantPrefix)
		}
		hexPart := strings.TrimPrefix(id, wantPrefix)
		if len(hexPart) != 16 {
			t.Errorf("expected 16 hex chars after prefix, got %d in %q", len(hexPart), id)
		}
		for _, r := range hexPart {
			if !strings.ContainsRune("0123456789abcdef", r) {
				t.Errorf("expected lowercase hex chars, got %q in %q", r, id)
			}
		}
	}
}

func TestNewPrefixedIDUniqueness(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 5000; i++ {
		id := NewPatternID().String()
		if seen[id] {
			t.Fatalf("duplicate prefixed ID generated: %s", id)
		}
		seen[id] = true
	}
}

// TestParsePatternID tests pattern ID parsing.
func TestParsePatternID(t *testing.T) {
	if _, err := ParsePatternID(""); err == nil {
		t.Error("expected error for empty pattern id")
	}
	if _, err := ParsePatternID("   "); err == nil {
		t.Error("expected error for blank pattern id")
	}
	id, err := ParsePatternID("pat_deadbeefcafebabe")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id.String() != "pat_deadbeefcafebabe" {
		t.Errorf("unexpected round trip: %s", id)
	}
}
