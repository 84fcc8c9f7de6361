package core

import (
	"fmt"
	"sort"
	"testing"
	"time"
)

// TestNewIDUniqueness tests that NewID generates unique identifiers
func TestNewIDUniqueness(t *testing.T) {
	const numIDs = 10000

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
}

// IDs minted in different milliseconds sort by creation time
func TestNewIDTimeOrdered(t *testing.T) {
	first := NewID()
	time.Sleep(2 * time.Millisecond)
	second := NewID()

	ids := []string{second.String(), first.String()}
	sort.Strings(ids)
	if ids[0] != first.String() {
		t.Errorf("Expected %s to sort before %s", first, second)
	}
}

func TestNotFoundErrors(t *testing.T) {
	if !IsNotFoundError(ErrDatasetNotFound) {
		t.Error("Expected ErrDatasetNotFound to be a not found error")
	}
	if !IsNotFoundError(fmt.Errorf("load: %w", ErrAnalysisNotFound)) {
		t.Error("Expected a wrapped ErrAnalysisNotFound to be a not found error")
	}
	if IsNotFoundError(fmt.Errorf("other")) {
		t.Error("Expected plain error not to be a not found error")
	}
}
