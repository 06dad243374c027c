// Gathermap - Community Activity Tracking and Participant Home Mapping
// Copyright 2026 K. Weston (kweston)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/kweston/gathermap

package cohort

import (
	"testing"
	"time"
)

var reference = time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

func TestRangeChild(t *testing.T) {
	r, ok := Range(Child, reference)
	if !ok {
		t.Fatal("Child should be a recognized cohort")
	}
	if r.Min == nil || r.Max == nil {
		t.Fatal("Child range must be bounded on both sides")
	}
	wantMin := time.Date(2011, 6, 1, 0, 0, 0, 0, time.UTC)
	wantMax := time.Date(2022, 6, 1, 0, 0, 0, 0, time.UTC)
	if !r.Min.Equal(wantMin) {
		t.Errorf("Child min = %v, want %v", r.Min, wantMin)
	}
	if !r.Max.Equal(wantMax) {
		t.Errorf("Child max = %v, want %v", r.Max, wantMax)
	}
}

func TestRangeOpenEnded(t *testing.T) {
	infant, ok := Range(Infant, reference)
	if !ok || infant.Min == nil || infant.Max != nil {
		t.Errorf("Infant should be min-only, got %+v (ok=%v)", infant, ok)
	}

	senior, ok := Range(Senior, reference)
	if !ok || senior.Max == nil || senior.Min != nil {
		t.Errorf("Senior should be max-only, got %+v (ok=%v)", senior, ok)
	}

	wantSeniorMax := time.Date(1959, 6, 1, 0, 0, 0, 0, time.UTC)
	if !senior.Max.Equal(wantSeniorMax) {
		t.Errorf("Senior max = %v, want %v", senior.Max, wantSeniorMax)
	}
}

func TestRangeAdjacentCohortsShareBoundaries(t *testing.T) {
	child, _ := Range(Child, reference)
	youth, _ := Range(Youth, reference)
	if !youth.Max.Equal(*child.Min) {
		t.Errorf("Youth max (%v) should equal Child min (%v)", youth.Max, child.Min)
	}
}

func TestRangeUnrecognized(t *testing.T) {
	if _, ok := Range("Toddler", reference); ok {
		t.Error("unrecognized cohort name should report ok=false")
	}
	// Unknown is not convertible; the builder special-cases it.
	if _, ok := Range(Unknown, reference); ok {
		t.Error("Unknown must not be convertible to a date range")
	}
}

func TestValid(t *testing.T) {
	for _, name := range Names() {
		if !Valid(name) {
			t.Errorf("Names() entry %q should be valid", name)
		}
	}
	if Valid("Elder") {
		t.Error("Elder is not a recognized cohort")
	}
}
