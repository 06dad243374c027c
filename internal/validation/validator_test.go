// Gathermap - Community Activity Tracking and Participant Home Mapping
// Copyright 2026 K. Weston (kweston)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/kweston/gathermap

package validation

import (
	"strings"
	"testing"
)

type markerRequest struct {
	VenueIDs   []string `validate:"omitempty,uuidlist"`
	AgeCohorts []string `validate:"omitempty,cohortlist"`
	Limit      int      `validate:"min=1,max=500"`
	Offset     int      `validate:"min=0"`
}

func TestValidateStructPasses(t *testing.T) {
	req := markerRequest{
		VenueIDs:   []string{"11111111-1111-1111-1111-111111111111"},
		AgeCohorts: []string{"Child", "Unknown"},
		Limit:      100,
	}
	if err := ValidateStruct(&req); err != nil {
		t.Errorf("valid request rejected: %v", err)
	}
}

func TestValidateStructUUIDList(t *testing.T) {
	tests := []struct {
		name string
		ids  []string
		ok   bool
	}{
		{"empty list", nil, true},
		{"canonical", []string{"11111111-1111-1111-1111-111111111111"}, true},
		{"too short", []string{"1234"}, false},
		{"injection", []string{"'); DROP TABLE venues; --"}, false},
		{"one bad among good", []string{"11111111-1111-1111-1111-111111111111", "nope"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStruct(&markerRequest{VenueIDs: tt.ids, Limit: 1})
			if (err == nil) != tt.ok {
				t.Errorf("ValidateStruct() error = %v, want ok=%v", err, tt.ok)
			}
		})
	}
}

func TestValidateStructCohortList(t *testing.T) {
	if err := ValidateStruct(&markerRequest{AgeCohorts: []string{"Senior"}, Limit: 1}); err != nil {
		t.Errorf("recognized cohort rejected: %v", err)
	}
	err := ValidateStruct(&markerRequest{AgeCohorts: []string{"Toddler"}, Limit: 1})
	if err == nil {
		t.Fatal("unrecognized cohort must be rejected")
	}
	apiErr := err.ToAPIError()
	if apiErr.Code != "VALIDATION_ERROR" {
		t.Errorf("error code = %q", apiErr.Code)
	}
	if !strings.Contains(apiErr.Message, "AgeCohorts") {
		t.Errorf("message should name the failing field: %q", apiErr.Message)
	}
}

func TestValidateStructMultipleErrors(t *testing.T) {
	err := ValidateStruct(&markerRequest{VenueIDs: []string{"bad"}, Limit: 0})
	if err == nil {
		t.Fatal("expected two validation errors")
	}
	if len(err.Errors()) != 2 {
		t.Fatalf("expected 2 errors, got %d: %v", len(err.Errors()), err)
	}
	apiErr := err.ToAPIError()
	if _, ok := apiErr.Details["fields"]; !ok {
		t.Error("multi-error response must carry a fields detail list")
	}
}

func TestTranslateLimitError(t *testing.T) {
	err := ValidateStruct(&markerRequest{Limit: 501})
	if err == nil {
		t.Fatal("limit above maximum must fail")
	}
	if !strings.Contains(err.Error(), "at most 500") {
		t.Errorf("unexpected message: %q", err.Error())
	}
}
