// Gathermap - Community Activity Tracking and Participant Home Mapping
// Copyright 2026 K. Weston (kweston)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/kweston/gathermap

// Package cohort translates named age cohorts into date-of-birth ranges
// anchored at a reference date. The query builder consumes Range as an
// injected function value, so cohort boundaries can evolve (or be mocked)
// without touching SQL assembly.
package cohort

import "time"

// Cohort names recognized by Range. Unknown is handled by the query builder
// directly (date_of_birth IS NULL) and is never passed to Range.
const (
	Infant  = "Infant"
	Child   = "Child"
	Youth   = "Youth"
	Adult   = "Adult"
	Senior  = "Senior"
	Unknown = "Unknown"
)

// DateRange holds optional date-of-birth bounds for one cohort.
// A nil bound means the cohort is open-ended on that side.
type DateRange struct {
	Min *time.Time
	Max *time.Time
}

// Age boundaries in years between adjacent cohorts.
const (
	infantMaxAge = 2
	childMaxAge  = 13
	youthMaxAge  = 18
	adultMaxAge  = 65
)

// Range returns the date-of-birth bounds for a named cohort, anchored at
// reference. The second return value is false for names Range does not
// recognize; callers are expected to treat unrecognized cohorts as no-ops
// rather than errors.
func Range(name string, reference time.Time) (DateRange, bool) {
	switch name {
	case Infant:
		// Youngest cohort: open-ended toward the reference date.
		min := reference.AddDate(-infantMaxAge, 0, 0)
		return DateRange{Min: &min}, true
	case Child:
		min := reference.AddDate(-childMaxAge, 0, 0)
		max := reference.AddDate(-infantMaxAge, 0, 0)
		return DateRange{Min: &min, Max: &max}, true
	case Youth:
		min := reference.AddDate(-youthMaxAge, 0, 0)
		max := reference.AddDate(-childMaxAge, 0, 0)
		return DateRange{Min: &min, Max: &max}, true
	case Adult:
		min := reference.AddDate(-adultMaxAge, 0, 0)
		max := reference.AddDate(-youthMaxAge, 0, 0)
		return DateRange{Min: &min, Max: &max}, true
	case Senior:
		// Oldest cohort: open-ended toward the past.
		max := reference.AddDate(-adultMaxAge, 0, 0)
		return DateRange{Max: &max}, true
	default:
		return DateRange{}, false
	}
}

// Names lists the cohorts accepted by the API layer, including Unknown.
func Names() []string {
	return []string{Infant, Child, Youth, Adult, Senior, Unknown}
}

// Valid reports whether name is a recognized cohort (including Unknown).
func Valid(name string) bool {
	if name == Unknown {
		return true
	}
	_, ok := Range(name, time.Time{})
	return ok
}
