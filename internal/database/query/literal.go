// Gathermap - Community Activity Tracking and Participant Home Mapping
// Copyright 2026 K. Weston (kweston)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/kweston/gathermap

package query

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// uuidLiteral renders an identifier as a quoted, typed SQL literal.
// Identifier allow-lists are inlined rather than bound: a few thousand
// venues or populations would otherwise exhaust PostgreSQL's 65535
// positional-parameter ceiling. Inlining is safe only for values that
// cannot carry SQL syntax, so anything that is not a canonical 36-char
// UUID fails the build here instead of reaching the statement text.
func uuidLiteral(id string) (string, error) {
	if len(id) != 36 {
		return "", fmt.Errorf("identifier %q is not a canonical UUID", id)
	}
	if _, err := uuid.Parse(id); err != nil {
		return "", fmt.Errorf("identifier %q is not a canonical UUID: %w", id, err)
	}
	return "'" + id + "'::uuid", nil
}

// uuidValueRows renders an identifier list as VALUES rows:
// ('a…'::uuid), ('b…'::uuid).
func uuidValueRows(ids []string) (string, error) {
	rows := make([]string, 0, len(ids))
	for _, id := range ids {
		lit, err := uuidLiteral(id)
		if err != nil {
			return "", err
		}
		rows = append(rows, "("+lit+")")
	}
	return strings.Join(rows, ", "), nil
}

// uuidInList renders an identifier list as an IN-tuple body:
// 'a…'::uuid, 'b…'::uuid.
func uuidInList(ids []string) (string, error) {
	lits := make([]string, 0, len(ids))
	for _, id := range ids {
		lit, err := uuidLiteral(id)
		if err != nil {
			return "", err
		}
		lits = append(lits, lit)
	}
	return strings.Join(lits, ", "), nil
}
