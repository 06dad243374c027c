// Gathermap - Community Activity Tracking and Participant Home Mapping
// Copyright 2026 K. Weston (kweston)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/kweston/gathermap

package query

import "strconv"

// Binder accumulates positional statement parameters. Each Bind call
// appends the value and returns the matching PostgreSQL placeholder, so
// placeholder numbering always agrees with the argument slice.
type Binder struct {
	args []any
}

// NewBinder returns an empty Binder.
func NewBinder() *Binder {
	return &Binder{}
}

// Bind appends value to the argument list and returns its placeholder,
// e.g. "$1" for the first bound value.
func (b *Binder) Bind(value any) string {
	b.args = append(b.args, value)
	return "$" + strconv.Itoa(len(b.args))
}

// Args returns the bound values in placeholder order.
func (b *Binder) Args() []any {
	return b.args
}

// Count returns the number of bound values.
func (b *Binder) Count() int {
	return len(b.args)
}
