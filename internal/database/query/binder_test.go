// Gathermap - Community Activity Tracking and Participant Home Mapping
// Copyright 2026 K. Weston (kweston)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/kweston/gathermap

package query

import "testing"

func TestBinderNumbering(t *testing.T) {
	b := NewBinder()
	if got := b.Bind("first"); got != "$1" {
		t.Errorf("first placeholder = %q, want $1", got)
	}
	if got := b.Bind(42); got != "$2" {
		t.Errorf("second placeholder = %q, want $2", got)
	}
	if got := b.Bind(nil); got != "$3" {
		t.Errorf("third placeholder = %q, want $3", got)
	}

	args := b.Args()
	if len(args) != 3 || b.Count() != 3 {
		t.Fatalf("expected 3 args, got %d (count %d)", len(args), b.Count())
	}
	if args[0] != "first" || args[1] != 42 || args[2] != nil {
		t.Errorf("args out of order: %v", args)
	}
}

func TestBinderEmpty(t *testing.T) {
	b := NewBinder()
	if b.Count() != 0 {
		t.Errorf("fresh binder count = %d, want 0", b.Count())
	}
	if len(b.Args()) != 0 {
		t.Errorf("fresh binder args = %v, want empty", b.Args())
	}
}
