// Gathermap - Community Activity Tracking and Participant Home Mapping
// Copyright 2026 K. Weston (kweston)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/kweston/gathermap

package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordQuery(t *testing.T) {
	before := testutil.CollectAndCount(QueryDuration)

	RecordQuery("base", 25*time.Millisecond, 10, nil)

	after := testutil.CollectAndCount(QueryDuration)
	if after <= before {
		t.Error("expected query duration to be recorded on success")
	}
}

func TestRecordQueryError(t *testing.T) {
	before := testutil.ToFloat64(QueryErrors.WithLabelValues("temporal"))

	RecordQuery("temporal", 0, 0, errors.New("boom"))

	after := testutil.ToFloat64(QueryErrors.WithLabelValues("temporal"))
	if after != before+1 {
		t.Errorf("expected error counter to increment, got %v -> %v", before, after)
	}
}

func TestTrackActiveRequest(t *testing.T) {
	base := testutil.ToFloat64(APIActiveRequests)

	TrackActiveRequest(true)
	if got := testutil.ToFloat64(APIActiveRequests); got != base+1 {
		t.Errorf("expected gauge %v, got %v", base+1, got)
	}

	TrackActiveRequest(false)
	if got := testutil.ToFloat64(APIActiveRequests); got != base {
		t.Errorf("expected gauge back to %v, got %v", base, got)
	}
}
