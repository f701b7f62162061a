// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package history

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/herrkrueger/epo.patlib2025-sub001/pkg/types"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "history", "history.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleReport(runID string, at time.Time, score int) *types.BusinessReport {
	return &types.BusinessReport{
		RunID:       runID,
		GeneratedAt: at,
		Definition:  "rare-earth-elements",
		Metrics: types.QualityMetrics{
			TotalApplications: 7,
			TotalFamilies:     6,
			ForwardCitations:  6,
			BackwardCitations: 6,
			DistinctCountries: 5,
			Score:             score,
			Rating:            types.RatingLimited,
		},
	}
}

func TestRecordAndListNewestFirst(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	older := sampleReport("run-older", time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC), 38)
	newer := sampleReport("run-newer", time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC), 42)

	if err := s.Record(ctx, older); err != nil {
		t.Fatalf("Record older: %v", err)
	}
	if err := s.Record(ctx, newer); err != nil {
		t.Fatalf("Record newer: %v", err)
	}

	runs, err := s.List(ctx, 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("runs = %d, want 2", len(runs))
	}
	if runs[0].RunID != "run-newer" || runs[1].RunID != "run-older" {
		t.Errorf("order = %s, %s; want newest first", runs[0].RunID, runs[1].RunID)
	}
	if runs[0].Score != 42 || runs[0].Applications != 7 {
		t.Errorf("run summary = %+v", runs[0])
	}
	if !runs[0].GeneratedAt.Equal(newer.GeneratedAt) {
		t.Errorf("GeneratedAt = %v, want %v", runs[0].GeneratedAt, newer.GeneratedAt)
	}

	limited, err := s.List(ctx, 1)
	if err != nil {
		t.Fatalf("List limited: %v", err)
	}
	if len(limited) != 1 || limited[0].RunID != "run-newer" {
		t.Errorf("limited list = %+v", limited)
	}
}

func TestRecordOverwritesSameRun(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	r := sampleReport("run-1", time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC), 38)
	if err := s.Record(ctx, r); err != nil {
		t.Fatalf("Record: %v", err)
	}
	r.Metrics.Score = 57
	if err := s.Record(ctx, r); err != nil {
		t.Fatalf("re-Record: %v", err)
	}

	runs, err := s.List(ctx, 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("runs = %d, want the overwrite to keep one row", len(runs))
	}
	if runs[0].Score != 57 {
		t.Errorf("score after overwrite = %d, want 57", runs[0].Score)
	}
}

func TestGetRoundTripsReport(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	want := sampleReport("run-1", time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC), 38)
	want.TopCountries = []types.CountryShare{{CountryCode: "DE", Applications: 2}}
	if err := s.Record(ctx, want); err != nil {
		t.Fatalf("Record: %v", err)
	}

	got, err := s.Get(ctx, "run-1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.RunID != want.RunID || got.Metrics.Score != want.Metrics.Score {
		t.Errorf("Get = %+v, want %+v", got, want)
	}
	if len(got.TopCountries) != 1 || got.TopCountries[0].CountryCode != "DE" {
		t.Errorf("TopCountries did not round-trip: %+v", got.TopCountries)
	}

	if _, err := s.Get(ctx, "missing"); err == nil {
		t.Error("Get on unknown run id succeeded, want error")
	}
}

func TestFormatRuns(t *testing.T) {
	var buf bytes.Buffer
	FormatRuns(nil, &buf)
	if !strings.Contains(buf.String(), "No runs recorded.") {
		t.Errorf("empty history output = %q", buf.String())
	}

	buf.Reset()
	FormatRuns([]Run{{
		RunID:        "9e2c1a34-0000-0000-0000-000000000000",
		GeneratedAt:  time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC),
		Definition:   "rare-earth-elements",
		Applications: 7,
		Score:        38,
		Rating:       types.RatingLimited,
	}}, &buf)
	out := buf.String()
	for _, want := range []string{"Run", "rare-earth-elements", "38", "limited", "1 runs"} {
		if !strings.Contains(out, want) {
			t.Errorf("history table missing %q:\n%s", want, out)
		}
	}
}
