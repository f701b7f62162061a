// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package quality

import (
	"context"
	"io"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/herrkrueger/epo.patlib2025-sub001/internal/citation"
	"github.com/herrkrueger/epo.patlib2025-sub001/internal/dataset"
	"github.com/herrkrueger/epo.patlib2025-sub001/internal/geo"
	"github.com/herrkrueger/epo.patlib2025-sub001/internal/patstat/patstattest"
	"github.com/herrkrueger/epo.patlib2025-sub001/pkg/types"
)

// Two applications in distinct families plus three forward citations:
// 5 volume points, 15 family points for the 1.0 ratio, 5 forward
// points, nothing else.
func TestScoreDocumentedExample(t *testing.T) {
	ds := &types.Dataset{
		Definition: "synthetic",
		Applications: []types.Application{
			{ApplnID: 1, FamilyID: 11},
			{ApplnID: 2, FamilyID: 12},
		},
	}
	citations := &types.CitationSet{
		Forward: []types.Citation{
			{CitingPublnID: 101, CitedApplnID: 1},
			{CitingPublnID: 102, CitedApplnID: 1},
			{CitingPublnID: 103, CitedApplnID: 1},
		},
	}

	got := Score(ds, citations, nil)
	want := types.QualityMetrics{
		TotalApplications: 2,
		TotalFamilies:     2,
		FamilyRatio:       1,
		ForwardCitations:  3,
		VolumePoints:      5,
		FamilyPoints:      15,
		ForwardPoints:     5,
		Score:             25,
		Rating:            types.RatingLimited,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Score mismatch (-want +got):\n%s", diff)
	}
}

func TestScoreFixturePipeline(t *testing.T) {
	db := patstattest.Open(t)
	ctx := context.Background()

	ds, err := dataset.Build(ctx, db, dataset.Default(), io.Discard)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	set, err := citation.Enrich(ctx, db, ds, io.Discard)
	if err != nil {
		t.Fatalf("citation.Enrich: %v", err)
	}
	profile, err := geo.Enrich(ctx, db, ds, io.Discard)
	if err != nil {
		t.Fatalf("geo.Enrich: %v", err)
	}

	got := Score(ds, set, profile)
	want := types.QualityMetrics{
		TotalApplications: 7,
		TotalFamilies:     6,
		FamilyRatio:       6.0 / 7.0,
		ForwardCitations:  6,
		BackwardCitations: 6,
		DistinctCountries: 5,
		VolumePoints:      5,
		FamilyPoints:      15,
		ForwardPoints:     5,
		BackwardPoints:    3,
		CountryPoints:     10,
		Score:             38,
		Rating:            types.RatingLimited,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Score mismatch (-want +got):\n%s", diff)
	}
}

func TestScoreEmptyAndNil(t *testing.T) {
	got := Score(nil, nil, nil)
	if got.Score != 0 || got.Rating != types.RatingLimited {
		t.Errorf("Score(nil) = %d/%s, want 0/limited", got.Score, got.Rating)
	}
	if got.FamilyRatio != 0 {
		t.Errorf("FamilyRatio = %f, want 0 without applications", got.FamilyRatio)
	}

	got = Score(&types.Dataset{}, &types.CitationSet{}, &types.GeoProfile{})
	if got.Score != 0 {
		t.Errorf("Score(empty) = %d, want 0", got.Score)
	}
}

// Saturated inputs across all five dimensions reach exactly 100.
func TestScoreSaturates(t *testing.T) {
	apps := make([]types.Application, 1000)
	for i := range apps {
		apps[i] = types.Application{ApplnID: int64(i + 1), FamilyID: int64(i + 1)}
	}
	forward := make([]types.Citation, 500)
	backward := make([]types.Citation, 200)
	countries := make([]types.CountryShare, 20)

	got := Score(
		&types.Dataset{Applications: apps},
		&types.CitationSet{Forward: forward, Backward: backward},
		&types.GeoProfile{Countries: countries},
	)
	if got.Score != 100 {
		t.Errorf("saturated score = %d, want 100", got.Score)
	}
	if got.Rating != types.RatingExcellent {
		t.Errorf("saturated rating = %q, want excellent", got.Rating)
	}
}

// Each bucket function is monotone over a sweep of its input and never
// exceeds its dimension maximum.
func TestBucketsMonotone(t *testing.T) {
	intBuckets := []struct {
		name string
		fn   func(int) int
		max  int
	}{
		{"volume", volumePoints, 30},
		{"forward", forwardPoints, 25},
		{"backward", backwardPoints, 10},
		{"countries", countryPoints, 20},
	}
	for _, b := range intBuckets {
		prev := 0
		for n := 0; n <= 1200; n++ {
			p := b.fn(n)
			if p < prev {
				t.Errorf("%s points dropped from %d to %d at input %d", b.name, prev, p, n)
			}
			if p > b.max {
				t.Errorf("%s points = %d at input %d, exceeds max %d", b.name, p, n, b.max)
			}
			prev = p
		}
	}

	prev := 0
	for i := 0; i <= 100; i++ {
		ratio := float64(i) / 100
		p := familyPoints(ratio)
		if p < prev {
			t.Errorf("family points dropped from %d to %d at ratio %f", prev, p, ratio)
		}
		if p > 15 {
			t.Errorf("family points = %d at ratio %f, exceeds max 15", p, ratio)
		}
		prev = p
	}
	if got := familyPoints(0.001); got != 2 {
		t.Errorf("familyPoints just above zero = %d, want 2", got)
	}
}

func TestRatingBoundaries(t *testing.T) {
	cases := []struct {
		score int
		want  string
	}{
		{100, types.RatingExcellent},
		{80, types.RatingExcellent},
		{79, types.RatingGood},
		{60, types.RatingGood},
		{59, types.RatingFair},
		{40, types.RatingFair},
		{39, types.RatingLimited},
		{0, types.RatingLimited},
	}
	for _, c := range cases {
		if got := Rating(c.score); got != c.want {
			t.Errorf("Rating(%d) = %q, want %q", c.score, got, c.want)
		}
	}
}

func TestClamp(t *testing.T) {
	if got := clamp(-5); got != 0 {
		t.Errorf("clamp(-5) = %d, want 0", got)
	}
	if got := clamp(140); got != 100 {
		t.Errorf("clamp(140) = %d, want 100", got)
	}
	if got := clamp(57); got != 57 {
		t.Errorf("clamp(57) = %d, want 57", got)
	}
}
