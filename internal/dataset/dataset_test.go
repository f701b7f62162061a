// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dataset

import (
	"context"
	"io"
	"testing"

	"github.com/herrkrueger/epo.patlib2025-sub001/internal/patstat/patstattest"
	"github.com/herrkrueger/epo.patlib2025-sub001/pkg/types"
)

func TestBuildDefaultLandscape(t *testing.T) {
	db := patstattest.Open(t)

	ds, err := Build(context.Background(), db, Default(), io.Discard)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	wantIDs := []int64{3001, 3002, 3003, 3004, 3005, 3006, 3007}
	gotIDs := ds.ApplnIDs()
	if len(gotIDs) != len(wantIDs) {
		t.Fatalf("dataset has %d applications (%v), want %d", len(gotIDs), gotIDs, len(wantIDs))
	}
	seen := make(map[int64]bool)
	for i, id := range gotIDs {
		if id != wantIDs[i] {
			t.Fatalf("gotIDs[%d] = %d, want %d (order must be ascending)", i, id, wantIDs[i])
		}
		if seen[id] {
			t.Fatalf("duplicate application id %d", id)
		}
		seen[id] = true
	}
	if seen[3008] {
		t.Error("lithium decoy leaked into the dataset")
	}

	if ds.KeywordHits != 6 {
		t.Errorf("KeywordHits = %d, want 6", ds.KeywordHits)
	}
	if ds.ClassificationHits != 5 {
		t.Errorf("ClassificationHits = %d, want 5", ds.ClassificationHits)
	}
	if ds.OverlapHits != 4 {
		t.Errorf("OverlapHits = %d, want 4", ds.OverlapHits)
	}
	if len(ds.Applications) > ds.KeywordHits+ds.ClassificationHits {
		t.Error("combined count exceeds the sum of the strategy counts")
	}

	byID := make(map[int64]*types.Application)
	for i := range ds.Applications {
		byID[ds.Applications[i].ApplnID] = &ds.Applications[i]
	}

	// The German-titled magnet filing matches no keyword and must be
	// found by classification alone.
	de := byID[3005]
	if de == nil {
		t.Fatal("application 3005 missing from dataset")
	}
	if len(de.Strategies) != 1 || de.Strategies[0] != types.StrategyClassification {
		t.Errorf("3005 strategies = %v, want classification only", de.Strategies)
	}

	// The magnet-scrap filing is found by both strategies and carries
	// all three of its classification symbols.
	scrap := byID[3001]
	if scrap == nil {
		t.Fatal("application 3001 missing from dataset")
	}
	if !scrap.FoundBy(types.StrategyKeyword) || !scrap.FoundBy(types.StrategyClassification) {
		t.Errorf("3001 strategies = %v, want both", scrap.Strategies)
	}
	if len(scrap.CPCSymbols) != 3 {
		t.Errorf("3001 cpc symbols = %v, want 3", scrap.CPCSymbols)
	}
	if scrap.Title == "" || scrap.FamilyID != 70001 {
		t.Errorf("3001 row incomplete: title=%q family=%d", scrap.Title, scrap.FamilyID)
	}
}

func TestBuildBothStrategiesEmpty(t *testing.T) {
	db := patstattest.Open(t)

	def := Definition{
		Name:        "nothing",
		Keywords:    []string{"unobtainium"},
		CPCPrefixes: []string{"X99X 99/99"},
	}
	ds, err := Build(context.Background(), db, def, io.Discard)
	if err != nil {
		t.Fatalf("Build with no matches must not fail: %v", err)
	}
	if len(ds.Applications) != 0 {
		t.Errorf("Applications = %v, want empty", ds.Applications)
	}
	if ds.KeywordHits != 0 || ds.ClassificationHits != 0 || ds.OverlapHits != 0 {
		t.Errorf("hit counts = %d/%d/%d, want zeros", ds.KeywordHits, ds.ClassificationHits, ds.OverlapHits)
	}
}

func TestBuildSingleStrategyStandsAlone(t *testing.T) {
	db := patstattest.Open(t)

	def := Definition{
		Name:        "lithium",
		YearFrom:    2010,
		Keywords:    []string{"lithium"},
		CPCPrefixes: []string{"X99X"},
	}
	ds, err := Build(context.Background(), db, def, io.Discard)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(ds.Applications) != 1 || ds.Applications[0].ApplnID != 3008 {
		t.Fatalf("Applications = %+v, want just 3008", ds.Applications)
	}
	if got := ds.Applications[0].Strategies; len(got) != 1 || got[0] != types.StrategyKeyword {
		t.Errorf("strategies = %v, want keyword only", got)
	}
}

func TestBuildRespectsCap(t *testing.T) {
	db := patstattest.Open(t)

	def := Default()
	def.MaxResults = 2
	ds, err := Build(context.Background(), db, def, io.Discard)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	// Both strategies return their two lowest ids, which coincide.
	if got := ds.ApplnIDs(); len(got) != 2 || got[0] != 3001 || got[1] != 3002 {
		t.Fatalf("ApplnIDs = %v, want [3001 3002]", got)
	}
	if ds.OverlapHits != 2 {
		t.Errorf("OverlapHits = %d, want 2", ds.OverlapHits)
	}
}

func TestBuildRejectsInvalidDefinition(t *testing.T) {
	db := patstattest.Open(t)

	if _, err := Build(context.Background(), db, Definition{}, io.Discard); err == nil {
		t.Fatal("Build with an invalid definition must fail")
	}
}

func TestCombineTagsAndDedupes(t *testing.T) {
	kw := []types.Application{{ApplnID: 2}, {ApplnID: 1}}
	cl := []types.Application{{ApplnID: 2}, {ApplnID: 3}}

	ds := combine("synthetic", kw, cl)

	if got := ds.ApplnIDs(); len(got) != 3 || got[0] != 1 || got[1] != 2 || got[2] != 3 {
		t.Fatalf("ApplnIDs = %v, want [1 2 3]", got)
	}
	if ds.KeywordHits != 2 || ds.ClassificationHits != 2 || ds.OverlapHits != 1 {
		t.Errorf("hits = %d/%d/%d, want 2/2/1", ds.KeywordHits, ds.ClassificationHits, ds.OverlapHits)
	}
	for _, a := range ds.Applications {
		if a.ApplnID == 2 && len(a.Strategies) != 2 {
			t.Errorf("row 2 strategies = %v, want both", a.Strategies)
		}
	}

	// Duplicate rows within one strategy must not double-tag.
	dup := combine("synthetic", []types.Application{{ApplnID: 7}, {ApplnID: 7}}, nil)
	if len(dup.Applications) != 1 {
		t.Fatalf("duplicate input produced %d rows, want 1", len(dup.Applications))
	}
	if got := dup.Applications[0].Strategies; len(got) != 1 {
		t.Errorf("strategies = %v, want single keyword tag", got)
	}
}
