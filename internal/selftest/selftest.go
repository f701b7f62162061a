// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package selftest verifies an installation by running every pipeline
// stage against a bundled SQLite fixture, without touching a real
// PATSTAT instance.
package selftest

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/herrkrueger/epo.patlib2025-sub001/internal/citation"
	"github.com/herrkrueger/epo.patlib2025-sub001/internal/dataset"
	"github.com/herrkrueger/epo.patlib2025-sub001/internal/geo"
	"github.com/herrkrueger/epo.patlib2025-sub001/internal/logging"
	"github.com/herrkrueger/epo.patlib2025-sub001/internal/patstat"
	"github.com/herrkrueger/epo.patlib2025-sub001/internal/quality"
	"github.com/herrkrueger/epo.patlib2025-sub001/internal/report"
	"github.com/herrkrueger/epo.patlib2025-sub001/pkg/types"
)

// Check verifies one pipeline stage against the fixture.
type Check struct {
	Name string
	Run  func(ctx context.Context, db *patstat.DB, workDir string, w io.Writer) error
}

// Checks returns the named checks in pipeline order.
func Checks() []Check {
	return []Check{
		{Name: "dataset", Run: checkDataset},
		{Name: "citations", Run: checkCitations},
		{Name: "geography", Run: checkGeography},
		{Name: "quality", Run: checkQuality},
		{Name: "report", Run: checkReport},
	}
}

// StageNames lists the valid check names.
func StageNames() []string {
	checks := Checks()
	names := make([]string, len(checks))
	for i, c := range checks {
		names[i] = c.Name
	}
	return names
}

// Run builds the fixture in a temporary directory and executes the
// selected checks; an empty stage runs all of them. It returns an
// error when any check fails.
func Run(ctx context.Context, stage string, w io.Writer) error {
	checks := Checks()
	if stage != "" {
		var selected []Check
		for _, c := range checks {
			if c.Name == stage {
				selected = append(selected, c)
			}
		}
		if len(selected) == 0 {
			return fmt.Errorf("unknown stage %q, valid stages: %s",
				stage, strings.Join(StageNames(), ", "))
		}
		checks = selected
	}

	workDir, err := os.MkdirTemp("", "patent-landscape-selftest-")
	if err != nil {
		return fmt.Errorf("creating selftest directory: %w", err)
	}
	defer os.RemoveAll(workDir)

	fixturePath := filepath.Join(workDir, "patstat.db")
	if err := patstat.BuildFixture(fixturePath); err != nil {
		return fmt.Errorf("building fixture: %w", err)
	}

	db, err := patstat.Open(ctx, types.DatabaseConfig{
		Driver: "sqlite3",
		DSN:    fixturePath,
	})
	if err != nil {
		return fmt.Errorf("opening fixture: %w", err)
	}
	defer db.Close()

	log := logging.Named("selftest")
	failed := 0
	for _, c := range checks {
		fmt.Fprintf(w, "=== %s\n", c.Name)
		if err := c.Run(ctx, db, workDir, w); err != nil {
			failed++
			fmt.Fprintf(w, "FAIL %s: %v\n", c.Name, err)
			log.Error().Err(err).Str("check", c.Name).Msg("selftest check failed")
			continue
		}
		fmt.Fprintf(w, "ok   %s\n", c.Name)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d checks failed", failed, len(checks))
	}
	fmt.Fprintf(w, "\nAll %d checks passed.\n", len(checks))
	return nil
}

func checkDataset(ctx context.Context, db *patstat.DB, _ string, w io.Writer) error {
	ds, err := dataset.Build(ctx, db, dataset.Default(), w)
	if err != nil {
		return err
	}

	if got := len(ds.Applications); got != 7 {
		return fmt.Errorf("applications = %d, want 7", got)
	}
	if ds.KeywordHits != 6 || ds.ClassificationHits != 5 || ds.OverlapHits != 4 {
		return fmt.Errorf("strategy hits = %d/%d/%d, want 6/5/4",
			ds.KeywordHits, ds.ClassificationHits, ds.OverlapHits)
	}

	seen := make(map[int64]bool)
	for _, a := range ds.Applications {
		if seen[a.ApplnID] {
			return fmt.Errorf("duplicate application id %d", a.ApplnID)
		}
		seen[a.ApplnID] = true
	}
	if seen[3008] {
		return fmt.Errorf("decoy application 3008 present in the dataset")
	}
	return nil
}

func checkCitations(ctx context.Context, db *patstat.DB, _ string, w io.Writer) error {
	ds, err := dataset.Build(ctx, db, dataset.Default(), io.Discard)
	if err != nil {
		return err
	}
	set, err := citation.Enrich(ctx, db, ds, w)
	if err != nil {
		return err
	}

	if len(set.Forward) != 6 || len(set.Backward) != 6 {
		return fmt.Errorf("citations = %d forward / %d backward, want 6/6",
			len(set.Forward), len(set.Backward))
	}
	for _, c := range set.Backward {
		if c.CitingPublnID == 9108 {
			return fmt.Errorf("decoy citation surfaced in the backward table")
		}
	}

	// An empty dataset must not touch the database.
	before := db.QueryCount()
	if _, err := citation.Enrich(ctx, db, &types.Dataset{}, io.Discard); err != nil {
		return err
	}
	if db.QueryCount() != before {
		return fmt.Errorf("empty dataset issued citation queries")
	}
	return nil
}

func checkGeography(ctx context.Context, db *patstat.DB, _ string, w io.Writer) error {
	ds, err := dataset.Build(ctx, db, dataset.Default(), io.Discard)
	if err != nil {
		return err
	}
	profile, err := geo.Enrich(ctx, db, ds, w)
	if err != nil {
		return err
	}

	if len(profile.Primary) != len(ds.Applications) {
		return fmt.Errorf("primary applicants = %d, want one per application (%d)",
			len(profile.Primary), len(ds.Applications))
	}
	if len(profile.Countries) != 5 {
		return fmt.Errorf("countries = %d, want 5", len(profile.Countries))
	}
	if profile.Countries[0].CountryCode != "DE" {
		return fmt.Errorf("leading country = %s, want DE", profile.Countries[0].CountryCode)
	}
	return nil
}

func checkQuality(ctx context.Context, db *patstat.DB, _ string, w io.Writer) error {
	ds, err := dataset.Build(ctx, db, dataset.Default(), io.Discard)
	if err != nil {
		return err
	}
	set, err := citation.Enrich(ctx, db, ds, io.Discard)
	if err != nil {
		return err
	}
	profile, err := geo.Enrich(ctx, db, ds, io.Discard)
	if err != nil {
		return err
	}

	m := quality.Score(ds, set, profile)
	report.FormatScorecard(m, w)

	if m.Score != 38 || m.Rating != types.RatingLimited {
		return fmt.Errorf("score = %d (%s), want 38 (limited)", m.Score, m.Rating)
	}
	if m.TotalFamilies != 6 {
		return fmt.Errorf("families = %d, want 6", m.TotalFamilies)
	}
	return nil
}

func checkReport(ctx context.Context, db *patstat.DB, workDir string, w io.Writer) error {
	ds, err := dataset.Build(ctx, db, dataset.Default(), io.Discard)
	if err != nil {
		return err
	}
	set, err := citation.Enrich(ctx, db, ds, io.Discard)
	if err != nil {
		return err
	}
	profile, err := geo.Enrich(ctx, db, ds, io.Discard)
	if err != nil {
		return err
	}
	m := quality.Score(ds, set, profile)
	r := report.Build(ds, m, profile)

	exporter := &report.Exporter{Dir: filepath.Join(workDir, "exports"), Parquet: true}
	paths, err := exporter.ExportAll(ds, set, profile, r, w)
	if err != nil {
		return err
	}
	if len(paths) != 6 {
		return fmt.Errorf("exports = %d files, want 6", len(paths))
	}

	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return fmt.Errorf("export missing: %w", err)
		}
		if info.Size() == 0 {
			return fmt.Errorf("export %s is empty", filepath.Base(p))
		}
	}

	data, err := os.ReadFile(paths[len(paths)-1])
	if err != nil {
		return fmt.Errorf("reading report json: %w", err)
	}
	var got types.BusinessReport
	if err := json.Unmarshal(data, &got); err != nil {
		return fmt.Errorf("parsing report json: %w", err)
	}
	if got.RunID != r.RunID {
		return fmt.Errorf("report run id = %q, want %q", got.RunID, r.RunID)
	}
	return nil
}
