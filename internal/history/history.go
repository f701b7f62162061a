// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history records run summaries in a local SQLite store so
// past landscape runs stay comparable without digging through export
// directories.
package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	stderrs "errors"

	_ "github.com/mattn/go-sqlite3"

	"github.com/herrkrueger/epo.patlib2025-sub001/pkg/types"
)

// Store manages the run-history SQLite database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the run-history database at path. Parent
// directories and the schema are created as needed.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating history directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening history database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating history schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			run_id TEXT PRIMARY KEY,
			generated_at TEXT NOT NULL,
			definition TEXT NOT NULL,
			applications INTEGER NOT NULL,
			families INTEGER NOT NULL,
			forward_citations INTEGER NOT NULL,
			backward_citations INTEGER NOT NULL,
			countries INTEGER NOT NULL,
			score INTEGER NOT NULL,
			rating TEXT NOT NULL,
			report TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_generated_at ON runs(generated_at)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record stores one run summary. Re-recording a run id overwrites the
// previous row, so a re-export of the same run never duplicates it.
func (s *Store) Record(ctx context.Context, r *types.BusinessReport) error {
	blob, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO runs (run_id, generated_at, definition, applications, families,
			forward_citations, backward_citations, countries, score, rating, report)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(run_id) DO UPDATE SET
			generated_at=excluded.generated_at, definition=excluded.definition,
			applications=excluded.applications, families=excluded.families,
			forward_citations=excluded.forward_citations,
			backward_citations=excluded.backward_citations,
			countries=excluded.countries, score=excluded.score,
			rating=excluded.rating, report=excluded.report`,
		r.RunID, r.GeneratedAt.UTC().Format(time.RFC3339), r.Definition,
		r.Metrics.TotalApplications, r.Metrics.TotalFamilies,
		r.Metrics.ForwardCitations, r.Metrics.BackwardCitations,
		r.Metrics.DistinctCountries, r.Metrics.Score, r.Metrics.Rating,
		string(blob),
	)
	if err != nil {
		return fmt.Errorf("recording run %s: %w", r.RunID, err)
	}
	return nil
}

// Run is one row of the run history.
type Run struct {
	RunID        string
	GeneratedAt  time.Time
	Definition   string
	Applications int
	Families     int
	Forward      int
	Backward     int
	Countries    int
	Score        int
	Rating       string
}

// List returns recorded runs newest-first. A non-positive limit
// returns everything.
func (s *Store) List(ctx context.Context, limit int) ([]Run, error) {
	query := `SELECT run_id, generated_at, definition, applications, families,
	       forward_citations, backward_citations, countries, score, rating
	FROM runs
	ORDER BY generated_at DESC, run_id`
	var args []any
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var generatedAt string
		if err := rows.Scan(&r.RunID, &generatedAt, &r.Definition,
			&r.Applications, &r.Families, &r.Forward, &r.Backward,
			&r.Countries, &r.Score, &r.Rating); err != nil {
			return nil, fmt.Errorf("scanning run row: %w", err)
		}
		if t, err := time.Parse(time.RFC3339, generatedAt); err == nil {
			r.GeneratedAt = t
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	return runs, nil
}

// Get returns the full stored report for one run id.
func (s *Store) Get(ctx context.Context, runID string) (*types.BusinessReport, error) {
	var blob string
	err := s.db.QueryRowContext(ctx,
		`SELECT report FROM runs WHERE run_id = ?`, runID,
	).Scan(&blob)
	if stderrs.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("run %s not recorded", runID)
	}
	if err != nil {
		return nil, fmt.Errorf("reading run %s: %w", runID, err)
	}

	var r types.BusinessReport
	if err := json.Unmarshal([]byte(blob), &r); err != nil {
		return nil, fmt.Errorf("decoding report for run %s: %w", runID, err)
	}
	return &r, nil
}

// FormatRuns writes the run history as a human-readable table to w.
func FormatRuns(runs []Run, w io.Writer) {
	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs recorded.")
		return
	}

	fmt.Fprintf(w, "%-36s  %-20s  %-24s  %-6s  %-5s  %s\n",
		"Run", "Generated", "Definition", "Apps", "Score", "Rating")
	fmt.Fprintln(w, strings.Repeat("-", 104))

	for _, r := range runs {
		fmt.Fprintf(w, "%-36s  %-20s  %-24s  %-6d  %-5d  %s\n",
			r.RunID, r.GeneratedAt.Format("2006-01-02 15:04:05"),
			truncate(r.Definition, 24), r.Applications, r.Score, r.Rating)
	}

	fmt.Fprintf(w, "\n%d runs\n", len(runs))
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
