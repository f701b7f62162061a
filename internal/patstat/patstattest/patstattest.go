// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package patstattest opens seeded fixture databases for tests and
// asserts the query-layer conventions.
package patstattest

import (
	"context"
	"path/filepath"
	"regexp"
	"strconv"
	"testing"
	"time"

	"github.com/herrkrueger/epo.patlib2025-sub001/internal/patstat"
	"github.com/herrkrueger/epo.patlib2025-sub001/pkg/types"
)

// Open builds the rare-earth fixture in a temporary file and opens it
// through the regular query layer. The handle is closed when the test
// finishes.
//
// A file-backed database is used rather than :memory: because the
// database/sql pool may open more than one connection, and each
// :memory: connection would see its own empty database.
func Open(t *testing.T) *patstat.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "patstat.db")
	if err := patstat.BuildFixture(path); err != nil {
		t.Fatalf("building fixture: %v", err)
	}

	db, err := patstat.Open(context.Background(), types.DatabaseConfig{
		Driver:         "sqlite3",
		DSN:            path,
		MaxOpenConns:   1,
		ConnectTimeout: 5 * time.Second,
		SlowQuery:      time.Second,
	})
	if err != nil {
		t.Fatalf("opening fixture: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return db
}

var placeholderPattern = regexp.MustCompile(`\$(\d+)`)

// AssertPlaceholders fails the test unless query uses exactly nargs
// positional parameters, each exactly once, numbered 1..nargs in
// ascending order. Both drivers bind such queries identically, so
// every builder must satisfy this.
func AssertPlaceholders(t *testing.T, query string, nargs int) {
	t.Helper()

	matches := placeholderPattern.FindAllStringSubmatch(query, -1)
	if len(matches) != nargs {
		t.Fatalf("query uses %d placeholders, have %d args:\n%s", len(matches), nargs, query)
	}
	for i, m := range matches {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			t.Fatalf("unparsable placeholder %q", m[0])
		}
		if n != i+1 {
			t.Fatalf("placeholder %d in sequence is $%d, want $%d:\n%s", i+1, n, i+1, query)
		}
	}
}
