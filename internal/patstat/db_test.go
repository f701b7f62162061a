// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package patstat

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/herrkrueger/epo.patlib2025-sub001/pkg/types"
)

func openFixture(t *testing.T) *DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "patstat.db")
	require.NoError(t, BuildFixture(path))

	db, err := Open(context.Background(), types.DatabaseConfig{
		Driver:         "sqlite3",
		DSN:            path,
		MaxOpenConns:   1,
		ConnectTimeout: 5 * time.Second,
		SlowQuery:      time.Second,
	})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return db
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), types.DatabaseConfig{Driver: "oracle", DSN: "x"})
	require.Error(t, err)
	require.True(t, IsInvalidInput(err))
}

func TestOpenUnreachableDatabase(t *testing.T) {
	orig := PingBaseDelay
	PingBaseDelay = time.Millisecond
	t.Cleanup(func() { PingBaseDelay = orig })

	// Parent directory does not exist, so every connectivity attempt
	// fails with SQLITE_CANTOPEN until the retries are exhausted.
	dsn := filepath.Join(t.TempDir(), "missing", "patstat.db")
	_, err := Open(context.Background(), types.DatabaseConfig{
		Driver:         "sqlite3",
		DSN:            dsn,
		ConnectTimeout: time.Second,
	})
	require.Error(t, err)
	require.True(t, IsUnavailable(err))
}

func TestQueryCountsAndClassifies(t *testing.T) {
	db := openFixture(t)
	require.Equal(t, int64(0), db.QueryCount())
	require.Equal(t, "sqlite3", db.Driver())

	rows, err := db.Query(context.Background(),
		`SELECT count(*) FROM tls201_appln WHERE appln_filing_year >= $1`, 2017)
	require.NoError(t, err)
	defer rows.Close()

	require.True(t, rows.Next())
	var n int
	require.NoError(t, rows.Scan(&n))
	require.NoError(t, rows.Err())
	require.Equal(t, 8, n)
	require.Equal(t, int64(1), db.QueryCount())

	// Release the single pooled connection (MaxOpenConns is 1) so the
	// next query does not block waiting for it.
	rows.Close()

	_, err = db.Query(context.Background(), `SELECT nope FROM tls999_missing`)
	require.Error(t, err)
	require.True(t, IsBadQuery(err))
	require.Equal(t, int64(2), db.QueryCount(), "failed queries still count")
}

func TestFirstLine(t *testing.T) {
	require.Equal(t, "SELECT a.appln_id", firstLine("\n\t\tSELECT a.appln_id\n\t\tFROM tls201_appln a"))
	require.Equal(t, "", firstLine("  \n\t"))
}
