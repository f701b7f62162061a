// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package patstat opens and queries the PATSTAT patent database.
//
// Two drivers are supported: pgx against a remote PostgreSQL instance
// and sqlite3 against a local extract. All queries use positional $n
// placeholders, each exactly once in ascending order, which both
// drivers bind identically. Failures carry an ErrorCode so callers can
// tell an unreachable database from a defective query or bad input; an
// empty result set is never an error.
package patstat

import (
	"context"
	"database/sql"
	"strings"
	"sync/atomic"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"

	"github.com/herrkrueger/epo.patlib2025-sub001/internal/logging"
	"github.com/herrkrueger/epo.patlib2025-sub001/pkg/types"
)

// PingBaseDelay controls the base duration for backoff between
// connectivity checks. Tests override this to avoid real sleeps.
var PingBaseDelay = 500 * time.Millisecond

const pingAttempts = 3

// DB wraps the database handle with error classification, query
// timing, and a query counter. One handle serves the whole process and
// is threaded through the stages as an explicit argument.
type DB struct {
	sql     *sql.DB
	driver  string
	slow    time.Duration
	queries atomic.Int64
	log     *logging.Logger
}

// Open opens the database described by cfg and verifies connectivity.
// The connectivity check retries transient failures with exponential
// backoff (attempts bounded, queries themselves are never retried).
func Open(ctx context.Context, cfg types.DatabaseConfig) (*DB, error) {
	switch cfg.Driver {
	case "pgx", "sqlite3":
	default:
		return nil, Newf(ErrorCodeInvalidInput, "unsupported driver %q", cfg.Driver)
	}

	handle, err := sql.Open(cfg.Driver, cfg.DSN)
	if err != nil {
		return nil, Wrap(err, ErrorCodeInvalidInput, "opening database")
	}
	if cfg.MaxOpenConns > 0 {
		handle.SetMaxOpenConns(cfg.MaxOpenConns)
	}

	db := &DB{
		sql:    handle,
		driver: cfg.Driver,
		slow:   cfg.SlowQuery,
		log:    logging.Named("patstat"),
	}

	if err := db.ping(ctx, cfg.ConnectTimeout); err != nil {
		handle.Close()
		return nil, err
	}

	db.log.Debug().Str("driver", cfg.Driver).Msg("database opened")
	return db, nil
}

// ping verifies connectivity with bounded exponential backoff: base
// delay doubling per attempt, aborted early on context cancellation or
// a non-transient failure.
func (db *DB) ping(ctx context.Context, timeout time.Duration) error {
	var last error
	for attempt := 0; ; attempt++ {
		pctx := ctx
		var cancel context.CancelFunc
		if timeout > 0 {
			pctx, cancel = context.WithTimeout(ctx, timeout)
		}
		err := db.sql.PingContext(pctx)
		if cancel != nil {
			cancel()
		}
		if err == nil {
			return nil
		}

		last = Wrap(err, classify(err), "connectivity check")
		if attempt >= pingAttempts-1 || !Retryable(last) {
			break
		}

		backoff := time.Duration(1<<attempt) * PingBaseDelay
		db.log.Warn().Err(err).Dur("backoff", backoff).
			Int("attempt", attempt+1).Int("max", pingAttempts).
			Msg("connectivity check failed, retrying")

		select {
		case <-ctx.Done():
			return Wrap(ctx.Err(), ErrorCodeUnavailable, "connectivity check")
		case <-time.After(backoff):
		}
	}
	return last
}

// Query runs a read query. Every call increments the query counter;
// timing goes to the debug log, or a warning above the slow-query
// threshold. Errors come back classified.
func (db *DB) Query(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	db.queries.Add(1)
	start := time.Now()
	rows, err := db.sql.QueryContext(ctx, query, args...)
	elapsed := time.Since(start)

	if db.slow > 0 && elapsed >= db.slow {
		db.log.Warn().Dur("elapsed", elapsed).Str("query", firstLine(query)).Msg("slow query")
	} else {
		db.log.Debug().Dur("elapsed", elapsed).Str("query", firstLine(query)).Msg("query")
	}

	if err != nil {
		return nil, Wrap(err, classify(err), "query failed")
	}
	return rows, nil
}

// QueryCount returns the number of queries issued so far.
func (db *DB) QueryCount() int64 { return db.queries.Load() }

// Driver returns the driver name the handle was opened with.
func (db *DB) Driver() string { return db.driver }

// Close releases the database handle.
func (db *DB) Close() error { return db.sql.Close() }

// firstLine returns the first non-empty line of a query for log
// context without dumping multi-line SQL into the log stream.
func firstLine(query string) string {
	for _, line := range strings.Split(query, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			return line
		}
	}
	return ""
}
