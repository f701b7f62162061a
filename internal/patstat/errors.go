// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package patstat

import (
	"context"
	"database/sql/driver"
	stderrs "errors"
	"fmt"
	"net"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
)

// ErrorCode classifies a database failure. Connectivity problems,
// defective SQL, and rejected input are distinct cases; an empty
// result set is none of them and is never reported as an error.
type ErrorCode uint8

const (
	// ErrorCodeUnknown is for unclassified errors.
	ErrorCodeUnknown ErrorCode = iota

	// ErrorCodeUnavailable is for transient connectivity failures
	// where a later attempt may succeed.
	ErrorCodeUnavailable

	// ErrorCodeBadQuery is for SQL or schema defects; retrying cannot
	// help.
	ErrorCodeBadQuery

	// ErrorCodeInvalidInput is for rejected caller-supplied parameters
	// or connection settings.
	ErrorCodeInvalidInput
)

// String returns the label used in logs and messages.
func (c ErrorCode) String() string {
	switch c {
	case ErrorCodeUnavailable:
		return "unavailable"
	case ErrorCodeBadQuery:
		return "bad query"
	case ErrorCodeInvalidInput:
		return "invalid input"
	default:
		return "unknown"
	}
}

// Error is the structured error type carrying an ErrorCode. The
// message is developer facing; the code is machine facing.
type Error struct {
	orig error
	msg  string
	code ErrorCode
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.orig != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.orig)
	}
	return e.msg
}

// Unwrap returns the wrapped cause, if any.
func (e *Error) Unwrap() error { return e.orig }

// Code returns the error code.
func (e *Error) Code() ErrorCode { return e.code }

// New returns a new *Error with the given code and message.
func New(code ErrorCode, msg string) error { return &Error{code: code, msg: msg} }

// Newf returns a new *Error with code and formatted message.
func Newf(code ErrorCode, format string, a ...any) error {
	return &Error{code: code, msg: fmt.Sprintf(format, a...)}
}

// Wrap returns a new *Error that wraps orig with code and message.
func Wrap(orig error, code ErrorCode, msg string) error {
	return &Error{code: code, msg: msg, orig: orig}
}

// Wrapf returns a new *Error that wraps orig with code and formatted
// message.
func Wrapf(orig error, code ErrorCode, format string, a ...any) error {
	return &Error{code: code, msg: fmt.Sprintf(format, a...), orig: orig}
}

// As unwraps and returns (*Error, true) if err carries one of ours.
func As(err error) (*Error, bool) {
	var e *Error
	if stderrs.As(err, &e) {
		return e, true
	}
	return nil, false
}

// CodeOf extracts an ErrorCode from any error, defaulting to Unknown.
func CodeOf(err error) ErrorCode {
	if e, ok := As(err); ok {
		return e.code
	}
	return ErrorCodeUnknown
}

// IsCode reports whether err carries the given code.
func IsCode(err error, code ErrorCode) bool { return CodeOf(err) == code }

// IsUnavailable reports whether err is a connectivity failure.
func IsUnavailable(err error) bool { return IsCode(err, ErrorCodeUnavailable) }

// IsBadQuery reports whether err is a SQL or schema defect.
func IsBadQuery(err error) bool { return IsCode(err, ErrorCodeBadQuery) }

// IsInvalidInput reports whether err is a rejected input.
func IsInvalidInput(err error) bool { return IsCode(err, ErrorCodeInvalidInput) }

// Retryable reports whether a failure is worth another attempt. Local
// cancellations and timeouts are not, even though they classify as
// unavailable.
func Retryable(err error) bool {
	if err == nil {
		return false
	}
	if stderrs.Is(err, context.Canceled) || stderrs.Is(err, context.DeadlineExceeded) {
		return false
	}
	return CodeOf(err) == ErrorCodeUnavailable
}

// classify maps a driver error to an ErrorCode. Both drivers are
// handled so stage code never needs to know which engine it runs on.
func classify(err error) ErrorCode {
	if err == nil {
		return ErrorCodeUnknown
	}
	if stderrs.Is(err, context.Canceled) || stderrs.Is(err, context.DeadlineExceeded) {
		return ErrorCodeUnavailable
	}
	if stderrs.Is(err, driver.ErrBadConn) {
		return ErrorCodeUnavailable
	}

	var pgErr *pgconn.PgError
	if stderrs.As(err, &pgErr) {
		return classifySQLState(pgErr.Code)
	}

	var sqErr sqlite3.Error
	if stderrs.As(err, &sqErr) {
		return classifySQLite(sqErr.Code)
	}

	// Dial failures from pgx surface as net errors before any SQLSTATE
	// exists.
	var netErr net.Error
	if stderrs.As(err, &netErr) {
		return ErrorCodeUnavailable
	}

	return ErrorCodeUnknown
}

// classifySQLState maps a PostgreSQL SQLSTATE to an ErrorCode.
func classifySQLState(code string) ErrorCode {
	switch {
	case strings.HasPrefix(code, "08"), // connection exception
		strings.HasPrefix(code, "53"), // insufficient resources
		strings.HasPrefix(code, "57"): // operator intervention, shutdown
		return ErrorCodeUnavailable
	case code == "40001", code == "40P01", code == "55P03":
		// Serialization failure, deadlock, lock not available.
		return ErrorCodeUnavailable
	case strings.HasPrefix(code, "42"): // syntax error, missing table or column
		return ErrorCodeBadQuery
	case strings.HasPrefix(code, "22"), // data exception
		strings.HasPrefix(code, "23"), // integrity constraint violation
		strings.HasPrefix(code, "28"), // invalid authorization
		strings.HasPrefix(code, "3D"): // invalid catalog name
		return ErrorCodeInvalidInput
	default:
		return ErrorCodeUnknown
	}
}

// classifySQLite maps a SQLite primary result code to an ErrorCode.
func classifySQLite(code sqlite3.ErrNo) ErrorCode {
	switch code {
	case sqlite3.ErrBusy, sqlite3.ErrLocked, sqlite3.ErrIoErr,
		sqlite3.ErrCantOpen, sqlite3.ErrFull, sqlite3.ErrProtocol,
		sqlite3.ErrNomem:
		return ErrorCodeUnavailable
	case sqlite3.ErrError, sqlite3.ErrSchema, sqlite3.ErrRange,
		sqlite3.ErrMisuse:
		return ErrorCodeBadQuery
	case sqlite3.ErrConstraint, sqlite3.ErrMismatch, sqlite3.ErrTooBig,
		sqlite3.ErrNotADB, sqlite3.ErrPerm, sqlite3.ErrAuth:
		return ErrorCodeInvalidInput
	default:
		return ErrorCodeUnknown
	}
}
