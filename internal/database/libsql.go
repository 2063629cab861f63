// Package database opens libsql connections for local files and remote
// Turso databases.
package database

import (
	"context"
	"database/sql"
	"strings"
	"time"

	_ "github.com/tursodatabase/go-libsql"
)

// New opens a libsql database. url may be a local file ("file:lems.db") or a
// remote libsql URL; authToken is appended for remote databases and ignored
// when empty.
func New(url, authToken string) (*sql.DB, error) {
	connStr := url
	if authToken != "" {
		connStr += "?authToken=" + authToken
	}

	db, err := sql.Open("libsql", connStr)
	if err != nil {
		return nil, err
	}

	// Remote libsql servers aggressively close idle Hrana streams, which
	// surfaces as "stream not found" on stale pooled connections. Keep the
	// pool small and short-lived.
	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(0)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(0)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// IsStreamError reports whether err is a libsql "stream not found" error.
func IsStreamError(err error) bool {
	return err != nil && strings.Contains(err.Error(), "stream not found")
}

// WithRetry executes fn, retrying up to maxRetries times on stream errors.
// All other errors are returned immediately; the insights path itself never
// retries, so this is the only retry in the system and it lives at the
// storage boundary.
func WithRetry[T any](ctx context.Context, maxRetries int, fn func() (T, error)) (T, error) {
	var result T
	var err error

	for attempt := 0; attempt <= maxRetries; attempt++ {
		result, err = fn()
		if err == nil {
			return result, nil
		}
		if !IsStreamError(err) || attempt == maxRetries {
			return result, err
		}

		select {
		case <-ctx.Done():
			return result, ctx.Err()
		case <-time.After(10 * time.Millisecond):
		}
	}
	return result, err
}
