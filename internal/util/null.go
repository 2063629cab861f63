// Package util holds small conversion helpers shared by the storage layer.
package util

import (
	"database/sql"
	"time"
)

// NullString converts a string to sql.NullString.
// Empty strings are treated as invalid (null).
func NullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

// NullTime converts a *time.Time to an RFC 3339 sql.NullString.
// Nil pointers are treated as invalid (null).
func NullTime(t *time.Time) sql.NullString {
	if t == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: t.UTC().Format(time.RFC3339), Valid: true}
}

// TimePtr parses an RFC 3339 sql.NullString back into a *time.Time.
// Invalid or unparseable values are returned as nil.
func TimePtr(ns sql.NullString) *time.Time {
	if !ns.Valid {
		return nil
	}
	t, err := time.Parse(time.RFC3339, ns.String)
	if err != nil {
		return nil
	}
	return &t
}
