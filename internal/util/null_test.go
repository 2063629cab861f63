package util

import (
	"database/sql"
	"testing"
	"time"
)

func TestNullString(t *testing.T) {
	if ns := NullString(""); ns.Valid {
		t.Error("expected empty string to be null")
	}
	if ns := NullString("x"); !ns.Valid || ns.String != "x" {
		t.Errorf("expected valid 'x', got %+v", ns)
	}
}

func TestNullTimeRoundTrip(t *testing.T) {
	if ns := NullTime(nil); ns.Valid {
		t.Error("expected nil time to be null")
	}

	ts := time.Date(2025, time.March, 3, 10, 30, 0, 0, time.UTC)
	ns := NullTime(&ts)
	if !ns.Valid {
		t.Fatal("expected valid null string")
	}

	back := TimePtr(ns)
	if back == nil || !back.Equal(ts) {
		t.Errorf("round trip lost the timestamp: %v", back)
	}
}

func TestTimePtr_Invalid(t *testing.T) {
	if got := TimePtr(sql.NullString{}); got != nil {
		t.Errorf("expected nil for null, got %v", got)
	}
	if got := TimePtr(sql.NullString{String: "not-a-time", Valid: true}); got != nil {
		t.Errorf("expected nil for garbage, got %v", got)
	}
}
