package domain

import (
	"sort"
	"strings"
	"time"
)

// Session is one recorded activity session belonging to a user, with its
// timed segments. A nil Timestamp means the client never reported one; the
// insights pass substitutes the computation instant.
type Session struct {
	ID        string
	UserID    string
	Type      string
	Timestamp *time.Time
	Segments  []Segment
	CreatedAt time.Time
}

// Segment is a named sub-interval of a session with an actual and a
// planned duration, both in seconds.
type Segment struct {
	Name            string
	Duration        float64
	PlannedDuration float64
}

// FeedbackRecord holds one free-form feedback submission for a session.
// Fields is an open map: clients send whatever form fields they collected.
type FeedbackRecord struct {
	ID        string
	SessionID string
	Fields    map[string]any
	CreatedAt time.Time
}

// Normalize applies the storage-boundary defaults: durations are clamped to
// non-negative and names are trimmed. Loosely-typed documents become
// explicit zeroes here so the aggregation core never sees malformed values.
func (s *Session) Normalize() {
	s.Type = strings.TrimSpace(s.Type)
	for i := range s.Segments {
		s.Segments[i].Name = strings.TrimSpace(s.Segments[i].Name)
		if s.Segments[i].Duration < 0 {
			s.Segments[i].Duration = 0
		}
		if s.Segments[i].PlannedDuration < 0 {
			s.Segments[i].PlannedDuration = 0
		}
	}
}

// TotalDuration sums the actual durations of all segments, named or not.
func (s *Session) TotalDuration() float64 {
	var total float64
	for _, seg := range s.Segments {
		total += seg.Duration
	}
	return total
}

// TextValues returns the trimmed, non-blank string field values of the
// record. Field names are visited in sorted order so the enrichment input
// is reproducible across runs.
func (f *FeedbackRecord) TextValues() []string {
	if len(f.Fields) == 0 {
		return nil
	}
	names := make([]string, 0, len(f.Fields))
	for name := range f.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	var values []string
	for _, name := range names {
		s, ok := f.Fields[name].(string)
		if !ok {
			continue
		}
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		values = append(values, s)
	}
	return values
}
