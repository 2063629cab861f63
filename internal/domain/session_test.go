package domain

import (
	"reflect"
	"testing"
)

func TestSession_Normalize(t *testing.T) {
	s := Session{
		Type: "  pomodoro ",
		Segments: []Segment{
			{Name: " focus ", Duration: -5, PlannedDuration: 900},
			{Name: "break", Duration: 300, PlannedDuration: -1},
		},
	}
	s.Normalize()

	if s.Type != "pomodoro" {
		t.Errorf("expected trimmed type, got %q", s.Type)
	}
	if s.Segments[0].Name != "focus" {
		t.Errorf("expected trimmed segment name, got %q", s.Segments[0].Name)
	}
	if s.Segments[0].Duration != 0 {
		t.Errorf("expected negative duration clamped to 0, got %f", s.Segments[0].Duration)
	}
	if s.Segments[1].PlannedDuration != 0 {
		t.Errorf("expected negative planned duration clamped to 0, got %f", s.Segments[1].PlannedDuration)
	}
	if s.Segments[1].Duration != 300 {
		t.Errorf("expected valid duration untouched, got %f", s.Segments[1].Duration)
	}
}

func TestSession_TotalDuration(t *testing.T) {
	s := Session{Segments: []Segment{
		{Name: "focus", Duration: 600},
		{Name: "", Duration: 100}, // unnamed segments still count toward the total
		{Name: "break", Duration: 300},
	}}

	if got := s.TotalDuration(); got != 1000 {
		t.Errorf("expected total 1000, got %f", got)
	}

	empty := Session{}
	if got := empty.TotalDuration(); got != 0 {
		t.Errorf("expected 0 for empty session, got %f", got)
	}
}

func TestFeedbackRecord_TextValues(t *testing.T) {
	tests := []struct {
		name   string
		fields map[string]any
		want   []string
	}{
		{
			name: "strings sorted by field name, trimmed",
			fields: map[string]any{
				"b_comment": " great session ",
				"a_mood":    "focused",
			},
			want: []string{"focused", "great session"},
		},
		{
			name: "non-string and blank values dropped",
			fields: map[string]any{
				"rating":  float64(5),
				"notes":   "   ",
				"comment": "solid",
				"flag":    true,
			},
			want: []string{"solid"},
		},
		{
			name:   "empty record",
			fields: nil,
			want:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := FeedbackRecord{Fields: tt.fields}
			got := rec.TextValues()
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("TextValues() = %v, want %v", got, tt.want)
			}
		})
	}
}
