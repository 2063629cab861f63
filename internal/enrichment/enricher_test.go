package enrichment

import (
	"context"
	"strings"
	"testing"
)

func TestScoreSentiment(t *testing.T) {
	e := New()
	ctx := context.Background()

	positive, err := e.ScoreSentiment(ctx, "This was a great session, I loved every minute and felt wonderful.")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if positive <= 0 {
		t.Errorf("expected positive score, got %f", positive)
	}

	negative, err := e.ScoreSentiment(ctx, "Terrible session, I hated it and everything went wrong.")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if negative >= 0 {
		t.Errorf("expected negative score, got %f", negative)
	}
}

func TestScoreSentiment_BlankInput(t *testing.T) {
	e := New()
	for _, text := range []string{"", "   ", "\n\t"} {
		score, err := e.ScoreSentiment(context.Background(), text)
		if err != nil {
			t.Fatalf("unexpected error for %q: %v", text, err)
		}
		if score != 0 {
			t.Errorf("expected 0 for blank input %q, got %f", text, score)
		}
	}
}

func TestExtractKeywords(t *testing.T) {
	e := New()

	keywords, err := e.ExtractKeywords(context.Background(), "The timer helped my focus during the morning session.")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(keywords) == 0 {
		t.Fatal("expected at least one keyword")
	}

	joined := strings.Join(keywords, " ")
	for _, want := range []string{"timer", "session"} {
		if !strings.Contains(joined, want) {
			t.Errorf("expected keyword %q in %v", want, keywords)
		}
	}
}

func TestExtractKeywords_BlankInput(t *testing.T) {
	e := New()

	keywords, err := e.ExtractKeywords(context.Background(), "   ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if keywords == nil || len(keywords) != 0 {
		t.Errorf("expected empty list, got %v", keywords)
	}
}

func TestExtractKeywords_Bounded(t *testing.T) {
	e := New()

	text := strings.Repeat("The timer on the desk near the window tracked the morning work in the office by the station. ", 8)
	keywords, err := e.ExtractKeywords(context.Background(), text)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(keywords) > 20 {
		t.Errorf("expected at most 20 keywords, got %d", len(keywords))
	}
	if len(keywords) != 20 {
		t.Errorf("expected the cap to be reached for a long nouny text, got %d", len(keywords))
	}
}
