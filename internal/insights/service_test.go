package insights

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/lems-app/lems-server/internal/domain"
)

func TestComputeInsights_MergesRollupAndEnrichment(t *testing.T) {
	sessions := []domain.Session{
		focusSession("s1", date(2025, time.March, 3), 600),
		focusSession("s2", date(2025, time.March, 5), 900),
	}
	sessions[0].Type = "pomodoro"
	sessions[1].Type = "pomodoro"

	feedback := map[string][]domain.FeedbackRecord{
		"s1": {{SessionID: "s1", Fields: map[string]any{"comment": "great focus"}}},
		"s2": {{SessionID: "s2", Fields: map[string]any{"comment": "  solid  ", "rating": float64(5)}}},
	}

	var enrichedText string
	repo := &MockRepository{
		ListSessionsFunc: func(ctx context.Context, userID string) ([]domain.Session, error) {
			if userID != "u1" {
				t.Errorf("expected userID u1, got %q", userID)
			}
			return sessions, nil
		},
		ListFeedbackFunc: func(ctx context.Context, sessionID string) ([]domain.FeedbackRecord, error) {
			return feedback[sessionID], nil
		},
	}
	enricher := &MockEnricher{
		ScoreSentimentFunc: func(ctx context.Context, text string) (float64, error) {
			enrichedText = text
			return 0.42, nil
		},
		ExtractKeywordsFunc: func(ctx context.Context, text string) ([]string, error) {
			return []string{"focus"}, nil
		},
	}

	svc := NewService(repo, enricher, NopLogger{}, 0)
	report, err := svc.ComputeInsights(context.Background(), "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if enrichedText != "great focus solid" {
		t.Errorf("expected joined feedback blob in session order, got %q", enrichedText)
	}
	if report.Summary.TotalSessions != 2 {
		t.Errorf("expected 2 sessions, got %d", report.Summary.TotalSessions)
	}
	if report.Summary.AverageDuration != 750 {
		t.Errorf("expected average 750, got %d", report.Summary.AverageDuration)
	}
	if report.Summary.MostUsedType != "pomodoro" {
		t.Errorf("expected pomodoro, got %q", report.Summary.MostUsedType)
	}
	if report.Summary.AverageSentiment != 0.42 {
		t.Errorf("expected sentiment 0.42, got %f", report.Summary.AverageSentiment)
	}
	if len(report.Keywords) != 1 || report.Keywords[0] != "focus" {
		t.Errorf("expected keywords [focus], got %v", report.Keywords)
	}
	if report.Recommendations != nil {
		t.Errorf("expected nil recommendations, got %v", report.Recommendations)
	}
	if _, ok := report.Weekly["2025-W10"]; !ok {
		t.Errorf("expected weekly bucket 2025-W10, got %v", keysOf(report.Weekly))
	}
}

func TestComputeInsights_EmptySessionList(t *testing.T) {
	repo := &MockRepository{
		ListFeedbackFunc: func(ctx context.Context, sessionID string) ([]domain.FeedbackRecord, error) {
			t.Error("feedback must not be fetched when there are no sessions")
			return nil, nil
		},
	}
	enricher := &MockEnricher{
		ScoreSentimentFunc: func(ctx context.Context, text string) (float64, error) {
			t.Error("enricher must not be consulted for an empty corpus")
			return 0, nil
		},
	}

	svc := NewService(repo, enricher, NopLogger{}, 4)
	report, err := svc.ComputeInsights(context.Background(), "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if report.Summary.TotalSessions != 0 {
		t.Errorf("expected 0 sessions, got %d", report.Summary.TotalSessions)
	}
	if report.Summary.MostUsedType != UnknownType {
		t.Errorf("expected %q, got %q", UnknownType, report.Summary.MostUsedType)
	}
	if len(report.Weekly) != 0 || len(report.Monthly) != 0 {
		t.Errorf("expected empty bucket maps, got %d weekly / %d monthly", len(report.Weekly), len(report.Monthly))
	}
	if report.Summary.AverageSentiment != 0 {
		t.Errorf("expected neutral sentiment, got %f", report.Summary.AverageSentiment)
	}
	if report.Keywords == nil || len(report.Keywords) != 0 {
		t.Errorf("expected empty keyword list, got %v", report.Keywords)
	}
}

func TestComputeInsights_BlankFeedbackCorpus(t *testing.T) {
	sessions := []domain.Session{focusSession("s1", date(2025, time.March, 3), 600)}
	repo := &MockRepository{
		ListSessionsFunc: func(ctx context.Context, userID string) ([]domain.Session, error) {
			return sessions, nil
		},
		ListFeedbackFunc: func(ctx context.Context, sessionID string) ([]domain.FeedbackRecord, error) {
			return []domain.FeedbackRecord{
				{SessionID: sessionID, Fields: map[string]any{"notes": "   ", "rating": float64(3)}},
			}, nil
		},
	}
	enricher := &MockEnricher{
		ScoreSentimentFunc: func(ctx context.Context, text string) (float64, error) {
			t.Error("enricher must not be consulted for a blank corpus")
			return 0, nil
		},
	}

	svc := NewService(repo, enricher, NopLogger{}, 4)
	report, err := svc.ComputeInsights(context.Background(), "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if report.Summary.AverageSentiment != 0 {
		t.Errorf("expected sentiment 0, got %f", report.Summary.AverageSentiment)
	}
	if report.Keywords == nil || len(report.Keywords) != 0 {
		t.Errorf("expected empty keywords, got %v", report.Keywords)
	}
}

func TestComputeInsights_DeterministicFeedbackOrder(t *testing.T) {
	const n = 6
	sessions := make([]domain.Session, n)
	for i := range sessions {
		sessions[i] = focusSession(fmt.Sprintf("s%d", i), date(2025, time.March, 3+i), 60)
	}

	repo := &MockRepository{
		ListSessionsFunc: func(ctx context.Context, userID string) ([]domain.Session, error) {
			return sessions, nil
		},
		ListFeedbackFunc: func(ctx context.Context, sessionID string) ([]domain.FeedbackRecord, error) {
			// Later sessions answer faster: completion order is the
			// reverse of session order.
			var idx int
			fmt.Sscanf(sessionID, "s%d", &idx)
			time.Sleep(time.Duration(n-idx) * 2 * time.Millisecond)
			return []domain.FeedbackRecord{
				{SessionID: sessionID, Fields: map[string]any{"comment": sessionID}},
			}, nil
		},
	}

	var got string
	enricher := &MockEnricher{
		ScoreSentimentFunc: func(ctx context.Context, text string) (float64, error) {
			got = text
			return 0, nil
		},
	}

	svc := NewService(repo, enricher, NopLogger{}, 3)
	if _, err := svc.ComputeInsights(context.Background(), "u1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "s0 s1 s2 s3 s4 s5"
	if got != want {
		t.Errorf("expected blob in session order %q, got %q", want, got)
	}
}

func TestComputeInsights_CollaboratorFailures(t *testing.T) {
	sessions := []domain.Session{focusSession("s1", date(2025, time.March, 3), 600)}
	okFeedback := func(ctx context.Context, sessionID string) ([]domain.FeedbackRecord, error) {
		return []domain.FeedbackRecord{{SessionID: sessionID, Fields: map[string]any{"c": "good"}}}, nil
	}
	boom := errors.New("backend unavailable")

	tests := []struct {
		name     string
		repo     *MockRepository
		enricher *MockEnricher
		wantMsg  string
	}{
		{
			name:    "session listing fails",
			repo:    &MockRepository{ListSessionsFunc: func(ctx context.Context, userID string) ([]domain.Session, error) { return nil, boom }},
			wantMsg: "listing sessions",
		},
		{
			name: "feedback fetch fails",
			repo: &MockRepository{
				ListSessionsFunc: func(ctx context.Context, userID string) ([]domain.Session, error) { return sessions, nil },
				ListFeedbackFunc: func(ctx context.Context, sessionID string) ([]domain.FeedbackRecord, error) { return nil, boom },
			},
			wantMsg: "collecting feedback",
		},
		{
			name: "sentiment scoring fails",
			repo: &MockRepository{
				ListSessionsFunc: func(ctx context.Context, userID string) ([]domain.Session, error) { return sessions, nil },
				ListFeedbackFunc: okFeedback,
			},
			enricher: &MockEnricher{ScoreSentimentFunc: func(ctx context.Context, text string) (float64, error) { return 0, boom }},
			wantMsg:  "scoring sentiment",
		},
		{
			name: "keyword extraction fails",
			repo: &MockRepository{
				ListSessionsFunc: func(ctx context.Context, userID string) ([]domain.Session, error) { return sessions, nil },
				ListFeedbackFunc: okFeedback,
			},
			enricher: &MockEnricher{ExtractKeywordsFunc: func(ctx context.Context, text string) ([]string, error) { return nil, boom }},
			wantMsg:  "extracting keywords",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			enricher := tt.enricher
			if enricher == nil {
				enricher = &MockEnricher{}
			}
			svc := NewService(tt.repo, enricher, NopLogger{}, 4)

			report, err := svc.ComputeInsights(context.Background(), "u1")
			if err == nil {
				t.Fatal("expected an error")
			}
			if report != nil {
				t.Error("partial reports must never be returned")
			}
			if !errors.Is(err, boom) {
				t.Errorf("expected wrapped collaborator error, got %v", err)
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("expected error mentioning %q, got %q", tt.wantMsg, err.Error())
			}
		})
	}
}
