package insights

import (
	"context"

	"github.com/lems-app/lems-server/internal/domain"
)

// MockRepository is a mock implementation of SessionRepository for testing.
type MockRepository struct {
	ListSessionsFunc func(ctx context.Context, userID string) ([]domain.Session, error)
	ListFeedbackFunc func(ctx context.Context, sessionID string) ([]domain.FeedbackRecord, error)
}

func (m *MockRepository) ListSessions(ctx context.Context, userID string) ([]domain.Session, error) {
	if m.ListSessionsFunc != nil {
		return m.ListSessionsFunc(ctx, userID)
	}
	return nil, nil
}

func (m *MockRepository) ListFeedback(ctx context.Context, sessionID string) ([]domain.FeedbackRecord, error) {
	if m.ListFeedbackFunc != nil {
		return m.ListFeedbackFunc(ctx, sessionID)
	}
	return nil, nil
}

// MockEnricher is a mock implementation of Enricher for testing.
type MockEnricher struct {
	ScoreSentimentFunc  func(ctx context.Context, text string) (float64, error)
	ExtractKeywordsFunc func(ctx context.Context, text string) ([]string, error)
}

func (m *MockEnricher) ScoreSentiment(ctx context.Context, text string) (float64, error) {
	if m.ScoreSentimentFunc != nil {
		return m.ScoreSentimentFunc(ctx, text)
	}
	return 0, nil
}

func (m *MockEnricher) ExtractKeywords(ctx context.Context, text string) ([]string, error) {
	if m.ExtractKeywordsFunc != nil {
		return m.ExtractKeywordsFunc(ctx, text)
	}
	return nil, nil
}

// NopLogger discards all log output.
type NopLogger struct{}

func (NopLogger) Debug(string) {}
func (NopLogger) Error(string) {}
