package web

import (
	"context"

	"github.com/lems-app/lems-server/internal/domain"
	"github.com/lems-app/lems-server/internal/insights"
)

// MockStore implements Store for handler tests.
type MockStore struct {
	insights.MockRepository

	CreateSessionFunc  func(ctx context.Context, s *domain.Session) error
	CreateFeedbackFunc func(ctx context.Context, f *domain.FeedbackRecord) error
}

func (m *MockStore) CreateSession(ctx context.Context, s *domain.Session) error {
	if m.CreateSessionFunc != nil {
		return m.CreateSessionFunc(ctx, s)
	}
	return nil
}

func (m *MockStore) CreateFeedback(ctx context.Context, f *domain.FeedbackRecord) error {
	if m.CreateFeedbackFunc != nil {
		return m.CreateFeedbackFunc(ctx, f)
	}
	return nil
}
