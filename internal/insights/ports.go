package insights

import (
	"context"

	"github.com/lems-app/lems-server/internal/domain"
)

// SessionRepository defines the data access the insights computation needs.
type SessionRepository interface {
	// ListSessions returns every session belonging to userID, in stored order.
	ListSessions(ctx context.Context, userID string) ([]domain.Session, error)

	// ListFeedback returns the feedback records attached to a session.
	ListFeedback(ctx context.Context, sessionID string) ([]domain.FeedbackRecord, error)
}

// Enricher scores sentiment and extracts keywords from a text blob.
type Enricher interface {
	// ScoreSentiment returns a comparative polarity score, 0 for neutral text.
	ScoreSentiment(ctx context.Context, text string) (float64, error)

	// ExtractKeywords returns an ordered keyword list of at most 20 entries.
	ExtractKeywords(ctx context.Context, text string) ([]string, error)
}

// Logger defines the interface for logging.
type Logger interface {
	Debug(msg string)
	Error(msg string)
}
