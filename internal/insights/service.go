package insights

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/lems-app/lems-server/internal/domain"
)

// DefaultFeedbackFanout bounds how many per-session feedback fetches run at
// once. One fetch is issued per session, so this is the dominant latency
// cost of a report; the bound keeps a user with thousands of sessions from
// exhausting repository connections.
const DefaultFeedbackFanout = 8

// Service computes insights reports. One call is one independent logical
// operation; all state is request-local, so a single Service is safe for
// concurrent use.
type Service struct {
	repo    SessionRepository
	enrich  Enricher
	logger  Logger
	fanout  int
	nowFunc func() time.Time
}

// NewService creates an insights service. fanout bounds the concurrent
// feedback fetches; values below 1 fall back to DefaultFeedbackFanout.
func NewService(repo SessionRepository, enrich Enricher, logger Logger, fanout int) *Service {
	if fanout < 1 {
		fanout = DefaultFeedbackFanout
	}
	return &Service{
		repo:    repo,
		enrich:  enrich,
		logger:  logger,
		fanout:  fanout,
		nowFunc: time.Now,
	}
}

// ComputeInsights builds the full report for one user: fetch sessions, fold
// them into weekly/monthly rollups, gather feedback text, and merge in the
// enrichment results. Any repository or enricher failure aborts the whole
// computation; partial reports are never returned. An empty session list is
// a valid input and yields a zeroed report.
func (s *Service) ComputeInsights(ctx context.Context, userID string) (*Report, error) {
	start := time.Now()

	sessions, err := s.repo.ListSessions(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing sessions: %w", err)
	}

	blob, err := s.collectFeedback(ctx, sessions)
	if err != nil {
		return nil, fmt.Errorf("collecting feedback: %w", err)
	}

	rollup := Accumulate(sessions, s.nowFunc())

	sentiment := 0.0
	keywords := []string{}
	if strings.TrimSpace(blob) != "" {
		sentiment, err = s.enrich.ScoreSentiment(ctx, blob)
		if err != nil {
			return nil, fmt.Errorf("scoring sentiment: %w", err)
		}
		keywords, err = s.enrich.ExtractKeywords(ctx, blob)
		if err != nil {
			return nil, fmt.Errorf("extracting keywords: %w", err)
		}
		if keywords == nil {
			keywords = []string{}
		}
	}

	s.logger.Debug(fmt.Sprintf("insights for user %s: %d sessions in %s", userID, len(sessions), time.Since(start)))

	return &Report{
		Summary: Summary{
			TotalSessions:    rollup.TotalSessions,
			AverageDuration:  rollup.AverageDuration,
			MostUsedType:     rollup.MostUsedType,
			AverageSentiment: sentiment,
		},
		Weekly:   rollup.Weekly,
		Monthly:  rollup.Monthly,
		Keywords: keywords,
	}, nil
}

// collectFeedback fetches each session's feedback records with a bounded
// fan-out and joins the text values with single spaces. Results are written
// into a slice indexed by session position, so the blob order follows
// session fetch order no matter which fetch completes first.
func (s *Service) collectFeedback(ctx context.Context, sessions []domain.Session) (string, error) {
	if len(sessions) == 0 {
		return "", nil
	}

	results := make([][]domain.FeedbackRecord, len(sessions))
	errs := make([]error, len(sessions))
	sem := make(chan struct{}, s.fanout)

	var wg sync.WaitGroup
	for i, sess := range sessions {
		wg.Add(1)
		go func(i int, sessionID string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			results[i], errs[i] = s.repo.ListFeedback(ctx, sessionID)
		}(i, sess.ID)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return "", err
		}
	}

	var texts []string
	for _, records := range results {
		for _, rec := range records {
			texts = append(texts, rec.TextValues()...)
		}
	}
	return strings.Join(texts, " "), nil
}
