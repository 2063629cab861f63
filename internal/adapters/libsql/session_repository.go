// Package libsql implements the session store over a libsql database.
package libsql

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/lems-app/lems-server/internal/database"
	"github.com/lems-app/lems-server/internal/domain"
	"github.com/lems-app/lems-server/internal/util"
)

const listRetries = 2

// SessionRepository persists sessions, their segments and feedback records.
type SessionRepository struct {
	db *sql.DB
}

func NewSessionRepository(db *sql.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// CreateSession stores a session and its segments in one transaction. The
// session is normalized first so malformed client documents become explicit
// defaults before they reach disk. Missing IDs and creation times are
// filled in.
func (r *SessionRepository) CreateSession(ctx context.Context, s *domain.Session) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now().UTC()
	}
	s.Normalize()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO sessions (id, user_id, type, timestamp, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		s.ID, s.UserID, s.Type, util.NullTime(s.Timestamp), s.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting session: %w", err)
	}

	for i, seg := range s.Segments {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO session_segments (session_id, position, name, duration, planned_duration)
			VALUES (?, ?, ?, ?, ?)`,
			s.ID, i, seg.Name, seg.Duration, seg.PlannedDuration,
		)
		if err != nil {
			return fmt.Errorf("inserting segment %d: %w", i, err)
		}
	}

	return tx.Commit()
}

// ListSessions returns every session belonging to userID in creation order,
// with segments attached in their stored positions.
func (r *SessionRepository) ListSessions(ctx context.Context, userID string) ([]domain.Session, error) {
	return database.WithRetry(ctx, listRetries, func() ([]domain.Session, error) {
		return r.listSessions(ctx, userID)
	})
}

func (r *SessionRepository) listSessions(ctx context.Context, userID string) ([]domain.Session, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, type, timestamp, created_at
		FROM sessions
		WHERE user_id = ?
		ORDER BY created_at, id`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("querying sessions: %w", err)
	}
	defer rows.Close()

	var sessions []domain.Session
	index := make(map[string]int)
	for rows.Next() {
		var s domain.Session
		var ts sql.NullString
		var createdAt string
		if err := rows.Scan(&s.ID, &s.UserID, &s.Type, &ts, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning session: %w", err)
		}
		s.Timestamp = util.TimePtr(ts)
		if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
			s.CreatedAt = t
		}
		index[s.ID] = len(sessions)
		sessions = append(sessions, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating sessions: %w", err)
	}
	if len(sessions) == 0 {
		return sessions, nil
	}

	segRows, err := r.db.QueryContext(ctx, `
		SELECT seg.session_id, seg.name, seg.duration, seg.planned_duration
		FROM session_segments seg
		JOIN sessions s ON s.id = seg.session_id
		WHERE s.user_id = ?
		ORDER BY seg.session_id, seg.position`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("querying segments: %w", err)
	}
	defer segRows.Close()

	for segRows.Next() {
		var sessionID string
		var seg domain.Segment
		if err := segRows.Scan(&sessionID, &seg.Name, &seg.Duration, &seg.PlannedDuration); err != nil {
			return nil, fmt.Errorf("scanning segment: %w", err)
		}
		if i, ok := index[sessionID]; ok {
			sessions[i].Segments = append(sessions[i].Segments, seg)
		}
	}
	if err := segRows.Err(); err != nil {
		return nil, fmt.Errorf("iterating segments: %w", err)
	}

	return sessions, nil
}

// CreateFeedback stores one feedback record. Fields are serialized as a JSON
// object; non-object payloads are rejected at the handler layer.
func (r *SessionRepository) CreateFeedback(ctx context.Context, f *domain.FeedbackRecord) error {
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	if f.CreatedAt.IsZero() {
		f.CreatedAt = time.Now().UTC()
	}
	if f.Fields == nil {
		f.Fields = map[string]any{}
	}

	fields, err := json.Marshal(f.Fields)
	if err != nil {
		return fmt.Errorf("encoding feedback fields: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO feedback_records (id, session_id, fields, created_at)
		VALUES (?, ?, ?, ?)`,
		f.ID, f.SessionID, string(fields), f.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting feedback: %w", err)
	}
	return nil
}

// ListFeedback returns a session's feedback records in creation order.
// Records whose stored fields fail to decode are returned with an empty
// field map rather than failing the whole listing.
func (r *SessionRepository) ListFeedback(ctx context.Context, sessionID string) ([]domain.FeedbackRecord, error) {
	return database.WithRetry(ctx, listRetries, func() ([]domain.FeedbackRecord, error) {
		return r.listFeedback(ctx, sessionID)
	})
}

func (r *SessionRepository) listFeedback(ctx context.Context, sessionID string) ([]domain.FeedbackRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, session_id, fields, created_at
		FROM feedback_records
		WHERE session_id = ?
		ORDER BY created_at, id`,
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("querying feedback: %w", err)
	}
	defer rows.Close()

	var records []domain.FeedbackRecord
	for rows.Next() {
		var f domain.FeedbackRecord
		var fields, createdAt string
		if err := rows.Scan(&f.ID, &f.SessionID, &fields, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning feedback: %w", err)
		}
		if err := json.Unmarshal([]byte(fields), &f.Fields); err != nil {
			f.Fields = map[string]any{}
		}
		if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
			f.CreatedAt = t
		}
		records = append(records, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating feedback: %w", err)
	}
	return records, nil
}
