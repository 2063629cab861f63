package web

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/lems-app/lems-server/internal/domain"
	"github.com/lems-app/lems-server/internal/forms"
)

func (s *Server) handleInsights(c *gin.Context) {
	userID := c.Query("userId")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing userId"})
		return
	}

	start := time.Now()
	report, err := s.insights.ComputeInsights(c.Request.Context(), userID)

	sessionCount := 0
	if report != nil {
		sessionCount = report.Summary.TotalSessions
	}
	s.metrics.RecordComputation(c.Request.Context(), sessionCount, time.Since(start), err)

	if err != nil {
		s.logger.Error(fmt.Sprintf("computing insights for %s: %v", userID, err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Dashboard fetch failed"})
		return
	}

	c.JSON(http.StatusOK, report)
}

func (s *Server) handleCreateForm(c *gin.Context) {
	var req forms.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing segments or sessionId."})
		return
	}
	if len(req.Segments) == 0 || string(req.Segments) == "null" || req.SessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing segments or sessionId."})
		return
	}

	data, err := s.forms.Create(c.Request.Context(), req)
	if errors.Is(err, forms.ErrNotConfigured) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Apps Script URL is not configured."})
		return
	}
	if err != nil {
		s.logger.Error(fmt.Sprintf("creating form for session %s: %v", req.SessionID, err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "An unexpected error occurred."})
		return
	}

	c.JSON(http.StatusOK, data)
}

type segmentPayload struct {
	Name            string  `json:"name"`
	Duration        float64 `json:"duration"`
	PlannedDuration float64 `json:"plannedDuration"`
}

type sessionPayload struct {
	UserID    string           `json:"userId"`
	Type      string           `json:"type"`
	Timestamp *time.Time       `json:"timestamp"`
	Segments  []segmentPayload `json:"segments"`
}

type sessionResponse struct {
	ID        string           `json:"id"`
	UserID    string           `json:"userId"`
	Type      string           `json:"type"`
	Timestamp *time.Time       `json:"timestamp,omitempty"`
	Segments  []segmentPayload `json:"segments"`
	CreatedAt time.Time        `json:"createdAt"`
}

func (s *Server) handleCreateSession(c *gin.Context) {
	var payload sessionPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid session payload"})
		return
	}
	if payload.UserID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing userId"})
		return
	}

	session := domain.Session{
		UserID:    payload.UserID,
		Type:      payload.Type,
		Timestamp: payload.Timestamp,
	}
	for _, seg := range payload.Segments {
		session.Segments = append(session.Segments, domain.Segment{
			Name:            seg.Name,
			Duration:        seg.Duration,
			PlannedDuration: seg.PlannedDuration,
		})
	}

	if err := s.store.CreateSession(c.Request.Context(), &session); err != nil {
		s.logger.Error(fmt.Sprintf("creating session for %s: %v", payload.UserID, err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store session"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": session.ID})
}

func (s *Server) handleListSessions(c *gin.Context) {
	userID := c.Query("userId")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing userId"})
		return
	}

	sessions, err := s.store.ListSessions(c.Request.Context(), userID)
	if err != nil {
		s.logger.Error(fmt.Sprintf("listing sessions for %s: %v", userID, err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list sessions"})
		return
	}

	out := make([]sessionResponse, 0, len(sessions))
	for _, sess := range sessions {
		resp := sessionResponse{
			ID:        sess.ID,
			UserID:    sess.UserID,
			Type:      sess.Type,
			Timestamp: sess.Timestamp,
			Segments:  make([]segmentPayload, 0, len(sess.Segments)),
			CreatedAt: sess.CreatedAt,
		}
		for _, seg := range sess.Segments {
			resp.Segments = append(resp.Segments, segmentPayload{
				Name:            seg.Name,
				Duration:        seg.Duration,
				PlannedDuration: seg.PlannedDuration,
			})
		}
		out = append(out, resp)
	}

	c.JSON(http.StatusOK, gin.H{"sessions": out})
}

func (s *Server) handleCreateFeedback(c *gin.Context) {
	sessionID := c.Param("id")

	var fields map[string]any
	if err := c.ShouldBindJSON(&fields); err != nil || len(fields) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing feedback fields"})
		return
	}

	record := domain.FeedbackRecord{
		SessionID: sessionID,
		Fields:    fields,
	}
	if err := s.store.CreateFeedback(c.Request.Context(), &record); err != nil {
		s.logger.Error(fmt.Sprintf("storing feedback for session %s: %v", sessionID, err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store feedback"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": record.ID})
}
