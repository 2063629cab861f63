// Package web exposes the insights API, the form-creation proxy and the
// static dashboard frontend over HTTP.
package web

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/lems-app/lems-server/internal/adapters/otel"
	"github.com/lems-app/lems-server/internal/domain"
	"github.com/lems-app/lems-server/internal/forms"
	"github.com/lems-app/lems-server/internal/insights"
)

// Store is the session storage the HTTP layer needs: the read side consumed
// by the insights computation plus the ingestion writes.
type Store interface {
	insights.SessionRepository
	CreateSession(ctx context.Context, s *domain.Session) error
	CreateFeedback(ctx context.Context, f *domain.FeedbackRecord) error
}

// Options configures the HTTP server.
type Options struct {
	Port           int
	AllowedOrigins []string
	StaticDir      string
}

// Server wires the gin engine, routes and middleware.
type Server struct {
	engine   *gin.Engine
	opts     Options
	store    Store
	insights *insights.Service
	forms    *forms.Client
	metrics  otel.Recorder
	logger   insights.Logger
}

func NewServer(
	opts Options,
	store Store,
	insightsSvc *insights.Service,
	formsClient *forms.Client,
	metrics otel.Recorder,
	logger insights.Logger,
) *Server {
	s := &Server{
		engine:   gin.New(),
		opts:     opts,
		store:    store,
		insights: insightsSvc,
		forms:    formsClient,
		metrics:  metrics,
		logger:   logger,
	}
	s.engine.Use(gin.Recovery())
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.engine.Use(cors.New(cors.Config{
		AllowOrigins:     s.opts.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
	}))

	s.engine.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	api := s.engine.Group("/api")
	{
		api.GET("/dashboard/insights", s.handleInsights)
		api.POST("/create-form", s.handleCreateForm)

		api.POST("/sessions", s.handleCreateSession)
		api.GET("/sessions", s.handleListSessions)
		api.POST("/sessions/:id/feedback", s.handleCreateFeedback)
	}

	// Everything else falls through to the prebuilt SPA: serve the file if
	// it exists, index.html otherwise so client-side routing works.
	s.engine.NoRoute(s.handleStatic)
}

func (s *Server) handleStatic(c *gin.Context) {
	if strings.HasPrefix(c.Request.URL.Path, "/api/") {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	if s.opts.StaticDir == "" {
		c.Status(http.StatusNotFound)
		return
	}

	path := filepath.Join(s.opts.StaticDir, filepath.Clean("/"+c.Request.URL.Path))
	if info, err := os.Stat(path); err == nil && !info.IsDir() {
		c.File(path)
		return
	}
	c.File(filepath.Join(s.opts.StaticDir, "index.html"))
}

// Start runs the server until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.opts.Port),
		Handler:      s.engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	s.logger.Debug(fmt.Sprintf("listening on http://localhost:%d", s.opts.Port))

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(fmt.Sprintf("server shutdown: %v", err))
		}
	}()

	err := server.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}
