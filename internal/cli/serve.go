package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	libsqlrepo "github.com/lems-app/lems-server/internal/adapters/libsql"
	"github.com/lems-app/lems-server/internal/adapters/otel"
	"github.com/lems-app/lems-server/internal/config"
	"github.com/lems-app/lems-server/internal/database"
	"github.com/lems-app/lems-server/internal/enrichment"
	"github.com/lems-app/lems-server/internal/forms"
	"github.com/lems-app/lems-server/internal/insights"
	"github.com/lems-app/lems-server/internal/logging"
	"github.com/lems-app/lems-server/internal/migrate"
	"github.com/lems-app/lems-server/internal/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the insights API server",
	Long: `Start the HTTP server: insights API, form-creation proxy and the
static dashboard frontend.

Examples:
  lems-server serve                # Start on the configured port (default 3000)
  PORT=8080 lems-server serve      # Start on port 8080`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	logger := logging.New(cfg.Verbose)

	db, err := database.New(cfg.DatabaseURL, cfg.AuthToken)
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer db.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := migrate.RunAll(ctx, db); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Println("\nShutting down...")
		cancel()
	}()

	var metrics otel.Recorder
	otelCfg := otel.LoadConfig()
	if otelCfg.Enabled {
		exporter, err := otel.NewExporter(ctx, otelCfg)
		if err != nil {
			logger.Error(fmt.Sprintf("metrics exporter unavailable, continuing without: %v", err))
			metrics = otel.NewNoOpRecorder()
		} else {
			metrics = exporter
			defer exporter.Close(context.Background())
		}
	} else {
		metrics = otel.NewNoOpRecorder()
	}

	repo := libsqlrepo.NewSessionRepository(db)
	service := insights.NewService(repo, enrichment.New(), logger, cfg.FeedbackFanout)
	formsClient := forms.NewClient(cfg.AppsScriptURL)

	server := web.NewServer(
		web.Options{
			Port:           cfg.Port,
			AllowedOrigins: cfg.AllowedOrigins,
			StaticDir:      cfg.StaticDir,
		},
		repo,
		service,
		formsClient,
		metrics,
		logger,
	)
	return server.Start(ctx)
}
