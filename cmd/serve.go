package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"spacescope/internal/clients"
	"spacescope/internal/config"
	"spacescope/internal/handlers"
	"spacescope/internal/llm"
	"spacescope/internal/repo"
	"spacescope/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	// Optional snapshot archive
	var archive services.Archive
	if cfg.ArchiveEnabled() {
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("unable to connect to database: %w", err)
		}
		defer pool.Close()
		logger.Info("database connection pool established")

		if err := repo.InitDB(ctx, pool); err != nil {
			return fmt.Errorf("failed to initialize database: %w", err)
		}
		archive = repo.NewSnapshotRepo(pool)
	} else {
		logger.Info("DATABASE_URL not set, feed archive disabled")
	}

	// Generation provider
	var gen llm.Generator = llm.Unavailable
	if cfg.Gemini.APIKey != "" {
		client, err := llm.NewGenAIClient(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model, cfg.Gemini.BaseURL)
		if err != nil {
			return fmt.Errorf("creating Gemini client: %w", err)
		}
		gen = client
	} else {
		logger.Warn("GEMINI_API_KEY not set, navigator and analyses will report failures")
	}

	// Initialize clients and services
	nasa := clients.NewNasaClient(cfg.NasaAPIURL, cfg.NasaAPIKey)
	meteo := clients.NewOpenMeteoClient(cfg.OpenMeteoURL)
	feeds := services.NewFeedService(nasa, meteo, archive, loc, logger)
	sessions := services.NewSessionService(gen, cfg.Gemini.Model, cfg.ShareOrigin, cfg.SessionTTL(), logger)

	// Start background tasks
	go sessions.Run(ctx)
	if archive != nil {
		startBackgroundTasks(ctx, cfg, feeds)
	}

	// Setup HTTP server
	if !debug {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(gin.Logger())

	handler := handlers.NewHandler(feeds, sessions, logger)
	handlers.SetupRoutes(r, handler)

	srv := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: r,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("spacescope listening", zap.String("addr", cfg.ListenAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("failed to start server: %w", err)
		}
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// startBackgroundTasks keeps the archive warm: each feed is fetched and
// archived on its own interval
func startBackgroundTasks(ctx context.Context, cfg *config.AppConfig, feeds *services.FeedService) {
	intervals := cfg.FetchInterval
	tasks := []struct {
		source  string
		seconds int
	}{
		{services.SourceApod, intervals.ApodSeconds},
		{services.SourceNeo, intervals.NeoSeconds},
		{services.SourceDonki, intervals.DonkiSeconds},
	}

	for _, task := range tasks {
		if task.seconds <= 0 {
			logger.Info("background task disabled", zap.String("source", task.source))
			continue
		}
		go func(source string, every time.Duration) {
			logger.Info("starting background task", zap.String("source", source), zap.Duration("interval", every))
			ticker := time.NewTicker(every)
			defer ticker.Stop()
			for {
				feeds.Refresh(ctx, []string{source})
				select {
				case <-ctx.Done():
					return
				case <-ticker.C:
				}
			}
		}(task.source, time.Duration(task.seconds)*time.Second)
	}

	logger.Info("all background tasks started")
}
