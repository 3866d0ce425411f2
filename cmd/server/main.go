package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/callscope/backend/internal/api"
	"github.com/callscope/backend/internal/config"
	"github.com/callscope/backend/internal/dataset"
	"github.com/callscope/backend/internal/metrics"
	"github.com/callscope/backend/internal/normalizer"
	"github.com/callscope/backend/internal/progress"
	"github.com/callscope/backend/internal/ticker"
	"github.com/callscope/backend/pkg/middleware"
)

func main() {
	// Configure logger
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	// Set log level
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Warn().Str("level", cfg.LogLevel).Msg("invalid log level, using info")
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	log.Info().
		Str("port", cfg.Port).
		Strs("allowed_origins", cfg.AllowedOrigins).
		Str("log_level", cfg.LogLevel).
		Msg("starting callscope backend server")

	// Create WebSocket hub
	hub := progress.NewHub(log.Logger)
	go hub.Run()

	// Create context for services
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Create dataset registry and normalizer
	registry := dataset.NewRegistry(cfg.MaxDatasets)
	norm := normalizer.New(log.Logger)

	// Periodic registry snapshots for connected dashboards
	tickerService := ticker.NewTicker(hub, registry, 5*time.Second, log.Logger)
	go tickerService.Start(ctx)

	// Create handlers
	wsHandler := progress.NewHandler(hub, cfg, log.Logger)
	datasetHandler := api.NewDatasetHandler(registry, norm, hub, cfg, log.Logger)
	analysisHandler := api.NewAnalysisHandler(registry, hub, cfg, log.Logger)

	// Create router
	r := chi.NewRouter()

	// Add middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(log.Logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.CORS(cfg.AllowedOrigins))

	// Register public routes
	r.Get("/health", healthHandler)
	r.Get("/metrics", metrics.Get().Handler())
	r.Get("/ws", wsHandler.ServeHTTP)

	// Dataset routes
	r.Route("/api/datasets", func(r chi.Router) {
		r.Post("/", datasetHandler.Upload)
		r.Get("/", datasetHandler.List)

		r.Route("/{datasetID}", func(r chi.Router) {
			r.Get("/", datasetHandler.Get)
			r.Delete("/", datasetHandler.Delete)
			r.Get("/records", datasetHandler.GetRecords)
			r.Get("/concurrency", analysisHandler.GetConcurrency)
			r.Get("/export", analysisHandler.Export)

			r.Route("/rollups", func(r chi.Router) {
				r.Get("/direction", analysisHandler.GetDirectionRollup)
				r.Get("/hourly", analysisHandler.GetHourlyRollup)
				r.Get("/weekday", analysisHandler.GetWeekdayRollup)
				r.Get("/users", analysisHandler.GetUserRollup)
			})
		})
	})

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info().Msgf("server listening on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")

	// Stop the snapshot ticker
	cancel()

	// Create shutdown context with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	// Attempt graceful shutdown
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}

// healthHandler handles health check requests
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, `{"status":"ok","service":"callscope-backend"}`)
}
