package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"google.golang.org/genai"

	"github.com/kkrishnan90/mmt-live-api/internal/api/handlers"
	"github.com/kkrishnan90/mmt-live-api/internal/api/middleware"
	"github.com/kkrishnan90/mmt-live-api/internal/audit"
	"github.com/kkrishnan90/mmt-live-api/internal/config"
	infraBQ "github.com/kkrishnan90/mmt-live-api/internal/infra/bigquery"
	"github.com/kkrishnan90/mmt-live-api/internal/infra/memstore"
	"github.com/kkrishnan90/mmt-live-api/internal/ledger"
	"github.com/kkrishnan90/mmt-live-api/internal/logger"
	"github.com/kkrishnan90/mmt-live-api/internal/relay"
	"github.com/kkrishnan90/mmt-live-api/internal/tools"
	"github.com/kkrishnan90/mmt-live-api/internal/travel"
)

const version = "1.0.0"

func main() {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		panic(err)
	}

	log := logger.New(cfg.LogLevel)
	ctx := context.Background()

	// Ledger store: BigQuery when a project is configured, otherwise the
	// seeded in-memory store for local development.
	var store ledger.Store
	var repoClose func()
	if cfg.ProjectID != "" {
		repo, err := infraBQ.NewRepository(ctx, cfg.ProjectID, cfg.DatasetID, log)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create BigQuery repository")
		}
		store = repo
		repoClose = func() {
			if err := repo.Close(); err != nil {
				log.Warn().Err(err).Msg("Closing BigQuery repository")
			}
		}
		log.Info().Str("project", cfg.ProjectID).Str("dataset", cfg.DatasetID).Msg("Using BigQuery ledger store")
	} else {
		store = memstore.Seeded(cfg.DemoUserID)
		log.Warn().Str("user", cfg.DemoUserID).Msg("GOOGLE_CLOUD_PROJECT not set, using seeded in-memory ledger store")
	}
	if repoClose != nil {
		defer repoClose()
	}

	sink := audit.NewSink(cfg.AuditLogCapacity)
	engine := ledger.NewEngine(store, sink, log)
	catalog := travel.NewCatalog(sink, log)
	dispatcher := tools.NewDispatcher(engine, catalog, cfg.DemoUserID, log)

	geminiClient, err := newGeminiClient(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize Gemini client")
	}
	log.Info().Str("model", cfg.GeminiModelName).Bool("vertex", cfg.UseVertexAI).Msg("Gemini client initialized")

	listenHandler := relay.NewHandler(geminiClient, dispatcher, relay.Options{
		Model:      cfg.GeminiModelName,
		Locale:     cfg.TranscriptionLocale,
		DisableVAD: cfg.DisableVAD,
	}, log)
	logsHandler := handlers.NewLogsHandler(sink, log)
	healthHandler := handlers.NewHealthHandler(version)

	// Periodically archive the audit trail to GCS when a bucket is set.
	archiverCtx, cancelArchiver := context.WithCancel(ctx)
	defer cancelArchiver()
	if cfg.AuditBucket != "" {
		archiver := audit.NewArchiver(sink, cfg.AuditBucket,
			time.Duration(cfg.AuditFlushIntervalMin)*time.Minute, log)
		go archiver.Run(archiverCtx)
	}

	r := chi.NewRouter()
	r.Use(middleware.Recovery(log))
	r.Use(middleware.Logger(log))
	r.Use(middleware.RequestID)
	r.Use(middleware.CORS)

	r.Get("/listen", listenHandler.ServeHTTP)
	r.Get("/api/logs", logsHandler.GetLogs)
	r.Get("/health", healthHandler.Health)
	r.Handle("/metrics", promhttp.Handler())

	// No Read/WriteTimeout: /listen holds a long-lived websocket.
	server := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.ServerPort).Msg("Starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")
	cancelArchiver()

	shutdownCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server shutdown failed")
	}

	log.Info().Msg("Server stopped")
}

// newGeminiClient connects through Vertex AI when configured, otherwise with
// the Gemini API key.
func newGeminiClient(ctx context.Context, cfg config.Config) (*genai.Client, error) {
	if cfg.UseVertexAI {
		return genai.NewClient(ctx, &genai.ClientConfig{
			Backend:  genai.BackendVertexAI,
			Project:  cfg.ProjectID,
			Location: cfg.VertexAILocation,
		})
	}
	return genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: cfg.GeminiAPIKey,
	})
}
