package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/docchat-ai/docchat/internal/api/router"
	"github.com/docchat-ai/docchat/internal/appointments"
	"github.com/docchat-ai/docchat/internal/booking"
	appconfig "github.com/docchat-ai/docchat/internal/config"
	"github.com/docchat-ai/docchat/internal/contacts"
	"github.com/docchat-ai/docchat/internal/dialogue"
	"github.com/docchat-ai/docchat/internal/http/handlers"
	"github.com/docchat-ai/docchat/internal/observability/metrics"
	"github.com/docchat-ai/docchat/internal/rag"
	"github.com/docchat-ai/docchat/internal/schedule"
	"github.com/docchat-ai/docchat/internal/transcript"
	"github.com/docchat-ai/docchat/pkg/logging"
)

func main() {
	_ = godotenv.Load()

	cfg := appconfig.Load()
	logger := logging.NewWithWriter(cfg.LogLevel, cfg.LogFormat, os.Stdout)
	logger.Info("starting docchat API server",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	ctx := context.Background()

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error("failed to create postgres pool", "error", err)
		os.Exit(1)
	}
	defer pool.Close()
	if err := pool.Ping(ctx); err != nil {
		logger.Error("failed to ping postgres", "error", err)
		os.Exit(1)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
	defer func() { _ = redisClient.Close() }()

	gemini, err := rag.NewGemini(ctx, cfg.GeminiAPIKey, cfg.GeminiModelID, cfg.GeminiEmbeddingModelID)
	if err != nil {
		logger.Error("failed to create gemini client", "error", err)
		os.Exit(1)
	}
	defer func() { _ = gemini.Close() }()

	m := metrics.NewDialogueMetrics(nil)

	// Storage and domain services.
	contactsRepo := contacts.NewPostgresRepository(pool)
	apptsRepo := appointments.NewPostgresRepository(pool)
	ledger := schedule.NewLedger(apptsRepo)
	dates := schedule.NewDateExtractor()

	ragStore := rag.NewMemoryStore(gemini, logger)
	splitter := rag.NewSplitter(cfg.ChunkSize, cfg.ChunkOverlap)
	ragSvc := rag.NewService(ragStore, gemini, splitter, ragStore, cfg.RAGTopK, m, logger)

	// Dialogue wiring.
	collector := dialogue.NewCollector(dates, ledger, contactsRepo, apptsRepo, logger)
	orchestrator := booking.NewOrchestrator(dates, ledger, contactsRepo, apptsRepo, collector, m, logger)
	dlgRouter := dialogue.NewRouter(collector, orchestrator, ragSvc, dates, m, logger)
	sessions := dialogue.NewSessionStore()
	transcripts := transcript.NewStore(redisClient, cfg.TranscriptTTL)

	chatHandler := handlers.NewChatHandler(sessions, dlgRouter, transcripts, logger)
	docsHandler := handlers.NewDocumentsHandler(ragSvc, cfg.MaxUploadBytes, logger)
	adminHandler := handlers.NewAdminHandler(contactsRepo, apptsRepo, logger)

	r := router.New(&router.Config{
		Logger:             logger,
		ChatHandler:        chatHandler,
		DocsHandler:        docsHandler,
		AdminHandler:       adminHandler,
		MetricsHandler:     promhttp.Handler(),
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		ChatRateLimitRPS:   cfg.ChatRateLimitRPS,
		ChatRateLimitBurst: cfg.ChatRateLimitBurst,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}
