package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prepdesk/prepdesk-backend/internal/config"
	"github.com/prepdesk/prepdesk-backend/internal/database"
	"github.com/prepdesk/prepdesk-backend/internal/handler"
	"github.com/prepdesk/prepdesk-backend/internal/logger"
	"github.com/prepdesk/prepdesk-backend/internal/progresscache"
	"github.com/prepdesk/prepdesk-backend/internal/repository"
	"github.com/prepdesk/prepdesk-backend/internal/router"
	"github.com/prepdesk/prepdesk-backend/internal/service"
	"github.com/prepdesk/prepdesk-backend/internal/validator"
	"github.com/rs/zerolog"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("log_level", cfg.LogLevel).
		Msg("Starting PrepDesk Backend")

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ─── Connect to PostgreSQL ─────────────────────────────────────────
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	// ─── Connect to Redis ──────────────────────────────────────────────
	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()

	// ─── Initialize Repositories ───────────────────────────────────────
	userRepo := repository.NewUserRepository(pool)
	examRepo := repository.NewExamRepository(pool)
	questionRepo := repository.NewQuestionRepository(pool)
	progressRepo := repository.NewProgressRepository(pool)
	resultRepo := repository.NewResultRepository(pool)

	// ─── Initialize Services ──────────────────────────────────────────
	authService := service.NewAuthService(cfg, userRepo)
	examService := service.NewExamService(examRepo, questionRepo, rdb, log)
	questionService := service.NewQuestionService(questionRepo)
	progressService := service.NewProgressService(progressRepo, log)
	scoringService := service.NewScoringService(examService, resultRepo, log)
	reviewService := service.NewReviewService(examRepo, questionRepo, resultRepo)

	attemptCache := progresscache.New(progresscache.NewRedisStore(rdb, "attempt"), log)

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Auth:     handler.NewAuthHandler(authService),
		Exam:     handler.NewExamHandler(examService),
		Question: handler.NewQuestionHandler(questionService),
		Attempt:  handler.NewAttemptHandler(progressService, scoringService, attemptCache, log),
		Review:   handler.NewReviewHandler(reviewService),
	}

	// ─── Prewarm Redis Caches ─────────────────────────────────────────
	// Load every exam's answer key into Redis BEFORE accepting traffic so
	// first submissions never race a cold cache.
	if err := examService.PrewarmAnswerKeys(ctx); err != nil {
		log.Warn().Err(err).Msg("Cache prewarm failed")
	}

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(authService, handlers, cfg)

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
	go func() {
		log.Info().Str("addr", ":"+cfg.ServerPort).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
