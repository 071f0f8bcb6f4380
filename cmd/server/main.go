package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"travelrec/internal/app"
	"travelrec/internal/config"
	"travelrec/internal/handler"
	"travelrec/internal/observability"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.Logging, "travelrec-server")
	log.Logger = logger

	logger.Info().
		Str("version", Version).
		Str("build_time", BuildTime).
		Str("git_commit", GitCommit).
		Msg("Travel Recommendation Server")

	// Set Gin mode
	gin.SetMode(cfg.Server.GinMode)

	ctx := context.Background()
	engine, err := app.NewServerEngine(ctx, cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize engine")
	}
	defer engine.Close()

	logger.Info().
		Str("engine_mode", cfg.Server.EngineMode).
		Str("catalog_source", cfg.Catalog.Source).
		Int("max_results", cfg.Engine.MaxResults).
		Msg("✅ Services initialized")

	// Initialize handlers
	build := handler.BuildInfo{Version: Version, BuildTime: BuildTime, GitCommit: GitCommit}
	recommendationHandler := handler.NewRecommendationHandler(engine.Evaluator, logger)
	healthHandler := handler.NewHealthHandler("travel-recommendation-engine", build, engine.Snapshot)

	router := handler.NewRouter(recommendationHandler, healthHandler, cfg.Server.AllowedOrigins, logger)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info().Str("addr", addr).Msg("🚀 Starting server")
		logger.Info().Msgf("📝 API: http://localhost:%d/api/v1/recommendations", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("🛑 Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("Server forced to shutdown")
	}

	logger.Info().Msg("✅ Server stopped")
}
