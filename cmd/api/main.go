package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/promptstudio/promptstudio-go/internal/config"
	"github.com/promptstudio/promptstudio-go/internal/enhance"
	"github.com/promptstudio/promptstudio-go/internal/handler"
	"github.com/promptstudio/promptstudio-go/internal/logging"
	"github.com/promptstudio/promptstudio-go/internal/repository"
	"github.com/promptstudio/promptstudio-go/internal/service"
)

func main() {
	envErr := godotenv.Load()

	cfg := config.Load()

	logger := logging.New(logging.Options{
		Level: cfg.LogLevel,
		File:  cfg.LogFile,
		JSON:  cfg.IsProduction(),
	})
	slog.SetDefault(logger)
	if envErr != nil {
		logger.Warn("no .env file found, using environment variables")
	}

	gateway := enhance.New(enhance.Config{
		APIKey:  cfg.OpenAIAPIKey,
		BaseURL: cfg.OpenAIBaseURL,
		Model:   cfg.OpenAIModel,
		Timeout: cfg.EnhanceTimeout,
	}, logger)

	routerCfg := handler.RouterConfig{
		Logger:      logger,
		JWTSecret:   cfg.JWTSecret,
		Gateway:     gateway,
		RateLimit:   cfg.EnhanceRateLimit,
		RateBurst:   cfg.EnhanceRateBurst,
		CORSOrigins: cfg.CORSOrigins,
	}

	// Persistence routes are only mounted when a store is available.
	switch cfg.DatabaseDriver {
	case repository.DriverMemory:
		logger.Warn("using in-memory store, data is lost on restart")
		routerCfg.Prompts = service.NewPromptService(repository.NewMemoryPromptRepository(), logger)
		routerCfg.Profiles = service.NewProfileService(repository.NewMemoryProfileRepository(), logger)
	default:
		db, err := repository.NewDB(cfg.DatabaseDriver, cfg.DatabaseDSN)
		if err != nil {
			logger.Warn("database connection failed, prompt routes disabled", "error", err)
			break
		}
		defer db.Close()

		dialect := repository.Dialect(cfg.DatabaseDriver)
		routerCfg.Prompts = service.NewPromptService(repository.NewPromptRepository(db, dialect), logger)
		routerCfg.Profiles = service.NewProfileService(repository.NewProfileRepository(db, dialect), logger)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler.NewRouter(routerCfg),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server starting", "port", cfg.Port, "env", cfg.Env, "model", cfg.OpenAIModel, "enhance_configured", gateway.Configured())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}
