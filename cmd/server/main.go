package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/formlab/formbuilder-service/internal/cache"
	"github.com/formlab/formbuilder-service/internal/config"
	"github.com/formlab/formbuilder-service/internal/handlers"
	"github.com/formlab/formbuilder-service/internal/repositories/postgres"
	"github.com/formlab/formbuilder-service/internal/services"
	"github.com/formlab/formbuilder-service/internal/utils"
	"github.com/formlab/formbuilder-service/internal/validator"
	"github.com/formlab/formbuilder-service/pkg"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	base := newBaseLogger(cfg.Environment)
	logger := utils.NewSlogLogger(base)

	db, err := pkg.InitDatabase(cfg)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	if err := postgres.AutoMigrate(db); err != nil {
		logger.Error("Failed to run database migrations", "error", err)
		os.Exit(1)
	}

	redisClient, err := pkg.NewRedisClient(cfg)
	if err != nil {
		logger.Error("Failed to connect to redis", "error", err)
		os.Exit(1)
	}
	defer redisClient.Close()

	cacheService := cache.NewRedisCache(redisClient, logger)

	publisher, err := cfg.Events.CreateEventPublisher(base)
	if err != nil {
		logger.Error("Failed to create event publisher", "error", err)
		os.Exit(1)
	}
	defer publisher.Close()

	repo := postgres.NewRepository(db)
	v := validator.New()

	formService := services.NewFormService(repo, cacheService, publisher, base, v)
	responseService := services.NewResponseService(repo, publisher, base, v)
	exportService := services.NewExportService(formService, responseService, base)

	storage, err := services.NewLocalDiskStorage(cfg.UploadDir, cfg.UploadBaseURL, base)
	if err != nil {
		logger.Error("Failed to prepare upload storage", "error", err)
		os.Exit(1)
	}

	manager := handlers.NewHandlerManager(
		formService,
		responseService,
		exportService,
		storage,
		cfg.MaxUploadSize,
		logger,
	)

	engine := handlers.NewEngine(logger, corsOrigins(cfg.Environment), cfg.UploadDir, cfg.UploadBaseURL)
	manager.SetupRoutes(engine)

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: engine,
	}

	go func() {
		logger.Info("Starting formbuilder service", "port", cfg.Port, "environment", cfg.Environment)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Forced shutdown", "error", err)
	}
	logger.Info("Server stopped")
}

func newBaseLogger(environment string) *slog.Logger {
	if environment == "production" {
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func corsOrigins(environment string) []string {
	if environment == "production" {
		if origin := os.Getenv("CORS_ORIGIN"); origin != "" {
			return strings.Split(origin, ",")
		}
	}
	return []string{"*"}
}
