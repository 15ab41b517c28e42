package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aulalink/activity-service/internal/cache"
	"github.com/aulalink/activity-service/internal/config"
	"github.com/aulalink/activity-service/internal/handlers"
	"github.com/aulalink/activity-service/internal/models"
	"github.com/aulalink/activity-service/internal/producer"
	"github.com/aulalink/activity-service/internal/repositories/postgres"
	"github.com/aulalink/activity-service/internal/services"
	"github.com/aulalink/activity-service/internal/utils"
	"github.com/aulalink/activity-service/internal/validator"
	"github.com/aulalink/activity-service/pkg"
	"github.com/gin-gonic/gin"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	db, err := pkg.InitDatabase(cfg)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	if err := db.AutoMigrate(&models.Activity{}, &models.SubmissionRecord{}); err != nil {
		logger.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}

	var contentCache *cache.ContentCache
	redisClient, err := pkg.NewRedisClient(cfg)
	if err != nil {
		logger.Warn("Redis unavailable, content cache disabled", "error", err)
	} else {
		defer redisClient.Close()
		contentCache = cache.NewContentCache(cache.NewRedisCache(redisClient, logger), cfg.ContentTTL)
	}

	publisher, err := cfg.Events.CreateEventPublisher(logger)
	if err != nil {
		logger.Error("Failed to create event publisher", "error", err)
		os.Exit(1)
	}
	defer publisher.Close()

	var contentProducer producer.ContentProducer
	if cfg.ProducerURL != "" {
		contentProducer = producer.NewHTTPProducer(cfg.ProducerURL)
		logger.Info("Content producer configured", "url", cfg.ProducerURL)
	} else {
		logger.Info("No content producer configured, generation disabled")
	}

	repo := postgres.NewRepository(db)
	v := validator.New()
	serviceManager := services.NewServiceManager(
		repo, contentCache, publisher, contentProducer, logger, v, services.DefaultPublishPolicy())

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	appLogger := utils.NewSlogLogger(logger)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.LoggerMiddleware(appLogger))

	handlerManager := handlers.NewHandlerManager(serviceManager, appLogger)
	handlerManager.SetupRoutes(router)

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.Info("Starting activity service", "port", cfg.Port, "environment", cfg.Environment)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Forced shutdown", "error", err)
	}
}
