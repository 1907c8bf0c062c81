package main

// @title GreenCity Place Service API
// @version 1.0.0
// @description Backend service for the GreenCity place directory. Accepts
// @description place proposals, drives the moderation state machine, answers
// @description map viewport and filtered listing queries, and manages
// @description per-user favorite places.

// @contact.name API Support
// @contact.email support@greencity.ua

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	_ "github.com/greencity/place-service/docs"
	"github.com/greencity/place-service/internal/config"
	httpDelivery "github.com/greencity/place-service/internal/delivery/http"
	"github.com/greencity/place-service/internal/delivery/http/handler"
	"github.com/greencity/place-service/internal/pkg/logger"
	"github.com/greencity/place-service/internal/repository/cache"
	"github.com/greencity/place-service/internal/repository/postgres"
	redisrepo "github.com/greencity/place-service/internal/repository/redis"
	"github.com/greencity/place-service/internal/usecase"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting GreenCity Place Service")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
	)

	// 3. Connect to PostgreSQL
	db, err := postgres.New(&cfg.Database, log)
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close PostgreSQL connection", zap.Error(err))
		}
	}()

	// 4. Connect to Redis
	redisClient, err := cache.NewRedis(&cfg.Redis, log)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close Redis connection", zap.Error(err))
		}
	}()

	// 5. Health checks
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.Health(ctx); err != nil {
		log.Fatal("PostgreSQL health check failed", zap.Error(err))
	}
	if err := redisClient.Health(ctx); err != nil {
		log.Fatal("Redis health check failed", zap.Error(err))
	}

	log.Info("All connections healthy")

	// 6. Initialize repositories
	placeRepo := postgres.NewPlaceRepository(db)
	categoryRepo := postgres.NewCategoryRepository(db)
	userRepo := postgres.NewUserRepository(db)
	favoriteRepo := postgres.NewFavoriteRepository(db)
	cacheRepo := cache.NewCacheRepository(redisClient)
	streamRepo := redisrepo.NewStreamRepository(redisClient.Client(), log)

	log.Info("Repositories initialized")

	// 7. Initialize use cases
	placeUC := usecase.NewPlaceUseCase(
		placeRepo,
		categoryRepo,
		userRepo,
		cacheRepo,
		streamRepo,
		log,
		cfg.Cache.PlaceInfoTTL,
	)

	filterUC := usecase.NewFilterUseCase(
		placeRepo,
		cacheRepo,
		log,
		cfg.Cache.BoundsTTL,
	)

	favoriteUC := usecase.NewFavoriteUseCase(
		favoriteRepo,
		placeRepo,
		userRepo,
		log,
	)

	log.Info("Use cases initialized")

	// 8. Initialize HTTP handlers and server
	placeHandler := handler.NewPlaceHandler(placeUC, filterUC, log)
	favoriteHandler := handler.NewFavoriteHandler(favoriteUC, log)

	server := httpDelivery.NewServer(cfg, log, placeHandler, favoriteHandler)

	log.Info("HTTP server initialized")

	// 9. Start server
	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started successfully",
		zap.String("address", cfg.GetServerAddr()),
		zap.String("env", cfg.Server.Env),
	)

	// 10. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	ctx, cancel = context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	log.Info("Server stopped successfully")
}
