package main

// @title Metro Parking Service API
// @version 1.0.0
// @description HTTP service that locates subway stations by name/city via the Overpass geodata API, measures nearby parking-lot polygons in a local UTM projection and renders them on an interactive map.

// @contact.name API Support

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

	_ "github.com/metro-parking/docs/swagger"
	"github.com/metro-parking/internal/config"
	httpDelivery "github.com/metro-parking/internal/delivery/http"
	"github.com/metro-parking/internal/delivery/http/handler"
	"github.com/metro-parking/internal/domain/repository"
	"github.com/metro-parking/internal/infrastructure/overpass"
	"github.com/metro-parking/internal/pkg/logger"
	"github.com/metro-parking/internal/repository/cache"
	"github.com/metro-parking/internal/usecase"
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

	log.Info("Starting Metro Parking Service")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
		zap.Strings("overpass_mirrors", cfg.Overpass.Mirrors),
	)

	// 3. Connect to Redis when configured. The cache is optional and
	// the service degrades to uncached lookups without it.
	var cacheRepo repository.CacheRepository
	var redisClient *cache.Redis
	if cfg.CacheEnabled() {
		redisClient, err = cache.NewRedis(&cfg.Redis, log)
		if err != nil {
			log.Warn("Redis unavailable, continuing without cache", zap.Error(err))
		} else {
			cacheRepo = cache.NewCacheRepository(redisClient)
		}
	}

	// 4. Initialize the geodata client
	geodataRepo := overpass.NewClient(&cfg.Overpass, log)
	log.Info("Overpass client initialized", zap.Int("mirrors", len(cfg.Overpass.Mirrors)))

	// 5. Initialize Use Cases
	stationUC := usecase.NewStationUseCase(
		geodataRepo,
		cacheRepo,
		log,
		cfg.Cache.StationCacheTTL,
	)

	parkingUC := usecase.NewParkingUseCase(
		geodataRepo,
		log,
		cfg.Search.DefaultRadiusM,
		cfg.Search.MaxRadiusM,
	)

	mapUC := usecase.NewMapUseCase(parkingUC, log)

	log.Info("Use cases initialized")

	// 6. Initialize HTTP Handlers
	pageHandler, err := handler.NewPageHandler(stationUC, mapUC, cfg.Search.DefaultRadiusM, log)
	if err != nil {
		log.Fatal("Failed to load page templates", zap.Error(err))
	}
	stationHandler := handler.NewStationHandler(stationUC, log)
	parkingHandler := handler.NewParkingHandler(parkingUC, log)

	log.Info("HTTP handlers initialized")

	// 7. Initialize HTTP Server
	server := httpDelivery.NewServer(
		cfg,
		log,
		redisClient,
		pageHandler,
		stationHandler,
		parkingHandler,
	)

	// 8. Start server in goroutine
	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started successfully",
		zap.String("address", cfg.GetServerAddr()),
		zap.String("env", cfg.Server.Env),
	)

	// 9. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close Redis", zap.Error(err))
		}
	}

	log.Info("Server stopped successfully")
}
