package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	fiberSwagger "github.com/swaggo/fiber-swagger"
	"go.uber.org/zap"

	"github.com/metro-parking/internal/config"
	"github.com/metro-parking/internal/delivery/http/handler"
	"github.com/metro-parking/internal/delivery/http/middleware"
	"github.com/metro-parking/internal/pkg/metrics"
	"github.com/metro-parking/internal/repository/cache"
)

// Server is the Fiber HTTP server hosting both the HTML pages and the
// JSON API.
type Server struct {
	app    *fiber.App
	config *config.Config
	logger *zap.Logger
	redis  *cache.Redis

	// Handlers
	pageHandler    *handler.PageHandler
	stationHandler *handler.StationHandler
	parkingHandler *handler.ParkingHandler
}

// NewServer wires middlewares and routes. redis may be nil when the
// cache is not configured.
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	redis *cache.Redis,
	pageHandler *handler.PageHandler,
	stationHandler *handler.StationHandler,
	parkingHandler *handler.ParkingHandler,
) *Server {
	app := fiber.New(fiber.Config{
		AppName:      "Metro Parking Service",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
		ErrorHandler: customErrorHandler(logger),
	})

	s := &Server{
		app:            app,
		config:         cfg,
		logger:         logger,
		redis:          redis,
		pageHandler:    pageHandler,
		stationHandler: stationHandler,
		parkingHandler: parkingHandler,
	}

	s.setupMiddlewares()
	s.setupRoutes()

	return s
}

func (s *Server) setupMiddlewares() {
	s.app.Use(middleware.Recovery())
	s.app.Use(middleware.RequestID())
	s.app.Use(middleware.Logger(s.logger))
	s.app.Use(middleware.CORS())
	s.app.Use(metrics.Middleware())
	s.app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
}

func (s *Server) setupRoutes() {
	// HTML pages
	s.app.Get("/", s.pageHandler.Home)
	s.app.Post("/search", s.pageHandler.Search)
	s.app.Get("/map", s.pageHandler.Map)

	// Legacy form endpoint returning totals as flat JSON
	s.app.Post("/get_parking_lots", s.parkingHandler.GetParkingLots)

	// Swagger documentation route
	s.app.Get("/swagger/*", fiberSwagger.WrapHandler)

	// Prometheus metrics
	s.app.Get("/metrics", metrics.Handler())

	api := s.app.Group("/api/v1")

	// Health check
	api.Get("/health", s.health)

	// Station routes
	api.Get("/stations", s.stationHandler.Search)

	// Parking routes
	api.Post("/parking/area", s.parkingHandler.ParkingArea)
}

func (s *Server) health(c *fiber.Ctx) error {
	cacheStatus := "disabled"
	if s.redis != nil {
		cacheStatus = "up"
		if err := s.redis.Health(c.Context()); err != nil {
			cacheStatus = "down"
		}
	}

	return c.JSON(fiber.Map{
		"status": "healthy",
		"cache":  cacheStatus,
		"time":   time.Now(),
	})
}

// Start runs the HTTP server until Shutdown is called.
func (s *Server) Start() error {
	addr := s.config.GetServerAddr()
	s.logger.Info("Starting HTTP server", zap.String("address", addr))
	return s.app.Listen(addr)
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.app.ShutdownWithContext(ctx)
}

// App exposes the underlying Fiber app for tests.
func (s *Server) App() *fiber.App {
	return s.app
}

func customErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError

		if e, ok := err.(*fiber.Error); ok {
			code = e.Code
		}

		logger.Error("HTTP Error",
			zap.String("path", c.Path()),
			zap.Int("status", code),
			zap.Error(err),
		)

		return c.Status(code).JSON(fiber.Map{
			"error": fiber.Map{
				"code":    "INTERNAL_SERVER_ERROR",
				"message": err.Error(),
			},
		})
	}
}
