package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Logger logs every request with its latency and request ID.
func Logger(logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		fields := []zap.Field{
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", c.Response().StatusCode()),
			zap.Duration("latency", time.Since(start)),
			zap.String("ip", c.IP()),
		}
		if id, ok := c.Locals(RequestIDKey).(string); ok {
			fields = append(fields, zap.String("request_id", id))
		}

		logger.Info("HTTP request", fields...)
		return err
	}
}
