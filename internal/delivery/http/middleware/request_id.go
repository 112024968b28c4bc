package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// RequestIDKey is the fiber locals key holding the request ID.
const RequestIDKey = "request_id"

const requestIDHeader = "X-Request-ID"

// RequestID assigns a UUID to every request that does not already
// carry one and echoes it back in the response header.
func RequestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Locals(RequestIDKey, id)
		c.Set(requestIDHeader, id)
		return c.Next()
	}
}
