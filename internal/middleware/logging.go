package middleware

import (
	"time"

	"trivia-api/internal/logger"
	"trivia-api/internal/util"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"go.uber.org/zap"
)

// RequestIDLocalsKey is where the request id middleware stores the id.
const RequestIDLocalsKey = "requestid"

// RequestID assigns every request a ULID, keeping a valid ULID sent by the
// client in X-Request-ID.
func RequestID() fiber.Handler {
	return requestid.New(requestid.Config{
		Header:     fiber.HeaderXRequestID,
		ContextKey: RequestIDLocalsKey,
		Generator:  util.NewULID,
		Next: func(c *fiber.Ctx) bool {
			incoming := c.Get(fiber.HeaderXRequestID)
			if incoming != "" && !util.IsULID(incoming) {
				c.Request().Header.Del(fiber.HeaderXRequestID)
			}
			return false
		},
	})
}

// RequestLogger logs every HTTP request after the handler chain ran.
func RequestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		path := c.Path()
		method := c.Method()

		err := c.Next()
		if err != nil {
			// Run the error handler now so the logged status is the one sent.
			if handlerErr := c.App().ErrorHandler(c, err); handlerErr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
			err = nil
		}

		logger.Get().Info("HTTP Request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", c.Response().StatusCode()),
			zap.Duration("duration", time.Since(start)),
			zap.String("ip", c.IP()),
			zap.String("user_agent", c.Get(fiber.HeaderUserAgent)),
			zap.String("request_id", requestID(c)),
		)

		return err
	}
}

func requestID(c *fiber.Ctx) string {
	if id, ok := c.Locals(RequestIDLocalsKey).(string); ok {
		return id
	}
	return ""
}
