package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/jhoicas/pizza-service/internal/metrics"
	"github.com/jhoicas/pizza-service/pkg/logger"
)

// RequestTracker assigns a request id, logs every finished request and
// feeds method/status/latency into the metrics registry. Runs first in the
// chain so the latency covers the whole handler stack.
func RequestTracker(registry *metrics.Registry, log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		reqID := c.Get("X-Request-Id")
		if reqID == "" {
			reqID = uuid.NewString()
		}
		c.Set("X-Request-Id", reqID)

		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			var fiberErr *fiber.Error
			if errors.As(err, &fiberErr) {
				status = fiberErr.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		latency := time.Since(start)

		registry.RecordRequest(c.Method(), status, latency)
		log.Info().
			Str("request_id", reqID).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", latency).
			Msg("request")
		return err
	}
}
