package middleware

import (
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	// HeaderRequestID carries the request ID back to the client.
	HeaderRequestID = "X-Request-Id"

	// LogFieldRequestID is the field name for request ID.
	LogFieldRequestID = "request_id"
	// LogFieldDuration is the field name for duration in milliseconds.
	LogFieldDuration = "duration_ms"
)

// RequestLogger assigns each request an ID and logs method, path, status,
// and duration through slog.
func RequestLogger(logger *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			requestID := c.Request().Header.Get(HeaderRequestID)
			if requestID == "" {
				requestID = uuid.NewString()
			}
			c.Response().Header().Set(HeaderRequestID, requestID)

			start := time.Now()
			err := next(c)
			duration := time.Since(start)

			attrs := []any{
				LogFieldRequestID, requestID,
				"method", c.Request().Method,
				"path", c.Request().URL.Path,
				"status", c.Response().Status,
				LogFieldDuration, duration.Milliseconds(),
			}
			if err != nil {
				logger.Error("request failed", append(attrs, "error", err)...)
				return err
			}
			logger.Info("request handled", attrs...)
			return nil
		}
	}
}
