package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"application-backend/internal/shared/metrics"
	"application-backend/internal/shared/telemetry"
)

// Context keys handlers may set to enrich the request log line.
const (
	ParseModeKey    = "parseMode"
	SubmissionIDKey = "submissionId"
)

// Logging emits a structured log per request and records request metrics.
func Logging() gin.HandlerFunc {
	return func(c *gin.Context) {
		if strings.EqualFold(c.Request.Method, "OPTIONS") {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()
		latency := time.Since(start)
		status := c.Writer.Status()

		metrics.ObserveRequest(c.FullPath(), c.Request.Method, status, latency)

		fields := map[string]any{
			"request_id":  RequestIDFromContext(c),
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"route":       c.FullPath(),
			"status":      status,
			"duration_ms": float64(latency.Microseconds()) / 1000.0,
			"bytes_in":    c.Request.ContentLength,
			"client_ip":   c.ClientIP(),
			"user_agent":  c.Request.UserAgent(),
		}
		if mode := c.GetString(ParseModeKey); mode != "" {
			fields["parse_mode"] = mode
		}
		if id := c.GetString(SubmissionIDKey); id != "" {
			fields["submission_id"] = id
		}
		telemetry.Info("request.complete", fields)
	}
}
