package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"resume-analyzer/internal/shared/telemetry"
)

// Context keys handlers may set to enrich the request log line.
const (
	ProviderKey   = "analysisProvider"
	TextLengthKey = "textLength"
)

// Logging emits a structured log per request.
func Logging() gin.HandlerFunc {
	return func(c *gin.Context) {
		if strings.EqualFold(c.Request.Method, "OPTIONS") {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()
		latency := time.Since(start)

		provider, _ := c.Get(ProviderKey)
		textLength, _ := c.Get(TextLengthKey)

		telemetry.Info("request.complete", map[string]any{
			"request_id":  RequestIDFromContext(c),
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"status":      c.Writer.Status(),
			"duration_ms": float64(latency.Microseconds()) / 1000.0,
			"provider":    provider,
			"text_length": textLength,
			"client_ip":   c.ClientIP(),
			"user_agent":  c.Request.UserAgent(),
		})
	}
}
