package middleware

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
)

var skipLoggingPaths = map[string]bool{
	"/health": true,
}

// RequestLogger logs method, path, status and duration of each request.
// Server errors are logged at error level together with any handler errors.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		if skipLoggingPaths[c.Request.URL.Path] {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		attrs := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", status,
			"duration_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
		}

		switch {
		case status >= 500:
			if len(c.Errors) > 0 {
				attrs = append(attrs, "errors", c.Errors.String())
			}
			slog.Error("http request", attrs...)
		case status >= 400:
			slog.Warn("http request", attrs...)
		default:
			slog.Info("http request", attrs...)
		}
	}
}
