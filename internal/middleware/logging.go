package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pageza/tastemap/backend/internal/logger"
	"github.com/pageza/tastemap/backend/internal/metrics"
)

// RequestLogger logs every request and records it in the HTTP metrics.
// Unmatched routes are reported as "unmatched" to keep label cardinality bounded.
func RequestLogger(log *logger.Logger, m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		elapsed := time.Since(start)

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := c.Writer.Status()
		if m != nil {
			m.ObserveRequest(c.Request.Method, route, status, elapsed)
		}

		fields := []interface{}{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", status,
			"latency", elapsed,
			"client_ip", c.ClientIP(),
		}
		if id, ok := UserID(c); ok {
			fields = append(fields, "user_id", id)
		}
		switch {
		case status >= 500:
			log.Error("request", fields...)
		case status >= 400:
			log.Warn("request", fields...)
		default:
			log.Info("request", fields...)
		}
	}
}
