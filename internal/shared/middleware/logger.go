package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"renthub-backend/pkg/logger"
)

// Logger writes one structured access log line per request. Server errors
// log at error level so they stand out in aggregation.
func Logger() gin.HandlerFunc {
	accessLog := logger.New("http")

	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		if raw := c.Request.URL.RawQuery; raw != "" {
			path = path + "?" + raw
		}

		c.Next()

		event := accessLog.Info()
		if c.Writer.Status() >= http.StatusInternalServerError {
			event = accessLog.Error()
		}
		event.
			Str("request_id", c.GetString("request_id")).
			Str("method", c.Request.Method).
			Str("path", path).
			Int("status", c.Writer.Status()).
			Dur("latency", time.Since(start)).
			Str("ip", c.ClientIP()).
			Msg("request completed")
	}
}
