package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"renthub-backend/internal/shared/response"
	"renthub-backend/pkg/logger"
)

// Recovery converts a panic into a SYS_001 error response, so one broken
// request never takes the process down
func Recovery() gin.HandlerFunc {
	recoveryLog := logger.New("recovery")

	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				recoveryLog.Error().
					Str("request_id", c.GetString("request_id")).
					Str("path", c.Request.URL.Path).
					Interface("panic", err).
					Msg("panic recovered")

				response.ErrorResponse(c, http.StatusInternalServerError, "SYS_001", "Internal server error")
				c.Abort()
			}
		}()

		c.Next()
	}
}
