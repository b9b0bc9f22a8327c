package middleware

import (
	"github.com/gin-gonic/gin"

	"renthub-backend/internal/shared/response"
)

// AdminMiddleware checks if the caller has the admin role.
// Must run after AuthMiddleware.
func AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentUserRole(c) != "admin" {
			response.Forbidden(c, "Access denied: admin role required")
			c.Abort()
			return
		}
		c.Next()
	}
}

// OwnerMiddleware checks if the caller has the owner role
func OwnerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		role := CurrentUserRole(c)
		if role != "owner" && role != "admin" {
			response.Forbidden(c, "Access denied: owner role required")
			c.Abort()
			return
		}
		c.Next()
	}
}
