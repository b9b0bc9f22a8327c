package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"renthub-backend/pkg/container"
)

// healthCheckHandler reports liveness plus dependency health
func healthCheckHandler(c *container.Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		status := http.StatusOK
		checks := gin.H{
			"database": "ok",
			"redis":    "ok",
		}

		if err := c.DB.HealthCheck(ctx.Request.Context()); err != nil {
			checks["database"] = err.Error()
			status = http.StatusServiceUnavailable
		}
		if err := c.Redis.HealthCheck(ctx.Request.Context()); err != nil {
			// Degraded, not down: commission cache and email queue recover
			checks["redis"] = err.Error()
		}

		ctx.JSON(status, gin.H{
			"status":      http.StatusText(status),
			"version":     c.Config.App.Version,
			"environment": c.Config.App.Environment,
			"checks":      checks,
		})
	}
}
