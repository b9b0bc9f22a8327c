package main

import (
	"github.com/gin-gonic/gin"

	"renthub-backend/internal/shared/middleware"
	"renthub-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	// Global middlewares
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
	)

	v1 := router.Group("/api/v1")
	{
		// Health check
		v1.GET("/health", healthCheckHandler(c))

		setupAuthRoutes(v1, c)
		setupWebhookRoutes(v1, c)
		setupPaymentRoutes(v1, c)
		setupOwnerRoutes(v1, c)
		setupAdminRoutes(v1, c)
	}

	return router
}

// ========================================
// AUTH ROUTES
// ========================================
func setupAuthRoutes(v1 *gin.RouterGroup, c *container.Container) {
	auth := v1.Group("/auth")
	{
		auth.POST("/register", c.UserHandler.Register)
		auth.POST("/login", c.UserHandler.Login)
		auth.GET("/me", middleware.AuthMiddleware(c.JWTManager), c.UserHandler.Me)
	}
}

// ========================================
// WEBHOOK ROUTES
// ========================================
// Unauthenticated by design: the gateway authenticates through the
// md5sig signature, not a bearer token.
func setupWebhookRoutes(v1 *gin.RouterGroup, c *container.Container) {
	webhooks := v1.Group("/webhooks")
	{
		webhooks.POST("/payhere", c.WebhookHandler.HandlePayHere)
	}
}

// ========================================
// PAYMENT ROUTES
// ========================================
func setupPaymentRoutes(v1 *gin.RouterGroup, c *container.Container) {
	payments := v1.Group("/payments")
	payments.Use(middleware.AuthMiddleware(c.JWTManager))
	{
		payments.POST("/initiate", c.PaymentHandler.Initiate)
		payments.GET("", c.PaymentHandler.List)
		payments.GET("/:payment_id", c.PaymentHandler.GetStatus)
	}
}

// ========================================
// OWNER ROUTES
// ========================================
func setupOwnerRoutes(v1 *gin.RouterGroup, c *container.Container) {
	owner := v1.Group("/owner")
	owner.Use(middleware.AuthMiddleware(c.JWTManager), middleware.OwnerMiddleware())
	{
		owner.GET("/payments", c.PaymentHandler.ListForOwner)
		owner.GET("/agreements", c.AgreementHandler.ListForOwner)
		owner.POST("/settlements", c.SettlementHandler.RecordSettlement)
	}
}

// ========================================
// ADMIN ROUTES
// ========================================
func setupAdminRoutes(v1 *gin.RouterGroup, c *container.Container) {
	admin := v1.Group("/admin")
	admin.Use(middleware.AuthMiddleware(c.JWTManager), middleware.AdminMiddleware())
	{
		admin.GET("/payments", c.AdminPaymentHandler.List)
		admin.GET("/payments/statistics", c.AdminPaymentHandler.Statistics)
		admin.GET("/payments/:order_id/webhooks", c.AdminPaymentHandler.WebhookLogs)

		admin.PUT("/agreements/:agreement_id/status", c.AgreementHandler.UpdateStatus)

		admin.POST("/guarantees", c.SettlementHandler.RecordGuarantee)
		admin.GET("/commission-report", c.SettlementHandler.CommissionReport)

		admin.GET("/commission/config", c.CommissionHandler.Get)
		admin.PUT("/commission/config", c.CommissionHandler.Update)
	}
}
