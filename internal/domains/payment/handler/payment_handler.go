package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"renthub-backend/internal/domains/payment/model"
	"renthub-backend/internal/domains/payment/service"
	"renthub-backend/internal/shared/middleware"
	"renthub-backend/internal/shared/response"
)

type PaymentHandler struct {
	paymentService service.PaymentServiceInterface
}

// NewPaymentHandler creates new payment handler
func NewPaymentHandler(paymentService service.PaymentServiceInterface) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
	}
}

// =====================================================
// USER PAYMENT ENDPOINTS
// =====================================================

// Initiate creates a pending payment and returns the signed checkout fields
// POST /api/v1/payments/initiate
func (h *PaymentHandler) Initiate(c *gin.Context) {
	// Step 1: Get user ID from context
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		response.Unauthorized(c, "Unauthorized")
		return
	}

	// Step 2: Bind request body
	var req model.InitiatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	// Step 3: Call service (validation happens inside)
	checkout, err := h.paymentService.Initiate(c.Request.Context(), userID, &req)
	if err != nil {
		writeError(c, err)
		return
	}

	// Step 4: Return response
	response.Success(c, http.StatusCreated, checkout)
}

// GetStatus returns the state of one of the caller's payments
// GET /api/v1/payments/:payment_id
func (h *PaymentHandler) GetStatus(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		response.Unauthorized(c, "Unauthorized")
		return
	}

	paymentID, err := uuid.Parse(c.Param("payment_id"))
	if err != nil {
		response.BadRequest(c, "Invalid payment ID")
		return
	}

	status, err := h.paymentService.GetStatus(c.Request.Context(), userID, paymentID)
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, status)
}

// List lists the caller's own payments
// GET /api/v1/payments
func (h *PaymentHandler) List(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		response.Unauthorized(c, "Unauthorized")
		return
	}

	var req model.ListPaymentsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	list, err := h.paymentService.ListForPayer(c.Request.Context(), userID, &req)
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, list)
}

// ListForOwner lists payments received on the caller's properties
// GET /api/v1/owner/payments
func (h *PaymentHandler) ListForOwner(c *gin.Context) {
	ownerID, ok := middleware.CurrentUserID(c)
	if !ok {
		response.Unauthorized(c, "Unauthorized")
		return
	}

	var req model.ListPaymentsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	list, err := h.paymentService.ListForOwner(c.Request.Context(), ownerID, &req)
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, list)
}
