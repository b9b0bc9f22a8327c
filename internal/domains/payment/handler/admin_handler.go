package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"renthub-backend/internal/domains/payment/model"
	"renthub-backend/internal/domains/payment/repository"
	"renthub-backend/internal/shared/response"
)

type AdminPaymentHandler struct {
	payments repository.PaymentRepoInterface
	webhooks repository.WebhookRepoInterface
}

// NewAdminPaymentHandler creates new admin payment handler
func NewAdminPaymentHandler(payments repository.PaymentRepoInterface, webhooks repository.WebhookRepoInterface) *AdminPaymentHandler {
	return &AdminPaymentHandler{
		payments: payments,
		webhooks: webhooks,
	}
}

// List lists all payments with filters
// GET /api/v1/admin/payments
func (h *AdminPaymentHandler) List(c *gin.Context) {
	var req model.AdminListPaymentsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	payments, total, err := h.payments.AdminList(c.Request.Context(), &req)
	if err != nil {
		writeError(c, err)
		return
	}

	stats, err := h.payments.AdminGetStatistics(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	totalPages := int((total + int64(req.Limit) - 1) / int64(req.Limit))
	response.Success(c, http.StatusOK, model.AdminListPaymentsResponse{
		Payments:   toAdminResponses(payments),
		Statistics: *stats,
		Pagination: model.PaginationMeta{
			Page:       req.Page,
			Limit:      req.Limit,
			Total:      total,
			TotalPages: totalPages,
		},
	})
}

// Statistics returns platform payment statistics
// GET /api/v1/admin/payments/statistics
func (h *AdminPaymentHandler) Statistics(c *gin.Context) {
	stats, err := h.payments.AdminGetStatistics(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, stats)
}

// WebhookLogs lists gateway notifications received for an order
// GET /api/v1/admin/payments/:order_id/webhooks
func (h *AdminPaymentHandler) WebhookLogs(c *gin.Context) {
	orderID := c.Param("order_id")
	if orderID == "" {
		response.BadRequest(c, "order_id is required")
		return
	}

	logs, err := h.webhooks.ListByOrderID(c.Request.Context(), orderID)
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, logs)
}

func toAdminResponses(payments []*model.AdminPaymentResponse) []model.AdminPaymentResponse {
	out := make([]model.AdminPaymentResponse, 0, len(payments))
	for _, p := range payments {
		out = append(out, *p)
	}
	return out
}
