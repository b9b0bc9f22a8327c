package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"renthub-backend/internal/domains/payment/model"
	"renthub-backend/internal/domains/payment/service"
	"renthub-backend/internal/shared/middleware"
	"renthub-backend/internal/shared/response"
)

type SettlementHandler struct {
	settlementService service.SettlementServiceInterface
}

// NewSettlementHandler creates new settlement handler
func NewSettlementHandler(settlementService service.SettlementServiceInterface) *SettlementHandler {
	return &SettlementHandler{
		settlementService: settlementService,
	}
}

// RecordSettlement records an off-gateway rent payment
// POST /api/v1/owner/settlements
func (h *SettlementHandler) RecordSettlement(c *gin.Context) {
	ownerID, ok := middleware.CurrentUserID(c)
	if !ok {
		response.Unauthorized(c, "Unauthorized")
		return
	}

	var req model.RecordSettlementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	payment, err := h.settlementService.RecordSettlement(c.Request.Context(), ownerID, &req)
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, payment)
}

// RecordGuarantee records a guarantee deposit held by the platform
// POST /api/v1/admin/guarantees
func (h *SettlementHandler) RecordGuarantee(c *gin.Context) {
	adminID, ok := middleware.CurrentUserID(c)
	if !ok {
		response.Unauthorized(c, "Unauthorized")
		return
	}

	var req model.RecordGuaranteeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	payment, err := h.settlementService.RecordGuarantee(c.Request.Context(), adminID, &req)
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, payment)
}

// CommissionReport builds the commission report for a date range
// GET /api/v1/admin/commission-report?from_date=...&to_date=...
func (h *SettlementHandler) CommissionReport(c *gin.Context) {
	var req model.CommissionReportRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	report, err := h.settlementService.AggregateCommission(c.Request.Context(), req.FromDate, req.ToDate)
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, report)
}
