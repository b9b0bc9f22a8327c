package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"renthub-backend/internal/domains/agreement/model"
	"renthub-backend/internal/domains/agreement/repository"
	"renthub-backend/internal/shared/middleware"
	"renthub-backend/internal/shared/response"
)

type AgreementHandler struct {
	agreements repository.AgreementRepoInterface
}

// NewAgreementHandler creates new agreement handler
func NewAgreementHandler(agreements repository.AgreementRepoInterface) *AgreementHandler {
	return &AgreementHandler{
		agreements: agreements,
	}
}

// ListForOwner lists agreements on the caller's properties
// GET /api/v1/owner/agreements
func (h *AgreementHandler) ListForOwner(c *gin.Context) {
	ownerID, ok := middleware.CurrentUserID(c)
	if !ok {
		response.Unauthorized(c, "Unauthorized")
		return
	}

	agreements, err := h.agreements.ListByOwnerID(c.Request.Context(), ownerID)
	if err != nil {
		response.InternalServerError(c, "Failed to list agreements")
		return
	}

	response.Success(c, http.StatusOK, agreements)
}

// UpdateStatus moves an agreement to a new lifecycle status. Terminating or
// expiring an agreement stops further rent and deposit initiations on it.
// PUT /api/v1/admin/agreements/:agreement_id/status
func (h *AgreementHandler) UpdateStatus(c *gin.Context) {
	agreementID, err := uuid.Parse(c.Param("agreement_id"))
	if err != nil {
		response.BadRequest(c, "Invalid agreement ID")
		return
	}

	var req model.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if err := h.agreements.UpdateStatus(c.Request.Context(), agreementID, req.Status); err != nil {
		if errors.Is(err, model.ErrAgreementNotFound) {
			response.NotFound(c, "Not found")
			return
		}
		response.InternalServerError(c, "Failed to update agreement status")
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"agreement_id": agreementID,
		"status":       req.Status,
	})
}
