package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"renthub-backend/internal/domains/commission/model"
	"renthub-backend/internal/domains/commission/service"
	"renthub-backend/internal/shared/middleware"
	"renthub-backend/internal/shared/response"
)

type ConfigHandler struct {
	configService service.ConfigServiceInterface
}

// NewConfigHandler creates new commission config handler
func NewConfigHandler(configService service.ConfigServiceInterface) *ConfigHandler {
	return &ConfigHandler{
		configService: configService,
	}
}

// Get returns the current commission configuration
// GET /api/v1/admin/commission/config
func (h *ConfigHandler) Get(c *gin.Context) {
	config, err := h.configService.GetConfiguration(c.Request.Context())
	if err != nil {
		response.InternalServerError(c, "failed to load commission configuration")
		return
	}

	response.Success(c, http.StatusOK, config)
}

// Update replaces the commission rate and bounds
// PUT /api/v1/admin/commission/config
func (h *ConfigHandler) Update(c *gin.Context) {
	adminID, ok := middleware.CurrentUserID(c)
	if !ok {
		response.Unauthorized(c, "Unauthorized")
		return
	}

	var req model.UpdateConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	config, err := h.configService.UpdateConfiguration(c.Request.Context(), adminID, &req)
	if err != nil {
		if errors.Is(err, model.ErrConfigNotFound) {
			response.NotFound(c, "commission configuration not found")
			return
		}
		var validationErrs validation.Errors
		if errors.As(err, &validationErrs) {
			response.BadRequest(c, err.Error())
			return
		}
		response.InternalServerError(c, "failed to update commission configuration")
		return
	}

	response.Success(c, http.StatusOK, config)
}
