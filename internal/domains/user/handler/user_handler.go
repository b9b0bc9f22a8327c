package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/rs/zerolog/log"

	"renthub-backend/internal/domains/user/model"
	"renthub-backend/internal/domains/user/service"
	"renthub-backend/internal/shared/middleware"
	"renthub-backend/internal/shared/response"
)

type UserHandler struct {
	userService service.UserServiceInterface
}

// NewUserHandler creates new user handler
func NewUserHandler(userService service.UserServiceInterface) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// Register creates a tenant or owner account
// POST /api/v1/auth/register
func (h *UserHandler) Register(c *gin.Context) {
	var req model.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	auth, err := h.userService.Register(c.Request.Context(), &req)
	if err != nil {
		h.writeAuthError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, auth)
}

// Login verifies credentials and issues an access token
// POST /api/v1/auth/login
func (h *UserHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	auth, err := h.userService.Login(c.Request.Context(), &req)
	if err != nil {
		h.writeAuthError(c, err)
		return
	}

	response.Success(c, http.StatusOK, auth)
}

// Me returns the caller's profile
// GET /api/v1/auth/me
func (h *UserHandler) Me(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		response.Unauthorized(c, "Unauthorized")
		return
	}

	user, err := h.userService.GetByID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			response.NotFound(c, "user not found")
			return
		}
		log.Error().Err(err).Msg("failed to load user profile")
		response.InternalServerError(c, "failed to load profile")
		return
	}

	response.Success(c, http.StatusOK, user)
}

func (h *UserHandler) writeAuthError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, model.ErrInvalidCredentials):
		response.Unauthorized(c, "invalid email or password")
	case errors.Is(err, model.ErrEmailTaken):
		response.Conflict(c, "email already registered")
	default:
		var validationErrs validation.Errors
		if errors.As(err, &validationErrs) {
			response.BadRequest(c, err.Error())
			return
		}
		log.Error().Err(err).Msg("auth request failed")
		response.InternalServerError(c, "request failed")
	}
}
