package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// UpdateStatusRequest moves an agreement to a new lifecycle status
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// Validate validates UpdateStatusRequest
func (req UpdateStatusRequest) Validate() error {
	return validation.ValidateStruct(&req,
		validation.Field(&req.Status, validation.Required, validation.In(
			StatusPending,
			StatusActive,
			StatusTerminated,
			StatusExpired,
		)),
	)
}
