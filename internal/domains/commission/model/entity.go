package model

import (
	"errors"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// =====================================================
// COMMISSION CONFIGURATION
// =====================================================

// Configuration is the single platform-wide commission setting row.
// Rate is a percentage; Floor and Ceiling bound the per-payment charge.
type Configuration struct {
	ID        uuid.UUID       `json:"id" db:"id"`
	Rate      decimal.Decimal `json:"rate" db:"rate"`
	Floor     decimal.Decimal `json:"floor" db:"floor"`
	Ceiling   decimal.Decimal `json:"ceiling" db:"ceiling"`
	UpdatedBy *uuid.UUID      `json:"updated_by,omitempty" db:"updated_by"`
	UpdatedAt time.Time       `json:"updated_at" db:"updated_at"`
}

var ErrConfigNotFound = errors.New("commission configuration not found")

// Validate checks configuration invariants
func (c *Configuration) Validate() error {
	if c.Rate.IsNegative() || c.Rate.GreaterThan(decimal.NewFromInt(100)) {
		return errors.New("rate must be between 0 and 100")
	}
	if c.Floor.IsNegative() {
		return errors.New("floor must not be negative")
	}
	if c.Ceiling.LessThan(c.Floor) {
		return errors.New("ceiling must not be below floor")
	}
	return nil
}

// =====================================================
// UPDATE CONFIGURATION DTO
// =====================================================

type UpdateConfigRequest struct {
	Rate    decimal.Decimal `json:"rate" binding:"required"`
	Floor   decimal.Decimal `json:"floor" binding:"required"`
	Ceiling decimal.Decimal `json:"ceiling" binding:"required"`
}

// Validate validates UpdateConfigRequest
func (req UpdateConfigRequest) Validate() error {
	return validation.ValidateStruct(&req,
		validation.Field(&req.Rate, validation.By(rateInRange)),
		validation.Field(&req.Floor, validation.By(nonNegative)),
		validation.Field(&req.Ceiling, validation.By(nonNegative)),
	)
}

func rateInRange(value interface{}) error {
	rate, _ := value.(decimal.Decimal)
	if rate.IsNegative() || rate.GreaterThan(decimal.NewFromInt(100)) {
		return validation.NewError("validation_rate", "must be between 0 and 100")
	}
	return nil
}

func nonNegative(value interface{}) error {
	v, _ := value.(decimal.Decimal)
	if v.IsNegative() {
		return validation.NewError("validation_amount", "must not be negative")
	}
	return nil
}
