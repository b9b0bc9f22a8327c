package model

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// =====================================================
// PROPERTY ENTITY
// =====================================================

const (
	StatusAvailable = "available"
	StatusRented    = "rented"
	StatusInactive  = "inactive"
)

var ErrPropertyNotFound = errors.New("property not found")

type Property struct {
	ID              uuid.UUID       `json:"id" db:"id"`
	OwnerID         uuid.UUID       `json:"owner_id" db:"owner_id"`
	Title           string          `json:"title" db:"title"`
	Address         string          `json:"address" db:"address"`
	City            string          `json:"city" db:"city"`
	MonthlyRent     decimal.Decimal `json:"monthly_rent" db:"monthly_rent"`
	SecurityDeposit decimal.Decimal `json:"security_deposit" db:"security_deposit"`
	Status          string          `json:"status" db:"status"`
	CreatedAt       time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at" db:"updated_at"`
}
