package model

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// =====================================================
// AGREEMENT ENTITY
// =====================================================

// Agreement statuses
const (
	StatusPending    = "pending"
	StatusActive     = "active"
	StatusTerminated = "terminated"
	StatusExpired    = "expired"
)

var (
	ErrAgreementNotFound = errors.New("agreement not found")
)

// Agreement is a tenancy contract between a tenant and a property owner.
// Rent and deposit amounts are frozen on the agreement at signing time, so
// later property price changes never affect in-flight payments.
type Agreement struct {
	ID              uuid.UUID       `json:"id" db:"id"`
	PropertyID      uuid.UUID       `json:"property_id" db:"property_id"`
	TenantID        uuid.UUID       `json:"tenant_id" db:"tenant_id"`
	MonthlyRent     decimal.Decimal `json:"monthly_rent" db:"monthly_rent"`
	SecurityDeposit decimal.Decimal `json:"security_deposit" db:"security_deposit"`
	Status          string          `json:"status" db:"status"`
	StartDate       time.Time       `json:"start_date" db:"start_date"`
	EndDate         time.Time       `json:"end_date" db:"end_date"`
	CreatedAt       time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at" db:"updated_at"`

	// OwnerID is populated on reads joined through the property row
	OwnerID uuid.UUID `json:"owner_id" db:"-"`
}

// IsActive reports whether the agreement currently binds both parties
func (a *Agreement) IsActive() bool {
	return a.Status == StatusActive
}
