package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// =====================================================
// PAYMENT ENTITY
// =====================================================

// Payment is one money movement on the platform. OrderID is the unique gateway
// correlation key; AgreementID is nullable because commission and guarantee
// payments may predate any agreement.
type Payment struct {
	ID             uuid.UUID        `json:"id" db:"id"`
	AgreementID    *uuid.UUID       `json:"agreement_id,omitempty" db:"agreement_id"`
	PayerID        uuid.UUID        `json:"payer_id" db:"payer_id"`
	Amount         decimal.Decimal  `json:"amount" db:"amount"`
	Type           string           `json:"type" db:"type"`
	Method         string           `json:"method" db:"method"`
	OrderID        string           `json:"order_id" db:"order_id"`
	Status         string           `json:"status" db:"status"`
	CommissionRate *decimal.Decimal `json:"commission_rate,omitempty" db:"commission_rate"`
	Notes          string           `json:"notes,omitempty" db:"notes"`
	PaymentDate    *time.Time       `json:"payment_date,omitempty" db:"payment_date"`
	CreatedAt      time.Time        `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at" db:"updated_at"`
}

// Validate checks entity invariants before persistence
func (p *Payment) Validate() error {
	if p.Amount.LessThanOrEqual(decimal.Zero) {
		return NewValidationError("amount must be positive", nil)
	}
	if !IsValidType(p.Type) {
		return NewInvalidTypeError(p.Type)
	}
	if !IsValidMethod(p.Method) {
		return NewInvalidMethodError(p.Method)
	}
	if p.OrderID == "" {
		return NewValidationError("order_id is required", nil)
	}
	return nil
}

// IsPending reports whether the payment still awaits reconciliation
func (p *Payment) IsPending() bool {
	return p.Status == PaymentStatusPending
}

// IsCompleted reports whether money has been confirmed received
func (p *Payment) IsCompleted() bool {
	return p.Status == PaymentStatusCompleted
}

// =====================================================
// WEBHOOK LOG ENTITY
// =====================================================

// WebhookLog is an audit row for every received gateway notification,
// accepted or rejected. Raw payloads are kept for investigation.
type WebhookLog struct {
	ID          uuid.UUID  `json:"id" db:"id"`
	OrderID     string     `json:"order_id" db:"order_id"`
	Event       string     `json:"event" db:"event"`
	StatusCode  string     `json:"status_code" db:"status_code"`
	RawPayload  string     `json:"raw_payload" db:"raw_payload"`
	Valid       bool       `json:"valid" db:"valid"`
	Reason      string     `json:"reason,omitempty" db:"reason"`
	ProcessedAt *time.Time `json:"processed_at,omitempty" db:"processed_at"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
}

// =====================================================
// STATISTICS
// =====================================================

// Statistics is the admin dashboard aggregate
type Statistics struct {
	TotalCount     int64           `json:"total_count"`
	CompletedCount int64           `json:"completed_count"`
	PendingCount   int64           `json:"pending_count"`
	FailedCount    int64           `json:"failed_count"`
	TotalCompleted decimal.Decimal `json:"total_completed"`
}
