package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"renthub-backend/internal/domains/payment/model"
)

// =====================================================
// PAYMENT REPOSITORY INTERFACE
// =====================================================
type PaymentRepoInterface interface {
	// Create inserts a payment. Status is always forced to 'pending';
	// recorded settlements transition afterwards.
	Create(ctx context.Context, payment *model.Payment) error

	// GetByID gets a payment by primary key
	GetByID(ctx context.Context, id uuid.UUID) (*model.Payment, error)

	// GetByOrderID gets a payment by its gateway order id
	GetByOrderID(ctx context.Context, orderID string) (*model.Payment, error)

	// TransitionStatus performs the conditional status move
	// (status = from AND id = id). Returns false when zero rows changed,
	// which callers treat as a lost race, not an error. paymentDate is
	// set only when non-nil.
	TransitionStatus(ctx context.Context, id uuid.UUID, from, to string, paymentDate *time.Time) (bool, error)

	// CreateCompleted inserts a payment and completes it in a single
	// transaction. Used for manually recorded settlements, where no
	// gateway notification will ever arrive to finish the job.
	CreateCompleted(ctx context.Context, payment *model.Payment, paymentDate time.Time) error

	// ListByPayerID lists payments made by a user (with pagination)
	ListByPayerID(ctx context.Context, payerID uuid.UUID, req *model.ListPaymentsRequest) ([]*model.Payment, int64, error)

	// ListByOwnerID lists payments received on a property owner's agreements
	ListByOwnerID(ctx context.Context, ownerID uuid.UUID, req *model.ListPaymentsRequest) ([]*model.Payment, int64, error)

	// ============================================
	// ADMIN METHODS
	// ============================================

	// AdminList lists all payments with filters
	AdminList(ctx context.Context, req *model.AdminListPaymentsRequest) ([]*model.AdminPaymentResponse, int64, error)

	// AdminGetStatistics gets platform payment statistics
	AdminGetStatistics(ctx context.Context) (*model.Statistics, error)

	// SumCommissionByProperty aggregates completed rent payments per property
	// over [from, to), applying per-payment commission clamping in SQL.
	SumCommissionByProperty(ctx context.Context, from, to time.Time, rate, floor, ceiling string) ([]*model.PropertyCommissionSummary, error)

	// SumCommissionByMonth aggregates completed rent payments per calendar
	// month over [from, to), applying per-payment commission clamping in SQL.
	SumCommissionByMonth(ctx context.Context, from, to time.Time, rate, floor, ceiling string) ([]*model.MonthlyCommissionSummary, error)
}

// =====================================================
// WEBHOOK LOG REPOSITORY INTERFACE
// =====================================================
type WebhookRepoInterface interface {
	// Create creates a webhook audit log entry
	Create(ctx context.Context, log *model.WebhookLog) error

	// MarkProcessed marks a notification as processed
	MarkProcessed(ctx context.Context, id uuid.UUID) error

	// MarkInvalid records why a notification was rejected
	MarkInvalid(ctx context.Context, id uuid.UUID, reason string) error

	// ListByOrderID lists notifications received for an order (admin)
	ListByOrderID(ctx context.Context, orderID string) ([]*model.WebhookLog, error)
}
