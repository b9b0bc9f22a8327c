package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"renthub-backend/internal/domains/payment/model"
	"renthub-backend/pkg/database"
)

// =====================================================
// PAYMENT REPOSITORY IMPLEMENTATION
// =====================================================
type paymentRepository struct {
	pool *pgxpool.Pool
}

func NewPaymentRepository(pool *pgxpool.Pool) PaymentRepoInterface {
	return &paymentRepository{pool: pool}
}

const paymentColumns = `
	id, agreement_id, payer_id, amount, type, method, order_id, status,
	commission_rate, notes, payment_date, created_at, updated_at
`

// Create inserts a payment. The status column is hardcoded to 'pending'
// regardless of what the entity carries; later states are only reachable
// through TransitionStatus.
func (r *paymentRepository) Create(ctx context.Context, payment *model.Payment) error {
	if err := payment.Validate(); err != nil {
		return err
	}

	query := `
		INSERT INTO payments (
			id, agreement_id, payer_id, amount, type, method, order_id,
			status, commission_rate, notes
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, 'pending', $8, $9
		)
		RETURNING status, created_at, updated_at
	`

	err := r.pool.QueryRow(ctx, query,
		payment.ID,
		payment.AgreementID,
		payment.PayerID,
		payment.Amount,
		payment.Type,
		payment.Method,
		payment.OrderID,
		payment.CommissionRate,
		payment.Notes,
	).Scan(&payment.Status, &payment.CreatedAt, &payment.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create payment: %w", err)
	}

	return nil
}

// CreateCompleted inserts a payment and moves it to 'completed' inside one
// transaction. Splitting this into two statements would let a crash strand a
// recorded settlement in 'pending', where no notification can ever settle it.
func (r *paymentRepository) CreateCompleted(ctx context.Context, payment *model.Payment, paymentDate time.Time) error {
	if err := payment.Validate(); err != nil {
		return err
	}

	insert := `
		INSERT INTO payments (
			id, agreement_id, payer_id, amount, type, method, order_id,
			status, commission_rate, notes
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, 'pending', $8, $9
		)
	`

	complete := `
		UPDATE payments
		SET status = 'completed',
			payment_date = $1,
			updated_at = NOW()
		WHERE id = $2 AND status = 'pending'
	`

	err := database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, insert,
			payment.ID,
			payment.AgreementID,
			payment.PayerID,
			payment.Amount,
			payment.Type,
			payment.Method,
			payment.OrderID,
			payment.CommissionRate,
			payment.Notes,
		); err != nil {
			return fmt.Errorf("failed to create payment: %w", err)
		}

		result, err := tx.Exec(ctx, complete, paymentDate, payment.ID)
		if err != nil {
			return fmt.Errorf("failed to complete payment: %w", err)
		}
		if result.RowsAffected() == 0 {
			return fmt.Errorf("freshly created payment %s was not pending", payment.ID)
		}
		return nil
	})
	if err != nil {
		return err
	}

	payment.Status = model.PaymentStatusCompleted
	payment.PaymentDate = &paymentDate
	return nil
}

// GetByID gets a payment by primary key
func (r *paymentRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE id = $1`
	return r.scanOne(r.pool.QueryRow(ctx, query, id))
}

// GetByOrderID gets a payment by its gateway order id
func (r *paymentRepository) GetByOrderID(ctx context.Context, orderID string) (*model.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE order_id = $1`
	return r.scanOne(r.pool.QueryRow(ctx, query, orderID))
}

// TransitionStatus performs the conditional status move. One UPDATE, guarded
// by the expected current status; concurrent duplicate notifications race on
// this row and exactly one wins.
func (r *paymentRepository) TransitionStatus(ctx context.Context, id uuid.UUID, from, to string, paymentDate *time.Time) (bool, error) {
	query := `
		UPDATE payments
		SET status = $1,
			payment_date = COALESCE($2, payment_date),
			updated_at = NOW()
		WHERE id = $3 AND status = $4
	`

	result, err := r.pool.Exec(ctx, query, to, paymentDate, id, from)
	if err != nil {
		return false, fmt.Errorf("failed to transition payment status: %w", err)
	}

	return result.RowsAffected() > 0, nil
}

// ListByPayerID lists payments made by a user
func (r *paymentRepository) ListByPayerID(ctx context.Context, payerID uuid.UUID, req *model.ListPaymentsRequest) ([]*model.Payment, int64, error) {
	where := `WHERE payer_id = $1`
	args := []interface{}{payerID}
	where, args = appendListFilters(where, args, req)

	return r.list(ctx, where, args, req.Page, req.Limit)
}

// ListByOwnerID lists payments received on a property owner's agreements
func (r *paymentRepository) ListByOwnerID(ctx context.Context, ownerID uuid.UUID, req *model.ListPaymentsRequest) ([]*model.Payment, int64, error) {
	where := `
		WHERE agreement_id IN (
			SELECT a.id FROM agreements a
			JOIN properties p ON p.id = a.property_id
			WHERE p.owner_id = $1
		)`
	args := []interface{}{ownerID}
	where, args = appendListFilters(where, args, req)

	return r.list(ctx, where, args, req.Page, req.Limit)
}

func appendListFilters(where string, args []interface{}, req *model.ListPaymentsRequest) (string, []interface{}) {
	if req.Status != nil {
		args = append(args, *req.Status)
		where += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if req.Type != nil {
		args = append(args, *req.Type)
		where += fmt.Sprintf(" AND type = $%d", len(args))
	}
	return where, args
}

func (r *paymentRepository) list(ctx context.Context, where string, args []interface{}, page, limit int) ([]*model.Payment, int64, error) {
	var total int64
	countQuery := `SELECT COUNT(*) FROM payments ` + where
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count payments: %w", err)
	}

	args = append(args, limit, (page-1)*limit)
	query := fmt.Sprintf(
		`SELECT %s FROM payments %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		paymentColumns, where, len(args)-1, len(args),
	)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list payments: %w", err)
	}
	defer rows.Close()

	payments := make([]*model.Payment, 0)
	for rows.Next() {
		payment, err := r.scanRow(rows)
		if err != nil {
			return nil, 0, err
		}
		payments = append(payments, payment)
	}

	return payments, total, rows.Err()
}

// =====================================================
// ADMIN METHODS
// =====================================================

// AdminList lists all payments with filters, joined with payer email
func (r *paymentRepository) AdminList(ctx context.Context, req *model.AdminListPaymentsRequest) ([]*model.AdminPaymentResponse, int64, error) {
	where := `WHERE 1=1`
	args := []interface{}{}

	if req.Status != nil {
		args = append(args, *req.Status)
		where += fmt.Sprintf(" AND p.status = $%d", len(args))
	}
	if req.Type != nil {
		args = append(args, *req.Type)
		where += fmt.Sprintf(" AND p.type = $%d", len(args))
	}
	if req.Method != nil {
		args = append(args, *req.Method)
		where += fmt.Sprintf(" AND p.method = $%d", len(args))
	}
	if req.FromDate != nil {
		args = append(args, *req.FromDate)
		where += fmt.Sprintf(" AND p.created_at >= $%d", len(args))
	}
	if req.ToDate != nil {
		args = append(args, *req.ToDate)
		where += fmt.Sprintf(" AND p.created_at < $%d", len(args))
	}
	if req.Search != nil && *req.Search != "" {
		args = append(args, "%"+*req.Search+"%")
		where += fmt.Sprintf(" AND p.order_id ILIKE $%d", len(args))
	}

	var total int64
	countQuery := `SELECT COUNT(*) FROM payments p ` + where
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count payments: %w", err)
	}

	args = append(args, req.Limit, (req.Page-1)*req.Limit)
	query := fmt.Sprintf(`
		SELECT p.id, p.order_id, u.email, p.type, p.method, p.status,
			p.amount, p.payment_date, p.created_at
		FROM payments p
		JOIN users u ON u.id = p.payer_id
		%s
		ORDER BY p.created_at DESC
		LIMIT $%d OFFSET $%d
	`, where, len(args)-1, len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list payments: %w", err)
	}
	defer rows.Close()

	payments := make([]*model.AdminPaymentResponse, 0)
	for rows.Next() {
		p := &model.AdminPaymentResponse{}
		if err := rows.Scan(
			&p.PaymentID, &p.OrderID, &p.PayerEmail, &p.Type, &p.Method,
			&p.Status, &p.Amount, &p.PaymentDate, &p.CreatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan payment row: %w", err)
		}
		payments = append(payments, p)
	}

	return payments, total, rows.Err()
}

// AdminGetStatistics gets platform payment statistics
func (r *paymentRepository) AdminGetStatistics(ctx context.Context) (*model.Statistics, error) {
	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE status = 'completed'),
			COUNT(*) FILTER (WHERE status = 'pending'),
			COUNT(*) FILTER (WHERE status = 'failed'),
			COALESCE(SUM(amount) FILTER (WHERE status = 'completed'), 0)
		FROM payments
	`

	stats := &model.Statistics{}
	err := r.pool.QueryRow(ctx, query).Scan(
		&stats.TotalCount,
		&stats.CompletedCount,
		&stats.PendingCount,
		&stats.FailedCount,
		&stats.TotalCompleted,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get payment statistics: %w", err)
	}

	return stats, nil
}

// =====================================================
// COMMISSION AGGREGATION
// =====================================================

// Commission is clamped per payment inside the SUM, never on the summed
// total. LEAST/GREATEST mirror the calculator's bounds exactly.
const commissionExpr = `SUM(LEAST(GREATEST(p.amount * $3::numeric / 100, $4::numeric), $5::numeric))`

// SumCommissionByProperty aggregates completed rent payments per property
func (r *paymentRepository) SumCommissionByProperty(ctx context.Context, from, to time.Time, rate, floor, ceiling string) ([]*model.PropertyCommissionSummary, error) {
	query := `
		SELECT pr.id, pr.title, COUNT(p.id), SUM(p.amount), ` + commissionExpr + `
		FROM payments p
		JOIN agreements a ON a.id = p.agreement_id
		JOIN properties pr ON pr.id = a.property_id
		WHERE p.status = 'completed'
			AND p.type = 'rent'
			AND p.payment_date >= $1
			AND p.payment_date < $2
		GROUP BY pr.id, pr.title
		ORDER BY SUM(p.amount) DESC
	`

	rows, err := r.pool.Query(ctx, query, from, to, rate, floor, ceiling)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate commission by property: %w", err)
	}
	defer rows.Close()

	summaries := make([]*model.PropertyCommissionSummary, 0)
	for rows.Next() {
		s := &model.PropertyCommissionSummary{}
		if err := rows.Scan(&s.PropertyID, &s.PropertyTitle, &s.PaymentCount, &s.RentTotal, &s.Commission); err != nil {
			return nil, fmt.Errorf("failed to scan commission row: %w", err)
		}
		summaries = append(summaries, s)
	}

	return summaries, rows.Err()
}

// SumCommissionByMonth aggregates completed rent payments per calendar month
func (r *paymentRepository) SumCommissionByMonth(ctx context.Context, from, to time.Time, rate, floor, ceiling string) ([]*model.MonthlyCommissionSummary, error) {
	query := `
		SELECT date_trunc('month', p.payment_date), SUM(p.amount), ` + commissionExpr + `
		FROM payments p
		WHERE p.status = 'completed'
			AND p.type = 'rent'
			AND p.payment_date >= $1
			AND p.payment_date < $2
		GROUP BY date_trunc('month', p.payment_date)
		ORDER BY date_trunc('month', p.payment_date)
	`

	rows, err := r.pool.Query(ctx, query, from, to, rate, floor, ceiling)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate commission by month: %w", err)
	}
	defer rows.Close()

	summaries := make([]*model.MonthlyCommissionSummary, 0)
	for rows.Next() {
		s := &model.MonthlyCommissionSummary{}
		if err := rows.Scan(&s.Month, &s.RentTotal, &s.Commission); err != nil {
			return nil, fmt.Errorf("failed to scan commission row: %w", err)
		}
		summaries = append(summaries, s)
	}

	return summaries, rows.Err()
}

// =====================================================
// SCANNING HELPERS
// =====================================================

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *paymentRepository) scanOne(row pgx.Row) (*model.Payment, error) {
	payment, err := r.scanRow(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrPaymentNotFound
		}
		return nil, err
	}
	return payment, nil
}

func (r *paymentRepository) scanRow(row rowScanner) (*model.Payment, error) {
	payment := &model.Payment{}
	err := row.Scan(
		&payment.ID,
		&payment.AgreementID,
		&payment.PayerID,
		&payment.Amount,
		&payment.Type,
		&payment.Method,
		&payment.OrderID,
		&payment.Status,
		&payment.CommissionRate,
		&payment.Notes,
		&payment.PaymentDate,
		&payment.CreatedAt,
		&payment.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan payment: %w", err)
	}
	return payment, nil
}
