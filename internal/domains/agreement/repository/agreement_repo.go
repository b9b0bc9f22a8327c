package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"renthub-backend/internal/domains/agreement/model"
)

// =====================================================
// AGREEMENT REPOSITORY INTERFACE
// =====================================================
type AgreementRepoInterface interface {
	// GetByID gets an agreement with its property owner joined in
	GetByID(ctx context.Context, id uuid.UUID) (*model.Agreement, error)

	// ListByOwnerID lists agreements on properties owned by a user
	ListByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]*model.Agreement, error)

	// UpdateStatus moves an agreement to a new lifecycle status
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
}

// =====================================================
// AGREEMENT REPOSITORY IMPLEMENTATION
// =====================================================
type agreementRepository struct {
	pool *pgxpool.Pool
}

func NewAgreementRepository(pool *pgxpool.Pool) AgreementRepoInterface {
	return &agreementRepository{pool: pool}
}

const agreementSelect = `
	SELECT a.id, a.property_id, a.tenant_id, a.monthly_rent, a.security_deposit,
		a.status, a.start_date, a.end_date, a.created_at, a.updated_at,
		p.owner_id
	FROM agreements a
	JOIN properties p ON p.id = a.property_id
`

// GetByID gets an agreement with its property owner joined in
func (r *agreementRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Agreement, error) {
	query := agreementSelect + ` WHERE a.id = $1`

	agreement, err := scanAgreement(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrAgreementNotFound
		}
		return nil, fmt.Errorf("failed to get agreement: %w", err)
	}

	return agreement, nil
}

// ListByOwnerID lists agreements on properties owned by a user
func (r *agreementRepository) ListByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]*model.Agreement, error) {
	query := agreementSelect + ` WHERE p.owner_id = $1 ORDER BY a.created_at DESC`

	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list agreements: %w", err)
	}
	defer rows.Close()

	agreements := make([]*model.Agreement, 0)
	for rows.Next() {
		agreement, err := scanAgreement(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan agreement: %w", err)
		}
		agreements = append(agreements, agreement)
	}

	return agreements, rows.Err()
}

// UpdateStatus moves an agreement to a new lifecycle status
func (r *agreementRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	query := `
		UPDATE agreements
		SET status = $1, updated_at = NOW()
		WHERE id = $2
	`

	result, err := r.pool.Exec(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("failed to update agreement status: %w", err)
	}

	if result.RowsAffected() == 0 {
		return model.ErrAgreementNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAgreement(row rowScanner) (*model.Agreement, error) {
	agreement := &model.Agreement{}
	err := row.Scan(
		&agreement.ID,
		&agreement.PropertyID,
		&agreement.TenantID,
		&agreement.MonthlyRent,
		&agreement.SecurityDeposit,
		&agreement.Status,
		&agreement.StartDate,
		&agreement.EndDate,
		&agreement.CreatedAt,
		&agreement.UpdatedAt,
		&agreement.OwnerID,
	)
	if err != nil {
		return nil, err
	}
	return agreement, nil
}
