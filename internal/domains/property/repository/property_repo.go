package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"renthub-backend/internal/domains/property/model"
)

// =====================================================
// PROPERTY REPOSITORY
// =====================================================
type PropertyRepoInterface interface {
	// GetByID gets a property by primary key
	GetByID(ctx context.Context, id uuid.UUID) (*model.Property, error)

	// UpdateStatus moves a property between listing statuses
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
}

type propertyRepository struct {
	pool *pgxpool.Pool
}

func NewPropertyRepository(pool *pgxpool.Pool) PropertyRepoInterface {
	return &propertyRepository{pool: pool}
}

// GetByID gets a property by primary key
func (r *propertyRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Property, error) {
	query := `
		SELECT id, owner_id, title, address, city, monthly_rent,
			security_deposit, status, created_at, updated_at
		FROM properties
		WHERE id = $1
	`

	property := &model.Property{}
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&property.ID,
		&property.OwnerID,
		&property.Title,
		&property.Address,
		&property.City,
		&property.MonthlyRent,
		&property.SecurityDeposit,
		&property.Status,
		&property.CreatedAt,
		&property.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrPropertyNotFound
		}
		return nil, fmt.Errorf("failed to get property: %w", err)
	}

	return property, nil
}

// UpdateStatus moves a property between listing statuses
func (r *propertyRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	query := `
		UPDATE properties
		SET status = $1, updated_at = NOW()
		WHERE id = $2
	`

	result, err := r.pool.Exec(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("failed to update property status: %w", err)
	}

	if result.RowsAffected() == 0 {
		return model.ErrPropertyNotFound
	}

	return nil
}
