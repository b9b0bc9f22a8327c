package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"renthub-backend/internal/domains/commission/model"
)

// =====================================================
// COMMISSION CONFIG REPOSITORY INTERFACE
// =====================================================
type ConfigRepoInterface interface {
	// Get returns the single platform configuration row
	Get(ctx context.Context) (*model.Configuration, error)

	// Update replaces rate/floor/ceiling, recording who changed them
	Update(ctx context.Context, config *model.Configuration) error
}

// =====================================================
// COMMISSION CONFIG REPOSITORY IMPLEMENTATION
// =====================================================
type configRepository struct {
	pool *pgxpool.Pool
}

func NewConfigRepository(pool *pgxpool.Pool) ConfigRepoInterface {
	return &configRepository{pool: pool}
}

// Get returns the single platform configuration row
func (r *configRepository) Get(ctx context.Context) (*model.Configuration, error) {
	query := `
		SELECT id, rate, floor, ceiling, updated_by, updated_at
		FROM commission_config
		ORDER BY updated_at DESC
		LIMIT 1
	`

	config := &model.Configuration{}
	err := r.pool.QueryRow(ctx, query).Scan(
		&config.ID,
		&config.Rate,
		&config.Floor,
		&config.Ceiling,
		&config.UpdatedBy,
		&config.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrConfigNotFound
		}
		return nil, fmt.Errorf("failed to get commission config: %w", err)
	}

	return config, nil
}

// Update replaces the configuration values in place
func (r *configRepository) Update(ctx context.Context, config *model.Configuration) error {
	if err := config.Validate(); err != nil {
		return err
	}

	query := `
		UPDATE commission_config
		SET rate = $1, floor = $2, ceiling = $3, updated_by = $4, updated_at = NOW()
		WHERE id = $5
		RETURNING updated_at
	`

	err := r.pool.QueryRow(ctx, query,
		config.Rate,
		config.Floor,
		config.Ceiling,
		config.UpdatedBy,
		config.ID,
	).Scan(&config.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.ErrConfigNotFound
		}
		return fmt.Errorf("failed to update commission config: %w", err)
	}

	return nil
}
