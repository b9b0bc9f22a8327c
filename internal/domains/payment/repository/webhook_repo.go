package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"renthub-backend/internal/domains/payment/model"
)

// =====================================================
// WEBHOOK LOG REPOSITORY IMPLEMENTATION
// =====================================================
type webhookRepository struct {
	pool *pgxpool.Pool
}

func NewWebhookRepository(pool *pgxpool.Pool) WebhookRepoInterface {
	return &webhookRepository{pool: pool}
}

// Create creates a webhook audit log entry. Every received notification is
// logged before any verification runs.
func (r *webhookRepository) Create(ctx context.Context, log *model.WebhookLog) error {
	query := `
		INSERT INTO payment_webhook_logs (
			id, order_id, event, status_code, raw_payload, valid, reason
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7
		)
		RETURNING created_at
	`

	err := r.pool.QueryRow(ctx, query,
		log.ID,
		log.OrderID,
		log.Event,
		log.StatusCode,
		log.RawPayload,
		log.Valid,
		log.Reason,
	).Scan(&log.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to create webhook log: %w", err)
	}

	return nil
}

// MarkProcessed marks a notification as processed
func (r *webhookRepository) MarkProcessed(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE payment_webhook_logs
		SET valid = TRUE, processed_at = NOW()
		WHERE id = $1
	`

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to mark webhook as processed: %w", err)
	}

	if result.RowsAffected() == 0 {
		return model.ErrPaymentNotFound
	}

	return nil
}

// MarkInvalid records why a notification was rejected
func (r *webhookRepository) MarkInvalid(ctx context.Context, id uuid.UUID, reason string) error {
	query := `
		UPDATE payment_webhook_logs
		SET valid = FALSE, reason = $1
		WHERE id = $2
	`

	result, err := r.pool.Exec(ctx, query, reason, id)
	if err != nil {
		return fmt.Errorf("failed to mark webhook as invalid: %w", err)
	}

	if result.RowsAffected() == 0 {
		return model.ErrPaymentNotFound
	}

	return nil
}

// ListByOrderID lists notifications received for an order
func (r *webhookRepository) ListByOrderID(ctx context.Context, orderID string) ([]*model.WebhookLog, error) {
	query := `
		SELECT id, order_id, event, status_code, raw_payload, valid, reason,
			processed_at, created_at
		FROM payment_webhook_logs
		WHERE order_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.pool.Query(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to list webhook logs: %w", err)
	}
	defer rows.Close()

	logs := make([]*model.WebhookLog, 0)
	for rows.Next() {
		log := &model.WebhookLog{}
		if err := rows.Scan(
			&log.ID, &log.OrderID, &log.Event, &log.StatusCode, &log.RawPayload,
			&log.Valid, &log.Reason, &log.ProcessedAt, &log.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan webhook log: %w", err)
		}
		logs = append(logs, log)
	}

	return logs, rows.Err()
}
