package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"renthub-backend/internal/infrastructure/email"
)

// ============================================
// Payment Receipt Handler
// ============================================

type PaymentReceiptHandler struct {
	emailService email.EmailService
}

func NewPaymentReceiptHandler(emailService email.EmailService) *PaymentReceiptHandler {
	return &PaymentReceiptHandler{
		emailService: emailService,
	}
}

func (h *PaymentReceiptHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var payload email.PaymentReceiptData
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		log.Error().Err(err).Msg("Failed to unmarshal PaymentReceipt payload")
		return fmt.Errorf("unmarshal payload: %w", err)
	}

	log.Info().
		Str("email", payload.Email).
		Str("order_id", payload.OrderID).
		Msg("Processing payment receipt email")

	if err := h.emailService.SendPaymentReceipt(ctx, payload); err != nil {
		log.Error().Err(err).Msg("Failed to send payment receipt email")
		return fmt.Errorf("send payment receipt email: %w", err)
	}

	return nil
}

// ============================================
// Owner Rent Alert Handler
// ============================================

type OwnerRentAlertHandler struct {
	emailService email.EmailService
}

func NewOwnerRentAlertHandler(emailService email.EmailService) *OwnerRentAlertHandler {
	return &OwnerRentAlertHandler{
		emailService: emailService,
	}
}

func (h *OwnerRentAlertHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var payload email.OwnerRentAlertData
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		log.Error().Err(err).Msg("Failed to unmarshal OwnerRentAlert payload")
		return fmt.Errorf("unmarshal payload: %w", err)
	}

	log.Info().
		Str("email", payload.Email).
		Str("order_id", payload.OrderID).
		Msg("Processing owner rent alert email")

	if err := h.emailService.SendOwnerRentAlert(ctx, payload); err != nil {
		log.Error().Err(err).Msg("Failed to send owner rent alert email")
		return fmt.Errorf("send owner rent alert email: %w", err)
	}

	return nil
}
