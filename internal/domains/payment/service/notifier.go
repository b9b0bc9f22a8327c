package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"

	"renthub-backend/internal/domains/payment/gateway/payhere"
	paymentModel "renthub-backend/internal/domains/payment/model"
	userModel "renthub-backend/internal/domains/user/model"
	"renthub-backend/internal/infrastructure/email"
	"renthub-backend/internal/shared"
)

// =====================================================
// PAYMENT NOTIFIER
// =====================================================

// NotifierInterface enqueues confirmation emails after a completed payment.
// All methods are fire-and-forget: enqueue failures are logged and swallowed
// so the reconciliation result never depends on the mail pipeline.
type NotifierInterface interface {
	// PaymentCompleted notifies the payer, and for rent payments also the
	// property owner. owner and propertyTitle may be zero-valued for
	// non-rent types.
	PaymentCompleted(ctx context.Context, payment *paymentModel.Payment, payer *userModel.User, owner *userModel.User, propertyTitle string)
}

type asynqNotifier struct {
	client *asynq.Client
	logger zerolog.Logger
}

func NewAsynqNotifier(client *asynq.Client, logger zerolog.Logger) NotifierInterface {
	return &asynqNotifier{
		client: client,
		logger: logger.With().Str("component", "payment_notifier").Logger(),
	}
}

func (n *asynqNotifier) PaymentCompleted(ctx context.Context, payment *paymentModel.Payment, payer *userModel.User, owner *userModel.User, propertyTitle string) {
	if payer != nil {
		n.enqueue(ctx, shared.TypePaymentReceipt, email.PaymentReceiptData{
			Email:       payer.Email,
			FirstName:   payer.FirstName,
			OrderID:     payment.OrderID,
			Amount:      payhere.FormatAmount(payment.Amount),
			PaymentType: payment.Type,
		})
	}

	// Owners only hear about rent; deposits and platform fees are not theirs
	if payment.Type == paymentModel.PaymentTypeRent && owner != nil {
		n.enqueue(ctx, shared.TypeOwnerRentAlert, email.OwnerRentAlertData{
			Email:         owner.Email,
			FirstName:     owner.FirstName,
			OrderID:       payment.OrderID,
			Amount:        payhere.FormatAmount(payment.Amount),
			PropertyTitle: propertyTitle,
		})
	}
}

func (n *asynqNotifier) enqueue(ctx context.Context, taskType string, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		n.logger.Error().Err(err).Str("task", taskType).Msg("failed to marshal email payload")
		return
	}

	task := asynq.NewTask(taskType, data)
	_, err = n.client.EnqueueContext(ctx, task,
		asynq.Queue(shared.QueueEmail),
		asynq.MaxRetry(3),
		asynq.Timeout(time.Minute),
	)
	if err != nil {
		n.logger.Error().Err(err).Str("task", taskType).Msg("failed to enqueue email task")
	}
}
