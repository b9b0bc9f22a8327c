package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	agreementRepo "renthub-backend/internal/domains/agreement/repository"
	"renthub-backend/internal/domains/payment/gateway/payhere"
	"renthub-backend/internal/domains/payment/model"
	"renthub-backend/internal/domains/payment/repository"
	propertyRepo "renthub-backend/internal/domains/property/repository"
	userRepo "renthub-backend/internal/domains/user/repository"
)

// =====================================================
// NOTIFICATION RECONCILER
// =====================================================

// ReconcileResult tells the webhook handler how to answer the gateway.
// Handled rejections acknowledge the delivery (the gateway must not retry a
// notification we will reject again); only unexpected errors surface as 500.
type ReconcileResult struct {
	OrderID string
	Status  string // payment status after processing, if known
	Noop    bool   // a concurrent delivery already settled this payment
}

type ReconcilerInterface interface {
	// HandleNotification runs the full verification and transition pipeline
	// for one gateway callback. rawPayload is stored for audit.
	HandleNotification(ctx context.Context, n payhere.Notification, rawPayload string) (*ReconcileResult, error)
}

type reconciler struct {
	payments      repository.PaymentRepoInterface
	webhooks      repository.WebhookRepoInterface
	agreements    agreementRepo.AgreementRepoInterface
	properties    propertyRepo.PropertyRepoInterface
	users         userRepo.UserRepoInterface
	notifier      NotifierInterface
	payhereConfig *payhere.Config
	logger        zerolog.Logger
}

func NewReconciler(
	payments repository.PaymentRepoInterface,
	webhooks repository.WebhookRepoInterface,
	agreements agreementRepo.AgreementRepoInterface,
	properties propertyRepo.PropertyRepoInterface,
	users userRepo.UserRepoInterface,
	notifier NotifierInterface,
	payhereConfig *payhere.Config,
	logger zerolog.Logger,
) ReconcilerInterface {
	return &reconciler{
		payments:      payments,
		webhooks:      webhooks,
		agreements:    agreements,
		properties:    properties,
		users:         users,
		notifier:      notifier,
		payhereConfig: payhereConfig,
		logger:        logger.With().Str("service", "reconciler").Logger(),
	}
}

// HandleNotification runs the ordered verification pipeline. Every rejection
// before the transition leaves the payment untouched; the checks run in a
// fixed order so an attacker learns nothing from which error comes back.
func (r *reconciler) HandleNotification(ctx context.Context, n payhere.Notification, rawPayload string) (*ReconcileResult, error) {
	// 1. Audit-log the delivery before anything can reject it
	webhookLog := r.logDelivery(ctx, n, rawPayload)

	// 2. Required fields
	if n.MerchantID == "" || n.OrderID == "" || n.Amount == "" || n.Currency == "" || n.StatusCode == "" {
		return nil, r.reject(ctx, webhookLog, model.NewValidationError("missing required notification fields", nil))
	}

	// 3. Merchant id must be ours
	if n.MerchantID != r.payhereConfig.MerchantID {
		return nil, r.reject(ctx, webhookLog, model.NewMerchantMismatchError(n.MerchantID))
	}

	// 4. Signature (constant-time, includes the status code)
	if !r.payhereConfig.Verify(n) {
		return nil, r.reject(ctx, webhookLog, model.NewInvalidSignatureError())
	}

	// 5. Look up the payment by order id. custom_1/custom_2 are hints only.
	payment, err := r.payments.GetByOrderID(ctx, n.OrderID)
	if err != nil {
		if errors.Is(err, model.ErrPaymentNotFound) {
			return nil, r.reject(ctx, webhookLog, model.NewPaymentNotFoundError(n.OrderID))
		}
		return nil, err
	}

	// 6. Only pending payments reconcile. A repeat delivery for an already
	// settled payment is expected gateway behavior, not an attack.
	if !payment.IsPending() {
		r.logger.Info().
			Str("order_id", n.OrderID).
			Str("status", payment.Status).
			Msg("notification for non-pending payment acknowledged")
		r.markProcessed(ctx, webhookLog)
		return &ReconcileResult{OrderID: n.OrderID, Status: payment.Status, Noop: true}, nil
	}

	// 7. Amount must match to the cent, compared as formatted strings so
	// "75000.00" never drifts through float parsing
	expected := payhere.FormatAmount(payment.Amount)
	if n.Amount != expected {
		return nil, r.reject(ctx, webhookLog, model.NewAmountMismatchError(expected, n.Amount))
	}

	// 8. Map the status code to a transition
	var target string
	switch n.StatusCode {
	case payhere.StatusCodeSuccess:
		target = model.PaymentStatusCompleted
	case payhere.StatusCodeCancelled:
		target = model.PaymentStatusCancelled
	case payhere.StatusCodeFailed:
		target = model.PaymentStatusFailed
	case payhere.StatusCodeChargedback:
		// Chargebacks settle as failed but keep their own audit event and
		// a louder log line for manual follow-up
		r.logger.Warn().
			Str("order_id", n.OrderID).
			Str("gateway_payment_id", n.PaymentID).
			Msg("chargeback notification received")
		target = model.PaymentStatusFailed
	case payhere.StatusCodePending:
		// Still pending at the gateway, nothing to do yet
		r.markProcessed(ctx, webhookLog)
		return &ReconcileResult{OrderID: n.OrderID, Status: payment.Status}, nil
	default:
		return nil, r.reject(ctx, webhookLog, model.NewUnknownStatusError(n.StatusCode))
	}

	// 9. Conditional transition; a lost race is a no-op, not an error
	var paymentDate *time.Time
	if target == model.PaymentStatusCompleted {
		now := time.Now()
		paymentDate = &now
	}

	moved, err := r.payments.TransitionStatus(ctx, payment.ID, model.PaymentStatusPending, target, paymentDate)
	if err != nil {
		return nil, err
	}
	if !moved {
		// Lost the race; report the winner's state, not our stale read
		status := payment.Status
		if current, readErr := r.payments.GetByID(ctx, payment.ID); readErr == nil {
			status = current.Status
		}
		r.logger.Info().
			Str("order_id", n.OrderID).
			Str("target", target).
			Str("status", status).
			Msg("concurrent notification already settled payment")
		r.markProcessed(ctx, webhookLog)
		return &ReconcileResult{OrderID: n.OrderID, Status: status, Noop: true}, nil
	}

	r.logger.Info().
		Str("order_id", n.OrderID).
		Str("status", target).
		Str("gateway_payment_id", n.PaymentID).
		Msg("payment reconciled")

	if target == model.PaymentStatusCompleted {
		r.sendConfirmations(ctx, payment)
	}

	r.markProcessed(ctx, webhookLog)
	return &ReconcileResult{OrderID: n.OrderID, Status: target}, nil
}

// sendConfirmations enqueues the confirmation emails. Everything here is
// best-effort: the payment is already completed and stays completed.
func (r *reconciler) sendConfirmations(ctx context.Context, payment *model.Payment) {
	payer, err := r.users.GetByID(ctx, payment.PayerID)
	if err != nil {
		r.logger.Warn().Err(err).Str("order_id", payment.OrderID).Msg("failed to load payer for confirmation email")
		return
	}

	if payment.Type != model.PaymentTypeRent || payment.AgreementID == nil {
		r.notifier.PaymentCompleted(ctx, payment, payer, nil, "")
		return
	}

	agreement, err := r.agreements.GetByID(ctx, *payment.AgreementID)
	if err != nil {
		r.logger.Warn().Err(err).Str("order_id", payment.OrderID).Msg("failed to load agreement for owner notification")
		r.notifier.PaymentCompleted(ctx, payment, payer, nil, "")
		return
	}

	owner, err := r.users.GetByID(ctx, agreement.OwnerID)
	if err != nil {
		r.logger.Warn().Err(err).Str("order_id", payment.OrderID).Msg("failed to load owner for owner notification")
		r.notifier.PaymentCompleted(ctx, payment, payer, nil, "")
		return
	}

	propertyTitle := ""
	if property, err := r.properties.GetByID(ctx, agreement.PropertyID); err == nil {
		propertyTitle = property.Title
	}

	r.notifier.PaymentCompleted(ctx, payment, payer, owner, propertyTitle)
}

func (r *reconciler) logDelivery(ctx context.Context, n payhere.Notification, rawPayload string) *model.WebhookLog {
	webhookLog := &model.WebhookLog{
		ID:         uuid.New(),
		OrderID:    n.OrderID,
		Event:      eventForStatusCode(n.StatusCode),
		StatusCode: n.StatusCode,
		RawPayload: rawPayload,
	}

	if err := r.webhooks.Create(ctx, webhookLog); err != nil {
		// Audit logging must never block reconciliation
		r.logger.Warn().Err(err).Str("order_id", n.OrderID).Msg("failed to write webhook audit log")
		return nil
	}
	return webhookLog
}

func (r *reconciler) reject(ctx context.Context, webhookLog *model.WebhookLog, rejection *model.PaymentError) error {
	r.logger.Warn().
		Str("code", rejection.Code).
		Str("reason", rejection.Message).
		Msg("gateway notification rejected")

	if webhookLog != nil {
		if err := r.webhooks.MarkInvalid(ctx, webhookLog.ID, rejection.Code); err != nil {
			r.logger.Warn().Err(err).Msg("failed to mark webhook log invalid")
		}
	}
	return rejection
}

func (r *reconciler) markProcessed(ctx context.Context, webhookLog *model.WebhookLog) {
	if webhookLog == nil {
		return
	}
	if err := r.webhooks.MarkProcessed(ctx, webhookLog.ID); err != nil {
		r.logger.Warn().Err(err).Msg("failed to mark webhook log processed")
	}
}

func eventForStatusCode(code string) string {
	switch code {
	case payhere.StatusCodeSuccess:
		return model.WebhookEventSuccess
	case payhere.StatusCodeCancelled:
		return model.WebhookEventCancelled
	case payhere.StatusCodeChargedback:
		return model.WebhookEventChargedback
	default:
		return model.WebhookEventFailed
	}
}
