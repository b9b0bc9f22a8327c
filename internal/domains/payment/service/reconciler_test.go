package service

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	agreementModel "renthub-backend/internal/domains/agreement/model"
	"renthub-backend/internal/domains/payment/gateway/payhere"
	"renthub-backend/internal/domains/payment/model"
	propertyModel "renthub-backend/internal/domains/property/model"
	userModel "renthub-backend/internal/domains/user/model"
)

func md5UpperHex(s string) string {
	sum := md5.Sum([]byte(s))
	return strings.ToUpper(hex.EncodeToString(sum[:]))
}

// signNotification applies the gateway's md5sig scheme to a notification
func signNotification(secret string, n *payhere.Notification) {
	n.Signature = md5UpperHex(n.MerchantID + n.OrderID + n.Amount + n.Currency + n.StatusCode + md5UpperHex(secret))
}

// reconcilerFixture wires a reconciler over in-memory fakes with one active
// agreement and one pending rent payment of 75000.00
type reconcilerFixture struct {
	reconciler ReconcilerInterface
	payments   *fakePaymentRepo
	webhooks   *fakeWebhookRepo
	notifier   *fakeNotifier
	config     *payhere.Config

	tenant  *userModel.User
	owner   *userModel.User
	payment *model.Payment
	orderID string
}

func newReconcilerFixture(t *testing.T) *reconcilerFixture {
	t.Helper()

	config := payhere.NewConfig(
		"1221149",
		"test-merchant-secret",
		"https://renthub.dev/payments/return",
		"https://renthub.dev/payments/cancel",
		"https://renthub.dev/api/v1/webhooks/payhere",
	)

	tenant := &userModel.User{
		ID:        uuid.New(),
		Email:     "tenant@example.com",
		FirstName: "Nimal",
		Role:      userModel.RoleTenant,
	}
	owner := &userModel.User{
		ID:        uuid.New(),
		Email:     "owner@example.com",
		FirstName: "Kamala",
		Role:      userModel.RoleOwner,
	}

	property := &propertyModel.Property{
		ID:      uuid.New(),
		OwnerID: owner.ID,
		Title:   "Sea View Apartment",
	}

	agreement := &agreementModel.Agreement{
		ID:          uuid.New(),
		PropertyID:  property.ID,
		TenantID:    tenant.ID,
		MonthlyRent: decimal.RequireFromString("75000"),
		Status:      agreementModel.StatusActive,
		OwnerID:     owner.ID,
	}

	orderID := "RNT-1756600000000000000-a1b2c3d4"
	payment := &model.Payment{
		ID:          uuid.New(),
		AgreementID: &agreement.ID,
		PayerID:     tenant.ID,
		Amount:      decimal.RequireFromString("75000"),
		Type:        model.PaymentTypeRent,
		Method:      model.PaymentMethodGateway,
		OrderID:     orderID,
		Status:      model.PaymentStatusPending,
	}

	payments := newFakePaymentRepo()
	payments.add(payment)
	webhooks := newFakeWebhookRepo()
	notifier := &fakeNotifier{}

	reconciler := NewReconciler(
		payments,
		webhooks,
		newFakeAgreementRepo(agreement),
		newFakePropertyRepo(property),
		newFakeUserRepo(tenant, owner),
		notifier,
		config,
		zerolog.Nop(),
	)

	return &reconcilerFixture{
		reconciler: reconciler,
		payments:   payments,
		webhooks:   webhooks,
		notifier:   notifier,
		config:     config,
		tenant:     tenant,
		owner:      owner,
		payment:    payment,
		orderID:    orderID,
	}
}

// notification builds a correctly signed notification for the fixture payment
func (f *reconcilerFixture) notification(statusCode string) payhere.Notification {
	n := payhere.Notification{
		MerchantID: f.config.MerchantID,
		OrderID:    f.orderID,
		PaymentID:  "320025858",
		Amount:     "75000.00",
		Currency:   "LKR",
		StatusCode: statusCode,
		Custom1:    f.payment.ID.String(),
		Custom2:    f.payment.Type,
	}
	signNotification(f.config.Secret, &n)
	return n
}

func TestHandleNotification_Success(t *testing.T) {
	f := newReconcilerFixture(t)

	result, err := f.reconciler.HandleNotification(context.Background(), f.notification(payhere.StatusCodeSuccess), "raw=payload")
	require.NoError(t, err)

	assert.Equal(t, model.PaymentStatusCompleted, result.Status)
	assert.False(t, result.Noop)
	assert.Equal(t, model.PaymentStatusCompleted, f.payment.Status)
	require.NotNil(t, f.payment.PaymentDate)

	// Audit trail: delivery logged and marked processed
	require.Len(t, f.webhooks.logs, 1)
	assert.Equal(t, model.WebhookEventSuccess, f.webhooks.logs[0].Event)
	assert.Equal(t, "raw=payload", f.webhooks.logs[0].RawPayload)
	assert.Len(t, f.webhooks.processed, 1)

	// Rent payment notifies both the tenant and the property owner
	require.Len(t, f.notifier.calls, 1)
	call := f.notifier.calls[0]
	assert.Equal(t, f.tenant.ID, call.payer.ID)
	require.NotNil(t, call.owner)
	assert.Equal(t, f.owner.ID, call.owner.ID)
	assert.Equal(t, "Sea View Apartment", call.propertyTitle)
}

func TestHandleNotification_RepeatDeliveryIsNoop(t *testing.T) {
	f := newReconcilerFixture(t)

	_, err := f.reconciler.HandleNotification(context.Background(), f.notification(payhere.StatusCodeSuccess), "")
	require.NoError(t, err)
	transitionsAfterFirst := len(f.payments.transitions)

	result, err := f.reconciler.HandleNotification(context.Background(), f.notification(payhere.StatusCodeSuccess), "")
	require.NoError(t, err)

	assert.True(t, result.Noop)
	assert.Equal(t, model.PaymentStatusCompleted, result.Status)
	assert.Len(t, f.payments.transitions, transitionsAfterFirst, "no second transition attempt")
	assert.Len(t, f.notifier.calls, 1, "no duplicate confirmation emails")
}

func TestHandleNotification_Rejections(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(f *reconcilerFixture, n *payhere.Notification)
		wantCode string
	}{
		{
			name: "missing required fields",
			mutate: func(f *reconcilerFixture, n *payhere.Notification) {
				n.StatusCode = ""
			},
			wantCode: model.ErrCodeValidation,
		},
		{
			name: "foreign merchant id",
			mutate: func(f *reconcilerFixture, n *payhere.Notification) {
				n.MerchantID = "9999999"
				signNotification(f.config.Secret, n)
			},
			wantCode: model.ErrCodeMerchantMismatch,
		},
		{
			name: "invalid signature",
			mutate: func(f *reconcilerFixture, n *payhere.Notification) {
				n.Signature = strings.Repeat("A", 32)
			},
			wantCode: model.ErrCodeInvalidSignature,
		},
		{
			name: "unknown order id",
			mutate: func(f *reconcilerFixture, n *payhere.Notification) {
				n.OrderID = "RNT-1-ffffffff"
				signNotification(f.config.Secret, n)
			},
			wantCode: model.ErrCodePaymentNotFound,
		},
		{
			name: "tampered amount with valid signature",
			mutate: func(f *reconcilerFixture, n *payhere.Notification) {
				n.Amount = "1.00"
				signNotification(f.config.Secret, n)
			},
			wantCode: model.ErrCodeAmountMismatch,
		},
		{
			name: "unknown status code",
			mutate: func(f *reconcilerFixture, n *payhere.Notification) {
				n.StatusCode = "9"
				signNotification(f.config.Secret, n)
			},
			wantCode: model.ErrCodeUnknownStatus,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newReconcilerFixture(t)
			n := f.notification(payhere.StatusCodeSuccess)
			tt.mutate(f, &n)

			_, err := f.reconciler.HandleNotification(context.Background(), n, "")
			require.Error(t, err)

			var paymentErr *model.PaymentError
			require.True(t, errors.As(err, &paymentErr))
			assert.Equal(t, tt.wantCode, paymentErr.Code)

			// Rejections never touch the payment or send mail
			assert.Equal(t, model.PaymentStatusPending, f.payment.Status)
			assert.Empty(t, f.notifier.calls)

			// The audit row records the rejection reason
			require.Len(t, f.webhooks.logs, 1)
			assert.Equal(t, tt.wantCode, f.webhooks.invalid[f.webhooks.logs[0].ID])
		})
	}
}

func TestHandleNotification_CancelledAndFailed(t *testing.T) {
	tests := []struct {
		statusCode string
		wantStatus string
		wantEvent  string
	}{
		{payhere.StatusCodeCancelled, model.PaymentStatusCancelled, model.WebhookEventCancelled},
		{payhere.StatusCodeFailed, model.PaymentStatusFailed, model.WebhookEventFailed},
		// Chargebacks settle as failed but keep a distinct audit event
		{payhere.StatusCodeChargedback, model.PaymentStatusFailed, model.WebhookEventChargedback},
	}

	for _, tt := range tests {
		t.Run("status "+tt.statusCode, func(t *testing.T) {
			f := newReconcilerFixture(t)

			result, err := f.reconciler.HandleNotification(context.Background(), f.notification(tt.statusCode), "")
			require.NoError(t, err)

			assert.Equal(t, tt.wantStatus, result.Status)
			assert.Equal(t, tt.wantStatus, f.payment.Status)
			assert.Nil(t, f.payment.PaymentDate, "only success sets the payment date")
			assert.Empty(t, f.notifier.calls, "only success sends confirmations")

			require.Len(t, f.webhooks.logs, 1)
			assert.Equal(t, tt.wantEvent, f.webhooks.logs[0].Event)
		})
	}
}

func TestHandleNotification_GatewayStillPending(t *testing.T) {
	f := newReconcilerFixture(t)

	result, err := f.reconciler.HandleNotification(context.Background(), f.notification(payhere.StatusCodePending), "")
	require.NoError(t, err)

	assert.Equal(t, model.PaymentStatusPending, result.Status)
	assert.Equal(t, model.PaymentStatusPending, f.payment.Status)
	assert.Empty(t, f.payments.transitions)
	assert.Len(t, f.webhooks.processed, 1)
}

func TestHandleNotification_LostRaceIsNoop(t *testing.T) {
	f := newReconcilerFixture(t)
	f.payments.failTransition = true
	f.payments.raceWinnerStatus = model.PaymentStatusCompleted

	result, err := f.reconciler.HandleNotification(context.Background(), f.notification(payhere.StatusCodeSuccess), "")
	require.NoError(t, err)

	assert.True(t, result.Noop)
	assert.Equal(t, model.PaymentStatusCompleted, result.Status, "reports the winner's state, not the stale pre-race read")
	assert.Empty(t, f.notifier.calls, "the winning delivery sends the emails")
	assert.Len(t, f.webhooks.processed, 1)
}

func TestHandleNotification_DepositNotifiesPayerOnly(t *testing.T) {
	f := newReconcilerFixture(t)
	f.payment.Type = model.PaymentTypeDeposit

	n := f.notification(payhere.StatusCodeSuccess)
	result, err := f.reconciler.HandleNotification(context.Background(), n, "")
	require.NoError(t, err)
	assert.Equal(t, model.PaymentStatusCompleted, result.Status)

	require.Len(t, f.notifier.calls, 1)
	assert.Equal(t, f.tenant.ID, f.notifier.calls[0].payer.ID)
	assert.Nil(t, f.notifier.calls[0].owner, "deposits are not the owner's money yet")
}
