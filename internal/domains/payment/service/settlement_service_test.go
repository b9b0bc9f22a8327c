package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	agreementModel "renthub-backend/internal/domains/agreement/model"
	"renthub-backend/internal/domains/payment/model"
)

type settlementFixture struct {
	service  SettlementServiceInterface
	payments *fakePaymentRepo

	ownerID   uuid.UUID
	tenantID  uuid.UUID
	agreement *agreementModel.Agreement
}

func newSettlementFixture(t *testing.T) *settlementFixture {
	t.Helper()

	ownerID := uuid.New()
	tenantID := uuid.New()
	agreement := &agreementModel.Agreement{
		ID:          uuid.New(),
		PropertyID:  uuid.New(),
		TenantID:    tenantID,
		MonthlyRent: decimal.RequireFromString("75000"),
		Status:      agreementModel.StatusActive,
		OwnerID:     ownerID,
	}

	payments := newFakePaymentRepo()
	service := NewSettlementService(
		payments,
		newFakeAgreementRepo(agreement),
		newFakeCommissionConfig(),
		zerolog.Nop(),
	)

	return &settlementFixture{
		service:   service,
		payments:  payments,
		ownerID:   ownerID,
		tenantID:  tenantID,
		agreement: agreement,
	}
}

func TestRecordSettlement(t *testing.T) {
	f := newSettlementFixture(t)

	resp, err := f.service.RecordSettlement(context.Background(), f.ownerID, &model.RecordSettlementRequest{
		AgreementID: f.agreement.ID,
		Amount:      decimal.RequireFromString("75000"),
		Notes:       "August rent, bank transfer ref 4417",
	})
	require.NoError(t, err)

	assert.Equal(t, model.PaymentStatusCompleted, resp.Status)
	assert.Equal(t, model.PaymentMethodBankTransfer, resp.Method)
	assert.Equal(t, model.PaymentTypeRent, resp.Type)
	assert.True(t, strings.HasPrefix(resp.OrderID, "RNT-"))
	require.NotNil(t, resp.PaymentDate)

	// The tenant is recorded as the payer even though the owner reported it
	payment, err := f.payments.GetByID(context.Background(), resp.PaymentID)
	require.NoError(t, err)
	assert.Equal(t, f.tenantID, payment.PayerID)

	// Recorded in a single atomic step, never through a separate pending
	// window a crash could leave behind
	assert.Equal(t, []string{resp.OrderID}, f.payments.completed)
	assert.Empty(t, f.payments.transitions)
}

func TestRecordSettlement_Authorization(t *testing.T) {
	tests := []struct {
		name        string
		caller      func(f *settlementFixture) uuid.UUID
		agreementID func(f *settlementFixture) uuid.UUID
	}{
		{
			name:        "caller does not own the agreement",
			caller:      func(f *settlementFixture) uuid.UUID { return uuid.New() },
			agreementID: func(f *settlementFixture) uuid.UUID { return f.agreement.ID },
		},
		{
			// Missing agreements answer the same way, so the endpoint cannot
			// be used to probe for agreement ids
			name:        "agreement does not exist",
			caller:      func(f *settlementFixture) uuid.UUID { return f.ownerID },
			agreementID: func(f *settlementFixture) uuid.UUID { return uuid.New() },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newSettlementFixture(t)

			_, err := f.service.RecordSettlement(context.Background(), tt.caller(f), &model.RecordSettlementRequest{
				AgreementID: tt.agreementID(f),
				Amount:      decimal.RequireFromString("75000"),
			})
			require.Error(t, err)

			var paymentErr *model.PaymentError
			require.True(t, errors.As(err, &paymentErr))
			assert.Equal(t, model.ErrCodeNotAgreementOwner, paymentErr.Code)
			assert.Empty(t, f.payments.payments)
		})
	}
}

func TestRecordSettlement_InvalidAmount(t *testing.T) {
	f := newSettlementFixture(t)

	_, err := f.service.RecordSettlement(context.Background(), f.ownerID, &model.RecordSettlementRequest{
		AgreementID: f.agreement.ID,
		Amount:      decimal.Zero,
	})
	require.Error(t, err)

	var paymentErr *model.PaymentError
	require.True(t, errors.As(err, &paymentErr))
	assert.Equal(t, model.ErrCodeValidation, paymentErr.Code)
}

func TestRecordGuarantee(t *testing.T) {
	f := newSettlementFixture(t)
	adminID := uuid.New()

	resp, err := f.service.RecordGuarantee(context.Background(), adminID, &model.RecordGuaranteeRequest{
		AgreementID: f.agreement.ID,
		Amount:      decimal.RequireFromString("150000"),
	})
	require.NoError(t, err)

	assert.Equal(t, model.PaymentStatusCompleted, resp.Status)
	assert.Equal(t, model.PaymentTypeGuarantee, resp.Type)
	assert.True(t, strings.HasPrefix(resp.OrderID, "GRT-"))
}

func TestRecordGuarantee_UnknownAgreement(t *testing.T) {
	f := newSettlementFixture(t)

	_, err := f.service.RecordGuarantee(context.Background(), uuid.New(), &model.RecordGuaranteeRequest{
		AgreementID: uuid.New(),
		Amount:      decimal.RequireFromString("150000"),
	})
	require.Error(t, err)

	var paymentErr *model.PaymentError
	require.True(t, errors.As(err, &paymentErr))
	assert.Equal(t, model.ErrCodeAgreementNotFound, paymentErr.Code)
}

func TestAggregateCommission(t *testing.T) {
	f := newSettlementFixture(t)

	propertyA := uuid.New()
	propertyB := uuid.New()
	f.payments.commissionByProperty = []*model.PropertyCommissionSummary{
		{
			PropertyID:    propertyA,
			PropertyTitle: "Sea View Apartment",
			PaymentCount:  2,
			RentTotal:     decimal.RequireFromString("150000"),
			Commission:    decimal.RequireFromString("7500"),
		},
		{
			PropertyID:    propertyB,
			PropertyTitle: "Hillside Bungalow",
			PaymentCount:  1,
			RentTotal:     decimal.RequireFromString("500000"),
			Commission:    decimal.RequireFromString("10000"), // clamped at ceiling
		},
	}
	f.payments.commissionByMonth = []*model.MonthlyCommissionSummary{
		{
			Month:      time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
			RentTotal:  decimal.RequireFromString("650000"),
			Commission: decimal.RequireFromString("17500"),
		},
	}

	from := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	report, err := f.service.AggregateCommission(context.Background(), from, to)
	require.NoError(t, err)

	// Totals sum the per-payment clamped values, never clamp the sum
	assert.True(t, report.TotalRent.Equal(decimal.RequireFromString("650000")), "got %s", report.TotalRent)
	assert.True(t, report.TotalCommission.Equal(decimal.RequireFromString("17500")), "got %s", report.TotalCommission)
	assert.True(t, report.Rate.Equal(decimal.RequireFromString("5")))
	assert.Len(t, report.ByProperty, 2)
	assert.Len(t, report.ByMonth, 1)

	// The configured bounds are pushed into the SQL aggregation
	assert.Equal(t, []string{"5", "500", "10000"}, f.payments.aggregationArgs)
}
