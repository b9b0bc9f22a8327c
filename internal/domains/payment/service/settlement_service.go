package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	agreementModel "renthub-backend/internal/domains/agreement/model"
	agreementRepo "renthub-backend/internal/domains/agreement/repository"
	commissionService "renthub-backend/internal/domains/commission/service"
	"renthub-backend/internal/domains/payment/model"
	"renthub-backend/internal/domains/payment/repository"
)

// =====================================================
// SETTLEMENT SERVICE
// =====================================================

type SettlementServiceInterface interface {
	// RecordSettlement records an off-gateway rent payment the owner
	// received directly (bank transfer, cash)
	RecordSettlement(ctx context.Context, ownerID uuid.UUID, req *model.RecordSettlementRequest) (*model.PaymentStatusResponse, error)

	// RecordGuarantee records a guarantee deposit held by the platform
	RecordGuarantee(ctx context.Context, adminID uuid.UUID, req *model.RecordGuaranteeRequest) (*model.PaymentStatusResponse, error)

	// AggregateCommission builds the commission report over [from, to)
	AggregateCommission(ctx context.Context, from, to time.Time) (*model.CommissionReportResponse, error)
}

type settlementService struct {
	payments   repository.PaymentRepoInterface
	agreements agreementRepo.AgreementRepoInterface
	commission commissionService.ConfigServiceInterface
	logger     zerolog.Logger
}

func NewSettlementService(
	payments repository.PaymentRepoInterface,
	agreements agreementRepo.AgreementRepoInterface,
	commission commissionService.ConfigServiceInterface,
	logger zerolog.Logger,
) SettlementServiceInterface {
	return &settlementService{
		payments:   payments,
		agreements: agreements,
		commission: commission,
		logger:     logger.With().Str("service", "settlement").Logger(),
	}
}

// RecordSettlement records an off-gateway rent payment. Only the owner of
// the agreement's property may record one.
func (s *settlementService) RecordSettlement(ctx context.Context, ownerID uuid.UUID, req *model.RecordSettlementRequest) (*model.PaymentStatusResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, model.NewValidationError(err.Error(), err)
	}

	agreement, err := s.agreements.GetByID(ctx, req.AgreementID)
	if err != nil {
		if errors.Is(err, agreementModel.ErrAgreementNotFound) {
			// Missing and foreign agreements answer identically, so the
			// endpoint cannot be used to probe for agreement ids
			return nil, model.NewNotAgreementOwnerError()
		}
		return nil, err
	}
	if agreement.OwnerID != ownerID {
		return nil, model.NewNotAgreementOwnerError()
	}

	payment, err := s.recordCompleted(ctx, &model.Payment{
		ID:          uuid.New(),
		AgreementID: &agreement.ID,
		PayerID:     agreement.TenantID,
		Amount:      req.Amount,
		Type:        model.PaymentTypeRent,
		Method:      model.PaymentMethodBankTransfer,
		OrderID:     newOrderID(model.PaymentTypeRent),
		Notes:       req.Notes,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("order_id", payment.OrderID).
		Str("agreement_id", agreement.ID.String()).
		Str("amount", req.Amount.String()).
		Msg("settlement recorded")

	return toStatusResponse(payment), nil
}

// RecordGuarantee records a guarantee deposit held by the platform
func (s *settlementService) RecordGuarantee(ctx context.Context, adminID uuid.UUID, req *model.RecordGuaranteeRequest) (*model.PaymentStatusResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, model.NewValidationError(err.Error(), err)
	}

	agreement, err := s.agreements.GetByID(ctx, req.AgreementID)
	if err != nil {
		if errors.Is(err, agreementModel.ErrAgreementNotFound) {
			return nil, model.NewAgreementNotFoundError(req.AgreementID.String())
		}
		return nil, err
	}

	payment, err := s.recordCompleted(ctx, &model.Payment{
		ID:          uuid.New(),
		AgreementID: &agreement.ID,
		PayerID:     agreement.TenantID,
		Amount:      req.Amount,
		Type:        model.PaymentTypeGuarantee,
		Method:      model.PaymentMethodBankTransfer,
		OrderID:     newOrderID(model.PaymentTypeGuarantee),
		Notes:       req.Notes,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("order_id", payment.OrderID).
		Str("admin_id", adminID.String()).
		Msg("guarantee recorded")

	return toStatusResponse(payment), nil
}

// recordCompleted inserts a payment and completes it in one transaction.
// These records have no gateway notification behind them, so a payment left
// in 'pending' here would stay pending forever.
func (s *settlementService) recordCompleted(ctx context.Context, payment *model.Payment) (*model.Payment, error) {
	if err := s.payments.CreateCompleted(ctx, payment, time.Now()); err != nil {
		return nil, err
	}
	return payment, nil
}

// AggregateCommission builds the commission report over [from, to) using the
// current configuration. Commission is clamped per payment inside the
// aggregation queries.
func (s *settlementService) AggregateCommission(ctx context.Context, from, to time.Time) (*model.CommissionReportResponse, error) {
	config, err := s.commission.GetConfiguration(ctx)
	if err != nil {
		return nil, err
	}

	rate := config.Rate.String()
	floor := config.Floor.String()
	ceiling := config.Ceiling.String()

	byProperty, err := s.payments.SumCommissionByProperty(ctx, from, to, rate, floor, ceiling)
	if err != nil {
		return nil, err
	}

	byMonth, err := s.payments.SumCommissionByMonth(ctx, from, to, rate, floor, ceiling)
	if err != nil {
		return nil, err
	}

	report := &model.CommissionReportResponse{
		FromDate:   from,
		ToDate:     to,
		Rate:       config.Rate,
		ByProperty: make([]model.PropertyCommissionSummary, 0, len(byProperty)),
		ByMonth:    make([]model.MonthlyCommissionSummary, 0, len(byMonth)),
	}

	totalRent := decimal.Zero
	totalCommission := decimal.Zero
	for _, p := range byProperty {
		report.ByProperty = append(report.ByProperty, *p)
		totalRent = totalRent.Add(p.RentTotal)
		totalCommission = totalCommission.Add(p.Commission)
	}
	for _, m := range byMonth {
		report.ByMonth = append(report.ByMonth, *m)
	}

	report.TotalRent = totalRent
	report.TotalCommission = totalCommission
	return report, nil
}

// newOrderID generates <prefix>-<unixnano>-<uuid8> for a payment type
func newOrderID(paymentType string) string {
	return fmt.Sprintf("%s-%d-%s",
		model.OrderIDPrefixes[paymentType],
		time.Now().UnixNano(),
		uuid.New().String()[:8],
	)
}
