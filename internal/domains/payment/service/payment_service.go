package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	agreementModel "renthub-backend/internal/domains/agreement/model"
	agreementRepo "renthub-backend/internal/domains/agreement/repository"
	commissionService "renthub-backend/internal/domains/commission/service"
	"renthub-backend/internal/domains/payment/gateway/payhere"
	"renthub-backend/internal/domains/payment/model"
	"renthub-backend/internal/domains/payment/repository"
	propertyModel "renthub-backend/internal/domains/property/model"
	propertyRepo "renthub-backend/internal/domains/property/repository"
	userRepo "renthub-backend/internal/domains/user/repository"
)

// =====================================================
// PAYMENT SERVICE
// =====================================================

type PaymentServiceInterface interface {
	// Initiate creates a pending gateway payment and returns the signed
	// checkout field set
	Initiate(ctx context.Context, userID uuid.UUID, req *model.InitiatePaymentRequest) (*model.CheckoutResponse, error)

	// GetStatus returns the current state of one of the caller's payments
	GetStatus(ctx context.Context, userID uuid.UUID, paymentID uuid.UUID) (*model.PaymentStatusResponse, error)

	// ListForPayer lists the caller's own payments
	ListForPayer(ctx context.Context, userID uuid.UUID, req *model.ListPaymentsRequest) (*model.ListPaymentsResponse, error)

	// ListForOwner lists payments received on the caller's properties
	ListForOwner(ctx context.Context, ownerID uuid.UUID, req *model.ListPaymentsRequest) (*model.ListPaymentsResponse, error)
}

type paymentService struct {
	payments      repository.PaymentRepoInterface
	agreements    agreementRepo.AgreementRepoInterface
	properties    propertyRepo.PropertyRepoInterface
	users         userRepo.UserRepoInterface
	commission    commissionService.ConfigServiceInterface
	payhereConfig *payhere.Config
	logger        zerolog.Logger
}

func NewPaymentService(
	payments repository.PaymentRepoInterface,
	agreements agreementRepo.AgreementRepoInterface,
	properties propertyRepo.PropertyRepoInterface,
	users userRepo.UserRepoInterface,
	commission commissionService.ConfigServiceInterface,
	payhereConfig *payhere.Config,
	logger zerolog.Logger,
) PaymentServiceInterface {
	return &paymentService{
		payments:      payments,
		agreements:    agreements,
		properties:    properties,
		users:         users,
		commission:    commission,
		payhereConfig: payhereConfig,
		logger:        logger.With().Str("service", "payment").Logger(),
	}
}

// Initiate creates a pending gateway payment and returns the signed checkout
// field set
func (s *paymentService) Initiate(ctx context.Context, userID uuid.UUID, req *model.InitiatePaymentRequest) (*model.CheckoutResponse, error) {
	// 1. Validate request shape
	if err := req.Validate(); err != nil {
		return nil, model.NewValidationError(err.Error(), err)
	}

	// 2. Property payments are pre-agreement rent quotes; everything else
	// resolves through the agreement
	if req.PropertyID != nil {
		return s.initiateForProperty(ctx, userID, req)
	}

	agreement, err := s.agreements.GetByID(ctx, *req.AgreementID)
	if err != nil {
		if errors.Is(err, agreementModel.ErrAgreementNotFound) {
			return nil, model.NewAgreementNotFoundError(req.AgreementID.String())
		}
		return nil, err
	}

	// 3. Check eligibility: rent and deposit require an active agreement,
	// commission and guarantee may be paid at any stage
	if (req.Type == model.PaymentTypeRent || req.Type == model.PaymentTypeDeposit) && !agreement.IsActive() {
		return nil, model.NewAgreementNotEligibleError(agreement.Status, req.Type)
	}

	// 4. Check the caller is the right party for this payment type
	if err := s.checkPayer(userID, agreement, req.Type); err != nil {
		return nil, err
	}

	// 5. Resolve the amount from the agreement, never from the client
	amount, commissionRate, err := s.resolveAmount(ctx, agreement, req.Type)
	if err != nil {
		return nil, err
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, model.NewInvalidAmountError(amount.String())
	}

	// 6. Insert the pending payment and build the signed checkout fields
	return s.createCheckout(ctx, &model.Payment{
		ID:             uuid.New(),
		AgreementID:    &agreement.ID,
		PayerID:        userID,
		Amount:         amount,
		Type:           req.Type,
		Method:         model.PaymentMethodGateway,
		OrderID:        newOrderID(req.Type),
		CommissionRate: commissionRate,
	})
}

// initiateForProperty handles the pre-agreement rent quote: a prospective
// tenant pays the advertised rent before any agreement exists, so the
// payment row carries no agreement id.
func (s *paymentService) initiateForProperty(ctx context.Context, userID uuid.UUID, req *model.InitiatePaymentRequest) (*model.CheckoutResponse, error) {
	if req.Type != model.PaymentTypeRent {
		return nil, model.NewValidationError("property payments must be of type rent", nil)
	}

	property, err := s.properties.GetByID(ctx, *req.PropertyID)
	if err != nil {
		if errors.Is(err, propertyModel.ErrPropertyNotFound) {
			return nil, model.NewPropertyNotFoundError(req.PropertyID.String())
		}
		return nil, err
	}

	// Owners do not rent their own listing
	if property.OwnerID == userID {
		return nil, model.NewUnauthorizedError()
	}

	if property.MonthlyRent.LessThanOrEqual(decimal.Zero) {
		return nil, model.NewInvalidAmountError(property.MonthlyRent.String())
	}

	return s.createCheckout(ctx, &model.Payment{
		ID:      uuid.New(),
		PayerID: userID,
		Amount:  property.MonthlyRent,
		Type:    model.PaymentTypeRent,
		Method:  model.PaymentMethodGateway,
		OrderID: newOrderID(model.PaymentTypeRent),
	})
}

// createCheckout persists the pending payment and builds the signed checkout
// field set with the payer's contact details
func (s *paymentService) createCheckout(ctx context.Context, payment *model.Payment) (*model.CheckoutResponse, error) {
	if err := s.payments.Create(ctx, payment); err != nil {
		return nil, err
	}

	payer, err := s.users.GetByID(ctx, payment.PayerID)
	if err != nil {
		return nil, err
	}

	fields, err := s.payhereConfig.BuildCheckoutFields(payhere.CheckoutRequest{
		OrderID:   payment.OrderID,
		Items:     fmt.Sprintf("%s payment", payment.Type),
		Amount:    payment.Amount,
		FirstName: payer.FirstName,
		LastName:  payer.LastName,
		Email:     payer.Email,
		Phone:     payer.Phone,
		Address:   payer.Address,
		City:      payer.City,
		Custom1:   payment.ID.String(),
		Custom2:   payment.Type,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("order_id", payment.OrderID).
		Str("type", payment.Type).
		Str("amount", payment.Amount.String()).
		Msg("payment initiated")

	return &model.CheckoutResponse{
		PaymentID:   payment.ID,
		OrderID:     payment.OrderID,
		Amount:      payment.Amount,
		CheckoutURL: s.payhereConfig.GetCheckoutURL(),
		Fields:      fields,
	}, nil
}

// checkPayer verifies the caller is the party who owes this payment type
func (s *paymentService) checkPayer(userID uuid.UUID, agreement *agreementModel.Agreement, paymentType string) error {
	switch paymentType {
	case model.PaymentTypeCommission:
		// Commission is owed by the property owner
		if agreement.OwnerID != userID {
			return model.NewUnauthorizedError()
		}
	default:
		// Rent, deposit and guarantee are owed by the tenant
		if agreement.TenantID != userID {
			return model.NewUnauthorizedError()
		}
	}
	return nil
}

// resolveAmount derives the charge from the agreement by payment type. For
// commission payments the effective rate is returned for persistence, so
// historical payments keep the rate they were charged at.
func (s *paymentService) resolveAmount(ctx context.Context, agreement *agreementModel.Agreement, paymentType string) (decimal.Decimal, *decimal.Decimal, error) {
	switch paymentType {
	case model.PaymentTypeRent:
		return agreement.MonthlyRent, nil, nil
	case model.PaymentTypeDeposit, model.PaymentTypeGuarantee:
		return agreement.SecurityDeposit, nil, nil
	case model.PaymentTypeCommission:
		commission, config, err := s.commission.ComputeCommission(ctx, agreement.MonthlyRent)
		if err != nil {
			return decimal.Zero, nil, err
		}
		rate := config.Rate
		return commission, &rate, nil
	default:
		return decimal.Zero, nil, model.NewInvalidTypeError(paymentType)
	}
}

// GetStatus returns the current state of one of the caller's payments
func (s *paymentService) GetStatus(ctx context.Context, userID uuid.UUID, paymentID uuid.UUID) (*model.PaymentStatusResponse, error) {
	payment, err := s.payments.GetByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}

	if payment.PayerID != userID {
		// Same response as a missing payment
		return nil, model.NewPaymentNotFoundError(paymentID.String())
	}

	return toStatusResponse(payment), nil
}

// ListForPayer lists the caller's own payments
func (s *paymentService) ListForPayer(ctx context.Context, userID uuid.UUID, req *model.ListPaymentsRequest) (*model.ListPaymentsResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	payments, total, err := s.payments.ListByPayerID(ctx, userID, req)
	if err != nil {
		return nil, err
	}

	return toListResponse(payments, total, req), nil
}

// ListForOwner lists payments received on the caller's properties
func (s *paymentService) ListForOwner(ctx context.Context, ownerID uuid.UUID, req *model.ListPaymentsRequest) (*model.ListPaymentsResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	payments, total, err := s.payments.ListByOwnerID(ctx, ownerID, req)
	if err != nil {
		return nil, err
	}

	return toListResponse(payments, total, req), nil
}

func toStatusResponse(payment *model.Payment) *model.PaymentStatusResponse {
	return &model.PaymentStatusResponse{
		PaymentID:   payment.ID,
		OrderID:     payment.OrderID,
		Type:        payment.Type,
		Method:      payment.Method,
		Status:      payment.Status,
		Amount:      payment.Amount,
		PaymentDate: payment.PaymentDate,
		CreatedAt:   payment.CreatedAt,
	}
}

func toListResponse(payments []*model.Payment, total int64, req *model.ListPaymentsRequest) *model.ListPaymentsResponse {
	items := make([]model.PaymentStatusResponse, 0, len(payments))
	for _, p := range payments {
		items = append(items, *toStatusResponse(p))
	}

	totalPages := int((total + int64(req.Limit) - 1) / int64(req.Limit))
	return &model.ListPaymentsResponse{
		Payments: items,
		Pagination: model.PaginationMeta{
			Page:       req.Page,
			Limit:      req.Limit,
			Total:      total,
			TotalPages: totalPages,
		},
	}
}
