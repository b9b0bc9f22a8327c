package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// =====================================================
// INITIATE PAYMENT REQUEST/RESPONSE
// =====================================================

type InitiatePaymentRequest struct {
	AgreementID *uuid.UUID `json:"agreement_id,omitempty"`
	PropertyID  *uuid.UUID `json:"property_id,omitempty"`
	Type        string     `json:"type" binding:"required"`
}

// Validate validates InitiatePaymentRequest. Exactly one target is accepted:
// an agreement, or a property for a pre-agreement rent quote.
func (req InitiatePaymentRequest) Validate() error {
	if (req.AgreementID == nil) == (req.PropertyID == nil) {
		return validation.NewError("validation_target", "exactly one of agreement_id or property_id is required")
	}
	return validation.ValidateStruct(&req,
		validation.Field(&req.AgreementID, validation.By(requireUUID)),
		validation.Field(&req.PropertyID, validation.By(requireUUID)),
		validation.Field(&req.Type, validation.Required, validation.In(
			PaymentTypeRent,
			PaymentTypeDeposit,
			PaymentTypeCommission,
			PaymentTypeGuarantee,
		)),
	)
}

func requireUUID(value interface{}) error {
	switch id := value.(type) {
	case uuid.UUID:
		if id == uuid.Nil {
			return validation.NewError("validation_required", "cannot be blank")
		}
	case *uuid.UUID:
		if id != nil && *id == uuid.Nil {
			return validation.NewError("validation_required", "cannot be blank")
		}
	}
	return nil
}

// CheckoutResponse carries everything the client needs to render the
// auto-submitting gateway redirect form.
type CheckoutResponse struct {
	PaymentID   uuid.UUID       `json:"payment_id"`
	OrderID     string          `json:"order_id"`
	Amount      decimal.Decimal `json:"amount"`
	CheckoutURL string          `json:"checkout_url"`
	Fields      interface{}     `json:"fields"`
}

// =====================================================
// PAYMENT STATUS RESPONSE
// =====================================================

type PaymentStatusResponse struct {
	PaymentID   uuid.UUID       `json:"payment_id"`
	OrderID     string          `json:"order_id"`
	Type        string          `json:"type"`
	Method      string          `json:"method"`
	Status      string          `json:"status"`
	Amount      decimal.Decimal `json:"amount"`
	PaymentDate *time.Time      `json:"payment_date,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

// =====================================================
// LIST PAYMENTS REQUEST/RESPONSE
// =====================================================

type ListPaymentsRequest struct {
	Status *string `form:"status"`
	Type   *string `form:"type"`
	Page   int     `form:"page"`
	Limit  int     `form:"limit"`
}

func (r *ListPaymentsRequest) Validate() error {
	if r.Page < 1 {
		r.Page = 1
	}
	if r.Limit < 1 || r.Limit > 100 {
		r.Limit = 20
	}
	return nil
}

type ListPaymentsResponse struct {
	Payments   []PaymentStatusResponse `json:"payments"`
	Pagination PaginationMeta          `json:"pagination"`
}

type PaginationMeta struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

// =====================================================
// SETTLEMENT / GUARANTEE DTOs
// =====================================================

type RecordSettlementRequest struct {
	AgreementID uuid.UUID       `json:"agreement_id" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Notes       string          `json:"notes,omitempty"`
}

// Validate validates RecordSettlementRequest
func (req RecordSettlementRequest) Validate() error {
	return validation.ValidateStruct(&req,
		validation.Field(&req.AgreementID, validation.Required, validation.By(requireUUID)),
		validation.Field(&req.Amount, validation.By(requirePositiveAmount)),
		validation.Field(&req.Notes, validation.Length(0, 500)),
	)
}

type RecordGuaranteeRequest struct {
	AgreementID uuid.UUID       `json:"agreement_id" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Notes       string          `json:"notes,omitempty"`
}

// Validate validates RecordGuaranteeRequest
func (req RecordGuaranteeRequest) Validate() error {
	return validation.ValidateStruct(&req,
		validation.Field(&req.AgreementID, validation.Required, validation.By(requireUUID)),
		validation.Field(&req.Amount, validation.By(requirePositiveAmount)),
		validation.Field(&req.Notes, validation.Length(0, 500)),
	)
}

func requirePositiveAmount(value interface{}) error {
	amount, _ := value.(decimal.Decimal)
	if amount.LessThanOrEqual(decimal.Zero) {
		return validation.NewError("validation_amount", "must be positive")
	}
	return nil
}

// =====================================================
// ADMIN: LIST PAYMENTS DTOs
// =====================================================

type AdminListPaymentsRequest struct {
	Status   *string    `form:"status"`
	Type     *string    `form:"type"`
	Method   *string    `form:"method"`
	FromDate *time.Time `form:"from_date" time_format:"2006-01-02"`
	ToDate   *time.Time `form:"to_date" time_format:"2006-01-02"`
	Search   *string    `form:"search"` // search by order_id
	Page     int        `form:"page"`
	Limit    int        `form:"limit"`
}

func (r *AdminListPaymentsRequest) Validate() error {
	if r.Page < 1 {
		r.Page = 1
	}
	if r.Limit < 1 || r.Limit > 100 {
		r.Limit = 20
	}
	return nil
}

type AdminPaymentResponse struct {
	PaymentID   uuid.UUID       `json:"payment_id"`
	OrderID     string          `json:"order_id"`
	PayerEmail  string          `json:"payer_email"`
	Type        string          `json:"type"`
	Method      string          `json:"method"`
	Status      string          `json:"status"`
	Amount      decimal.Decimal `json:"amount"`
	PaymentDate *time.Time      `json:"payment_date,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

type AdminListPaymentsResponse struct {
	Payments   []AdminPaymentResponse `json:"payments"`
	Statistics Statistics             `json:"statistics"`
	Pagination PaginationMeta         `json:"pagination"`
}

// =====================================================
// COMMISSION REPORT DTOs
// =====================================================

type CommissionReportRequest struct {
	FromDate time.Time `form:"from_date" time_format:"2006-01-02" binding:"required"`
	ToDate   time.Time `form:"to_date" time_format:"2006-01-02" binding:"required"`
}

// Validate validates CommissionReportRequest
func (req CommissionReportRequest) Validate() error {
	if req.FromDate.IsZero() || req.ToDate.IsZero() {
		return validation.NewError("validation_range", "from_date and to_date are required")
	}
	if req.ToDate.Before(req.FromDate) {
		return validation.NewError("validation_range", "to_date must not precede from_date")
	}
	return nil
}

type CommissionReportResponse struct {
	FromDate        time.Time                   `json:"from_date"`
	ToDate          time.Time                   `json:"to_date"`
	Rate            decimal.Decimal             `json:"rate"`
	TotalRent       decimal.Decimal             `json:"total_rent"`
	TotalCommission decimal.Decimal             `json:"total_commission"`
	ByProperty      []PropertyCommissionSummary `json:"by_property"`
	ByMonth         []MonthlyCommissionSummary  `json:"by_month"`
}

type PropertyCommissionSummary struct {
	PropertyID    uuid.UUID       `json:"property_id"`
	PropertyTitle string          `json:"property_title"`
	PaymentCount  int64           `json:"payment_count"`
	RentTotal     decimal.Decimal `json:"rent_total"`
	Commission    decimal.Decimal `json:"commission"`
}

type MonthlyCommissionSummary struct {
	Month      time.Time       `json:"month"`
	RentTotal  decimal.Decimal `json:"rent_total"`
	Commission decimal.Decimal `json:"commission"`
}
