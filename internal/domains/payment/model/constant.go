package model

// =====================================================
// PAYMENT TYPES
// =====================================================

const (
	PaymentTypeRent       = "rent"
	PaymentTypeDeposit    = "deposit"
	PaymentTypeCommission = "commission"
	PaymentTypeGuarantee  = "guarantee"
)

// ValidTypes lists every accepted payment type
var ValidTypes = []string{
	PaymentTypeRent,
	PaymentTypeDeposit,
	PaymentTypeCommission,
	PaymentTypeGuarantee,
}

// OrderIDPrefixes maps payment types to the order id prefix used at initiation
var OrderIDPrefixes = map[string]string{
	PaymentTypeRent:       "RNT",
	PaymentTypeDeposit:    "DEP",
	PaymentTypeCommission: "COM",
	PaymentTypeGuarantee:  "GRT",
}

// IsValidType checks whether a payment type is known
func IsValidType(t string) bool {
	for _, v := range ValidTypes {
		if v == t {
			return true
		}
	}
	return false
}

// =====================================================
// PAYMENT METHODS
// =====================================================

const (
	PaymentMethodGateway      = "gateway"       // online card payment via PayHere
	PaymentMethodBankTransfer = "bank_transfer" // recorded manually by owner/admin
)

// IsValidMethod checks whether a payment method is known
func IsValidMethod(m string) bool {
	return m == PaymentMethodGateway || m == PaymentMethodBankTransfer
}

// =====================================================
// PAYMENT STATUSES
// =====================================================

const (
	PaymentStatusPending   = "pending"
	PaymentStatusCompleted = "completed"
	PaymentStatusFailed    = "failed"
	PaymentStatusCancelled = "cancelled"
	PaymentStatusRefunded  = "refunded" // reserved, never set by the reconciler
)

// =====================================================
// ERROR CODES
// =====================================================

const (
	ErrCodeAgreementNotFound    = "PAY001"
	ErrCodeAgreementNotEligible = "PAY002"
	ErrCodeInvalidAmount        = "PAY003"
	ErrCodeInvalidType          = "PAY004"
	ErrCodeInvalidMethod        = "PAY005"
	ErrCodeInvalidSignature     = "PAY006"
	ErrCodeMerchantMismatch     = "PAY007"
	ErrCodePaymentNotFound      = "PAY008"
	ErrCodeNotPending           = "PAY009"
	ErrCodeAmountMismatch       = "PAY010"
	ErrCodeUnknownStatus        = "PAY011"
	ErrCodeNotAgreementOwner    = "PAY012"
	ErrCodeUnauthorized         = "PAY013"
	ErrCodeInternal             = "PAY014"
	ErrCodeValidation           = "PAY015"
	ErrCodePropertyNotFound     = "PAY016"
)

// =====================================================
// WEBHOOK EVENTS
// =====================================================

const (
	WebhookEventSuccess     = "payment.success"
	WebhookEventCancelled   = "payment.cancelled"
	WebhookEventFailed      = "payment.failed"
	WebhookEventChargedback = "payment.chargedback"
)
