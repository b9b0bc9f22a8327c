package model

import (
	"errors"
	"fmt"
)

// =====================================================
// PREDEFINED ERRORS
// =====================================================

var (
	ErrPaymentNotFound      = errors.New("payment not found")
	ErrAgreementNotFound    = errors.New("agreement not found")
	ErrAgreementNotEligible = errors.New("agreement not eligible for this payment type")
	ErrInvalidAmount        = errors.New("invalid payment amount")
	ErrInvalidType          = errors.New("invalid payment type")
	ErrInvalidMethod        = errors.New("invalid payment method")
	ErrInvalidSignature     = errors.New("invalid notification signature")
	ErrMerchantMismatch     = errors.New("notification merchant id mismatch")
	ErrNotPending           = errors.New("payment is not in pending status")
	ErrAmountMismatch       = errors.New("notification amount mismatch")
	ErrUnknownStatus        = errors.New("unknown notification status code")
	ErrNotAgreementOwner    = errors.New("user is not the agreement owner")
	ErrUnauthorized         = errors.New("unauthorized access")
	ErrPropertyNotFound     = errors.New("property not found")
)

// =====================================================
// CUSTOM PAYMENT ERROR
// =====================================================

type PaymentError struct {
	Code    string
	Message string
	Err     error
}

func (e *PaymentError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *PaymentError) Unwrap() error {
	return e.Err
}

// NewPaymentError creates a new payment error
func NewPaymentError(code, message string, err error) *PaymentError {
	return &PaymentError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// =====================================================
// ERROR CONSTRUCTORS
// =====================================================

func NewValidationError(message string, err error) *PaymentError {
	return NewPaymentError(ErrCodeValidation, message, err)
}

func NewPaymentNotFoundError(orderID string) *PaymentError {
	return NewPaymentError(
		ErrCodePaymentNotFound,
		fmt.Sprintf("Payment not found: %s", orderID),
		ErrPaymentNotFound,
	)
}

func NewAgreementNotFoundError(agreementID string) *PaymentError {
	return NewPaymentError(
		ErrCodeAgreementNotFound,
		fmt.Sprintf("Agreement not found: %s", agreementID),
		ErrAgreementNotFound,
	)
}

func NewPropertyNotFoundError(propertyID string) *PaymentError {
	return NewPaymentError(
		ErrCodePropertyNotFound,
		fmt.Sprintf("Property not found: %s", propertyID),
		ErrPropertyNotFound,
	)
}

func NewAgreementNotEligibleError(status, paymentType string) *PaymentError {
	return NewPaymentError(
		ErrCodeAgreementNotEligible,
		fmt.Sprintf("Agreement with status '%s' is not eligible for %s payment", status, paymentType),
		ErrAgreementNotEligible,
	)
}

func NewInvalidAmountError(amount string) *PaymentError {
	return NewPaymentError(
		ErrCodeInvalidAmount,
		fmt.Sprintf("Invalid payment amount: %s", amount),
		ErrInvalidAmount,
	)
}

func NewInvalidTypeError(t string) *PaymentError {
	return NewPaymentError(
		ErrCodeInvalidType,
		fmt.Sprintf("Invalid payment type: %s", t),
		ErrInvalidType,
	)
}

func NewInvalidMethodError(m string) *PaymentError {
	return NewPaymentError(
		ErrCodeInvalidMethod,
		fmt.Sprintf("Invalid payment method: %s", m),
		ErrInvalidMethod,
	)
}

func NewInvalidSignatureError() *PaymentError {
	return NewPaymentError(
		ErrCodeInvalidSignature,
		"Invalid notification signature - possible fraud attempt",
		ErrInvalidSignature,
	)
}

func NewMerchantMismatchError(got string) *PaymentError {
	return NewPaymentError(
		ErrCodeMerchantMismatch,
		fmt.Sprintf("Notification merchant id does not match configuration: %s", got),
		ErrMerchantMismatch,
	)
}

func NewNotPendingError(status string) *PaymentError {
	return NewPaymentError(
		ErrCodeNotPending,
		fmt.Sprintf("Payment status must be 'pending', current status: %s", status),
		ErrNotPending,
	)
}

func NewAmountMismatchError(expected, got string) *PaymentError {
	return NewPaymentError(
		ErrCodeAmountMismatch,
		fmt.Sprintf("Notification amount %s does not match recorded amount %s", got, expected),
		ErrAmountMismatch,
	)
}

func NewUnknownStatusError(code string) *PaymentError {
	return NewPaymentError(
		ErrCodeUnknownStatus,
		fmt.Sprintf("Unknown notification status code: %s", code),
		ErrUnknownStatus,
	)
}

func NewNotAgreementOwnerError() *PaymentError {
	return NewPaymentError(
		ErrCodeNotAgreementOwner,
		"Only the agreement owner can record this payment",
		ErrNotAgreementOwner,
	)
}

func NewUnauthorizedError() *PaymentError {
	return NewPaymentError(
		ErrCodeUnauthorized,
		"Unauthorized access",
		ErrUnauthorized,
	)
}

func NewInternalError(message string, err error) *PaymentError {
	return NewPaymentError(ErrCodeInternal, message, err)
}
