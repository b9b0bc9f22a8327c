package payhere

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// =====================================================
// CHECKOUT REQUEST BUILDER
// =====================================================

// CheckoutRequest is the typed input for an outbound checkout submission.
// Field assembly is deliberately struct-based rather than a string map so the
// signature and the form fields can never disagree about what was signed.
type CheckoutRequest struct {
	OrderID   string
	Items     string // human-readable description shown on the gateway page
	Amount    decimal.Decimal
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Address   string
	City      string
	Custom1   string // local payment id, echoed back in the notification
	Custom2   string // payment type, echoed back in the notification
}

// CheckoutFields is the complete signed field set the caller embeds into the
// redirect form posted to the gateway checkout endpoint.
type CheckoutFields struct {
	MerchantID string `json:"merchant_id"`
	ReturnURL  string `json:"return_url"`
	CancelURL  string `json:"cancel_url"`
	NotifyURL  string `json:"notify_url"`
	OrderID    string `json:"order_id"`
	Items      string `json:"items"`
	Amount     string `json:"amount"`
	Currency   string `json:"currency"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	City       string `json:"city"`
	Custom1    string `json:"custom_1"`
	Custom2    string `json:"custom_2"`
	Hash       string `json:"hash"`
}

// BuildCheckoutFields formats the amount, signs the request and returns the
// full field set. The checkout URL itself comes from Config.GetCheckoutURL.
func (c *Config) BuildCheckoutFields(req CheckoutRequest) (*CheckoutFields, error) {
	if req.OrderID == "" {
		return nil, fmt.Errorf("order_id is required")
	}
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("amount must be positive")
	}

	amount := FormatAmount(req.Amount)

	return &CheckoutFields{
		MerchantID: c.MerchantID,
		ReturnURL:  c.ReturnURL,
		CancelURL:  c.CancelURL,
		NotifyURL:  c.NotifyURL,
		OrderID:    req.OrderID,
		Items:      req.Items,
		Amount:     amount,
		Currency:   c.Currency,
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Email:      req.Email,
		Phone:      req.Phone,
		Address:    req.Address,
		City:       req.City,
		Custom1:    req.Custom1,
		Custom2:    req.Custom2,
		Hash:       Sign(c.MerchantID, req.OrderID, amount, c.Currency, c.Secret),
	}, nil
}

// =====================================================
// INBOUND NOTIFICATION
// =====================================================

// Notification is the server-to-server callback payload (form-encoded POST).
// custom_1 carries the local payment id, custom_2 the payment type; both are
// round-trip hints only and are never trusted over the order-id lookup.
type Notification struct {
	MerchantID string
	OrderID    string
	PaymentID  string // gateway-assigned payment reference
	Amount     string // payhere_amount, two-decimal string
	Currency   string // payhere_currency
	StatusCode string
	Signature  string // md5sig
	Custom1    string
	Custom2    string
}

// Verify checks the notification signature against this configuration.
func (c *Config) Verify(n Notification) bool {
	return VerifyNotification(
		n.MerchantID,
		n.OrderID,
		n.Amount,
		n.Currency,
		n.StatusCode,
		c.Secret,
		n.Signature,
	)
}
