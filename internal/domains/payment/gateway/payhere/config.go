package payhere

import (
	"fmt"
)

// =====================================================
// PAYHERE CONFIGURATION
// =====================================================

type Config struct {
	MerchantID  string // Merchant ID (provided by PayHere)
	Secret      string // Merchant secret for MD5 signature
	CheckoutURL string // PayHere checkout endpoint
	ReturnURL   string // Browser redirect after success
	CancelURL   string // Browser redirect after cancel
	NotifyURL   string // Server-to-server notification URL
	Currency    string // Platform currency (default: "LKR")
	Sandbox     bool   // Use sandbox checkout endpoint
}

// NewConfig creates PayHere configuration
func NewConfig(merchantID, secret, returnURL, cancelURL, notifyURL string) *Config {
	return &Config{
		MerchantID:  merchantID,
		Secret:      secret,
		CheckoutURL: "https://www.payhere.lk/pay/checkout",
		ReturnURL:   returnURL,
		CancelURL:   cancelURL,
		NotifyURL:   notifyURL,
		Currency:    "LKR",
	}
}

// Validate validates configuration
func (c *Config) Validate() error {
	if c.MerchantID == "" {
		return fmt.Errorf("PayHere MerchantID is required")
	}
	if c.Secret == "" {
		return fmt.Errorf("PayHere Secret is required")
	}
	if c.ReturnURL == "" {
		return fmt.Errorf("PayHere ReturnURL is required")
	}
	if c.CancelURL == "" {
		return fmt.Errorf("PayHere CancelURL is required")
	}
	if c.NotifyURL == "" {
		return fmt.Errorf("PayHere NotifyURL is required")
	}
	if c.Currency == "" {
		return fmt.Errorf("PayHere Currency is required")
	}
	return nil
}

// GetCheckoutURL returns the checkout endpoint for the configured environment
func (c *Config) GetCheckoutURL() string {
	if c.Sandbox {
		return "https://sandbox.payhere.lk/pay/checkout"
	}
	return c.CheckoutURL
}

// =====================================================
// PAYHERE CONSTANTS
// =====================================================

// Notification status codes. These are gateway-defined wire values; the
// reconciler never branches on the raw strings directly, only on these names.
const (
	StatusCodeSuccess     = "2"
	StatusCodePending     = "0"
	StatusCodeCancelled   = "-1"
	StatusCodeFailed      = "-2"
	StatusCodeChargedback = "-3"
)

// GetStatusMessage returns a human-readable description for a status code
func GetStatusMessage(code string) string {
	messages := map[string]string{
		StatusCodeSuccess:     "Payment completed",
		StatusCodePending:     "Payment pending at gateway",
		StatusCodeCancelled:   "Payment cancelled by customer",
		StatusCodeFailed:      "Payment failed",
		StatusCodeChargedback: "Payment charged back",
	}

	if msg, exists := messages[code]; exists {
		return msg
	}
	return "Unknown status code"
}
