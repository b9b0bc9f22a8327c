package payhere

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *Config {
	return NewConfig(
		testMerchantID,
		testSecret,
		"https://renthub.dev/payments/return",
		"https://renthub.dev/payments/cancel",
		"https://renthub.dev/api/v1/webhooks/payhere",
	)
}

func TestBuildCheckoutFields(t *testing.T) {
	cfg := testConfig()

	fields, err := cfg.BuildCheckoutFields(CheckoutRequest{
		OrderID:   "RNT-1756600000000000000-a1b2c3d4",
		Items:     "rent payment",
		Amount:    decimal.RequireFromString("75000"),
		FirstName: "Nimal",
		LastName:  "Perera",
		Email:     "nimal@example.com",
		Phone:     "+94771234567",
		Address:   "12 Galle Road",
		City:      "Colombo",
		Custom1:   "5f6c0d6e-1111-2222-3333-444455556666",
		Custom2:   "rent",
	})
	require.NoError(t, err)

	assert.Equal(t, testMerchantID, fields.MerchantID)
	assert.Equal(t, "75000.00", fields.Amount)
	assert.Equal(t, "LKR", fields.Currency)
	assert.Equal(t, cfg.ReturnURL, fields.ReturnURL)
	assert.Equal(t, cfg.CancelURL, fields.CancelURL)
	assert.Equal(t, cfg.NotifyURL, fields.NotifyURL)
	assert.Equal(t, "5f6c0d6e-1111-2222-3333-444455556666", fields.Custom1)
	assert.Equal(t, "rent", fields.Custom2)

	// The hash must cover exactly the formatted amount that goes on the wire
	expected := Sign(cfg.MerchantID, fields.OrderID, fields.Amount, cfg.Currency, cfg.Secret)
	assert.Equal(t, expected, fields.Hash)
}

func TestBuildCheckoutFields_Rejections(t *testing.T) {
	cfg := testConfig()

	_, err := cfg.BuildCheckoutFields(CheckoutRequest{
		Amount: decimal.RequireFromString("100"),
	})
	assert.Error(t, err, "empty order id must be rejected")

	_, err = cfg.BuildCheckoutFields(CheckoutRequest{
		OrderID: "RNT-1-abcd1234",
		Amount:  decimal.Zero,
	})
	assert.Error(t, err, "zero amount must be rejected")

	_, err = cfg.BuildCheckoutFields(CheckoutRequest{
		OrderID: "RNT-1-abcd1234",
		Amount:  decimal.RequireFromString("-5"),
	})
	assert.Error(t, err, "negative amount must be rejected")
}

func TestConfigVerify(t *testing.T) {
	cfg := testConfig()

	n := Notification{
		MerchantID: testMerchantID,
		OrderID:    "DEP-1756600000000000000-deadbeef",
		PaymentID:  "320025858",
		Amount:     "150000.00",
		Currency:   "LKR",
		StatusCode: StatusCodeSuccess,
	}
	n.Signature = notificationSig(n.MerchantID, n.OrderID, n.Amount, n.Currency, n.StatusCode, cfg.Secret)

	assert.True(t, cfg.Verify(n))

	tampered := n
	tampered.Amount = "1.00"
	assert.False(t, cfg.Verify(tampered))
}

func TestGetCheckoutURL(t *testing.T) {
	cfg := testConfig()
	assert.Equal(t, "https://www.payhere.lk/pay/checkout", cfg.GetCheckoutURL())

	cfg.Sandbox = true
	assert.Equal(t, "https://sandbox.payhere.lk/pay/checkout", cfg.GetCheckoutURL())
}

func TestConfigValidate(t *testing.T) {
	cfg := testConfig()
	require.NoError(t, cfg.Validate())

	missing := *cfg
	missing.Secret = ""
	assert.Error(t, missing.Validate())

	missing = *cfg
	missing.NotifyURL = ""
	assert.Error(t, missing.Validate())
}

func TestGetStatusMessage(t *testing.T) {
	assert.Equal(t, "Payment completed", GetStatusMessage(StatusCodeSuccess))
	assert.Equal(t, "Payment charged back", GetStatusMessage(StatusCodeChargedback))
	assert.Equal(t, "Unknown status code", GetStatusMessage("99"))
}
