package payhere

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testMerchantID = "1221149"
	testSecret     = "8nT4qkVYQJ7JzxkzM1z5Ys4pVbRWf3Lk"
)

func TestSign(t *testing.T) {
	sig := Sign(testMerchantID, "RNT-1756600000000000000-a1b2c3d4", "75000.00", "LKR", testSecret)

	// Uppercase hex MD5, 32 characters
	require.Len(t, sig, 32)
	assert.Equal(t, strings.ToUpper(sig), sig)

	// Deterministic for identical inputs
	again := Sign(testMerchantID, "RNT-1756600000000000000-a1b2c3d4", "75000.00", "LKR", testSecret)
	assert.Equal(t, sig, again)

	// Any input change produces a different signature
	assert.NotEqual(t, sig, Sign(testMerchantID, "RNT-1756600000000000000-a1b2c3d4", "75000.01", "LKR", testSecret))
	assert.NotEqual(t, sig, Sign(testMerchantID, "RNT-1756600000000000000-a1b2c3d5", "75000.00", "LKR", testSecret))
	assert.NotEqual(t, sig, Sign(testMerchantID, "RNT-1756600000000000000-a1b2c3d4", "75000.00", "USD", testSecret))
	assert.NotEqual(t, sig, Sign("1221150", "RNT-1756600000000000000-a1b2c3d4", "75000.00", "LKR", testSecret))
}

// notificationSig builds a signature the way the gateway does for its
// server-to-server callback, with the status code inside the signed payload.
func notificationSig(merchantID, orderID, amount, currency, statusCode, secret string) string {
	return md5Upper(merchantID + orderID + amount + currency + statusCode + hashSecret(secret))
}

func TestVerifyNotification(t *testing.T) {
	orderID := "RNT-1756600000000000000-a1b2c3d4"
	valid := notificationSig(testMerchantID, orderID, "75000.00", "LKR", "2", testSecret)

	tests := []struct {
		name       string
		amount     string
		statusCode string
		sig        string
		want       bool
	}{
		{"valid signature", "75000.00", "2", valid, true},
		{"lowercase hex accepted", "75000.00", "2", strings.ToLower(valid), true},
		{"empty signature", "75000.00", "2", "", false},
		{"tampered amount", "1.00", "2", valid, false},
		{"downgraded status code", "75000.00", "-2", valid, false},
		{"garbage signature", "75000.00", "2", "ZZZZZZZZZZZZZZZZZZZZZZZZZZZZZZZZ", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := VerifyNotification(testMerchantID, orderID, tt.amount, "LKR", tt.statusCode, testSecret, tt.sig)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestVerifyNotification_SingleCharFlip(t *testing.T) {
	orderID := "DEP-1756600000000000000-deadbeef"
	valid := notificationSig(testMerchantID, orderID, "150000.00", "LKR", "2", testSecret)

	// Flipping any single hex digit must break verification
	for i := 0; i < len(valid); i++ {
		flipped := []byte(valid)
		if flipped[i] == 'A' {
			flipped[i] = 'B'
		} else {
			flipped[i] = 'A'
		}
		assert.False(t,
			VerifyNotification(testMerchantID, orderID, "150000.00", "LKR", "2", testSecret, string(flipped)),
			"flip at index %d should fail verification", i)
	}
}

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"75000", "75000.00"},
		{"75000.5", "75000.50"},
		{"75000.505", "75000.51"},
		{"0.1", "0.10"},
		{"0", "0.00"},
		{"12345678.99", "12345678.99"},
	}

	for _, tt := range tests {
		d, err := decimal.NewFromString(tt.in)
		require.NoError(t, err)
		assert.Equal(t, tt.want, FormatAmount(d), "FormatAmount(%s)", tt.in)
	}
}
