package payhere

import (
	"crypto/md5"
	"crypto/subtle"
	"encoding/hex"
	"strings"

	"github.com/shopspring/decimal"
)

// =====================================================
// PAYHERE SIGNATURE - MD5 SCHEME
// =====================================================

// Sign generates the outbound checkout signature.
//
// PayHere Algorithm (must follow exactly):
// 1. Format amount to exactly two decimals, '.' separator (use FormatAmount)
// 2. Inner digest: uppercase hex MD5 of the merchant secret
//    (the raw secret never appears in any browser-visible value, even hashed once)
// 3. Outer digest: uppercase hex MD5 of
//    merchantID + orderID + amount + currency + innerDigest
func Sign(merchantID, orderID, amount, currency, secret string) string {
	raw := merchantID + orderID + amount + currency + hashSecret(secret)
	return md5Upper(raw)
}

// VerifyNotification verifies an inbound notification signature.
//
// The received status code is part of the signed payload, so a replayed
// success notification cannot be downgraded (or vice versa) without the
// secret. Comparison is constant-time. Returns false on any mismatch;
// mismatches are routine adversarial input, not errors.
func VerifyNotification(merchantID, orderID, amount, currency, statusCode, secret, providedSig string) bool {
	if providedSig == "" {
		return false
	}

	raw := merchantID + orderID + amount + currency + statusCode + hashSecret(secret)
	expected := md5Upper(raw)

	// Gateways are inconsistent about hex casing; normalize before comparing.
	provided := strings.ToUpper(providedSig)

	return subtle.ConstantTimeCompare([]byte(expected), []byte(provided)) == 1
}

// FormatAmount formats an amount the way the gateway hashes it: exactly two
// decimal places with '.' as the separator. Any other formatting breaks
// verification on the gateway side.
func FormatAmount(amount decimal.Decimal) string {
	return amount.StringFixed(2)
}

func hashSecret(secret string) string {
	return md5Upper(secret)
}

func md5Upper(s string) string {
	sum := md5.Sum([]byte(s))
	return strings.ToUpper(hex.EncodeToString(sum[:]))
}
