package crypto

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"
)

// SignHMAC returns the hex encoded HMAC-SHA256 of payload
func SignHMAC(secret string, payload []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifyHMAC compares signature against the HMAC-SHA256 of payload in constant time.
// An empty secret never verifies.
func VerifyHMAC(secret string, payload []byte, signature string) bool {
	if secret == "" || signature == "" {
		return false
	}
	expected := SignHMAC(secret, payload)
	return hmac.Equal([]byte(strings.ToLower(signature)), []byte(expected))
}

// CheckoutPayload is the string a checkout provider signs for a payment:
// order id, payment id, the paying client id and the amount in minor units.
func CheckoutPayload(orderID, paymentID, clientID string, amountCents int64) []byte {
	return []byte(orderID + "|" + paymentID + "|" + clientID + "|" + strconv.FormatInt(amountCents, 10))
}
