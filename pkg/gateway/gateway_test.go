package gateway

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"
)

func sign(secret, orderId, paymentId string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderId + "|" + paymentId))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifyHMAC(t *testing.T) {
	secret := "test_secret"
	orderId := "order_123"
	paymentId := "pay_456"
	good := sign(secret, orderId, paymentId)

	if !VerifyHMAC(secret, orderId, paymentId, good) {
		t.Error("valid signature rejected")
	}
	if VerifyHMAC(secret, orderId, paymentId, "deadbeef") {
		t.Error("forged signature accepted")
	}
	if VerifyHMAC("other_secret", orderId, paymentId, good) {
		t.Error("signature accepted under the wrong secret")
	}
	if VerifyHMAC(secret, orderId, "pay_789", good) {
		t.Error("signature accepted for a different payment")
	}
}
