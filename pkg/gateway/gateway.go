package gateway

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// RefundResult is the gateway's answer to a refund call.
type RefundResult struct {
	RefundId string
	Amount   float64
	Status   string
}

// Client is the payment gateway contract the reconciliation and return
// pipelines depend on. It is injected so tests can substitute a fake.
type Client interface {
	// CreateOrder registers an order with the gateway and returns the
	// gateway order id the client-side checkout needs.
	CreateOrder(ctx context.Context, amount float64, currency, receipt string) (string, error)

	// VerifySignature checks the checkout callback signature
	// (HMAC-SHA256 over "orderId|paymentId").
	VerifySignature(orderId, paymentId, signature string) bool

	// FetchPaymentStatus returns the gateway-side status of a payment.
	FetchPaymentStatus(ctx context.Context, paymentId string) (string, error)

	// Refund refunds a captured payment. Amount zero means full refund.
	Refund(ctx context.Context, paymentId string, amount float64, notes map[string]interface{}) (*RefundResult, error)
}

// VerifyHMAC implements the shared signature scheme: hex-encoded
// HMAC-SHA256 over "orderId|paymentId" with the gateway secret.
func VerifyHMAC(secret, orderId, paymentId, signature string) bool {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderId + "|" + paymentId))
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
