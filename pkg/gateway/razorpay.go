package gateway

import (
	"context"
	"fmt"

	razorpay "github.com/razorpay/razorpay-go"
)

// razorpayClient adapts the Razorpay SDK to the Client contract.
// Amounts cross the wire in paise.
type razorpayClient struct {
	sdk    *razorpay.Client
	secret string
}

func NewRazorpayClient(keyId, keySecret string) Client {
	return &razorpayClient{
		sdk:    razorpay.NewClient(keyId, keySecret),
		secret: keySecret,
	}
}

func (c *razorpayClient) CreateOrder(ctx context.Context, amount float64, currency, receipt string) (string, error) {
	data := map[string]interface{}{
		"amount":   int64(amount * 100),
		"currency": currency,
		"receipt":  receipt,
	}
	body, err := c.sdk.Order.Create(data, nil)
	if err != nil {
		return "", fmt.Errorf("gateway create order: %w", err)
	}

	id, ok := body["id"].(string)
	if !ok {
		return "", fmt.Errorf("gateway create order: missing id in response")
	}
	return id, nil
}

func (c *razorpayClient) VerifySignature(orderId, paymentId, signature string) bool {
	return VerifyHMAC(c.secret, orderId, paymentId, signature)
}

func (c *razorpayClient) FetchPaymentStatus(ctx context.Context, paymentId string) (string, error) {
	body, err := c.sdk.Payment.Fetch(paymentId, nil, nil)
	if err != nil {
		return "", fmt.Errorf("gateway fetch payment %s: %w", paymentId, err)
	}

	status, ok := body["status"].(string)
	if !ok {
		return "", fmt.Errorf("gateway fetch payment %s: missing status", paymentId)
	}
	return status, nil
}

func (c *razorpayClient) Refund(ctx context.Context, paymentId string, amount float64, notes map[string]interface{}) (*RefundResult, error) {
	data := map[string]interface{}{}
	if len(notes) > 0 {
		data["notes"] = notes
	}

	// Razorpay refunds the full captured amount when no amount is passed.
	paise := int(amount * 100)
	body, err := c.sdk.Payment.Refund(paymentId, paise, data, nil)
	if err != nil {
		return nil, fmt.Errorf("gateway refund %s: %w", paymentId, err)
	}

	result := &RefundResult{}
	if id, ok := body["id"].(string); ok {
		result.RefundId = id
	}
	if status, ok := body["status"].(string); ok {
		result.Status = status
	}
	if amt, ok := body["amount"].(float64); ok {
		result.Amount = amt / 100
	}
	return result, nil
}
