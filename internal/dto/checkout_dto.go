package dto

import (
	"time"

	"github.com/google/uuid"
)

// --- Checkout ---

type ShippingAddressDTO struct {
	FullName    string `json:"full_name" validate:"required,min=3"`
	Phone       string `json:"phone" validate:"required,min=10"`
	AddressLine string `json:"address_line" validate:"required"`
	City        string `json:"city" validate:"required"`
	State       string `json:"state" validate:"required"`
	Pincode     string `json:"pincode" validate:"required,len=6,numeric"`
}

type InitiateCheckoutRequest struct {
	Address       ShippingAddressDTO `json:"address" validate:"required"`
	PaymentMethod string             `json:"payment_method" validate:"required,oneof=online cod"`
	CouponCode    string             `json:"coupon_code"`
}

type InitiateCheckoutResponse struct {
	OrderId        uuid.UUID `json:"order_id"`
	GatewayOrderId string    `json:"gateway_order_id,omitempty"`
	GatewayKeyId   string    `json:"gateway_key_id,omitempty"`
	Amount         float64   `json:"amount"`
	Currency       string    `json:"currency"`
	PaymentMethod  string    `json:"payment_method"`
}

type VerifyPaymentRequest struct {
	OrderId          uuid.UUID `json:"order_id" validate:"required"`
	GatewayOrderId   string    `json:"gateway_order_id" validate:"required"`
	GatewayPaymentId string    `json:"gateway_payment_id" validate:"required"`
	Signature        string    `json:"signature" validate:"required"`
}

type VerifyPaymentResponse struct {
	OrderId       uuid.UUID `json:"order_id"`
	PaymentStatus string    `json:"payment_status"`
	InvoiceNumber string    `json:"invoice_number,omitempty"`
	PaidAt        time.Time `json:"paid_at"`
}

type PaymentFailedRequest struct {
	OrderId uuid.UUID `json:"order_id" validate:"required"`
	Reason  string    `json:"reason"`
}

// OrderFollowupMessage is queued after a successful reconciliation; the
// consumer builds the invoice and sends the confirmation email.
type OrderFollowupMessage struct {
	OrderId uuid.UUID `json:"order_id"`
}

// --- Quote (pre-checkout totals preview) ---

type QuoteRequest struct {
	Pincode    string `json:"pincode" validate:"required,len=6,numeric"`
	State      string `json:"state" validate:"required"`
	CouponCode string `json:"coupon_code"`
}

type QuoteResponse struct {
	ItemsTotal     float64 `json:"items_total"`
	TaxTotal       float64 `json:"tax_total"`
	ShippingCharge float64 `json:"shipping_charge"`
	Discount       float64 `json:"discount"`
	GrandTotal     float64 `json:"grand_total"`
	CouponCode     string  `json:"coupon_code,omitempty"`
	CouponMessage  string  `json:"coupon_message,omitempty"`
}
