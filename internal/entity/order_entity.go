package entity

import (
	"time"

	"github.com/google/uuid"
)

type OrderStatus string
type PaymentMethod string
type PaymentStatus string

const (
	OrderStatusPlaced    OrderStatus = "placed"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
	OrderStatusReturned  OrderStatus = "returned"

	PaymentMethodOnline PaymentMethod = "online"
	PaymentMethodCOD    PaymentMethod = "cod"

	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusFailed   PaymentStatus = "failed"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

// PurchasedOrderStatuses lists the statuses that count as a completed
// purchase for coupon eligibility (first-purchase-only checks).
func PurchasedOrderStatuses() []OrderStatus {
	return []OrderStatus{OrderStatusPlaced, OrderStatusShipped, OrderStatusDelivered}
}

type OrderItem struct {
	Id        uuid.UUID
	ProductId uuid.UUID
	Name      string
	Image     string
	Quantity  int
	UnitPrice float64
}

type ShippingAddress struct {
	FullName    string
	Phone       string
	AddressLine string
	City        string
	State       string
	Pincode     string
}

// PaymentInfo is the gateway-facing descriptor of an order's payment.
// For COD orders GatewayPaymentId is synthesized and GatewayOrderId is empty.
type PaymentInfo struct {
	GatewayOrderId   string
	GatewayPaymentId string
	Method           PaymentMethod
	Status           PaymentStatus
}

// CouponSnapshot freezes the coupon terms at redemption time so later
// coupon edits never change what an order was charged.
type CouponSnapshot struct {
	Code          string
	DiscountType  DiscountType
	DiscountValue float64
	Applied       float64
}

type Order struct {
	Id             uuid.UUID
	UserId         uuid.UUID
	Items          []OrderItem
	Address        ShippingAddress
	Payment        PaymentInfo
	ItemsTotal     float64
	TaxTotal       float64
	ShippingCharge float64
	Discount       float64
	GrandTotal     float64
	Coupon         *CouponSnapshot
	Status         OrderStatus
	PaidAt         *time.Time
	ShippedAt      *time.Time
	DeliveredAt    *time.Time
	CancelledAt    *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
