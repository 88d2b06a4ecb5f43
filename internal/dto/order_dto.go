package dto

import (
	"time"

	"github.com/google/uuid"
)

type OrderItemResponse struct {
	ProductId uuid.UUID `json:"product_id"`
	Name      string    `json:"name"`
	Image     string    `json:"image,omitempty"`
	Quantity  int       `json:"quantity"`
	UnitPrice float64   `json:"unit_price"`
}

type CouponSnapshotResponse struct {
	Code          string  `json:"code"`
	DiscountType  string  `json:"discount_type"`
	DiscountValue float64 `json:"discount_value"`
	Applied       float64 `json:"applied"`
}

type OrderResponse struct {
	Id             uuid.UUID               `json:"id"`
	Items          []OrderItemResponse     `json:"items"`
	Address        ShippingAddressDTO      `json:"address"`
	PaymentMethod  string                  `json:"payment_method"`
	PaymentStatus  string                  `json:"payment_status"`
	ItemsTotal     float64                 `json:"items_total"`
	TaxTotal       float64                 `json:"tax_total"`
	ShippingCharge float64                 `json:"shipping_charge"`
	Discount       float64                 `json:"discount"`
	GrandTotal     float64                 `json:"grand_total"`
	Coupon         *CouponSnapshotResponse `json:"coupon,omitempty"`
	Status         string                  `json:"status"`
	PaidAt         *time.Time              `json:"paid_at,omitempty"`
	ShippedAt      *time.Time              `json:"shipped_at,omitempty"`
	DeliveredAt    *time.Time              `json:"delivered_at,omitempty"`
	CreatedAt      time.Time               `json:"created_at"`
}

type OrderListResponse struct {
	Orders []OrderResponse `json:"orders"`
	Total  int64           `json:"total"`
	Page   int             `json:"page"`
	Limit  int             `json:"limit"`
}

type UpdateOrderStatusRequest struct {
	Id     uuid.UUID
	Status string `json:"status" validate:"required,oneof=placed shipped delivered cancelled returned"`
}
