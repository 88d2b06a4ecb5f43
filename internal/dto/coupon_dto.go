package dto

import (
	"time"

	"github.com/google/uuid"
)

// --- User-Side Coupon Application ---

type ApplyCouponRequest struct {
	Code       string  `json:"code" validate:"required"`
	ItemsTotal float64 `json:"items_total" validate:"required,gt=0"`
}

type ApplyCouponResponse struct {
	Code     string  `json:"code"`
	Discount float64 `json:"discount"`
	Message  string  `json:"message"`
}

type BestCouponRequest struct {
	Codes      []string `json:"codes" validate:"required,min=1,dive,required"`
	ItemsTotal float64  `json:"items_total" validate:"required,gt=0"`
}

type BestCouponResponse struct {
	Code     string  `json:"code"`
	Discount float64 `json:"discount"`
}

// --- Admin-Side Coupon Management ---

type CreateCouponRequest struct {
	Code              string      `json:"code" validate:"required,min=3,max=32"`
	DiscountType      string      `json:"discount_type" validate:"required,oneof=percentage fixed"`
	DiscountValue     float64     `json:"discount_value" validate:"required,gt=0"`
	MinOrderAmount    float64     `json:"min_order_amount" validate:"gte=0"`
	MaxDiscount       float64     `json:"max_discount" validate:"gte=0"`
	UsageLimit        int         `json:"usage_limit" validate:"gte=0"`
	FirstPurchaseOnly bool        `json:"first_purchase_only"`
	AllowedUserIds    []uuid.UUID `json:"allowed_user_ids"`
	MaxUsesPerUser    int         `json:"max_uses_per_user" validate:"gte=0"`
	ValidFrom         time.Time   `json:"valid_from" validate:"required"`
	ValidUntil        time.Time   `json:"valid_until" validate:"required,gtfield=ValidFrom"`
	Active            bool        `json:"active"`
}

type UpdateCouponRequest struct {
	Id                uuid.UUID
	DiscountType      string      `json:"discount_type" validate:"required,oneof=percentage fixed"`
	DiscountValue     float64     `json:"discount_value" validate:"required,gt=0"`
	MinOrderAmount    float64     `json:"min_order_amount" validate:"gte=0"`
	MaxDiscount       float64     `json:"max_discount" validate:"gte=0"`
	UsageLimit        int         `json:"usage_limit" validate:"gte=0"`
	FirstPurchaseOnly bool        `json:"first_purchase_only"`
	AllowedUserIds    []uuid.UUID `json:"allowed_user_ids"`
	MaxUsesPerUser    int         `json:"max_uses_per_user" validate:"gte=0"`
	ValidFrom         time.Time   `json:"valid_from" validate:"required"`
	ValidUntil        time.Time   `json:"valid_until" validate:"required,gtfield=ValidFrom"`
	Active            bool        `json:"active"`
}

type CouponResponse struct {
	Id                uuid.UUID   `json:"id"`
	Code              string      `json:"code"`
	DiscountType      string      `json:"discount_type"`
	DiscountValue     float64     `json:"discount_value"`
	MinOrderAmount    float64     `json:"min_order_amount"`
	MaxDiscount       float64     `json:"max_discount"`
	UsageLimit        int         `json:"usage_limit"`
	UsedCount         int         `json:"used_count"`
	FirstPurchaseOnly bool        `json:"first_purchase_only"`
	AllowedUserIds    []uuid.UUID `json:"allowed_user_ids,omitempty"`
	MaxUsesPerUser    int         `json:"max_uses_per_user"`
	ValidFrom         time.Time   `json:"valid_from"`
	ValidUntil        time.Time   `json:"valid_until"`
	Active            bool        `json:"active"`
	CreatedAt         time.Time   `json:"created_at"`
}
