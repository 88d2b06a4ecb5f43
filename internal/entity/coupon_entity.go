package entity

import (
	"time"

	"github.com/google/uuid"
)

type DiscountType string

const (
	DiscountTypePercentage DiscountType = "percentage"
	DiscountTypeFixed      DiscountType = "fixed"
)

type Coupon struct {
	Id             uuid.UUID
	Code           string // stored upper-cased, unique
	DiscountType   DiscountType
	DiscountValue  float64
	MinOrderAmount float64

	// MaxDiscount caps percentage discounts. Zero means no cap.
	MaxDiscount float64

	// UsageLimit zero means unlimited.
	UsageLimit int
	UsedCount  int

	// Per-user restrictions.
	FirstPurchaseOnly bool
	AllowedUserIds    []uuid.UUID // empty means any user
	MaxUsesPerUser    int         // zero means unlimited
	ValidFrom         time.Time
	ValidUntil        time.Time
	Active            bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
