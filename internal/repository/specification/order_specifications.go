package specification

import (
	"gorm.io/gorm"
)

// ByGatewayPaymentID looks an order up by its gateway payment identifier.
// Used by the reconciler to de-duplicate retried verification calls.
type ByGatewayPaymentID struct {
	PaymentID string
}

func (s ByGatewayPaymentID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("gateway_payment_id = ?", s.PaymentID)
}

// StatusIn filters by a set of statuses.
type StatusIn struct {
	Statuses []string
}

func (s StatusIn) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("status IN ?", s.Statuses)
}

// CouponCodeIs filters orders carrying a specific coupon snapshot code.
type CouponCodeIs struct {
	Code string
}

func (s CouponCodeIs) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("coupon_code = ?", s.Code)
}

// ActiveOnly filters rows with active = true.
type ActiveOnly struct{}

func (s ActiveOnly) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("active = ?", true)
}

// ByCode filters by a unique code column (coupons, invoices).
type ByCode struct {
	Code string
}

func (s ByCode) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("code = ?", s.Code)
}
