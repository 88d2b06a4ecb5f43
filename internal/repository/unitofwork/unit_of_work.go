package unitofwork

import (
	"context"

	"storefront-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	ProductRepository() contract.ProductRepository
	CartRepository() contract.CartRepository
	OrderRepository() contract.OrderRepository
	CouponRepository() contract.CouponRepository
	InvoiceRepository() contract.InvoiceRepository
	ReturnRepository() contract.ReturnRepository
	ShippingRuleRepository() contract.ShippingRuleRepository
}
