package contract

import (
	"context"

	"storefront-be/internal/entity"
	"storefront-be/internal/repository/specification"

	"github.com/google/uuid"
)

type CouponRepository interface {
	Create(ctx context.Context, coupon *entity.Coupon) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Coupon, error)
	FindByCode(ctx context.Context, code string) (*entity.Coupon, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Coupon, error)
	Update(ctx context.Context, coupon *entity.Coupon) error
	Delete(ctx context.Context, id uuid.UUID) error
	// IncrementUsage bumps used_count by one, but only while the configured
	// usage limit (if any) is not yet reached. Returns false when the ceiling
	// was hit, so concurrent redemptions cannot overshoot the limit.
	IncrementUsage(ctx context.Context, id uuid.UUID) (bool, error)
}
