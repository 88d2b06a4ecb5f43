package contract

import (
	"context"

	"storefront-be/internal/entity"
	"storefront-be/internal/repository/specification"

	"github.com/google/uuid"
)

type ShippingRuleRepository interface {
	Create(ctx context.Context, rule *entity.ShippingRule) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ShippingRule, error)
	// FindAllActive returns active rules ordered by ascending priority.
	FindAllActive(ctx context.Context) ([]*entity.ShippingRule, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ShippingRule, error)
	Update(ctx context.Context, rule *entity.ShippingRule) error
	Delete(ctx context.Context, id uuid.UUID) error
}
