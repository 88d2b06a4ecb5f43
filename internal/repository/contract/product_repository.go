package contract

import (
	"context"

	"storefront-be/internal/entity"
	"storefront-be/internal/repository/specification"

	"github.com/google/uuid"
)

type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Product, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	// DecreaseStockIfAvailable decrements stock by qty only when enough stock
	// remains. Returns false when the conditional update matched no row.
	DecreaseStockIfAvailable(ctx context.Context, id uuid.UUID, qty int) (bool, error)
	IncreaseStock(ctx context.Context, id uuid.UUID, qty int) error
}
