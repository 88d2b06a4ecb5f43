package contract

import (
	"context"

	"storefront-be/internal/entity"
	"storefront-be/internal/repository/specification"

	"github.com/google/uuid"
)

type ReturnRepository interface {
	Create(ctx context.Context, request *entity.ReturnRequest) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ReturnRequest, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ReturnRequest, error)
	// FindActiveByOrderID returns the non-terminal return for an order, nil when none.
	FindActiveByOrderID(ctx context.Context, orderId uuid.UUID) (*entity.ReturnRequest, error)
	Update(ctx context.Context, request *entity.ReturnRequest) error
}
