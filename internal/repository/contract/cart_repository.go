package contract

import (
	"context"

	"storefront-be/internal/entity"

	"github.com/google/uuid"
)

type CartRepository interface {
	FindByUserID(ctx context.Context, userId uuid.UUID) ([]*entity.CartItem, error)
	ClearByUserID(ctx context.Context, userId uuid.UUID) error
}
