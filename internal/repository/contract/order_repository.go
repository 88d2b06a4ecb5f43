package contract

import (
	"context"

	"storefront-be/internal/entity"
	"storefront-be/internal/repository/specification"

	"github.com/google/uuid"
)

type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Order, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Order, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	// UpdateStatus sets the status and stamps the matching timestamp column
	// when it is still null.
	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.OrderStatus) error
	UpdatePaymentStatus(ctx context.Context, id uuid.UUID, status entity.PaymentStatus) error
	// AttachGatewayPayment records the gateway payment id on the order. The
	// unique index on the column makes a second attach of the same payment
	// id fail, which is the duplicate-materialization guard.
	AttachGatewayPayment(ctx context.Context, id uuid.UUID, paymentId string) error
}
