package service

import (
	"context"
	"time"

	"storefront-be/internal/dto"
	"storefront-be/internal/entity"
	"storefront-be/internal/pkg/apperror"
	"storefront-be/internal/pkg/logger"
	"storefront-be/internal/repository/specification"
	"storefront-be/internal/repository/unitofwork"
	"storefront-be/pkg/events"
	pktNats "storefront-be/pkg/nats"

	"github.com/google/uuid"
)

// adminStatusTargets lists the statuses an admin may set directly. Returned
// is owned by the return lifecycle and placed is only ever set at creation.
var adminStatusTargets = map[entity.OrderStatus]bool{
	entity.OrderStatusShipped:   true,
	entity.OrderStatusDelivered: true,
	entity.OrderStatusCancelled: true,
}

type IOrderService interface {
	GetUserOrders(ctx context.Context, userId uuid.UUID, page, limit int) (*dto.OrderListResponse, error)
	GetOrder(ctx context.Context, userId uuid.UUID, isAdmin bool, id uuid.UUID) (*dto.OrderResponse, error)
	GetAllOrders(ctx context.Context, page, limit int) (*dto.OrderListResponse, error)
	UpdateStatus(ctx context.Context, req *dto.UpdateOrderStatusRequest) error
}

type orderService struct {
	uowFactory     unitofwork.RepositoryFactory
	eventPublisher *pktNats.Publisher
	logger         logger.ILogger
}

func NewOrderService(uowFactory unitofwork.RepositoryFactory, eventPublisher *pktNats.Publisher, log logger.ILogger) IOrderService {
	return &orderService{
		uowFactory:     uowFactory,
		eventPublisher: eventPublisher,
		logger:         log,
	}
}

func (s *orderService) GetUserOrders(ctx context.Context, userId uuid.UUID, page, limit int) (*dto.OrderListResponse, error) {
	return s.listOrders(ctx, page, limit, specification.UserOwnedBy{UserID: userId})
}

func (s *orderService) GetAllOrders(ctx context.Context, page, limit int) (*dto.OrderListResponse, error) {
	return s.listOrders(ctx, page, limit)
}

func (s *orderService) listOrders(ctx context.Context, page, limit int, filters ...specification.Specification) (*dto.OrderListResponse, error) {
	if limit <= 0 {
		limit = 20
	}
	if page <= 0 {
		page = 1
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	total, err := uow.OrderRepository().Count(ctx, filters...)
	if err != nil {
		return nil, err
	}

	specs := append([]specification.Specification{}, filters...)
	specs = append(specs,
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: limit, Offset: (page - 1) * limit},
	)
	orders, err := uow.OrderRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	res := &dto.OrderListResponse{
		Orders: make([]dto.OrderResponse, 0, len(orders)),
		Total:  total,
		Page:   page,
		Limit:  limit,
	}
	for _, o := range orders {
		res.Orders = append(res.Orders, *toOrderResponse(o))
	}
	return res, nil
}

func (s *orderService) GetOrder(ctx context.Context, userId uuid.UUID, isAdmin bool, id uuid.UUID) (*dto.OrderResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	order, err := uow.OrderRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NotFound("order not found")
	}
	if !isAdmin && order.UserId != userId {
		return nil, apperror.Authorization("not allowed to view this order")
	}
	return toOrderResponse(order), nil
}

func (s *orderService) UpdateStatus(ctx context.Context, req *dto.UpdateOrderStatusRequest) error {
	target := entity.OrderStatus(req.Status)
	if !adminStatusTargets[target] {
		return apperror.Validation("status cannot be set directly")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	order, err := uow.OrderRepository().FindOne(ctx, specification.ByID{ID: req.Id})
	if err != nil {
		return err
	}
	if order == nil {
		return apperror.NotFound("order not found")
	}
	if order.Status == entity.OrderStatusCancelled || order.Status == entity.OrderStatusReturned {
		return apperror.Conflict("order status can no longer be changed")
	}
	if order.Status == target {
		return nil
	}

	if err := uow.OrderRepository().UpdateStatus(ctx, order.Id, target); err != nil {
		return err
	}

	if s.eventPublisher != nil {
		evt := events.BaseEvent{
			Type: events.TypeOrderStatusChanged,
			Data: map[string]interface{}{
				"user_id":     order.UserId.String(),
				"entity_type": "order",
				"entity_id":   order.Id.String(),
				"order_id":    order.Id.String(),
				"status":      string(target),
			},
			OccurredAt: time.Now(),
		}
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			s.logger.Warn("OrderService", "Event publish failed", map[string]interface{}{"type": events.TypeOrderStatusChanged, "error": err.Error()})
		}
	}
	return nil
}

func toOrderResponse(o *entity.Order) *dto.OrderResponse {
	items := make([]dto.OrderItemResponse, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, dto.OrderItemResponse{
			ProductId: item.ProductId,
			Name:      item.Name,
			Image:     item.Image,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}

	res := &dto.OrderResponse{
		Id:    o.Id,
		Items: items,
		Address: dto.ShippingAddressDTO{
			FullName:    o.Address.FullName,
			Phone:       o.Address.Phone,
			AddressLine: o.Address.AddressLine,
			City:        o.Address.City,
			State:       o.Address.State,
			Pincode:     o.Address.Pincode,
		},
		PaymentMethod:  string(o.Payment.Method),
		PaymentStatus:  string(o.Payment.Status),
		ItemsTotal:     o.ItemsTotal,
		TaxTotal:       o.TaxTotal,
		ShippingCharge: o.ShippingCharge,
		Discount:       o.Discount,
		GrandTotal:     o.GrandTotal,
		Status:         string(o.Status),
		PaidAt:         o.PaidAt,
		ShippedAt:      o.ShippedAt,
		DeliveredAt:    o.DeliveredAt,
		CreatedAt:      o.CreatedAt,
	}
	if o.Coupon != nil {
		res.Coupon = &dto.CouponSnapshotResponse{
			Code:          o.Coupon.Code,
			DiscountType:  string(o.Coupon.DiscountType),
			DiscountValue: o.Coupon.DiscountValue,
			Applied:       o.Coupon.Applied,
		}
	}
	return res
}
