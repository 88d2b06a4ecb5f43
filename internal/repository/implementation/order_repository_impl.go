package implementation

import (
	"context"
	"time"

	"storefront-be/internal/entity"
	"storefront-be/internal/model"
	"storefront-be/internal/repository/contract"
	"storefront-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type orderRepositoryImpl struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) contract.OrderRepository {
	return &orderRepositoryImpl{db: db}
}

func (r *orderRepositoryImpl) Create(ctx context.Context, order *entity.Order) error {
	m := mapOrderToModel(order)
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *orderRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Order, error) {
	var m model.Order
	query := r.db.WithContext(ctx).Preload("Items")

	for _, spec := range specs {
		query = spec.Apply(query)
	}

	if err := query.First(&m).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}

	return mapOrderToEntity(&m), nil
}

func (r *orderRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Order, error) {
	var models []*model.Order
	query := r.db.WithContext(ctx).Preload("Items")

	for _, spec := range specs {
		query = spec.Apply(query)
	}

	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}

	var orders []*entity.Order
	for _, m := range models {
		orders = append(orders, mapOrderToEntity(m))
	}
	return orders, nil
}

func (r *orderRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&model.Order{})

	for _, spec := range specs {
		query = spec.Apply(query)
	}

	err := query.Count(&count).Error
	return count, err
}

// UpdateStatus writes the status and stamps the transition timestamp for it.
// Timestamps already set are left untouched.
func (r *orderRepositoryImpl) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.OrderStatus) error {
	updates := map[string]interface{}{
		"status":     string(status),
		"updated_at": time.Now(),
	}

	var column string
	switch status {
	case entity.OrderStatusShipped:
		column = "shipped_at"
	case entity.OrderStatusDelivered:
		column = "delivered_at"
	case entity.OrderStatusCancelled:
		column = "cancelled_at"
	}
	if column != "" {
		updates[column] = gorm.Expr("COALESCE("+column+", ?)", time.Now())
	}

	return r.db.WithContext(ctx).Model(&model.Order{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *orderRepositoryImpl) UpdatePaymentStatus(ctx context.Context, id uuid.UUID, status entity.PaymentStatus) error {
	updates := map[string]interface{}{
		"payment_status": string(status),
		"updated_at":     time.Now(),
	}
	if status == entity.PaymentStatusPaid {
		updates["paid_at"] = gorm.Expr("COALESCE(paid_at, ?)", time.Now())
	}
	return r.db.WithContext(ctx).Model(&model.Order{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *orderRepositoryImpl) AttachGatewayPayment(ctx context.Context, id uuid.UUID, paymentId string) error {
	return r.db.WithContext(ctx).Model(&model.Order{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"gateway_payment_id": paymentId,
			"updated_at":         time.Now(),
		}).Error
}

func mapOrderToModel(o *entity.Order) *model.Order {
	m := &model.Order{
		ID:              o.Id,
		UserID:          o.UserId,
		ShipFullName:    o.Address.FullName,
		ShipPhone:       o.Address.Phone,
		ShipAddressLine: o.Address.AddressLine,
		ShipCity:        o.Address.City,
		ShipState:       o.Address.State,
		ShipPincode:     o.Address.Pincode,
		GatewayOrderID:  o.Payment.GatewayOrderId,
		PaymentMethod:   string(o.Payment.Method),
		PaymentStatus:   string(o.Payment.Status),
		ItemsTotal:      o.ItemsTotal,
		TaxTotal:        o.TaxTotal,
		ShippingCharge:  o.ShippingCharge,
		Discount:        o.Discount,
		GrandTotal:      o.GrandTotal,
		Status:          string(o.Status),
		PaidAt:          o.PaidAt,
		ShippedAt:       o.ShippedAt,
		DeliveredAt:     o.DeliveredAt,
		CancelledAt:     o.CancelledAt,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}

	if o.Payment.GatewayPaymentId != "" {
		paymentId := o.Payment.GatewayPaymentId
		m.GatewayPaymentID = &paymentId
	}

	if o.Coupon != nil {
		code := o.Coupon.Code
		typ := string(o.Coupon.DiscountType)
		value := o.Coupon.DiscountValue
		applied := o.Coupon.Applied
		m.CouponCode = &code
		m.CouponType = &typ
		m.CouponValue = &value
		m.CouponApplied = &applied
	}

	for _, item := range o.Items {
		m.Items = append(m.Items, model.OrderItem{
			ID:        item.Id,
			OrderID:   o.Id,
			ProductID: item.ProductId,
			Name:      item.Name,
			Image:     item.Image,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}

	return m
}

func mapOrderToEntity(m *model.Order) *entity.Order {
	o := &entity.Order{
		Id:     m.ID,
		UserId: m.UserID,
		Address: entity.ShippingAddress{
			FullName:    m.ShipFullName,
			Phone:       m.ShipPhone,
			AddressLine: m.ShipAddressLine,
			City:        m.ShipCity,
			State:       m.ShipState,
			Pincode:     m.ShipPincode,
		},
		Payment: entity.PaymentInfo{
			GatewayOrderId: m.GatewayOrderID,
			Method:         entity.PaymentMethod(m.PaymentMethod),
			Status:         entity.PaymentStatus(m.PaymentStatus),
		},
		ItemsTotal:     m.ItemsTotal,
		TaxTotal:       m.TaxTotal,
		ShippingCharge: m.ShippingCharge,
		Discount:       m.Discount,
		GrandTotal:     m.GrandTotal,
		Status:         entity.OrderStatus(m.Status),
		PaidAt:         m.PaidAt,
		ShippedAt:      m.ShippedAt,
		DeliveredAt:    m.DeliveredAt,
		CancelledAt:    m.CancelledAt,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}

	if m.GatewayPaymentID != nil {
		o.Payment.GatewayPaymentId = *m.GatewayPaymentID
	}

	if m.CouponCode != nil {
		o.Coupon = &entity.CouponSnapshot{
			Code: *m.CouponCode,
		}
		if m.CouponType != nil {
			o.Coupon.DiscountType = entity.DiscountType(*m.CouponType)
		}
		if m.CouponValue != nil {
			o.Coupon.DiscountValue = *m.CouponValue
		}
		if m.CouponApplied != nil {
			o.Coupon.Applied = *m.CouponApplied
		}
	}

	for _, item := range m.Items {
		o.Items = append(o.Items, entity.OrderItem{
			Id:        item.ID,
			ProductId: item.ProductID,
			Name:      item.Name,
			Image:     item.Image,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}

	return o
}
