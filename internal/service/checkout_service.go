package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"storefront-be/internal/config"
	"storefront-be/internal/dto"
	"storefront-be/internal/entity"
	"storefront-be/internal/pkg/apperror"
	"storefront-be/internal/pkg/logger"
	"storefront-be/internal/repository/specification"
	"storefront-be/internal/repository/unitofwork"
	"storefront-be/pkg/events"
	"storefront-be/pkg/gateway"
	pktNats "storefront-be/pkg/nats"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// reconcileLockTTL bounds how long a payment id stays claimed when a
// verification attempt dies mid-pipeline.
const reconcileLockTTL = 24 * time.Hour

type ICheckoutService interface {
	Quote(ctx context.Context, userId uuid.UUID, req *dto.QuoteRequest) (*dto.QuoteResponse, error)
	InitiateCheckout(ctx context.Context, userId uuid.UUID, req *dto.InitiateCheckoutRequest) (*dto.InitiateCheckoutResponse, error)
	VerifyPayment(ctx context.Context, userId uuid.UUID, req *dto.VerifyPaymentRequest) (*dto.VerifyPaymentResponse, error)
	PaymentFailed(ctx context.Context, userId uuid.UUID, req *dto.PaymentFailedRequest) error
}

type checkoutService struct {
	uowFactory       unitofwork.RepositoryFactory
	gatewayClient    gateway.Client
	couponService    ICouponService
	shippingService  IShippingService
	publisherService IPublisherService
	eventPublisher   *pktNats.Publisher
	redisClient      *redis.Client
	cfg              *config.Config
	logger           logger.ILogger
}

func NewCheckoutService(
	uowFactory unitofwork.RepositoryFactory,
	gatewayClient gateway.Client,
	couponService ICouponService,
	shippingService IShippingService,
	publisherService IPublisherService,
	eventPublisher *pktNats.Publisher,
	redisClient *redis.Client,
	cfg *config.Config,
	log logger.ILogger,
) ICheckoutService {
	return &checkoutService{
		uowFactory:       uowFactory,
		gatewayClient:    gatewayClient,
		couponService:    couponService,
		shippingService:  shippingService,
		publisherService: publisherService,
		eventPublisher:   eventPublisher,
		redisClient:      redisClient,
		cfg:              cfg,
		logger:           log,
	}
}

// reconcileStep is one stage of the post-payment pipeline. Critical steps
// abort the pipeline on failure; advisory steps only log.
type reconcileStep struct {
	name     string
	critical bool
	run      func(ctx context.Context) error
}

func (s *checkoutService) runPipeline(ctx context.Context, orderId uuid.UUID, steps []reconcileStep) error {
	for _, step := range steps {
		if err := step.run(ctx); err != nil {
			if step.critical {
				s.logger.Error("CheckoutService", "Critical pipeline step failed", map[string]interface{}{
					"step": step.name, "order_id": orderId.String(), "error": err.Error(),
				})
				return err
			}
			s.logger.Warn("CheckoutService", "Advisory pipeline step failed, continuing", map[string]interface{}{
				"step": step.name, "order_id": orderId.String(), "error": err.Error(),
			})
		}
	}
	return nil
}

// cartPricing is the computed breakdown for the current cart contents.
type cartPricing struct {
	items      []entity.OrderItem
	itemsTotal float64
	taxTotal   float64
	shipping   float64
	discount   float64
	grandTotal float64
	coupon     *entity.Coupon
}

// priceCart loads the user's cart and computes the full breakdown:
// items, per-product GST, shipping by destination pincode, and the coupon
// discount when a code is given.
func (s *checkoutService) priceCart(ctx context.Context, userId uuid.UUID, pincode, couponCode string) (*cartPricing, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	cartItems, err := uow.CartRepository().FindByUserID(ctx, userId)
	if err != nil {
		return nil, err
	}
	if len(cartItems) == 0 {
		return nil, apperror.Validation("cart is empty")
	}

	productIds := make([]uuid.UUID, 0, len(cartItems))
	for _, item := range cartItems {
		productIds = append(productIds, item.ProductId)
	}
	products, err := uow.ProductRepository().FindAll(ctx, specification.ByIDs{IDs: productIds})
	if err != nil {
		return nil, err
	}
	productById := make(map[uuid.UUID]*entity.Product, len(products))
	for _, p := range products {
		productById[p.Id] = p
	}

	pricing := &cartPricing{}
	for _, item := range cartItems {
		product, ok := productById[item.ProductId]
		if !ok || !product.Active {
			return nil, apperror.Validation("a cart item is no longer available")
		}
		if item.Quantity <= 0 {
			return nil, apperror.Validation("invalid cart item quantity")
		}
		if product.Stock < item.Quantity {
			return nil, apperror.Conflict(fmt.Sprintf("insufficient stock for %s", product.Name))
		}

		lineTotal := product.Price * float64(item.Quantity)
		rate := product.GstRate
		if rate <= 0 {
			rate = s.cfg.Store.DefaultGstRate
		}

		pricing.items = append(pricing.items, entity.OrderItem{
			Id:        uuid.New(),
			ProductId: product.Id,
			Name:      product.Name,
			Image:     product.Image,
			Quantity:  item.Quantity,
			UnitPrice: product.Price,
		})
		pricing.itemsTotal += lineTotal
		pricing.taxTotal += lineTotal * rate / 100
	}

	estimate, err := s.shippingService.Estimate(ctx, &dto.ShippingEstimateRequest{
		Pincode:    pincode,
		ItemsTotal: pricing.itemsTotal,
	})
	if err != nil {
		return nil, err
	}
	pricing.shipping = estimate.Charge

	if couponCode != "" {
		coupon, discount, err := s.couponService.ResolveForOrder(ctx, userId, couponCode, pricing.itemsTotal)
		if err != nil {
			return nil, err
		}
		pricing.coupon = coupon
		pricing.discount = discount
	}

	pricing.grandTotal = pricing.itemsTotal + pricing.taxTotal + pricing.shipping - pricing.discount
	if pricing.grandTotal < 0 {
		pricing.grandTotal = 0
	}
	return pricing, nil
}

func (s *checkoutService) Quote(ctx context.Context, userId uuid.UUID, req *dto.QuoteRequest) (*dto.QuoteResponse, error) {
	res := &dto.QuoteResponse{}

	pricing, err := s.priceCart(ctx, userId, req.Pincode, "")
	if err != nil {
		return nil, err
	}

	res.ItemsTotal = pricing.itemsTotal
	res.TaxTotal = pricing.taxTotal
	res.ShippingCharge = pricing.shipping
	res.GrandTotal = pricing.itemsTotal + pricing.taxTotal + pricing.shipping

	// A rejected coupon degrades the quote instead of failing it.
	if req.CouponCode != "" {
		coupon, discount, err := s.couponService.ResolveForOrder(ctx, userId, req.CouponCode, pricing.itemsTotal)
		if err != nil {
			res.CouponMessage = err.Error()
		} else {
			res.CouponCode = coupon.Code
			res.Discount = discount
			res.GrandTotal -= discount
		}
	}
	return res, nil
}

func (s *checkoutService) InitiateCheckout(ctx context.Context, userId uuid.UUID, req *dto.InitiateCheckoutRequest) (*dto.InitiateCheckoutResponse, error) {
	pricing, err := s.priceCart(ctx, userId, req.Address.Pincode, req.CouponCode)
	if err != nil {
		return nil, err
	}

	order := &entity.Order{
		Id:     uuid.New(),
		UserId: userId,
		Items:  pricing.items,
		Address: entity.ShippingAddress{
			FullName:    req.Address.FullName,
			Phone:       req.Address.Phone,
			AddressLine: req.Address.AddressLine,
			City:        req.Address.City,
			State:       req.Address.State,
			Pincode:     req.Address.Pincode,
		},
		Payment: entity.PaymentInfo{
			Method: entity.PaymentMethod(req.PaymentMethod),
			Status: entity.PaymentStatusPending,
		},
		ItemsTotal:     pricing.itemsTotal,
		TaxTotal:       pricing.taxTotal,
		ShippingCharge: pricing.shipping,
		Discount:       pricing.discount,
		GrandTotal:     pricing.grandTotal,
		Status:         entity.OrderStatusPlaced,
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}
	if pricing.coupon != nil {
		order.Coupon = &entity.CouponSnapshot{
			Code:          pricing.coupon.Code,
			DiscountType:  pricing.coupon.DiscountType,
			DiscountValue: pricing.coupon.DiscountValue,
			Applied:       pricing.discount,
		}
	}

	if order.Payment.Method == entity.PaymentMethodCOD {
		return s.placeCodOrder(ctx, order, pricing)
	}

	gatewayOrderId, err := s.gatewayClient.CreateOrder(ctx, order.GrandTotal, "INR", order.Id.String())
	if err != nil {
		return nil, apperror.Upstream("failed to create gateway order", err)
	}
	order.Payment.GatewayOrderId = gatewayOrderId

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.OrderRepository().Create(ctx, order); err != nil {
		return nil, err
	}

	return &dto.InitiateCheckoutResponse{
		OrderId:        order.Id,
		GatewayOrderId: gatewayOrderId,
		GatewayKeyId:   s.cfg.Gateway.KeyID,
		Amount:         order.GrandTotal,
		Currency:       "INR",
		PaymentMethod:  string(order.Payment.Method),
	}, nil
}

// placeCodOrder materializes a COD order immediately: no signature step, a
// synthesized payment id, and payment left pending until delivery.
func (s *checkoutService) placeCodOrder(ctx context.Context, order *entity.Order, pricing *cartPricing) (*dto.InitiateCheckoutResponse, error) {
	order.Payment.GatewayPaymentId = "cod_" + uuid.NewString()

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	if err := uow.OrderRepository().Create(ctx, order); err != nil {
		uow.Rollback()
		return nil, err
	}
	for _, item := range order.Items {
		ok, err := uow.ProductRepository().DecreaseStockIfAvailable(ctx, item.ProductId, item.Quantity)
		if err != nil {
			uow.Rollback()
			return nil, err
		}
		if !ok {
			uow.Rollback()
			return nil, apperror.Conflict(fmt.Sprintf("insufficient stock for %s", item.Name))
		}
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.runFollowupSteps(ctx, order)

	return &dto.InitiateCheckoutResponse{
		OrderId:       order.Id,
		Amount:        order.GrandTotal,
		Currency:      "INR",
		PaymentMethod: string(order.Payment.Method),
	}, nil
}

func (s *checkoutService) VerifyPayment(ctx context.Context, userId uuid.UUID, req *dto.VerifyPaymentRequest) (*dto.VerifyPaymentResponse, error) {
	lockKey := "reconcile:payment:" + req.GatewayPaymentId

	// Claim the payment id before touching anything. A lost claim means a
	// concurrent or earlier attempt owns this payment.
	claimed, err := s.redisClient.SetNX(ctx, lockKey, req.OrderId.String(), reconcileLockTTL).Result()
	if err != nil {
		s.logger.Warn("CheckoutService", "Idempotency store unavailable, relying on unique index", map[string]interface{}{"error": err.Error()})
		claimed = true
	}
	if !claimed {
		return s.existingVerification(ctx, req.GatewayPaymentId)
	}

	// The claim is only kept once the payment is reconciled in the database.
	// Every other exit releases it so a transient failure stays retryable.
	reconciled := false
	defer func() {
		if !reconciled {
			s.redisClient.Del(ctx, lockKey)
		}
	}()

	uow := s.uowFactory.NewUnitOfWork(ctx)
	order, err := uow.OrderRepository().FindOne(ctx, specification.ByID{ID: req.OrderId})
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NotFound("order not found")
	}
	if order.UserId != userId {
		return nil, apperror.Authorization("not allowed to verify this order")
	}
	if order.Payment.Status == entity.PaymentStatusPaid {
		reconciled = true
		return s.paidResponse(ctx, order), nil
	}
	if order.Payment.GatewayOrderId != req.GatewayOrderId {
		return nil, apperror.Validation("gateway order mismatch")
	}

	if !s.gatewayClient.VerifySignature(req.GatewayOrderId, req.GatewayPaymentId, req.Signature) {
		return nil, apperror.Authorization("invalid payment signature")
	}

	status, err := s.gatewayClient.FetchPaymentStatus(ctx, req.GatewayPaymentId)
	if err != nil {
		return nil, apperror.Upstream("failed to confirm payment with gateway", err)
	}
	if status != "captured" && status != "authorized" {
		return nil, apperror.Validation("payment is not captured")
	}

	// Critical section: attach the payment, mark paid, and take stock in a
	// single transaction. The unique index on gateway_payment_id makes a
	// racing duplicate fail here.
	txUow := s.uowFactory.NewUnitOfWork(ctx)
	if err := txUow.Begin(ctx); err != nil {
		return nil, err
	}
	if err := txUow.OrderRepository().AttachGatewayPayment(ctx, order.Id, req.GatewayPaymentId); err != nil {
		txUow.Rollback()
		return nil, apperror.Wrap(apperror.KindConflict, "payment already reconciled", err)
	}
	if err := txUow.OrderRepository().UpdatePaymentStatus(ctx, order.Id, entity.PaymentStatusPaid); err != nil {
		txUow.Rollback()
		return nil, err
	}
	for _, item := range order.Items {
		ok, err := txUow.ProductRepository().DecreaseStockIfAvailable(ctx, item.ProductId, item.Quantity)
		if err != nil {
			txUow.Rollback()
			return nil, err
		}
		if !ok {
			txUow.Rollback()
			return nil, apperror.Conflict(fmt.Sprintf("insufficient stock for %s", item.Name))
		}
	}
	if err := txUow.Commit(); err != nil {
		return nil, err
	}
	reconciled = true

	order.Payment.GatewayPaymentId = req.GatewayPaymentId
	order.Payment.Status = entity.PaymentStatusPaid

	s.runFollowupSteps(ctx, order)

	return s.paidResponse(ctx, order), nil
}

// runFollowupSteps executes the advisory tail shared by online and COD
// orders: cart reset, coupon redemption, the async invoice/email handoff,
// and event dispatch. None of these can fail the checkout.
func (s *checkoutService) runFollowupSteps(ctx context.Context, order *entity.Order) {
	steps := []reconcileStep{
		{
			name: "clear_cart",
			run: func(ctx context.Context) error {
				uow := s.uowFactory.NewUnitOfWork(ctx)
				return uow.CartRepository().ClearByUserID(ctx, order.UserId)
			},
		},
		{
			name: "redeem_coupon",
			run: func(ctx context.Context) error {
				if order.Coupon == nil {
					return nil
				}
				uow := s.uowFactory.NewUnitOfWork(ctx)
				coupon, err := uow.CouponRepository().FindByCode(ctx, order.Coupon.Code)
				if err != nil {
					return err
				}
				if coupon == nil {
					return fmt.Errorf("coupon %s vanished before redemption", order.Coupon.Code)
				}
				return s.couponService.Redeem(ctx, coupon.Id)
			},
		},
		{
			name: "queue_followup",
			run: func(ctx context.Context) error {
				payload, err := json.Marshal(dto.OrderFollowupMessage{OrderId: order.Id})
				if err != nil {
					return err
				}
				return s.publisherService.Publish(ctx, payload)
			},
		},
		{
			name: "dispatch_events",
			run: func(ctx context.Context) error {
				s.publishOrderEvents(ctx, order)
				return nil
			},
		},
	}
	// All advisory, so the error is always nil.
	_ = s.runPipeline(ctx, order.Id, steps)
}

func (s *checkoutService) publishOrderEvents(ctx context.Context, order *entity.Order) {
	if s.eventPublisher == nil {
		return
	}

	publish := func(eventType string) {
		evt := events.BaseEvent{
			Type: eventType,
			Data: map[string]interface{}{
				"user_id":     order.UserId.String(),
				"entity_type": "order",
				"entity_id":   order.Id.String(),
				"order_id":    order.Id.String(),
				"amount":      order.GrandTotal,
				"actor_name":  order.Address.FullName,
			},
			OccurredAt: time.Now(),
		}
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			s.logger.Warn("CheckoutService", "Event publish failed", map[string]interface{}{"type": eventType, "error": err.Error()})
		}
	}

	publish(events.TypeOrderCreated)
	if order.Payment.Status == entity.PaymentStatusPaid {
		publish(events.TypePaymentSucceeded)
	}
}

// existingVerification answers a retried verification call with the order
// already reconciled for that payment id.
func (s *checkoutService) existingVerification(ctx context.Context, paymentId string) (*dto.VerifyPaymentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	order, err := uow.OrderRepository().FindOne(ctx, specification.ByGatewayPaymentID{PaymentID: paymentId})
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.Conflict("payment verification already in progress")
	}
	return s.paidResponse(ctx, order), nil
}

func (s *checkoutService) paidResponse(ctx context.Context, order *entity.Order) *dto.VerifyPaymentResponse {
	res := &dto.VerifyPaymentResponse{
		OrderId:       order.Id,
		PaymentStatus: string(order.Payment.Status),
	}
	if order.PaidAt != nil {
		res.PaidAt = *order.PaidAt
	} else {
		res.PaidAt = time.Now()
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if invoice, err := uow.InvoiceRepository().FindByOrderID(ctx, order.Id); err == nil && invoice != nil {
		res.InvoiceNumber = invoice.Number
	}
	return res
}

func (s *checkoutService) PaymentFailed(ctx context.Context, userId uuid.UUID, req *dto.PaymentFailedRequest) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	order, err := uow.OrderRepository().FindOne(ctx, specification.ByID{ID: req.OrderId})
	if err != nil {
		return err
	}
	if order == nil {
		return apperror.NotFound("order not found")
	}
	if order.UserId != userId {
		return apperror.Authorization("not allowed to update this order")
	}
	if order.Payment.Status == entity.PaymentStatusPaid {
		return apperror.Conflict("order is already paid")
	}

	if err := uow.OrderRepository().UpdatePaymentStatus(ctx, order.Id, entity.PaymentStatusFailed); err != nil {
		return err
	}
	if err := uow.OrderRepository().UpdateStatus(ctx, order.Id, entity.OrderStatusCancelled); err != nil {
		return err
	}

	if s.eventPublisher != nil {
		evt := events.BaseEvent{
			Type: events.TypePaymentFailed,
			Data: map[string]interface{}{
				"user_id":     order.UserId.String(),
				"entity_type": "order",
				"entity_id":   order.Id.String(),
				"order_id":    order.Id.String(),
				"amount":      order.GrandTotal,
				"reason":      req.Reason,
			},
			OccurredAt: time.Now(),
		}
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			s.logger.Warn("CheckoutService", "Event publish failed", map[string]interface{}{"type": events.TypePaymentFailed, "error": err.Error()})
		}
	}
	return nil
}
