package service

import (
	"context"
	"fmt"
	"time"

	"storefront-be/internal/config"
	"storefront-be/internal/dto"
	"storefront-be/internal/entity"
	"storefront-be/internal/pkg/apperror"
	"storefront-be/internal/pkg/logger"
	"storefront-be/internal/pkg/mailer"
	"storefront-be/internal/repository/specification"
	"storefront-be/internal/repository/unitofwork"
	"storefront-be/pkg/events"
	"storefront-be/pkg/gateway"
	pktNats "storefront-be/pkg/nats"

	"github.com/google/uuid"
)

// returnTransitions is the directed transition table for the return state
// machine. An admin may jump forward from approved straight to
// return_received, but refund_processed and completed stay strictly ordered.
var returnTransitions = map[entity.ReturnStatus][]entity.ReturnStatus{
	entity.ReturnStatusPending: {
		entity.ReturnStatusApproved,
		entity.ReturnStatusRejected,
		entity.ReturnStatusCancelled,
	},
	entity.ReturnStatusApproved: {
		entity.ReturnStatusShipped,
		entity.ReturnStatusReceived,
	},
	entity.ReturnStatusShipped: {
		entity.ReturnStatusReceived,
	},
	entity.ReturnStatusReceived: {
		entity.ReturnStatusRefundProcessed,
	},
	entity.ReturnStatusRefundProcessed: {
		entity.ReturnStatusCompleted,
	},
}

func transitionAllowed(from, to entity.ReturnStatus) bool {
	for _, allowed := range returnTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

type IReturnService interface {
	CreateReturn(ctx context.Context, userId uuid.UUID, req *dto.CreateReturnRequest) (*dto.CreateReturnResponse, error)
	CancelReturn(ctx context.Context, userId uuid.UUID, id uuid.UUID) error
	MarkShipped(ctx context.Context, userId uuid.UUID, id uuid.UUID) error
	GetUserReturns(ctx context.Context, userId uuid.UUID) ([]*dto.ReturnResponse, error)
	GetReturn(ctx context.Context, userId uuid.UUID, isAdmin bool, id uuid.UUID) (*dto.ReturnResponse, error)

	ReviewReturn(ctx context.Context, req *dto.ReviewReturnRequest) error
	MarkReceived(ctx context.Context, req *dto.MarkReturnReceivedRequest) error
	ProcessRefund(ctx context.Context, req *dto.ProcessRefundRequest) (*dto.ReturnResponse, error)
	CompleteReturn(ctx context.Context, req *dto.CompleteReturnRequest) error
	GetAllReturns(ctx context.Context, page, limit int) ([]*dto.ReturnResponse, error)
}

type returnService struct {
	uowFactory     unitofwork.RepositoryFactory
	gatewayClient  gateway.Client
	eventPublisher *pktNats.Publisher
	emailService   mailer.IEmailService
	store          config.StoreConfig
	logger         logger.ILogger
}

func NewReturnService(
	uowFactory unitofwork.RepositoryFactory,
	gatewayClient gateway.Client,
	eventPublisher *pktNats.Publisher,
	emailService mailer.IEmailService,
	store config.StoreConfig,
	log logger.ILogger,
) IReturnService {
	return &returnService{
		uowFactory:     uowFactory,
		gatewayClient:  gatewayClient,
		eventPublisher: eventPublisher,
		emailService:   emailService,
		store:          store,
		logger:         log,
	}
}

func (s *returnService) CreateReturn(ctx context.Context, userId uuid.UUID, req *dto.CreateReturnRequest) (*dto.CreateReturnResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	order, err := uow.OrderRepository().FindOne(ctx, specification.ByID{ID: req.OrderId})
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NotFound("order not found")
	}
	if order.UserId != userId {
		return nil, apperror.Authorization("not allowed to return this order")
	}
	if order.Status != entity.OrderStatusDelivered {
		return nil, apperror.Validation("only delivered orders can be returned")
	}
	if order.DeliveredAt == nil {
		return nil, apperror.Validation("order has no delivery date on record")
	}

	windowEnd := order.DeliveredAt.AddDate(0, 0, s.store.ReturnWindowDays)
	if time.Now().After(windowEnd) {
		return nil, apperror.Validation(fmt.Sprintf("return window of %d days has expired", s.store.ReturnWindowDays))
	}

	active, err := uow.ReturnRepository().FindActiveByOrderID(ctx, req.OrderId)
	if err != nil {
		return nil, err
	}
	if active != nil {
		return nil, apperror.Conflict("an active return already exists for this order")
	}

	orderedQty := make(map[uuid.UUID]int, len(order.Items))
	orderedPrice := make(map[uuid.UUID]float64, len(order.Items))
	orderedName := make(map[uuid.UUID]string, len(order.Items))
	for _, item := range order.Items {
		orderedQty[item.ProductId] += item.Quantity
		orderedPrice[item.ProductId] = item.UnitPrice
		orderedName[item.ProductId] = item.Name
	}

	var items []entity.ReturnItem
	for _, ri := range req.Items {
		ordered, ok := orderedQty[ri.ProductId]
		if !ok {
			return nil, apperror.Validation("return item was not part of the order")
		}
		if ri.Quantity > ordered {
			return nil, apperror.Validation(fmt.Sprintf("return quantity exceeds ordered quantity for %s", orderedName[ri.ProductId]))
		}
		items = append(items, entity.ReturnItem{
			Id:         uuid.New(),
			ProductId:  ri.ProductId,
			Name:       orderedName[ri.ProductId],
			Quantity:   ri.Quantity,
			UnitPrice:  orderedPrice[ri.ProductId],
			ReasonCode: ri.ReasonCode,
			Detail:     ri.Detail,
		})
	}

	now := time.Now()
	request := &entity.ReturnRequest{
		Id:          uuid.New(),
		OrderId:     order.Id,
		UserId:      userId,
		Items:       items,
		Status:      entity.ReturnStatusPending,
		RequestedAt: &now,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	// The partial unique index on return_requests(order_id) makes the loser
	// of a concurrent double submission fail here.
	if err := uow.ReturnRepository().Create(ctx, request); err != nil {
		return nil, apperror.Wrap(apperror.KindConflict, "an active return already exists for this order", err)
	}
	if err := uow.OrderRepository().UpdateStatus(ctx, order.Id, entity.OrderStatusReturned); err != nil {
		s.logger.Warn("ReturnService", "Failed to flip order to returned", map[string]interface{}{"order_id": order.Id.String(), "error": err.Error()})
	}

	s.publishReturnEvent(ctx, events.TypeReturnRequested, request, order)

	return &dto.CreateReturnResponse{Id: request.Id, Status: string(request.Status)}, nil
}

func (s *returnService) CancelReturn(ctx context.Context, userId uuid.UUID, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	request, err := uow.ReturnRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return err
	}
	if request == nil {
		return apperror.NotFound("return request not found")
	}
	if request.UserId != userId {
		return apperror.Authorization("not allowed to cancel this return")
	}
	if !transitionAllowed(request.Status, entity.ReturnStatusCancelled) {
		return apperror.Conflict("return can only be cancelled while pending")
	}

	now := time.Now()
	request.Status = entity.ReturnStatusCancelled
	request.CancelledAt = &now
	request.UpdatedAt = now

	if err := uow.ReturnRepository().Update(ctx, request); err != nil {
		return err
	}
	// The order goes back to delivered so a fresh return stays possible
	// inside the window.
	if err := uow.OrderRepository().UpdateStatus(ctx, request.OrderId, entity.OrderStatusDelivered); err != nil {
		s.logger.Warn("ReturnService", "Failed to restore order status after cancellation", map[string]interface{}{"order_id": request.OrderId.String(), "error": err.Error()})
	}

	s.publishReturnEvent(ctx, events.TypeReturnStatusChanged, request, nil)
	return nil
}

func (s *returnService) MarkShipped(ctx context.Context, userId uuid.UUID, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	request, err := uow.ReturnRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return err
	}
	if request == nil {
		return apperror.NotFound("return request not found")
	}
	if request.UserId != userId {
		return apperror.Authorization("not allowed to update this return")
	}
	if !transitionAllowed(request.Status, entity.ReturnStatusShipped) {
		return apperror.Conflict(fmt.Sprintf("cannot mark shipped from status %s", request.Status))
	}

	now := time.Now()
	request.Status = entity.ReturnStatusShipped
	request.ShippedAt = &now
	request.UpdatedAt = now

	if err := uow.ReturnRepository().Update(ctx, request); err != nil {
		return err
	}
	s.publishReturnEvent(ctx, events.TypeReturnStatusChanged, request, nil)
	return nil
}

func (s *returnService) ReviewReturn(ctx context.Context, req *dto.ReviewReturnRequest) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	request, err := uow.ReturnRepository().FindOne(ctx, specification.ByID{ID: req.Id})
	if err != nil {
		return err
	}
	if request == nil {
		return apperror.NotFound("return request not found")
	}

	target := entity.ReturnStatusRejected
	if req.Approve {
		target = entity.ReturnStatusApproved
	}
	if !transitionAllowed(request.Status, target) {
		return apperror.Conflict(fmt.Sprintf("cannot move return from %s to %s", request.Status, target))
	}

	now := time.Now()
	request.Status = target
	request.AdminNotes = req.AdminNotes
	request.UpdatedAt = now
	if req.Approve {
		request.ApprovedAt = &now
	} else {
		request.RejectedAt = &now
	}

	if err := uow.ReturnRepository().Update(ctx, request); err != nil {
		return err
	}
	if target == entity.ReturnStatusRejected {
		if err := uow.OrderRepository().UpdateStatus(ctx, request.OrderId, entity.OrderStatusDelivered); err != nil {
			s.logger.Warn("ReturnService", "Failed to restore order status after rejection", map[string]interface{}{"order_id": request.OrderId.String(), "error": err.Error()})
		}
	}

	s.publishReturnEvent(ctx, events.TypeReturnStatusChanged, request, nil)
	return nil
}

func (s *returnService) MarkReceived(ctx context.Context, req *dto.MarkReturnReceivedRequest) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	request, err := uow.ReturnRepository().FindOne(ctx, specification.ByID{ID: req.Id})
	if err != nil {
		return err
	}
	if request == nil {
		return apperror.NotFound("return request not found")
	}
	if !transitionAllowed(request.Status, entity.ReturnStatusReceived) {
		return apperror.Conflict(fmt.Sprintf("cannot mark received from status %s", request.Status))
	}

	now := time.Now()
	request.Status = entity.ReturnStatusReceived
	request.ReceivedAt = &now
	request.UpdatedAt = now
	if req.AdminNotes != "" {
		request.AdminNotes = req.AdminNotes
	}

	if err := uow.ReturnRepository().Update(ctx, request); err != nil {
		return err
	}
	s.publishReturnEvent(ctx, events.TypeReturnStatusChanged, request, nil)
	return nil
}

// ProcessRefund executes the refund branch picked by the order's payment
// method. Online orders go through the gateway; COD refunds are recorded as
// attested fact with method-specific proof. A refund id already on the
// return means the money moved; any second attempt is a conflict.
func (s *returnService) ProcessRefund(ctx context.Context, req *dto.ProcessRefundRequest) (*dto.ReturnResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	request, err := uow.ReturnRepository().FindOne(ctx, specification.ByID{ID: req.Id})
	if err != nil {
		return nil, err
	}
	if request == nil {
		return nil, apperror.NotFound("return request not found")
	}
	if request.Status != entity.ReturnStatusReceived {
		return nil, apperror.Conflict("refund requires the return to be received first")
	}
	if request.Refund != nil && request.Refund.RefundId != "" {
		return nil, apperror.Conflict("a refund has already been processed for this return")
	}

	order, err := uow.OrderRepository().FindOne(ctx, specification.ByID{ID: request.OrderId})
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NotFound("order for this return no longer exists")
	}

	amount := req.Amount
	if amount == 0 {
		amount = order.GrandTotal
	}
	if amount <= 0 || amount > order.GrandTotal {
		return nil, apperror.Validation("refund amount must be positive and not exceed the order total")
	}

	var refund *entity.RefundInfo
	if order.Payment.Method == entity.PaymentMethodCOD {
		refund, err = buildCodRefund(req, amount)
	} else {
		refund, err = s.executeGatewayRefund(ctx, order, request, amount)
	}
	if err != nil {
		return nil, err
	}

	now := time.Now()
	request.Refund = refund
	request.Status = entity.ReturnStatusRefundProcessed
	request.RefundedAt = &now
	request.UpdatedAt = now
	if req.AdminNotes != "" {
		request.AdminNotes = req.AdminNotes
	}

	if err := uow.ReturnRepository().Update(ctx, request); err != nil {
		// The gateway refund already went through; surface loudly so ops
		// can reconcile by refund id.
		s.logger.Error("ReturnService", "Refund executed but persisting it failed", map[string]interface{}{
			"return_id": request.Id.String(), "refund_id": refund.RefundId, "error": err.Error(),
		})
		return nil, err
	}

	if err := uow.OrderRepository().UpdatePaymentStatus(ctx, order.Id, entity.PaymentStatusRefunded); err != nil {
		s.logger.Warn("ReturnService", "Failed to mark order refunded", map[string]interface{}{"order_id": order.Id.String(), "error": err.Error()})
	}

	s.publishReturnEvent(ctx, events.TypeRefundProcessed, request, order)
	s.sendRefundEmail(ctx, order, amount)

	return toReturnResponse(request), nil
}

// executeGatewayRefund calls the gateway. A timeout or error leaves the
// return untouched, so a retry is safe.
func (s *returnService) executeGatewayRefund(ctx context.Context, order *entity.Order, request *entity.ReturnRequest, amount float64) (*entity.RefundInfo, error) {
	if order.Payment.GatewayPaymentId == "" {
		return nil, apperror.Validation("order has no gateway payment to refund")
	}

	result, err := s.gatewayClient.Refund(ctx, order.Payment.GatewayPaymentId, amount, map[string]interface{}{
		"return_id": request.Id.String(),
		"order_id":  order.Id.String(),
	})
	if err != nil {
		return nil, apperror.Upstream("gateway refund failed", err)
	}

	now := time.Now()
	return &entity.RefundInfo{
		RefundId:    result.RefundId,
		Amount:      result.Amount,
		Status:      result.Status,
		Reason:      "return refund",
		Method:      entity.RefundMethodGateway,
		ProcessedAt: &now,
	}, nil
}

// buildCodRefund validates the attested proof fields per refund method and
// synthesizes a refund id. No gateway call is made.
func buildCodRefund(req *dto.ProcessRefundRequest, amount float64) (*entity.RefundInfo, error) {
	method := entity.RefundMethod(req.Method)
	switch method {
	case entity.RefundMethodBankTransfer:
		if req.TransactionId == "" || req.BankName == "" {
			return nil, apperror.Validation("bank transfer refund requires transaction id and bank name")
		}
	case entity.RefundMethodUpi:
		if req.UpiId == "" || req.TransactionId == "" {
			return nil, apperror.Validation("upi refund requires upi id and transaction id")
		}
	case entity.RefundMethodCash:
		// No proof fields beyond the admin's word.
	default:
		return nil, apperror.Validation("cod refund requires a method: bank_transfer, upi or cash")
	}

	now := time.Now()
	return &entity.RefundInfo{
		RefundId:      "codrf_" + uuid.NewString(),
		Amount:        amount,
		Status:        "processed",
		Reason:        "return refund",
		Method:        method,
		TransactionId: req.TransactionId,
		BankName:      req.BankName,
		UpiId:         req.UpiId,
		ProcessedAt:   &now,
	}, nil
}

func (s *returnService) CompleteReturn(ctx context.Context, req *dto.CompleteReturnRequest) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	request, err := uow.ReturnRepository().FindOne(ctx, specification.ByID{ID: req.Id})
	if err != nil {
		return err
	}
	if request == nil {
		return apperror.NotFound("return request not found")
	}
	if !transitionAllowed(request.Status, entity.ReturnStatusCompleted) {
		return apperror.Conflict("return can only be completed after the refund is processed")
	}

	now := time.Now()
	request.Status = entity.ReturnStatusCompleted
	request.CompletedAt = &now
	request.UpdatedAt = now
	if req.AdminNotes != "" {
		request.AdminNotes = req.AdminNotes
	}

	if err := uow.ReturnRepository().Update(ctx, request); err != nil {
		return err
	}

	// Returned stock goes back on the shelf once the return closes out.
	for _, item := range request.Items {
		if err := uow.ProductRepository().IncreaseStock(ctx, item.ProductId, item.Quantity); err != nil {
			s.logger.Warn("ReturnService", "Failed to restock returned item", map[string]interface{}{"product_id": item.ProductId.String(), "error": err.Error()})
		}
	}

	s.publishReturnEvent(ctx, events.TypeReturnStatusChanged, request, nil)
	return nil
}

func (s *returnService) GetUserReturns(ctx context.Context, userId uuid.UUID) ([]*dto.ReturnResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	requests, err := uow.ReturnRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}
	return toReturnResponses(requests), nil
}

func (s *returnService) GetAllReturns(ctx context.Context, page, limit int) ([]*dto.ReturnResponse, error) {
	if limit <= 0 {
		limit = 20
	}
	if page <= 0 {
		page = 1
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	requests, err := uow.ReturnRepository().FindAll(ctx,
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: limit, Offset: (page - 1) * limit},
	)
	if err != nil {
		return nil, err
	}
	return toReturnResponses(requests), nil
}

func (s *returnService) GetReturn(ctx context.Context, userId uuid.UUID, isAdmin bool, id uuid.UUID) (*dto.ReturnResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	request, err := uow.ReturnRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if request == nil {
		return nil, apperror.NotFound("return request not found")
	}
	if !isAdmin && request.UserId != userId {
		return nil, apperror.Authorization("not allowed to view this return")
	}
	return toReturnResponse(request), nil
}

func (s *returnService) publishReturnEvent(ctx context.Context, eventType string, request *entity.ReturnRequest, order *entity.Order) {
	if s.eventPublisher == nil {
		return
	}

	data := map[string]interface{}{
		"user_id":     request.UserId.String(),
		"entity_type": "return",
		"entity_id":   request.Id.String(),
		"return_id":   request.Id.String(),
		"order_id":    request.OrderId.String(),
		"status":      string(request.Status),
	}
	if request.Refund != nil {
		data["amount"] = request.Refund.Amount
	} else if order != nil {
		data["amount"] = order.GrandTotal
	}

	evt := events.BaseEvent{Type: eventType, Data: data, OccurredAt: time.Now()}
	if err := s.eventPublisher.Publish(ctx, evt); err != nil {
		s.logger.Warn("ReturnService", "Event publish failed", map[string]interface{}{"type": eventType, "error": err.Error()})
	}
}

func (s *returnService) sendRefundEmail(ctx context.Context, order *entity.Order, amount float64) {
	if s.emailService == nil {
		return
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: order.UserId})
	if err != nil || user == nil {
		return
	}

	if err := s.emailService.SendRefundProcessed(user.Email, user.FullName, order.Id.String(), amount); err != nil {
		s.logger.Warn("ReturnService", "Refund email failed", map[string]interface{}{"order_id": order.Id.String(), "error": err.Error()})
	}
}

func toReturnResponses(requests []*entity.ReturnRequest) []*dto.ReturnResponse {
	res := make([]*dto.ReturnResponse, 0, len(requests))
	for _, r := range requests {
		res = append(res, toReturnResponse(r))
	}
	return res
}

func toReturnResponse(r *entity.ReturnRequest) *dto.ReturnResponse {
	items := make([]dto.ReturnItemResponse, 0, len(r.Items))
	for _, item := range r.Items {
		items = append(items, dto.ReturnItemResponse{
			ProductId:  item.ProductId,
			Name:       item.Name,
			Quantity:   item.Quantity,
			UnitPrice:  item.UnitPrice,
			ReasonCode: item.ReasonCode,
			Detail:     item.Detail,
		})
	}

	res := &dto.ReturnResponse{
		Id:            r.Id,
		OrderId:       r.OrderId,
		Items:         items,
		Status:        string(r.Status),
		ReturnAddress: r.ReturnAddress,
		AdminNotes:    r.AdminNotes,
		RequestedAt:   r.RequestedAt,
		ApprovedAt:    r.ApprovedAt,
		ReceivedAt:    r.ReceivedAt,
		RefundedAt:    r.RefundedAt,
		CompletedAt:   r.CompletedAt,
		CreatedAt:     r.CreatedAt,
	}
	if r.Refund != nil {
		res.Refund = &dto.RefundInfoResponse{
			RefundId:      r.Refund.RefundId,
			Amount:        r.Refund.Amount,
			Status:        r.Refund.Status,
			Method:        string(r.Refund.Method),
			TransactionId: r.Refund.TransactionId,
			BankName:      r.Refund.BankName,
			UpiId:         r.Refund.UpiId,
			ProcessedAt:   r.Refund.ProcessedAt,
		}
	}
	return res
}
