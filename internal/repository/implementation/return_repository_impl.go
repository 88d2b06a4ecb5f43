package implementation

import (
	"context"

	"storefront-be/internal/entity"
	"storefront-be/internal/model"
	"storefront-be/internal/repository/contract"
	"storefront-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type returnRepositoryImpl struct {
	db *gorm.DB
}

func NewReturnRepository(db *gorm.DB) contract.ReturnRepository {
	return &returnRepositoryImpl{db: db}
}

func (r *returnRepositoryImpl) Create(ctx context.Context, request *entity.ReturnRequest) error {
	return r.db.WithContext(ctx).Create(mapReturnToModel(request)).Error
}

func (r *returnRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ReturnRequest, error) {
	var m model.ReturnRequest
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

	return mapReturnToEntity(&m), nil
}

func (r *returnRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ReturnRequest, error) {
	var models []*model.ReturnRequest
	query := r.db.WithContext(ctx).Preload("Items")

	for _, spec := range specs {
		query = spec.Apply(query)
	}

	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}

	var requests []*entity.ReturnRequest
	for _, m := range models {
		requests = append(requests, mapReturnToEntity(m))
	}
	return requests, nil
}

func (r *returnRepositoryImpl) FindActiveByOrderID(ctx context.Context, orderId uuid.UUID) (*entity.ReturnRequest, error) {
	return r.FindOne(ctx,
		specification.Filter("order_id", orderId),
		activeReturnSpec{},
	)
}

// activeReturnSpec matches returns still blocking a new return on the order.
type activeReturnSpec struct{}

func (activeReturnSpec) Apply(db *gorm.DB) *gorm.DB {
	terminal := entity.TerminalReturnStatuses()
	statuses := make([]string, len(terminal))
	for i, st := range terminal {
		statuses[i] = string(st)
	}
	return db.Where("status NOT IN ?", statuses)
}

func (r *returnRepositoryImpl) Update(ctx context.Context, request *entity.ReturnRequest) error {
	m := mapReturnToModel(request)
	return r.db.WithContext(ctx).Model(&model.ReturnRequest{}).
		Where("id = ?", request.Id).
		Updates(map[string]interface{}{
			"status":                m.Status,
			"admin_notes":           m.AdminNotes,
			"refund_id":             m.RefundID,
			"refund_amount":         m.RefundAmount,
			"refund_status":         m.RefundStatus,
			"refund_reason":         m.RefundReason,
			"refund_method":         m.RefundMethod,
			"refund_transaction_id": m.RefundTransactionID,
			"refund_bank_name":      m.RefundBankName,
			"refund_upi_id":         m.RefundUpiID,
			"refund_processed_at":   m.RefundProcessedAt,
			"approved_at":           m.ApprovedAt,
			"rejected_at":           m.RejectedAt,
			"shipped_at":            m.ShippedAt,
			"received_at":           m.ReceivedAt,
			"refunded_at":           m.RefundedAt,
			"completed_at":          m.CompletedAt,
			"cancelled_at":          m.CancelledAt,
		}).Error
}

func mapReturnToModel(req *entity.ReturnRequest) *model.ReturnRequest {
	m := &model.ReturnRequest{
		ID:            req.Id,
		OrderID:       req.OrderId,
		UserID:        req.UserId,
		Status:        string(req.Status),
		ReturnAddress: req.ReturnAddress,
		AdminNotes:    req.AdminNotes,
		RequestedAt:   req.RequestedAt,
		ApprovedAt:    req.ApprovedAt,
		RejectedAt:    req.RejectedAt,
		ShippedAt:     req.ShippedAt,
		ReceivedAt:    req.ReceivedAt,
		RefundedAt:    req.RefundedAt,
		CompletedAt:   req.CompletedAt,
		CancelledAt:   req.CancelledAt,
		CreatedAt:     req.CreatedAt,
		UpdatedAt:     req.UpdatedAt,
	}

	if req.Refund != nil {
		m.RefundID = req.Refund.RefundId
		m.RefundAmount = req.Refund.Amount
		m.RefundStatus = req.Refund.Status
		m.RefundReason = req.Refund.Reason
		m.RefundMethod = string(req.Refund.Method)
		m.RefundTransactionID = req.Refund.TransactionId
		m.RefundBankName = req.Refund.BankName
		m.RefundUpiID = req.Refund.UpiId
		m.RefundProcessedAt = req.Refund.ProcessedAt
	}

	for _, item := range req.Items {
		m.Items = append(m.Items, model.ReturnItem{
			ID:              item.Id,
			ReturnRequestID: req.Id,
			ProductID:       item.ProductId,
			Name:            item.Name,
			Quantity:        item.Quantity,
			UnitPrice:       item.UnitPrice,
			ReasonCode:      item.ReasonCode,
			Detail:          item.Detail,
		})
	}
	return m
}

func mapReturnToEntity(m *model.ReturnRequest) *entity.ReturnRequest {
	req := &entity.ReturnRequest{
		Id:            m.ID,
		OrderId:       m.OrderID,
		UserId:        m.UserID,
		Status:        entity.ReturnStatus(m.Status),
		ReturnAddress: m.ReturnAddress,
		AdminNotes:    m.AdminNotes,
		RequestedAt:   m.RequestedAt,
		ApprovedAt:    m.ApprovedAt,
		RejectedAt:    m.RejectedAt,
		ShippedAt:     m.ShippedAt,
		ReceivedAt:    m.ReceivedAt,
		RefundedAt:    m.RefundedAt,
		CompletedAt:   m.CompletedAt,
		CancelledAt:   m.CancelledAt,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}

	if m.RefundID != "" || m.RefundMethod != "" {
		req.Refund = &entity.RefundInfo{
			RefundId:      m.RefundID,
			Amount:        m.RefundAmount,
			Status:        m.RefundStatus,
			Reason:        m.RefundReason,
			Method:        entity.RefundMethod(m.RefundMethod),
			TransactionId: m.RefundTransactionID,
			BankName:      m.RefundBankName,
			UpiId:         m.RefundUpiID,
			ProcessedAt:   m.RefundProcessedAt,
		}
	}

	for _, item := range m.Items {
		req.Items = append(req.Items, entity.ReturnItem{
			Id:         item.ID,
			ProductId:  item.ProductID,
			Name:       item.Name,
			Quantity:   item.Quantity,
			UnitPrice:  item.UnitPrice,
			ReasonCode: item.ReasonCode,
			Detail:     item.Detail,
		})
	}
	return req
}
