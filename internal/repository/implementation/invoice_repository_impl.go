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

type invoiceRepositoryImpl struct {
	db *gorm.DB
}

func NewInvoiceRepository(db *gorm.DB) contract.InvoiceRepository {
	return &invoiceRepositoryImpl{db: db}
}

func (r *invoiceRepositoryImpl) Create(ctx context.Context, invoice *entity.Invoice) error {
	return r.db.WithContext(ctx).Create(mapInvoiceToModel(invoice)).Error
}

func (r *invoiceRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Invoice, error) {
	var m model.Invoice
	query := r.db.WithContext(ctx).Preload("Lines")

	for _, spec := range specs {
		query = spec.Apply(query)
	}

	if err := query.First(&m).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}

	return mapInvoiceToEntity(&m), nil
}

func (r *invoiceRepositoryImpl) FindByOrderID(ctx context.Context, orderId uuid.UUID) (*entity.Invoice, error) {
	return r.FindOne(ctx, specification.Filter("order_id", orderId))
}

func (r *invoiceRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Invoice, error) {
	var models []*model.Invoice
	query := r.db.WithContext(ctx).Preload("Lines")

	for _, spec := range specs {
		query = spec.Apply(query)
	}

	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}

	var invoices []*entity.Invoice
	for _, m := range models {
		invoices = append(invoices, mapInvoiceToEntity(m))
	}
	return invoices, nil
}

func (r *invoiceRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&model.Invoice{})

	for _, spec := range specs {
		query = spec.Apply(query)
	}

	err := query.Count(&count).Error
	return count, err
}

func (r *invoiceRepositoryImpl) UpdatePaymentStatus(ctx context.Context, id uuid.UUID, status entity.PaymentStatus) error {
	return r.db.WithContext(ctx).Model(&model.Invoice{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"payment_status": string(status),
			"updated_at":     time.Now(),
		}).Error
}

func mapInvoiceToModel(inv *entity.Invoice) *model.Invoice {
	m := &model.Invoice{
		ID:             inv.Id,
		Number:         inv.Number,
		OrderID:        inv.OrderId,
		UserID:         inv.UserId,
		BillingState:   inv.BillingState,
		ShippingState:  inv.ShippingState,
		Subtotal:       inv.Subtotal,
		CgstTotal:      inv.CgstTotal,
		SgstTotal:      inv.SgstTotal,
		IgstTotal:      inv.IgstTotal,
		TaxTotal:       inv.TaxTotal,
		ShippingCharge: inv.ShippingCharge,
		Discount:       inv.Discount,
		GrandTotal:     inv.GrandTotal,
		AmountInWords:  inv.AmountInWords,
		PaymentStatus:  string(inv.PaymentStatus),
		InvoiceDate:    inv.InvoiceDate,
		DueDate:        inv.DueDate,
		CreatedAt:      inv.CreatedAt,
		UpdatedAt:      inv.UpdatedAt,
	}

	for _, line := range inv.Lines {
		m.Lines = append(m.Lines, model.InvoiceLine{
			ID:        line.Id,
			InvoiceID: inv.Id,
			ProductID: line.ProductId,
			Name:      line.Name,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
			LineTotal: line.LineTotal,
			GstRate:   line.GstRate,
			GstAmount: line.GstAmount,
			Cgst:      line.Cgst,
			Sgst:      line.Sgst,
			Igst:      line.Igst,
		})
	}
	return m
}

func mapInvoiceToEntity(m *model.Invoice) *entity.Invoice {
	inv := &entity.Invoice{
		Id:             m.ID,
		Number:         m.Number,
		OrderId:        m.OrderID,
		UserId:         m.UserID,
		BillingState:   m.BillingState,
		ShippingState:  m.ShippingState,
		Subtotal:       m.Subtotal,
		CgstTotal:      m.CgstTotal,
		SgstTotal:      m.SgstTotal,
		IgstTotal:      m.IgstTotal,
		TaxTotal:       m.TaxTotal,
		ShippingCharge: m.ShippingCharge,
		Discount:       m.Discount,
		GrandTotal:     m.GrandTotal,
		AmountInWords:  m.AmountInWords,
		PaymentStatus:  entity.PaymentStatus(m.PaymentStatus),
		InvoiceDate:    m.InvoiceDate,
		DueDate:        m.DueDate,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}

	for _, line := range m.Lines {
		inv.Lines = append(inv.Lines, entity.InvoiceLine{
			Id:        line.ID,
			ProductId: line.ProductID,
			Name:      line.Name,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
			LineTotal: line.LineTotal,
			GstRate:   line.GstRate,
			GstAmount: line.GstAmount,
			Cgst:      line.Cgst,
			Sgst:      line.Sgst,
			Igst:      line.Igst,
		})
	}
	return inv
}
