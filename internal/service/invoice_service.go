package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"storefront-be/internal/config"
	"storefront-be/internal/dto"
	"storefront-be/internal/entity"
	"storefront-be/internal/pkg/apperror"
	"storefront-be/internal/pkg/logger"
	"storefront-be/internal/pkg/numwords"
	"storefront-be/internal/repository/specification"
	"storefront-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type IInvoiceService interface {
	// BuildForOrder creates the invoice for an order. It is a no-op
	// returning the existing invoice when one already exists, so the
	// best-effort pipeline tail can be retried safely.
	BuildForOrder(ctx context.Context, orderId uuid.UUID) (*entity.Invoice, error)

	GetInvoiceByOrder(ctx context.Context, userId uuid.UUID, isAdmin bool, orderId uuid.UUID) (*dto.InvoiceResponse, error)
	GetInvoices(ctx context.Context, page, limit int) ([]*dto.InvoiceResponse, error)
	UpdatePaymentStatus(ctx context.Context, req *dto.UpdateInvoicePaymentStatusRequest) error
}

type invoiceService struct {
	uowFactory unitofwork.RepositoryFactory
	store      config.StoreConfig
	logger     logger.ILogger
}

func NewInvoiceService(uowFactory unitofwork.RepositoryFactory, store config.StoreConfig, log logger.ILogger) IInvoiceService {
	return &invoiceService{
		uowFactory: uowFactory,
		store:      store,
		logger:     log,
	}
}

// splitGst divides a line's GST between CGST/SGST (intra-state, even halves)
// and IGST (inter-state, full amount).
func splitGst(gstAmount float64, intraState bool) (cgst, sgst, igst float64) {
	if intraState {
		return gstAmount / 2, gstAmount / 2, 0
	}
	return 0, 0, gstAmount
}

func (s *invoiceService) BuildForOrder(ctx context.Context, orderId uuid.UUID) (*entity.Invoice, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	existing, err := uow.InvoiceRepository().FindByOrderID(ctx, orderId)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	order, err := uow.OrderRepository().FindOne(ctx, specification.ByID{ID: orderId})
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NotFound("order not found")
	}

	gstRates, err := s.gstRatesFor(ctx, order.Items)
	if err != nil {
		return nil, err
	}

	billingState := s.store.HomeState
	shippingState := order.Address.State
	intraState := strings.EqualFold(strings.TrimSpace(billingState), strings.TrimSpace(shippingState))

	var lines []entity.InvoiceLine
	var subtotal, cgstTotal, sgstTotal, igstTotal float64
	for _, item := range order.Items {
		lineTotal := item.UnitPrice * float64(item.Quantity)
		rate := gstRates[item.ProductId]
		gstAmount := lineTotal * rate / 100
		cgst, sgst, igst := splitGst(gstAmount, intraState)

		lines = append(lines, entity.InvoiceLine{
			Id:        uuid.New(),
			ProductId: item.ProductId,
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			LineTotal: lineTotal,
			GstRate:   rate,
			GstAmount: gstAmount,
			Cgst:      cgst,
			Sgst:      sgst,
			Igst:      igst,
		})

		subtotal += lineTotal
		cgstTotal += cgst
		sgstTotal += sgst
		igstTotal += igst
	}

	taxTotal := cgstTotal + sgstTotal + igstTotal
	grandTotal := subtotal + taxTotal + order.ShippingCharge - order.Discount

	number, err := s.nextInvoiceNumber(ctx, uow)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	invoice := &entity.Invoice{
		Id:             uuid.New(),
		Number:         number,
		OrderId:        order.Id,
		UserId:         order.UserId,
		Lines:          lines,
		BillingState:   billingState,
		ShippingState:  shippingState,
		Subtotal:       subtotal,
		CgstTotal:      cgstTotal,
		SgstTotal:      sgstTotal,
		IgstTotal:      igstTotal,
		TaxTotal:       taxTotal,
		ShippingCharge: order.ShippingCharge,
		Discount:       order.Discount,
		GrandTotal:     grandTotal,
		AmountInWords:  numwords.RupeesInWords(grandTotal),
		PaymentStatus:  order.Payment.Status,
		InvoiceDate:    now,
		DueDate:        now.AddDate(0, 0, s.store.InvoiceDueDays),
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := uow.InvoiceRepository().Create(ctx, invoice); err != nil {
		return nil, err
	}
	return invoice, nil
}

// gstRatesFor resolves the GST rate per product, defaulting to the
// configured store rate when a product is missing or carries no rate.
func (s *invoiceService) gstRatesFor(ctx context.Context, items []entity.OrderItem) (map[uuid.UUID]float64, error) {
	ids := make([]uuid.UUID, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ProductId)
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	products, err := uow.ProductRepository().FindAll(ctx, specification.ByIDs{IDs: ids})
	if err != nil {
		return nil, err
	}

	rates := make(map[uuid.UUID]float64, len(items))
	for _, item := range items {
		rates[item.ProductId] = s.store.DefaultGstRate
	}
	for _, p := range products {
		if p.GstRate > 0 {
			rates[p.Id] = p.GstRate
		}
	}
	return rates, nil
}

func (s *invoiceService) nextInvoiceNumber(ctx context.Context, uow unitofwork.UnitOfWork) (string, error) {
	count, err := uow.InvoiceRepository().Count(ctx)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("INV-%s-%06d", time.Now().Format("2006"), count+1), nil
}

func (s *invoiceService) GetInvoiceByOrder(ctx context.Context, userId uuid.UUID, isAdmin bool, orderId uuid.UUID) (*dto.InvoiceResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	invoice, err := uow.InvoiceRepository().FindByOrderID(ctx, orderId)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, apperror.NotFound("invoice not found")
	}
	if !isAdmin && invoice.UserId != userId {
		return nil, apperror.Authorization("not allowed to view this invoice")
	}

	return toInvoiceResponse(invoice), nil
}

func (s *invoiceService) GetInvoices(ctx context.Context, page, limit int) ([]*dto.InvoiceResponse, error) {
	if limit <= 0 {
		limit = 20
	}
	if page <= 0 {
		page = 1
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	invoices, err := uow.InvoiceRepository().FindAll(ctx,
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: limit, Offset: (page - 1) * limit},
	)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.InvoiceResponse, 0, len(invoices))
	for _, inv := range invoices {
		res = append(res, toInvoiceResponse(inv))
	}
	return res, nil
}

func (s *invoiceService) UpdatePaymentStatus(ctx context.Context, req *dto.UpdateInvoicePaymentStatusRequest) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	invoice, err := uow.InvoiceRepository().FindOne(ctx, specification.ByID{ID: req.Id})
	if err != nil {
		return err
	}
	if invoice == nil {
		return apperror.NotFound("invoice not found")
	}

	return uow.InvoiceRepository().UpdatePaymentStatus(ctx, req.Id, entity.PaymentStatus(req.PaymentStatus))
}

func toInvoiceResponse(inv *entity.Invoice) *dto.InvoiceResponse {
	lines := make([]dto.InvoiceLineResponse, 0, len(inv.Lines))
	for _, l := range inv.Lines {
		lines = append(lines, dto.InvoiceLineResponse{
			ProductId: l.ProductId,
			Name:      l.Name,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
			LineTotal: l.LineTotal,
			GstRate:   l.GstRate,
			GstAmount: l.GstAmount,
			Cgst:      l.Cgst,
			Sgst:      l.Sgst,
			Igst:      l.Igst,
		})
	}
	return &dto.InvoiceResponse{
		Id:             inv.Id,
		Number:         inv.Number,
		OrderId:        inv.OrderId,
		Lines:          lines,
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
	}
}
