package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"storefront-be/internal/entity"
	"storefront-be/internal/pkg/apperror"
	"storefront-be/internal/repository/specification"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitGst(t *testing.T) {
	cgst, sgst, igst := splitGst(180, true)
	assert.Equal(t, 90.0, cgst)
	assert.Equal(t, 90.0, sgst)
	assert.Equal(t, 0.0, igst)

	cgst, sgst, igst = splitGst(180, false)
	assert.Equal(t, 0.0, cgst)
	assert.Equal(t, 0.0, sgst)
	assert.Equal(t, 180.0, igst)
}

func deliveredOrder(userId uuid.UUID, state string) (*entity.Order, *entity.Product) {
	product := &entity.Product{
		Id:      uuid.New(),
		Name:    "Ceramic Mug",
		Price:   500,
		GstRate: 18,
		Stock:   10,
		Active:  true,
	}
	order := &entity.Order{
		Id:     uuid.New(),
		UserId: userId,
		Items: []entity.OrderItem{
			{Id: uuid.New(), ProductId: product.Id, Name: product.Name, Quantity: 2, UnitPrice: 500},
		},
		Address: entity.ShippingAddress{
			FullName: "Asha Rao",
			State:    state,
			Pincode:  "400001",
		},
		Payment: entity.PaymentInfo{
			Method: entity.PaymentMethodOnline,
			Status: entity.PaymentStatusPaid,
		},
		ItemsTotal:     1000,
		ShippingCharge: 50,
		GrandTotal:     1230,
		Status:         entity.OrderStatusDelivered,
	}
	return order, product
}

func TestBuildForOrder(t *testing.T) {
	userId := uuid.New()

	newService := func(order *entity.Order, product *entity.Product) (IInvoiceService, *fakeUow) {
		uow := newFakeUow()
		uow.orders.findOneFn = func(ctx context.Context, specs ...specification.Specification) (*entity.Order, error) {
			return order, nil
		}
		uow.products.findAllFn = func(ctx context.Context, specs ...specification.Specification) ([]*entity.Product, error) {
			return []*entity.Product{product}, nil
		}
		return NewInvoiceService(&fakeFactory{uow: uow}, testStoreConfig(), stubLogger{}), uow
	}

	t.Run("intra-state order splits GST evenly", func(t *testing.T) {
		order, product := deliveredOrder(userId, "Maharashtra")
		svc, _ := newService(order, product)

		invoice, err := svc.BuildForOrder(context.Background(), order.Id)
		require.NoError(t, err)

		// 1000 at 18% = 180 GST, state matches the store's home state.
		assert.Equal(t, 90.0, invoice.CgstTotal)
		assert.Equal(t, 90.0, invoice.SgstTotal)
		assert.Equal(t, 0.0, invoice.IgstTotal)
		assert.Equal(t, 180.0, invoice.TaxTotal)
		assert.Equal(t, 1230.0, invoice.GrandTotal)

		require.Len(t, invoice.Lines, 1)
		assert.Equal(t, 90.0, invoice.Lines[0].Cgst)
		assert.Equal(t, 90.0, invoice.Lines[0].Sgst)
	})

	t.Run("inter-state order charges IGST", func(t *testing.T) {
		order, product := deliveredOrder(userId, "Karnataka")
		svc, _ := newService(order, product)

		invoice, err := svc.BuildForOrder(context.Background(), order.Id)
		require.NoError(t, err)

		assert.Equal(t, 0.0, invoice.CgstTotal)
		assert.Equal(t, 0.0, invoice.SgstTotal)
		assert.Equal(t, 180.0, invoice.IgstTotal)
	})

	t.Run("state comparison ignores case and spacing", func(t *testing.T) {
		order, product := deliveredOrder(userId, "  maharashtra ")
		svc, _ := newService(order, product)

		invoice, err := svc.BuildForOrder(context.Background(), order.Id)
		require.NoError(t, err)
		assert.Equal(t, 90.0, invoice.CgstTotal)
	})

	t.Run("sequential invoice number and due date", func(t *testing.T) {
		order, product := deliveredOrder(userId, "Maharashtra")
		svc, uow := newService(order, product)
		uow.invoices.countFn = func(ctx context.Context, specs ...specification.Specification) (int64, error) {
			return 41, nil
		}

		invoice, err := svc.BuildForOrder(context.Background(), order.Id)
		require.NoError(t, err)

		want := fmt.Sprintf("INV-%s-000042", time.Now().Format("2006"))
		assert.Equal(t, want, invoice.Number)

		wantDue := invoice.InvoiceDate.AddDate(0, 0, 30)
		assert.WithinDuration(t, wantDue, invoice.DueDate, time.Second)
		assert.Equal(t, "One Thousand Two Hundred Thirty Rupees Only", invoice.AmountInWords)
	})

	t.Run("existing invoice is returned untouched", func(t *testing.T) {
		order, product := deliveredOrder(userId, "Maharashtra")
		svc, uow := newService(order, product)

		existing := &entity.Invoice{Id: uuid.New(), Number: "INV-2026-000007", OrderId: order.Id}
		uow.invoices.findByOrderFn = func(ctx context.Context, orderId uuid.UUID) (*entity.Invoice, error) {
			return existing, nil
		}

		invoice, err := svc.BuildForOrder(context.Background(), order.Id)
		require.NoError(t, err)
		assert.Equal(t, existing.Number, invoice.Number)
		assert.Empty(t, uow.invoices.created)
	})

	t.Run("missing order is not found", func(t *testing.T) {
		uow := newFakeUow()
		svc := NewInvoiceService(&fakeFactory{uow: uow}, testStoreConfig(), stubLogger{})

		_, err := svc.BuildForOrder(context.Background(), uuid.New())
		require.Error(t, err)
		assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
	})

	t.Run("product without a rate falls back to the store default", func(t *testing.T) {
		order, product := deliveredOrder(userId, "Maharashtra")
		product.GstRate = 0
		svc, _ := newService(order, product)

		invoice, err := svc.BuildForOrder(context.Background(), order.Id)
		require.NoError(t, err)
		assert.Equal(t, 18.0, invoice.Lines[0].GstRate)
	})
}

func TestGetInvoiceByOrder(t *testing.T) {
	owner := uuid.New()
	stranger := uuid.New()
	orderId := uuid.New()

	uow := newFakeUow()
	uow.invoices.findByOrderFn = func(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
		return &entity.Invoice{Id: uuid.New(), OrderId: orderId, UserId: owner, Number: "INV-2026-000001"}, nil
	}
	svc := NewInvoiceService(&fakeFactory{uow: uow}, testStoreConfig(), stubLogger{})

	t.Run("owner can read", func(t *testing.T) {
		res, err := svc.GetInvoiceByOrder(context.Background(), owner, false, orderId)
		require.NoError(t, err)
		assert.Equal(t, "INV-2026-000001", res.Number)
	})

	t.Run("stranger is rejected", func(t *testing.T) {
		_, err := svc.GetInvoiceByOrder(context.Background(), stranger, false, orderId)
		require.Error(t, err)
		assert.True(t, apperror.IsKind(err, apperror.KindAuthorization))
	})

	t.Run("admin bypasses ownership", func(t *testing.T) {
		_, err := svc.GetInvoiceByOrder(context.Background(), stranger, true, orderId)
		require.NoError(t, err)
	})
}
