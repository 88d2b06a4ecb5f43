package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"storefront-be/internal/dto"
	"storefront-be/internal/entity"
	"storefront-be/internal/pkg/apperror"
	"storefront-be/internal/repository/specification"
	"storefront-be/pkg/gateway"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransitionAllowed(t *testing.T) {
	tests := []struct {
		from string
		to   entity.ReturnStatus
		want bool
	}{
		{"pending", entity.ReturnStatusApproved, true},
		{"pending", entity.ReturnStatusRejected, true},
		{"pending", entity.ReturnStatusCancelled, true},
		{"pending", entity.ReturnStatusReceived, false},
		{"approved", entity.ReturnStatusShipped, true},
		// Admin may record receipt without the customer marking shipment.
		{"approved", entity.ReturnStatusReceived, true},
		{"approved", entity.ReturnStatusCancelled, false},
		{"return_shipped", entity.ReturnStatusReceived, true},
		{"return_received", entity.ReturnStatusRefundProcessed, true},
		{"return_received", entity.ReturnStatusCompleted, false},
		{"refund_processed", entity.ReturnStatusCompleted, true},
		{"completed", entity.ReturnStatusRefundProcessed, false},
		{"rejected", entity.ReturnStatusApproved, false},
		{"cancelled", entity.ReturnStatusApproved, false},
	}

	for _, tt := range tests {
		got := transitionAllowed(entity.ReturnStatus(tt.from), tt.to)
		assert.Equal(t, tt.want, got, "%s -> %s", tt.from, tt.to)
	}
}

type returnEnv struct {
	uow     *fakeUow
	gateway *fakeGateway
	svc     IReturnService
}

func newReturnEnv(t *testing.T) *returnEnv {
	t.Helper()
	uow := newFakeUow()
	gw := &fakeGateway{}
	svc := NewReturnService(&fakeFactory{uow: uow}, gw, nil, nil, testStoreConfig(), stubLogger{})
	return &returnEnv{uow: uow, gateway: gw, svc: svc}
}

func deliveredOrderFor(userId uuid.UUID, daysAgo int) *entity.Order {
	delivered := time.Now().AddDate(0, 0, -daysAgo)
	productId := uuid.New()
	return &entity.Order{
		Id:     uuid.New(),
		UserId: userId,
		Items: []entity.OrderItem{
			{Id: uuid.New(), ProductId: productId, Name: "Steel Bottle", Quantity: 2, UnitPrice: 500},
		},
		Payment: entity.PaymentInfo{
			GatewayPaymentId: "pay_abc",
			Method:           entity.PaymentMethodOnline,
			Status:           entity.PaymentStatusPaid,
		},
		GrandTotal:  1180,
		Status:      entity.OrderStatusDelivered,
		DeliveredAt: &delivered,
	}
}

func TestCreateReturn(t *testing.T) {
	userId := uuid.New()

	setup := func(env *returnEnv, order *entity.Order) {
		env.uow.orders.findOneFn = func(ctx context.Context, specs ...specification.Specification) (*entity.Order, error) {
			return order, nil
		}
	}

	t.Run("inside the window succeeds", func(t *testing.T) {
		env := newReturnEnv(t)
		order := deliveredOrderFor(userId, 3)
		setup(env, order)

		res, err := env.svc.CreateReturn(context.Background(), userId, &dto.CreateReturnRequest{
			OrderId: order.Id,
			Items: []dto.ReturnItemRequest{
				{ProductId: order.Items[0].ProductId, Quantity: 1, ReasonCode: "damaged"},
			},
		})
		require.NoError(t, err)
		assert.Equal(t, string(entity.ReturnStatusPending), res.Status)

		require.Len(t, env.uow.returns.created, 1)
		created := env.uow.returns.created[0]
		assert.Equal(t, 500.0, created.Items[0].UnitPrice)
		assert.NotNil(t, created.RequestedAt)
		assert.Equal(t, []entity.OrderStatus{entity.OrderStatusReturned}, env.uow.orders.statusUpdates)
	})

	t.Run("window expired", func(t *testing.T) {
		env := newReturnEnv(t)
		order := deliveredOrderFor(userId, 8)
		setup(env, order)

		_, err := env.svc.CreateReturn(context.Background(), userId, &dto.CreateReturnRequest{
			OrderId: order.Id,
			Items:   []dto.ReturnItemRequest{{ProductId: order.Items[0].ProductId, Quantity: 1, ReasonCode: "damaged"}},
		})
		require.Error(t, err)
		assert.True(t, apperror.IsKind(err, apperror.KindValidation))
	})

	t.Run("undelivered order", func(t *testing.T) {
		env := newReturnEnv(t)
		order := deliveredOrderFor(userId, 3)
		order.Status = entity.OrderStatusShipped
		setup(env, order)

		_, err := env.svc.CreateReturn(context.Background(), userId, &dto.CreateReturnRequest{
			OrderId: order.Id,
			Items:   []dto.ReturnItemRequest{{ProductId: order.Items[0].ProductId, Quantity: 1, ReasonCode: "damaged"}},
		})
		require.Error(t, err)
		assert.True(t, apperror.IsKind(err, apperror.KindValidation))
	})

	t.Run("active return already open", func(t *testing.T) {
		env := newReturnEnv(t)
		order := deliveredOrderFor(userId, 3)
		setup(env, order)
		env.uow.returns.findActiveFn = func(ctx context.Context, orderId uuid.UUID) (*entity.ReturnRequest, error) {
			return &entity.ReturnRequest{Id: uuid.New(), Status: entity.ReturnStatusPending}, nil
		}

		_, err := env.svc.CreateReturn(context.Background(), userId, &dto.CreateReturnRequest{
			OrderId: order.Id,
			Items:   []dto.ReturnItemRequest{{ProductId: order.Items[0].ProductId, Quantity: 1, ReasonCode: "damaged"}},
		})
		require.Error(t, err)
		assert.True(t, apperror.IsKind(err, apperror.KindConflict))
	})

	t.Run("losing a concurrent double submission is a conflict", func(t *testing.T) {
		env := newReturnEnv(t)
		order := deliveredOrderFor(userId, 3)
		setup(env, order)

		// Both submissions saw no active return; the database index rejects
		// the second insert.
		env.uow.returns.createFn = func(ctx context.Context, request *entity.ReturnRequest) error {
			return assert.AnError
		}

		_, err := env.svc.CreateReturn(context.Background(), userId, &dto.CreateReturnRequest{
			OrderId: order.Id,
			Items:   []dto.ReturnItemRequest{{ProductId: order.Items[0].ProductId, Quantity: 1, ReasonCode: "damaged"}},
		})
		require.Error(t, err)
		assert.True(t, apperror.IsKind(err, apperror.KindConflict))
	})

	t.Run("quantity exceeds ordered", func(t *testing.T) {
		env := newReturnEnv(t)
		order := deliveredOrderFor(userId, 3)
		setup(env, order)

		_, err := env.svc.CreateReturn(context.Background(), userId, &dto.CreateReturnRequest{
			OrderId: order.Id,
			Items:   []dto.ReturnItemRequest{{ProductId: order.Items[0].ProductId, Quantity: 3, ReasonCode: "damaged"}},
		})
		require.Error(t, err)
		assert.True(t, apperror.IsKind(err, apperror.KindValidation))
	})

	t.Run("item not on the order", func(t *testing.T) {
		env := newReturnEnv(t)
		order := deliveredOrderFor(userId, 3)
		setup(env, order)

		_, err := env.svc.CreateReturn(context.Background(), userId, &dto.CreateReturnRequest{
			OrderId: order.Id,
			Items:   []dto.ReturnItemRequest{{ProductId: uuid.New(), Quantity: 1, ReasonCode: "damaged"}},
		})
		require.Error(t, err)
		assert.True(t, apperror.IsKind(err, apperror.KindValidation))
	})

	t.Run("someone else's order", func(t *testing.T) {
		env := newReturnEnv(t)
		order := deliveredOrderFor(userId, 3)
		setup(env, order)

		_, err := env.svc.CreateReturn(context.Background(), uuid.New(), &dto.CreateReturnRequest{
			OrderId: order.Id,
			Items:   []dto.ReturnItemRequest{{ProductId: order.Items[0].ProductId, Quantity: 1, ReasonCode: "damaged"}},
		})
		require.Error(t, err)
		assert.True(t, apperror.IsKind(err, apperror.KindAuthorization))
	})
}

func returnInStatus(userId uuid.UUID, orderId uuid.UUID, status entity.ReturnStatus) *entity.ReturnRequest {
	return &entity.ReturnRequest{
		Id:      uuid.New(),
		OrderId: orderId,
		UserId:  userId,
		Items: []entity.ReturnItem{
			{Id: uuid.New(), ProductId: uuid.New(), Name: "Steel Bottle", Quantity: 2, UnitPrice: 500},
		},
		Status: status,
	}
}

func TestCancelReturn(t *testing.T) {
	userId := uuid.New()

	t.Run("pending can be cancelled and order restored", func(t *testing.T) {
		env := newReturnEnv(t)
		request := returnInStatus(userId, uuid.New(), entity.ReturnStatusPending)
		env.uow.returns.findOneFn = func(ctx context.Context, specs ...specification.Specification) (*entity.ReturnRequest, error) {
			return request, nil
		}

		require.NoError(t, env.svc.CancelReturn(context.Background(), userId, request.Id))
		assert.Equal(t, entity.ReturnStatusCancelled, request.Status)
		assert.NotNil(t, request.CancelledAt)
		assert.Equal(t, []entity.OrderStatus{entity.OrderStatusDelivered}, env.uow.orders.statusUpdates)
	})

	t.Run("approved can no longer be cancelled", func(t *testing.T) {
		env := newReturnEnv(t)
		request := returnInStatus(userId, uuid.New(), entity.ReturnStatusApproved)
		env.uow.returns.findOneFn = func(ctx context.Context, specs ...specification.Specification) (*entity.ReturnRequest, error) {
			return request, nil
		}

		err := env.svc.CancelReturn(context.Background(), userId, request.Id)
		require.Error(t, err)
		assert.True(t, apperror.IsKind(err, apperror.KindConflict))
	})
}

func TestProcessRefund(t *testing.T) {
	userId := uuid.New()

	setup := func(env *returnEnv, order *entity.Order, status entity.ReturnStatus) *entity.ReturnRequest {
		request := returnInStatus(userId, order.Id, status)
		env.uow.returns.findOneFn = func(ctx context.Context, specs ...specification.Specification) (*entity.ReturnRequest, error) {
			return request, nil
		}
		env.uow.orders.findOneFn = func(ctx context.Context, specs ...specification.Specification) (*entity.Order, error) {
			return order, nil
		}
		return request
	}

	t.Run("gateway refund on an online order", func(t *testing.T) {
		env := newReturnEnv(t)
		order := deliveredOrderFor(userId, 3)
		request := setup(env, order, entity.ReturnStatusReceived)
		env.gateway.refundFn = func(ctx context.Context, paymentId string, amount float64, notes map[string]interface{}) (*gateway.RefundResult, error) {
			assert.Equal(t, "pay_abc", paymentId)
			assert.Equal(t, 1180.0, amount)
			return &gateway.RefundResult{RefundId: "rfnd_1", Amount: amount, Status: "processed"}, nil
		}

		res, err := env.svc.ProcessRefund(context.Background(), &dto.ProcessRefundRequest{Id: request.Id})
		require.NoError(t, err)

		assert.Equal(t, string(entity.ReturnStatusRefundProcessed), res.Status)
		require.NotNil(t, res.Refund)
		assert.Equal(t, "rfnd_1", res.Refund.RefundId)
		assert.Equal(t, []entity.PaymentStatus{entity.PaymentStatusRefunded}, env.uow.orders.paymentUpdates)
	})

	t.Run("gateway failure leaves the return untouched", func(t *testing.T) {
		env := newReturnEnv(t)
		order := deliveredOrderFor(userId, 3)
		request := setup(env, order, entity.ReturnStatusReceived)
		env.gateway.refundFn = func(ctx context.Context, paymentId string, amount float64, notes map[string]interface{}) (*gateway.RefundResult, error) {
			return nil, errors.New("gateway timeout")
		}

		_, err := env.svc.ProcessRefund(context.Background(), &dto.ProcessRefundRequest{Id: request.Id})
		require.Error(t, err)
		assert.True(t, apperror.IsKind(err, apperror.KindUpstream))
		assert.Equal(t, entity.ReturnStatusReceived, request.Status)
		assert.Nil(t, request.Refund)
		assert.Empty(t, env.uow.returns.updated)
	})

	t.Run("refund requires received state", func(t *testing.T) {
		env := newReturnEnv(t)
		order := deliveredOrderFor(userId, 3)
		request := setup(env, order, entity.ReturnStatusApproved)

		_, err := env.svc.ProcessRefund(context.Background(), &dto.ProcessRefundRequest{Id: request.Id})
		require.Error(t, err)
		assert.True(t, apperror.IsKind(err, apperror.KindConflict))
	})

	t.Run("second refund is a conflict", func(t *testing.T) {
		env := newReturnEnv(t)
		order := deliveredOrderFor(userId, 3)
		request := setup(env, order, entity.ReturnStatusReceived)
		request.Refund = &entity.RefundInfo{RefundId: "rfnd_1"}

		_, err := env.svc.ProcessRefund(context.Background(), &dto.ProcessRefundRequest{Id: request.Id})
		require.Error(t, err)
		assert.True(t, apperror.IsKind(err, apperror.KindConflict))
		assert.Zero(t, env.gateway.refundCalls)
	})

	t.Run("amount above the order total is rejected", func(t *testing.T) {
		env := newReturnEnv(t)
		order := deliveredOrderFor(userId, 3)
		request := setup(env, order, entity.ReturnStatusReceived)

		_, err := env.svc.ProcessRefund(context.Background(), &dto.ProcessRefundRequest{Id: request.Id, Amount: 2000})
		require.Error(t, err)
		assert.True(t, apperror.IsKind(err, apperror.KindValidation))
	})

	t.Run("cod bank transfer needs proof", func(t *testing.T) {
		env := newReturnEnv(t)
		order := deliveredOrderFor(userId, 3)
		order.Payment.Method = entity.PaymentMethodCOD
		request := setup(env, order, entity.ReturnStatusReceived)

		_, err := env.svc.ProcessRefund(context.Background(), &dto.ProcessRefundRequest{
			Id:     request.Id,
			Method: "bank_transfer",
		})
		require.Error(t, err)
		assert.True(t, apperror.IsKind(err, apperror.KindValidation))
	})

	t.Run("cod bank transfer with proof is recorded without a gateway call", func(t *testing.T) {
		env := newReturnEnv(t)
		order := deliveredOrderFor(userId, 3)
		order.Payment.Method = entity.PaymentMethodCOD
		request := setup(env, order, entity.ReturnStatusReceived)

		res, err := env.svc.ProcessRefund(context.Background(), &dto.ProcessRefundRequest{
			Id:            request.Id,
			Amount:        500,
			Method:        "bank_transfer",
			TransactionId: "TXN123",
			BankName:      "HDFC",
		})
		require.NoError(t, err)

		require.NotNil(t, res.Refund)
		assert.True(t, strings.HasPrefix(res.Refund.RefundId, "codrf_"))
		assert.Equal(t, 500.0, res.Refund.Amount)
		assert.Zero(t, env.gateway.refundCalls)
	})

	t.Run("cod upi needs both ids", func(t *testing.T) {
		env := newReturnEnv(t)
		order := deliveredOrderFor(userId, 3)
		order.Payment.Method = entity.PaymentMethodCOD
		request := setup(env, order, entity.ReturnStatusReceived)

		_, err := env.svc.ProcessRefund(context.Background(), &dto.ProcessRefundRequest{
			Id:     request.Id,
			Method: "upi",
			UpiId:  "asha@upi",
		})
		require.Error(t, err)
		assert.True(t, apperror.IsKind(err, apperror.KindValidation))
	})

	t.Run("cod cash needs no proof", func(t *testing.T) {
		env := newReturnEnv(t)
		order := deliveredOrderFor(userId, 3)
		order.Payment.Method = entity.PaymentMethodCOD
		request := setup(env, order, entity.ReturnStatusReceived)

		res, err := env.svc.ProcessRefund(context.Background(), &dto.ProcessRefundRequest{
			Id:     request.Id,
			Method: "cash",
		})
		require.NoError(t, err)
		assert.Equal(t, 1180.0, res.Refund.Amount) // defaults to the full total
	})
}

func TestCompleteReturn(t *testing.T) {
	userId := uuid.New()

	t.Run("completion restocks the returned items", func(t *testing.T) {
		env := newReturnEnv(t)
		request := returnInStatus(userId, uuid.New(), entity.ReturnStatusRefundProcessed)
		env.uow.returns.findOneFn = func(ctx context.Context, specs ...specification.Specification) (*entity.ReturnRequest, error) {
			return request, nil
		}

		require.NoError(t, env.svc.CompleteReturn(context.Background(), &dto.CompleteReturnRequest{Id: request.Id}))
		assert.Equal(t, entity.ReturnStatusCompleted, request.Status)
		assert.Equal(t, 2, env.uow.products.increased[request.Items[0].ProductId])
	})

	t.Run("cannot complete before the refund", func(t *testing.T) {
		env := newReturnEnv(t)
		request := returnInStatus(userId, uuid.New(), entity.ReturnStatusReceived)
		env.uow.returns.findOneFn = func(ctx context.Context, specs ...specification.Specification) (*entity.ReturnRequest, error) {
			return request, nil
		}

		err := env.svc.CompleteReturn(context.Background(), &dto.CompleteReturnRequest{Id: request.Id})
		require.Error(t, err)
		assert.True(t, apperror.IsKind(err, apperror.KindConflict))
		assert.Empty(t, env.uow.products.increased)
	})
}

func TestReviewReturn(t *testing.T) {
	userId := uuid.New()

	t.Run("rejection restores the order status", func(t *testing.T) {
		env := newReturnEnv(t)
		request := returnInStatus(userId, uuid.New(), entity.ReturnStatusPending)
		env.uow.returns.findOneFn = func(ctx context.Context, specs ...specification.Specification) (*entity.ReturnRequest, error) {
			return request, nil
		}

		require.NoError(t, env.svc.ReviewReturn(context.Background(), &dto.ReviewReturnRequest{Id: request.Id, Approve: false, AdminNotes: "outside policy"}))
		assert.Equal(t, entity.ReturnStatusRejected, request.Status)
		assert.NotNil(t, request.RejectedAt)
		assert.Equal(t, []entity.OrderStatus{entity.OrderStatusDelivered}, env.uow.orders.statusUpdates)
	})

	t.Run("approval stamps the approval time", func(t *testing.T) {
		env := newReturnEnv(t)
		request := returnInStatus(userId, uuid.New(), entity.ReturnStatusPending)
		env.uow.returns.findOneFn = func(ctx context.Context, specs ...specification.Specification) (*entity.ReturnRequest, error) {
			return request, nil
		}

		require.NoError(t, env.svc.ReviewReturn(context.Background(), &dto.ReviewReturnRequest{Id: request.Id, Approve: true}))
		assert.Equal(t, entity.ReturnStatusApproved, request.Status)
		assert.NotNil(t, request.ApprovedAt)
		assert.Empty(t, env.uow.orders.statusUpdates)
	})

	t.Run("reviewing a non-pending return is a conflict", func(t *testing.T) {
		env := newReturnEnv(t)
		request := returnInStatus(userId, uuid.New(), entity.ReturnStatusShipped)
		env.uow.returns.findOneFn = func(ctx context.Context, specs ...specification.Specification) (*entity.ReturnRequest, error) {
			return request, nil
		}

		err := env.svc.ReviewReturn(context.Background(), &dto.ReviewReturnRequest{Id: request.Id, Approve: true})
		require.Error(t, err)
		assert.True(t, apperror.IsKind(err, apperror.KindConflict))
	})
}
