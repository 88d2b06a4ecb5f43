package service

import (
	"context"

	"storefront-be/internal/entity"
	"storefront-be/internal/repository/contract"
	"storefront-be/internal/repository/specification"
	"storefront-be/internal/repository/unitofwork"
	"storefront-be/pkg/gateway"

	"github.com/google/uuid"
)

// stubLogger discards everything; tests assert on behavior, not logs.
type stubLogger struct{}

func (stubLogger) Debug(module, message string, details map[string]interface{}) {}
func (stubLogger) Info(module, message string, details map[string]interface{})  {}
func (stubLogger) Warn(module, message string, details map[string]interface{})  {}
func (stubLogger) Error(module, message string, details map[string]interface{}) {}
func (stubLogger) Sync() error                                                  { return nil }

// --- Repository fakes (function fields, zero-value safe) ---

type fakeOrderRepo struct {
	createFn              func(ctx context.Context, order *entity.Order) error
	findOneFn             func(ctx context.Context, specs ...specification.Specification) (*entity.Order, error)
	findAllFn             func(ctx context.Context, specs ...specification.Specification) ([]*entity.Order, error)
	countFn               func(ctx context.Context, specs ...specification.Specification) (int64, error)
	updateStatusFn        func(ctx context.Context, id uuid.UUID, status entity.OrderStatus) error
	updatePaymentStatusFn func(ctx context.Context, id uuid.UUID, status entity.PaymentStatus) error
	attachFn              func(ctx context.Context, id uuid.UUID, paymentId string) error

	created        []*entity.Order
	statusUpdates  []entity.OrderStatus
	paymentUpdates []entity.PaymentStatus
	attachedIds    []string
}

func (f *fakeOrderRepo) Create(ctx context.Context, order *entity.Order) error {
	f.created = append(f.created, order)
	if f.createFn != nil {
		return f.createFn(ctx, order)
	}
	return nil
}

func (f *fakeOrderRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Order, error) {
	if f.findOneFn != nil {
		return f.findOneFn(ctx, specs...)
	}
	return nil, nil
}

func (f *fakeOrderRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Order, error) {
	if f.findAllFn != nil {
		return f.findAllFn(ctx, specs...)
	}
	return nil, nil
}

func (f *fakeOrderRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	if f.countFn != nil {
		return f.countFn(ctx, specs...)
	}
	return 0, nil
}

func (f *fakeOrderRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.OrderStatus) error {
	f.statusUpdates = append(f.statusUpdates, status)
	if f.updateStatusFn != nil {
		return f.updateStatusFn(ctx, id, status)
	}
	return nil
}

func (f *fakeOrderRepo) UpdatePaymentStatus(ctx context.Context, id uuid.UUID, status entity.PaymentStatus) error {
	f.paymentUpdates = append(f.paymentUpdates, status)
	if f.updatePaymentStatusFn != nil {
		return f.updatePaymentStatusFn(ctx, id, status)
	}
	return nil
}

func (f *fakeOrderRepo) AttachGatewayPayment(ctx context.Context, id uuid.UUID, paymentId string) error {
	f.attachedIds = append(f.attachedIds, paymentId)
	if f.attachFn != nil {
		return f.attachFn(ctx, id, paymentId)
	}
	return nil
}

type fakeCouponRepo struct {
	createFn         func(ctx context.Context, coupon *entity.Coupon) error
	findOneFn        func(ctx context.Context, specs ...specification.Specification) (*entity.Coupon, error)
	findByCodeFn     func(ctx context.Context, code string) (*entity.Coupon, error)
	findAllFn        func(ctx context.Context, specs ...specification.Specification) ([]*entity.Coupon, error)
	updateFn         func(ctx context.Context, coupon *entity.Coupon) error
	deleteFn         func(ctx context.Context, id uuid.UUID) error
	incrementUsageFn func(ctx context.Context, id uuid.UUID) (bool, error)

	incremented []uuid.UUID
}

func (f *fakeCouponRepo) Create(ctx context.Context, coupon *entity.Coupon) error {
	if f.createFn != nil {
		return f.createFn(ctx, coupon)
	}
	return nil
}

func (f *fakeCouponRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Coupon, error) {
	if f.findOneFn != nil {
		return f.findOneFn(ctx, specs...)
	}
	return nil, nil
}

func (f *fakeCouponRepo) FindByCode(ctx context.Context, code string) (*entity.Coupon, error) {
	if f.findByCodeFn != nil {
		return f.findByCodeFn(ctx, code)
	}
	return nil, nil
}

func (f *fakeCouponRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Coupon, error) {
	if f.findAllFn != nil {
		return f.findAllFn(ctx, specs...)
	}
	return nil, nil
}

func (f *fakeCouponRepo) Update(ctx context.Context, coupon *entity.Coupon) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, coupon)
	}
	return nil
}

func (f *fakeCouponRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, id)
	}
	return nil
}

func (f *fakeCouponRepo) IncrementUsage(ctx context.Context, id uuid.UUID) (bool, error) {
	f.incremented = append(f.incremented, id)
	if f.incrementUsageFn != nil {
		return f.incrementUsageFn(ctx, id)
	}
	return true, nil
}

type fakeProductRepo struct {
	createFn        func(ctx context.Context, product *entity.Product) error
	findOneFn       func(ctx context.Context, specs ...specification.Specification) (*entity.Product, error)
	findAllFn       func(ctx context.Context, specs ...specification.Specification) ([]*entity.Product, error)
	updateFn        func(ctx context.Context, product *entity.Product) error
	decreaseStockFn func(ctx context.Context, id uuid.UUID, qty int) (bool, error)
	increaseStockFn func(ctx context.Context, id uuid.UUID, qty int) error

	decreased map[uuid.UUID]int
	increased map[uuid.UUID]int
}

func (f *fakeProductRepo) Create(ctx context.Context, product *entity.Product) error {
	if f.createFn != nil {
		return f.createFn(ctx, product)
	}
	return nil
}

func (f *fakeProductRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Product, error) {
	if f.findOneFn != nil {
		return f.findOneFn(ctx, specs...)
	}
	return nil, nil
}

func (f *fakeProductRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Product, error) {
	if f.findAllFn != nil {
		return f.findAllFn(ctx, specs...)
	}
	return nil, nil
}

func (f *fakeProductRepo) Update(ctx context.Context, product *entity.Product) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, product)
	}
	return nil
}

func (f *fakeProductRepo) DecreaseStockIfAvailable(ctx context.Context, id uuid.UUID, qty int) (bool, error) {
	if f.decreased == nil {
		f.decreased = make(map[uuid.UUID]int)
	}
	f.decreased[id] += qty
	if f.decreaseStockFn != nil {
		return f.decreaseStockFn(ctx, id, qty)
	}
	return true, nil
}

func (f *fakeProductRepo) IncreaseStock(ctx context.Context, id uuid.UUID, qty int) error {
	if f.increased == nil {
		f.increased = make(map[uuid.UUID]int)
	}
	f.increased[id] += qty
	if f.increaseStockFn != nil {
		return f.increaseStockFn(ctx, id, qty)
	}
	return nil
}

type fakeCartRepo struct {
	findByUserFn func(ctx context.Context, userId uuid.UUID) ([]*entity.CartItem, error)
	clearFn      func(ctx context.Context, userId uuid.UUID) error

	clearedFor []uuid.UUID
}

func (f *fakeCartRepo) FindByUserID(ctx context.Context, userId uuid.UUID) ([]*entity.CartItem, error) {
	if f.findByUserFn != nil {
		return f.findByUserFn(ctx, userId)
	}
	return nil, nil
}

func (f *fakeCartRepo) ClearByUserID(ctx context.Context, userId uuid.UUID) error {
	f.clearedFor = append(f.clearedFor, userId)
	if f.clearFn != nil {
		return f.clearFn(ctx, userId)
	}
	return nil
}

type fakeInvoiceRepo struct {
	createFn              func(ctx context.Context, invoice *entity.Invoice) error
	findOneFn             func(ctx context.Context, specs ...specification.Specification) (*entity.Invoice, error)
	findByOrderFn         func(ctx context.Context, orderId uuid.UUID) (*entity.Invoice, error)
	findAllFn             func(ctx context.Context, specs ...specification.Specification) ([]*entity.Invoice, error)
	countFn               func(ctx context.Context, specs ...specification.Specification) (int64, error)
	updatePaymentStatusFn func(ctx context.Context, id uuid.UUID, status entity.PaymentStatus) error

	created []*entity.Invoice
}

func (f *fakeInvoiceRepo) Create(ctx context.Context, invoice *entity.Invoice) error {
	f.created = append(f.created, invoice)
	if f.createFn != nil {
		return f.createFn(ctx, invoice)
	}
	return nil
}

func (f *fakeInvoiceRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Invoice, error) {
	if f.findOneFn != nil {
		return f.findOneFn(ctx, specs...)
	}
	return nil, nil
}

func (f *fakeInvoiceRepo) FindByOrderID(ctx context.Context, orderId uuid.UUID) (*entity.Invoice, error) {
	if f.findByOrderFn != nil {
		return f.findByOrderFn(ctx, orderId)
	}
	return nil, nil
}

func (f *fakeInvoiceRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Invoice, error) {
	if f.findAllFn != nil {
		return f.findAllFn(ctx, specs...)
	}
	return nil, nil
}

func (f *fakeInvoiceRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	if f.countFn != nil {
		return f.countFn(ctx, specs...)
	}
	return 0, nil
}

func (f *fakeInvoiceRepo) UpdatePaymentStatus(ctx context.Context, id uuid.UUID, status entity.PaymentStatus) error {
	if f.updatePaymentStatusFn != nil {
		return f.updatePaymentStatusFn(ctx, id, status)
	}
	return nil
}

type fakeReturnRepo struct {
	createFn     func(ctx context.Context, request *entity.ReturnRequest) error
	findOneFn    func(ctx context.Context, specs ...specification.Specification) (*entity.ReturnRequest, error)
	findAllFn    func(ctx context.Context, specs ...specification.Specification) ([]*entity.ReturnRequest, error)
	findActiveFn func(ctx context.Context, orderId uuid.UUID) (*entity.ReturnRequest, error)
	updateFn     func(ctx context.Context, request *entity.ReturnRequest) error

	created []*entity.ReturnRequest
	updated []*entity.ReturnRequest
}

func (f *fakeReturnRepo) Create(ctx context.Context, request *entity.ReturnRequest) error {
	f.created = append(f.created, request)
	if f.createFn != nil {
		return f.createFn(ctx, request)
	}
	return nil
}

func (f *fakeReturnRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ReturnRequest, error) {
	if f.findOneFn != nil {
		return f.findOneFn(ctx, specs...)
	}
	return nil, nil
}

func (f *fakeReturnRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ReturnRequest, error) {
	if f.findAllFn != nil {
		return f.findAllFn(ctx, specs...)
	}
	return nil, nil
}

func (f *fakeReturnRepo) FindActiveByOrderID(ctx context.Context, orderId uuid.UUID) (*entity.ReturnRequest, error) {
	if f.findActiveFn != nil {
		return f.findActiveFn(ctx, orderId)
	}
	return nil, nil
}

func (f *fakeReturnRepo) Update(ctx context.Context, request *entity.ReturnRequest) error {
	f.updated = append(f.updated, request)
	if f.updateFn != nil {
		return f.updateFn(ctx, request)
	}
	return nil
}

type fakeShippingRuleRepo struct {
	createFn        func(ctx context.Context, rule *entity.ShippingRule) error
	findOneFn       func(ctx context.Context, specs ...specification.Specification) (*entity.ShippingRule, error)
	findAllActiveFn func(ctx context.Context) ([]*entity.ShippingRule, error)
	findAllFn       func(ctx context.Context, specs ...specification.Specification) ([]*entity.ShippingRule, error)
	updateFn        func(ctx context.Context, rule *entity.ShippingRule) error
	deleteFn        func(ctx context.Context, id uuid.UUID) error

	findAllActiveCalls int
}

func (f *fakeShippingRuleRepo) Create(ctx context.Context, rule *entity.ShippingRule) error {
	if f.createFn != nil {
		return f.createFn(ctx, rule)
	}
	return nil
}

func (f *fakeShippingRuleRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ShippingRule, error) {
	if f.findOneFn != nil {
		return f.findOneFn(ctx, specs...)
	}
	return nil, nil
}

func (f *fakeShippingRuleRepo) FindAllActive(ctx context.Context) ([]*entity.ShippingRule, error) {
	f.findAllActiveCalls++
	if f.findAllActiveFn != nil {
		return f.findAllActiveFn(ctx)
	}
	return nil, nil
}

func (f *fakeShippingRuleRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ShippingRule, error) {
	if f.findAllFn != nil {
		return f.findAllFn(ctx, specs...)
	}
	return nil, nil
}

func (f *fakeShippingRuleRepo) Update(ctx context.Context, rule *entity.ShippingRule) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, rule)
	}
	return nil
}

func (f *fakeShippingRuleRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, id)
	}
	return nil
}

type fakeUserRepo struct {
	findOneFn func(ctx context.Context, specs ...specification.Specification) (*entity.User, error)
}

func (f *fakeUserRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error) {
	if f.findOneFn != nil {
		return f.findOneFn(ctx, specs...)
	}
	return nil, nil
}

func (f *fakeUserRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.User, error) {
	return nil, nil
}

func (f *fakeUserRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return 0, nil
}

// --- Unit of work fake ---

type fakeUow struct {
	orders    *fakeOrderRepo
	coupons   *fakeCouponRepo
	products  *fakeProductRepo
	carts     *fakeCartRepo
	invoices  *fakeInvoiceRepo
	returns   *fakeReturnRepo
	shipRules *fakeShippingRuleRepo
	users     *fakeUserRepo

	begins    int
	commits   int
	rollbacks int
}

func newFakeUow() *fakeUow {
	return &fakeUow{
		orders:    &fakeOrderRepo{},
		coupons:   &fakeCouponRepo{},
		products:  &fakeProductRepo{},
		carts:     &fakeCartRepo{},
		invoices:  &fakeInvoiceRepo{},
		returns:   &fakeReturnRepo{},
		shipRules: &fakeShippingRuleRepo{},
		users:     &fakeUserRepo{},
	}
}

func (u *fakeUow) Begin(ctx context.Context) error { u.begins++; return nil }
func (u *fakeUow) Commit() error                   { u.commits++; return nil }
func (u *fakeUow) Rollback() error                 { u.rollbacks++; return nil }

func (u *fakeUow) UserRepository() contract.UserRepository                 { return u.users }
func (u *fakeUow) ProductRepository() contract.ProductRepository           { return u.products }
func (u *fakeUow) CartRepository() contract.CartRepository                 { return u.carts }
func (u *fakeUow) OrderRepository() contract.OrderRepository               { return u.orders }
func (u *fakeUow) CouponRepository() contract.CouponRepository             { return u.coupons }
func (u *fakeUow) InvoiceRepository() contract.InvoiceRepository           { return u.invoices }
func (u *fakeUow) ReturnRepository() contract.ReturnRepository             { return u.returns }
func (u *fakeUow) ShippingRuleRepository() contract.ShippingRuleRepository { return u.shipRules }

type fakeFactory struct {
	uow *fakeUow
}

func (f *fakeFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return f.uow
}

// --- Gateway fake ---

type fakeGateway struct {
	createOrderFn     func(ctx context.Context, amount float64, currency, receipt string) (string, error)
	verifySignatureFn func(orderId, paymentId, signature string) bool
	fetchStatusFn     func(ctx context.Context, paymentId string) (string, error)
	refundFn          func(ctx context.Context, paymentId string, amount float64, notes map[string]interface{}) (*gateway.RefundResult, error)

	refundCalls int
}

func (f *fakeGateway) CreateOrder(ctx context.Context, amount float64, currency, receipt string) (string, error) {
	if f.createOrderFn != nil {
		return f.createOrderFn(ctx, amount, currency, receipt)
	}
	return "order_test", nil
}

func (f *fakeGateway) VerifySignature(orderId, paymentId, signature string) bool {
	if f.verifySignatureFn != nil {
		return f.verifySignatureFn(orderId, paymentId, signature)
	}
	return true
}

func (f *fakeGateway) FetchPaymentStatus(ctx context.Context, paymentId string) (string, error) {
	if f.fetchStatusFn != nil {
		return f.fetchStatusFn(ctx, paymentId)
	}
	return "captured", nil
}

func (f *fakeGateway) Refund(ctx context.Context, paymentId string, amount float64, notes map[string]interface{}) (*gateway.RefundResult, error) {
	f.refundCalls++
	if f.refundFn != nil {
		return f.refundFn(ctx, paymentId, amount, notes)
	}
	return &gateway.RefundResult{RefundId: "rfnd_test", Amount: amount, Status: "processed"}, nil
}

// --- Publisher fake ---

type fakePublisher struct {
	published [][]byte
	err       error
}

func (f *fakePublisher) Publish(ctx context.Context, payload []byte) error {
	f.published = append(f.published, payload)
	return f.err
}
