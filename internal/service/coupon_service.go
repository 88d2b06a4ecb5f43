package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"storefront-be/internal/dto"
	"storefront-be/internal/entity"
	"storefront-be/internal/pkg/apperror"
	"storefront-be/internal/pkg/logger"
	"storefront-be/internal/repository/specification"
	"storefront-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type ICouponService interface {
	ApplyCoupon(ctx context.Context, userId uuid.UUID, req *dto.ApplyCouponRequest) (*dto.ApplyCouponResponse, error)
	SelectBest(ctx context.Context, userId uuid.UUID, req *dto.BestCouponRequest) (*dto.BestCouponResponse, error)

	// ResolveForOrder validates eligibility and returns the coupon together
	// with the discount it yields on the given amount. Checkout calls this
	// right before materializing the order.
	ResolveForOrder(ctx context.Context, userId uuid.UUID, code string, orderAmount float64) (*entity.Coupon, float64, error)

	// Redeem consumes one use of the coupon. Returns a conflict error when
	// the usage ceiling was reached in the meantime.
	Redeem(ctx context.Context, couponId uuid.UUID) error

	CreateCoupon(ctx context.Context, req *dto.CreateCouponRequest) (*dto.CouponResponse, error)
	UpdateCoupon(ctx context.Context, req *dto.UpdateCouponRequest) (*dto.CouponResponse, error)
	DeleteCoupon(ctx context.Context, id uuid.UUID) error
	GetCoupons(ctx context.Context) ([]*dto.CouponResponse, error)
	GetCoupon(ctx context.Context, id uuid.UUID) (*dto.CouponResponse, error)
}

type couponService struct {
	uowFactory unitofwork.RepositoryFactory
	logger     logger.ILogger
}

func NewCouponService(uowFactory unitofwork.RepositoryFactory, log logger.ILogger) ICouponService {
	return &couponService{
		uowFactory: uowFactory,
		logger:     log,
	}
}

// isValid checks the coupon's own gates: active, inside its validity window,
// and below its global usage ceiling.
func isValid(coupon *entity.Coupon, now time.Time) bool {
	if !coupon.Active {
		return false
	}
	if now.Before(coupon.ValidFrom) || now.After(coupon.ValidUntil) {
		return false
	}
	if coupon.UsageLimit > 0 && coupon.UsedCount >= coupon.UsageLimit {
		return false
	}
	return true
}

// discountFor computes the discount the coupon yields on orderAmount.
// Percentage coupons honor MaxDiscount when set; the result never exceeds
// the order amount itself.
func discountFor(coupon *entity.Coupon, orderAmount float64) float64 {
	var discount float64
	switch coupon.DiscountType {
	case entity.DiscountTypePercentage:
		discount = orderAmount * coupon.DiscountValue / 100
		if coupon.MaxDiscount > 0 && discount > coupon.MaxDiscount {
			discount = coupon.MaxDiscount
		}
	case entity.DiscountTypeFixed:
		discount = coupon.DiscountValue
	}
	if discount > orderAmount {
		discount = orderAmount
	}
	return discount
}

// isEligible layers the per-user restrictions on top of isValid. Any lookup
// failure makes the coupon ineligible rather than erroring out, so a flaky
// read can never hand out a discount it should not.
func (s *couponService) isEligible(ctx context.Context, coupon *entity.Coupon, userId uuid.UUID, orderAmount float64) (bool, string) {
	if !isValid(coupon, time.Now()) {
		return false, "coupon is not valid or has expired"
	}
	if orderAmount < coupon.MinOrderAmount {
		return false, "order amount does not meet the coupon minimum"
	}

	if len(coupon.AllowedUserIds) > 0 {
		allowed := false
		for _, id := range coupon.AllowedUserIds {
			if id == userId {
				allowed = true
				break
			}
		}
		if !allowed {
			return false, "coupon is not available for this account"
		}
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	if coupon.FirstPurchaseOnly {
		count, err := uow.OrderRepository().Count(ctx,
			specification.UserOwnedBy{UserID: userId},
			specification.StatusIn{Statuses: purchasedStatuses()},
		)
		if err != nil {
			s.logger.Warn("CouponService", "First-purchase lookup failed, treating as ineligible", map[string]interface{}{"coupon": coupon.Code, "error": err.Error()})
			return false, "coupon eligibility could not be confirmed"
		}
		if count > 0 {
			return false, "coupon is valid for first purchase only"
		}
	}

	if coupon.MaxUsesPerUser > 0 {
		count, err := uow.OrderRepository().Count(ctx,
			specification.UserOwnedBy{UserID: userId},
			specification.CouponCodeIs{Code: coupon.Code},
		)
		if err != nil {
			s.logger.Warn("CouponService", "Per-user usage lookup failed, treating as ineligible", map[string]interface{}{"coupon": coupon.Code, "error": err.Error()})
			return false, "coupon eligibility could not be confirmed"
		}
		if int(count) >= coupon.MaxUsesPerUser {
			return false, "coupon usage limit reached for this account"
		}
	}

	return true, ""
}

func purchasedStatuses() []string {
	statuses := entity.PurchasedOrderStatuses()
	out := make([]string, len(statuses))
	for i, st := range statuses {
		out[i] = string(st)
	}
	return out
}

func (s *couponService) ResolveForOrder(ctx context.Context, userId uuid.UUID, code string, orderAmount float64) (*entity.Coupon, float64, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	coupon, err := uow.CouponRepository().FindByCode(ctx, strings.ToUpper(code))
	if err != nil {
		return nil, 0, err
	}
	if coupon == nil {
		return nil, 0, apperror.NotFound("coupon not found")
	}

	eligible, reason := s.isEligible(ctx, coupon, userId, orderAmount)
	if !eligible {
		return nil, 0, apperror.Validation(reason)
	}

	return coupon, discountFor(coupon, orderAmount), nil
}

func (s *couponService) Redeem(ctx context.Context, couponId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	ok, err := uow.CouponRepository().IncrementUsage(ctx, couponId)
	if err != nil {
		return err
	}
	if !ok {
		return apperror.Conflict("coupon usage limit reached")
	}
	return nil
}

func (s *couponService) ApplyCoupon(ctx context.Context, userId uuid.UUID, req *dto.ApplyCouponRequest) (*dto.ApplyCouponResponse, error) {
	coupon, discount, err := s.ResolveForOrder(ctx, userId, req.Code, req.ItemsTotal)
	if err != nil {
		return nil, err
	}

	return &dto.ApplyCouponResponse{
		Code:     coupon.Code,
		Discount: discount,
		Message:  "coupon applied",
	}, nil
}

func (s *couponService) SelectBest(ctx context.Context, userId uuid.UUID, req *dto.BestCouponRequest) (*dto.BestCouponResponse, error) {
	type candidate struct {
		coupon   *entity.Coupon
		discount float64
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	var candidates []candidate
	for _, code := range req.Codes {
		coupon, err := uow.CouponRepository().FindByCode(ctx, strings.ToUpper(code))
		if err != nil || coupon == nil {
			continue
		}
		eligible, _ := s.isEligible(ctx, coupon, userId, req.ItemsTotal)
		if !eligible {
			continue
		}
		discount := discountFor(coupon, req.ItemsTotal)
		if discount <= 0 {
			continue
		}
		candidates = append(candidates, candidate{coupon: coupon, discount: discount})
	}

	if len(candidates) == 0 {
		return nil, apperror.NotFound("no applicable coupon")
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].discount != candidates[j].discount {
			return candidates[i].discount > candidates[j].discount
		}
		// Tie-break on discount as a share of the order.
		return candidates[i].discount/req.ItemsTotal > candidates[j].discount/req.ItemsTotal
	})

	best := candidates[0]
	return &dto.BestCouponResponse{
		Code:     best.coupon.Code,
		Discount: best.discount,
	}, nil
}

// --- Admin CRUD ---

func (s *couponService) CreateCoupon(ctx context.Context, req *dto.CreateCouponRequest) (*dto.CouponResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	code := strings.ToUpper(strings.TrimSpace(req.Code))

	existing, err := uow.CouponRepository().FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.Conflict("coupon code already exists")
	}

	coupon := &entity.Coupon{
		Id:                uuid.New(),
		Code:              code,
		DiscountType:      entity.DiscountType(req.DiscountType),
		DiscountValue:     req.DiscountValue,
		MinOrderAmount:    req.MinOrderAmount,
		MaxDiscount:       req.MaxDiscount,
		UsageLimit:        req.UsageLimit,
		FirstPurchaseOnly: req.FirstPurchaseOnly,
		AllowedUserIds:    req.AllowedUserIds,
		MaxUsesPerUser:    req.MaxUsesPerUser,
		ValidFrom:         req.ValidFrom,
		ValidUntil:        req.ValidUntil,
		Active:            req.Active,
		CreatedAt:         time.Now(),
		UpdatedAt:         time.Now(),
	}

	if err := uow.CouponRepository().Create(ctx, coupon); err != nil {
		return nil, err
	}

	return toCouponResponse(coupon), nil
}

func (s *couponService) UpdateCoupon(ctx context.Context, req *dto.UpdateCouponRequest) (*dto.CouponResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	coupon, err := uow.CouponRepository().FindOne(ctx, specification.ByID{ID: req.Id})
	if err != nil {
		return nil, err
	}
	if coupon == nil {
		return nil, apperror.NotFound("coupon not found")
	}

	coupon.DiscountType = entity.DiscountType(req.DiscountType)
	coupon.DiscountValue = req.DiscountValue
	coupon.MinOrderAmount = req.MinOrderAmount
	coupon.MaxDiscount = req.MaxDiscount
	coupon.UsageLimit = req.UsageLimit
	coupon.FirstPurchaseOnly = req.FirstPurchaseOnly
	coupon.AllowedUserIds = req.AllowedUserIds
	coupon.MaxUsesPerUser = req.MaxUsesPerUser
	coupon.ValidFrom = req.ValidFrom
	coupon.ValidUntil = req.ValidUntil
	coupon.Active = req.Active
	coupon.UpdatedAt = time.Now()

	if err := uow.CouponRepository().Update(ctx, coupon); err != nil {
		return nil, err
	}

	return toCouponResponse(coupon), nil
}

func (s *couponService) DeleteCoupon(ctx context.Context, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	coupon, err := uow.CouponRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return err
	}
	if coupon == nil {
		return apperror.NotFound("coupon not found")
	}

	return uow.CouponRepository().Delete(ctx, id)
}

func (s *couponService) GetCoupons(ctx context.Context) ([]*dto.CouponResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	coupons, err := uow.CouponRepository().FindAll(ctx, specification.OrderBy{Field: "created_at", Desc: true})
	if err != nil {
		return nil, err
	}

	res := make([]*dto.CouponResponse, 0, len(coupons))
	for _, c := range coupons {
		res = append(res, toCouponResponse(c))
	}
	return res, nil
}

func (s *couponService) GetCoupon(ctx context.Context, id uuid.UUID) (*dto.CouponResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	coupon, err := uow.CouponRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if coupon == nil {
		return nil, apperror.NotFound("coupon not found")
	}
	return toCouponResponse(coupon), nil
}

func toCouponResponse(c *entity.Coupon) *dto.CouponResponse {
	return &dto.CouponResponse{
		Id:                c.Id,
		Code:              c.Code,
		DiscountType:      string(c.DiscountType),
		DiscountValue:     c.DiscountValue,
		MinOrderAmount:    c.MinOrderAmount,
		MaxDiscount:       c.MaxDiscount,
		UsageLimit:        c.UsageLimit,
		UsedCount:         c.UsedCount,
		FirstPurchaseOnly: c.FirstPurchaseOnly,
		AllowedUserIds:    c.AllowedUserIds,
		MaxUsesPerUser:    c.MaxUsesPerUser,
		ValidFrom:         c.ValidFrom,
		ValidUntil:        c.ValidUntil,
		Active:            c.Active,
		CreatedAt:         c.CreatedAt,
	}
}
