package implementation

import (
	"context"
	"strings"

	"storefront-be/internal/entity"
	"storefront-be/internal/model"
	"storefront-be/internal/repository/contract"
	"storefront-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type couponRepositoryImpl struct {
	db *gorm.DB
}

func NewCouponRepository(db *gorm.DB) contract.CouponRepository {
	return &couponRepositoryImpl{db: db}
}

func (r *couponRepositoryImpl) Create(ctx context.Context, coupon *entity.Coupon) error {
	return r.db.WithContext(ctx).Create(mapCouponToModel(coupon)).Error
}

func (r *couponRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Coupon, error) {
	var m model.Coupon
	query := r.db.WithContext(ctx)

	for _, spec := range specs {
		query = spec.Apply(query)
	}

	if err := query.First(&m).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}

	return mapCouponToEntity(&m), nil
}

func (r *couponRepositoryImpl) FindByCode(ctx context.Context, code string) (*entity.Coupon, error) {
	return r.FindOne(ctx, specification.ByCode{Code: strings.ToUpper(strings.TrimSpace(code))})
}

func (r *couponRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Coupon, error) {
	var models []*model.Coupon
	query := r.db.WithContext(ctx)

	for _, spec := range specs {
		query = spec.Apply(query)
	}

	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}

	var coupons []*entity.Coupon
	for _, m := range models {
		coupons = append(coupons, mapCouponToEntity(m))
	}
	return coupons, nil
}

func (r *couponRepositoryImpl) Update(ctx context.Context, coupon *entity.Coupon) error {
	m := mapCouponToModel(coupon)
	return r.db.WithContext(ctx).Model(&model.Coupon{}).
		Where("id = ?", coupon.Id).
		Updates(map[string]interface{}{
			"code":                m.Code,
			"discount_type":       m.DiscountType,
			"discount_value":      m.DiscountValue,
			"min_order_amount":    m.MinOrderAmount,
			"max_discount":        m.MaxDiscount,
			"usage_limit":         m.UsageLimit,
			"first_purchase_only": m.FirstPurchaseOnly,
			"allowed_user_ids":    m.AllowedUserIDs,
			"max_uses_per_user":   m.MaxUsesPerUser,
			"valid_from":          m.ValidFrom,
			"valid_until":         m.ValidUntil,
			"active":              m.Active,
		}).Error
}

func (r *couponRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Coupon{}, id).Error
}

// IncrementUsage is a single conditional UPDATE so two concurrent redemptions
// can never push used_count past the limit.
func (r *couponRepositoryImpl) IncrementUsage(ctx context.Context, id uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).Model(&model.Coupon{}).
		Where("id = ? AND (usage_limit = 0 OR used_count < usage_limit)", id).
		UpdateColumn("used_count", gorm.Expr("used_count + 1"))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func mapCouponToModel(c *entity.Coupon) *model.Coupon {
	var allowed datatypes.JSONSlice[string]
	for _, id := range c.AllowedUserIds {
		allowed = append(allowed, id.String())
	}

	return &model.Coupon{
		ID:                c.Id,
		Code:              strings.ToUpper(strings.TrimSpace(c.Code)),
		DiscountType:      string(c.DiscountType),
		DiscountValue:     c.DiscountValue,
		MinOrderAmount:    c.MinOrderAmount,
		MaxDiscount:       c.MaxDiscount,
		UsageLimit:        c.UsageLimit,
		UsedCount:         c.UsedCount,
		FirstPurchaseOnly: c.FirstPurchaseOnly,
		AllowedUserIDs:    allowed,
		MaxUsesPerUser:    c.MaxUsesPerUser,
		ValidFrom:         c.ValidFrom,
		ValidUntil:        c.ValidUntil,
		Active:            c.Active,
		CreatedAt:         c.CreatedAt,
		UpdatedAt:         c.UpdatedAt,
	}
}

func mapCouponToEntity(m *model.Coupon) *entity.Coupon {
	c := &entity.Coupon{
		Id:                m.ID,
		Code:              m.Code,
		DiscountType:      entity.DiscountType(m.DiscountType),
		DiscountValue:     m.DiscountValue,
		MinOrderAmount:    m.MinOrderAmount,
		MaxDiscount:       m.MaxDiscount,
		UsageLimit:        m.UsageLimit,
		UsedCount:         m.UsedCount,
		FirstPurchaseOnly: m.FirstPurchaseOnly,
		MaxUsesPerUser:    m.MaxUsesPerUser,
		ValidFrom:         m.ValidFrom,
		ValidUntil:        m.ValidUntil,
		Active:            m.Active,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}

	for _, raw := range m.AllowedUserIDs {
		if id, err := uuid.Parse(raw); err == nil {
			c.AllowedUserIds = append(c.AllowedUserIds, id)
		}
	}
	return c
}
