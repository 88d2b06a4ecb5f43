package implementation

import (
	"context"
	"encoding/json"

	"storefront-be/internal/entity"
	"storefront-be/internal/model"
	"storefront-be/internal/repository/contract"
	"storefront-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type shippingRuleRepositoryImpl struct {
	db *gorm.DB
}

func NewShippingRuleRepository(db *gorm.DB) contract.ShippingRuleRepository {
	return &shippingRuleRepositoryImpl{db: db}
}

func (r *shippingRuleRepositoryImpl) Create(ctx context.Context, rule *entity.ShippingRule) error {
	return r.db.WithContext(ctx).Create(mapShippingRuleToModel(rule)).Error
}

func (r *shippingRuleRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ShippingRule, error) {
	var m model.ShippingRule
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

	return mapShippingRuleToEntity(&m), nil
}

func (r *shippingRuleRepositoryImpl) FindAllActive(ctx context.Context) ([]*entity.ShippingRule, error) {
	return r.FindAll(ctx,
		specification.ActiveOnly{},
		specification.OrderBy{Field: "priority"},
	)
}

func (r *shippingRuleRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ShippingRule, error) {
	var models []*model.ShippingRule
	query := r.db.WithContext(ctx)

	for _, spec := range specs {
		query = spec.Apply(query)
	}

	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}

	var rules []*entity.ShippingRule
	for _, m := range models {
		rules = append(rules, mapShippingRuleToEntity(m))
	}
	return rules, nil
}

func (r *shippingRuleRepositoryImpl) Update(ctx context.Context, rule *entity.ShippingRule) error {
	m := mapShippingRuleToModel(rule)
	return r.db.WithContext(ctx).Model(&model.ShippingRule{}).
		Where("id = ?", rule.Id).
		Updates(map[string]interface{}{
			"name":                    m.Name,
			"priority":                m.Priority,
			"pincode_type":            m.PincodeType,
			"pincodes":                m.Pincodes,
			"ranges":                  m.Ranges,
			"charge":                  m.Charge,
			"free_shipping_threshold": m.FreeShippingThreshold,
			"min_delivery_days":       m.MinDeliveryDays,
			"max_delivery_days":       m.MaxDeliveryDays,
			"active":                  m.Active,
		}).Error
}

func (r *shippingRuleRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.ShippingRule{}, id).Error
}

func mapShippingRuleToModel(rule *entity.ShippingRule) *model.ShippingRule {
	rangesJSON, _ := json.Marshal(rule.Ranges)
	return &model.ShippingRule{
		ID:                    rule.Id,
		Name:                  rule.Name,
		Priority:              rule.Priority,
		PincodeType:           string(rule.PincodeType),
		Pincodes:              datatypes.JSONSlice[string](rule.Pincodes),
		Ranges:                datatypes.JSON(rangesJSON),
		Charge:                rule.Charge,
		FreeShippingThreshold: rule.FreeShippingThreshold,
		MinDeliveryDays:       rule.MinDeliveryDays,
		MaxDeliveryDays:       rule.MaxDeliveryDays,
		Active:                rule.Active,
		CreatedAt:             rule.CreatedAt,
		UpdatedAt:             rule.UpdatedAt,
	}
}

func mapShippingRuleToEntity(m *model.ShippingRule) *entity.ShippingRule {
	rule := &entity.ShippingRule{
		Id:                    m.ID,
		Name:                  m.Name,
		Priority:              m.Priority,
		PincodeType:           entity.PincodeType(m.PincodeType),
		Pincodes:              []string(m.Pincodes),
		Charge:                m.Charge,
		FreeShippingThreshold: m.FreeShippingThreshold,
		MinDeliveryDays:       m.MinDeliveryDays,
		MaxDeliveryDays:       m.MaxDeliveryDays,
		Active:                m.Active,
		CreatedAt:             m.CreatedAt,
		UpdatedAt:             m.UpdatedAt,
	}

	if len(m.Ranges) > 0 {
		_ = json.Unmarshal(m.Ranges, &rule.Ranges)
	}
	return rule
}
