package implementation

import (
	"context"

	"storefront-be/internal/entity"
	"storefront-be/internal/model"
	"storefront-be/internal/repository/contract"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type cartRepositoryImpl struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) contract.CartRepository {
	return &cartRepositoryImpl{db: db}
}

func (r *cartRepositoryImpl) FindByUserID(ctx context.Context, userId uuid.UUID) ([]*entity.CartItem, error) {
	var models []*model.CartItem
	if err := r.db.WithContext(ctx).Where("user_id = ?", userId).Find(&models).Error; err != nil {
		return nil, err
	}

	var items []*entity.CartItem
	for _, m := range models {
		items = append(items, &entity.CartItem{
			Id:        m.ID,
			UserId:    m.UserID,
			ProductId: m.ProductID,
			Quantity:  m.Quantity,
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		})
	}
	return items, nil
}

func (r *cartRepositoryImpl) ClearByUserID(ctx context.Context, userId uuid.UUID) error {
	return r.db.WithContext(ctx).Where("user_id = ?", userId).Delete(&model.CartItem{}).Error
}
