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

type productRepositoryImpl struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) contract.ProductRepository {
	return &productRepositoryImpl{db: db}
}

func (r *productRepositoryImpl) Create(ctx context.Context, product *entity.Product) error {
	return r.db.WithContext(ctx).Create(mapProductToModel(product)).Error
}

func (r *productRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Product, error) {
	var m model.Product
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

	return mapProductToEntity(&m), nil
}

func (r *productRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Product, error) {
	var models []*model.Product
	query := r.db.WithContext(ctx)

	for _, spec := range specs {
		query = spec.Apply(query)
	}

	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}

	var products []*entity.Product
	for _, m := range models {
		products = append(products, mapProductToEntity(m))
	}
	return products, nil
}

func (r *productRepositoryImpl) Update(ctx context.Context, product *entity.Product) error {
	m := mapProductToModel(product)
	return r.db.WithContext(ctx).Model(&model.Product{}).
		Where("id = ?", product.Id).
		Updates(map[string]interface{}{
			"name":     m.Name,
			"image":    m.Image,
			"price":    m.Price,
			"gst_rate": m.GstRate,
			"stock":    m.Stock,
			"active":   m.Active,
		}).Error
}

// DecreaseStockIfAvailable is a conditional decrement; it only matches when
// stock covers the quantity, so concurrent orders cannot oversell.
func (r *productRepositoryImpl) DecreaseStockIfAvailable(ctx context.Context, id uuid.UUID, qty int) (bool, error) {
	res := r.db.WithContext(ctx).Model(&model.Product{}).
		Where("id = ? AND stock >= ?", id, qty).
		UpdateColumn("stock", gorm.Expr("stock - ?", qty))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *productRepositoryImpl) IncreaseStock(ctx context.Context, id uuid.UUID, qty int) error {
	return r.db.WithContext(ctx).Model(&model.Product{}).
		Where("id = ?", id).
		UpdateColumn("stock", gorm.Expr("stock + ?", qty)).Error
}

func mapProductToModel(p *entity.Product) *model.Product {
	return &model.Product{
		ID:        p.Id,
		Name:      p.Name,
		Image:     p.Image,
		Price:     p.Price,
		GstRate:   p.GstRate,
		Stock:     p.Stock,
		Active:    p.Active,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func mapProductToEntity(m *model.Product) *entity.Product {
	return &entity.Product{
		Id:        m.ID,
		Name:      m.Name,
		Image:     m.Image,
		Price:     m.Price,
		GstRate:   m.GstRate,
		Stock:     m.Stock,
		Active:    m.Active,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
