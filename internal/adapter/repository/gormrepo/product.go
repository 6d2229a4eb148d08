package gormrepo

import (
	"context"

	"lamf-backoffice/internal/domain/product"

	"gorm.io/gorm"
)

type ProductRepository struct{ db *gorm.DB }

func NewProductRepository(db *gorm.DB) *ProductRepository { return &ProductRepository{db: db} }

func (r *ProductRepository) Create(ctx context.Context, p *product.Product) error {
	return translate("product", p.ID, r.db.WithContext(ctx).Create(p).Error)
}

func (r *ProductRepository) GetByID(ctx context.Context, id string) (*product.Product, error) {
	var out product.Product
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&out).Error; err != nil {
		return nil, translate("product", id, err)
	}
	return &out, nil
}

func (r *ProductRepository) Update(ctx context.Context, p *product.Product) error {
	res := r.db.WithContext(ctx).Model(p).
		Select("name", "interest_rate", "max_ltv", "min_amount", "max_amount", "tenure_months", "updated_at").
		Updates(p)
	return affected("product", p.ID, res)
}

func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	return affected("product", id, r.db.WithContext(ctx).Where("id = ?", id).Delete(&product.Product{}))
}

func (r *ProductRepository) List(ctx context.Context) ([]product.Product, error) {
	out := make([]product.Product, 0)
	if err := r.db.WithContext(ctx).Order("created_at ASC, id ASC").Find(&out).Error; err != nil {
		return nil, translate("product", "*", err)
	}
	return out, nil
}
