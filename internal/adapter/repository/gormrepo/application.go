package gormrepo

import (
	"context"

	"lamf-backoffice/internal/domain/application"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ApplicationRepository struct{ db *gorm.DB }

func NewApplicationRepository(db *gorm.DB) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

func (r *ApplicationRepository) Create(ctx context.Context, a *application.Application) error {
	return translate("application", a.ID, r.db.WithContext(ctx).Omit(clause.Associations).Create(a).Error)
}

func (r *ApplicationRepository) GetByID(ctx context.Context, id string) (*application.Application, error) {
	var out application.Application
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&out).Error; err != nil {
		return nil, translate("application", id, err)
	}
	return &out, nil
}

// GetByIDForUpdate issues SELECT ... FOR UPDATE; sqlite drops the locking clause
// and relies on its single writer instead.
func (r *ApplicationRepository) GetByIDForUpdate(ctx context.Context, id string) (*application.Application, error) {
	var out application.Application
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&out).Error
	if err != nil {
		return nil, translate("application", id, err)
	}
	return &out, nil
}

func (r *ApplicationRepository) UpdateStatus(ctx context.Context, a *application.Application) error {
	res := r.db.WithContext(ctx).Model(a).
		Select("status", "submitted_at", "approved_at", "approved_by", "rejected_at", "disbursed_at", "updated_at").
		Updates(a)
	return affected("application", a.ID, res)
}

func (r *ApplicationRepository) List(ctx context.Context) ([]application.Application, error) {
	out := make([]application.Application, 0)
	if err := r.db.WithContext(ctx).Order("created_at DESC, id DESC").Find(&out).Error; err != nil {
		return nil, translate("application", "*", err)
	}
	return out, nil
}

func (r *ApplicationRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&application.Application{}).Count(&n).Error
	return n, translate("application", "*", err)
}

func (r *ApplicationRepository) CountByProduct(ctx context.Context, productID string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&application.Application{}).
		Where("product_id = ?", productID).
		Count(&n).Error
	return n, translate("application", "product="+productID, err)
}
