package gormrepo

import (
	"context"

	"lamf-backoffice/internal/domain/collateral"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CollateralRepository struct{ db *gorm.DB }

func NewCollateralRepository(db *gorm.DB) *CollateralRepository {
	return &CollateralRepository{db: db}
}

func (r *CollateralRepository) Create(ctx context.Context, c *collateral.Collateral) error {
	return translate("collateral", c.ID, r.db.WithContext(ctx).Omit(clause.Associations).Create(c).Error)
}

func (r *CollateralRepository) GetByID(ctx context.Context, id string) (*collateral.Collateral, error) {
	var out collateral.Collateral
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&out).Error; err != nil {
		return nil, translate("collateral", id, err)
	}
	return &out, nil
}

func (r *CollateralRepository) Update(ctx context.Context, c *collateral.Collateral) error {
	res := r.db.WithContext(ctx).Model(c).
		Select("units", "nav", "pledged_value", "updated_at").
		Updates(c)
	return affected("collateral", c.ID, res)
}

func (r *CollateralRepository) Delete(ctx context.Context, id string) error {
	return affected("collateral", id, r.db.WithContext(ctx).Where("id = ?", id).Delete(&collateral.Collateral{}))
}

func (r *CollateralRepository) List(ctx context.Context) ([]collateral.Collateral, error) {
	out := make([]collateral.Collateral, 0)
	if err := r.db.WithContext(ctx).Order("created_at ASC, id ASC").Find(&out).Error; err != nil {
		return nil, translate("collateral", "*", err)
	}
	return out, nil
}

func (r *CollateralRepository) ListByLoan(ctx context.Context, loanID string) ([]collateral.Collateral, error) {
	out := make([]collateral.Collateral, 0)
	err := r.db.WithContext(ctx).
		Where("loan_id = ?", loanID).
		Order("created_at ASC, id ASC").
		Find(&out).Error
	if err != nil {
		return nil, translate("collateral", "loan="+loanID, err)
	}
	return out, nil
}
