package gormrepo

import (
	"context"

	"lamf-backoffice/internal/domain/loan"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type LoanRepository struct{ db *gorm.DB }

func NewLoanRepository(db *gorm.DB) *LoanRepository { return &LoanRepository{db: db} }

func (r *LoanRepository) Create(ctx context.Context, l *loan.Loan) error {
	return translate("loan", l.ID, r.db.WithContext(ctx).Omit(clause.Associations).Create(l).Error)
}

func (r *LoanRepository) GetByID(ctx context.Context, id string) (*loan.Loan, error) {
	var out loan.Loan
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&out).Error; err != nil {
		return nil, translate("loan", id, err)
	}
	return &out, nil
}

func (r *LoanRepository) GetByIDForUpdate(ctx context.Context, id string) (*loan.Loan, error) {
	var out loan.Loan
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&out).Error
	if err != nil {
		return nil, translate("loan", id, err)
	}
	return &out, nil
}

func (r *LoanRepository) GetByApplicationID(ctx context.Context, applicationID string) (*loan.Loan, error) {
	var out loan.Loan
	if err := r.db.WithContext(ctx).Where("application_id = ?", applicationID).First(&out).Error; err != nil {
		return nil, translate("loan", "application="+applicationID, err)
	}
	return &out, nil
}

// Update persists the fields the repayment engine owns.
func (r *LoanRepository) Update(ctx context.Context, l *loan.Loan) error {
	res := r.db.WithContext(ctx).Model(l).
		Select("outstanding_amount", "status", "next_emi_date", "closed_at", "updated_at").
		Updates(l)
	return affected("loan", l.ID, res)
}

func (r *LoanRepository) List(ctx context.Context) ([]loan.Loan, error) {
	out := make([]loan.Loan, 0)
	if err := r.db.WithContext(ctx).Order("disbursed_at DESC, id DESC").Find(&out).Error; err != nil {
		return nil, translate("loan", "*", err)
	}
	return out, nil
}
