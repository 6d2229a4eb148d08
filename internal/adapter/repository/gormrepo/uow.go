package gormrepo

import (
	"context"
	"database/sql"

	"lamf-backoffice/internal/domain/application"
	"lamf-backoffice/internal/domain/apperr"
	"lamf-backoffice/internal/domain/loan"
	"lamf-backoffice/internal/domain/uow"

	"gorm.io/gorm"
)

type GormUoW struct{ db *gorm.DB }

func NewGormUoW(db *gorm.DB) *GormUoW { return &GormUoW{db: db} }

func reposFor(tx *gorm.DB) uow.Repos {
	return uow.Repos{
		Products:     &ProductRepository{db: tx},
		Applications: &ApplicationRepository{db: tx},
		Loans:        &LoanRepository{db: tx},
		Collaterals:  &CollateralRepository{db: tx},
	}
}

var snapshot = &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true}

// WithinTx returns fn's error unchanged; a begin/commit failure becomes ErrPersistence.
func (u *GormUoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	return u.run(ctx, fn)
}

// WithinReadTx runs fn in a read-only repeatable-read transaction. sqlite
// ignores the options; its transactions are serializable anyway.
func (u *GormUoW) WithinReadTx(ctx context.Context, fn func(r uow.Repos) error) error {
	return u.run(ctx, fn, snapshot)
}

func (u *GormUoW) run(ctx context.Context, fn func(r uow.Repos) error, opts ...*sql.TxOptions) error {
	var fnErr error
	err := u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		fnErr = fn(reposFor(tx))
		return fnErr
	}, opts...)
	if err != nil && fnErr == nil {
		return apperr.Persistence("transaction", err)
	}
	return err
}

func (u *GormUoW) WithinApplicationTx(ctx context.Context, applicationID string, fn func(r uow.Repos, a *application.Application) error) error {
	return u.WithinTx(ctx, func(r uow.Repos) error {
		// lock the application row up-front to serialize transitions
		a, err := r.Applications.GetByIDForUpdate(ctx, applicationID)
		if err != nil {
			return err
		}
		return fn(r, a)
	})
}

func (u *GormUoW) WithinLoanTx(ctx context.Context, loanID string, fn func(r uow.Repos, l *loan.Loan) error) error {
	return u.WithinTx(ctx, func(r uow.Repos) error {
		// lock the loan row up-front to prevent two repayments reading the same balance
		l, err := r.Loans.GetByIDForUpdate(ctx, loanID)
		if err != nil {
			return err
		}
		return fn(r, l)
	})
}
