package uow

import (
	"context"

	"lamf-backoffice/internal/domain/application"
	"lamf-backoffice/internal/domain/collateral"
	"lamf-backoffice/internal/domain/loan"
	"lamf-backoffice/internal/domain/product"
)

// Repos are bound to one transaction; use them only inside the callback.
type Repos struct {
	Products     product.Repository
	Applications application.Repository
	Loans        loan.Repository
	Collaterals  collateral.Repository
}

type UnitOfWork interface {
	// plain tx: commits when fn returns nil, rolls back otherwise
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// read-only, repeatable-read: every read in fn sees one snapshot
	WithinReadTx(ctx context.Context, fn func(r Repos) error) error
	// lock the application row first, then pass it in
	WithinApplicationTx(ctx context.Context, applicationID string, fn func(r Repos, a *application.Application) error) error
	// lock the loan row first, then pass it in
	WithinLoanTx(ctx context.Context, loanID string, fn func(r Repos, l *loan.Loan) error) error
}
