package collateralmock

import (
	"context"

	domain "lamf-backoffice/internal/domain/collateral"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateFn     func(ctx context.Context, c *domain.Collateral) error
	GetByIDFn    func(ctx context.Context, id string) (*domain.Collateral, error)
	UpdateFn     func(ctx context.Context, c *domain.Collateral) error
	DeleteFn     func(ctx context.Context, id string) error
	ListFn       func(ctx context.Context) ([]domain.Collateral, error)
	ListByLoanFn func(ctx context.Context, loanID string) ([]domain.Collateral, error)
}

func (m *Repo) Create(ctx context.Context, c *domain.Collateral) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, c)
	}
	return nil
}

func (m *Repo) GetByID(ctx context.Context, id string) (*domain.Collateral, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, context.Canceled
}

func (m *Repo) Update(ctx context.Context, c *domain.Collateral) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, c)
	}
	return nil
}

func (m *Repo) Delete(ctx context.Context, id string) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	return nil
}

func (m *Repo) List(ctx context.Context) ([]domain.Collateral, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}
	return nil, context.Canceled
}

func (m *Repo) ListByLoan(ctx context.Context, loanID string) ([]domain.Collateral, error) {
	if m.ListByLoanFn != nil {
		return m.ListByLoanFn(ctx, loanID)
	}
	return nil, context.Canceled
}
