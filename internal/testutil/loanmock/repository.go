package loanmock

import (
	"context"

	domain "lamf-backoffice/internal/domain/loan"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateFn             func(ctx context.Context, l *domain.Loan) error
	GetByIDFn            func(ctx context.Context, id string) (*domain.Loan, error)
	GetByIDForUpdateFn   func(ctx context.Context, id string) (*domain.Loan, error)
	GetByApplicationIDFn func(ctx context.Context, applicationID string) (*domain.Loan, error)
	UpdateFn             func(ctx context.Context, l *domain.Loan) error
	ListFn               func(ctx context.Context) ([]domain.Loan, error)
}

func (m *Repo) Create(ctx context.Context, l *domain.Loan) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, l)
	}
	return nil
}

func (m *Repo) GetByID(ctx context.Context, id string) (*domain.Loan, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByIDForUpdate(ctx context.Context, id string) (*domain.Loan, error) {
	if m.GetByIDForUpdateFn != nil {
		return m.GetByIDForUpdateFn(ctx, id)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByApplicationID(ctx context.Context, applicationID string) (*domain.Loan, error) {
	if m.GetByApplicationIDFn != nil {
		return m.GetByApplicationIDFn(ctx, applicationID)
	}
	return nil, context.Canceled
}

func (m *Repo) Update(ctx context.Context, l *domain.Loan) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, l)
	}
	return nil
}

func (m *Repo) List(ctx context.Context) ([]domain.Loan, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}
	return nil, context.Canceled
}
