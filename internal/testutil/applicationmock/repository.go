package applicationmock

import (
	"context"

	domain "lamf-backoffice/internal/domain/application"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateFn           func(ctx context.Context, a *domain.Application) error
	GetByIDFn          func(ctx context.Context, id string) (*domain.Application, error)
	GetByIDForUpdateFn func(ctx context.Context, id string) (*domain.Application, error)
	UpdateStatusFn     func(ctx context.Context, a *domain.Application) error
	ListFn             func(ctx context.Context) ([]domain.Application, error)
	CountFn            func(ctx context.Context) (int64, error)
	CountByProductFn   func(ctx context.Context, productID string) (int64, error)
}

func (m *Repo) Create(ctx context.Context, a *domain.Application) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, a)
	}
	return nil
}

func (m *Repo) GetByID(ctx context.Context, id string) (*domain.Application, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByIDForUpdate(ctx context.Context, id string) (*domain.Application, error) {
	if m.GetByIDForUpdateFn != nil {
		return m.GetByIDForUpdateFn(ctx, id)
	}
	return nil, context.Canceled
}

func (m *Repo) UpdateStatus(ctx context.Context, a *domain.Application) error {
	if m.UpdateStatusFn != nil {
		return m.UpdateStatusFn(ctx, a)
	}
	return nil
}

func (m *Repo) List(ctx context.Context) ([]domain.Application, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}
	return nil, context.Canceled
}

func (m *Repo) Count(ctx context.Context) (int64, error) {
	if m.CountFn != nil {
		return m.CountFn(ctx)
	}
	return 0, nil
}

func (m *Repo) CountByProduct(ctx context.Context, productID string) (int64, error) {
	if m.CountByProductFn != nil {
		return m.CountByProductFn(ctx, productID)
	}
	return 0, nil
}
