package application

import "context"

type Repository interface {
	Create(ctx context.Context, a *Application) error
	GetByID(ctx context.Context, id string) (*Application, error)
	// GetByIDForUpdate locks the row until the enclosing transaction ends.
	GetByIDForUpdate(ctx context.Context, id string) (*Application, error)
	// UpdateStatus persists the status and lifecycle timestamps produced by Transition.
	UpdateStatus(ctx context.Context, a *Application) error
	List(ctx context.Context) ([]Application, error)
	Count(ctx context.Context) (int64, error)
	CountByProduct(ctx context.Context, productID string) (int64, error)
}
