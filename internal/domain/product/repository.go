package product

import "context"

type Repository interface {
	Create(ctx context.Context, p *Product) error
	GetByID(ctx context.Context, id string) (*Product, error)
	Update(ctx context.Context, p *Product) error
	// Delete removes the row; the store refuses while applications reference it.
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]Product, error)
}
