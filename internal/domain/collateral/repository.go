package collateral

import "context"

type Repository interface {
	Create(ctx context.Context, c *Collateral) error
	GetByID(ctx context.Context, id string) (*Collateral, error)
	Update(ctx context.Context, c *Collateral) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]Collateral, error)
	ListByLoan(ctx context.Context, loanID string) ([]Collateral, error)
}
