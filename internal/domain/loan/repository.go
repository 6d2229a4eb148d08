package loan

import "context"

type Repository interface {
	Create(ctx context.Context, l *Loan) error
	GetByID(ctx context.Context, id string) (*Loan, error)
	// GetByIDForUpdate locks the row until the enclosing transaction ends.
	GetByIDForUpdate(ctx context.Context, id string) (*Loan, error)
	GetByApplicationID(ctx context.Context, applicationID string) (*Loan, error)
	Update(ctx context.Context, l *Loan) error
	List(ctx context.Context) ([]Loan, error)
}
