package product

import (
	"context"
	"strings"

	"lamf-backoffice/internal/domain/apperr"
	"lamf-backoffice/internal/domain/money"
	"lamf-backoffice/internal/domain/product"
	"lamf-backoffice/internal/domain/uow"
	"lamf-backoffice/pkg/id"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type Usecase struct {
	repo product.Repository
	uow  uow.UnitOfWork
}

func NewUsecase(r product.Repository, tx uow.UnitOfWork) *Usecase {
	return &Usecase{repo: r, uow: tx}
}

var hundred = decimal.NewFromInt(100)

func validate(in Input) error {
	switch {
	case strings.TrimSpace(in.Name) == "":
		return apperr.Invalid("name", "is required")
	case in.InterestRate.IsNegative():
		return &apperr.AmountError{Field: "interest_rate", Amount: in.InterestRate, Reason: "must not be negative"}
	case !in.MaxLTV.IsPositive() || in.MaxLTV.GreaterThan(hundred):
		return &apperr.AmountError{Field: "max_ltv", Amount: in.MaxLTV, Reason: "must be in (0, 100]"}
	case !in.MinAmount.IsPositive():
		return &apperr.AmountError{Field: "min_amount", Amount: in.MinAmount, Reason: "must be positive"}
	case !money.Exact(in.MinAmount):
		return &apperr.AmountError{Field: "min_amount", Amount: in.MinAmount, Reason: "must have at most 2 decimal places"}
	case !money.Exact(in.MaxAmount):
		return &apperr.AmountError{Field: "max_amount", Amount: in.MaxAmount, Reason: "must have at most 2 decimal places"}
	case in.MaxAmount.LessThan(in.MinAmount):
		return &apperr.AmountError{Field: "max_amount", Amount: in.MaxAmount, Reason: "must not be below min_amount " + in.MinAmount.String()}
	case in.TenureMonths <= 0:
		return apperr.Invalid("tenure_months", "must be positive")
	}
	return nil
}

func apply(p *product.Product, in Input) {
	p.Name = strings.TrimSpace(in.Name)
	p.InterestRate = in.InterestRate
	p.MaxLTV = in.MaxLTV
	p.MinAmount = in.MinAmount
	p.MaxAmount = in.MaxAmount
	p.TenureMonths = in.TenureMonths
}

func (u *Usecase) Create(ctx context.Context, in Input) (*ProductDTO, error) {
	if err := validate(in); err != nil {
		return nil, err
	}
	p := &product.Product{ID: id.New()}
	apply(p, in)
	if err := u.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	zap.L().Info("product created", zap.String("product_id", p.ID), zap.String("name", p.Name))
	return ToDTO(p), nil
}

func (u *Usecase) Get(ctx context.Context, productID string) (*ProductDTO, error) {
	p, err := u.repo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	return ToDTO(p), nil
}

func (u *Usecase) List(ctx context.Context) ([]ProductDTO, error) {
	ps, err := u.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]ProductDTO, 0, len(ps))
	for i := range ps {
		out = append(out, *ToDTO(&ps[i]))
	}
	return out, nil
}

// Update replaces the editable terms. Existing applications keep their
// requested amount even if it falls outside the new bounds.
func (u *Usecase) Update(ctx context.Context, productID string, in Input) (*ProductDTO, error) {
	if err := validate(in); err != nil {
		return nil, err
	}
	var dto *ProductDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		p, err := r.Products.GetByID(ctx, productID)
		if err != nil {
			return err
		}
		apply(p, in)
		if err := r.Products.Update(ctx, p); err != nil {
			return err
		}
		dto = ToDTO(p)
		return nil
	})
	if err != nil {
		return nil, err
	}
	zap.L().Info("product updated", zap.String("product_id", productID))
	return dto, nil
}

// Delete refuses while any application references the product; the FK is the backstop.
func (u *Usecase) Delete(ctx context.Context, productID string) error {
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		if _, err := r.Products.GetByID(ctx, productID); err != nil {
			return err
		}
		n, err := r.Applications.CountByProduct(ctx, productID)
		if err != nil {
			return err
		}
		if n > 0 {
			return &apperr.StateError{Entity: "product", ID: productID, Status: "REFERENCED", Op: "delete"}
		}
		return r.Products.Delete(ctx, productID)
	})
	if err != nil {
		zap.L().Debug("product delete refused", zap.String("product_id", productID), zap.Error(err))
		return err
	}
	zap.L().Info("product deleted", zap.String("product_id", productID))
	return nil
}

func ToDTO(p *product.Product) *ProductDTO {
	return &ProductDTO{
		ID:           p.ID,
		Name:         p.Name,
		InterestRate: p.InterestRate,
		MaxLTV:       p.MaxLTV,
		MinAmount:    p.MinAmount,
		MaxAmount:    p.MaxAmount,
		TenureMonths: p.TenureMonths,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}
