package collateral

import (
	"context"
	"strings"

	"lamf-backoffice/internal/domain/apperr"
	"lamf-backoffice/internal/domain/collateral"
	"lamf-backoffice/internal/domain/uow"
	"lamf-backoffice/pkg/id"

	"go.uber.org/zap"
)

type Usecase struct {
	repo collateral.Repository
	uow  uow.UnitOfWork
}

func NewUsecase(r collateral.Repository, tx uow.UnitOfWork) *Usecase {
	return &Usecase{repo: r, uow: tx}
}

func (u *Usecase) Add(ctx context.Context, in AddInput) (*CollateralDTO, error) {
	fund := strings.TrimSpace(in.FundName)
	if fund == "" {
		return nil, apperr.Invalid("fund_name", "is required")
	}
	if !collateral.ValidISIN(in.ISIN) {
		return nil, apperr.Invalid("isin", "is not a valid ISIN")
	}
	c := &collateral.Collateral{ID: id.New(), LoanID: in.LoanID, FundName: fund, ISIN: in.ISIN}
	if err := c.Revalue(in.Units, in.NAV); err != nil {
		return nil, err
	}

	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		if _, err := r.Loans.GetByID(ctx, in.LoanID); err != nil {
			return err
		}
		return r.Collaterals.Create(ctx, c)
	})
	if err != nil {
		zap.L().Debug("collateral not added", zap.String("loan_id", in.LoanID), zap.Error(err))
		return nil, err
	}
	zap.L().Info("collateral pledged",
		zap.String("collateral_id", c.ID),
		zap.String("loan_id", c.LoanID),
		zap.String("pledged_value", c.PledgedValue.String()),
	)
	return ToDTO(c), nil
}

// Update revalues the holding; pledged_value is recomputed from the new units and nav.
func (u *Usecase) Update(ctx context.Context, collateralID string, in UpdateInput) (*CollateralDTO, error) {
	var dto *CollateralDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		c, err := r.Collaterals.GetByID(ctx, collateralID)
		if err != nil {
			return err
		}
		if err := c.Revalue(in.Units, in.NAV); err != nil {
			return err
		}
		if err := r.Collaterals.Update(ctx, c); err != nil {
			return err
		}
		dto = ToDTO(c)
		return nil
	})
	if err != nil {
		return nil, err
	}
	zap.L().Info("collateral revalued", zap.String("collateral_id", collateralID), zap.String("pledged_value", dto.PledgedValue.String()))
	return dto, nil
}

func (u *Usecase) Delete(ctx context.Context, collateralID string) error {
	if err := u.repo.Delete(ctx, collateralID); err != nil {
		return err
	}
	zap.L().Info("collateral released", zap.String("collateral_id", collateralID))
	return nil
}

func (u *Usecase) List(ctx context.Context) ([]CollateralDTO, error) {
	cs, err := u.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return toDTOs(cs), nil
}

// ListByLoan reports NotFound for an unknown loan rather than an empty list.
func (u *Usecase) ListByLoan(ctx context.Context, loanID string) ([]CollateralDTO, error) {
	var out []CollateralDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		if _, err := r.Loans.GetByID(ctx, loanID); err != nil {
			return err
		}
		cs, err := r.Collaterals.ListByLoan(ctx, loanID)
		if err != nil {
			return err
		}
		out = toDTOs(cs)
		return nil
	})
	return out, err
}

func toDTOs(cs []collateral.Collateral) []CollateralDTO {
	out := make([]CollateralDTO, 0, len(cs))
	for i := range cs {
		out = append(out, *ToDTO(&cs[i]))
	}
	return out
}

func ToDTO(c *collateral.Collateral) *CollateralDTO {
	return &CollateralDTO{
		ID:           c.ID,
		LoanID:       c.LoanID,
		FundName:     c.FundName,
		ISIN:         c.ISIN,
		Units:        c.Units,
		NAV:          c.NAV,
		PledgedValue: c.PledgedValue,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}
