package risk

import (
	"context"
	"errors"

	"lamf-backoffice/internal/domain/application"
	"lamf-backoffice/internal/domain/collateral"
	"lamf-backoffice/internal/domain/loan"
	"lamf-backoffice/internal/domain/product"

	"go.uber.org/zap"
)

type Usecase struct {
	products     product.Repository
	applications application.Repository
	loans        loan.Repository
	collaterals  collateral.Repository
}

func NewUsecase(p product.Repository, a application.Repository, l loan.Repository, c collateral.Repository) *Usecase {
	return &Usecase{products: p, applications: a, loans: l, collaterals: c}
}

// LoanLTV values the loan's pledged holdings against its outstanding balance
// and classifies it against the product's max LTV.
func (u *Usecase) LoanLTV(ctx context.Context, loanID string) (*LTVReport, error) {
	l, err := u.loans.GetByID(ctx, loanID)
	if err != nil {
		return nil, err
	}
	return u.report(ctx, l)
}

func (u *Usecase) report(ctx context.Context, l *loan.Loan) (*LTVReport, error) {
	app, err := u.applications.GetByID(ctx, l.ApplicationID)
	if err != nil {
		return nil, err
	}
	p, err := u.products.GetByID(ctx, app.ProductID)
	if err != nil {
		return nil, err
	}
	cols, err := u.collaterals.ListByLoan(ctx, l.ID)
	if err != nil {
		return nil, err
	}

	rep := &LTVReport{
		LoanID:       l.ID,
		Outstanding:  l.OutstandingAmount,
		PledgedValue: collateral.Sum(cols),
		MaxLTV:       p.MaxLTV,
	}
	ltv, err := collateral.LTV(l.OutstandingAmount, rep.PledgedValue)
	switch {
	case errors.Is(err, collateral.ErrUndefinedLTV):
		rep.RiskStatus = collateral.RiskUndefined
	case err != nil:
		return nil, err
	default:
		rep.LTV = &ltv
		rep.RiskStatus = collateral.Classify(ltv, p.MaxLTV)
	}
	return rep, nil
}

// Sweep checks every active loan and logs the ones that are under-collateralized
// or have nothing pledged. It never changes a loan.
func (u *Usecase) Sweep(ctx context.Context) (*SweepResult, error) {
	loans, err := u.loans.List(ctx)
	if err != nil {
		return nil, err
	}
	res := &SweepResult{Flagged: make([]LTVReport, 0)}
	for i := range loans {
		l := &loans[i]
		if l.Status != loan.StatusActive {
			continue
		}
		if err := ctx.Err(); err != nil {
			return res, err
		}
		rep, err := u.report(ctx, l)
		if err != nil {
			zap.L().Error("risk sweep: loan skipped", zap.String("loan_id", l.ID), zap.Error(err))
			continue
		}
		res.Checked++
		if rep.RiskStatus == collateral.RiskNormal {
			continue
		}
		res.Flagged = append(res.Flagged, *rep)
		fields := []zap.Field{
			zap.String("loan_id", rep.LoanID),
			zap.String("risk_status", string(rep.RiskStatus)),
			zap.String("outstanding", rep.Outstanding.String()),
			zap.String("pledged_value", rep.PledgedValue.String()),
			zap.String("max_ltv", rep.MaxLTV.String()),
		}
		if rep.LTV != nil {
			fields = append(fields, zap.String("ltv", rep.LTV.String()))
		}
		zap.L().Warn("risk sweep: loan flagged", fields...)
	}
	zap.L().Info("risk sweep finished", zap.Int("checked", res.Checked), zap.Int("flagged", len(res.Flagged)))
	return res, nil
}
