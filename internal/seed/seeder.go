package seed

import (
	"context"
	"fmt"

	domain "lamf-backoffice/internal/domain/application"
	"lamf-backoffice/internal/usecase/application"
	"lamf-backoffice/internal/usecase/collateral"
	"lamf-backoffice/internal/usecase/loan"
	"lamf-backoffice/internal/usecase/product"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// path to each reachable status from DRAFT
var walk = map[domain.Status][]domain.Status{
	domain.StatusDraft:     nil,
	domain.StatusSubmitted: {domain.StatusSubmitted},
	domain.StatusApproved:  {domain.StatusSubmitted, domain.StatusApproved},
	domain.StatusRejected:  {domain.StatusSubmitted, domain.StatusRejected},
	domain.StatusDisbursed: {domain.StatusSubmitted, domain.StatusApproved, domain.StatusDisbursed},
}

// Seeder drives fixtures through the usecases, so seeded rows obey the same rules as API traffic.
type Seeder struct {
	Products     *product.Usecase
	Applications *application.Usecase
	Loans        *loan.Usecase
	Collaterals  *collateral.Usecase
}

type Summary struct {
	Products, Applications, Loans, Collaterals, Repayments int
}

func (s *Seeder) Apply(ctx context.Context, f *Fixture) (*Summary, error) {
	sum := &Summary{}
	productIDs := make(map[string]string, len(f.Products))
	for _, pf := range f.Products {
		in, err := pf.input()
		if err != nil {
			return sum, err
		}
		p, err := s.Products.Create(ctx, in)
		if err != nil {
			return sum, fmt.Errorf("product %s: %w", pf.Ref, err)
		}
		productIDs[pf.Ref] = p.ID
		sum.Products++
	}

	for i, af := range f.Applications {
		target := domain.StatusDraft
		if af.Status != "" {
			st, ok := domain.ParseStatus(af.Status)
			if !ok {
				return sum, fmt.Errorf("application %d: unknown status %q", i, af.Status)
			}
			target = st
		}
		in, err := af.input(productIDs[af.Product])
		if err != nil {
			return sum, fmt.Errorf("application %d: %w", i, err)
		}
		app, err := s.Applications.Create(ctx, in)
		if err != nil {
			return sum, fmt.Errorf("application %d: %w", i, err)
		}
		sum.Applications++

		approver := af.ApprovedBy
		if approver == "" {
			approver = "seed"
		}
		for _, to := range walk[target] {
			if _, err := s.Applications.Transition(ctx, app.ID, to, approver); err != nil {
				return sum, fmt.Errorf("application %s -> %s: %w", app.ID, to, err)
			}
		}
		if target != domain.StatusDisbursed {
			continue
		}
		sum.Loans++

		if af.Pledge == nil && len(af.Repayments) == 0 {
			continue
		}
		booked, err := s.Loans.GetByApplication(ctx, app.ID)
		if err != nil {
			return sum, fmt.Errorf("loan for application %s: %w", app.ID, err)
		}
		l := booked.ID
		// the intake snapshot becomes a holding only here; disbursement never books one
		if in.Pledge != nil {
			if _, err := s.Collaterals.Add(ctx, collateral.AddInput{
				LoanID:   l,
				FundName: in.Pledge.FundName,
				ISIN:     in.Pledge.ISIN,
				Units:    in.Pledge.Units,
				NAV:      in.Pledge.NAV,
			}); err != nil {
				return sum, fmt.Errorf("pledge for loan %s: %w", l, err)
			}
			sum.Collaterals++
		}
		for _, raw := range af.Repayments {
			amt, err := decimal.NewFromString(raw)
			if err != nil {
				return sum, fmt.Errorf("repayment %q: %w", raw, err)
			}
			if _, err := s.Loans.Repay(ctx, l, loan.RepayInput{Amount: amt}); err != nil {
				return sum, fmt.Errorf("repay loan %s: %w", l, err)
			}
			sum.Repayments++
		}
	}
	zap.L().Info("seed applied",
		zap.Int("products", sum.Products),
		zap.Int("applications", sum.Applications),
		zap.Int("loans", sum.Loans),
		zap.Int("collaterals", sum.Collaterals),
		zap.Int("repayments", sum.Repayments),
	)
	return sum, nil
}

func (pf ProductFixture) input() (product.Input, error) {
	var in product.Input
	var err error
	in.Name, in.TenureMonths = pf.Name, pf.TenureMonths
	for _, f := range []struct {
		dst *decimal.Decimal
		raw string
	}{
		{&in.InterestRate, pf.InterestRate},
		{&in.MaxLTV, pf.MaxLTV},
		{&in.MinAmount, pf.MinAmount},
		{&in.MaxAmount, pf.MaxAmount},
	} {
		if *f.dst, err = decimal.NewFromString(f.raw); err != nil {
			return in, fmt.Errorf("product %s: %w", pf.Ref, err)
		}
	}
	return in, nil
}

func (af ApplicationFixture) input(productID string) (application.CreateInput, error) {
	amt, err := decimal.NewFromString(af.RequestedAmount)
	if err != nil {
		return application.CreateInput{}, err
	}
	in := application.CreateInput{ApplicantName: af.ApplicantName, ProductID: productID, RequestedAmount: amt}
	if p := af.Pledge; p != nil {
		units, err := decimal.NewFromString(p.Units)
		if err != nil {
			return in, fmt.Errorf("pledge units: %w", err)
		}
		nav, err := decimal.NewFromString(p.NAV)
		if err != nil {
			return in, fmt.Errorf("pledge nav: %w", err)
		}
		in.Pledge = &application.PledgeInput{FundName: p.FundName, ISIN: p.ISIN, Units: units, NAV: nav}
	}
	return in, nil
}
