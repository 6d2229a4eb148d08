package dashboard

import (
	"context"
	"sort"
	"time"

	"lamf-backoffice/internal/domain/collateral"
	"lamf-backoffice/internal/domain/loan"
	"lamf-backoffice/internal/domain/uow"

	"github.com/shopspring/decimal"
)

// Usecase is a read-only projection recomputed from the ledger on every call.
type Usecase struct {
	uow uow.UnitOfWork
}

func NewUsecase(tx uow.UnitOfWork) *Usecase {
	return &Usecase{uow: tx}
}

var hundred = decimal.NewFromInt(100)

// Compute sums sanctioned amounts over every loan ever disbursed, open or closed.
// The three reads share one snapshot, so a loan booked mid-call is either fully
// counted or not at all.
func (u *Usecase) Compute(ctx context.Context) (*Stats, error) {
	var (
		total int64
		loans []loan.Loan
		cols  []collateral.Collateral
	)
	err := u.uow.WithinReadTx(ctx, func(r uow.Repos) error {
		var err error
		if total, err = r.Applications.Count(ctx); err != nil {
			return err
		}
		if loans, err = r.Loans.List(ctx); err != nil {
			return err
		}
		cols, err = r.Collaterals.List(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}

	st := &Stats{TotalApplications: total, TotalDisbursed: decimal.Zero}
	sanctioned := make(map[string]decimal.Decimal, len(loans))
	for _, l := range loans {
		if l.Status == loan.StatusActive {
			st.ActiveLoans++
		}
		st.TotalDisbursed = st.TotalDisbursed.Add(l.SanctionedAmount)
		sanctioned[l.ID] = l.SanctionedAmount
	}
	st.TotalCollateral = collateral.Sum(cols)
	st.RiskPercent = riskPercent(cols, sanctioned)
	return st, nil
}

// riskPercent attributes to each collateral the sanctioned amount of its loan.
// A loan secured by two holdings is counted once per holding.
func riskPercent(cols []collateral.Collateral, sanctioned map[string]decimal.Decimal) decimal.Decimal {
	pledged, against := decimal.Zero, decimal.Zero
	for _, c := range cols {
		s, ok := sanctioned[c.LoanID]
		if !ok {
			continue
		}
		pledged = pledged.Add(c.PledgedValue)
		against = against.Add(s)
	}
	if !against.IsPositive() {
		return decimal.Zero
	}
	return pledged.Div(against).Mul(hundred).Round(2)
}

type monthKey struct {
	year  int
	month time.Month
}

// DisbursementTrend buckets sanctioned amounts by the UTC calendar month of disbursement, oldest first.
func (u *Usecase) DisbursementTrend(ctx context.Context) ([]TrendPoint, error) {
	var loans []loan.Loan
	err := u.uow.WithinReadTx(ctx, func(r uow.Repos) (err error) {
		loans, err = r.Loans.List(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	buckets := make(map[monthKey]decimal.Decimal)
	for _, l := range loans {
		at := l.DisbursedAt.UTC()
		k := monthKey{at.Year(), at.Month()}
		buckets[k] = buckets[k].Add(l.SanctionedAmount)
	}

	keys := make([]monthKey, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].year != keys[j].year {
			return keys[i].year < keys[j].year
		}
		return keys[i].month < keys[j].month
	})

	out := make([]TrendPoint, 0, len(keys))
	for _, k := range keys {
		out = append(out, TrendPoint{
			Year:   k.year,
			Month:  int(k.month),
			Label:  time.Date(k.year, k.month, 1, 0, 0, 0, 0, time.UTC).Format("Jan-2006"),
			Amount: buckets[k],
		})
	}
	return out, nil
}
