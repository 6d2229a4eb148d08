package risk

import (
	"context"
	"errors"
	"testing"

	"lamf-backoffice/internal/domain/application"
	"lamf-backoffice/internal/domain/apperr"
	"lamf-backoffice/internal/domain/collateral"
	"lamf-backoffice/internal/domain/loan"
	"lamf-backoffice/internal/domain/product"
	"lamf-backoffice/internal/testutil/applicationmock"
	"lamf-backoffice/internal/testutil/collateralmock"
	"lamf-backoffice/internal/testutil/loanmock"
	"lamf-backoffice/internal/testutil/productmock"

	"github.com/shopspring/decimal"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// fixture: every loan belongs to application "A-<loan>" on product P1 (max LTV 50).
func newUsecase(loans []loan.Loan, cols map[string][]collateral.Collateral) *Usecase {
	byID := make(map[string]loan.Loan, len(loans))
	for _, l := range loans {
		byID[l.ID] = l
	}
	return NewUsecase(
		&productmock.Repo{GetByIDFn: func(_ context.Context, id string) (*product.Product, error) {
			return &product.Product{ID: id, MaxLTV: d("50")}, nil
		}},
		&applicationmock.Repo{GetByIDFn: func(_ context.Context, id string) (*application.Application, error) {
			if id == "A-broken" {
				return nil, apperr.NotFound("application", id)
			}
			return &application.Application{ID: id, ProductID: "P1"}, nil
		}},
		&loanmock.Repo{
			GetByIDFn: func(_ context.Context, id string) (*loan.Loan, error) {
				l, ok := byID[id]
				if !ok {
					return nil, apperr.NotFound("loan", id)
				}
				return &l, nil
			},
			ListFn: func(context.Context) ([]loan.Loan, error) { return loans, nil },
		},
		&collateralmock.Repo{ListByLoanFn: func(_ context.Context, loanID string) ([]collateral.Collateral, error) {
			return cols[loanID], nil
		}},
	)
}

func mkLoan(id, outstanding string, st loan.Status) loan.Loan {
	return loan.Loan{ID: id, ApplicationID: "A-" + id, OutstandingAmount: d(outstanding), SanctionedAmount: d(outstanding), Status: st}
}

func TestLoanLTV(t *testing.T) {
	uc := newUsecase(
		[]loan.Loan{mkLoan("ok", "300000", loan.StatusActive), mkLoan("high", "2000000", loan.StatusActive), mkLoan("bare", "1000", loan.StatusActive)},
		map[string][]collateral.Collateral{
			"ok":   {{PledgedValue: d("1020750")}},
			"high": {{PledgedValue: d("1020750")}},
		},
	)
	ctx := context.Background()

	tests := []struct {
		loanID string
		ltv    string
		status collateral.RiskStatus
	}{
		{"ok", "29.39", collateral.RiskNormal},
		{"high", "195.93", collateral.RiskUnderCollateralized},
		{"bare", "", collateral.RiskUndefined},
	}
	for _, tt := range tests {
		rep, err := uc.LoanLTV(ctx, tt.loanID)
		if err != nil {
			t.Fatalf("%s: %v", tt.loanID, err)
		}
		if rep.RiskStatus != tt.status {
			t.Errorf("%s: status = %s, want %s", tt.loanID, rep.RiskStatus, tt.status)
		}
		if tt.ltv == "" {
			if rep.LTV != nil {
				t.Errorf("%s: ltv must be undefined, got %s", tt.loanID, rep.LTV)
			}
			continue
		}
		if rep.LTV == nil || !rep.LTV.Equal(d(tt.ltv)) {
			t.Errorf("%s: ltv = %v, want %s", tt.loanID, rep.LTV, tt.ltv)
		}
	}

	if _, err := uc.LoanLTV(ctx, "ghost"); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestSweep_FlagsOnlyRiskyActiveLoans(t *testing.T) {
	loans := []loan.Loan{
		mkLoan("ok", "300000", loan.StatusActive),
		mkLoan("high", "2000000", loan.StatusActive),
		mkLoan("bare", "1000", loan.StatusActive),
		mkLoan("closed", "0", loan.StatusClosed),
		mkLoan("broken", "10", loan.StatusActive),
	}
	uc := newUsecase(loans, map[string][]collateral.Collateral{
		"ok":   {{PledgedValue: d("1020750")}},
		"high": {{PledgedValue: d("1020750")}},
	})

	res, err := uc.Sweep(context.Background())
	if err != nil {
		t.Fatalf("Sweep: %v", err)
	}
	if res.Checked != 3 {
		t.Fatalf("checked = %d, want 3", res.Checked)
	}
	if len(res.Flagged) != 2 || res.Flagged[0].LoanID != "high" || res.Flagged[1].LoanID != "bare" {
		t.Fatalf("flagged = %+v", res.Flagged)
	}
	if !loans[1].OutstandingAmount.Equal(d("2000000")) {
		t.Fatal("sweep must not mutate loans")
	}
}

func TestSweep_StopsOnCancelledContext(t *testing.T) {
	uc := newUsecase([]loan.Loan{mkLoan("ok", "1", loan.StatusActive)}, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := uc.Sweep(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("want context.Canceled, got %v", err)
	}
}
