package loan

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"lamf-backoffice/internal/domain/application"
	"lamf-backoffice/internal/domain/apperr"

	"github.com/shopspring/decimal"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func newActive(amount string) *Loan {
	start := time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)
	return &Loan{
		ID:                "L1",
		ApplicationID:     "A1",
		SanctionedAmount:  d(amount),
		OutstandingAmount: d(amount),
		Status:            StatusActive,
		StartDate:         start,
		NextEMIDate:       AddMonth(start),
		DisbursedAt:       start,
	}
}

func TestNew_FromApplication(t *testing.T) {
	now := time.Date(2026, 5, 2, 8, 30, 0, 0, time.UTC)
	app := &application.Application{ID: "A9", RequestedAmount: d("500000")}

	l := New("L9", app, now)
	if !l.SanctionedAmount.Equal(d("500000")) || !l.OutstandingAmount.Equal(l.SanctionedAmount) {
		t.Fatalf("amounts: %+v", l)
	}
	if l.Status != StatusActive || l.ApplicationID != "A9" {
		t.Fatalf("unexpected loan: %+v", l)
	}
	if !l.StartDate.Equal(now) || !l.NextEMIDate.Equal(time.Date(2026, 6, 2, 8, 30, 0, 0, time.UTC)) {
		t.Fatalf("dates: start=%v next=%v", l.StartDate, l.NextEMIDate)
	}
}

func TestRepay_Scenario(t *testing.T) {
	l := newActive("500000")
	firstDue := l.NextEMIDate
	now := time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC)

	if err := l.Repay(d("200000"), now); err != nil {
		t.Fatalf("repay 200000: %v", err)
	}
	if !l.OutstandingAmount.Equal(d("300000")) || l.Status != StatusActive {
		t.Fatalf("after first repay: %+v", l)
	}
	if !l.NextEMIDate.Equal(AddMonth(firstDue)) {
		t.Fatalf("next emi not advanced: %v", l.NextEMIDate)
	}

	due := l.NextEMIDate
	if err := l.Repay(d("300000"), now); err != nil {
		t.Fatalf("repay 300000: %v", err)
	}
	if !l.OutstandingAmount.IsZero() || l.Status != StatusClosed || l.ClosedAt == nil {
		t.Fatalf("after closing repay: %+v", l)
	}
	if !l.NextEMIDate.Equal(due) {
		t.Fatalf("next emi must not move on closure: %v vs %v", l.NextEMIDate, due)
	}

	err := l.Repay(d("1"), now)
	if !errors.Is(err, apperr.ErrInvalidState) {
		t.Fatalf("repay on closed: want ErrInvalidState, got %v", err)
	}
}

func TestRepay_RejectsBadAmountsWithoutMutation(t *testing.T) {
	for _, amt := range []string{"0", "-5", "500000.01", "900000", "0.001", "100.125"} {
		l := newActive("500000")
		before := *l
		err := l.Repay(d(amt), time.Now())
		if !errors.Is(err, apperr.ErrInvalidAmount) {
			t.Fatalf("amount %s: want ErrInvalidAmount, got %v", amt, err)
		}
		if !reflect.DeepEqual(*l, before) {
			t.Fatalf("amount %s mutated loan: %+v", amt, l)
		}
	}
}

func TestRepay_SubCentAmountCannotStrandLoan(t *testing.T) {
	l := newActive("100")
	err := l.Repay(d("99.999"), time.Now())
	var ae *apperr.AmountError
	if !errors.As(err, &ae) || ae.Field != "amount" {
		t.Fatalf("want AmountError on amount, got %v", err)
	}
	if !l.OutstandingAmount.Equal(d("100")) || l.Status != StatusActive {
		t.Fatalf("loan mutated: %+v", l)
	}
	if err := l.Repay(d("100.00"), time.Now()); err != nil || l.Status != StatusClosed {
		t.Fatalf("full repayment after refusal: %v %+v", err, l)
	}
}

func TestRepay_OutstandingInvariant(t *testing.T) {
	l := newActive("1000")
	for _, amt := range []string{"100", "250.50", "0.50", "649"} {
		old := l.OutstandingAmount
		if err := l.Repay(d(amt), time.Now()); err != nil {
			t.Fatalf("repay %s: %v", amt, err)
		}
		if !l.OutstandingAmount.Equal(old.Sub(d(amt))) {
			t.Fatalf("outstanding %s, want %s", l.OutstandingAmount, old.Sub(d(amt)))
		}
		if l.OutstandingAmount.IsZero() != (l.Status == StatusClosed) {
			t.Fatalf("closed iff zero violated: %+v", l)
		}
	}
	if l.Status != StatusClosed {
		t.Fatalf("loan should be closed, got %s", l.Status)
	}
}

func TestAddMonth(t *testing.T) {
	tests := []struct{ in, want time.Time }{
		{time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC), time.Date(2026, 2, 15, 0, 0, 0, 0, time.UTC)},
		{time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC), time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC)},
		{time.Date(2028, 1, 31, 0, 0, 0, 0, time.UTC), time.Date(2028, 2, 29, 0, 0, 0, 0, time.UTC)},
		{time.Date(2026, 12, 20, 5, 0, 0, 0, time.UTC), time.Date(2027, 1, 20, 5, 0, 0, 0, time.UTC)},
		{time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC), time.Date(2026, 4, 30, 0, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		if got := AddMonth(tt.in); !got.Equal(tt.want) {
			t.Errorf("AddMonth(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestRepaidPercent(t *testing.T) {
	l := newActive("500000")
	l.OutstandingAmount = d("320000")
	if got := l.RepaidPercent(); !got.Equal(d("36")) {
		t.Fatalf("RepaidPercent = %s, want 36", got)
	}
	if got := (&Loan{}).RepaidPercent(); !got.IsZero() {
		t.Fatalf("zero sanctioned should give 0, got %s", got)
	}
}
