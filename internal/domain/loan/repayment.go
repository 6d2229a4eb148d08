package loan

import (
	"time"

	"lamf-backoffice/internal/domain/apperr"
	"lamf-backoffice/internal/domain/money"

	"github.com/shopspring/decimal"
)

// Repay applies amount to the outstanding balance. Every precondition is checked
// before the loan is touched, so a failed call leaves it unchanged.
func (l *Loan) Repay(amount decimal.Decimal, now time.Time) error {
	if l.Closed() {
		return &apperr.StateError{Entity: "loan", ID: l.ID, Status: string(l.Status), Op: "repay"}
	}
	if !amount.IsPositive() {
		return &apperr.AmountError{Field: "amount", Amount: amount, Reason: "must be greater than 0"}
	}
	// a sub-cent remainder could never be repaid through the API
	if !money.Exact(amount) {
		return &apperr.AmountError{Field: "amount", Amount: amount, Reason: "must have at most 2 decimal places"}
	}
	if amount.GreaterThan(l.OutstandingAmount) {
		return &apperr.AmountError{Field: "amount", Amount: amount, Reason: "exceeds outstanding " + l.OutstandingAmount.String()}
	}

	l.OutstandingAmount = l.OutstandingAmount.Sub(amount)
	if l.OutstandingAmount.IsZero() {
		closedAt := now.UTC()
		l.Status = StatusClosed
		l.ClosedAt = &closedAt
		return nil
	}
	l.NextEMIDate = AddMonth(l.NextEMIDate)
	return nil
}

// AddMonth moves t forward one calendar month, clamping to the last day of the
// target month (Jan 31 -> Feb 28/29) instead of overflowing into the next one.
func AddMonth(t time.Time) time.Time {
	y, m, d := t.Date()
	first := time.Date(y, m+1, 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	last := first.AddDate(0, 1, -1).Day()
	if d > last {
		d = last
	}
	return time.Date(first.Year(), first.Month(), d, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}
