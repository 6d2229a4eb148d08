package loan

import (
	"context"
	"time"

	"lamf-backoffice/internal/domain/apperr"
	"lamf-backoffice/internal/domain/loan"
	"lamf-backoffice/internal/domain/uow"

	"go.uber.org/zap"
)

type Usecase struct {
	repo loan.Repository
	uow  uow.UnitOfWork
	now  func() time.Time
}

func NewUsecase(r loan.Repository, tx uow.UnitOfWork) *Usecase {
	return &Usecase{repo: r, uow: tx, now: time.Now}
}

func (u *Usecase) Get(ctx context.Context, loanID string) (*LoanDTO, error) {
	l, err := u.repo.GetByID(ctx, loanID)
	if err != nil {
		return nil, err
	}
	return ToDTO(l), nil
}

// GetByApplication returns the loan booked for an application, or NotFound if
// it was never disbursed.
func (u *Usecase) GetByApplication(ctx context.Context, applicationID string) (*LoanDTO, error) {
	l, err := u.repo.GetByApplicationID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	return ToDTO(l), nil
}

func (u *Usecase) List(ctx context.Context) ([]LoanDTO, error) {
	ls, err := u.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]LoanDTO, 0, len(ls))
	for i := range ls {
		out = append(out, *ToDTO(&ls[i]))
	}
	return out, nil
}

// Repay applies one repayment under the loan's row lock, so concurrent
// repayments on the same loan see each other's balance.
func (u *Usecase) Repay(ctx context.Context, loanID string, in RepayInput) (*LoanDTO, error) {
	var dto *LoanDTO
	err := u.uow.WithinLoanTx(ctx, loanID, func(r uow.Repos, l *loan.Loan) error {
		if err := l.Repay(in.Amount, u.now()); err != nil {
			return err
		}
		if err := r.Loans.Update(ctx, l); err != nil {
			return err
		}
		dto = ToDTO(l)
		return nil
	})
	if err != nil {
		if apperr.IsBusiness(err) {
			zap.L().Debug("repayment refused", zap.String("loan_id", loanID), zap.String("amount", in.Amount.String()), zap.Error(err))
		} else {
			zap.L().Error("repayment failed", zap.String("loan_id", loanID), zap.Error(err))
		}
		return nil, err
	}
	zap.L().Info("repayment applied",
		zap.String("loan_id", loanID),
		zap.String("amount", in.Amount.String()),
		zap.String("outstanding", dto.OutstandingAmount.String()),
		zap.String("status", dto.Status),
	)
	return dto, nil
}

func ToDTO(l *loan.Loan) *LoanDTO {
	return &LoanDTO{
		ID:                l.ID,
		ApplicationID:     l.ApplicationID,
		SanctionedAmount:  l.SanctionedAmount,
		OutstandingAmount: l.OutstandingAmount,
		RepaidPercent:     l.RepaidPercent(),
		Status:            string(l.Status),
		StartDate:         l.StartDate,
		NextEMIDate:       l.NextEMIDate,
		DisbursedAt:       l.DisbursedAt,
		ClosedAt:          l.ClosedAt,
		CreatedAt:         l.CreatedAt,
		UpdatedAt:         l.UpdatedAt,
	}
}
