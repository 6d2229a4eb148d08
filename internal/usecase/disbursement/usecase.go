package disbursement

import (
	"context"
	"time"

	"lamf-backoffice/internal/domain/application"
	"lamf-backoffice/internal/domain/apperr"
	"lamf-backoffice/internal/domain/loan"
	"lamf-backoffice/internal/domain/uow"
	"lamf-backoffice/pkg/id"

	"go.uber.org/zap"
)

type Usecase struct {
	uow uow.UnitOfWork
	now func() time.Time
}

func NewUsecase(tx uow.UnitOfWork) *Usecase {
	return &Usecase{uow: tx, now: time.Now}
}

// Disburse moves an APPROVED application to DISBURSED and books its loan in the
// same transaction. No collateral is created here. Any other status, including
// an earlier disbursement, is InvalidState.
func (u *Usecase) Disburse(ctx context.Context, applicationID string) (*Result, error) {
	var res *Result
	err := u.uow.WithinApplicationTx(ctx, applicationID, func(r uow.Repos, a *application.Application) error {
		if a.Status != application.StatusApproved {
			return &apperr.StateError{Entity: "application", ID: a.ID, Status: string(a.Status), Op: "disburse"}
		}
		now := u.now().UTC()
		if err := a.Transition(application.StatusDisbursed, "", now); err != nil {
			return err
		}
		if err := r.Applications.UpdateStatus(ctx, a); err != nil {
			return err
		}
		l := loan.New(id.New(), a, now)
		if err := r.Loans.Create(ctx, l); err != nil {
			return err
		}
		res = &Result{Application: a, Loan: l}
		return nil
	})
	if err != nil {
		logFailure("disburse refused", applicationID, err)
		return nil, err
	}
	zap.L().Info("application disbursed",
		zap.String("application_id", applicationID),
		zap.String("loan_id", res.Loan.ID),
		zap.String("sanctioned_amount", res.Loan.SanctionedAmount.String()),
	)
	return res, nil
}

func logFailure(msg, applicationID string, err error) {
	if apperr.IsBusiness(err) {
		zap.L().Debug(msg, zap.String("application_id", applicationID), zap.Error(err))
		return
	}
	zap.L().Error(msg, zap.String("application_id", applicationID), zap.Error(err))
}
