package application

import (
	"context"
	"strings"
	"time"

	"lamf-backoffice/internal/domain/application"
	"lamf-backoffice/internal/domain/apperr"
	"lamf-backoffice/internal/domain/collateral"
	"lamf-backoffice/internal/domain/money"
	"lamf-backoffice/internal/domain/uow"
	"lamf-backoffice/internal/usecase/disbursement"
	"lamf-backoffice/pkg/id"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Disburser books the loan for an approved application.
type Disburser interface {
	Disburse(ctx context.Context, applicationID string) (*disbursement.Result, error)
}

type Usecase struct {
	repo      application.Repository
	uow       uow.UnitOfWork
	disburser Disburser
	now       func() time.Time
}

func NewUsecase(r application.Repository, tx uow.UnitOfWork, d Disburser) *Usecase {
	return &Usecase{repo: r, uow: tx, disburser: d, now: time.Now}
}

// Create always yields a DRAFT application; submission is a separate step.
func (u *Usecase) Create(ctx context.Context, in CreateInput) (*ApplicationDTO, error) {
	name := strings.TrimSpace(in.ApplicantName)
	if name == "" {
		return nil, apperr.Invalid("applicant_name", "is required")
	}
	if !in.RequestedAmount.IsPositive() {
		return nil, &apperr.AmountError{Field: "requested_amount", Amount: in.RequestedAmount, Reason: "must be positive"}
	}
	if !money.Exact(in.RequestedAmount) {
		return nil, &apperr.AmountError{Field: "requested_amount", Amount: in.RequestedAmount, Reason: "must have at most 2 decimal places"}
	}
	if err := validatePledge(in.Pledge); err != nil {
		return nil, err
	}

	a := &application.Application{
		ID:              id.New(),
		ApplicantName:   name,
		ProductID:       in.ProductID,
		RequestedAmount: in.RequestedAmount,
		Status:          application.StatusDraft,
	}
	if p := in.Pledge; p != nil {
		fund, isin := strings.TrimSpace(p.FundName), p.ISIN
		a.PledgedFundName = &fund
		a.PledgedISIN = &isin
		a.PledgedUnits = decimal.NewNullDecimal(p.Units)
		a.PledgedNAV = decimal.NewNullDecimal(p.NAV)
	}

	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		p, err := r.Products.GetByID(ctx, in.ProductID)
		if err != nil {
			return err
		}
		if !p.Accepts(in.RequestedAmount) {
			return &apperr.RangeError{Amount: in.RequestedAmount, Min: p.MinAmount, Max: p.MaxAmount}
		}
		return r.Applications.Create(ctx, a)
	})
	if err != nil {
		zap.L().Debug("application rejected at intake", zap.String("product_id", in.ProductID), zap.Error(err))
		return nil, err
	}
	zap.L().Info("application created", zap.String("application_id", a.ID), zap.String("product_id", a.ProductID))
	return ToDTO(a), nil
}

func validatePledge(p *PledgeInput) error {
	if p == nil {
		return nil
	}
	if strings.TrimSpace(p.FundName) == "" {
		return apperr.Invalid("pledge.fund_name", "is required")
	}
	if !collateral.ValidISIN(p.ISIN) {
		return apperr.Invalid("pledge.isin", "is not a valid ISIN")
	}
	_, err := collateral.PledgedValue(p.Units, p.NAV)
	return err
}

func (u *Usecase) Get(ctx context.Context, applicationID string) (*ApplicationDTO, error) {
	a, err := u.repo.GetByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	return ToDTO(a), nil
}

func (u *Usecase) List(ctx context.Context) ([]ApplicationDTO, error) {
	as, err := u.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]ApplicationDTO, 0, len(as))
	for i := range as {
		out = append(out, *ToDTO(&as[i]))
	}
	return out, nil
}

func (u *Usecase) Submit(ctx context.Context, applicationID string) (*ApplicationDTO, error) {
	return u.Transition(ctx, applicationID, application.StatusSubmitted, "")
}

func (u *Usecase) Approve(ctx context.Context, applicationID, approvedBy string) (*ApplicationDTO, error) {
	return u.Transition(ctx, applicationID, application.StatusApproved, approvedBy)
}

func (u *Usecase) Reject(ctx context.Context, applicationID string) (*ApplicationDTO, error) {
	return u.Transition(ctx, applicationID, application.StatusRejected, "")
}

// Transition is the single entry point for status changes. DISBURSED is handed
// to the disburser so the loan is booked in the same transaction.
func (u *Usecase) Transition(ctx context.Context, applicationID string, to application.Status, actor string) (*ApplicationDTO, error) {
	if to == application.StatusDisbursed {
		res, err := u.disburser.Disburse(ctx, applicationID)
		if err != nil {
			return nil, err
		}
		return ToDTO(res.Application), nil
	}

	var dto *ApplicationDTO
	err := u.uow.WithinApplicationTx(ctx, applicationID, func(r uow.Repos, a *application.Application) error {
		from := a.Status
		if err := a.Transition(to, actor, u.now()); err != nil {
			return err
		}
		if err := r.Applications.UpdateStatus(ctx, a); err != nil {
			return err
		}
		zap.L().Info("application transitioned",
			zap.String("application_id", a.ID),
			zap.String("from", string(from)),
			zap.String("to", string(to)),
		)
		dto = ToDTO(a)
		return nil
	})
	if err != nil {
		if apperr.IsBusiness(err) {
			zap.L().Debug("transition refused", zap.String("application_id", applicationID), zap.String("to", string(to)), zap.Error(err))
		} else {
			zap.L().Error("transition failed", zap.String("application_id", applicationID), zap.Error(err))
		}
		return nil, err
	}
	return dto, nil
}

func ToDTO(a *application.Application) *ApplicationDTO {
	dto := &ApplicationDTO{
		ID:              a.ID,
		ApplicantName:   a.ApplicantName,
		ProductID:       a.ProductID,
		RequestedAmount: a.RequestedAmount,
		Status:          string(a.Status),
		SubmittedAt:     a.SubmittedAt,
		ApprovedAt:      a.ApprovedAt,
		ApprovedBy:      a.ApprovedBy,
		RejectedAt:      a.RejectedAt,
		DisbursedAt:     a.DisbursedAt,
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
	}
	if a.HasPledgeSnapshot() {
		dto.Pledge = &PledgeInput{
			FundName: *a.PledgedFundName,
			ISIN:     *a.PledgedISIN,
			Units:    a.PledgedUnits.Decimal,
			NAV:      a.PledgedNAV.Decimal,
		}
	}
	return dto
}
