package http

import (
	"net/http"

	domain "lamf-backoffice/internal/domain/application"
	"lamf-backoffice/internal/usecase/application"
	"lamf-backoffice/internal/usecase/disbursement"
	"lamf-backoffice/internal/usecase/loan"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type ApplicationHandler struct {
	uc        *application.Usecase
	disburser *disbursement.Usecase
}

func NewApplicationHandler(uc *application.Usecase, d *disbursement.Usecase) *ApplicationHandler {
	return &ApplicationHandler{uc: uc, disburser: d}
}

type pledgeReq struct {
	FundName string          `json:"fund_name" validate:"required,max=200"`
	ISIN     string          `json:"isin"      validate:"required,isin"`
	Units    decimal.Decimal `json:"units"     validate:"dnneg"`
	NAV      decimal.Decimal `json:"nav"       validate:"dnneg"`
}

type createApplicationReq struct {
	ApplicantName   string          `json:"applicant_name"   validate:"required,max=200"`
	ProductID       string          `json:"product_id"       validate:"required"`
	RequestedAmount decimal.Decimal `json:"requested_amount" validate:"dpos,dec2"`
	Pledge          *pledgeReq      `json:"pledge"           validate:"omitempty"`
}

type approveReq struct {
	ApprovedBy string `json:"approved_by" validate:"required,max=120"`
}

type statusReq struct {
	Status     string `json:"status"      validate:"required,appstatus"`
	ApprovedBy string `json:"approved_by" validate:"max=120"`
}

type disburseResp struct {
	Application *application.ApplicationDTO `json:"application"`
	Loan        *loan.LoanDTO               `json:"loan"`
}

func (h *ApplicationHandler) Create(c echo.Context) error {
	var req createApplicationReq
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	in := application.CreateInput{
		ApplicantName:   req.ApplicantName,
		ProductID:       req.ProductID,
		RequestedAmount: req.RequestedAmount,
	}
	if req.Pledge != nil {
		in.Pledge = &application.PledgeInput{
			FundName: req.Pledge.FundName,
			ISIN:     req.Pledge.ISIN,
			Units:    req.Pledge.Units,
			NAV:      req.Pledge.NAV,
		}
	}
	dto, err := h.uc.Create(c.Request().Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *ApplicationHandler) Get(c echo.Context) error {
	dto, err := h.uc.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *ApplicationHandler) List(c echo.Context) error {
	dtos, err := h.uc.List(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dtos)
}

func (h *ApplicationHandler) Submit(c echo.Context) error {
	dto, err := h.uc.Submit(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *ApplicationHandler) Approve(c echo.Context) error {
	var req approveReq
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	dto, err := h.uc.Approve(c.Request().Context(), c.Param("id"), req.ApprovedBy)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *ApplicationHandler) Reject(c echo.Context) error {
	dto, err := h.uc.Reject(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

// Disburse answers with the application and the loan it booked.
func (h *ApplicationHandler) Disburse(c echo.Context) error {
	res, err := h.disburser.Disburse(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, disburseResp{
		Application: application.ToDTO(res.Application),
		Loan:        loan.ToDTO(res.Loan),
	})
}

func (h *ApplicationHandler) UpdateStatus(c echo.Context) error {
	var req statusReq
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	to, _ := domain.ParseStatus(req.Status)
	dto, err := h.uc.Transition(c.Request().Context(), c.Param("id"), to, req.ApprovedBy)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}
