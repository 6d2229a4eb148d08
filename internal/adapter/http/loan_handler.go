package http

import (
	"net/http"

	"lamf-backoffice/internal/usecase/collateral"
	"lamf-backoffice/internal/usecase/loan"
	"lamf-backoffice/internal/usecase/risk"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type LoanHandler struct {
	uc          *loan.Usecase
	risk        *risk.Usecase
	collaterals *collateral.Usecase
}

func NewLoanHandler(uc *loan.Usecase, r *risk.Usecase, c *collateral.Usecase) *LoanHandler {
	return &LoanHandler{uc: uc, risk: r, collaterals: c}
}

type repayReq struct {
	Amount decimal.Decimal `json:"amount" validate:"dpos,dec2"`
}

func (h *LoanHandler) Get(c echo.Context) error {
	dto, err := h.uc.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *LoanHandler) List(c echo.Context) error {
	dtos, err := h.uc.List(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dtos)
}

func (h *LoanHandler) Repay(c echo.Context) error {
	var req repayReq
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	dto, err := h.uc.Repay(c.Request().Context(), c.Param("id"), loan.RepayInput{Amount: req.Amount})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *LoanHandler) LTV(c echo.Context) error {
	rep, err := h.risk.LoanLTV(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, rep)
}

func (h *LoanHandler) Collaterals(c echo.Context) error {
	dtos, err := h.collaterals.ListByLoan(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dtos)
}
