package http

import (
	"net/http"

	"lamf-backoffice/internal/usecase/collateral"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type CollateralHandler struct{ uc *collateral.Usecase }

func NewCollateralHandler(uc *collateral.Usecase) *CollateralHandler {
	return &CollateralHandler{uc: uc}
}

type addCollateralReq struct {
	LoanID   string          `json:"loan_id"   validate:"required"`
	FundName string          `json:"fund_name" validate:"required,max=200"`
	ISIN     string          `json:"isin"      validate:"required,isin"`
	Units    decimal.Decimal `json:"units"     validate:"dnneg"`
	NAV      decimal.Decimal `json:"nav"       validate:"dnneg"`
}

type updateCollateralReq struct {
	Units decimal.Decimal `json:"units" validate:"dnneg"`
	NAV   decimal.Decimal `json:"nav"   validate:"dnneg"`
}

func (h *CollateralHandler) Add(c echo.Context) error {
	var req addCollateralReq
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	dto, err := h.uc.Add(c.Request().Context(), collateral.AddInput(req))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *CollateralHandler) List(c echo.Context) error {
	dtos, err := h.uc.List(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dtos)
}

func (h *CollateralHandler) Update(c echo.Context) error {
	var req updateCollateralReq
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	dto, err := h.uc.Update(c.Request().Context(), c.Param("id"), collateral.UpdateInput(req))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *CollateralHandler) Delete(c echo.Context) error {
	if err := h.uc.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
