package http

import (
	"net/http"

	"lamf-backoffice/internal/usecase/product"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type ProductHandler struct{ uc *product.Usecase }

func NewProductHandler(uc *product.Usecase) *ProductHandler { return &ProductHandler{uc: uc} }

type productReq struct {
	Name         string          `json:"name"          validate:"required,max=120"`
	InterestRate decimal.Decimal `json:"interest_rate" validate:"dec2"`
	MaxLTV       decimal.Decimal `json:"max_ltv"       validate:"dpos,dec2"`
	MinAmount    decimal.Decimal `json:"min_amount"    validate:"dpos,dec2"`
	MaxAmount    decimal.Decimal `json:"max_amount"    validate:"dpos,dec2"`
	TenureMonths int             `json:"tenure_months" validate:"gte=1,lte=600"`
}

func (r productReq) input() product.Input {
	return product.Input{
		Name:         r.Name,
		InterestRate: r.InterestRate,
		MaxLTV:       r.MaxLTV,
		MinAmount:    r.MinAmount,
		MaxAmount:    r.MaxAmount,
		TenureMonths: r.TenureMonths,
	}
}

func (h *ProductHandler) Create(c echo.Context) error {
	var req productReq
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	dto, err := h.uc.Create(c.Request().Context(), req.input())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *ProductHandler) Get(c echo.Context) error {
	dto, err := h.uc.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *ProductHandler) List(c echo.Context) error {
	dtos, err := h.uc.List(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dtos)
}

func (h *ProductHandler) Update(c echo.Context) error {
	var req productReq
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	dto, err := h.uc.Update(c.Request().Context(), c.Param("id"), req.input())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *ProductHandler) Delete(c echo.Context) error {
	if err := h.uc.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
