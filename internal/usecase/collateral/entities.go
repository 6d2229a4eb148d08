package collateral

import (
	"time"

	"github.com/shopspring/decimal"
)

type AddInput struct {
	LoanID   string          `json:"loan_id"`
	FundName string          `json:"fund_name"`
	ISIN     string          `json:"isin"`
	Units    decimal.Decimal `json:"units"`
	NAV      decimal.Decimal `json:"nav"`
}

// UpdateInput revalues a holding; pledged value is always derived, never accepted.
type UpdateInput struct {
	Units decimal.Decimal `json:"units"`
	NAV   decimal.Decimal `json:"nav"`
}

type CollateralDTO struct {
	ID           string          `json:"id"`
	LoanID       string          `json:"loan_id"`
	FundName     string          `json:"fund_name"`
	ISIN         string          `json:"isin"`
	Units        decimal.Decimal `json:"units"`
	NAV          decimal.Decimal `json:"nav"`
	PledgedValue decimal.Decimal `json:"pledged_value"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}
