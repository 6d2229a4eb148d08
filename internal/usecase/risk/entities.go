package risk

import (
	"lamf-backoffice/internal/domain/collateral"

	"github.com/shopspring/decimal"
)

type LTVReport struct {
	LoanID       string          `json:"loan_id"`
	Outstanding  decimal.Decimal `json:"outstanding_amount"`
	PledgedValue decimal.Decimal `json:"pledged_value"`
	// LTV is nil when nothing is pledged against the loan.
	LTV        *decimal.Decimal      `json:"ltv"`
	MaxLTV     decimal.Decimal       `json:"max_ltv"`
	RiskStatus collateral.RiskStatus `json:"risk_status"`
}

type SweepResult struct {
	Checked int         `json:"checked"`
	Flagged []LTVReport `json:"flagged"`
}
