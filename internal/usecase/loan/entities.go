package loan

import (
	"time"

	"github.com/shopspring/decimal"
)

type RepayInput struct {
	Amount decimal.Decimal `json:"amount"`
}

type LoanDTO struct {
	ID                string          `json:"id"`
	ApplicationID     string          `json:"application_id"`
	SanctionedAmount  decimal.Decimal `json:"sanctioned_amount"`
	OutstandingAmount decimal.Decimal `json:"outstanding_amount"`
	RepaidPercent     decimal.Decimal `json:"repaid_percent"`
	Status            string          `json:"status"`
	StartDate         time.Time       `json:"start_date"`
	NextEMIDate       time.Time       `json:"next_emi_date"`
	DisbursedAt       time.Time       `json:"disbursed_at"`
	ClosedAt          *time.Time      `json:"closed_at,omitempty"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}
