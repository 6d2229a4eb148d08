package application

import (
	"time"

	"github.com/shopspring/decimal"
)

type CreateInput struct {
	ApplicantName   string          `json:"applicant_name"`
	ProductID       string          `json:"product_id"`
	RequestedAmount decimal.Decimal `json:"requested_amount"`
	Pledge          *PledgeInput    `json:"pledge,omitempty"`
}

// PledgeInput is the collateral the applicant intends to pledge. It is stored
// on the application and only turned into a collateral row after disbursement.
type PledgeInput struct {
	FundName string          `json:"fund_name"`
	ISIN     string          `json:"isin"`
	Units    decimal.Decimal `json:"units"`
	NAV      decimal.Decimal `json:"nav"`
}

type ApplicationDTO struct {
	ID              string          `json:"id"`
	ApplicantName   string          `json:"applicant_name"`
	ProductID       string          `json:"product_id"`
	RequestedAmount decimal.Decimal `json:"requested_amount"`
	Status          string          `json:"status"`
	SubmittedAt     *time.Time      `json:"submitted_at,omitempty"`
	ApprovedAt      *time.Time      `json:"approved_at,omitempty"`
	ApprovedBy      *string         `json:"approved_by,omitempty"`
	RejectedAt      *time.Time      `json:"rejected_at,omitempty"`
	DisbursedAt     *time.Time      `json:"disbursed_at,omitempty"`
	Pledge          *PledgeInput    `json:"pledge,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}
