package application

import (
	"time"

	"lamf-backoffice/internal/domain/product"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusDraft     Status = "DRAFT"
	StatusSubmitted Status = "SUBMITTED"
	StatusApproved  Status = "APPROVED"
	StatusRejected  Status = "REJECTED"
	StatusDisbursed Status = "DISBURSED"
)

// ParseStatus maps an external status string onto a known Status.
func ParseStatus(s string) (Status, bool) {
	switch st := Status(s); st {
	case StatusDraft, StatusSubmitted, StatusApproved, StatusRejected, StatusDisbursed:
		return st, true
	}
	return "", false
}

// Table: loan_applications
type Application struct {
	ID              string           `gorm:"column:id;type:varchar(36);primaryKey" json:"id"`
	ApplicantName   string           `gorm:"column:applicant_name;type:varchar(128);not null" json:"applicant_name"`
	ProductID       string           `gorm:"column:product_id;type:varchar(36);not null;index" json:"product_id"`
	Product         *product.Product `gorm:"foreignKey:ProductID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	RequestedAmount decimal.Decimal  `gorm:"column:requested_amount;type:decimal(18,2);not null" json:"requested_amount"`
	Status          Status           `gorm:"column:status;type:varchar(16);not null;index" json:"status"`
	SubmittedAt     *time.Time       `gorm:"column:submitted_at" json:"submitted_at,omitempty"`
	ApprovedAt      *time.Time       `gorm:"column:approved_at" json:"approved_at,omitempty"`
	ApprovedBy      *string          `gorm:"column:approved_by;type:varchar(128)" json:"approved_by,omitempty"`
	RejectedAt      *time.Time       `gorm:"column:rejected_at" json:"rejected_at,omitempty"`
	DisbursedAt     *time.Time       `gorm:"column:disbursed_at" json:"disbursed_at,omitempty"`

	// Pledge snapshot captured at intake; only the seed path reads it.
	PledgedFundName *string             `gorm:"column:pledged_fund_name;type:varchar(255)" json:"pledged_fund_name,omitempty"`
	PledgedISIN     *string             `gorm:"column:pledged_isin;type:varchar(12)" json:"pledged_isin,omitempty"`
	PledgedUnits    decimal.NullDecimal `gorm:"column:pledged_units;type:decimal(18,4)" json:"pledged_units"`
	PledgedNAV      decimal.NullDecimal `gorm:"column:pledged_nav;type:decimal(18,4)" json:"pledged_nav"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Application) TableName() string { return "loan_applications" }

// HasPledgeSnapshot reports whether all intake pledge fields are present.
func (a *Application) HasPledgeSnapshot() bool {
	return a.PledgedFundName != nil && a.PledgedISIN != nil && a.PledgedUnits.Valid && a.PledgedNAV.Valid
}
