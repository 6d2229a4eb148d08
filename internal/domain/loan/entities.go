package loan

import (
	"time"

	"lamf-backoffice/internal/domain/application"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusActive Status = "ACTIVE"
	StatusClosed Status = "CLOSED"
)

// Table: loans. One row per disbursed application.
type Loan struct {
	ID                string                   `gorm:"column:id;type:varchar(36);primaryKey" json:"id"`
	ApplicationID     string                   `gorm:"column:application_id;type:varchar(36);not null;uniqueIndex:ux_loans_application_id" json:"application_id"`
	Application       *application.Application `gorm:"foreignKey:ApplicationID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	SanctionedAmount  decimal.Decimal          `gorm:"column:sanctioned_amount;type:decimal(18,2);not null" json:"sanctioned_amount"`
	OutstandingAmount decimal.Decimal          `gorm:"column:outstanding_amount;type:decimal(18,2);not null" json:"outstanding_amount"`
	Status            Status                   `gorm:"column:status;type:varchar(16);not null;index" json:"status"`
	StartDate         time.Time                `gorm:"column:start_date;not null" json:"start_date"`
	NextEMIDate       time.Time                `gorm:"column:next_emi_date;not null" json:"next_emi_date"`
	DisbursedAt       time.Time                `gorm:"column:disbursed_at;not null;index" json:"disbursed_at"`
	ClosedAt          *time.Time               `gorm:"column:closed_at" json:"closed_at,omitempty"`
	CreatedAt         time.Time                `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time                `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Loan) TableName() string { return "loans" }

// New builds the loan created by a disbursement: outstanding starts equal to sanctioned.
func New(id string, app *application.Application, now time.Time) *Loan {
	now = now.UTC()
	return &Loan{
		ID:                id,
		ApplicationID:     app.ID,
		SanctionedAmount:  app.RequestedAmount,
		OutstandingAmount: app.RequestedAmount,
		Status:            StatusActive,
		StartDate:         now,
		NextEMIDate:       AddMonth(now),
		DisbursedAt:       now,
	}
}

func (l *Loan) Closed() bool { return l.Status == StatusClosed }

// RepaidPercent is the share of the sanctioned amount already repaid, rounded to 2 places.
func (l *Loan) RepaidPercent() decimal.Decimal {
	if !l.SanctionedAmount.IsPositive() {
		return decimal.Zero
	}
	paid := l.SanctionedAmount.Sub(l.OutstandingAmount)
	return paid.Div(l.SanctionedAmount).Mul(decimal.NewFromInt(100)).Round(2)
}
