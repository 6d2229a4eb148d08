package product

import (
	"time"

	"github.com/shopspring/decimal"
)

// Table: loan_products
type Product struct {
	ID           string          `gorm:"column:id;type:varchar(36);primaryKey" json:"id"`
	Name         string          `gorm:"column:name;type:varchar(128);not null" json:"name"`
	InterestRate decimal.Decimal `gorm:"column:interest_rate;type:decimal(6,2);not null" json:"interest_rate"`
	// MaxLTV is a percentage ceiling, e.g. 50 means the loan may be at most half the pledge.
	MaxLTV       decimal.Decimal `gorm:"column:max_ltv;type:decimal(5,2);not null" json:"max_ltv"`
	MinAmount    decimal.Decimal `gorm:"column:min_amount;type:decimal(18,2);not null" json:"min_amount"`
	MaxAmount    decimal.Decimal `gorm:"column:max_amount;type:decimal(18,2);not null" json:"max_amount"`
	TenureMonths int             `gorm:"column:tenure_months;not null" json:"tenure_months"`
	CreatedAt    time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Product) TableName() string { return "loan_products" }

// Accepts reports whether amount lies within [MinAmount, MaxAmount].
func (p *Product) Accepts(amount decimal.Decimal) bool {
	return amount.GreaterThanOrEqual(p.MinAmount) && amount.LessThanOrEqual(p.MaxAmount)
}
