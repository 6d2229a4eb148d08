package product

import (
	"time"

	"github.com/shopspring/decimal"
)

// Input is shared by create and update; every field is replaced on update.
type Input struct {
	Name         string          `json:"name"`
	InterestRate decimal.Decimal `json:"interest_rate"`
	MaxLTV       decimal.Decimal `json:"max_ltv"`
	MinAmount    decimal.Decimal `json:"min_amount"`
	MaxAmount    decimal.Decimal `json:"max_amount"`
	TenureMonths int             `json:"tenure_months"`
}

type ProductDTO struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	InterestRate decimal.Decimal `json:"interest_rate"`
	MaxLTV       decimal.Decimal `json:"max_ltv"`
	MinAmount    decimal.Decimal `json:"min_amount"`
	MaxAmount    decimal.Decimal `json:"max_amount"`
	TenureMonths int             `json:"tenure_months"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}
