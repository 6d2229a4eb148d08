package collateral

import (
	"time"

	"lamf-backoffice/internal/domain/loan"

	"github.com/shopspring/decimal"
)

// Table: collaterals. A pledged mutual-fund holding securing one loan.
type Collateral struct {
	ID       string          `gorm:"column:id;type:varchar(36);primaryKey" json:"id"`
	LoanID   string          `gorm:"column:loan_id;type:varchar(36);not null;index" json:"loan_id"`
	Loan     *loan.Loan      `gorm:"foreignKey:LoanID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	FundName string          `gorm:"column:fund_name;type:varchar(255);not null" json:"fund_name"`
	ISIN     string          `gorm:"column:isin;type:varchar(12);not null;index" json:"isin"`
	Units    decimal.Decimal `gorm:"column:units;type:decimal(18,4);not null" json:"units"`
	NAV      decimal.Decimal `gorm:"column:nav;type:decimal(18,4);not null" json:"nav"`
	// PledgedValue is units*nav, kept in the row for aggregate queries. Only Revalue writes it.
	PledgedValue decimal.Decimal `gorm:"column:pledged_value;type:decimal(20,4);not null" json:"pledged_value"`
	CreatedAt    time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Collateral) TableName() string { return "collaterals" }

// Revalue sets units and nav and recomputes the pledged value from them.
func (c *Collateral) Revalue(units, nav decimal.Decimal) error {
	pv, err := PledgedValue(units, nav)
	if err != nil {
		return err
	}
	c.Units, c.NAV, c.PledgedValue = units, nav, pv
	return nil
}
