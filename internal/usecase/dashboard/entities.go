package dashboard

import "github.com/shopspring/decimal"

type Stats struct {
	TotalApplications int64           `json:"total_applications"`
	ActiveLoans       int64           `json:"active_loans"`
	TotalDisbursed    decimal.Decimal `json:"total_disbursed"`
	TotalCollateral   decimal.Decimal `json:"total_collateral"`
	// RiskPercent is collateral coverage: higher is safer.
	RiskPercent decimal.Decimal `json:"risk_percent"`
}

type TrendPoint struct {
	Year   int             `json:"year"`
	Month  int             `json:"month"`
	Label  string          `json:"label"`
	Amount decimal.Decimal `json:"amount"`
}
