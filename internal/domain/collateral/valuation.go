package collateral

import (
	"errors"

	"lamf-backoffice/internal/domain/apperr"

	"github.com/shopspring/decimal"
)

type RiskStatus string

const (
	RiskNormal              RiskStatus = "NORMAL"
	RiskUnderCollateralized RiskStatus = "UNDER_COLLATERALIZED"
	RiskUndefined           RiskStatus = "UNDEFINED"
)

// ErrUndefinedLTV means there is no pledged value to divide by.
var ErrUndefinedLTV = errors.New("ltv undefined: pledged value is zero")

var hundred = decimal.NewFromInt(100)

func PledgedValue(units, nav decimal.Decimal) (decimal.Decimal, error) {
	if units.IsNegative() {
		return decimal.Zero, &apperr.AmountError{Field: "units", Amount: units, Reason: "must not be negative"}
	}
	if nav.IsNegative() {
		return decimal.Zero, &apperr.AmountError{Field: "nav", Amount: nav, Reason: "must not be negative"}
	}
	return units.Mul(nav), nil
}

// LTV returns outstanding as a percentage of pledged, rounded to 2 places.
func LTV(outstanding, pledged decimal.Decimal) (decimal.Decimal, error) {
	if !pledged.IsPositive() {
		return decimal.Zero, ErrUndefinedLTV
	}
	return outstanding.Div(pledged).Mul(hundred).Round(2), nil
}

func Classify(ltv, maxLTV decimal.Decimal) RiskStatus {
	if ltv.GreaterThan(maxLTV) {
		return RiskUnderCollateralized
	}
	return RiskNormal
}

// Sum totals the pledged value of cs.
func Sum(cs []Collateral) decimal.Decimal {
	total := decimal.Zero
	for _, c := range cs {
		total = total.Add(c.PledgedValue)
	}
	return total
}
