package money

import "github.com/shopspring/decimal"

// Scale is the number of decimal places a currency amount may carry; the
// amount columns are decimal(18,2).
const Scale = 2

// Exact reports whether d is representable in Scale places without rounding.
func Exact(d decimal.Decimal) bool { return d.Equal(d.Round(Scale)) }
