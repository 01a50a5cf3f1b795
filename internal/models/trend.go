package models

import "github.com/shopspring/decimal"

// Trend classifies the direction of a price move.
type Trend string

const (
	TrendUp      Trend = "Up"
	TrendDown    Trend = "Down"
	TrendStable  Trend = "Stable"
	TrendUnknown Trend = "Unknown"
)

var hundred = decimal.NewFromInt(100)

// PercentageChange computes (current-previous)/previous*100 rounded to two
// decimal places. The result is missing when either input is missing or the
// previous close is zero - never infinity.
func PercentageChange(current, previous Numeric) Numeric {
	if !current.Valid || !previous.Valid || previous.Decimal.IsZero() {
		return Numeric{}
	}
	change := current.Decimal.Sub(previous.Decimal).Div(previous.Decimal).Mul(hundred)
	return NumericFrom(change.Round(2))
}

// TrendFor classifies a percentage change. A missing change is Unknown.
func TrendFor(change Numeric) Trend {
	if !change.Valid {
		return TrendUnknown
	}
	switch change.Decimal.Sign() {
	case 1:
		return TrendUp
	case -1:
		return TrendDown
	}
	return TrendStable
}
