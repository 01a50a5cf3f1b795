// Package models defines the quote table records and the nullable numeric
// type the analysis pipeline is built on.
package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Numeric is a nullable decimal for scraped numeric fields. A value that could
// not be parsed ("Not Found", empty cell, malformed text) carries Valid=false
// and is excluded from aggregation rather than treated as zero.
type Numeric struct {
	Decimal decimal.Decimal
	Valid   bool
}

// NumericFrom wraps a decimal as a present value.
func NumericFrom(d decimal.Decimal) Numeric {
	return Numeric{Decimal: d, Valid: true}
}

// NumericFromFloat wraps a float64 as a present value.
func NumericFromFloat(f float64) Numeric {
	return NumericFrom(decimal.NewFromFloat(f))
}

// ParseNumeric coerces a display string to a Numeric, stripping thousands
// separators first ("1,234.50" parses the same as "1234.50"). Unparseable
// input yields the missing value, never an error.
func ParseNumeric(raw string) Numeric {
	s := strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	if s == "" {
		return Numeric{}
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Numeric{}
	}
	return NumericFrom(d)
}

// Round returns the value rounded to the given decimal places. Missing stays
// missing.
func (n Numeric) Round(places int32) Numeric {
	if !n.Valid {
		return Numeric{}
	}
	return NumericFrom(n.Decimal.Round(places))
}

// String returns the canonical decimal text, or the empty string when missing.
func (n Numeric) String() string {
	if !n.Valid {
		return ""
	}
	return n.Decimal.String()
}

// Float64 returns the value as a float64 and whether it is present.
func (n Numeric) Float64() (float64, bool) {
	if !n.Valid {
		return 0, false
	}
	f, _ := n.Decimal.Float64()
	return f, true
}

// MarshalJSON renders a bare JSON number, or null when missing.
func (n Numeric) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return []byte(n.Decimal.String()), nil
}
