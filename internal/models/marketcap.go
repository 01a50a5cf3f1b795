package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Suffix scales for compact market cap notation. Suffix matching is
// case-sensitive: "2.5b" is not a recognized magnitude.
var marketCapScales = []struct {
	Suffix string
	Scale  decimal.Decimal
}{
	{"T", decimal.New(1, 12)},
	{"B", decimal.New(1, 9)},
	{"M", decimal.New(1, 6)},
	{"K", decimal.New(1, 3)},
}

// ParseMarketCap converts a compact display string like "3.456T" or "729.8B"
// to its numeric value. Any other form - no suffix, unrecognized suffix,
// empty, "Not Found" - yields missing, not zero.
func ParseMarketCap(raw string) Numeric {
	s := strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	for _, m := range marketCapScales {
		if !strings.HasSuffix(s, m.Suffix) {
			continue
		}
		d, err := decimal.NewFromString(strings.TrimSuffix(s, m.Suffix))
		if err != nil {
			return Numeric{}
		}
		return NumericFrom(d.Mul(m.Scale))
	}
	return Numeric{}
}

// FormatMarketCap re-derives the compact display string from a numeric value
// using threshold-based suffix selection and three decimal places. The
// formatting is lossy and one-directional: it does not round-trip to the
// exact original text. Missing values render as the "Not Found" sentinel;
// values below the smallest scale render as the stringified value.
func FormatMarketCap(n Numeric) string {
	if !n.Valid {
		return NotFound
	}
	for _, m := range marketCapScales {
		if n.Decimal.GreaterThanOrEqual(m.Scale) {
			return n.Decimal.Div(m.Scale).StringFixed(3) + m.Suffix
		}
	}
	return n.Decimal.String()
}
