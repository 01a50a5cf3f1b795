package models

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestParseMarketCap(t *testing.T) {
	tests := []struct {
		input     string
		want      string
		wantValid bool
	}{
		{"3.456T", "3456000000000", true},
		{"729.8B", "729800000000", true},
		{"15M", "15000000", true},
		{"2.5K", "2500", true},
		{"1,234.5B", "1234500000000", true},
		{"  98.7B  ", "98700000000", true},

		// No suffix, wrong case, garbage: missing, not zero.
		{"123456", "", false},
		{"2.5b", "", false},
		{"12Q", "", false},
		{"Not Found", "", false},
		{"", "", false},
		{"xB", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := ParseMarketCap(tt.input)
			if got.Valid != tt.wantValid {
				t.Fatalf("ParseMarketCap(%q).Valid = %v, want %v", tt.input, got.Valid, tt.wantValid)
			}
			if got.String() != tt.want {
				t.Errorf("ParseMarketCap(%q) = %q, want %q", tt.input, got.String(), tt.want)
			}
		})
	}
}

func TestFormatMarketCap(t *testing.T) {
	tests := []struct {
		value float64
		want  string
	}{
		{3.456e12, "3.456T"},
		{1e12, "1.000T"},
		{729.8e9, "729.800B"},
		{100e9, "100.000B"},
		{15e6, "15.000M"},
		{2500, "2.500K"},
		{999, "999"},
		{0, "0"},
	}

	for _, tt := range tests {
		got := FormatMarketCap(NumericFromFloat(tt.value))
		if got != tt.want {
			t.Errorf("FormatMarketCap(%v) = %q, want %q", tt.value, got, tt.want)
		}
	}

	if got := FormatMarketCap(Numeric{}); got != NotFound {
		t.Errorf("FormatMarketCap(missing) = %q, want %q", got, NotFound)
	}
}

// Parsing a compact string and formatting it back must land in the same
// magnitude class for mantissas in [1, 1000).
func TestMarketCapRoundTripClass(t *testing.T) {
	for _, suffix := range []string{"K", "M", "B", "T"} {
		for _, mantissa := range []string{"1", "2.5", "99.999", "500", "999.9"} {
			input := mantissa + suffix
			parsed := ParseMarketCap(input)
			if !parsed.Valid {
				t.Fatalf("ParseMarketCap(%q) unexpectedly missing", input)
			}
			formatted := FormatMarketCap(parsed)
			if formatted[len(formatted)-1:] != suffix {
				t.Errorf("round trip of %q produced %q, want suffix %s", input, formatted, suffix)
			}
		}
	}
}

func TestParseMarketCapScale(t *testing.T) {
	// convert(n+suffix) == n * scale(suffix)
	n := decimal.RequireFromString("12.75")
	got := ParseMarketCap("12.75B")
	want := n.Mul(decimal.New(1, 9))
	if !got.Valid || !got.Decimal.Equal(want) {
		t.Errorf("ParseMarketCap(12.75B) = %s, want %s", got.String(), want)
	}
}
