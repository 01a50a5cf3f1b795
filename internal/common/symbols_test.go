package common

import (
	"reflect"
	"testing"
)

func TestNormalizeSymbol(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"aapl", "AAPL"},
		{" MSFT ", "MSFT"},
		{"BRK.B", "BRK.B"},
		{"", ""},
		{"   ", ""},
	}

	for _, tt := range tests {
		if got := NormalizeSymbol(tt.input); got != tt.want {
			t.Errorf("NormalizeSymbol(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestNormalizeSymbols(t *testing.T) {
	got := NormalizeSymbols([]string{"aapl", "MSFT", "AAPL", "", "  ", "msft", "GOOGL"})
	want := []string{"AAPL", "MSFT", "GOOGL"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("NormalizeSymbols = %v, want %v", got, want)
	}
}
