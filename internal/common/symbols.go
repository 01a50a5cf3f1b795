package common

import (
	"strings"
)

// NormalizeSymbol canonicalizes a ticker symbol for scraping and lookup.
// Symbols are stored uppercase without surrounding whitespace ("aapl " -> "AAPL").
func NormalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}

// NormalizeSymbols canonicalizes a symbol list, dropping empties and
// duplicates while preserving order.
func NormalizeSymbols(symbols []string) []string {
	seen := make(map[string]bool, len(symbols))
	result := make([]string, 0, len(symbols))
	for _, s := range symbols {
		normalized := NormalizeSymbol(s)
		if normalized == "" || seen[normalized] {
			continue
		}
		seen[normalized] = true
		result = append(result, normalized)
	}
	return result
}
