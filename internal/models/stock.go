package models

// Column names as stored in the CSV tables. They match the upstream quote
// field labels, so a table written by this service reads naturally in a
// spreadsheet.
const (
	ColStock         = "Stock"
	ColSymbol        = "Symbol"
	ColCurrentPrice  = "Current Price"
	ColPreviousClose = "Previous Close"
	ColMarketCap     = "Market Cap"
	ColVolume        = "Volume"
	ColPercentChange = "% Change"
	ColTrend         = "Trend"
)

// RawColumns is the schema of the scraped quote table.
var RawColumns = []string{
	ColStock, ColSymbol, ColCurrentPrice, ColPreviousClose, ColMarketCap, ColVolume,
}

// AnalyzedColumns is the schema of the derived table, extending the raw
// schema with the computed fields.
var AnalyzedColumns = []string{
	ColStock, ColSymbol, ColCurrentPrice, ColPreviousClose, ColMarketCap, ColVolume,
	ColPercentChange, ColTrend,
}

// NotFound is the sentinel recorded when a quote page lacks a field.
const NotFound = "Not Found"

// StockRecord is one row of a quote table, keyed by Symbol. All fields hold
// display text as scraped (or as canonicalized by the store); the derived
// fields are empty on raw rows.
type StockRecord struct {
	Stock         string `json:"Stock"`
	Symbol        string `json:"Symbol"`
	CurrentPrice  string `json:"Current Price"`
	PreviousClose string `json:"Previous Close"`
	MarketCap     string `json:"Market Cap"`
	Volume        string `json:"Volume"`
	PercentChange string `json:"% Change,omitempty"`
	Trend         string `json:"Trend,omitempty"`
}

// Value returns the field stored under the given column name.
func (r StockRecord) Value(column string) string {
	switch column {
	case ColStock:
		return r.Stock
	case ColSymbol:
		return r.Symbol
	case ColCurrentPrice:
		return r.CurrentPrice
	case ColPreviousClose:
		return r.PreviousClose
	case ColMarketCap:
		return r.MarketCap
	case ColVolume:
		return r.Volume
	case ColPercentChange:
		return r.PercentChange
	case ColTrend:
		return r.Trend
	}
	return ""
}

// SetValue stores a field under the given column name. Unknown columns are
// ignored so tables with extra columns load without error.
func (r *StockRecord) SetValue(column, value string) {
	switch column {
	case ColStock:
		r.Stock = value
	case ColSymbol:
		r.Symbol = value
	case ColCurrentPrice:
		r.CurrentPrice = value
	case ColPreviousClose:
		r.PreviousClose = value
	case ColMarketCap:
		r.MarketCap = value
	case ColVolume:
		r.Volume = value
	case ColPercentChange:
		r.PercentChange = value
	case ColTrend:
		r.Trend = value
	}
}
