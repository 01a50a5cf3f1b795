package models

// StockView is the externally-named projection of an analyzed row, using the
// API field names rather than the table column names.
type StockView struct {
	StockName        string  `json:"stock_name"`
	StockSymbol      string  `json:"stock_symbol"`
	CurrentPrice     Numeric `json:"current_price"`
	PreviousClose    Numeric `json:"previous_close"`
	MarketCap        string  `json:"market_cap"`
	TradeVolume      Numeric `json:"trade_volume"`
	PercentageChange Numeric `json:"percentage_change"`
	StockTrend       string  `json:"stock_trend"`
}

// AnalysisResult is the aggregate payload served by the stocks endpoints.
type AnalysisResult struct {
	Stocks               []StockView `json:"stocks"`
	AverageCurrentPrice  Numeric     `json:"average_current_price"`
	AveragePreviousClose Numeric     `json:"average_previous_close"`
	HighestVolumeStock   string      `json:"highest_volume_stock"`
}

// CollectResult summarizes one collection run across the configured symbols.
type CollectResult struct {
	Requested int      `json:"requested"`
	Collected int      `json:"collected"`
	Failed    []string `json:"failed,omitempty"`
}
