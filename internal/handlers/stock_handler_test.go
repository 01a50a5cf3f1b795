package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ternarybob/pretium/internal/models"
	"github.com/ternarybob/pretium/internal/services/stocks"
	"github.com/ternarybob/pretium/internal/storage/csvtable"
)

func newStockHandler(t *testing.T, seed ...models.StockRecord) *StockHandler {
	t.Helper()
	dir := t.TempDir()
	rawStore := csvtable.New(filepath.Join(dir, "stocks.csv"), models.RawColumns, nil)
	analyzedStore := csvtable.New(filepath.Join(dir, "analyzed_stocks.csv"), models.AnalyzedColumns, nil)
	for _, record := range seed {
		require.NoError(t, rawStore.Upsert(record))
	}
	service := stocks.NewService(nil, nil, rawStore, analyzedStore, nil)
	return NewStockHandler(service, nil)
}

func seedRecord(name, symbol string) models.StockRecord {
	return models.StockRecord{
		Stock:         name,
		Symbol:        symbol,
		CurrentPrice:  "100",
		PreviousClose: "80",
		MarketCap:     "2.95T",
		Volume:        "1,500,000",
	}
}

func TestGetStocksHandler(t *testing.T) {
	handler := newStockHandler(t, seedRecord("Apple Inc.", "AAPL"))

	req := httptest.NewRequest(http.MethodGet, "/stocks", nil)
	rec := httptest.NewRecorder()
	handler.GetStocksHandler(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var payload struct {
		Stocks []struct {
			StockName        string  `json:"stock_name"`
			StockSymbol      string  `json:"stock_symbol"`
			PercentageChange float64 `json:"percentage_change"`
			StockTrend       string  `json:"stock_trend"`
		} `json:"stocks"`
		AverageCurrentPrice float64 `json:"average_current_price"`
		HighestVolumeStock  string  `json:"highest_volume_stock"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))

	require.Len(t, payload.Stocks, 1)
	assert.Equal(t, "Apple Inc.", payload.Stocks[0].StockName)
	assert.Equal(t, "AAPL", payload.Stocks[0].StockSymbol)
	assert.Equal(t, 25.0, payload.Stocks[0].PercentageChange)
	assert.Equal(t, "Up", payload.Stocks[0].StockTrend)
	assert.Equal(t, 100.0, payload.AverageCurrentPrice)
	assert.Equal(t, "Apple Inc., 1,500,000", payload.HighestVolumeStock)
}

func TestGetStockHandlerFiltersSymbol(t *testing.T) {
	handler := newStockHandler(t,
		seedRecord("Apple Inc.", "AAPL"),
		seedRecord("Microsoft Corporation", "MSFT"),
	)

	req := httptest.NewRequest(http.MethodGet, "/stocks/msft", nil)
	rec := httptest.NewRecorder()
	handler.GetStockHandler(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var payload struct {
		Stocks []struct {
			StockSymbol string `json:"stock_symbol"`
		} `json:"stocks"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	require.Len(t, payload.Stocks, 1)
	assert.Equal(t, "MSFT", payload.Stocks[0].StockSymbol)
}

func TestGetStockHandlerUnknownSymbol(t *testing.T) {
	handler := newStockHandler(t, seedRecord("Apple Inc.", "AAPL"))

	req := httptest.NewRequest(http.MethodGet, "/stocks/ZZZZ", nil)
	rec := httptest.NewRecorder()
	handler.GetStockHandler(rec, req)

	// Errors ride a 200 response with an error body.
	require.Equal(t, http.StatusOK, rec.Code)

	var payload map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Contains(t, payload["error"], "ZZZZ")
}

func TestGetStocksHandlerEmptyDataset(t *testing.T) {
	handler := newStockHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/stocks", nil)
	rec := httptest.NewRecorder()
	handler.GetStocksHandler(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var payload map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Equal(t, "No stock data has been collected yet.", payload["error"])
}

func TestGetStocksHandlerRejectsPost(t *testing.T) {
	handler := newStockHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/stocks", nil)
	rec := httptest.NewRecorder()
	handler.GetStocksHandler(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
