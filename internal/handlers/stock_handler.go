package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/pretium/internal/common"
	"github.com/ternarybob/pretium/internal/services/stocks"
)

// StockHandler serves the stock analysis endpoints.
type StockHandler struct {
	service *stocks.Service
	logger  arbor.ILogger
}

// NewStockHandler creates a new StockHandler
func NewStockHandler(service *stocks.Service, logger arbor.ILogger) *StockHandler {
	if logger == nil {
		logger = common.GetLogger()
	}
	return &StockHandler{
		service: service,
		logger:  logger,
	}
}

// GetStocksHandler handles GET /stocks - analysis over the full dataset.
func (h *StockHandler) GetStocksHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	result, err := h.service.Analyze(r.Context(), "")
	if err != nil {
		h.writeAnalysisError(w, "", err)
		return
	}

	WriteJSON(w, http.StatusOK, result)
}

// GetStockHandler handles GET /stocks/{symbol} - analysis filtered to one symbol.
func (h *StockHandler) GetStockHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	symbol := strings.Trim(strings.TrimPrefix(r.URL.Path, "/stocks/"), "/")
	if symbol == "" || strings.Contains(symbol, "/") {
		WriteJSON(w, http.StatusOK, map[string]string{"error": "Invalid stock symbol."})
		return
	}

	result, err := h.service.Analyze(r.Context(), symbol)
	if err != nil {
		h.writeAnalysisError(w, symbol, err)
		return
	}

	WriteJSON(w, http.StatusOK, result)
}

// writeAnalysisError maps analysis failures onto the error payload shape the
// API clients expect. The status is always 200; the body carries the error.
func (h *StockHandler) writeAnalysisError(w http.ResponseWriter, symbol string, err error) {
	var (
		notFound *stocks.NotFoundError
		empty    *stocks.EmptyDatasetError
	)

	message := "Failed to analyze stock data."
	switch {
	case errors.As(err, &notFound):
		message = notFound.Error()
	case errors.As(err, &empty):
		message = "No stock data has been collected yet."
	case errors.Is(err, stocks.ErrNoVolumeData):
		message = "No volume data available for analysis."
	}

	h.logger.Warn().
		Str("symbol", symbol).
		Err(err).
		Msg("Stock analysis failed")

	WriteJSON(w, http.StatusOK, map[string]string{"error": message})
}
