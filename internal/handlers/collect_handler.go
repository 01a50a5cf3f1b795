package handlers

import (
	"errors"
	"net/http"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/pretium/internal/common"
	"github.com/ternarybob/pretium/internal/services/stocks"
	"github.com/ternarybob/pretium/internal/yahoo"
)

// CollectHandler triggers quote collection runs over HTTP.
type CollectHandler struct {
	service *stocks.Service
	logger  arbor.ILogger
}

// NewCollectHandler creates a new CollectHandler
func NewCollectHandler(service *stocks.Service, logger arbor.ILogger) *CollectHandler {
	if logger == nil {
		logger = common.GetLogger()
	}
	return &CollectHandler{
		service: service,
		logger:  logger,
	}
}

// CollectHandler handles POST /api/collect - scrape all configured symbols,
// or a single one when ?symbol= is given.
func (h *CollectHandler) CollectHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "POST") {
		return
	}

	if symbol := r.URL.Query().Get("symbol"); symbol != "" {
		record, err := h.service.CollectSymbol(r.Context(), symbol)
		if err != nil {
			var notFound *yahoo.NotFoundError
			if errors.As(err, &notFound) {
				WriteError(w, http.StatusNotFound, notFound.Error())
				return
			}
			h.logger.Error().Str("symbol", symbol).Err(err).Msg("Collection failed")
			WriteError(w, http.StatusBadGateway, "Failed to fetch stock data.")
			return
		}
		WriteJSON(w, http.StatusOK, record)
		return
	}

	result, err := h.service.Collect(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("Collection run failed")
		WriteError(w, http.StatusInternalServerError, "Collection run failed.")
		return
	}

	WriteJSON(w, http.StatusOK, result)
}
