package handlers

import (
	"net/http"
	"os"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/pretium/internal/common"
	"github.com/ternarybob/pretium/internal/interfaces"
)

// StatusHandler reports application and table status.
type StatusHandler struct {
	config        *common.Config
	rawStore      interfaces.TableStore
	analyzedStore interfaces.TableStore
	logger        arbor.ILogger
}

// TableStatus describes one quote table.
type TableStatus struct {
	Path   string `json:"path"`
	Exists bool   `json:"exists"`
	Rows   int    `json:"rows"`
}

// Status is the payload served by GET /api/status.
type Status struct {
	Status        string      `json:"status"`
	Version       string      `json:"version"`
	Environment   string      `json:"environment"`
	Symbols       []string    `json:"symbols"`
	Scheduler     bool        `json:"scheduler_enabled"`
	RawTable      TableStatus `json:"raw_table"`
	AnalyzedTable TableStatus `json:"analyzed_table"`
}

// NewStatusHandler creates a new StatusHandler
func NewStatusHandler(config *common.Config, rawStore, analyzedStore interfaces.TableStore, logger arbor.ILogger) *StatusHandler {
	if logger == nil {
		logger = common.GetLogger()
	}
	return &StatusHandler{
		config:        config,
		rawStore:      rawStore,
		analyzedStore: analyzedStore,
		logger:        logger,
	}
}

// GetStatusHandler handles GET /api/status
func (h *StatusHandler) GetStatusHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	status := Status{
		Status:        "ok",
		Version:       common.GetVersion(),
		Environment:   h.config.Environment,
		Symbols:       h.config.Stocks.Symbols,
		Scheduler:     h.config.Scheduler.Enabled,
		RawTable:      h.tableStatus(h.rawStore),
		AnalyzedTable: h.tableStatus(h.analyzedStore),
	}

	WriteJSON(w, http.StatusOK, status)
}

func (h *StatusHandler) tableStatus(store interfaces.TableStore) TableStatus {
	status := TableStatus{
		Path:   store.Path(),
		Exists: store.Exists(),
	}
	if !status.Exists {
		return status
	}

	records, err := store.Load()
	if err != nil && !os.IsNotExist(err) {
		h.logger.Warn().Str("path", store.Path()).Err(err).Msg("Failed to read table for status")
		return status
	}
	status.Rows = len(records)
	return status
}
