package server

import (
	"net/http"
)

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	// Stock analysis endpoints
	mux.HandleFunc("/stocks", s.app.StockHandler.GetStocksHandler)
	mux.HandleFunc("/stocks/", s.app.StockHandler.GetStockHandler)

	// API routes - Collection (manual quote scrape)
	mux.HandleFunc("/api/collect", s.app.CollectHandler.CollectHandler)

	// API routes - System
	mux.HandleFunc("/api/status", s.app.StatusHandler.GetStatusHandler)
	mux.HandleFunc("/api/version", s.app.APIHandler.VersionHandler)
	mux.HandleFunc("/api/health", s.app.APIHandler.HealthHandler)

	// Everything else is a JSON 404
	mux.HandleFunc("/", s.handleRoot)

	return mux
}

// handleRoot answers the bare root with a health pointer and anything else
// with a JSON 404.
func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		s.app.APIHandler.NotFoundHandler(w, r)
		return
	}
	http.Redirect(w, r, "/api/status", http.StatusFound)
}
