package server

import (
	"net/http"
)

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	// WebSocket route (event stream for the browser UI)
	mux.HandleFunc("/ws", s.app.WSHandler.HandleWebSocket)

	// API routes - Search
	mux.HandleFunc("/api/search", s.app.SearchHandler.SearchHandler) // POST - run aggregation pipeline

	// API routes - Category catalog
	mux.HandleFunc("/api/categories", s.app.CatalogHandler.ListHandler) // GET - business-type taxonomy

	// API routes - System
	mux.HandleFunc("/api/version", s.app.APIHandler.VersionHandler)
	mux.HandleFunc("/api/health", s.app.APIHandler.HealthHandler)

	return mux
}
