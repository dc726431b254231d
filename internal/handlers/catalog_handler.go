package handlers

import (
	"net/http"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/prospect/internal/interfaces"
)

// CatalogHandler serves the business-type taxonomy
type CatalogHandler struct {
	catalogService interfaces.CatalogService
	logger         arbor.ILogger
}

// NewCatalogHandler creates a new catalog handler with dependencies
func NewCatalogHandler(catalogService interfaces.CatalogService, logger arbor.ILogger) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
		logger:         logger,
	}
}

// ListHandler handles GET /api/categories requests
func (h *CatalogHandler) ListHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	categories := h.catalogService.Categories()

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"total":      len(categories),
		"categories": categories,
	})
}
