package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/prospect/internal/interfaces"
	"github.com/ternarybob/prospect/internal/models"
	"github.com/ternarybob/prospect/internal/services/aggregator"
)

// SearchHandler handles search-related HTTP requests
type SearchHandler struct {
	aggregatorService interfaces.AggregatorService
	logger            arbor.ILogger
}

// NewSearchHandler creates a new search handler with dependencies
func NewSearchHandler(aggregatorService interfaces.AggregatorService, logger arbor.ILogger) *SearchHandler {
	return &SearchHandler{
		aggregatorService: aggregatorService,
		logger:            logger,
	}
}

// SearchHandler handles POST /api/search requests
func (h *SearchHandler) SearchHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req models.SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn().Err(err).Msg("Failed to decode search request body")
		WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.aggregatorService.Search(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, aggregator.ErrInvalidRequest):
			h.logger.Warn().Err(err).Msg("Rejected invalid search request")
			WriteError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, aggregator.ErrProviderUnavailable):
			h.logger.Error().Err(err).Msg("Places provider unavailable")
			WriteError(w, http.StatusServiceUnavailable, err.Error())
		default:
			h.logger.Error().Err(err).Msg("Search failed")
			WriteError(w, http.StatusInternalServerError, "search failed")
		}
		return
	}

	WriteJSON(w, http.StatusOK, result)
}
