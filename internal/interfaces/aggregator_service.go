package interfaces

import (
	"context"

	"github.com/ternarybob/prospect/internal/models"
)

// AggregatorService runs the multi-category search aggregation pipeline:
// fan-out per category, merge, dedup, filter, bound, enrich.
type AggregatorService interface {
	// Search executes the full pipeline for one request. Category-level and
	// enrichment-level failures are absorbed into partial results; only
	// request-level failures (invalid request, provider unavailable) are
	// returned as errors.
	Search(ctx context.Context, req *models.SearchRequest) (*models.SearchResult, error)
}
