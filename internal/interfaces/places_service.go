package interfaces

import (
	"context"

	"github.com/ternarybob/prospect/internal/models"
)

// PlacesService defines the contract with the external places provider.
// Both operations are rate limited by the provider and may fail per call;
// callers decide whether a failure is absorbed or surfaced.
type PlacesService interface {
	// Init performs one-time provider initialization (API key resolution).
	// Safe to call concurrently; initialization happens exactly once.
	Init(ctx context.Context) error

	// NearbySearch returns raw place summaries within radiusMeters of center
	// matching the given category. A zero-result search returns an empty
	// slice, not an error.
	NearbySearch(ctx context.Context, center models.Coordinate, radiusMeters int, category string) ([]models.PlaceSummary, error)

	// PlaceDetails performs a field-scoped detail lookup for a single place.
	PlaceDetails(ctx context.Context, placeID string) (*models.PlaceSummary, error)
}
